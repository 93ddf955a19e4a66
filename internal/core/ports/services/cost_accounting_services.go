package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// CostAccountingSvcFacade manages the analytic cost-center dimension.
type CostAccountingSvcFacade interface {
	// CreateCostAccounting creates an opened cost accounting.
	CreateCostAccounting(ctx context.Context, req dto.CreateCostAccountingRequest, creatorUserID string) (*domain.CostAccounting, error)

	// UpdateCostAccounting updates name, description and fiscal year. Moving
	// to a year that contradicts already-posted entries fails.
	UpdateCostAccounting(ctx context.Context, cost domain.CostAccounting, userID string) error

	// ListCostAccountings lists cost accountings, scoped to a year when
	// fiscalYearID is non-empty.
	ListCostAccountings(ctx context.Context, fiscalYearID string) ([]domain.CostAccounting, error)

	// CloseCostAccounting closes the cost accounting. Open entries or
	// referencing templates block the close.
	CloseCostAccounting(ctx context.Context, costAccountingID, userID string) error

	// ToggleDefault flips the default flag, keeping at most one default among
	// opened cost accountings.
	ToggleDefault(ctx context.Context, costAccountingID string) error

	// CostAccountingResult aggregates revenue/expense over the cost
	// accounting's entries.
	CostAccountingResult(ctx context.Context, costAccountingID string) (*domain.CostAccountingResult, error)

	// SweepClosedCostRefs detaches closed cost accountings from unclosed
	// entries; returns the number of entries cleaned.
	SweepClosedCostRefs(ctx context.Context) (int, error)
}
