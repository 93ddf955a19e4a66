package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// CostAccountingRepository defines persistence for cost accountings.
type CostAccountingRepository interface {
	// FindCostAccountingByID retrieves a cost accounting by id.
	FindCostAccountingByID(ctx context.Context, costAccountingID string) (*domain.CostAccounting, error)

	// ListCostAccountings returns all cost accountings, scoped to a fiscal
	// year when fiscalYearID is non-empty.
	ListCostAccountings(ctx context.Context, fiscalYearID string) ([]domain.CostAccounting, error)

	// SaveCostAccounting persists a new cost accounting.
	SaveCostAccounting(ctx context.Context, cost domain.CostAccounting) error

	// UpdateCostAccounting updates an existing cost accounting.
	UpdateCostAccounting(ctx context.Context, cost domain.CostAccounting) error

	// SetDefaultCostAccounting atomically clears the default flag on every
	// opened cost accounting and sets it on the given one. An empty id only
	// clears.
	SetDefaultCostAccounting(ctx context.Context, costAccountingID string) error

	// CountModelEntriesByCost counts entry templates referencing the cost
	// accounting.
	CountModelEntriesByCost(ctx context.Context, costAccountingID string) (int, error)

	// CostAccountingResult aggregates revenue and expense over the entries
	// referencing the cost accounting.
	CostAccountingResult(ctx context.Context, costAccountingID string) (*domain.CostAccountingResult, error)

	// SyncBudgetYear re-points the cost accounting's budget lines at its
	// fiscal year.
	SyncBudgetYear(ctx context.Context, costAccountingID string, fiscalYearID *string) error
}
