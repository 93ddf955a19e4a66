package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// ChartAccountSvcFacade manages a fiscal year's chart of accounts.
type ChartAccountSvcFacade interface {
	// CreateChartAccount hand-creates an account with a normalized code.
	CreateChartAccount(ctx context.Context, req dto.CreateChartAccountRequest, creatorUserID string) (*domain.ChartAccount, error)

	// GetOrCreateChartAccount resolves a code within a year, lazily creating
	// the account via the jurisdiction classifier on first reference. An
	// empty name uses the classifier's default.
	GetOrCreateChartAccount(ctx context.Context, fiscalYearID, code, name, userID string) (*domain.ChartAccount, error)

	// FindChartAccount resolves a code within a year without creating,
	// returning ErrNotFound when absent.
	FindChartAccount(ctx context.Context, fiscalYearID, code string) (*domain.ChartAccount, error)

	// ListChartAccounts lists the year's chart, optionally filtered by code
	// prefix.
	ListChartAccounts(ctx context.Context, fiscalYearID, prefix string) ([]domain.ChartAccount, error)

	// ChartAccountTotals aggregates an account's positions, signed by its
	// credit/debit way.
	ChartAccountTotals(ctx context.Context, chartAccountID int64) (*domain.ChartAccountTotals, error)

	// NormalizeCode canonicalizes a code per the configured size parameters.
	NormalizeCode(ctx context.Context, code string) (string, error)
}
