package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ChartAccountReader defines read operations for chart accounts.
type ChartAccountReader interface {
	// FindChartAccountByID retrieves an account by id.
	FindChartAccountByID(ctx context.Context, chartAccountID int64) (*domain.ChartAccount, error)

	// FindChartAccountByCode retrieves the account with the given normalized
	// code within one fiscal year, or ErrNotFound.
	FindChartAccountByCode(ctx context.Context, fiscalYearID, code string) (*domain.ChartAccount, error)

	// ListChartAccountsByYear returns the year's chart ordered by code,
	// optionally filtered to codes starting with prefix.
	ListChartAccountsByYear(ctx context.Context, fiscalYearID, prefix string) ([]domain.ChartAccount, error)

	// ChartAccountTotals aggregates the account's positions.
	ChartAccountTotals(ctx context.Context, chartAccountID int64) (*domain.ChartAccountTotals, error)

	// SumContraAccounts sums current totals across the year's contra accounts.
	SumContraAccounts(ctx context.Context, fiscalYearID string) (decimal.Decimal, error)

	// SumLastYearReport sums the year's lines on the last-year-report journal.
	SumLastYearReport(ctx context.Context, fiscalYearID string) (decimal.Decimal, error)

	// FiscalYearTotals aggregates the year's revenue/expense/cash figures;
	// cashMask selects the cash accounts.
	FiscalYearTotals(ctx context.Context, fiscalYearID, cashMask string) (*domain.FiscalYearTotals, error)

	// TrialBalance aggregates per-account debit and credit sums over the
	// year's closed entries, ordered by code and optionally restricted to
	// codes starting with prefix. Accounts without closed lines are omitted.
	TrialBalance(ctx context.Context, fiscalYearID, prefix string) ([]domain.TrialBalanceRow, error)
}

// ChartAccountWriter defines write operations for chart accounts.
type ChartAccountWriter interface {
	// SaveChartAccount persists an account and returns its id. Saving a code
	// that already exists in the year returns ErrDuplicate.
	SaveChartAccount(ctx context.Context, account domain.ChartAccount) (int64, error)

	// UpdateChartAccount updates name and type of an existing account.
	UpdateChartAccount(ctx context.Context, account domain.ChartAccount) error
}

// ChartAccountRepositoryFacade combines all chart-account repository interfaces.
type ChartAccountRepositoryFacade interface {
	ChartAccountReader
	ChartAccountWriter
}
