package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// BudgetSvcFacade manages budget lines per year and cost accounting.
type BudgetSvcFacade interface {
	SaveBudget(ctx context.Context, req dto.SaveBudgetRequest, userID string) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, budgetID string) error
	// ListBudgets returns budget lines with revenue and expense totals.
	ListBudgets(ctx context.Context, fiscalYearID string, costAccountingID string) ([]domain.Budget, decimal.Decimal, decimal.Decimal, error)
}

// ModelEntrySvcFacade manages reusable entry templates.
type ModelEntrySvcFacade interface {
	SaveModelEntry(ctx context.Context, req dto.SaveModelEntryRequest, userID string) (*domain.ModelEntry, error)
	DeleteModelEntry(ctx context.Context, modelEntryID string) error
	ListModelEntries(ctx context.Context) ([]domain.ModelEntry, error)
	GetModelEntry(ctx context.Context, modelEntryID string) (*domain.ModelEntry, []domain.ModelLineEntry, error)

	// StampModel resolves the template's codes in the target year and
	// returns the serial of its lines scaled by factor.
	StampModel(ctx context.Context, modelEntryID string, factor decimal.Decimal, fiscalYearID string, userID string) (string, error)
}

// ParameterSvcFacade exposes the configuration parameter table.
type ParameterSvcFacade interface {
	GetParameter(ctx context.Context, name string) (string, error)
	SetParameter(ctx context.Context, name string, value string, userID string) error

	// CurrencyInfo returns the configured currency symbol, ISO code and precision.
	CurrencyInfo(ctx context.Context) (symbol string, iso string, precision int32, err error)
}

// ReportingSvcFacade assembles read-only reporting contexts.
type ReportingSvcFacade interface {
	// YearLedger groups a year's closed entries by journal.
	YearLedger(ctx context.Context, fiscalYearID string) (*domain.YearLedgerContext, error)

	// TrialBalance returns per-account totals for the year, optionally
	// restricted to a code prefix.
	TrialBalance(ctx context.Context, fiscalYearID string, codePrefix string) ([]dto.TrialBalanceRow, error)

	// CostAccountingReport returns the revenue, expense and result of a
	// cost accounting alongside its budget totals.
	CostAccountingReport(ctx context.Context, costAccountingID string) (*dto.CostAccountingReport, error)
}
