package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalRepository defines persistence for the fixed journal list.
type JournalRepository interface {
	// ListJournals returns all journals ordered by id.
	ListJournals(ctx context.Context) ([]domain.Journal, error)

	// FindJournalByID retrieves a journal by id.
	FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error)

	// EnsureDefaultJournals creates the reserved system journals when absent.
	EnsureDefaultJournals(ctx context.Context) error
}

// ParameterRepository is the key/value configuration store for ledger
// parameters (account codes, currency precision).
type ParameterRepository interface {
	// GetParameter returns the parameter value, or "" when unset.
	GetParameter(ctx context.Context, name string) (string, error)

	// SetParameter stores a parameter value.
	SetParameter(ctx context.Context, name, value string) error

	// EnsureDefaultParameters seeds the known parameters when absent.
	EnsureDefaultParameters(ctx context.Context) error
}

// BudgetRepository defines persistence for forecast lines.
type BudgetRepository interface {
	// ListBudgets returns budget lines, optionally scoped by year and cost
	// accounting (empty string = no filter).
	ListBudgets(ctx context.Context, fiscalYearID, costAccountingID string) ([]domain.Budget, error)

	// SaveBudget persists a budget line.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget removes a budget line.
	DeleteBudget(ctx context.Context, budgetID string) error

	// SumBudgetByMask sums budget amounts whose code matches the mask,
	// scoped like ListBudgets.
	SumBudgetByMask(ctx context.Context, fiscalYearID, costAccountingID, mask string) (decimal.Decimal, error)
}

// ModelEntryRepository defines persistence for entry templates.
type ModelEntryRepository interface {
	// FindModelEntryByID retrieves a template by id.
	FindModelEntryByID(ctx context.Context, modelEntryID string) (*domain.ModelEntry, error)

	// ListModelEntries returns all templates.
	ListModelEntries(ctx context.Context) ([]domain.ModelEntry, error)

	// ListModelLines returns the template's lines in insertion order.
	ListModelLines(ctx context.Context, modelEntryID string) ([]domain.ModelLineEntry, error)

	// SaveModelEntry persists a template with its lines.
	SaveModelEntry(ctx context.Context, model domain.ModelEntry, lines []domain.ModelLineEntry) error

	// DeleteModelEntry removes a template and its lines.
	DeleteModelEntry(ctx context.Context, modelEntryID string) error
}
