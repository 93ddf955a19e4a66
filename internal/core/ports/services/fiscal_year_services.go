package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// FiscalYearSvcFacade drives the fiscal-year lifecycle:
// Building -> Running -> Finished, with carry-forward at close.
type FiscalYearSvcFacade interface {
	// CreateFiscalYear opens a new year. Missing dates default to the day
	// after the latest year's end, for one year minus a day.
	CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error)

	// GetFiscalYear retrieves a year by id.
	GetFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// GetCurrentFiscalYear returns the active year.
	GetCurrentFiscalYear(ctx context.Context) (*domain.FiscalYear, error)

	// ListFiscalYears lists years ordered by end date.
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	// ActivateFiscalYear makes the year the single active one, after a ghost
	// sweep.
	ActivateFiscalYear(ctx context.Context, fiscalYearID string) error

	// SetFiscalYearRunning moves a building year to running.
	SetFiscalYearRunning(ctx context.Context, fiscalYearID, userID string) error

	// ImportChartsAccounts copies the predecessor's chart into the year,
	// skipping codes that already exist. Returns the number imported.
	ImportChartsAccounts(ctx context.Context, fiscalYearID, userID string) (int, error)

	// CheckCloseFiscalYear verifies close preconditions and returns the
	// count of unclosed entries that will be carried forward.
	CheckCloseFiscalYear(ctx context.Context, fiscalYearID string) (int, error)

	// CloseFiscalYear closes the year: cascades into its cost accountings,
	// migrates unclosed entries to the successor, runs the jurisdiction
	// finalize hook and marks the year finished.
	CloseFiscalYear(ctx context.Context, fiscalYearID, userID string) error

	// DeleteFiscalYear removes the most-recently-ended, unfinished year.
	DeleteFiscalYear(ctx context.Context, fiscalYearID string) error

	// FiscalYearTotals returns the year's headline figures.
	FiscalYearTotals(ctx context.Context, fiscalYearID string) (*domain.FiscalYearTotals, error)
}
