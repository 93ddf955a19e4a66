package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal years.
type FiscalYearReader interface {
	// FindFiscalYearByID retrieves a fiscal year by id.
	FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// FindActiveFiscalYear returns the single active fiscal year.
	FindActiveFiscalYear(ctx context.Context) (*domain.FiscalYear, error)

	// FindFiscalYearsForDate returns every year whose [begin, end] contains d.
	FindFiscalYearsForDate(ctx context.Context, d time.Time) ([]domain.FiscalYear, error)

	// FindSuccessorFiscalYear returns the year registered with fiscalYearID as
	// predecessor, or ErrNotFound.
	FindSuccessorFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error)

	// ListFiscalYears returns all fiscal years ordered by end date ascending.
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)
}

// FiscalYearWriter defines write operations for fiscal years.
type FiscalYearWriter interface {
	// SaveFiscalYear persists a new fiscal year.
	SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error

	// UpdateFiscalYearStatus moves the year's lifecycle status forward.
	UpdateFiscalYearStatus(ctx context.Context, fiscalYearID string, status domain.FiscalYearStatus, updatedBy string, updatedAt time.Time) error

	// ActivateFiscalYear atomically clears the active flag everywhere and sets
	// it on the given year, in one statement inside one transaction.
	ActivateFiscalYear(ctx context.Context, fiscalYearID string) error

	// DeleteFiscalYear removes the year and cascades to its entries.
	DeleteFiscalYear(ctx context.Context, fiscalYearID string) error
}

// FiscalYearRepositoryFacade combines all fiscal-year repository interfaces.
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
	FiscalYearWriter
}
