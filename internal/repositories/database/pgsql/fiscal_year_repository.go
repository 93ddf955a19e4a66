package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
)

type PgxFiscalYearRepository struct {
	BaseRepository
}

// newPgxFiscalYearRepository creates a new repository for fiscal year data.
func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepositoryFacade {
	return &PgxFiscalYearRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxFiscalYearRepository implements portsrepo.FiscalYearRepositoryFacade
var _ portsrepo.FiscalYearRepositoryFacade = (*PgxFiscalYearRepository)(nil)

const fiscalYearColumns = `
	fiscal_year_id, begin_date, end_date, status, is_active, predecessor_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanFiscalYear(row pgx.Row) (*models.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID,
		&m.Begin,
		&m.End,
		&m.Status,
		&m.IsActive,
		&m.PredecessorID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindFiscalYearByID retrieves a fiscal year by its ID.
func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE fiscal_year_id = $1;`

	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, fiscalYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal year "+fiscalYearID, err)
	}

	year := mapping.ToDomainFiscalYear(*m)
	return &year, nil
}

// FindActiveFiscalYear returns the single active fiscal year.
func (r *PgxFiscalYearRepository) FindActiveFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE is_active;`

	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active fiscal year", err)
	}

	year := mapping.ToDomainFiscalYear(*m)
	return &year, nil
}

// FindFiscalYearsForDate returns every year whose [begin, end] contains d.
func (r *PgxFiscalYearRepository) FindFiscalYearsForDate(ctx context.Context, d time.Time) ([]domain.FiscalYear, error) {
	query := `
		SELECT ` + fiscalYearColumns + `
		FROM fiscal_years
		WHERE begin_date <= $1 AND end_date >= $1
		ORDER BY end_date;
	`
	return r.queryFiscalYears(ctx, query, d)
}

// FindSuccessorFiscalYear returns the year registered with fiscalYearID as predecessor.
func (r *PgxFiscalYearRepository) FindSuccessorFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE predecessor_id = $1;`

	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, fiscalYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find successor of fiscal year "+fiscalYearID, err)
	}

	year := mapping.ToDomainFiscalYear(*m)
	return &year, nil
}

// ListFiscalYears returns all fiscal years ordered by end date ascending.
func (r *PgxFiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years ORDER BY end_date;`
	return r.queryFiscalYears(ctx, query)
}

func (r *PgxFiscalYearRepository) queryFiscalYears(ctx context.Context, query string, args ...any) ([]domain.FiscalYear, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal years", err)
	}
	defer rows.Close()

	var years []models.FiscalYear
	for rows.Next() {
		m, scanErr := scanFiscalYear(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal year row", scanErr)
		}
		years = append(years, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fiscal year rows", err)
	}

	return mapping.ToDomainFiscalYearSlice(years), nil
}

// SaveFiscalYear persists a new fiscal year.
func (r *PgxFiscalYearRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(year)
	query := `
		INSERT INTO fiscal_years (
			fiscal_year_id, begin_date, end_date, status, is_active, predecessor_id,
			last_num, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FiscalYearID,
		m.Begin,
		m.End,
		m.Status,
		m.IsActive,
		m.PredecessorID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert fiscal year "+m.FiscalYearID, err)
	}
	return nil
}

// UpdateFiscalYearStatus moves the year's lifecycle status forward.
func (r *PgxFiscalYearRepository) UpdateFiscalYearStatus(ctx context.Context, fiscalYearID string, status domain.FiscalYearStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE fiscal_years
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE fiscal_year_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, fiscalYearID, int16(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fiscal year status for "+fiscalYearID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ActivateFiscalYear atomically clears the active flag everywhere and sets it
// on the given year. The single statement keeps the at-most-one-active
// invariant without a separate clear step.
func (r *PgxFiscalYearRepository) ActivateFiscalYear(ctx context.Context, fiscalYearID string) error {
	query := `UPDATE fiscal_years SET is_active = (fiscal_year_id = $1);`

	cmdTag, err := r.Pool.Exec(ctx, query, fiscalYearID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to activate fiscal year "+fiscalYearID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFiscalYear removes the year; entries, chart accounts and budget lines
// cascade through foreign keys.
func (r *PgxFiscalYearRepository) DeleteFiscalYear(ctx context.Context, fiscalYearID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM fiscal_years WHERE fiscal_year_id = $1;`, fiscalYearID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete fiscal year "+fiscalYearID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
