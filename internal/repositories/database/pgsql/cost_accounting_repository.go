package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
)

type PgxCostAccountingRepository struct {
	BaseRepository
}

// newPgxCostAccountingRepository creates a new repository for cost accountings.
func newPgxCostAccountingRepository(pool *pgxpool.Pool) portsrepo.CostAccountingRepository {
	return &PgxCostAccountingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCostAccountingRepository implements portsrepo.CostAccountingRepository
var _ portsrepo.CostAccountingRepository = (*PgxCostAccountingRepository)(nil)

const costAccountingColumns = `
	cost_accounting_id, name, description, status, fiscal_year_id,
	is_default, is_protected,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCostAccounting(row pgx.Row) (*models.CostAccounting, error) {
	var m models.CostAccounting
	err := row.Scan(
		&m.CostAccountingID,
		&m.Name,
		&m.Description,
		&m.Status,
		&m.FiscalYearID,
		&m.IsDefault,
		&m.IsProtected,
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

// FindCostAccountingByID retrieves a cost accounting by its ID.
func (r *PgxCostAccountingRepository) FindCostAccountingByID(ctx context.Context, costAccountingID string) (*domain.CostAccounting, error) {
	query := `SELECT ` + costAccountingColumns + ` FROM cost_accountings WHERE cost_accounting_id = $1;`

	m, err := scanCostAccounting(r.Pool.QueryRow(ctx, query, costAccountingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cost accounting "+costAccountingID, err)
	}

	cost := mapping.ToDomainCostAccounting(*m)
	return &cost, nil
}

// ListCostAccountings returns all cost accountings, scoped to a fiscal year
// when fiscalYearID is non-empty.
func (r *PgxCostAccountingRepository) ListCostAccountings(ctx context.Context, fiscalYearID string) ([]domain.CostAccounting, error) {
	query := `
		SELECT ` + costAccountingColumns + `
		FROM cost_accountings
		WHERE ($1 = '' OR fiscal_year_id = $1)
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, fiscalYearID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cost accountings", err)
	}
	defer rows.Close()

	var costs []models.CostAccounting
	for rows.Next() {
		m, scanErr := scanCostAccounting(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cost accounting row", scanErr)
		}
		costs = append(costs, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cost accounting rows", err)
	}
	return mapping.ToDomainCostAccountingSlice(costs), nil
}

// SaveCostAccounting persists a new cost accounting.
func (r *PgxCostAccountingRepository) SaveCostAccounting(ctx context.Context, cost domain.CostAccounting) error {
	m := mapping.ToModelCostAccounting(cost)
	query := `
		INSERT INTO cost_accountings (
			cost_accounting_id, name, description, status, fiscal_year_id,
			is_default, is_protected,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CostAccountingID,
		m.Name,
		m.Description,
		m.Status,
		m.FiscalYearID,
		m.IsDefault,
		m.IsProtected,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert cost accounting "+m.CostAccountingID, err)
	}
	return nil
}

// UpdateCostAccounting updates an existing cost accounting.
func (r *PgxCostAccountingRepository) UpdateCostAccounting(ctx context.Context, cost domain.CostAccounting) error {
	m := mapping.ToModelCostAccounting(cost)
	query := `
		UPDATE cost_accountings
		SET name = $2, description = $3, status = $4, fiscal_year_id = $5,
		    is_default = $6, last_updated_at = $7, last_updated_by = $8
		WHERE cost_accounting_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CostAccountingID,
		m.Name,
		m.Description,
		m.Status,
		m.FiscalYearID,
		m.IsDefault,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cost accounting "+m.CostAccountingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetDefaultCostAccounting atomically clears the default flag on every opened
// cost accounting and sets it on the given one. An empty id only clears.
func (r *PgxCostAccountingRepository) SetDefaultCostAccounting(ctx context.Context, costAccountingID string) error {
	query := `UPDATE cost_accountings SET is_default = (cost_accounting_id = $1);`
	if _, err := r.Pool.Exec(ctx, query, costAccountingID); err != nil {
		return apperrors.NewAppError(500, "failed to set default cost accounting", err)
	}
	return nil
}

// CountModelEntriesByCost counts entry templates referencing the cost accounting.
func (r *PgxCostAccountingRepository) CountModelEntriesByCost(ctx context.Context, costAccountingID string) (int, error) {
	var n int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM model_entries WHERE cost_accounting_id = $1;`, costAccountingID).Scan(&n)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count templates for cost accounting "+costAccountingID, err)
	}
	return n, nil
}

// CostAccountingResult aggregates revenue and expense over the entries
// referencing the cost accounting.
func (r *PgxCostAccountingRepository) CostAccountingResult(ctx context.Context, costAccountingID string) (*domain.CostAccountingResult, error) {
	query := `
		SELECT
			COALESCE(SUM(l.amount) FILTER (WHERE a.account_type = $2), 0),
			COALESCE(SUM(l.amount) FILTER (WHERE a.account_type = $3), 0)
		FROM entry_lines l
		JOIN chart_accounts a ON a.chart_account_id = l.chart_account_id
		JOIN entries e ON e.entry_id = l.entry_id
		WHERE e.cost_accounting_id = $1;
	`
	var result domain.CostAccountingResult
	err := r.Pool.QueryRow(ctx, query, costAccountingID, int16(domain.Revenue), int16(domain.Expense)).
		Scan(&result.Revenue, &result.Expense)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate cost accounting result", err)
	}
	return &result, nil
}

// SyncBudgetYear re-points the cost accounting's budget lines at its fiscal year.
func (r *PgxCostAccountingRepository) SyncBudgetYear(ctx context.Context, costAccountingID string, fiscalYearID *string) error {
	_, err := r.Pool.Exec(ctx, `
		UPDATE budgets
		SET fiscal_year_id = $2
		WHERE cost_accounting_id = $1;
	`, costAccountingID, fiscalYearID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to sync budget year for cost accounting "+costAccountingID, err)
	}
	return nil
}
