package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
)

type PgxChartAccountRepository struct {
	BaseRepository
}

// newPgxChartAccountRepository creates a new repository for chart-of-accounts data.
func newPgxChartAccountRepository(pool *pgxpool.Pool) portsrepo.ChartAccountRepositoryFacade {
	return &PgxChartAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxChartAccountRepository implements portsrepo.ChartAccountRepositoryFacade
var _ portsrepo.ChartAccountRepositoryFacade = (*PgxChartAccountRepository)(nil)

const chartAccountColumns = `
	chart_account_id, fiscal_year_id, code, name, account_type,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanChartAccount(row pgx.Row) (*models.ChartAccount, error) {
	var m models.ChartAccount
	err := row.Scan(
		&m.ChartAccountID,
		&m.FiscalYearID,
		&m.Code,
		&m.Name,
		&m.Type,
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

// FindChartAccountByID retrieves an account by its ID.
func (r *PgxChartAccountRepository) FindChartAccountByID(ctx context.Context, chartAccountID int64) (*domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE chart_account_id = $1;`

	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, chartAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find chart account", err)
	}

	account := mapping.ToDomainChartAccount(*m)
	return &account, nil
}

// FindChartAccountByCode retrieves the account carrying a normalized code
// within one fiscal year.
func (r *PgxChartAccountRepository) FindChartAccountByCode(ctx context.Context, fiscalYearID, code string) (*domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_accounts WHERE fiscal_year_id = $1 AND code = $2;`

	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, fiscalYearID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find chart account by code "+code, err)
	}

	account := mapping.ToDomainChartAccount(*m)
	return &account, nil
}

// ListChartAccountsByYear returns the year's chart ordered by code.
func (r *PgxChartAccountRepository) ListChartAccountsByYear(ctx context.Context, fiscalYearID, prefix string) ([]domain.ChartAccount, error) {
	query := `
		SELECT ` + chartAccountColumns + `
		FROM chart_accounts
		WHERE fiscal_year_id = $1 AND code LIKE $2 || '%'
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, fiscalYearID, prefix)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query chart accounts for year "+fiscalYearID, err)
	}
	defer rows.Close()

	var accounts []models.ChartAccount
	for rows.Next() {
		m, scanErr := scanChartAccount(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan chart account row", scanErr)
		}
		accounts = append(accounts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating chart account rows", err)
	}

	return mapping.ToDomainChartAccountSlice(accounts), nil
}

// ChartAccountTotals aggregates the account's positions: last-year-report
// lines, all lines and closed lines, signed by the account's credit/debit way.
func (r *PgxChartAccountRepository) ChartAccountTotals(ctx context.Context, chartAccountID int64) (*domain.ChartAccountTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(l.amount) FILTER (WHERE e.journal_id = 1), 0),
			COALESCE(SUM(l.amount), 0),
			COALESCE(SUM(l.amount) FILTER (WHERE e.closed), 0)
		FROM entry_lines l
		JOIN entries e ON e.entry_id = l.entry_id
		WHERE l.chart_account_id = $1;
	`
	var totals domain.ChartAccountTotals
	err := r.Pool.QueryRow(ctx, query, chartAccountID).Scan(&totals.LastYear, &totals.Current, &totals.Validated)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate chart account totals", err)
	}
	return &totals, nil
}

// SumContraAccounts sums current totals across the year's contra accounts.
func (r *PgxChartAccountRepository) SumContraAccounts(ctx context.Context, fiscalYearID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.amount), 0)
		FROM entry_lines l
		JOIN chart_accounts a ON a.chart_account_id = l.chart_account_id
		WHERE a.fiscal_year_id = $1 AND a.account_type = $2;
	`
	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, fiscalYearID, int16(domain.Contra)).Scan(&sum)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum contra accounts for year "+fiscalYearID, err)
	}
	return sum, nil
}

// SumLastYearReport sums the year's lines on the last-year-report journal.
func (r *PgxChartAccountRepository) SumLastYearReport(ctx context.Context, fiscalYearID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.amount), 0)
		FROM entry_lines l
		JOIN entries e ON e.entry_id = l.entry_id
		WHERE e.fiscal_year_id = $1 AND e.journal_id = $2;
	`
	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, fiscalYearID, domain.JournalLastYearReport).Scan(&sum)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum last year report for year "+fiscalYearID, err)
	}
	return sum, nil
}

// FiscalYearTotals aggregates the year's headline figures. The stored amounts
// are signed by credit/debit way, so summing per account type yields the
// presentation totals directly; cash uses the jurisdiction mask pattern.
func (r *PgxChartAccountRepository) FiscalYearTotals(ctx context.Context, fiscalYearID, cashMask string) (*domain.FiscalYearTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(l.amount) FILTER (WHERE a.account_type = $2), 0),
			COALESCE(SUM(l.amount) FILTER (WHERE a.account_type = $3), 0),
			COALESCE(SUM(l.amount) FILTER (WHERE a.code ~ $4), 0),
			COALESCE(SUM(l.amount) FILTER (WHERE a.code ~ $4 AND e.closed), 0)
		FROM entry_lines l
		JOIN chart_accounts a ON a.chart_account_id = l.chart_account_id
		JOIN entries e ON e.entry_id = l.entry_id
		WHERE a.fiscal_year_id = $1;
	`
	var totals domain.FiscalYearTotals
	err := r.Pool.QueryRow(ctx, query,
		fiscalYearID,
		int16(domain.Revenue),
		int16(domain.Expense),
		cashMask,
	).Scan(&totals.Revenue, &totals.Expense, &totals.Cash, &totals.CashClosed)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate fiscal year totals", err)
	}
	return &totals, nil
}

// TrialBalance aggregates per-account debit and credit sums over the year's
// closed entries. The debit/credit split is reconstructed from the signed
// amount and the account type's credit/debit way.
func (r *PgxChartAccountRepository) TrialBalance(ctx context.Context, fiscalYearID, prefix string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.code,
			a.name,
			COALESCE(SUM(GREATEST(l.amount * (CASE WHEN a.account_type IN ($3, $4) THEN 1 ELSE -1 END), 0)), 0) AS debit,
			COALESCE(SUM(GREATEST(l.amount * (CASE WHEN a.account_type IN ($3, $4) THEN -1 ELSE 1 END), 0)), 0) AS credit
		FROM entry_lines l
		JOIN chart_accounts a ON a.chart_account_id = l.chart_account_id
		JOIN entries e ON e.entry_id = l.entry_id
		WHERE a.fiscal_year_id = $1 AND e.closed AND a.code LIKE $2 || '%'
		GROUP BY a.code, a.name
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, fiscalYearID, prefix, int16(domain.Asset), int16(domain.Expense))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance for year "+fiscalYearID, err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.Code, &row.Name, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}

// SaveChartAccount persists an account and returns its id.
func (r *PgxChartAccountRepository) SaveChartAccount(ctx context.Context, account domain.ChartAccount) (int64, error) {
	m := mapping.ToModelChartAccount(account)
	query := `
		INSERT INTO chart_accounts (
			fiscal_year_id, code, name, account_type,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING chart_account_id;
	`
	var id int64
	err := r.Pool.QueryRow(ctx, query,
		m.FiscalYearID,
		m.Code,
		m.Name,
		m.Type,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return 0, apperrors.ErrDuplicate
		}
		return 0, apperrors.NewAppError(500, "failed to insert chart account "+m.Code, err)
	}
	return id, nil
}

// UpdateChartAccount updates name and type of an existing account.
func (r *PgxChartAccountRepository) UpdateChartAccount(ctx context.Context, account domain.ChartAccount) error {
	m := mapping.ToModelChartAccount(account)
	query := `
		UPDATE chart_accounts
		SET name = $2, account_type = $3, last_updated_at = $4, last_updated_by = $5
		WHERE chart_account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.ChartAccountID, m.Name, m.Type, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update chart account", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
