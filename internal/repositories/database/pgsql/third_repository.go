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

type PgxThirdRepository struct {
	BaseRepository
}

// newPgxThirdRepository creates a new repository for thirds and their account codes.
func newPgxThirdRepository(pool *pgxpool.Pool) portsrepo.ThirdRepository {
	return &PgxThirdRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxThirdRepository implements portsrepo.ThirdRepository
var _ portsrepo.ThirdRepository = (*PgxThirdRepository)(nil)

// FindThirdByID retrieves a third by its ID.
func (r *PgxThirdRepository) FindThirdByID(ctx context.Context, thirdID int64) (*domain.Third, error) {
	var m models.Third
	err := r.Pool.QueryRow(ctx, `SELECT third_id, name, disabled FROM thirds WHERE third_id = $1;`, thirdID).
		Scan(&m.ThirdID, &m.Name, &m.Disabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find third", err)
	}
	third := mapping.ToDomainThird(m)
	return &third, nil
}

// ListThirds returns all thirds ordered by name.
func (r *PgxThirdRepository) ListThirds(ctx context.Context) ([]domain.Third, error) {
	rows, err := r.Pool.Query(ctx, `SELECT third_id, name, disabled FROM thirds ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query thirds", err)
	}
	defer rows.Close()

	var thirds []models.Third
	for rows.Next() {
		var m models.Third
		if err := rows.Scan(&m.ThirdID, &m.Name, &m.Disabled); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan third row", err)
		}
		thirds = append(thirds, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating third rows", err)
	}
	return mapping.ToDomainThirdSlice(thirds), nil
}

// SaveThird persists a third and returns its id.
func (r *PgxThirdRepository) SaveThird(ctx context.Context, third domain.Third) (int64, error) {
	var id int64
	err := r.Pool.QueryRow(ctx, `INSERT INTO thirds (name, disabled) VALUES ($1, $2) RETURNING third_id;`,
		third.Name, third.Disabled).Scan(&id)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert third "+third.Name, err)
	}
	return id, nil
}

// UpdateThirdStatus flips the disabled flag.
func (r *PgxThirdRepository) UpdateThirdStatus(ctx context.Context, thirdID int64, disabled bool) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE thirds SET disabled = $2 WHERE third_id = $1;`, thirdID, disabled)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update third status", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListThirdAccounts returns the third's attached account codes.
func (r *PgxThirdRepository) ListThirdAccounts(ctx context.Context, thirdID int64) ([]domain.ThirdAccount, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT third_account_id, third_id, code
		FROM third_accounts
		WHERE third_id = $1
		ORDER BY third_account_id;
	`, thirdID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query third accounts", err)
	}
	defer rows.Close()

	var accounts []models.ThirdAccount
	for rows.Next() {
		var m models.ThirdAccount
		if err := rows.Scan(&m.ThirdAccountID, &m.ThirdID, &m.Code); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan third account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating third account rows", err)
	}
	return mapping.ToDomainThirdAccountSlice(accounts), nil
}

// SaveThirdAccount attaches a normalized code to a third.
func (r *PgxThirdRepository) SaveThirdAccount(ctx context.Context, account domain.ThirdAccount) (int64, error) {
	var id int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO third_accounts (third_id, code)
		VALUES ($1, $2)
		RETURNING third_account_id;
	`, account.ThirdID, account.Code).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return 0, apperrors.ErrDuplicate
		}
		return 0, apperrors.NewAppError(500, "failed to attach code to third", err)
	}
	return id, nil
}

// DeleteThirdAccount detaches a code from a third.
func (r *PgxThirdRepository) DeleteThirdAccount(ctx context.Context, thirdAccountID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM third_accounts WHERE third_account_id = $1;`, thirdAccountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to detach third account", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ThirdTotal sums the third's line amounts. Stored amounts are signed by
// credit/debit way, so a plain sum yields liabilities minus assets.
func (r *PgxThirdRepository) ThirdTotal(ctx context.Context, thirdID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM entry_lines
		WHERE third_id = $1;
	`, thirdID).Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum third lines", err)
	}
	return total, nil
}
