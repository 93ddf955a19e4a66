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

type PgxPayoffRepository struct {
	BaseRepository
}

// newPgxPayoffRepository creates a new repository for payoffs and bank accounts.
func newPgxPayoffRepository(pool *pgxpool.Pool) portsrepo.PayoffRepository {
	return &PgxPayoffRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPayoffRepository implements portsrepo.PayoffRepository
var _ portsrepo.PayoffRepository = (*PgxPayoffRepository)(nil)

const payoffColumns = `
	payoff_id, supporting_id, payoff_date, amount, mode, payer, reference,
	entry_id, bank_account_id, bank_fee,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPayoff(row pgx.Row) (*models.Payoff, error) {
	var m models.Payoff
	err := row.Scan(
		&m.PayoffID,
		&m.SupportingID,
		&m.Date,
		&m.Amount,
		&m.Mode,
		&m.Payer,
		&m.Reference,
		&m.EntryID,
		&m.BankAccountID,
		&m.BankFee,
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

// FindPayoffByID retrieves a payoff by its ID.
func (r *PgxPayoffRepository) FindPayoffByID(ctx context.Context, payoffID string) (*domain.Payoff, error) {
	query := `SELECT ` + payoffColumns + ` FROM payoffs WHERE payoff_id = $1;`

	m, err := scanPayoff(r.Pool.QueryRow(ctx, query, payoffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payoff "+payoffID, err)
	}

	payoff := mapping.ToDomainPayoff(*m)
	return &payoff, nil
}

// ListPayoffsBySupporting lists the payments recorded against a document,
// oldest first.
func (r *PgxPayoffRepository) ListPayoffsBySupporting(ctx context.Context, supportingID string) ([]domain.Payoff, error) {
	query := `
		SELECT ` + payoffColumns + `
		FROM payoffs
		WHERE supporting_id = $1
		ORDER BY payoff_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, supportingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payoffs for document "+supportingID, err)
	}
	defer rows.Close()

	var payoffs []models.Payoff
	for rows.Next() {
		m, scanErr := scanPayoff(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payoff row", scanErr)
		}
		payoffs = append(payoffs, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payoff rows", err)
	}
	return mapping.ToDomainPayoffSlice(payoffs), nil
}

// SavePayoff persists a new payoff.
func (r *PgxPayoffRepository) SavePayoff(ctx context.Context, payoff domain.Payoff) error {
	m := mapping.ToModelPayoff(payoff)
	query := `
		INSERT INTO payoffs (
			payoff_id, supporting_id, payoff_date, amount, mode, payer, reference,
			entry_id, bank_account_id, bank_fee,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PayoffID,
		m.SupportingID,
		m.Date,
		m.Amount,
		m.Mode,
		m.Payer,
		m.Reference,
		m.EntryID,
		m.BankAccountID,
		m.BankFee,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payoff "+m.PayoffID, err)
	}
	return nil
}

// UpdatePayoff updates an existing payoff.
func (r *PgxPayoffRepository) UpdatePayoff(ctx context.Context, payoff domain.Payoff) error {
	m := mapping.ToModelPayoff(payoff)
	query := `
		UPDATE payoffs
		SET payoff_date = $2, amount = $3, mode = $4, payer = $5, reference = $6,
		    entry_id = $7, bank_account_id = $8, bank_fee = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE payoff_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.PayoffID,
		m.Date,
		m.Amount,
		m.Mode,
		m.Payer,
		m.Reference,
		m.EntryID,
		m.BankAccountID,
		m.BankFee,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payoff "+m.PayoffID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePayoff removes a payoff.
func (r *PgxPayoffRepository) DeletePayoff(ctx context.Context, payoffID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM payoffs WHERE payoff_id = $1;`, payoffID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete payoff "+payoffID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxPayoffRepository) FindBankAccountByID(ctx context.Context, bankAccountID int64) (*domain.BankAccount, error) {
	var m models.BankAccount
	err := r.Pool.QueryRow(ctx, `
		SELECT bank_account_id, designation, account_code
		FROM bank_accounts
		WHERE bank_account_id = $1;
	`, bankAccountID).Scan(&m.BankAccountID, &m.Designation, &m.AccountCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account", err)
	}
	account := mapping.ToDomainBankAccount(m)
	return &account, nil
}

// ListBankAccounts returns all configured bank accounts.
func (r *PgxPayoffRepository) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT bank_account_id, designation, account_code
		FROM bank_accounts
		ORDER BY bank_account_id;
	`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts", err)
	}
	defer rows.Close()

	var accounts []models.BankAccount
	for rows.Next() {
		var m models.BankAccount
		if err := rows.Scan(&m.BankAccountID, &m.Designation, &m.AccountCode); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank account rows", err)
	}
	return mapping.ToDomainBankAccountSlice(accounts), nil
}

// SaveBankAccount persists a bank account and returns its id.
func (r *PgxPayoffRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) (int64, error) {
	var id int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO bank_accounts (designation, account_code)
		VALUES ($1, $2)
		RETURNING bank_account_id;
	`, account.Designation, account.AccountCode).Scan(&id)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert bank account", err)
	}
	return id, nil
}
