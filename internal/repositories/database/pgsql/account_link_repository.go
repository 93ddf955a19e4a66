package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
)

type PgxAccountLinkRepository struct {
	BaseRepository
}

// newPgxAccountLinkRepository creates a new repository for entry links.
func newPgxAccountLinkRepository(pool *pgxpool.Pool) portsrepo.AccountLinkRepository {
	return &PgxAccountLinkRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountLinkRepository implements portsrepo.AccountLinkRepository
var _ portsrepo.AccountLinkRepository = (*PgxAccountLinkRepository)(nil)

// CreateLink inserts a fresh link and assigns the given entries to it in one
// transaction. The entry rows are locked while reassigned so a concurrent
// delete or close cannot interleave.
func (r *PgxAccountLinkRepository) CreateLink(ctx context.Context, entryIDs []string) (*domain.AccountLink, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	rows, err := tx.Query(ctx, `SELECT entry_id FROM entries WHERE entry_id = ANY($1) FOR UPDATE;`, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock entries for linking", err)
	}
	locked := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan locked entry row", err)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked entry rows", err)
	}
	if locked != len(entryIDs) {
		return nil, apperrors.ErrNotFound
	}

	linkID := uuid.NewString()
	if _, err := tx.Exec(ctx, `INSERT INTO account_links (link_id, created_at) VALUES ($1, NOW());`, linkID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert account link", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE entries SET link_id = $1 WHERE entry_id = ANY($2);`, linkID, entryIDs); err != nil {
		return nil, apperrors.NewAppError(500, "failed to assign entries to link "+linkID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &domain.AccountLink{LinkID: linkID}, nil
}

// DeleteLink removes the link row.
func (r *PgxAccountLinkRepository) DeleteLink(ctx context.Context, linkID string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM account_links WHERE link_id = $1;`, linkID); err != nil {
		return apperrors.NewAppError(500, "failed to delete account link "+linkID, err)
	}
	return nil
}

// ClearEntryLink clears the entry's link reference.
func (r *PgxAccountLinkRepository) ClearEntryLink(ctx context.Context, entryID string) error {
	if _, err := r.Pool.Exec(ctx, `UPDATE entries SET link_id = NULL WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear link of entry "+entryID, err)
	}
	return nil
}

// CountLinksBefore counts the year's links created before the given one,
// which drives the base-26 letter display code.
func (r *PgxAccountLinkRepository) CountLinksBefore(ctx context.Context, fiscalYearID, linkID string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT al.link_id)
		FROM account_links al
		JOIN entries e ON e.link_id = al.link_id
		WHERE e.fiscal_year_id = $1
		  AND al.created_at < (SELECT created_at FROM account_links WHERE link_id = $2);
	`
	var n int
	if err := r.Pool.QueryRow(ctx, query, fiscalYearID, linkID).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count links before "+linkID, err)
	}
	return n, nil
}
