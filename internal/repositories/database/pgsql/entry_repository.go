package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
)

// ghostSweepLockID keys the advisory lock serializing ghost sweeps; an
// arbitrary constant shared by every node of the application.
const ghostSweepLockID = 0x6265_6c67_7377 // "blgsw"

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for entries and their lines.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

// querier abstracts over the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const entryColumns = `
	entry_id, fiscal_year_id, num, journal_id, entry_date, value_date,
	designation, closed, cost_accounting_id, link_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanEntry(row pgx.Row) (*models.EntryAccount, error) {
	var m models.EntryAccount
	err := row.Scan(
		&m.EntryID,
		&m.FiscalYearID,
		&m.Num,
		&m.JournalID,
		&m.EntryDate,
		&m.ValueDate,
		&m.Designation,
		&m.Closed,
		&m.CostAccountingID,
		&m.LinkID,
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

// FindEntryByID retrieves an entry by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.EntryAccount, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry "+entryID, err)
	}

	entry := mapping.ToDomainEntryAccount(*m)
	return &entry, nil
}

// FindEntryLines retrieves the entry's lines with their accounts resolved, in
// insertion order.
func (r *PgxEntryRepository) FindEntryLines(ctx context.Context, entryID string) ([]domain.EntryLineAccount, error) {
	query := `
		SELECT l.entry_line_id, l.entry_id, l.amount, l.third_id, l.reference,
		       a.chart_account_id, a.fiscal_year_id, a.code, a.name, a.account_type,
		       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM entry_lines l
		JOIN chart_accounts a ON a.chart_account_id = l.chart_account_id
		WHERE l.entry_id = $1
		ORDER BY l.entry_line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines of entry "+entryID, err)
	}
	defer rows.Close()

	var lines []domain.EntryLineAccount
	for rows.Next() {
		var m models.EntryLineAccount
		err := rows.Scan(
			&m.EntryLineID,
			&m.EntryID,
			&m.Amount,
			&m.ThirdID,
			&m.Reference,
			&m.Account.ChartAccountID,
			&m.Account.FiscalYearID,
			&m.Account.Code,
			&m.Account.Name,
			&m.Account.Type,
			&m.Account.CreatedAt,
			&m.Account.CreatedBy,
			&m.Account.LastUpdatedAt,
			&m.Account.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry line row", err)
		}
		lines = append(lines, mapping.ToDomainEntryLineAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry line rows", err)
	}
	return lines, nil
}

// ListEntriesByYear lists the year's entries ordered by value date, filtered
// by journal (0 = all) and closed flag.
func (r *PgxEntryRepository) ListEntriesByYear(ctx context.Context, fiscalYearID string, journalID int64, closedOnly bool) ([]domain.EntryAccount, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE fiscal_year_id = $1
		  AND ($2 = 0 OR journal_id = $2)
		  AND (NOT $3 OR closed)
		ORDER BY value_date, num NULLS LAST, entry_id;
	`
	return r.queryEntries(ctx, query, fiscalYearID, journalID, closedOnly)
}

// ListUnclosedEntriesByYear lists the year's unclosed entries.
func (r *PgxEntryRepository) ListUnclosedEntriesByYear(ctx context.Context, fiscalYearID string) ([]domain.EntryAccount, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE fiscal_year_id = $1 AND NOT closed
		ORDER BY value_date, entry_id;
	`
	return r.queryEntries(ctx, query, fiscalYearID)
}

// CountUnclosedEntriesByYear counts the year's unclosed entries.
func (r *PgxEntryRepository) CountUnclosedEntriesByYear(ctx context.Context, fiscalYearID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM entries WHERE fiscal_year_id = $1 AND NOT closed;`, fiscalYearID)
}

// CountUnclosedEntriesByCost counts unclosed entries referencing the cost accounting.
func (r *PgxEntryRepository) CountUnclosedEntriesByCost(ctx context.Context, costAccountingID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM entries WHERE cost_accounting_id = $1 AND NOT closed;`, costAccountingID)
}

// CountEntriesByCostWithOtherYear counts entries referencing the cost
// accounting that belong to a different fiscal year.
func (r *PgxEntryRepository) CountEntriesByCostWithOtherYear(ctx context.Context, costAccountingID, fiscalYearID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM entries WHERE cost_accounting_id = $1 AND fiscal_year_id != $2;`, costAccountingID, fiscalYearID)
}

// ListEntriesByLink lists the entries grouped under one account link.
func (r *PgxEntryRepository) ListEntriesByLink(ctx context.Context, linkID string) ([]domain.EntryAccount, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE link_id = $1 ORDER BY value_date, entry_id;`
	return r.queryEntries(ctx, query, linkID)
}

// HasLinesMatchingMask reports whether any of the entry's lines posts to an
// account whose code matches the mask pattern.
func (r *PgxEntryRepository) HasLinesMatchingMask(ctx context.Context, entryID, mask string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM entry_lines l
			JOIN chart_accounts a ON a.chart_account_id = l.chart_account_id
			WHERE l.entry_id = $1 AND a.code ~ $2
		);
	`
	var found bool
	if err := r.Pool.QueryRow(ctx, query, entryID, mask).Scan(&found); err != nil {
		return false, apperrors.NewAppError(500, "failed to match lines of entry "+entryID, err)
	}
	return found, nil
}

func (r *PgxEntryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.EntryAccount, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries", err)
	}
	defer rows.Close()

	var entries []models.EntryAccount
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", scanErr)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return mapping.ToDomainEntryAccountSlice(entries), nil
}

func (r *PgxEntryRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count entries", err)
	}
	return n, nil
}

// SaveEntry persists a new entry without lines.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.EntryAccount) error {
	return r.insertEntry(ctx, r.Pool, entry)
}

func (r *PgxEntryRepository) insertEntry(ctx context.Context, q querier, entry domain.EntryAccount) error {
	m := mapping.ToModelEntryAccount(entry)
	query := `
		INSERT INTO entries (
			entry_id, fiscal_year_id, num, journal_id, entry_date, value_date,
			designation, closed, cost_accounting_id, link_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := q.Exec(ctx, query,
		m.EntryID,
		m.FiscalYearID,
		m.Num,
		m.JournalID,
		m.EntryDate,
		m.ValueDate,
		m.Designation,
		m.Closed,
		m.CostAccountingID,
		m.LinkID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entry "+m.EntryID, err)
	}
	return nil
}

// UpdateEntry updates the mutable header fields of an unclosed entry.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.EntryAccount) error {
	m := mapping.ToModelEntryAccount(entry)
	query := `
		UPDATE entries
		SET journal_id = $2, value_date = $3, designation = $4,
		    cost_accounting_id = $5, last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1 AND NOT closed;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.JournalID,
		m.ValueDate,
		m.Designation,
		m.CostAccountingID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry "+m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceEntryLines deletes the entry's lines and inserts the given set
// wholesale in one transaction. Line ids are not stable across replacements;
// the returned lines carry their newly assigned persisted refs.
func (r *PgxEntryRepository) ReplaceEntryLines(ctx context.Context, entryID string, lines []domain.EntryLineAccount) ([]domain.EntryLineAccount, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to clear lines of entry "+entryID, err)
	}

	result, err := r.insertLines(ctx, tx, entryID, lines)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PgxEntryRepository) insertLines(ctx context.Context, q querier, entryID string, lines []domain.EntryLineAccount) ([]domain.EntryLineAccount, error) {
	insertQuery := `
		INSERT INTO entry_lines (entry_id, chart_account_id, amount, third_id, reference)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING entry_line_id;
	`
	result := make([]domain.EntryLineAccount, len(lines))
	for i, line := range lines {
		var thirdID *int64
		if line.ThirdID != 0 {
			t := line.ThirdID
			thirdID = &t
		}
		var lineID int64
		err := q.QueryRow(ctx, insertQuery,
			entryID,
			line.Account.ChartAccountID,
			line.Amount,
			thirdID,
			line.Reference,
		).Scan(&lineID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to insert line of entry "+entryID, err)
		}
		result[i] = line
		result[i].EntryID = entryID
		result[i].Ref = domain.PersistedLineRef(lineID)
	}
	return result, nil
}

// CloseEntry marks the entry closed and assigns the next sequence number
// scoped to its fiscal year. The year row is locked for the duration of the
// transaction so two concurrent closes cannot draw the same number.
func (r *PgxEntryRepository) CloseEntry(ctx context.Context, entryID string, entryDate time.Time) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	num, err := r.closeWithSequence(ctx, tx, entryID, entryDate)
	if err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return num, nil
}

func (r *PgxEntryRepository) closeWithSequence(ctx context.Context, tx pgx.Tx, entryID string, entryDate time.Time) (int, error) {
	var fiscalYearID string
	var closed bool
	err := tx.QueryRow(ctx, `SELECT fiscal_year_id, closed FROM entries WHERE entry_id = $1 FOR UPDATE;`, entryID).
		Scan(&fiscalYearID, &closed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, apperrors.NewAppError(500, "failed to lock entry "+entryID, err)
	}
	if closed {
		return 0, apperrors.ErrConflict
	}

	var num int
	err = tx.QueryRow(ctx, `
		UPDATE fiscal_years
		SET last_num = last_num + 1
		WHERE fiscal_year_id = $1
		RETURNING last_num;
	`, fiscalYearID).Scan(&num)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to draw sequence number for year "+fiscalYearID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE entries
		SET closed = TRUE, num = $2, entry_date = $3
		WHERE entry_id = $1;
	`, entryID, num, entryDate)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to close entry "+entryID, err)
	}
	return num, nil
}

// PostEntry persists an entry and its lines atomically, optionally closing it
// with a sequence number in the same transaction. Nothing survives a failure
// partway through, so a rejected posting leaves no orphan header.
func (r *PgxEntryRepository) PostEntry(ctx context.Context, entry domain.EntryAccount, lines []domain.EntryLineAccount, closeEntry bool) ([]domain.EntryLineAccount, int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntry(ctx, tx, entry); err != nil {
		return nil, 0, err
	}
	result, err := r.insertLines(ctx, tx, entry.EntryID, lines)
	if err != nil {
		return nil, 0, err
	}

	num := 0
	if closeEntry {
		if num, err = r.closeWithSequence(ctx, tx, entry.EntryID, time.Now().UTC()); err != nil {
			return nil, 0, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, 0, err
	}
	return result, num, nil
}

// DeleteEntry removes the entry and its lines. The entry row is locked first
// so deletion serializes with concurrent link operations.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var closed bool
	err = tx.QueryRow(ctx, `SELECT closed FROM entries WHERE entry_id = $1 FOR UPDATE;`, entryID).Scan(&closed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock entry "+entryID, err)
	}
	if closed {
		return apperrors.ErrConflict
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of entry "+entryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM entries WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

// SweepGhostEntries deletes every unclosed entry with zero lines, skipping
// entries under an interactive edit session. The advisory lock keeps two
// sweeps from racing; a busy lock means another sweep is already running and
// this one reports zero.
func (r *PgxEntryRepository) SweepGhostEntries(ctx context.Context) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	var locked bool
	if err := tx.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock($1);`, int64(ghostSweepLockID)).Scan(&locked); err != nil {
		return 0, apperrors.NewAppError(500, "failed to take ghost sweep lock", err)
	}
	if !locked {
		return 0, nil
	}

	cmdTag, err := tx.Exec(ctx, `
		DELETE FROM entries e
		WHERE NOT e.closed
		  AND NOT EXISTS (SELECT 1 FROM entry_lines l WHERE l.entry_id = e.entry_id)
		  AND NOT EXISTS (SELECT 1 FROM entry_edit_sessions s WHERE s.entry_id = e.entry_id);
	`)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to sweep ghost entries", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// MoveEntryToYear re-points an unclosed entry and its lines to the target
// year, remapping each line's account id and re-dating the value date.
func (r *PgxEntryRepository) MoveEntryToYear(ctx context.Context, entryID, targetYearID string, valueDate time.Time, accountRemap map[int64]int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE entries
		SET fiscal_year_id = $2, value_date = $3
		WHERE entry_id = $1 AND NOT closed;
	`, entryID, targetYearID, valueDate)
	if err != nil {
		return apperrors.NewAppError(500, "failed to move entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	for from, to := range accountRemap {
		_, err := tx.Exec(ctx, `
			UPDATE entry_lines
			SET chart_account_id = $3
			WHERE entry_id = $1 AND chart_account_id = $2;
		`, entryID, from, to)
		if err != nil {
			return apperrors.NewAppError(500, "failed to remap lines of entry "+entryID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// ClearCostAccountingRefs detaches the cost accounting from every unclosed
// entry referencing it.
func (r *PgxEntryRepository) ClearCostAccountingRefs(ctx context.Context, costAccountingID string) error {
	_, err := r.Pool.Exec(ctx, `
		UPDATE entries
		SET cost_accounting_id = NULL
		WHERE cost_accounting_id = $1 AND NOT closed;
	`, costAccountingID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to clear cost accounting refs for "+costAccountingID, err)
	}
	return nil
}

// BeginEditSession marks the entry as being interactively edited, shielding
// it from the ghost sweep.
func (r *PgxEntryRepository) BeginEditSession(ctx context.Context, entryID string) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO entry_edit_sessions (entry_id, started_at)
		VALUES ($1, NOW())
		ON CONFLICT (entry_id) DO UPDATE SET started_at = NOW();
	`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin edit session for entry "+entryID, err)
	}
	return nil
}

// EndEditSession releases the edit mark.
func (r *PgxEntryRepository) EndEditSession(ctx context.Context, entryID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM entry_edit_sessions WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to end edit session for entry "+entryID, err)
	}
	return nil
}
