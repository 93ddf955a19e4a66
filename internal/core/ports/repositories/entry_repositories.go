package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// EntryReader defines read operations for journal entries and their lines.
type EntryReader interface {
	// FindEntryByID retrieves an entry by id.
	FindEntryByID(ctx context.Context, entryID string) (*domain.EntryAccount, error)

	// FindEntryLines retrieves the entry's lines with their accounts resolved,
	// in insertion order.
	FindEntryLines(ctx context.Context, entryID string) ([]domain.EntryLineAccount, error)

	// ListEntriesByYear lists the year's entries filtered by journal
	// (journalID 0 = all journals) and closed flag, ordered by value date.
	ListEntriesByYear(ctx context.Context, fiscalYearID string, journalID int64, closedOnly bool) ([]domain.EntryAccount, error)

	// ListUnclosedEntriesByYear lists the year's unclosed entries.
	ListUnclosedEntriesByYear(ctx context.Context, fiscalYearID string) ([]domain.EntryAccount, error)

	// CountUnclosedEntriesByYear counts the year's unclosed entries.
	CountUnclosedEntriesByYear(ctx context.Context, fiscalYearID string) (int, error)

	// CountUnclosedEntriesByCost counts unclosed entries referencing the cost
	// accounting.
	CountUnclosedEntriesByCost(ctx context.Context, costAccountingID string) (int, error)

	// CountEntriesByCostWithOtherYear counts entries referencing the cost
	// accounting that belong to a different fiscal year.
	CountEntriesByCostWithOtherYear(ctx context.Context, costAccountingID, fiscalYearID string) (int, error)

	// ListEntriesByLink lists the entries grouped under one account link.
	ListEntriesByLink(ctx context.Context, linkID string) ([]domain.EntryAccount, error)

	// HasLinesMatchingMask reports whether any of the entry's lines posts to
	// an account whose code matches the mask pattern.
	HasLinesMatchingMask(ctx context.Context, entryID, mask string) (bool, error)
}

// EntryWriter defines write operations for journal entries.
type EntryWriter interface {
	// SaveEntry persists a new entry without lines.
	SaveEntry(ctx context.Context, entry domain.EntryAccount) error

	// PostEntry persists an entry and its lines in one transaction and, when
	// closeEntry is set, closes it with a drawn sequence number in the same
	// transaction. A failure partway through leaves no rows behind. Returns
	// the lines with their persisted refs and the assigned number (0 when the
	// entry stays open).
	PostEntry(ctx context.Context, entry domain.EntryAccount, lines []domain.EntryLineAccount, closeEntry bool) ([]domain.EntryLineAccount, int, error)

	// UpdateEntry updates the mutable header fields of an unclosed entry.
	UpdateEntry(ctx context.Context, entry domain.EntryAccount) error

	// ReplaceEntryLines deletes the entry's lines and inserts the given set
	// wholesale in one transaction, returning the lines with their newly
	// assigned persisted refs. Line ids are not stable across replacements.
	ReplaceEntryLines(ctx context.Context, entryID string, lines []domain.EntryLineAccount) ([]domain.EntryLineAccount, error)

	// CloseEntry marks the entry closed, stamps entryDate and atomically
	// assigns the next sequence number scoped to the entry's fiscal year (the
	// year row is locked for the duration of the transaction). Returns the
	// assigned number.
	CloseEntry(ctx context.Context, entryID string, entryDate time.Time) (int, error)

	// DeleteEntry removes the entry and its lines. The entry row is locked
	// first so deletion serializes with concurrent link operations.
	DeleteEntry(ctx context.Context, entryID string) error

	// SweepGhostEntries deletes every unclosed entry with zero lines. The
	// sweep takes the edit-session advisory lock and is skipped (returning 0)
	// when an interactive edit is in progress.
	SweepGhostEntries(ctx context.Context) (int, error)

	// MoveEntryToYear re-points an unclosed entry and its lines to the target
	// year, remapping each line's account id and re-dating the value date.
	MoveEntryToYear(ctx context.Context, entryID, targetYearID string, valueDate time.Time, accountRemap map[int64]int64) error

	// ClearCostAccountingRefs detaches the cost accounting from every
	// unclosed entry referencing it.
	ClearCostAccountingRefs(ctx context.Context, costAccountingID string) error
}

// EntryEditLocker guards interactive edit sessions against the ghost sweep.
type EntryEditLocker interface {
	// BeginEditSession marks the entry as being interactively edited.
	BeginEditSession(ctx context.Context, entryID string) error

	// EndEditSession releases the edit mark.
	EndEditSession(ctx context.Context, entryID string) error
}

// EntryRepositoryFacade combines all entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	EntryEditLocker
}
