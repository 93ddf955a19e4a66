package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// LedgerSvcFacade is the journal-entry ledger: it creates, stages, balances,
// closes, reverses and deletes entries, and runs the ghost sweep.
type LedgerSvcFacade interface {
	// CreateEntry opens a new building entry. Fails with ErrValidation when
	// the fiscal year is finished.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.EntryAccount, error)

	// GetEntry returns the entry with its current lines.
	GetEntry(ctx context.Context, entryID string) (*domain.EntryAccount, []domain.EntryLineAccount, error)

	// ListEntries lists a year's entries (journalID 0 = all journals).
	ListEntries(ctx context.Context, fiscalYearID string, journalID int64, closedOnly bool) ([]domain.EntryAccount, error)

	// EntrySerial renders the entry's persisted lines in staged wire form.
	EntrySerial(ctx context.Context, entryID string) (string, error)

	// ReplaceLines replaces the entry's lines wholesale from a staged
	// line-set. Fails with ErrEntryClosed on a closed entry.
	ReplaceLines(ctx context.Context, entryID, serialVals, userID string) error

	// Balance compares a staged line-set against the persisted lines and
	// returns the unchanged flag plus unmatched debit/credit rests.
	Balance(ctx context.Context, entryID, serialVals string) (*domain.BalanceState, error)

	// CloseEntry validates the entry, assigns its sequence number and marks
	// it immutable. With checkBalance, an unbalanced entry fails with
	// ErrUnbalancedEntry and stays open.
	CloseEntry(ctx context.Context, entryID string, checkBalance bool, userID string) (int, error)

	// DeleteEntry unlinks then removes an unclosed entry and its lines.
	DeleteEntry(ctx context.Context, entryID string) error

	// ReverseEntry negates every line amount of an unclosed entry in place.
	ReverseEntry(ctx context.Context, entryID, userID string) error

	// CreateLinkedPayment creates the inverse payment entry for an entry with
	// third lines and no cash line, links both, and returns the new entry
	// plus its staged lines for the caller to complete.
	CreateLinkedPayment(ctx context.Context, entryID, userID string) (*domain.EntryAccount, string, error)

	// StageLine upserts one line into a staged line-set and returns the new
	// serial text.
	StageLine(ctx context.Context, entryID string, req dto.StageLineRequest) (string, error)

	// RemoveStagedLine drops the line with the given serial id from a staged
	// line-set.
	RemoveStagedLine(serialVals string, lineSerialID int64) (string, error)

	// ClearGhostEntries deletes every lineless unclosed entry, unless an
	// interactive edit session is in progress.
	ClearGhostEntries(ctx context.Context) (int, error)

	// BeginEditSession/EndEditSession bracket an interactive edit so the
	// ghost sweep stays away from the staged entry.
	BeginEditSession(ctx context.Context, entryID string) error
	EndEditSession(ctx context.Context, entryID string) error
}
