package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// AccountLinkRepository defines persistence for entry links ("lettering").
type AccountLinkRepository interface {
	// CreateLink inserts a fresh link and assigns the given entries to it in
	// one transaction; the entry rows are locked while reassigned.
	CreateLink(ctx context.Context, entryIDs []string) (*domain.AccountLink, error)

	// DeleteLink removes the link row.
	DeleteLink(ctx context.Context, linkID string) error

	// ClearEntryLink clears the entry's link reference.
	ClearEntryLink(ctx context.Context, entryID string) error

	// CountLinksBefore counts the year's links with a lower creation rank,
	// which drives the base-26 letter display code.
	CountLinksBefore(ctx context.Context, fiscalYearID, linkID string) (int, error)
}
