package services

import (
	"context"
)

// LinkSvcFacade manages entry lettering: grouping entries whose combined
// balance nets to zero.
type LinkSvcFacade interface {
	// CreateLink letters the given entries together. Entries already linked
	// are unlinked first; their emptied former links are deleted.
	CreateLink(ctx context.Context, entryIDs []string) error

	// Unlink dissolves the entry's link. A no-op when the year is finished or
	// the entry carries no link. Sibling entries left as ghosts are deleted.
	Unlink(ctx context.Context, entryID string) error

	// LinkLetter returns the link's base-26 display code within its year.
	LinkLetter(ctx context.Context, linkID string) (string, error)
}
