package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

var (
	ErrLinkTooFewEntries = errors.New("a link needs at least two entries")
	ErrLinkMixedYears    = errors.New("linked entries must belong to the same fiscal year")
)

// linkService manages entry lettering.
type linkService struct {
	linkRepo  portsrepo.AccountLinkRepository
	entryRepo portsrepo.EntryRepositoryFacade
	yearRepo  portsrepo.FiscalYearReader
}

// NewLinkService creates a new LinkService.
func NewLinkService(linkRepo portsrepo.AccountLinkRepository, entryRepo portsrepo.EntryRepositoryFacade, yearRepo portsrepo.FiscalYearReader) portssvc.LinkSvcFacade {
	return &linkService{
		linkRepo:  linkRepo,
		entryRepo: entryRepo,
		yearRepo:  yearRepo,
	}
}

var _ portssvc.LinkSvcFacade = (*linkService)(nil)

// CreateLink letters the given entries together. Entries already linked are
// unlinked first so an entry never belongs to two links.
func (s *linkService) CreateLink(ctx context.Context, entryIDs []string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(entryIDs) < 2 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrLinkTooFewEntries)
	}

	entries := make([]domain.EntryAccount, 0, len(entryIDs))
	yearID := ""
	for _, id := range entryIDs {
		entry, err := s.entryRepo.FindEntryByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to find entry %s: %w", id, err)
		}
		if yearID == "" {
			yearID = entry.FiscalYearID
		} else if entry.FiscalYearID != yearID {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrLinkMixedYears)
		}
		entries = append(entries, *entry)
	}

	year, err := s.yearRepo.FindFiscalYearByID(ctx, yearID)
	if err != nil {
		return fmt.Errorf("failed to find fiscal year %s: %w", yearID, err)
	}
	if year.Status == domain.YearFinished {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearFinished)
	}

	for _, entry := range entries {
		if entry.LinkID != nil {
			if err := s.Unlink(ctx, entry.EntryID); err != nil {
				return err
			}
		}
	}

	link, err := s.linkRepo.CreateLink(ctx, entryIDs)
	if err != nil {
		logger.Error("Failed to create link", "error", err)
		return fmt.Errorf("failed to create link: %w", err)
	}

	logger.Info("Entries linked", "link_id", link.LinkID, "entry_count", len(entryIDs))
	return nil
}

// Unlink dissolves the entry's link. Siblings left as lineless unclosed
// entries (the half-built payment of an abandoned settle flow) are deleted
// along the way.
func (s *linkService) Unlink(ctx context.Context, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.LinkID == nil {
		return nil
	}

	year, err := s.yearRepo.FindFiscalYearByID(ctx, entry.FiscalYearID)
	if err != nil {
		return fmt.Errorf("failed to find fiscal year %s: %w", entry.FiscalYearID, err)
	}
	if year.Status == domain.YearFinished {
		return nil
	}

	linkID := *entry.LinkID
	siblings, err := s.entryRepo.ListEntriesByLink(ctx, linkID)
	if err != nil {
		return fmt.Errorf("failed to list entries of link %s: %w", linkID, err)
	}

	for _, sibling := range siblings {
		if err := s.linkRepo.ClearEntryLink(ctx, sibling.EntryID); err != nil {
			return fmt.Errorf("failed to clear link on entry %s: %w", sibling.EntryID, err)
		}
		if sibling.Closed {
			continue
		}
		lines, err := s.entryRepo.FindEntryLines(ctx, sibling.EntryID)
		if err != nil {
			return fmt.Errorf("failed to load lines of entry %s: %w", sibling.EntryID, err)
		}
		if sibling.IsGhost(len(lines)) {
			if err := s.entryRepo.DeleteEntry(ctx, sibling.EntryID); err != nil {
				return fmt.Errorf("failed to delete ghost entry %s: %w", sibling.EntryID, err)
			}
			logger.Info("Ghost sibling deleted on unlink", "entry_id", sibling.EntryID, "link_id", linkID)
		}
	}

	if err := s.linkRepo.DeleteLink(ctx, linkID); err != nil {
		return fmt.Errorf("failed to delete link %s: %w", linkID, err)
	}

	logger.Info("Link dissolved", "link_id", linkID)
	return nil
}

// LinkLetter returns the link's base-26 display code within its year: the
// link's creation rank among the year's links, rendered as A..Z, AA, AB...
func (s *linkService) LinkLetter(ctx context.Context, linkID string) (string, error) {
	entries, err := s.entryRepo.ListEntriesByLink(ctx, linkID)
	if err != nil {
		return "", fmt.Errorf("failed to list entries of link %s: %w", linkID, err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: link %s has no entries", apperrors.ErrNotFound, linkID)
	}
	rank, err := s.linkRepo.CountLinksBefore(ctx, entries[0].FiscalYearID, linkID)
	if err != nil {
		return "", fmt.Errorf("failed to rank link %s: %w", linkID, err)
	}
	return domain.LetterCode(rank), nil
}
