package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_app/internal/accountsystem"
	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/bizledger/bizledger_app/internal/utils/serial"
)

var (
	ErrEntryClosed        = errors.New("entry is closed and immutable")
	ErrUnbalancedEntry    = errors.New("entry debit and credit do not balance")
	ErrEntryAlreadyLinked = errors.New("entry already belongs to a link")
	ErrNoThirdLines       = errors.New("entry has no third-account lines to settle")
	ErrEntryHasCashLine   = errors.New("entry already carries a cash line")
	ErrReportJournalLine  = errors.New("the last-year-report journal cannot carry revenue or expense lines")
)

const entryDateLayout = "2006-01-02"

// ledgerService is the journal-entry engine: staging, balance control,
// closing with sequence assignment and payment lettering.
type ledgerService struct {
	entryRepo portsrepo.EntryRepositoryFacade
	chartRepo portsrepo.ChartAccountReader
	yearRepo  portsrepo.FiscalYearReader
	linkSvc   portssvc.LinkSvcFacade
	system    accountsystem.System
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(entryRepo portsrepo.EntryRepositoryFacade, chartRepo portsrepo.ChartAccountReader, yearRepo portsrepo.FiscalYearReader, linkSvc portssvc.LinkSvcFacade, system accountsystem.System) portssvc.LedgerSvcFacade {
	return &ledgerService{
		entryRepo: entryRepo,
		chartRepo: chartRepo,
		yearRepo:  yearRepo,
		linkSvc:   linkSvc,
		system:    system,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateEntry opens a new building entry. The value date is clamped into the
// year's bounds so postings never escape the period.
func (s *ledgerService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.EntryAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	year, err := s.yearRepo.FindFiscalYearByID(ctx, req.FiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", req.FiscalYearID, err)
	}
	if year.Status == domain.YearFinished {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearFinished)
	}

	valueDate, err := time.Parse(entryDateLayout, req.ValueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid value date %q", apperrors.ErrValidation, req.ValueDate)
	}

	now := time.Now().UTC()
	entry := domain.EntryAccount{
		EntryID:          uuid.NewString(),
		FiscalYearID:     req.FiscalYearID,
		JournalID:        req.JournalID,
		ValueDate:        year.ClampDate(valueDate),
		Designation:      req.Designation,
		CostAccountingID: req.CostAccountingID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save entry", "error", err)
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Entry created", "entry_id", entry.EntryID, "journal_id", entry.JournalID)
	return &entry, nil
}

func (s *ledgerService) GetEntry(ctx context.Context, entryID string) (*domain.EntryAccount, []domain.EntryLineAccount, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	lines, err := s.entryRepo.FindEntryLines(ctx, entryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load lines of entry %s: %w", entryID, err)
	}
	return entry, lines, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, fiscalYearID string, journalID int64, closedOnly bool) ([]domain.EntryAccount, error) {
	return s.entryRepo.ListEntriesByYear(ctx, fiscalYearID, journalID, closedOnly)
}

// EntrySerial renders the entry's persisted lines in staged wire form.
func (s *ledgerService) EntrySerial(ctx context.Context, entryID string) (string, error) {
	lines, err := s.entryRepo.FindEntryLines(ctx, entryID)
	if err != nil {
		return "", fmt.Errorf("failed to load lines of entry %s: %w", entryID, err)
	}
	staged := make([]serial.Line, 0, len(lines))
	for _, l := range lines {
		staged = append(staged, serial.FromEntryLine(l))
	}
	return serial.Serialize(staged), nil
}

// resolveStagedLines turns a parsed staged line-set into domain lines with
// accounts resolved, enforcing the report-journal restriction.
func (s *ledgerService) resolveStagedLines(ctx context.Context, entry *domain.EntryAccount, staged []serial.Line) ([]domain.EntryLineAccount, error) {
	lines := make([]domain.EntryLineAccount, 0, len(staged))
	for _, sl := range staged {
		account, err := s.chartRepo.FindChartAccountByID(ctx, sl.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve account %d: %w", sl.AccountID, err)
		}
		if account.FiscalYearID != entry.FiscalYearID {
			return nil, fmt.Errorf("%w: account %s belongs to another fiscal year", apperrors.ErrValidation, account.Code)
		}
		if entry.JournalID == domain.JournalLastYearReport &&
			(account.Type == domain.Revenue || account.Type == domain.Expense) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrReportJournalLine)
		}
		lines = append(lines, domain.EntryLineAccount{
			Ref:       sl.Ref,
			EntryID:   entry.EntryID,
			Account:   *account,
			Amount:    sl.Amount,
			ThirdID:   sl.ThirdID,
			Reference: sl.Reference,
		})
	}
	return lines, nil
}

// ReplaceLines replaces the entry's lines wholesale from a staged line-set.
// Persisted line ids are not stable across a replacement.
func (s *ledgerService) ReplaceLines(ctx context.Context, entryID, serialVals, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Closed {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntryClosed)
	}

	staged, err := serial.Parse(serialVals)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	lines, err := s.resolveStagedLines(ctx, entry, staged)
	if err != nil {
		return err
	}

	if _, err := s.entryRepo.ReplaceEntryLines(ctx, entryID, lines); err != nil {
		logger.Error("Failed to replace entry lines", "entry_id", entryID, "error", err)
		return fmt.Errorf("failed to replace lines of entry %s: %w", entryID, err)
	}

	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = userID
	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		return fmt.Errorf("failed to update entry %s: %w", entryID, err)
	}

	logger.Info("Entry lines replaced", "entry_id", entryID, "line_count", len(lines))
	return nil
}

// Balance compares a staged line-set against the persisted lines.
func (s *ledgerService) Balance(ctx context.Context, entryID, serialVals string) (*domain.BalanceState, error) {
	entry, current, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	staged, err := serial.Parse(serialVals)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	proposed, err := s.resolveStagedLines(ctx, entry, staged)
	if err != nil {
		return nil, err
	}
	state := domain.ControlBalance(current, proposed)
	return &state, nil
}

// CloseEntry validates the entry, assigns its fiscal-year sequence number and
// marks it immutable. The number is assigned under the year's row lock so
// concurrent closes never collide.
func (s *ledgerService) CloseEntry(ctx context.Context, entryID string, checkBalance bool, userID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, lines, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return 0, err
	}
	if entry.Closed {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntryClosed)
	}

	year, err := s.yearRepo.FindFiscalYearByID(ctx, entry.FiscalYearID)
	if err != nil {
		return 0, fmt.Errorf("failed to find fiscal year %s: %w", entry.FiscalYearID, err)
	}
	if year.Status == domain.YearFinished {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearFinished)
	}

	if checkBalance {
		state := domain.ControlBalance(lines, lines)
		if !state.IsBalanced() {
			return 0, fmt.Errorf("%w: debit rest %s, credit rest %s",
				ErrUnbalancedEntry, state.DebitRest.String(), state.CreditRest.String())
		}
	}

	num, err := s.entryRepo.CloseEntry(ctx, entryID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to close entry", "entry_id", entryID, "error", err)
		return 0, fmt.Errorf("failed to close entry %s: %w", entryID, err)
	}

	logger.Info("Entry closed", "entry_id", entryID, "num", num, "by", userID)
	return num, nil
}

// DeleteEntry unlinks then removes an unclosed entry and its lines.
func (s *ledgerService) DeleteEntry(ctx context.Context, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Closed {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntryClosed)
	}

	if entry.LinkID != nil {
		if err := s.linkSvc.Unlink(ctx, entryID); err != nil {
			return fmt.Errorf("failed to unlink entry %s before delete: %w", entryID, err)
		}
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete entry", "entry_id", entryID, "error", err)
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}

	logger.Info("Entry deleted", "entry_id", entryID)
	return nil
}

// ReverseEntry negates every line amount of an unclosed entry in place.
func (s *ledgerService) ReverseEntry(ctx context.Context, entryID, userID string) error {
	entry, lines, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Closed {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntryClosed)
	}

	for i := range lines {
		lines[i].Amount = lines[i].Amount.Neg()
	}
	if _, err := s.entryRepo.ReplaceEntryLines(ctx, entryID, lines); err != nil {
		return fmt.Errorf("failed to reverse lines of entry %s: %w", entryID, err)
	}

	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = userID
	return s.entryRepo.UpdateEntry(ctx, *entry)
}

// CreateLinkedPayment creates the inverse payment entry for an entry carrying
// third lines, links both, and returns the new entry plus the staged inverse
// lines for the caller to complete with the cash counterpart.
func (s *ledgerService) CreateLinkedPayment(ctx context.Context, entryID, userID string) (*domain.EntryAccount, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, lines, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, "", err
	}
	if entry.LinkID != nil {
		return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntryAlreadyLinked)
	}

	// A payment makes sense only for an entry that owes a third and has not
	// already been cashed.
	hasThird, err := s.entryRepo.HasLinesMatchingMask(ctx, entryID, s.system.Mask(domain.MaskThird).String())
	if err != nil {
		return nil, "", fmt.Errorf("failed to inspect lines of entry %s: %w", entryID, err)
	}
	if !hasThird {
		return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoThirdLines)
	}
	hasCash, err := s.entryRepo.HasLinesMatchingMask(ctx, entryID, s.system.Mask(domain.MaskCash).String())
	if err != nil {
		return nil, "", fmt.Errorf("failed to inspect lines of entry %s: %w", entryID, err)
	}
	if hasCash {
		return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntryHasCashLine)
	}

	year, err := s.yearRepo.FindFiscalYearByID(ctx, entry.FiscalYearID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find fiscal year %s: %w", entry.FiscalYearID, err)
	}
	if year.Status == domain.YearFinished {
		return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearFinished)
	}

	var staged []serial.Line
	for _, l := range lines {
		if l.ThirdID == 0 {
			continue
		}
		staged = append(staged, serial.FromEntryLine(l.Reversed()))
	}
	if len(staged) == 0 {
		return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoThirdLines)
	}

	now := time.Now().UTC()
	payment := domain.EntryAccount{
		EntryID:      uuid.NewString(),
		FiscalYearID: entry.FiscalYearID,
		JournalID:    domain.JournalPayment,
		ValueDate:    year.ClampDate(now),
		Designation:  fmt.Sprintf("payment of %s", entry.Designation),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.entryRepo.SaveEntry(ctx, payment); err != nil {
		return nil, "", fmt.Errorf("failed to save payment entry: %w", err)
	}

	if err := s.linkSvc.CreateLink(ctx, []string{entry.EntryID, payment.EntryID}); err != nil {
		return nil, "", fmt.Errorf("failed to link payment entry: %w", err)
	}

	logger.Info("Linked payment entry created", "entry_id", entry.EntryID, "payment_entry_id", payment.EntryID)
	return &payment, serial.Serialize(staged), nil
}

// StageLine upserts one line into a staged line-set and returns the new
// serial text. The amount arrives as an explicit debit or credit value.
func (s *ledgerService) StageLine(ctx context.Context, entryID string, req dto.StageLineRequest) (string, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return "", fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Closed {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEntryClosed)
	}

	account, err := s.chartRepo.FindChartAccountByID(ctx, req.ChartAccountID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve account %d: %w", req.ChartAccountID, err)
	}
	if account.FiscalYearID != entry.FiscalYearID {
		return "", fmt.Errorf("%w: account %s belongs to another fiscal year", apperrors.ErrValidation, account.Code)
	}
	if entry.JournalID == domain.JournalLastYearReport &&
		(account.Type == domain.Revenue || account.Type == domain.Expense) {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrReportJournalLine)
	}

	staged, err := serial.Parse(req.Serial)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	line := domain.EntryLineAccount{
		Ref:       domain.NewPendingLineRef(),
		EntryID:   entryID,
		Account:   *account,
		ThirdID:   req.ThirdID,
		Reference: req.Reference,
	}
	line.SetAmounts(req.DebitVal, req.CreditVal)

	staged = serial.Upsert(staged, serial.FromEntryLine(line))
	return serial.Serialize(staged), nil
}

// RemoveStagedLine drops the line with the given serial id from a staged
// line-set. Pure text transformation, no persistence involved.
func (s *ledgerService) RemoveStagedLine(serialVals string, lineSerialID int64) (string, error) {
	staged, err := serial.Parse(serialVals)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	staged = serial.Remove(staged, domain.LineRefFromSerial(lineSerialID))
	return serial.Serialize(staged), nil
}

// ClearGhostEntries deletes every lineless unclosed entry. The repository
// skips the sweep while an interactive edit session holds the lock.
func (s *ledgerService) ClearGhostEntries(ctx context.Context) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	n, err := s.entryRepo.SweepGhostEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("ghost sweep failed: %w", err)
	}
	if n > 0 {
		logger.Info("Ghost entries swept", "count", n)
	}
	return n, nil
}

func (s *ledgerService) BeginEditSession(ctx context.Context, entryID string) error {
	return s.entryRepo.BeginEditSession(ctx, entryID)
}

func (s *ledgerService) EndEditSession(ctx context.Context, entryID string) error {
	return s.entryRepo.EndEditSession(ctx, entryID)
}
