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
)

var (
	ErrYearNotRunning      = errors.New("fiscal year is not running")
	ErrYearNotBuilding     = errors.New("fiscal year is not in building state")
	ErrNoPredecessor       = errors.New("fiscal year has no predecessor")
	ErrNoSuccessor         = errors.New("fiscal year has no successor to carry entries forward to")
	ErrContraNotZero       = errors.New("contra accounts do not net to zero")
	ErrYearNotLast         = errors.New("only the most recently ended fiscal year can be deleted")
	ErrYearDatesInverted   = errors.New("fiscal year begin must precede end")
	ErrYearAlreadyFinished = errors.New("fiscal year is already finished")
)

// fiscalYearService drives the year lifecycle, the predecessor chart import
// and the close with carry-forward.
type fiscalYearService struct {
	yearRepo  portsrepo.FiscalYearRepositoryFacade
	chartRepo portsrepo.ChartAccountRepositoryFacade
	entryRepo portsrepo.EntryRepositoryFacade
	costRepo  portsrepo.CostAccountingRepository
	chartSvc  portssvc.ChartAccountSvcFacade
	system    accountsystem.System
}

// NewFiscalYearService creates a new FiscalYearService.
func NewFiscalYearService(
	yearRepo portsrepo.FiscalYearRepositoryFacade,
	chartRepo portsrepo.ChartAccountRepositoryFacade,
	entryRepo portsrepo.EntryRepositoryFacade,
	costRepo portsrepo.CostAccountingRepository,
	chartSvc portssvc.ChartAccountSvcFacade,
	system accountsystem.System,
) portssvc.FiscalYearSvcFacade {
	return &fiscalYearService{
		yearRepo:  yearRepo,
		chartRepo: chartRepo,
		entryRepo: entryRepo,
		costRepo:  costRepo,
		chartSvc:  chartSvc,
		system:    system,
	}
}

var _ portssvc.FiscalYearSvcFacade = (*fiscalYearService)(nil)

// CreateFiscalYear opens a new building year. Missing dates default to the
// day after the latest year's end, running one year minus a day. The latest
// existing year becomes the predecessor; the very first year is activated.
func (s *fiscalYearService) CreateFiscalYear(ctx context.Context, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.yearRepo.ListFiscalYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}

	var lastEnd *time.Time
	var predecessorID *string
	if len(existing) > 0 {
		last := existing[len(existing)-1]
		lastEnd = &last.End
		predecessorID = &last.FiscalYearID
	}

	begin, end := domain.NextYearDates(lastEnd, time.Now().UTC().Truncate(24*time.Hour))
	if req.Begin != nil {
		if begin, err = time.Parse(entryDateLayout, *req.Begin); err != nil {
			return nil, fmt.Errorf("%w: invalid begin date %q", apperrors.ErrValidation, *req.Begin)
		}
	}
	if req.End != nil {
		if end, err = time.Parse(entryDateLayout, *req.End); err != nil {
			return nil, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, *req.End)
		}
	}
	if !begin.Before(end) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearDatesInverted)
	}

	now := time.Now().UTC()
	year := domain.FiscalYear{
		FiscalYearID:  uuid.NewString(),
		Begin:         begin,
		End:           end,
		Status:        domain.YearBuilding,
		IsActive:      len(existing) == 0,
		PredecessorID: predecessorID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.yearRepo.SaveFiscalYear(ctx, year); err != nil {
		logger.Error("Failed to save fiscal year", "error", err)
		return nil, fmt.Errorf("failed to save fiscal year: %w", err)
	}

	logger.Info("Fiscal year created", "fiscal_year_id", year.FiscalYearID, "label", year.Identify())
	return &year, nil
}

func (s *fiscalYearService) GetFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	return s.yearRepo.FindFiscalYearByID(ctx, fiscalYearID)
}

func (s *fiscalYearService) GetCurrentFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	return s.yearRepo.FindActiveFiscalYear(ctx)
}

func (s *fiscalYearService) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return s.yearRepo.ListFiscalYears(ctx)
}

// ActivateFiscalYear makes the year the single active one. Lineless entries
// are swept first so the switch never carries stale edit leftovers.
func (s *fiscalYearService) ActivateFiscalYear(ctx context.Context, fiscalYearID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.yearRepo.FindFiscalYearByID(ctx, fiscalYearID); err != nil {
		return fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	if _, err := s.entryRepo.SweepGhostEntries(ctx); err != nil {
		return fmt.Errorf("ghost sweep failed: %w", err)
	}
	if err := s.yearRepo.ActivateFiscalYear(ctx, fiscalYearID); err != nil {
		return fmt.Errorf("failed to activate fiscal year %s: %w", fiscalYearID, err)
	}

	logger.Info("Fiscal year activated", "fiscal_year_id", fiscalYearID)
	return nil
}

// SetFiscalYearRunning moves a building year to running.
func (s *fiscalYearService) SetFiscalYearRunning(ctx context.Context, fiscalYearID, userID string) error {
	year, err := s.yearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	if year.Status != domain.YearBuilding {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearNotBuilding)
	}
	return s.yearRepo.UpdateFiscalYearStatus(ctx, fiscalYearID, domain.YearRunning, userID, time.Now().UTC())
}

// ImportChartsAccounts copies the predecessor's chart into the year, skipping
// codes that already exist. Returns the number of accounts imported.
func (s *fiscalYearService) ImportChartsAccounts(ctx context.Context, fiscalYearID, userID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	year, err := s.yearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return 0, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	if year.Status == domain.YearFinished {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearFinished)
	}
	if year.PredecessorID == nil {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoPredecessor)
	}

	source, err := s.chartRepo.ListChartAccountsByYear(ctx, *year.PredecessorID, "")
	if err != nil {
		return 0, fmt.Errorf("failed to list predecessor chart: %w", err)
	}

	imported := 0
	for _, acc := range source {
		if _, err := s.chartRepo.FindChartAccountByCode(ctx, fiscalYearID, acc.Code); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return imported, fmt.Errorf("failed to check code %s: %w", acc.Code, err)
		}

		now := time.Now().UTC()
		copyAcc := domain.ChartAccount{
			FiscalYearID: fiscalYearID,
			Code:         acc.Code,
			Name:         acc.Name,
			Type:         acc.Type,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if _, err := s.chartRepo.SaveChartAccount(ctx, copyAcc); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return imported, fmt.Errorf("failed to import code %s: %w", acc.Code, err)
		}
		imported++
	}

	logger.Info("Chart imported from predecessor", "fiscal_year_id", fiscalYearID, "count", imported)
	return imported, nil
}

// CheckCloseFiscalYear verifies close preconditions: the year is running, the
// contra accounts net to zero, and any unclosed entries have a successor year
// to be carried into. Returns the carry-forward count.
func (s *fiscalYearService) CheckCloseFiscalYear(ctx context.Context, fiscalYearID string) (int, error) {
	year, err := s.yearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return 0, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	if year.Status != domain.YearRunning {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearNotRunning)
	}

	if _, err := s.entryRepo.SweepGhostEntries(ctx); err != nil {
		return 0, fmt.Errorf("ghost sweep failed: %w", err)
	}

	contra, err := s.chartRepo.SumContraAccounts(ctx, fiscalYearID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum contra accounts: %w", err)
	}
	if !domain.AmountIsZero(contra) {
		return 0, fmt.Errorf("%w: %s (%s)", apperrors.ErrValidation, ErrContraNotZero, contra.String())
	}

	unclosed, err := s.entryRepo.CountUnclosedEntriesByYear(ctx, fiscalYearID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unclosed entries: %w", err)
	}
	if unclosed > 0 {
		if _, err := s.yearRepo.FindSuccessorFiscalYear(ctx, fiscalYearID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return 0, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoSuccessor)
			}
			return 0, fmt.Errorf("failed to find successor year: %w", err)
		}
	}
	return unclosed, nil
}

// CloseFiscalYear closes the year: its cost accountings are closed, unclosed
// entries migrate to the successor with accounts re-resolved by code, the
// jurisdiction finalize hook runs and the year is marked finished.
func (s *fiscalYearService) CloseFiscalYear(ctx context.Context, fiscalYearID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	unclosed, err := s.CheckCloseFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return err
	}

	year, err := s.yearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}

	// Close the year's cost accountings directly; the user-facing close
	// guards do not apply to the year-close cascade.
	costs, err := s.costRepo.ListCostAccountings(ctx, fiscalYearID)
	if err != nil {
		return fmt.Errorf("failed to list cost accountings: %w", err)
	}
	now := time.Now().UTC()
	for _, cost := range costs {
		if cost.Status == domain.CostClosed {
			continue
		}
		if cost.IsDefault {
			if err := s.costRepo.SetDefaultCostAccounting(ctx, ""); err != nil {
				return fmt.Errorf("failed to clear default cost accounting: %w", err)
			}
			cost.IsDefault = false
		}
		cost.Status = domain.CostClosed
		cost.LastUpdatedAt = now
		cost.LastUpdatedBy = userID
		if err := s.costRepo.UpdateCostAccounting(ctx, cost); err != nil {
			return fmt.Errorf("failed to close cost accounting %s: %w", cost.CostAccountingID, err)
		}
	}

	if unclosed > 0 {
		successor, err := s.yearRepo.FindSuccessorFiscalYear(ctx, fiscalYearID)
		if err != nil {
			return fmt.Errorf("failed to find successor year: %w", err)
		}
		if err := s.migrateUnclosedEntries(ctx, year, successor, userID); err != nil {
			return err
		}
	}

	if err := s.system.FinalizeYear(ctx, *year); err != nil {
		return fmt.Errorf("jurisdiction finalize failed: %w", err)
	}

	if err := s.yearRepo.UpdateFiscalYearStatus(ctx, fiscalYearID, domain.YearFinished, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to mark year finished: %w", err)
	}

	logger.Info("Fiscal year closed", "fiscal_year_id", fiscalYearID, "migrated_entries", unclosed)
	return nil
}

// migrateUnclosedEntries moves each unclosed entry into the successor year,
// re-resolving every line's account by code (created on demand) and clamping
// the value date into the successor's bounds.
func (s *fiscalYearService) migrateUnclosedEntries(ctx context.Context, year, successor *domain.FiscalYear, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.entryRepo.ListUnclosedEntriesByYear(ctx, year.FiscalYearID)
	if err != nil {
		return fmt.Errorf("failed to list unclosed entries: %w", err)
	}

	for _, entry := range entries {
		lines, err := s.entryRepo.FindEntryLines(ctx, entry.EntryID)
		if err != nil {
			return fmt.Errorf("failed to load lines of entry %s: %w", entry.EntryID, err)
		}

		remap := make(map[int64]int64, len(lines))
		for _, line := range lines {
			if _, done := remap[line.Account.ChartAccountID]; done {
				continue
			}
			target, err := s.chartSvc.GetOrCreateChartAccount(ctx, successor.FiscalYearID, line.Account.Code, line.Account.Name, userID)
			if err != nil {
				return fmt.Errorf("failed to resolve code %s in successor year: %w", line.Account.Code, err)
			}
			remap[line.Account.ChartAccountID] = target.ChartAccountID
		}

		valueDate := successor.ClampDate(entry.ValueDate)
		if err := s.entryRepo.MoveEntryToYear(ctx, entry.EntryID, successor.FiscalYearID, valueDate, remap); err != nil {
			return fmt.Errorf("failed to move entry %s: %w", entry.EntryID, err)
		}
	}

	logger.Info("Unclosed entries carried forward", "from", year.FiscalYearID, "to", successor.FiscalYearID, "count", len(entries))
	return nil
}

// DeleteFiscalYear removes the most recently ended, unfinished year.
func (s *fiscalYearService) DeleteFiscalYear(ctx context.Context, fiscalYearID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	years, err := s.yearRepo.ListFiscalYears(ctx)
	if err != nil {
		return fmt.Errorf("failed to list fiscal years: %w", err)
	}
	if len(years) == 0 {
		return apperrors.ErrNotFound
	}
	last := years[len(years)-1]
	if last.FiscalYearID != fiscalYearID {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearNotLast)
	}
	if last.Status == domain.YearFinished {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearAlreadyFinished)
	}

	if err := s.yearRepo.DeleteFiscalYear(ctx, fiscalYearID); err != nil {
		return fmt.Errorf("failed to delete fiscal year %s: %w", fiscalYearID, err)
	}

	logger.Info("Fiscal year deleted", "fiscal_year_id", fiscalYearID)
	return nil
}

// FiscalYearTotals returns the year's headline figures; the cash position is
// selected through the jurisdiction's cash mask.
func (s *fiscalYearService) FiscalYearTotals(ctx context.Context, fiscalYearID string) (*domain.FiscalYearTotals, error) {
	cashMask := s.system.Mask(domain.MaskCash).String()
	return s.chartRepo.FiscalYearTotals(ctx, fiscalYearID, cashMask)
}
