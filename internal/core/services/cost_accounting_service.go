package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

var (
	ErrCostClosed          = errors.New("cost accounting is closed")
	ErrCostHasOpenEntries  = errors.New("cost accounting still has unclosed entries")
	ErrCostHasTemplates    = errors.New("cost accounting is referenced by entry templates")
	ErrCostYearContradicts = errors.New("cost accounting has entries posted in another fiscal year")
)

// costAccountingService manages the analytic cost-center dimension.
type costAccountingService struct {
	costRepo  portsrepo.CostAccountingRepository
	entryRepo portsrepo.EntryRepositoryFacade
}

// NewCostAccountingService creates a new CostAccountingService.
func NewCostAccountingService(costRepo portsrepo.CostAccountingRepository, entryRepo portsrepo.EntryRepositoryFacade) portssvc.CostAccountingSvcFacade {
	return &costAccountingService{
		costRepo:  costRepo,
		entryRepo: entryRepo,
	}
}

var _ portssvc.CostAccountingSvcFacade = (*costAccountingService)(nil)

func (s *costAccountingService) CreateCostAccounting(ctx context.Context, req dto.CreateCostAccountingRequest, creatorUserID string) (*domain.CostAccounting, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	cost := domain.CostAccounting{
		CostAccountingID: uuid.NewString(),
		Name:             req.Name,
		Description:      req.Description,
		Status:           domain.CostOpened,
		FiscalYearID:     req.FiscalYearID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.costRepo.SaveCostAccounting(ctx, cost); err != nil {
		logger.Error("Failed to save cost accounting", "name", req.Name, "error", err)
		return nil, fmt.Errorf("failed to save cost accounting: %w", err)
	}

	if req.IsDefault {
		if err := s.costRepo.SetDefaultCostAccounting(ctx, cost.CostAccountingID); err != nil {
			return nil, fmt.Errorf("failed to set default cost accounting: %w", err)
		}
		cost.IsDefault = true
	}

	logger.Info("Cost accounting created", "cost_accounting_id", cost.CostAccountingID)
	return &cost, nil
}

// UpdateCostAccounting updates name, description and fiscal year. Re-scoping
// to a year is refused while entries of another year reference the cost
// accounting.
func (s *costAccountingService) UpdateCostAccounting(ctx context.Context, cost domain.CostAccounting, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.costRepo.FindCostAccountingByID(ctx, cost.CostAccountingID)
	if err != nil {
		return fmt.Errorf("failed to find cost accounting %s: %w", cost.CostAccountingID, err)
	}
	if existing.Status == domain.CostClosed {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCostClosed)
	}

	if cost.FiscalYearID != nil {
		n, err := s.entryRepo.CountEntriesByCostWithOtherYear(ctx, cost.CostAccountingID, *cost.FiscalYearID)
		if err != nil {
			return fmt.Errorf("failed to check cost accounting entries: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCostYearContradicts)
		}
	}

	existing.Name = cost.Name
	existing.Description = cost.Description
	existing.FiscalYearID = cost.FiscalYearID
	existing.LastUpdatedAt = time.Now().UTC()
	existing.LastUpdatedBy = userID

	if err := s.costRepo.UpdateCostAccounting(ctx, *existing); err != nil {
		return fmt.Errorf("failed to update cost accounting %s: %w", cost.CostAccountingID, err)
	}

	// Budget lines follow the cost accounting's year so reporting stays
	// consistent after a re-scope.
	if err := s.costRepo.SyncBudgetYear(ctx, cost.CostAccountingID, cost.FiscalYearID); err != nil {
		return fmt.Errorf("failed to sync budget year: %w", err)
	}

	logger.Info("Cost accounting updated", "cost_accounting_id", cost.CostAccountingID)
	return nil
}

func (s *costAccountingService) ListCostAccountings(ctx context.Context, fiscalYearID string) ([]domain.CostAccounting, error) {
	return s.costRepo.ListCostAccountings(ctx, fiscalYearID)
}

// CloseCostAccounting closes the cost accounting. Unclosed entries or entry
// templates still referencing it block the close.
func (s *costAccountingService) CloseCostAccounting(ctx context.Context, costAccountingID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	cost, err := s.costRepo.FindCostAccountingByID(ctx, costAccountingID)
	if err != nil {
		return fmt.Errorf("failed to find cost accounting %s: %w", costAccountingID, err)
	}
	if cost.Status == domain.CostClosed {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCostClosed)
	}

	nEntries, err := s.entryRepo.CountUnclosedEntriesByCost(ctx, costAccountingID)
	if err != nil {
		return fmt.Errorf("failed to count unclosed entries: %w", err)
	}
	if nEntries > 0 {
		return fmt.Errorf("%w: %s (%d entries)", apperrors.ErrValidation, ErrCostHasOpenEntries, nEntries)
	}

	nModels, err := s.costRepo.CountModelEntriesByCost(ctx, costAccountingID)
	if err != nil {
		return fmt.Errorf("failed to count referencing templates: %w", err)
	}
	if nModels > 0 {
		return fmt.Errorf("%w: %s (%d templates)", apperrors.ErrValidation, ErrCostHasTemplates, nModels)
	}

	if cost.IsDefault {
		if err := s.costRepo.SetDefaultCostAccounting(ctx, ""); err != nil {
			return fmt.Errorf("failed to clear default cost accounting: %w", err)
		}
		cost.IsDefault = false
	}

	cost.Status = domain.CostClosed
	cost.LastUpdatedAt = time.Now().UTC()
	cost.LastUpdatedBy = userID
	if err := s.costRepo.UpdateCostAccounting(ctx, *cost); err != nil {
		return fmt.Errorf("failed to close cost accounting %s: %w", costAccountingID, err)
	}

	logger.Info("Cost accounting closed", "cost_accounting_id", costAccountingID)
	return nil
}

// ToggleDefault flips the default flag. A closed cost accounting can only be
// cleared, never made the default.
func (s *costAccountingService) ToggleDefault(ctx context.Context, costAccountingID string) error {
	cost, err := s.costRepo.FindCostAccountingByID(ctx, costAccountingID)
	if err != nil {
		return fmt.Errorf("failed to find cost accounting %s: %w", costAccountingID, err)
	}

	if cost.IsDefault {
		return s.costRepo.SetDefaultCostAccounting(ctx, "")
	}
	if cost.Status == domain.CostClosed {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCostClosed)
	}
	return s.costRepo.SetDefaultCostAccounting(ctx, costAccountingID)
}

func (s *costAccountingService) CostAccountingResult(ctx context.Context, costAccountingID string) (*domain.CostAccountingResult, error) {
	return s.costRepo.CostAccountingResult(ctx, costAccountingID)
}

// SweepClosedCostRefs detaches closed cost accountings from unclosed entries.
// A closed cost must never attract new postings; entries still open simply
// lose the stale reference.
func (s *costAccountingService) SweepClosedCostRefs(ctx context.Context) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	all, err := s.costRepo.ListCostAccountings(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("failed to list cost accountings: %w", err)
	}

	cleaned := 0
	for _, cost := range all {
		if cost.Status != domain.CostClosed {
			continue
		}
		n, err := s.entryRepo.CountUnclosedEntriesByCost(ctx, cost.CostAccountingID)
		if err != nil {
			return cleaned, fmt.Errorf("failed to count unclosed entries: %w", err)
		}
		if n == 0 {
			continue
		}
		if err := s.entryRepo.ClearCostAccountingRefs(ctx, cost.CostAccountingID); err != nil {
			return cleaned, fmt.Errorf("failed to clear cost refs of %s: %w", cost.CostAccountingID, err)
		}
		cleaned += n
	}

	if cleaned > 0 {
		logger.Info("Closed cost accounting references cleared", "entry_count", cleaned)
	}
	return cleaned, nil
}
