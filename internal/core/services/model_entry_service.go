package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/bizledger/bizledger_app/internal/utils/serial"
)

var ErrModelNoLines = errors.New("entry template must have at least one line")

// modelEntryService manages reusable entry templates. Template lines carry
// account codes, not ids, so a template stamps cleanly into any fiscal year.
type modelEntryService struct {
	modelRepo   portsrepo.ModelEntryRepository
	journalRepo portsrepo.JournalRepository
	chartSvc    portssvc.ChartAccountSvcFacade
}

// NewModelEntryService creates a new ModelEntryService.
func NewModelEntryService(modelRepo portsrepo.ModelEntryRepository, journalRepo portsrepo.JournalRepository, chartSvc portssvc.ChartAccountSvcFacade) portssvc.ModelEntrySvcFacade {
	return &modelEntryService{
		modelRepo:   modelRepo,
		journalRepo: journalRepo,
		chartSvc:    chartSvc,
	}
}

var _ portssvc.ModelEntrySvcFacade = (*modelEntryService)(nil)

// SaveModelEntry creates or replaces a template with its lines.
func (s *modelEntryService) SaveModelEntry(ctx context.Context, req dto.SaveModelEntryRequest, userID string) (*domain.ModelEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrModelNoLines)
	}
	if _, err := s.journalRepo.FindJournalByID(ctx, req.JournalID); err != nil {
		return nil, fmt.Errorf("failed to find journal %d: %w", req.JournalID, err)
	}

	model := domain.ModelEntry{
		ModelEntryID:     req.ModelEntryID,
		JournalID:        req.JournalID,
		Designation:      req.Designation,
		CostAccountingID: req.CostAccountingID,
	}
	if model.ModelEntryID == "" {
		model.ModelEntryID = uuid.NewString()
	}

	lines := make([]domain.ModelLineEntry, 0, len(req.Lines))
	for _, l := range req.Lines {
		code, err := s.chartSvc.NormalizeCode(ctx, l.Code)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.ModelLineEntry{
			ModelEntryID: model.ModelEntryID,
			Code:         code,
			ThirdID:      l.ThirdID,
			Amount:       l.Amount,
		})
	}

	if err := s.modelRepo.SaveModelEntry(ctx, model, lines); err != nil {
		logger.Error("Failed to save entry template", "model_entry_id", model.ModelEntryID, "error", err)
		return nil, fmt.Errorf("failed to save entry template: %w", err)
	}

	logger.Info("Entry template saved", "model_entry_id", model.ModelEntryID, "user_id", userID)
	return &model, nil
}

// DeleteModelEntry removes a template and its lines.
func (s *modelEntryService) DeleteModelEntry(ctx context.Context, modelEntryID string) error {
	if err := s.modelRepo.DeleteModelEntry(ctx, modelEntryID); err != nil {
		return fmt.Errorf("failed to delete entry template %s: %w", modelEntryID, err)
	}
	return nil
}

// ListModelEntries returns all templates without their lines.
func (s *modelEntryService) ListModelEntries(ctx context.Context) ([]domain.ModelEntry, error) {
	return s.modelRepo.ListModelEntries(ctx)
}

// GetModelEntry returns a template with its lines.
func (s *modelEntryService) GetModelEntry(ctx context.Context, modelEntryID string) (*domain.ModelEntry, []domain.ModelLineEntry, error) {
	model, err := s.modelRepo.FindModelEntryByID(ctx, modelEntryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find entry template %s: %w", modelEntryID, err)
	}
	lines, err := s.modelRepo.ListModelLines(ctx, modelEntryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list template lines: %w", err)
	}
	return model, lines, nil
}

// StampModel resolves the template's codes in the target year, lazily creating
// missing accounts, and returns the staged serial of its lines scaled by
// factor. Every stamped line gets a fresh pending ref.
func (s *modelEntryService) StampModel(ctx context.Context, modelEntryID string, factor decimal.Decimal, fiscalYearID string, userID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, templateLines, err := s.GetModelEntry(ctx, modelEntryID)
	if err != nil {
		return "", err
	}
	if factor.IsZero() {
		factor = decimal.NewFromInt(1)
	}

	staged := make([]serial.Line, 0, len(templateLines))
	for _, l := range templateLines {
		account, err := s.chartSvc.GetOrCreateChartAccount(ctx, fiscalYearID, l.Code, "", userID)
		if err != nil {
			return "", fmt.Errorf("failed to resolve template code %s in year %s: %w", l.Code, fiscalYearID, err)
		}
		staged = append(staged, serial.Line{
			Ref:       domain.NewPendingLineRef(),
			AccountID: account.ChartAccountID,
			ThirdID:   l.ThirdID,
			Amount:    l.Amount.Mul(factor),
		})
	}

	logger.Info("Entry template stamped", "model_entry_id", modelEntryID, "fiscal_year_id", fiscalYearID, "lines", len(staged))
	return serial.Serialize(staged), nil
}
