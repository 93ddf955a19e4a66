package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizledger/bizledger_app/internal/accountsystem"
	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrThirdNoMatchingAccount = errors.New("third has no account code matching the requested class")
	ErrThirdDisabled          = errors.New("third is disabled")
)

// thirdService manages counterparties and resolves their chart accounts
// through the jurisdiction masks.
type thirdService struct {
	thirdRepo portsrepo.ThirdRepository
	chartSvc  portssvc.ChartAccountSvcFacade
	system    accountsystem.System
}

// NewThirdService creates a new ThirdService.
func NewThirdService(thirdRepo portsrepo.ThirdRepository, chartSvc portssvc.ChartAccountSvcFacade, system accountsystem.System) portssvc.ThirdSvcFacade {
	return &thirdService{
		thirdRepo: thirdRepo,
		chartSvc:  chartSvc,
		system:    system,
	}
}

var _ portssvc.ThirdSvcFacade = (*thirdService)(nil)

func (s *thirdService) CreateThird(ctx context.Context, req dto.CreateThirdRequest, creatorUserID string) (*domain.Third, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	third := domain.Third{Name: req.Name}
	id, err := s.thirdRepo.SaveThird(ctx, third)
	if err != nil {
		logger.Error("Failed to save third", "name", req.Name, "error", err)
		return nil, fmt.Errorf("failed to save third: %w", err)
	}
	third.ThirdID = id

	for _, code := range req.AccountCodes {
		if _, err := s.AttachAccount(ctx, id, code); err != nil {
			return nil, err
		}
	}

	logger.Info("Third created", "third_id", id, "by", creatorUserID)
	return &third, nil
}

func (s *thirdService) GetThird(ctx context.Context, thirdID int64) (*domain.Third, []domain.ThirdAccount, error) {
	third, err := s.thirdRepo.FindThirdByID(ctx, thirdID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find third %d: %w", thirdID, err)
	}
	accounts, err := s.thirdRepo.ListThirdAccounts(ctx, thirdID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list accounts of third %d: %w", thirdID, err)
	}
	return third, accounts, nil
}

func (s *thirdService) ListThirds(ctx context.Context) ([]domain.Third, error) {
	return s.thirdRepo.ListThirds(ctx)
}

// AttachAccount normalizes the code and attaches it to the third. The code is
// not required to exist in any chart yet; resolution is per-year.
func (s *thirdService) AttachAccount(ctx context.Context, thirdID int64, code string) (*domain.ThirdAccount, error) {
	normalized, err := s.chartSvc.NormalizeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	account := domain.ThirdAccount{ThirdID: thirdID, Code: normalized}
	id, err := s.thirdRepo.SaveThirdAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to attach account code %s to third %d: %w", normalized, thirdID, err)
	}
	account.ThirdAccountID = id
	return &account, nil
}

// ResolveAccount picks the third's first account code matching the mask and
// resolves it in the year's chart. Both a missing matching code and a code
// absent from the chart are user-correctable conditions.
func (s *thirdService) ResolveAccount(ctx context.Context, thirdID int64, mask domain.AccountMask, fiscalYearID string) (*domain.ChartAccount, error) {
	accounts, err := s.thirdRepo.ListThirdAccounts(ctx, thirdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts of third %d: %w", thirdID, err)
	}

	pattern := s.system.Mask(mask)
	for _, acc := range accounts {
		if !pattern.MatchString(acc.Code) {
			continue
		}
		chartAccount, err := s.chartSvc.FindChartAccount(ctx, fiscalYearID, acc.Code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: third account code %s is missing from the year's chart", apperrors.ErrValidation, acc.Code)
			}
			return nil, err
		}
		return chartAccount, nil
	}
	return nil, fmt.Errorf("%w: %s (third %d)", apperrors.ErrValidation, ErrThirdNoMatchingAccount, thirdID)
}

func (s *thirdService) ThirdTotal(ctx context.Context, thirdID int64) (decimal.Decimal, error) {
	return s.thirdRepo.ThirdTotal(ctx, thirdID)
}
