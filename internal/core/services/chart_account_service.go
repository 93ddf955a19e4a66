package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bizledger/bizledger_app/internal/accountsystem"
	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/bizledger/bizledger_app/internal/utils/accounting"
)

var (
	ErrYearFinished     = errors.New("fiscal year is finished")
	ErrEmptyAccountCode = errors.New("account code must not be empty")
)

// chartAccountService manages a fiscal year's chart of accounts, with code
// normalization and lazy creation through the jurisdiction classifier.
type chartAccountService struct {
	chartRepo portsrepo.ChartAccountRepositoryFacade
	yearRepo  portsrepo.FiscalYearReader
	paramRepo portsrepo.ParameterRepository
	system    accountsystem.System
}

// NewChartAccountService creates a new ChartAccountService.
func NewChartAccountService(chartRepo portsrepo.ChartAccountRepositoryFacade, yearRepo portsrepo.FiscalYearReader, paramRepo portsrepo.ParameterRepository, system accountsystem.System) portssvc.ChartAccountSvcFacade {
	return &chartAccountService{
		chartRepo: chartRepo,
		yearRepo:  yearRepo,
		paramRepo: paramRepo,
		system:    system,
	}
}

var _ portssvc.ChartAccountSvcFacade = (*chartAccountService)(nil)

// NormalizeCode canonicalizes a code per the configured size parameter.
func (s *chartAccountService) NormalizeCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyAccountCode)
	}
	minSize := accounting.DefaultCodeSize
	sizeText, err := s.paramRepo.GetParameter(ctx, ParamCodeSize)
	if err != nil {
		return "", fmt.Errorf("failed to read code size parameter: %w", err)
	}
	if sizeText != "" {
		if n, convErr := strconv.Atoi(sizeText); convErr == nil && n > 0 {
			minSize = n
		}
	}
	normalized := accounting.NormalizeCode(code, minSize, 0)
	if normalized == "" {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyAccountCode)
	}
	return normalized, nil
}

// requireEditableYear fetches the year and refuses finished ones.
func (s *chartAccountService) requireEditableYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	year, err := s.yearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	if year.Status == domain.YearFinished {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearFinished)
	}
	return year, nil
}

// CreateChartAccount hand-creates an account with a normalized code, typed by
// the jurisdiction classifier.
func (s *chartAccountService) CreateChartAccount(ctx context.Context, req dto.CreateChartAccountRequest, creatorUserID string) (*domain.ChartAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireEditableYear(ctx, req.FiscalYearID); err != nil {
		return nil, err
	}

	code, err := s.NormalizeCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	defaultName, accountType, err := s.system.NewAccount(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	name := req.Name
	if name == "" {
		name = defaultName
	}

	now := time.Now().UTC()
	account := domain.ChartAccount{
		FiscalYearID: req.FiscalYearID,
		Code:         code,
		Name:         name,
		Type:         accountType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	id, err := s.chartRepo.SaveChartAccount(ctx, account)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: code %s already exists in year %s", apperrors.ErrDuplicate, code, req.FiscalYearID)
		}
		logger.Error("Failed to save chart account", "code", code, "error", err)
		return nil, fmt.Errorf("failed to save chart account: %w", err)
	}
	account.ChartAccountID = id

	logger.Info("Chart account created", "code", code, "fiscal_year_id", req.FiscalYearID)
	return &account, nil
}

// GetOrCreateChartAccount resolves a code within a year, lazily creating the
// account on first reference. Used by year-close carry-forward and model
// stamping, where codes travel across years.
func (s *chartAccountService) GetOrCreateChartAccount(ctx context.Context, fiscalYearID, code, name, userID string) (*domain.ChartAccount, error) {
	normalized, err := s.NormalizeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	existing, err := s.chartRepo.FindChartAccountByCode(ctx, fiscalYearID, normalized)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve code %s: %w", normalized, err)
	}

	created, err := s.CreateChartAccount(ctx, dto.CreateChartAccountRequest{
		FiscalYearID: fiscalYearID,
		Code:         normalized,
		Name:         name,
	}, userID)
	if err == nil {
		return created, nil
	}
	// Lost a creation race: someone inserted the code concurrently.
	if errors.Is(err, apperrors.ErrDuplicate) {
		return s.chartRepo.FindChartAccountByCode(ctx, fiscalYearID, normalized)
	}
	return nil, err
}

// FindChartAccount resolves a code within a year without creating.
func (s *chartAccountService) FindChartAccount(ctx context.Context, fiscalYearID, code string) (*domain.ChartAccount, error) {
	normalized, err := s.NormalizeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.chartRepo.FindChartAccountByCode(ctx, fiscalYearID, normalized)
}

// ListChartAccounts lists the year's chart ordered by code.
func (s *chartAccountService) ListChartAccounts(ctx context.Context, fiscalYearID, prefix string) ([]domain.ChartAccount, error) {
	return s.chartRepo.ListChartAccountsByYear(ctx, fiscalYearID, prefix)
}

// ChartAccountTotals aggregates the account's positions.
func (s *chartAccountService) ChartAccountTotals(ctx context.Context, chartAccountID int64) (*domain.ChartAccountTotals, error) {
	return s.chartRepo.ChartAccountTotals(ctx, chartAccountID)
}
