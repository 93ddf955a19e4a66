package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// Ledger parameter names. An empty value means "unset"; operations that need
// an unset parameter fail with ErrConfiguration naming it.
const (
	ParamCurrencySymbol     = "accounting-devise"
	ParamCurrencyISO        = "accounting-devise-iso"
	ParamCurrencyPrecision  = "accounting-devise-prec"
	ParamCodeSize           = "accounting-sizecode"
	ParamCashAccount        = "payoff-cash-account"
	ParamBankChargesAccount = "payoff-bankcharges-account"
	ParamReduceAccount      = "invoice-reduce-account"
	ParamVATSellAccount     = "invoice-vatsell-account"
	ParamDefaultSellAccount = "invoice-default-sell-account"
)

var knownParameters = map[string]struct{}{
	ParamCurrencySymbol:     {},
	ParamCurrencyISO:        {},
	ParamCurrencyPrecision:  {},
	ParamCodeSize:           {},
	ParamCashAccount:        {},
	ParamBankChargesAccount: {},
	ParamReduceAccount:      {},
	ParamVATSellAccount:     {},
	ParamDefaultSellAccount: {},
}

// parameterService exposes the key/value ledger configuration.
type parameterService struct {
	paramRepo portsrepo.ParameterRepository
}

// NewParameterService creates a new ParameterService.
func NewParameterService(paramRepo portsrepo.ParameterRepository) portssvc.ParameterSvcFacade {
	return &parameterService{paramRepo: paramRepo}
}

var _ portssvc.ParameterSvcFacade = (*parameterService)(nil)

func (s *parameterService) GetParameter(ctx context.Context, name string) (string, error) {
	if _, ok := knownParameters[name]; !ok {
		return "", fmt.Errorf("%w: unknown parameter %q", apperrors.ErrValidation, name)
	}
	return s.paramRepo.GetParameter(ctx, name)
}

func (s *parameterService) SetParameter(ctx context.Context, name string, value string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, ok := knownParameters[name]; !ok {
		return fmt.Errorf("%w: unknown parameter %q", apperrors.ErrValidation, name)
	}
	if err := s.paramRepo.SetParameter(ctx, name, value); err != nil {
		logger.Error("Failed to set parameter", "name", name, "error", err)
		return fmt.Errorf("failed to set parameter %s: %w", name, err)
	}
	logger.Info("Parameter updated", "name", name, "by", userID)
	return nil
}

// CurrencyInfo returns the configured currency symbol, ISO code and precision.
// The precision defaults to 2 when unset or malformed.
func (s *parameterService) CurrencyInfo(ctx context.Context) (string, string, int32, error) {
	symbol, err := s.paramRepo.GetParameter(ctx, ParamCurrencySymbol)
	if err != nil {
		return "", "", 0, err
	}
	iso, err := s.paramRepo.GetParameter(ctx, ParamCurrencyISO)
	if err != nil {
		return "", "", 0, err
	}
	precText, err := s.paramRepo.GetParameter(ctx, ParamCurrencyPrecision)
	if err != nil {
		return "", "", 0, err
	}
	precision := int32(2)
	if precText != "" {
		if p, convErr := strconv.Atoi(precText); convErr == nil && p >= 0 {
			precision = int32(p)
		}
	}
	return symbol, iso, precision, nil
}
