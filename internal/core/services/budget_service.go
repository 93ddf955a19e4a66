package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/bizledger_app/internal/accountsystem"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// budgetService manages pure forecast lines. Budgets carry no ledger
// invariant; they are only compared against actuals by reporting.
type budgetService struct {
	budgetRepo portsrepo.BudgetRepository
	chartSvc   portssvc.ChartAccountSvcFacade
	system     accountsystem.System
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepository, chartSvc portssvc.ChartAccountSvcFacade, system accountsystem.System) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo: budgetRepo,
		chartSvc:   chartSvc,
		system:     system,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// SaveBudget creates or updates a forecast line. The code is normalized but
// not required to exist in any chart: forecasts may precede the accounts they
// describe.
func (s *budgetService) SaveBudget(ctx context.Context, req dto.SaveBudgetRequest, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code, err := s.chartSvc.NormalizeCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	budget := domain.Budget{
		BudgetID:         req.BudgetID,
		FiscalYearID:     req.FiscalYearID,
		CostAccountingID: req.CostAccountingID,
		Code:             code,
		Amount:           req.Amount,
	}
	if budget.BudgetID == "" {
		budget.BudgetID = uuid.NewString()
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget line", "code", code, "error", err)
		return nil, fmt.Errorf("failed to save budget line: %w", err)
	}

	logger.Info("Budget line saved", "budget_id", budget.BudgetID, "code", code, "user_id", userID)
	return &budget, nil
}

// DeleteBudget removes a forecast line.
func (s *budgetService) DeleteBudget(ctx context.Context, budgetID string) error {
	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		return fmt.Errorf("failed to delete budget line %s: %w", budgetID, err)
	}
	return nil
}

// ListBudgets returns the scoped forecast lines together with their revenue
// and expense totals, classified by the jurisdiction masks.
func (s *budgetService) ListBudgets(ctx context.Context, fiscalYearID, costAccountingID string) ([]domain.Budget, decimal.Decimal, decimal.Decimal, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, fiscalYearID, costAccountingID)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("failed to list budget lines: %w", err)
	}

	revenue, err := s.budgetRepo.SumBudgetByMask(ctx, fiscalYearID, costAccountingID, s.system.Mask(domain.MaskRevenue).String())
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum revenue budget: %w", err)
	}
	expense, err := s.budgetRepo.SumBudgetByMask(ctx, fiscalYearID, costAccountingID, s.system.Mask(domain.MaskExpense).String())
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum expense budget: %w", err)
	}
	return budgets, revenue, expense, nil
}
