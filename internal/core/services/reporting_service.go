package services

import (
	"context"
	"fmt"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// reportingService assembles read-only report contexts over closed entries.
type reportingService struct {
	yearRepo    portsrepo.FiscalYearReader
	journalRepo portsrepo.JournalRepository
	entryRepo   portsrepo.EntryReader
	chartRepo   portsrepo.ChartAccountReader
	costRepo    portsrepo.CostAccountingRepository
	budgetSvc   portssvc.BudgetSvcFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(
	yearRepo portsrepo.FiscalYearReader,
	journalRepo portsrepo.JournalRepository,
	entryRepo portsrepo.EntryReader,
	chartRepo portsrepo.ChartAccountReader,
	costRepo portsrepo.CostAccountingRepository,
	budgetSvc portssvc.BudgetSvcFacade,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		yearRepo:    yearRepo,
		journalRepo: journalRepo,
		entryRepo:   entryRepo,
		chartRepo:   chartRepo,
		costRepo:    costRepo,
		budgetSvc:   budgetSvc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// YearLedger groups the year's closed entries by journal, in journal order.
// Journals without closed entries are omitted from the context.
func (s *reportingService) YearLedger(ctx context.Context, fiscalYearID string) (*domain.YearLedgerContext, error) {
	year, err := s.yearRepo.FindFiscalYearByID(ctx, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}

	journals, err := s.journalRepo.ListJournals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}

	result := &domain.YearLedgerContext{Year: *year}
	for _, journal := range journals {
		entries, err := s.entryRepo.ListEntriesByYear(ctx, fiscalYearID, journal.JournalID, true)
		if err != nil {
			return nil, fmt.Errorf("failed to list entries for journal %d: %w", journal.JournalID, err)
		}
		if len(entries) == 0 {
			continue
		}
		result.EntriesByJournal = append(result.EntriesByJournal, domain.JournalEntries{
			Journal: journal,
			Entries: entries,
		})
	}
	return result, nil
}

// TrialBalance returns per-account debit/credit totals for the year's closed
// entries, optionally restricted to a code prefix.
func (s *reportingService) TrialBalance(ctx context.Context, fiscalYearID, codePrefix string) ([]dto.TrialBalanceRow, error) {
	if _, err := s.yearRepo.FindFiscalYearByID(ctx, fiscalYearID); err != nil {
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}

	rows, err := s.chartRepo.TrialBalance(ctx, fiscalYearID, codePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trial balance: %w", err)
	}

	out := make([]dto.TrialBalanceRow, len(rows))
	for i, r := range rows {
		out[i] = dto.TrialBalanceRow{
			Code:    r.Code,
			Name:    r.Name,
			Debit:   r.Debit,
			Credit:  r.Credit,
			Balance: r.Balance(),
		}
	}
	return out, nil
}

// CostAccountingReport combines a cost accounting's actual result with its
// budget totals.
func (s *reportingService) CostAccountingReport(ctx context.Context, costAccountingID string) (*dto.CostAccountingReport, error) {
	cost, err := s.costRepo.FindCostAccountingByID(ctx, costAccountingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cost accounting %s: %w", costAccountingID, err)
	}

	actual, err := s.costRepo.CostAccountingResult(ctx, costAccountingID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate cost accounting result: %w", err)
	}

	yearID := ""
	if cost.FiscalYearID != nil {
		yearID = *cost.FiscalYearID
	}
	budgets, revenue, expense, err := s.budgetSvc.ListBudgets(ctx, yearID, costAccountingID)
	if err != nil {
		return nil, err
	}

	return &dto.CostAccountingReport{
		CostAccounting: dto.ToCostAccountingResponse(cost),
		Actual:         dto.ToCostAccountingResultResponse(actual),
		Budget:         dto.ToListBudgetsResponse(budgets, revenue, expense),
	}, nil
}
