package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID: m.JournalID,
		Name:      m.Name,
	}
}

// ToDomainJournalSlice converts a slice of model Journals
func ToDomainJournalSlice(ms []models.Journal) []domain.Journal {
	ds := make([]domain.Journal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournal(m)
	}
	return ds
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:         m.BudgetID,
		FiscalYearID:     m.FiscalYearID,
		CostAccountingID: m.CostAccountingID,
		Code:             m.Code,
		Amount:           m.Amount,
	}
}

// ToDomainBudgetSlice converts a slice of model Budgets
func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	ds := make([]domain.Budget, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}

// ToDomainModelEntry converts a model ModelEntry to a domain ModelEntry
func ToDomainModelEntry(m models.ModelEntry) domain.ModelEntry {
	return domain.ModelEntry{
		ModelEntryID:     m.ModelEntryID,
		JournalID:        m.JournalID,
		Designation:      m.Designation,
		CostAccountingID: m.CostAccountingID,
	}
}

// ToDomainModelEntrySlice converts a slice of model ModelEntries
func ToDomainModelEntrySlice(ms []models.ModelEntry) []domain.ModelEntry {
	ds := make([]domain.ModelEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainModelEntry(m)
	}
	return ds
}

// ToDomainModelLineEntry converts a model ModelLineEntry to a domain
// ModelLineEntry. A NULL third column maps to third id 0.
func ToDomainModelLineEntry(m models.ModelLineEntry) domain.ModelLineEntry {
	thirdID := int64(0)
	if m.ThirdID != nil {
		thirdID = *m.ThirdID
	}
	return domain.ModelLineEntry{
		ModelLineID:  m.ModelLineID,
		ModelEntryID: m.ModelEntryID,
		Code:         m.Code,
		ThirdID:      thirdID,
		Amount:       m.Amount,
	}
}
