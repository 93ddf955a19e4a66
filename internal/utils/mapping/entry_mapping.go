package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelEntryAccount converts a domain EntryAccount to a model EntryAccount
func ToModelEntryAccount(d domain.EntryAccount) models.EntryAccount {
	return models.EntryAccount{
		EntryID:          d.EntryID,
		FiscalYearID:     d.FiscalYearID,
		Num:              d.Num,
		JournalID:        d.JournalID,
		EntryDate:        d.EntryDate,
		ValueDate:        d.ValueDate,
		Designation:      d.Designation,
		Closed:           d.Closed,
		CostAccountingID: d.CostAccountingID,
		LinkID:           d.LinkID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntryAccount converts a model EntryAccount to a domain EntryAccount
func ToDomainEntryAccount(m models.EntryAccount) domain.EntryAccount {
	return domain.EntryAccount{
		EntryID:          m.EntryID,
		FiscalYearID:     m.FiscalYearID,
		Num:              m.Num,
		JournalID:        m.JournalID,
		EntryDate:        m.EntryDate,
		ValueDate:        m.ValueDate,
		Designation:      m.Designation,
		Closed:           m.Closed,
		CostAccountingID: m.CostAccountingID,
		LinkID:           m.LinkID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntryAccountSlice converts a slice of model EntryAccounts
func ToDomainEntryAccountSlice(ms []models.EntryAccount) []domain.EntryAccount {
	ds := make([]domain.EntryAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntryAccount(m)
	}
	return ds
}

// ToDomainEntryLineAccount converts a model EntryLineAccount, carrying the
// joined account along. A NULL third column maps to third id 0.
func ToDomainEntryLineAccount(m models.EntryLineAccount) domain.EntryLineAccount {
	thirdID := int64(0)
	if m.ThirdID != nil {
		thirdID = *m.ThirdID
	}
	return domain.EntryLineAccount{
		Ref:       domain.PersistedLineRef(m.EntryLineID),
		EntryID:   m.EntryID,
		Account:   ToDomainChartAccount(m.Account),
		Amount:    m.Amount,
		ThirdID:   thirdID,
		Reference: m.Reference,
	}
}
