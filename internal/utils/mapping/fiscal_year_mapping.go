package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelFiscalYear converts a domain FiscalYear to a model FiscalYear
func ToModelFiscalYear(d domain.FiscalYear) models.FiscalYear {
	return models.FiscalYear{
		FiscalYearID:  d.FiscalYearID,
		Begin:         d.Begin,
		End:           d.End,
		Status:        int16(d.Status),
		IsActive:      d.IsActive,
		PredecessorID: d.PredecessorID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalYear converts a model FiscalYear to a domain FiscalYear
func ToDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID:  m.FiscalYearID,
		Begin:         m.Begin,
		End:           m.End,
		Status:        domain.FiscalYearStatus(m.Status),
		IsActive:      m.IsActive,
		PredecessorID: m.PredecessorID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFiscalYearSlice converts a slice of model FiscalYears
func ToDomainFiscalYearSlice(ms []models.FiscalYear) []domain.FiscalYear {
	ds := make([]domain.FiscalYear, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFiscalYear(m)
	}
	return ds
}
