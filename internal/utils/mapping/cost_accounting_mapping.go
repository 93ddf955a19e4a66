package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelCostAccounting converts a domain CostAccounting to a model CostAccounting
func ToModelCostAccounting(d domain.CostAccounting) models.CostAccounting {
	return models.CostAccounting{
		CostAccountingID: d.CostAccountingID,
		Name:             d.Name,
		Description:      d.Description,
		Status:           int16(d.Status),
		FiscalYearID:     d.FiscalYearID,
		IsDefault:        d.IsDefault,
		IsProtected:      d.IsProtected,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCostAccounting converts a model CostAccounting to a domain CostAccounting
func ToDomainCostAccounting(m models.CostAccounting) domain.CostAccounting {
	return domain.CostAccounting{
		CostAccountingID: m.CostAccountingID,
		Name:             m.Name,
		Description:      m.Description,
		Status:           domain.CostAccountingStatus(m.Status),
		FiscalYearID:     m.FiscalYearID,
		IsDefault:        m.IsDefault,
		IsProtected:      m.IsProtected,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCostAccountingSlice converts a slice of model CostAccountings
func ToDomainCostAccountingSlice(ms []models.CostAccounting) []domain.CostAccounting {
	ds := make([]domain.CostAccounting, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCostAccounting(m)
	}
	return ds
}
