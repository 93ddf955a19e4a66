package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelChartAccount converts a domain ChartAccount to a model ChartAccount
func ToModelChartAccount(d domain.ChartAccount) models.ChartAccount {
	return models.ChartAccount{
		ChartAccountID: d.ChartAccountID,
		FiscalYearID:   d.FiscalYearID,
		Code:           d.Code,
		Name:           d.Name,
		Type:           int16(d.Type),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChartAccount converts a model ChartAccount to a domain ChartAccount
func ToDomainChartAccount(m models.ChartAccount) domain.ChartAccount {
	return domain.ChartAccount{
		ChartAccountID: m.ChartAccountID,
		FiscalYearID:   m.FiscalYearID,
		Code:           m.Code,
		Name:           m.Name,
		Type:           domain.AccountType(m.Type),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainChartAccountSlice converts a slice of model ChartAccounts
func ToDomainChartAccountSlice(ms []models.ChartAccount) []domain.ChartAccount {
	ds := make([]domain.ChartAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainChartAccount(m)
	}
	return ds
}
