package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelBill converts a domain Bill to a model Bill (without details)
func ToModelBill(d domain.Bill) models.Bill {
	return models.Bill{
		BillID:           d.BillID,
		FiscalYearID:     d.FiscalYearID,
		Type:             int16(d.Type),
		Num:              d.Num,
		Date:             d.Date,
		Comment:          d.Comment,
		Status:           int16(d.Status),
		ThirdID:          d.ThirdID,
		EntryID:          d.EntryID,
		CostAccountingID: d.CostAccountingID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBill converts a model Bill with its detail rows to a domain Bill
func ToDomainBill(m models.Bill, details []models.BillDetail) domain.Bill {
	bill := domain.Bill{
		BillID:           m.BillID,
		FiscalYearID:     m.FiscalYearID,
		Type:             domain.BillType(m.Type),
		Num:              m.Num,
		Date:             m.Date,
		Comment:          m.Comment,
		Status:           domain.BillStatus(m.Status),
		ThirdID:          m.ThirdID,
		EntryID:          m.EntryID,
		CostAccountingID: m.CostAccountingID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	for _, det := range details {
		bill.Details = append(bill.Details, ToDomainBillDetail(det))
	}
	return bill
}

// ToModelBillDetail converts a domain BillDetail to a model BillDetail
func ToModelBillDetail(d domain.BillDetail) models.BillDetail {
	return models.BillDetail{
		DetailID:        d.DetailID,
		BillID:          d.BillID,
		Designation:     d.Designation,
		SellAccountCode: d.SellAccountCode,
		ExclTaxTotal:    d.ExclTaxTotal,
		ReduceExclTax:   d.ReduceExclTax,
		VATAmount:       d.VATAmount,
	}
}

// ToDomainBillDetail converts a model BillDetail to a domain BillDetail
func ToDomainBillDetail(m models.BillDetail) domain.BillDetail {
	return domain.BillDetail{
		DetailID:        m.DetailID,
		BillID:          m.BillID,
		Designation:     m.Designation,
		SellAccountCode: m.SellAccountCode,
		ExclTaxTotal:    m.ExclTaxTotal,
		ReduceExclTax:   m.ReduceExclTax,
		VATAmount:       m.VATAmount,
	}
}
