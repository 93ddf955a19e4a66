package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BillType discriminates the document variants sharing the bill posting flow.
// An asset (credit note) posts with inverted sign.
type BillType int

const (
	BillTypeQuotation BillType = iota
	BillTypeBill
	BillTypeAsset
	BillTypeReceipt
)

func (t BillType) String() string {
	switch t {
	case BillTypeQuotation:
		return "QUOTATION"
	case BillTypeBill:
		return "BILL"
	case BillTypeAsset:
		return "ASSET"
	case BillTypeReceipt:
		return "RECEIPT"
	}
	return fmt.Sprintf("BillType(%d)", int(t))
}

// BillStatus is the document lifecycle. Only a building bill is editable;
// validation posts it to the ledger.
type BillStatus int

const (
	BillBuilding BillStatus = iota
	BillValid
	BillCancelled
	BillArchived
)

// BillDetail is one sold line of a bill. ExclTaxTotal is the net total after
// discount; ReduceExclTax the discount granted on the line; VATAmount the tax.
type BillDetail struct {
	DetailID        int64
	BillID          string
	Designation     string
	SellAccountCode string
	ExclTaxTotal    decimal.Decimal
	ReduceExclTax   decimal.Decimal
	VATAmount       decimal.Decimal
}

// Bill is a customer-facing sales document (quotation, bill, credit note or
// receipt). Validated bills own the ledger entry generated from their details.
type Bill struct {
	BillID           string
	FiscalYearID     *string
	Type             BillType
	Num              *int
	Date             time.Time
	Comment          string
	Status           BillStatus
	ThirdID          int64
	EntryID          *string
	CostAccountingID *string
	Details          []BillDetail
	AuditFields
}

func (b Bill) String() string {
	if b.Num == nil {
		return fmt.Sprintf("%s - %s", b.Type, b.Date.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s %d - %s", b.Type, *b.Num, b.Date.Format("2006-01-02"))
}

// TotalExclTax sums the net line totals.
func (b Bill) TotalExclTax() decimal.Decimal {
	total := decimal.Zero
	for _, d := range b.Details {
		total = total.Add(d.ExclTaxTotal)
	}
	return total
}

// ReduceSum sums the discounts granted across lines.
func (b Bill) ReduceSum() decimal.Decimal {
	total := decimal.Zero
	for _, d := range b.Details {
		total = total.Add(d.ReduceExclTax)
	}
	return total
}

// VATSum sums the tax across lines.
func (b Bill) VATSum() decimal.Decimal {
	total := decimal.Zero
	for _, d := range b.Details {
		total = total.Add(d.VATAmount)
	}
	return total
}

// TotalInclTax is the gross document total.
func (b Bill) TotalInclTax() decimal.Decimal {
	return b.TotalExclTax().Add(b.VATSum())
}

// Supportable implementation.

func (b Bill) SupportingID() string      { return b.BillID }
func (b Bill) SupportingThirdID() int64  { return b.ThirdID }
func (b Bill) Total() decimal.Decimal    { return b.TotalInclTax() }
func (b Bill) ThirdMask() AccountMask    { return MaskCustomer }
func (b Bill) CurrentDate() time.Time    { return b.Date }

// PayoffIsRevenue reports the polarity of payments against this document:
// bills and receipts collect money, quotations and credit notes do not.
func (b Bill) PayoffIsRevenue() bool {
	return b.Type != BillTypeQuotation && b.Type != BillTypeAsset
}

// EntryLinks lists the prior ledger entries a settling payment is lettered
// with, i.e. the bill's own posting when it exists.
func (b Bill) EntryLinks() []string {
	if b.EntryID == nil {
		return nil
	}
	return []string{*b.EntryID}
}

func (b Bill) DefaultCostAccountingID() *string { return b.CostAccountingID }
