package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill represents a sales document row. Num is only set once validated.
type Bill struct {
	BillID           string    `db:"bill_id"`
	FiscalYearID     *string   `db:"fiscal_year_id"`
	Type             int16     `db:"bill_type"`
	Num              *int      `db:"num"`
	Date             time.Time `db:"bill_date"`
	Comment          string    `db:"comment"`
	Status           int16     `db:"status"`
	ThirdID          int64     `db:"third_id"`
	EntryID          *string   `db:"entry_id"`
	CostAccountingID *string   `db:"cost_accounting_id"`
	AuditFields
}

// BillDetail represents one sold line of a bill.
type BillDetail struct {
	DetailID        int64           `db:"detail_id"`
	BillID          string          `db:"bill_id"`
	Designation     string          `db:"designation"`
	SellAccountCode string          `db:"sell_account_code"`
	ExclTaxTotal    decimal.Decimal `db:"excl_tax_total"`
	ReduceExclTax   decimal.Decimal `db:"reduce_excl_tax"`
	VATAmount       decimal.Decimal `db:"vat_amount"`
}
