package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryAccount represents a journal entry row. Num and EntryDate are only set
// once the entry is closed.
type EntryAccount struct {
	EntryID          string     `db:"entry_id"`
	FiscalYearID     string     `db:"fiscal_year_id"`
	Num              *int       `db:"num"`
	JournalID        int64      `db:"journal_id"`
	EntryDate        *time.Time `db:"entry_date"`
	ValueDate        time.Time  `db:"value_date"`
	Designation      string     `db:"designation"`
	Closed           bool       `db:"closed"`
	CostAccountingID *string    `db:"cost_accounting_id"`
	LinkID           *string    `db:"link_id"`
	AuditFields
}

// EntryLineAccount represents one line of an entry joined with its account.
// The amount is stored signed by the account type's credit/debit way.
type EntryLineAccount struct {
	EntryLineID int64           `db:"entry_line_id"`
	EntryID     string          `db:"entry_id"`
	Amount      decimal.Decimal `db:"amount"`
	ThirdID     *int64          `db:"third_id"`
	Reference   *string         `db:"reference"`
	Account     ChartAccount
}
