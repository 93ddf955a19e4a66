package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payoff represents one payment row against a supporting document.
type Payoff struct {
	PayoffID      string          `db:"payoff_id"`
	SupportingID  string          `db:"supporting_id"`
	Date          time.Time       `db:"payoff_date"`
	Amount        decimal.Decimal `db:"amount"`
	Mode          int16           `db:"mode"`
	Payer         string          `db:"payer"`
	Reference     string          `db:"reference"`
	EntryID       *string         `db:"entry_id"`
	BankAccountID *int64          `db:"bank_account_id"`
	BankFee       decimal.Decimal `db:"bank_fee"`
	AuditFields
}

// BankAccount represents a configured bank or cash account row.
type BankAccount struct {
	BankAccountID int64  `db:"bank_account_id"`
	Designation   string `db:"designation"`
	AccountCode   string `db:"account_code"`
}
