package models

import "github.com/shopspring/decimal"

// Journal represents one of the fixed journal rows.
type Journal struct {
	JournalID int64  `db:"journal_id"`
	Name      string `db:"name"`
}

// Parameter represents one configuration key/value row.
type Parameter struct {
	Name  string `db:"name"`
	Value string `db:"value"`
}

// Budget represents a forecast line row.
type Budget struct {
	BudgetID         string          `db:"budget_id"`
	FiscalYearID     *string         `db:"fiscal_year_id"`
	CostAccountingID *string         `db:"cost_accounting_id"`
	Code             string          `db:"code"`
	Amount           decimal.Decimal `db:"amount"`
}

// ModelEntry represents an entry template row.
type ModelEntry struct {
	ModelEntryID     string  `db:"model_entry_id"`
	JournalID        int64   `db:"journal_id"`
	Designation      string  `db:"designation"`
	CostAccountingID *string `db:"cost_accounting_id"`
}

// ModelLineEntry represents one template line row.
type ModelLineEntry struct {
	ModelLineID  int64           `db:"model_line_id"`
	ModelEntryID string          `db:"model_entry_id"`
	Code         string          `db:"code"`
	ThirdID      *int64          `db:"third_id"`
	Amount       decimal.Decimal `db:"amount"`
}
