package domain

import "github.com/shopspring/decimal"

// ModelEntry is a reusable entry template stamped out into a staged line-set,
// optionally scaled by a factor.
type ModelEntry struct {
	ModelEntryID     string
	JournalID        int64
	Designation      string
	CostAccountingID *string
}

// ModelLineEntry is one template line, keyed by account code so the template
// survives across fiscal years.
type ModelLineEntry struct {
	ModelLineID  int64
	ModelEntryID string
	Code         string
	ThirdID      int64 // 0 = no counterparty
	Amount       decimal.Decimal
}

// Budget is a pure forecast line compared against actuals by reporting; it
// carries no ledger invariant.
type Budget struct {
	BudgetID         string
	FiscalYearID     *string
	CostAccountingID *string
	Code             string
	Amount           decimal.Decimal
}
