package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow is one account's aggregated debit/credit position over the
// closed entries of a year. Debit and Credit are non-negative column sums.
type TrialBalanceRow struct {
	Code   string
	Name   string
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Balance returns the debit-minus-credit position of the row.
func (r TrialBalanceRow) Balance() decimal.Decimal {
	return r.Debit.Sub(r.Credit)
}

// JournalEntries groups the closed entries of one journal for rendering.
type JournalEntries struct {
	Journal Journal
	Entries []EntryAccount
}

// YearLedgerContext is the context object handed to report templates: the
// fiscal year plus its closed entries grouped by journal. Journals without
// closed entries are omitted.
type YearLedgerContext struct {
	Year             FiscalYear
	EntriesByJournal []JournalEntries
}
