package dto

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's aggregated debit/credit position.
type TrialBalanceRow struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Balance decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse is the trial balance of a year with column totals.
type TrialBalanceResponse struct {
	FiscalYearID string            `json:"fiscalYearID"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebit   decimal.Decimal   `json:"totalDebit"`
	TotalCredit  decimal.Decimal   `json:"totalCredit"`
}

// CostAccountingReport combines a cost accounting's actuals with its budget.
type CostAccountingReport struct {
	CostAccounting CostAccountingResponse       `json:"costAccounting"`
	Actual         CostAccountingResultResponse `json:"actual"`
	Budget         ListBudgetsResponse          `json:"budget"`
}

// JournalLedgerSection is one journal's closed entries in a year ledger.
type JournalLedgerSection struct {
	JournalID   int64           `json:"journalID"`
	JournalName string          `json:"journalName"`
	Entries     []EntryResponse `json:"entries"`
}

// YearLedgerResponse is the full-year ledger grouped by journal.
type YearLedgerResponse struct {
	Year     FiscalYearResponse     `json:"year"`
	Journals []JournalLedgerSection `json:"journals"`
}

// ToYearLedgerResponse converts a domain.YearLedgerContext.
func ToYearLedgerResponse(ctx *domain.YearLedgerContext) YearLedgerResponse {
	res := YearLedgerResponse{
		Year: ToFiscalYearResponse(&ctx.Year),
	}
	for _, je := range ctx.EntriesByJournal {
		res.Journals = append(res.Journals, JournalLedgerSection{
			JournalID:   je.Journal.JournalID,
			JournalName: je.Journal.Name,
			Entries:     ToListEntryResponse(je.Entries),
		})
	}
	return res
}
