package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to create a new accounting entry.
type CreateEntryRequest struct {
	FiscalYearID     string  `json:"fiscalYearID" binding:"required"`
	JournalID        int64   `json:"journalID" binding:"required"`
	ValueDate        string  `json:"valueDate" binding:"required,ymddate"` // YYYY-MM-DD
	Designation      string  `json:"designation" binding:"required"`
	CostAccountingID *string `json:"costAccountingID"`
}

// StageLineRequest defines one line to add into an entry's working serial.
type StageLineRequest struct {
	Serial         string          `json:"serial"` // current working serial, may be empty
	ChartAccountID int64           `json:"chartAccountID" binding:"required"`
	DebitVal       decimal.Decimal `json:"debitVal"`
	CreditVal      decimal.Decimal `json:"creditVal"`
	ThirdID        int64           `json:"thirdID"`
	Reference      *string         `json:"reference"`
}

// ReplaceLinesRequest carries the full serial to persist for an entry.
type ReplaceLinesRequest struct {
	Serial string `json:"serial" binding:"required"`
}

// RemoveStagedLineRequest drops one line from a working serial.
type RemoveStagedLineRequest struct {
	Serial       string `json:"serial" binding:"required"`
	LineSerialID int64  `json:"lineSerialID" binding:"required"`
}

// BalanceRequest compares a working serial against the persisted lines.
type BalanceRequest struct {
	Serial string `json:"serial"`
}

// CreateLinkRequest letters a set of entries together.
type CreateLinkRequest struct {
	EntryIDs []string `json:"entryIDs" binding:"required,min=2"`
}

// CloseEntryRequest controls the balance check before closing.
type CloseEntryRequest struct {
	CheckBalance bool `json:"checkBalance"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	JournalID  int64 `form:"journalID"`
	ClosedOnly bool  `form:"closedOnly"`
}

// EntryLineResponse defines the data returned for one entry line.
type EntryLineResponse struct {
	LineID      int64           `json:"lineID"`
	AccountID   int64           `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	ThirdID     int64           `json:"thirdID,omitempty"`
	Reference   *string         `json:"reference,omitempty"`
}

// EntryResponse defines the data returned for an accounting entry.
type EntryResponse struct {
	EntryID          string     `json:"entryID"`
	FiscalYearID     string     `json:"fiscalYearID"`
	Num              *int       `json:"num,omitempty"`
	JournalID        int64      `json:"journalID"`
	EntryDate        *time.Time `json:"entryDate,omitempty"`
	ValueDate        time.Time  `json:"valueDate"`
	Designation      string     `json:"designation"`
	Closed           bool       `json:"closed"`
	CostAccountingID *string    `json:"costAccountingID,omitempty"`
	LinkID           *string    `json:"linkID,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	CreatedBy        string     `json:"createdBy"`
}

// GetEntryResponse combines an entry with its lines and balance state.
type GetEntryResponse struct {
	Entry   EntryResponse       `json:"entry"`
	Lines   []EntryLineResponse `json:"lines"`
	Serial  string              `json:"serial"`
	Balance BalanceResponse     `json:"balance"`
}

// BalanceResponse reports the rests needed to balance an entry.
type BalanceResponse struct {
	Balanced   bool            `json:"balanced"`
	DebitRest  decimal.Decimal `json:"debitRest"`
	CreditRest decimal.Decimal `json:"creditRest"`
}

// ToEntryLineResponse converts a domain.EntryLineAccount to EntryLineResponse.
func ToEntryLineResponse(line *domain.EntryLineAccount) EntryLineResponse {
	return EntryLineResponse{
		LineID:      line.Ref.Serial(),
		AccountID:   line.Account.ChartAccountID,
		AccountCode: line.Account.Code,
		AccountName: line.Account.Name,
		Debit:       line.Debit(),
		Credit:      line.Credit(),
		ThirdID:     line.ThirdID,
		Reference:   line.Reference,
	}
}

// ToEntryLineResponses converts a slice of domain.EntryLineAccount.
func ToEntryLineResponses(lines []domain.EntryLineAccount) []EntryLineResponse {
	responses := make([]EntryLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = ToEntryLineResponse(&line)
	}
	return responses
}

// ToEntryResponse converts a domain.EntryAccount to EntryResponse.
func ToEntryResponse(e *domain.EntryAccount) EntryResponse {
	return EntryResponse{
		EntryID:          e.EntryID,
		FiscalYearID:     e.FiscalYearID,
		Num:              e.Num,
		JournalID:        e.JournalID,
		EntryDate:        e.EntryDate,
		ValueDate:        e.ValueDate,
		Designation:      e.Designation,
		Closed:           e.Closed,
		CostAccountingID: e.CostAccountingID,
		LinkID:           e.LinkID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
}

// ToListEntryResponse converts a slice of domain.EntryAccount.
func ToListEntryResponse(entries []domain.EntryAccount) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToEntryResponse(&e)
	}
	return res
}

// ToBalanceResponse converts a domain.BalanceState to BalanceResponse.
func ToBalanceResponse(b *domain.BalanceState) BalanceResponse {
	return BalanceResponse{
		Balanced:   b.IsBalanced(),
		DebitRest:  b.DebitRest,
		CreditRest: b.CreditRest,
	}
}
