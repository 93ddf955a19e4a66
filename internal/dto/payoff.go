package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePayoffRequest defines the data needed to record a payment.
type CreatePayoffRequest struct {
	SupportingID  string          `json:"supportingID" binding:"required"`
	Date          string          `json:"date" binding:"required,ymddate"` // YYYY-MM-DD
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Mode          string          `json:"mode" binding:"required,oneof=CASH CHEQUE TRANSFER CREDIT_CARD OTHER LEVY"`
	Payer         string          `json:"payer"`
	Reference     string          `json:"reference"`
	BankAccountID *int64          `json:"bankAccountID"`
	BankFee       decimal.Decimal `json:"bankFee"`
}

// MultiPayRequest spreads one payment across several documents of one third.
type MultiPayRequest struct {
	SupportingIDs []string        `json:"supportingIDs" binding:"required,min=1"`
	Date          string          `json:"date" binding:"required,ymddate"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Mode          string          `json:"mode" binding:"required,oneof=CASH CHEQUE TRANSFER CREDIT_CARD OTHER LEVY"`
	Payer         string          `json:"payer"`
	Reference     string          `json:"reference"`
	BankAccountID *int64          `json:"bankAccountID"`
	Repartition   string          `json:"repartition" binding:"omitempty,oneof=PRORATA BYDATE"`
}

// CreateBankAccountRequest registers a deposit account for payments.
type CreateBankAccountRequest struct {
	Designation string `json:"designation" binding:"required"`
	AccountCode string `json:"accountCode" binding:"required"`
}

// PayoffResponse defines the data returned for a payment.
type PayoffResponse struct {
	PayoffID      string          `json:"payoffID"`
	SupportingID  string          `json:"supportingID"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Mode          string          `json:"mode"`
	Payer         string          `json:"payer"`
	Reference     string          `json:"reference"`
	EntryID       *string         `json:"entryID,omitempty"`
	BankAccountID *int64          `json:"bankAccountID,omitempty"`
	BankFee       decimal.Decimal `json:"bankFee"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID int64  `json:"bankAccountID"`
	Designation   string `json:"designation"`
	AccountCode   string `json:"accountCode"`
}

// PayoffModeFromLabel parses the wire label of a payoff mode.
func PayoffModeFromLabel(label string) (domain.PayoffMode, bool) {
	switch label {
	case "CASH":
		return domain.PayoffCash, true
	case "CHEQUE":
		return domain.PayoffCheque, true
	case "TRANSFER":
		return domain.PayoffTransfer, true
	case "CREDIT_CARD":
		return domain.PayoffCreditCard, true
	case "OTHER":
		return domain.PayoffOther, true
	case "LEVY":
		return domain.PayoffLevy, true
	}
	return 0, false
}

// RepartitionFromLabel parses the multi-pay repartition label, defaulting to
// pro rata when empty.
func RepartitionFromLabel(label string) (domain.PayoffRepartition, bool) {
	switch label {
	case "", "PRORATA":
		return domain.RepartitionProRata, true
	case "BYDATE":
		return domain.RepartitionByDate, true
	}
	return 0, false
}

// ToPayoffResponse converts a domain.Payoff.
func ToPayoffResponse(p *domain.Payoff) PayoffResponse {
	return PayoffResponse{
		PayoffID:      p.PayoffID,
		SupportingID:  p.SupportingID,
		Date:          p.Date,
		Amount:        p.Amount,
		Mode:          p.Mode.String(),
		Payer:         p.Payer,
		Reference:     p.Reference,
		EntryID:       p.EntryID,
		BankAccountID: p.BankAccountID,
		BankFee:       p.BankFee,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
	}
}

// ToListPayoffResponse converts a slice of domain.Payoff.
func ToListPayoffResponse(payoffs []domain.Payoff) []PayoffResponse {
	res := make([]PayoffResponse, len(payoffs))
	for i, p := range payoffs {
		res[i] = ToPayoffResponse(&p)
	}
	return res
}

// ToBankAccountResponse converts a domain.BankAccount.
func ToBankAccountResponse(b *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID: b.BankAccountID,
		Designation:   b.Designation,
		AccountCode:   b.AccountCode,
	}
}

// ToListBankAccountResponse converts a slice of domain.BankAccount.
func ToListBankAccountResponse(accounts []domain.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i, b := range accounts {
		res[i] = ToBankAccountResponse(&b)
	}
	return res
}
