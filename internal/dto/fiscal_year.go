package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFiscalYearRequest defines the data needed to open a new fiscal year.
// Dates default to the period following the latest existing year.
type CreateFiscalYearRequest struct {
	Begin *string `json:"begin"` // YYYY-MM-DD, optional
	End   *string `json:"end"`   // YYYY-MM-DD, optional
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID  string    `json:"fiscalYearID"`
	Begin         time.Time `json:"begin"`
	End           time.Time `json:"end"`
	Status        string    `json:"status"`
	IsActive      bool      `json:"isActive"`
	PredecessorID *string   `json:"predecessorID,omitempty"`
	Label         string    `json:"label"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
}

// FiscalYearTotalsResponse reports the running totals of a year.
type FiscalYearTotalsResponse struct {
	Revenue    decimal.Decimal `json:"revenue"`
	Expense    decimal.Decimal `json:"expense"`
	Result     decimal.Decimal `json:"result"`
	Cash       decimal.Decimal `json:"cash"`
	CashClosed decimal.Decimal `json:"cashClosed"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to FiscalYearResponse.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID:  fy.FiscalYearID,
		Begin:         fy.Begin,
		End:           fy.End,
		Status:        fy.Status.String(),
		IsActive:      fy.IsActive,
		PredecessorID: fy.PredecessorID,
		Label:         fy.Identify(),
		CreatedAt:     fy.CreatedAt,
		CreatedBy:     fy.CreatedBy,
	}
}

// ToListFiscalYearResponse converts a slice of domain.FiscalYear.
func ToListFiscalYearResponse(years []domain.FiscalYear) []FiscalYearResponse {
	res := make([]FiscalYearResponse, len(years))
	for i, fy := range years {
		res[i] = ToFiscalYearResponse(&fy)
	}
	return res
}

// ToFiscalYearTotalsResponse converts domain.FiscalYearTotals.
func ToFiscalYearTotalsResponse(t *domain.FiscalYearTotals) FiscalYearTotalsResponse {
	return FiscalYearTotalsResponse{
		Revenue:    t.Revenue,
		Expense:    t.Expense,
		Result:     t.Result(),
		Cash:       t.Cash,
		CashClosed: t.CashClosed,
	}
}
