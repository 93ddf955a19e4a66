package dto

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveBudgetRequest defines the data needed to create or update a budget line.
type SaveBudgetRequest struct {
	BudgetID         string          `json:"budgetID"` // empty = create
	FiscalYearID     *string         `json:"fiscalYearID"`
	CostAccountingID *string         `json:"costAccountingID"`
	Code             string          `json:"code" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
}

// BudgetResponse defines the data returned for a budget line.
type BudgetResponse struct {
	BudgetID         string          `json:"budgetID"`
	FiscalYearID     *string         `json:"fiscalYearID,omitempty"`
	CostAccountingID *string         `json:"costAccountingID,omitempty"`
	Code             string          `json:"code"`
	Amount           decimal.Decimal `json:"amount"`
}

// ListBudgetsResponse wraps budget lines with their revenue/expense totals.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
	Revenue decimal.Decimal  `json:"revenue"`
	Expense decimal.Decimal  `json:"expense"`
	Result  decimal.Decimal  `json:"result"`
}

// ModelLineRequest defines one template line keyed by account code.
type ModelLineRequest struct {
	Code    string          `json:"code" binding:"required"`
	ThirdID int64           `json:"thirdID"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
}

// SaveModelEntryRequest defines the data needed to save an entry template.
type SaveModelEntryRequest struct {
	ModelEntryID     string             `json:"modelEntryID"` // empty = create
	JournalID        int64              `json:"journalID" binding:"required"`
	Designation      string             `json:"designation" binding:"required"`
	CostAccountingID *string            `json:"costAccountingID"`
	Lines            []ModelLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// StampModelRequest stamps a template into a staged serial.
type StampModelRequest struct {
	FiscalYearID string          `json:"fiscalYearID" binding:"required"`
	Factor       decimal.Decimal `json:"factor"`
}

// ModelLineResponse defines the data returned for a template line.
type ModelLineResponse struct {
	ModelLineID int64           `json:"modelLineID"`
	Code        string          `json:"code"`
	ThirdID     int64           `json:"thirdID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// ModelEntryResponse defines the data returned for an entry template.
type ModelEntryResponse struct {
	ModelEntryID     string              `json:"modelEntryID"`
	JournalID        int64               `json:"journalID"`
	Designation      string              `json:"designation"`
	CostAccountingID *string             `json:"costAccountingID,omitempty"`
	Lines            []ModelLineResponse `json:"lines,omitempty"`
}

// SetParameterRequest updates one configuration parameter.
type SetParameterRequest struct {
	Value string `json:"value"`
}

// ParameterResponse defines the data returned for a parameter.
type ParameterResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ToBudgetResponse converts a domain.Budget.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:         b.BudgetID,
		FiscalYearID:     b.FiscalYearID,
		CostAccountingID: b.CostAccountingID,
		Code:             b.Code,
		Amount:           b.Amount,
	}
}

// ToListBudgetsResponse converts budget lines with their totals.
func ToListBudgetsResponse(budgets []domain.Budget, revenue, expense decimal.Decimal) ListBudgetsResponse {
	res := ListBudgetsResponse{
		Budgets: make([]BudgetResponse, len(budgets)),
		Revenue: revenue,
		Expense: expense,
		Result:  revenue.Sub(expense),
	}
	for i, b := range budgets {
		res.Budgets[i] = ToBudgetResponse(&b)
	}
	return res
}

// ToModelEntryResponse converts a domain.ModelEntry with its lines.
func ToModelEntryResponse(m *domain.ModelEntry, lines []domain.ModelLineEntry) ModelEntryResponse {
	res := ModelEntryResponse{
		ModelEntryID:     m.ModelEntryID,
		JournalID:        m.JournalID,
		Designation:      m.Designation,
		CostAccountingID: m.CostAccountingID,
	}
	for _, l := range lines {
		res.Lines = append(res.Lines, ModelLineResponse{
			ModelLineID: l.ModelLineID,
			Code:        l.Code,
			ThirdID:     l.ThirdID,
			Amount:      l.Amount,
		})
	}
	return res
}

// ToListModelEntryResponse converts a slice of domain.ModelEntry without lines.
func ToListModelEntryResponse(models []domain.ModelEntry) []ModelEntryResponse {
	res := make([]ModelEntryResponse, len(models))
	for i, m := range models {
		res[i] = ToModelEntryResponse(&m, nil)
	}
	return res
}
