package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCostAccountingRequest defines the data needed to create a cost accounting.
type CreateCostAccountingRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	FiscalYearID *string `json:"fiscalYearID"`
	IsDefault    bool    `json:"isDefault"`
}

// UpdateCostAccountingRequest defines the editable fields of a cost accounting.
type UpdateCostAccountingRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	FiscalYearID *string `json:"fiscalYearID"`
}

// CostAccountingResponse defines the data returned for a cost accounting.
type CostAccountingResponse struct {
	CostAccountingID string    `json:"costAccountingID"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Status           string    `json:"status"`
	FiscalYearID     *string   `json:"fiscalYearID,omitempty"`
	IsDefault        bool      `json:"isDefault"`
	IsProtected      bool      `json:"isProtected"`
	CreatedAt        time.Time `json:"createdAt"`
	CreatedBy        string    `json:"createdBy"`
}

// CostAccountingResultResponse reports the aggregated result of a cost accounting.
type CostAccountingResultResponse struct {
	Revenue decimal.Decimal `json:"revenue"`
	Expense decimal.Decimal `json:"expense"`
	Result  decimal.Decimal `json:"result"`
}

// ToCostAccountingResponse converts a domain.CostAccounting.
func ToCostAccountingResponse(ca *domain.CostAccounting) CostAccountingResponse {
	return CostAccountingResponse{
		CostAccountingID: ca.CostAccountingID,
		Name:             ca.Name,
		Description:      ca.Description,
		Status:           ca.Status.String(),
		FiscalYearID:     ca.FiscalYearID,
		IsDefault:        ca.IsDefault,
		IsProtected:      ca.IsProtected,
		CreatedAt:        ca.CreatedAt,
		CreatedBy:        ca.CreatedBy,
	}
}

// ToListCostAccountingResponse converts a slice of domain.CostAccounting.
func ToListCostAccountingResponse(items []domain.CostAccounting) []CostAccountingResponse {
	res := make([]CostAccountingResponse, len(items))
	for i, ca := range items {
		res[i] = ToCostAccountingResponse(&ca)
	}
	return res
}

// ToCostAccountingResultResponse converts domain.CostAccountingResult.
func ToCostAccountingResultResponse(r *domain.CostAccountingResult) CostAccountingResultResponse {
	return CostAccountingResultResponse{
		Revenue: r.Revenue,
		Expense: r.Expense,
		Result:  r.Result(),
	}
}
