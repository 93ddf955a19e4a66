package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateChartAccountRequest defines the data needed to create a chart account.
type CreateChartAccountRequest struct {
	FiscalYearID string `json:"fiscalYearID" binding:"required"`
	Code         string `json:"code" binding:"required"`
	Name         string `json:"name" binding:"required"`
}

// ListChartAccountsParams defines query parameters for listing chart accounts.
type ListChartAccountsParams struct {
	Prefix string `form:"prefix"`
}

// ChartAccountResponse defines the data returned for a chart account.
type ChartAccountResponse struct {
	ChartAccountID int64     `json:"chartAccountID"`
	FiscalYearID   string    `json:"fiscalYearID"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ChartAccountTotalsResponse reports an account's balances.
type ChartAccountTotalsResponse struct {
	LastYear  decimal.Decimal `json:"lastYear"`
	Current   decimal.Decimal `json:"current"`
	Validated decimal.Decimal `json:"validated"`
}

// ToChartAccountResponse converts a domain.ChartAccount to ChartAccountResponse.
func ToChartAccountResponse(acc *domain.ChartAccount) ChartAccountResponse {
	return ChartAccountResponse{
		ChartAccountID: acc.ChartAccountID,
		FiscalYearID:   acc.FiscalYearID,
		Code:           acc.Code,
		Name:           acc.Name,
		Type:           acc.Type.String(),
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
	}
}

// ToListChartAccountResponse converts a slice of domain.ChartAccount.
func ToListChartAccountResponse(accounts []domain.ChartAccount) []ChartAccountResponse {
	res := make([]ChartAccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToChartAccountResponse(&acc)
	}
	return res
}

// ToChartAccountTotalsResponse converts domain.ChartAccountTotals.
func ToChartAccountTotalsResponse(t *domain.ChartAccountTotals) ChartAccountTotalsResponse {
	return ChartAccountTotalsResponse{
		LastYear:  t.LastYear,
		Current:   t.Current,
		Validated: t.Validated,
	}
}
