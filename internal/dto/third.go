package dto

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// CreateThirdRequest defines the data needed to register a counterparty.
type CreateThirdRequest struct {
	Name         string   `json:"name" binding:"required"`
	AccountCodes []string `json:"accountCodes"`
}

// AttachThirdAccountRequest adds an account code to a third.
type AttachThirdAccountRequest struct {
	Code string `json:"code" binding:"required"`
}

// ThirdAccountResponse defines the data returned for a third's account code.
type ThirdAccountResponse struct {
	ThirdAccountID int64  `json:"thirdAccountID"`
	Code           string `json:"code"`
}

// ThirdResponse defines the data returned for a counterparty.
type ThirdResponse struct {
	ThirdID  int64                  `json:"thirdID"`
	Name     string                 `json:"name"`
	Disabled bool                   `json:"disabled"`
	Accounts []ThirdAccountResponse `json:"accounts,omitempty"`
}

// ToThirdResponse converts a domain.Third with its account codes.
func ToThirdResponse(t *domain.Third, accounts []domain.ThirdAccount) ThirdResponse {
	res := ThirdResponse{
		ThirdID:  t.ThirdID,
		Name:     t.Name,
		Disabled: t.Disabled,
	}
	for _, acc := range accounts {
		res.Accounts = append(res.Accounts, ThirdAccountResponse{
			ThirdAccountID: acc.ThirdAccountID,
			Code:           acc.Code,
		})
	}
	return res
}

// ToListThirdResponse converts a slice of domain.Third without account codes.
func ToListThirdResponse(thirds []domain.Third) []ThirdResponse {
	res := make([]ThirdResponse, len(thirds))
	for i, t := range thirds {
		res[i] = ToThirdResponse(&t, nil)
	}
	return res
}
