package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BillDetailRequest defines one sold line of a new bill.
type BillDetailRequest struct {
	Designation     string          `json:"designation" binding:"required"`
	SellAccountCode string          `json:"sellAccountCode"`
	ExclTaxTotal    decimal.Decimal `json:"exclTaxTotal" binding:"required"`
	ReduceExclTax   decimal.Decimal `json:"reduceExclTax"`
	VATAmount       decimal.Decimal `json:"vatAmount"`
}

// CreateBillRequest defines the data needed to create a building document.
type CreateBillRequest struct {
	Type             string              `json:"type" binding:"required,oneof=QUOTATION BILL ASSET RECEIPT"`
	Date             string              `json:"date" binding:"required,ymddate"` // YYYY-MM-DD
	ThirdID          int64               `json:"thirdID" binding:"required"`
	Comment          string              `json:"comment"`
	CostAccountingID *string             `json:"costAccountingID"`
	Details          []BillDetailRequest `json:"details" binding:"required,min=1,dive"`
}

// ListBillsParams defines query parameters for listing bills.
type ListBillsParams struct {
	Status    string `form:"status"` // empty = all
	Limit     int    `form:"limit"`
	NextToken string `form:"nextToken"`
}

// ListBillsResponse is one page of bills plus the token for the next page.
type ListBillsResponse struct {
	Bills     []BillResponse `json:"bills"`
	NextToken string         `json:"nextToken,omitempty"`
}

// BillDetailResponse defines the data returned for one bill line.
type BillDetailResponse struct {
	DetailID        int64           `json:"detailID"`
	Designation     string          `json:"designation"`
	SellAccountCode string          `json:"sellAccountCode"`
	ExclTaxTotal    decimal.Decimal `json:"exclTaxTotal"`
	ReduceExclTax   decimal.Decimal `json:"reduceExclTax"`
	VATAmount       decimal.Decimal `json:"vatAmount"`
}

// BillResponse defines the data returned for a sales document.
type BillResponse struct {
	BillID           string               `json:"billID"`
	FiscalYearID     *string              `json:"fiscalYearID,omitempty"`
	Type             string               `json:"type"`
	Num              *int                 `json:"num,omitempty"`
	Date             time.Time            `json:"date"`
	Comment          string               `json:"comment"`
	Status           string               `json:"status"`
	ThirdID          int64                `json:"thirdID"`
	EntryID          *string              `json:"entryID,omitempty"`
	CostAccountingID *string              `json:"costAccountingID,omitempty"`
	TotalExclTax     decimal.Decimal      `json:"totalExclTax"`
	TotalInclTax     decimal.Decimal      `json:"totalInclTax"`
	Details          []BillDetailResponse `json:"details,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	CreatedBy        string               `json:"createdBy"`
}

// BillTypeFromLabel parses the wire label of a bill type.
func BillTypeFromLabel(label string) (domain.BillType, bool) {
	switch label {
	case "QUOTATION":
		return domain.BillTypeQuotation, true
	case "BILL":
		return domain.BillTypeBill, true
	case "ASSET":
		return domain.BillTypeAsset, true
	case "RECEIPT":
		return domain.BillTypeReceipt, true
	}
	return 0, false
}

// BillStatusFromLabel parses the wire label of a bill status.
func BillStatusFromLabel(label string) (domain.BillStatus, bool) {
	switch label {
	case "BUILDING":
		return domain.BillBuilding, true
	case "VALID":
		return domain.BillValid, true
	case "CANCELLED":
		return domain.BillCancelled, true
	case "ARCHIVED":
		return domain.BillArchived, true
	}
	return 0, false
}

func billStatusLabel(s domain.BillStatus) string {
	switch s {
	case domain.BillBuilding:
		return "BUILDING"
	case domain.BillValid:
		return "VALID"
	case domain.BillCancelled:
		return "CANCELLED"
	default:
		return "ARCHIVED"
	}
}

// ToBillResponse converts a domain.Bill with its details.
func ToBillResponse(b *domain.Bill) BillResponse {
	res := BillResponse{
		BillID:           b.BillID,
		FiscalYearID:     b.FiscalYearID,
		Type:             b.Type.String(),
		Num:              b.Num,
		Date:             b.Date,
		Comment:          b.Comment,
		Status:           billStatusLabel(b.Status),
		ThirdID:          b.ThirdID,
		EntryID:          b.EntryID,
		CostAccountingID: b.CostAccountingID,
		TotalExclTax:     b.TotalExclTax(),
		TotalInclTax:     b.TotalInclTax(),
		CreatedAt:        b.CreatedAt,
		CreatedBy:        b.CreatedBy,
	}
	for _, d := range b.Details {
		res.Details = append(res.Details, BillDetailResponse{
			DetailID:        d.DetailID,
			Designation:     d.Designation,
			SellAccountCode: d.SellAccountCode,
			ExclTaxTotal:    d.ExclTaxTotal,
			ReduceExclTax:   d.ReduceExclTax,
			VATAmount:       d.VATAmount,
		})
	}
	return res
}

// ToListBillResponse converts a slice of domain.Bill.
func ToListBillResponse(bills []domain.Bill) []BillResponse {
	res := make([]BillResponse, len(bills))
	for i, b := range bills {
		res[i] = ToBillResponse(&b)
	}
	return res
}
