package dto_test

import (
	"testing"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/stretchr/testify/assert"
)

func TestBillTypeFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  domain.BillType
		ok    bool
	}{
		{"QUOTATION", domain.BillTypeQuotation, true},
		{"BILL", domain.BillTypeBill, true},
		{"ASSET", domain.BillTypeAsset, true},
		{"RECEIPT", domain.BillTypeReceipt, true},
		{"bill", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := dto.BillTypeFromLabel(tc.label)
		assert.Equal(t, tc.ok, ok, "label %q", tc.label)
		if ok {
			assert.Equal(t, tc.want, got, "label %q", tc.label)
		}
	}
}

func TestBillStatusFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  domain.BillStatus
		ok    bool
	}{
		{"BUILDING", domain.BillBuilding, true},
		{"VALID", domain.BillValid, true},
		{"CANCELLED", domain.BillCancelled, true},
		{"ARCHIVED", domain.BillArchived, true},
		{"DRAFT", 0, false},
	}
	for _, tc := range tests {
		got, ok := dto.BillStatusFromLabel(tc.label)
		assert.Equal(t, tc.ok, ok, "label %q", tc.label)
		if ok {
			assert.Equal(t, tc.want, got, "label %q", tc.label)
		}
	}
}

func TestPayoffModeFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  domain.PayoffMode
		ok    bool
	}{
		{"CASH", domain.PayoffCash, true},
		{"CHEQUE", domain.PayoffCheque, true},
		{"TRANSFER", domain.PayoffTransfer, true},
		{"CREDIT_CARD", domain.PayoffCreditCard, true},
		{"OTHER", domain.PayoffOther, true},
		{"LEVY", domain.PayoffLevy, true},
		{"BARTER", 0, false},
	}
	for _, tc := range tests {
		got, ok := dto.PayoffModeFromLabel(tc.label)
		assert.Equal(t, tc.ok, ok, "label %q", tc.label)
		if ok {
			assert.Equal(t, tc.want, got, "label %q", tc.label)
		}
	}
}

func TestRepartitionFromLabel(t *testing.T) {
	// An empty label means pro rata.
	got, ok := dto.RepartitionFromLabel("")
	assert.True(t, ok)
	assert.Equal(t, domain.RepartitionProRata, got)

	got, ok = dto.RepartitionFromLabel("PRORATA")
	assert.True(t, ok)
	assert.Equal(t, domain.RepartitionProRata, got)

	got, ok = dto.RepartitionFromLabel("BYDATE")
	assert.True(t, ok)
	assert.Equal(t, domain.RepartitionByDate, got)

	_, ok = dto.RepartitionFromLabel("EVENLY")
	assert.False(t, ok)
}
