package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// BillSvcFacade manages sales documents and their ledger postings.
type BillSvcFacade interface {
	// CreateBill creates a building document with its detail lines.
	CreateBill(ctx context.Context, req dto.CreateBillRequest, creatorUserID string) (*domain.Bill, error)

	// GetBill retrieves a bill with details.
	GetBill(ctx context.Context, billID string) (*domain.Bill, error)

	// ListBills lists bills newest first, optionally filtered by status
	// (-1 for all), returning a page plus a token for the next one.
	ListBills(ctx context.Context, status domain.BillStatus, limit int, nextToken string) ([]domain.Bill, string, error)

	// ValidateBill numbers the document and, for billing types, generates
	// and closes its accounting entry.
	ValidateBill(ctx context.Context, billID string, creatorUserID string) (*domain.Bill, error)

	// CancelBill voids a validated quotation, or cancels a validated billing
	// document by issuing its credit note. The credit note is returned when
	// one was created.
	CancelBill(ctx context.Context, billID string, creatorUserID string) (*domain.Bill, error)

	// ConvertQuotation turns an accepted quotation into a building bill.
	ConvertQuotation(ctx context.Context, quotationID string, creatorUserID string) (*domain.Bill, error)

	// RestToPay returns the amount still owed on the document.
	RestToPay(ctx context.Context, billID string) (decimal.Decimal, error)
}

// PayoffSvcFacade manages payments against supportable documents.
type PayoffSvcFacade interface {
	// CreatePayoff records a payment and generates its accounting entry.
	CreatePayoff(ctx context.Context, req dto.CreatePayoffRequest, creatorUserID string) (*domain.Payoff, error)

	// UpdatePayoff rewrites a payment: its previous unclosed entry is
	// dropped and a fresh one generated. A closed entry blocks the update.
	UpdatePayoff(ctx context.Context, payoffID string, req dto.CreatePayoffRequest, userID string) (*domain.Payoff, error)

	// DeletePayoff removes a payment and its open accounting entry.
	DeletePayoff(ctx context.Context, payoffID string, userID string) error

	// MultiPay spreads one payment across several documents of the same
	// third, pro rata or oldest first.
	MultiPay(ctx context.Context, req dto.MultiPayRequest, creatorUserID string) ([]domain.Payoff, error)

	// ListPayoffs lists the payments recorded against a document.
	ListPayoffs(ctx context.Context, supportingID string) ([]domain.Payoff, error)

	// CreateBankAccount registers a bank account for payment deposits.
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error)

	// ListBankAccounts lists registered bank accounts.
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
}
