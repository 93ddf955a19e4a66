package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// BillRepository defines persistence for bills and their details.
type BillRepository interface {
	// FindBillByID retrieves a bill with its details.
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)

	// ListBillsByStatus lists bills with the given status (-1 = all),
	// newest first, returning at most limit bills plus a token for the
	// next page ("" when exhausted).
	ListBillsByStatus(ctx context.Context, status int, limit int, nextToken string) ([]domain.Bill, string, error)

	// SaveBill persists a new bill with its details.
	SaveBill(ctx context.Context, bill domain.Bill) error

	// UpdateBill updates the bill header (status, num, year, entry link).
	UpdateBill(ctx context.Context, bill domain.Bill) error

	// NextBillNum atomically assigns the next number scoped to
	// (fiscal year, bill type).
	NextBillNum(ctx context.Context, fiscalYearID string, billType domain.BillType) (int, error)
}

// PayoffRepository defines persistence for payoffs and bank accounts.
type PayoffRepository interface {
	// FindPayoffByID retrieves a payoff by id.
	FindPayoffByID(ctx context.Context, payoffID string) (*domain.Payoff, error)

	// ListPayoffsBySupporting lists the payments recorded against a document.
	ListPayoffsBySupporting(ctx context.Context, supportingID string) ([]domain.Payoff, error)

	// SavePayoff persists a new payoff.
	SavePayoff(ctx context.Context, payoff domain.Payoff) error

	// UpdatePayoff updates an existing payoff.
	UpdatePayoff(ctx context.Context, payoff domain.Payoff) error

	// DeletePayoff removes a payoff.
	DeletePayoff(ctx context.Context, payoffID string) error

	// FindBankAccountByID retrieves a bank account by id.
	FindBankAccountByID(ctx context.Context, bankAccountID int64) (*domain.BankAccount, error)

	// ListBankAccounts returns all configured bank accounts.
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)

	// SaveBankAccount persists a bank account and returns its id.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) (int64, error)
}
