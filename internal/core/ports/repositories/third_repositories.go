package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ThirdRepository defines persistence for thirds and their account codes.
type ThirdRepository interface {
	// FindThirdByID retrieves a third by id.
	FindThirdByID(ctx context.Context, thirdID int64) (*domain.Third, error)

	// ListThirds returns all thirds ordered by name.
	ListThirds(ctx context.Context) ([]domain.Third, error)

	// SaveThird persists a third and returns its id.
	SaveThird(ctx context.Context, third domain.Third) (int64, error)

	// UpdateThirdStatus flips the disabled flag.
	UpdateThirdStatus(ctx context.Context, thirdID int64, disabled bool) error

	// ListThirdAccounts returns the third's attached account codes.
	ListThirdAccounts(ctx context.Context, thirdID int64) ([]domain.ThirdAccount, error)

	// SaveThirdAccount attaches a normalized code to a third.
	SaveThirdAccount(ctx context.Context, account domain.ThirdAccount) (int64, error)

	// DeleteThirdAccount detaches a code from a third.
	DeleteThirdAccount(ctx context.Context, thirdAccountID int64) error

	// ThirdTotal sums the third's line amounts, liabilities minus assets.
	ThirdTotal(ctx context.Context, thirdID int64) (decimal.Decimal, error)
}
