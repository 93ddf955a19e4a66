package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ThirdSvcFacade manages counterparties and resolves their ledger accounts.
type ThirdSvcFacade interface {
	// CreateThird registers a counterparty with optional account codes.
	CreateThird(ctx context.Context, req dto.CreateThirdRequest, creatorUserID string) (*domain.Third, error)

	// GetThird retrieves a third with its account codes.
	GetThird(ctx context.Context, thirdID int64) (*domain.Third, []domain.ThirdAccount, error)

	// ListThirds lists all thirds.
	ListThirds(ctx context.Context) ([]domain.Third, error)

	// AttachAccount adds a normalized account code to a third.
	AttachAccount(ctx context.Context, thirdID int64, code string) (*domain.ThirdAccount, error)

	// ResolveAccount picks the third's first account code matching the mask
	// and resolves it in the given year's chart. Fails with ErrValidation
	// when no code matches or the code is absent from the chart.
	ResolveAccount(ctx context.Context, thirdID int64, mask domain.AccountMask, fiscalYearID string) (*domain.ChartAccount, error)

	// ThirdTotal returns the third's outstanding balance.
	ThirdTotal(ctx context.Context, thirdID int64) (decimal.Decimal, error)
}
