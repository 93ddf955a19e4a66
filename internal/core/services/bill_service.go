package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

const (
	defaultBillPageSize = 25
	maxBillPageSize     = 100
)

var (
	ErrBillNotBuilding = errors.New("document is not in building state")
	ErrBillNotValid    = errors.New("document is not validated")
	ErrBillNoDetails   = errors.New("document has no detail lines")
	ErrBillNotQuote    = errors.New("document is not a quotation")
)

// billService manages sales documents and generates their ledger postings.
type billService struct {
	billRepo   portsrepo.BillRepository
	payoffRepo portsrepo.PayoffRepository
	entryRepo  portsrepo.EntryRepositoryFacade
	yearRepo   portsrepo.FiscalYearReader
	thirdSvc   portssvc.ThirdSvcFacade
	chartSvc   portssvc.ChartAccountSvcFacade
	paramRepo  portsrepo.ParameterRepository
}

// NewBillService creates a new BillService.
func NewBillService(
	billRepo portsrepo.BillRepository,
	payoffRepo portsrepo.PayoffRepository,
	entryRepo portsrepo.EntryRepositoryFacade,
	yearRepo portsrepo.FiscalYearReader,
	thirdSvc portssvc.ThirdSvcFacade,
	chartSvc portssvc.ChartAccountSvcFacade,
	paramRepo portsrepo.ParameterRepository,
) portssvc.BillSvcFacade {
	return &billService{
		billRepo:   billRepo,
		payoffRepo: payoffRepo,
		entryRepo:  entryRepo,
		yearRepo:   yearRepo,
		thirdSvc:   thirdSvc,
		chartSvc:   chartSvc,
		paramRepo:  paramRepo,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

func (s *billService) CreateBill(ctx context.Context, req dto.CreateBillRequest, creatorUserID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	billType, ok := dto.BillTypeFromLabel(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: unknown bill type %q", apperrors.ErrValidation, req.Type)
	}
	date, err := time.Parse(entryDateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	if len(req.Details) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBillNoDetails)
	}
	if _, _, err := s.thirdSvc.GetThird(ctx, req.ThirdID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bill := domain.Bill{
		BillID:           uuid.NewString(),
		Type:             billType,
		Date:             date,
		Comment:          req.Comment,
		Status:           domain.BillBuilding,
		ThirdID:          req.ThirdID,
		CostAccountingID: req.CostAccountingID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	for _, d := range req.Details {
		bill.Details = append(bill.Details, domain.BillDetail{
			BillID:          bill.BillID,
			Designation:     d.Designation,
			SellAccountCode: d.SellAccountCode,
			ExclTaxTotal:    d.ExclTaxTotal,
			ReduceExclTax:   d.ReduceExclTax,
			VATAmount:       d.VATAmount,
		})
	}

	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		logger.Error("Failed to save bill", "error", err)
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	logger.Info("Bill created", "bill_id", bill.BillID, "type", bill.Type.String())
	return &bill, nil
}

func (s *billService) GetBill(ctx context.Context, billID string) (*domain.Bill, error) {
	return s.billRepo.FindBillByID(ctx, billID)
}

func (s *billService) ListBills(ctx context.Context, status domain.BillStatus, limit int, nextToken string) ([]domain.Bill, string, error) {
	if limit <= 0 {
		limit = defaultBillPageSize
	}
	if limit > maxBillPageSize {
		limit = maxBillPageSize
	}
	return s.billRepo.ListBillsByStatus(ctx, int(status), limit, nextToken)
}

// ValidateBill numbers the document in the active year and, for billing
// types, generates and closes its ledger entry. A quotation only gets its
// number.
func (s *billService) ValidateBill(ctx context.Context, billID string, creatorUserID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bill, err := s.billRepo.FindBillByID(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bill %s: %w", billID, err)
	}
	if bill.Status != domain.BillBuilding {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBillNotBuilding)
	}
	if len(bill.Details) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBillNoDetails)
	}

	year, err := s.yearRepo.FindActiveFiscalYear(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find active fiscal year: %w", err)
	}
	if year.Status == domain.YearFinished {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearFinished)
	}

	num, err := s.billRepo.NextBillNum(ctx, year.FiscalYearID, bill.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to assign bill number: %w", err)
	}
	bill.Num = &num
	bill.FiscalYearID = &year.FiscalYearID

	if bill.Type != domain.BillTypeQuotation {
		entryID, err := s.generateEntry(ctx, bill, year, creatorUserID)
		if err != nil {
			return nil, err
		}
		bill.EntryID = &entryID
	}

	bill.Status = domain.BillValid
	bill.LastUpdatedAt = time.Now().UTC()
	bill.LastUpdatedBy = creatorUserID
	if err := s.billRepo.UpdateBill(ctx, *bill); err != nil {
		return nil, fmt.Errorf("failed to update bill %s: %w", billID, err)
	}

	logger.Info("Bill validated", "bill_id", billID, "num", num)
	return bill, nil
}

// generateEntry builds the bill's ledger posting: a third line over the gross
// total, aggregated sell lines per account, a discount line and a VAT line.
// The assembled entry must balance by construction; an imbalance aborts the
// validation as an invariant violation.
func (s *billService) generateEntry(ctx context.Context, bill *domain.Bill, year *domain.FiscalYear, userID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Credit notes post with inverted sign.
	sign := decimal.NewFromInt(1)
	if bill.Type == domain.BillTypeAsset {
		sign = decimal.NewFromInt(-1)
	}

	thirdAccount, err := s.thirdSvc.ResolveAccount(ctx, bill.ThirdID, bill.ThirdMask(), year.FiscalYearID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	entry := domain.EntryAccount{
		EntryID:          uuid.NewString(),
		FiscalYearID:     year.FiscalYearID,
		JournalID:        domain.JournalSelling,
		ValueDate:        year.ClampDate(bill.Date),
		Designation:      bill.String(),
		CostAccountingID: bill.CostAccountingID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	var lines []domain.EntryLineAccount
	lines = append(lines, domain.EntryLineAccount{
		Ref:     domain.NewPendingLineRef(),
		EntryID: entry.EntryID,
		Account: *thirdAccount,
		Amount:  sign.Mul(bill.TotalInclTax()),
		ThirdID: bill.ThirdID,
	})

	// Sell lines aggregate the gross (pre-discount) amount per account code,
	// preserving first-seen code order.
	perAccount := map[string]decimal.Decimal{}
	var codeOrder []string
	for _, d := range bill.Details {
		code := d.SellAccountCode
		if code == "" {
			if code, err = s.paramRepo.GetParameter(ctx, ParamDefaultSellAccount); err != nil {
				return "", err
			}
			if code == "" {
				return "", fmt.Errorf("%w: parameter %s is unset and detail %q names no sell account",
					apperrors.ErrConfiguration, ParamDefaultSellAccount, d.Designation)
			}
		}
		if _, seen := perAccount[code]; !seen {
			codeOrder = append(codeOrder, code)
		}
		perAccount[code] = perAccount[code].Add(d.ExclTaxTotal).Add(d.ReduceExclTax)
	}
	for _, code := range codeOrder {
		account, err := s.resolveParamAccount(ctx, year.FiscalYearID, code, "")
		if err != nil {
			return "", err
		}
		lines = append(lines, domain.EntryLineAccount{
			Ref:     domain.NewPendingLineRef(),
			EntryID: entry.EntryID,
			Account: *account,
			Amount:  sign.Mul(perAccount[code]),
		})
	}

	if reduce := bill.ReduceSum(); reduce.GreaterThan(domain.AmountEpsilon) {
		account, err := s.paramAccount(ctx, year.FiscalYearID, ParamReduceAccount)
		if err != nil {
			return "", err
		}
		lines = append(lines, domain.EntryLineAccount{
			Ref:     domain.NewPendingLineRef(),
			EntryID: entry.EntryID,
			Account: *account,
			Amount:  sign.Neg().Mul(reduce),
		})
	}

	if vat := bill.VATSum(); vat.GreaterThan(domain.AmountEpsilon) {
		account, err := s.paramAccount(ctx, year.FiscalYearID, ParamVATSellAccount)
		if err != nil {
			return "", err
		}
		lines = append(lines, domain.EntryLineAccount{
			Ref:     domain.NewPendingLineRef(),
			EntryID: entry.EntryID,
			Account: *account,
			Amount:  sign.Mul(vat),
		})
	}

	// Balance is verified before anything hits the database; the posting
	// itself is a single transaction.
	state := domain.ControlBalance(lines, lines)
	if !state.IsBalanced() {
		logger.Error("Bill posting does not balance", "bill_id", bill.BillID,
			"debit_rest", state.DebitRest.String(), "credit_rest", state.CreditRest.String())
		return "", fmt.Errorf("%w: bill %s posting is imbalanced", apperrors.ErrInvariant, bill.BillID)
	}

	if _, _, err := s.entryRepo.PostEntry(ctx, entry, lines, true); err != nil {
		return "", fmt.Errorf("failed to post bill entry: %w", err)
	}
	return entry.EntryID, nil
}

// paramAccount resolves the account code held by a configuration parameter.
func (s *billService) paramAccount(ctx context.Context, fiscalYearID, param string) (*domain.ChartAccount, error) {
	code, err := s.paramRepo.GetParameter(ctx, param)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, fmt.Errorf("%w: parameter %s is unset", apperrors.ErrConfiguration, param)
	}
	return s.resolveParamAccount(ctx, fiscalYearID, code, param)
}

func (s *billService) resolveParamAccount(ctx context.Context, fiscalYearID, code, param string) (*domain.ChartAccount, error) {
	account, err := s.chartSvc.FindChartAccount(ctx, fiscalYearID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if param != "" {
				return nil, fmt.Errorf("%w: parameter %s names code %s, absent from the year's chart",
					apperrors.ErrConfiguration, param, code)
			}
			return nil, fmt.Errorf("%w: sell account %s is absent from the year's chart", apperrors.ErrValidation, code)
		}
		return nil, err
	}
	return account, nil
}

// CancelBill voids a validated quotation, or cancels a validated billing
// document by issuing its credit note: a validated asset carrying the same
// details, posted with inverted sign. The origin is archived.
func (s *billService) CancelBill(ctx context.Context, billID string, creatorUserID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bill, err := s.billRepo.FindBillByID(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bill %s: %w", billID, err)
	}
	if bill.Status != domain.BillValid {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBillNotValid)
	}

	var creditNote *domain.Bill
	switch bill.Type {
	case domain.BillTypeQuotation:
		bill.Status = domain.BillCancelled
	case domain.BillTypeAsset:
		// A credit note has no counter-document of its own.
		bill.Status = domain.BillArchived
	default:
		if creditNote, err = s.generateCreditNote(ctx, bill, creatorUserID); err != nil {
			return nil, err
		}
		bill.Status = domain.BillArchived
	}
	bill.LastUpdatedAt = time.Now().UTC()
	bill.LastUpdatedBy = creatorUserID
	if err := s.billRepo.UpdateBill(ctx, *bill); err != nil {
		return nil, fmt.Errorf("failed to update bill %s: %w", billID, err)
	}

	logger.Info("Bill cancelled", "bill_id", billID, "status", bill.Status)
	return creditNote, nil
}

// generateCreditNote issues the validated asset reversing a billing document:
// same third and details, numbered in the active year, posted with sign -1
// through the regular generator.
func (s *billService) generateCreditNote(ctx context.Context, origin *domain.Bill, userID string) (*domain.Bill, error) {
	year, err := s.yearRepo.FindActiveFiscalYear(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find active fiscal year: %w", err)
	}
	if year.Status == domain.YearFinished {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearFinished)
	}

	now := time.Now().UTC()
	asset := domain.Bill{
		BillID:           uuid.NewString(),
		FiscalYearID:     &year.FiscalYearID,
		Type:             domain.BillTypeAsset,
		Date:             now,
		Comment:          fmt.Sprintf("cancellation of %s", origin.String()),
		Status:           domain.BillBuilding,
		ThirdID:          origin.ThirdID,
		CostAccountingID: origin.CostAccountingID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	for _, d := range origin.Details {
		asset.Details = append(asset.Details, domain.BillDetail{
			BillID:          asset.BillID,
			Designation:     d.Designation,
			SellAccountCode: d.SellAccountCode,
			ExclTaxTotal:    d.ExclTaxTotal,
			ReduceExclTax:   d.ReduceExclTax,
			VATAmount:       d.VATAmount,
		})
	}

	num, err := s.billRepo.NextBillNum(ctx, year.FiscalYearID, domain.BillTypeAsset)
	if err != nil {
		return nil, fmt.Errorf("failed to assign credit note number: %w", err)
	}
	asset.Num = &num

	entryID, err := s.generateEntry(ctx, &asset, year, userID)
	if err != nil {
		return nil, err
	}
	asset.EntryID = &entryID
	asset.Status = domain.BillValid

	if err := s.billRepo.SaveBill(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to save credit note: %w", err)
	}
	return &asset, nil
}

// ConvertQuotation turns an accepted quotation into a building bill carrying
// the same third and details; the quotation is archived.
func (s *billService) ConvertQuotation(ctx context.Context, quotationID string, creatorUserID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	quote, err := s.billRepo.FindBillByID(ctx, quotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find quotation %s: %w", quotationID, err)
	}
	if quote.Type != domain.BillTypeQuotation {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBillNotQuote)
	}
	if quote.Status != domain.BillValid {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrBillNotValid)
	}

	now := time.Now().UTC()
	bill := domain.Bill{
		BillID:           uuid.NewString(),
		Type:             domain.BillTypeBill,
		Date:             now,
		Comment:          quote.Comment,
		Status:           domain.BillBuilding,
		ThirdID:          quote.ThirdID,
		CostAccountingID: quote.CostAccountingID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	for _, d := range quote.Details {
		bill.Details = append(bill.Details, domain.BillDetail{
			BillID:          bill.BillID,
			Designation:     d.Designation,
			SellAccountCode: d.SellAccountCode,
			ExclTaxTotal:    d.ExclTaxTotal,
			ReduceExclTax:   d.ReduceExclTax,
			VATAmount:       d.VATAmount,
		})
	}
	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to save converted bill: %w", err)
	}

	quote.Status = domain.BillArchived
	quote.LastUpdatedAt = now
	quote.LastUpdatedBy = creatorUserID
	if err := s.billRepo.UpdateBill(ctx, *quote); err != nil {
		return nil, fmt.Errorf("failed to archive quotation %s: %w", quotationID, err)
	}

	logger.Info("Quotation converted", "quotation_id", quotationID, "bill_id", bill.BillID)
	return &bill, nil
}

// RestToPay returns the amount still owed on the document.
func (s *billService) RestToPay(ctx context.Context, billID string) (decimal.Decimal, error) {
	bill, err := s.billRepo.FindBillByID(ctx, billID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find bill %s: %w", billID, err)
	}
	payoffs, err := s.payoffRepo.ListPayoffsBySupporting(ctx, billID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list payoffs of bill %s: %w", billID, err)
	}
	rest := bill.TotalInclTax()
	for _, p := range payoffs {
		rest = rest.Sub(p.Amount)
	}
	return rest, nil
}
