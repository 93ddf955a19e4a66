package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/bizledger/bizledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrPayoffTooLarge     = errors.New("payment exceeds the document's rest to pay")
	ErrPayoffEntryClosed  = errors.New("the payment's entry is closed")
	ErrPayoffMixedThirds  = errors.New("multi-pay documents must share the same third")
	ErrPayoffNonPositive  = errors.New("payment amount must be positive")
	ErrPayoffNotSettlable = errors.New("document does not accept payments")

	// multiPayRemainderEpsilon absorbs rounding dust from pro-rata splits
	// into the last allocation.
	multiPayRemainderEpsilon = decimal.RequireFromString("0.001")
)

// payoffService records payments against supportable documents and generates
// their ledger entries.
type payoffService struct {
	payoffRepo portsrepo.PayoffRepository
	billRepo   portsrepo.BillRepository
	entryRepo  portsrepo.EntryRepositoryFacade
	yearRepo   portsrepo.FiscalYearReader
	thirdSvc   portssvc.ThirdSvcFacade
	chartSvc   portssvc.ChartAccountSvcFacade
	paramRepo  portsrepo.ParameterRepository
	linkSvc    portssvc.LinkSvcFacade
}

// NewPayoffService creates a new PayoffService.
func NewPayoffService(
	payoffRepo portsrepo.PayoffRepository,
	billRepo portsrepo.BillRepository,
	entryRepo portsrepo.EntryRepositoryFacade,
	yearRepo portsrepo.FiscalYearReader,
	thirdSvc portssvc.ThirdSvcFacade,
	chartSvc portssvc.ChartAccountSvcFacade,
	paramRepo portsrepo.ParameterRepository,
	linkSvc portssvc.LinkSvcFacade,
) portssvc.PayoffSvcFacade {
	return &payoffService{
		payoffRepo: payoffRepo,
		billRepo:   billRepo,
		entryRepo:  entryRepo,
		yearRepo:   yearRepo,
		thirdSvc:   thirdSvc,
		chartSvc:   chartSvc,
		paramRepo:  paramRepo,
		linkSvc:    linkSvc,
	}
}

var _ portssvc.PayoffSvcFacade = (*payoffService)(nil)

// supporting resolves the supportable document a payment settles.
func (s *payoffService) supporting(ctx context.Context, supportingID string) (domain.Supportable, error) {
	bill, err := s.billRepo.FindBillByID(ctx, supportingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", supportingID, err)
	}
	if bill.Status != domain.BillValid {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPayoffNotSettlable)
	}
	return *bill, nil
}

// restToPay computes the document's remaining balance.
func (s *payoffService) restToPay(ctx context.Context, support domain.Supportable) (decimal.Decimal, error) {
	payoffs, err := s.payoffRepo.ListPayoffsBySupporting(ctx, support.SupportingID())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list payoffs: %w", err)
	}
	rest := support.Total()
	for _, p := range payoffs {
		rest = rest.Sub(p.Amount)
	}
	return rest, nil
}

// yearForDate picks the fiscal year containing the payment date, falling back
// to the active year when none or several match.
func (s *payoffService) yearForDate(ctx context.Context, d time.Time) (*domain.FiscalYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	years, err := s.yearRepo.FindFiscalYearsForDate(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("failed to find fiscal years for date: %w", err)
	}
	var year *domain.FiscalYear
	if len(years) == 1 {
		year = &years[0]
	} else {
		logger.Warn("Payment date matches no single fiscal year, falling back to the active year",
			"date", d.Format(entryDateLayout), "match_count", len(years))
		if year, err = s.yearRepo.FindActiveFiscalYear(ctx); err != nil {
			return nil, fmt.Errorf("failed to find active fiscal year: %w", err)
		}
	}
	if year.Status == domain.YearFinished {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrYearFinished)
	}
	return year, nil
}

// bankAccountCode resolves the chart code the payment lands on: the selected
// bank account's code, or the configured cash account.
func (s *payoffService) bankAccountCode(ctx context.Context, bankAccountID *int64) (string, error) {
	if bankAccountID != nil {
		bank, err := s.payoffRepo.FindBankAccountByID(ctx, *bankAccountID)
		if err != nil {
			return "", fmt.Errorf("failed to find bank account %d: %w", *bankAccountID, err)
		}
		return bank.AccountCode, nil
	}
	code, err := s.paramRepo.GetParameter(ctx, ParamCashAccount)
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", fmt.Errorf("%w: parameter %s is unset", apperrors.ErrConfiguration, ParamCashAccount)
	}
	return code, nil
}

// payoffSigns computes the posting polarity: isLiability follows the third
// account's type, isRevenu the document's payment direction.
func payoffSigns(thirdAccount *domain.ChartAccount, support domain.Supportable) (decimal.Decimal, decimal.Decimal) {
	isLiability := decimal.NewFromInt(-1)
	if thirdAccount.Type == domain.Asset {
		isLiability = decimal.NewFromInt(1)
	}
	isRevenu := decimal.NewFromInt(1)
	if support.PayoffIsRevenue() {
		isRevenu = decimal.NewFromInt(-1)
	}
	return isLiability, isRevenu
}

// thirdShare is one document's slice of a payment entry.
type thirdShare struct {
	support domain.Supportable
	amount  decimal.Decimal
}

// generateEntry builds the payment posting for one or more documents of the
// same third: one third line per document (duplicates merged), an optional
// bank-fee line and the bank counterpart. The fee is absorbed into the bank
// line when no charges account is configured.
func (s *payoffService) generateEntry(ctx context.Context, shares []thirdShare, date time.Time, bankAccountID *int64, fee decimal.Decimal, designation, userID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	year, err := s.yearForDate(ctx, date)
	if err != nil {
		return "", err
	}

	first := shares[0].support
	thirdAccount, err := s.thirdSvc.ResolveAccount(ctx, first.SupportingThirdID(), first.ThirdMask(), year.FiscalYearID)
	if err != nil {
		return "", err
	}
	isLiability, isRevenu := payoffSigns(thirdAccount, first)

	now := time.Now().UTC()
	entry := domain.EntryAccount{
		EntryID:          uuid.NewString(),
		FiscalYearID:     year.FiscalYearID,
		JournalID:        domain.JournalPayment,
		ValueDate:        year.ClampDate(date),
		Designation:      designation,
		CostAccountingID: first.DefaultCostAccountingID(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	total := decimal.Zero
	var lines []domain.EntryLineAccount
	for _, share := range shares {
		lineAmount := isLiability.Mul(isRevenu).Mul(share.amount)
		total = total.Add(share.amount)

		// Documents of the same third post to the same account; fold the
		// amount into the existing line instead of duplicating it.
		merged := false
		for i := range lines {
			if lines[i].Account.ChartAccountID == thirdAccount.ChartAccountID && lines[i].ThirdID == share.support.SupportingThirdID() {
				lines[i].Amount = lines[i].Amount.Add(lineAmount)
				merged = true
				break
			}
		}
		if !merged {
			lines = append(lines, domain.EntryLineAccount{
				Ref:     domain.NewPendingLineRef(),
				EntryID: entry.EntryID,
				Account: *thirdAccount,
				Amount:  lineAmount,
				ThirdID: share.support.SupportingThirdID(),
			})
		}
	}

	feeApplied := decimal.Zero
	if fee.IsPositive() {
		chargesCode, err := s.paramRepo.GetParameter(ctx, ParamBankChargesAccount)
		if err != nil {
			return "", err
		}
		if chargesCode != "" {
			chargesAccount, err := s.chartSvc.FindChartAccount(ctx, year.FiscalYearID, chargesCode)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return "", fmt.Errorf("%w: parameter %s names code %s, absent from the year's chart",
						apperrors.ErrConfiguration, ParamBankChargesAccount, chargesCode)
				}
				return "", err
			}
			lines = append(lines, domain.EntryLineAccount{
				Ref:     domain.NewPendingLineRef(),
				EntryID: entry.EntryID,
				Account: *chargesAccount,
				Amount:  isRevenu.Neg().Mul(fee),
			})
			feeApplied = fee
		}
	}

	bankCode, err := s.bankAccountCode(ctx, bankAccountID)
	if err != nil {
		return "", err
	}
	bankAccount, err := s.chartSvc.FindChartAccount(ctx, year.FiscalYearID, bankCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: bank account code %s is absent from the year's chart",
				apperrors.ErrConfiguration, bankCode)
		}
		return "", err
	}
	lines = append(lines, domain.EntryLineAccount{
		Ref:     domain.NewPendingLineRef(),
		EntryID: entry.EntryID,
		Account: *bankAccount,
		Amount:  isRevenu.Neg().Mul(total.Sub(feeApplied)),
	})

	// Balance is verified before anything hits the database; the posting
	// itself is a single transaction and stays open for later lettering.
	state := domain.ControlBalance(lines, lines)
	if !state.IsBalanced() {
		logger.Error("Payment posting does not balance",
			"debit_rest", state.DebitRest.String(), "credit_rest", state.CreditRest.String())
		return "", fmt.Errorf("%w: payment posting is imbalanced", apperrors.ErrInvariant)
	}

	if _, _, err := s.entryRepo.PostEntry(ctx, entry, lines, false); err != nil {
		return "", fmt.Errorf("failed to post payment entry: %w", err)
	}
	return entry.EntryID, nil
}

// generateAccountLink best-effort letters the payment entry with the
// document's own posting once the document is fully settled. Lettering
// failures never fail the payment.
func (s *payoffService) generateAccountLink(ctx context.Context, support domain.Supportable, paymentEntryID string) {
	s.generateMultiAccountLink(ctx, []domain.Supportable{support}, paymentEntryID)
}

// generateMultiAccountLink letters a payment entry shared by several documents.
// The entry is lettered at most once, against the combined postings of every
// fully settled document; an unsettled document drops out of the letter but
// never steals the entry from the others.
func (s *payoffService) generateMultiAccountLink(ctx context.Context, supports []domain.Supportable, paymentEntryID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var entryIDs []string
	for _, support := range supports {
		rest, err := s.restToPay(ctx, support)
		if err != nil || !domain.AmountIsZero(rest) {
			continue
		}
		entryIDs = append(entryIDs, support.EntryLinks()...)
	}
	if len(entryIDs) == 0 {
		return
	}
	if err := s.linkSvc.CreateLink(ctx, append(entryIDs, paymentEntryID)); err != nil {
		logger.Warn("Auto-lettering skipped", "payment_entry_id", paymentEntryID, "error", err)
	}
}

func (s *payoffService) buildPayoff(req dto.CreatePayoffRequest, userID string) (*domain.Payoff, error) {
	mode, ok := dto.PayoffModeFromLabel(req.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: unknown payment mode %q", apperrors.ErrValidation, req.Mode)
	}
	date, err := time.Parse(entryDateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPayoffNonPositive)
	}
	now := time.Now().UTC()
	return &domain.Payoff{
		PayoffID:      uuid.NewString(),
		SupportingID:  req.SupportingID,
		Date:          date,
		Amount:        req.Amount,
		Mode:          mode,
		Payer:         req.Payer,
		Reference:     req.Reference,
		BankAccountID: req.BankAccountID,
		BankFee:       req.BankFee,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

// CreatePayoff records a payment and generates its accounting entry.
func (s *payoffService) CreatePayoff(ctx context.Context, req dto.CreatePayoffRequest, creatorUserID string) (*domain.Payoff, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payoff, err := s.buildPayoff(req, creatorUserID)
	if err != nil {
		return nil, err
	}
	support, err := s.supporting(ctx, req.SupportingID)
	if err != nil {
		return nil, err
	}
	rest, err := s.restToPay(ctx, support)
	if err != nil {
		return nil, err
	}
	if payoff.Amount.Sub(rest).GreaterThan(domain.AmountEpsilon) {
		return nil, fmt.Errorf("%w: %s (rest %s)", apperrors.ErrValidation, ErrPayoffTooLarge, rest.String())
	}

	entryID, err := s.generateEntry(ctx,
		[]thirdShare{{support: support, amount: payoff.Amount}},
		payoff.Date, payoff.BankAccountID, payoff.BankFee,
		fmt.Sprintf("payment %s", payoff.Reference), creatorUserID)
	if err != nil {
		return nil, err
	}
	payoff.EntryID = &entryID

	if err := s.payoffRepo.SavePayoff(ctx, *payoff); err != nil {
		logger.Error("Failed to save payoff", "error", err)
		return nil, fmt.Errorf("failed to save payoff: %w", err)
	}

	s.generateAccountLink(ctx, support, entryID)

	logger.Info("Payoff created", "payoff_id", payoff.PayoffID, "supporting_id", req.SupportingID)
	return payoff, nil
}

// UpdatePayoff rewrites a payment: the previous unclosed entry is dropped and
// a fresh one generated from the new values.
func (s *payoffService) UpdatePayoff(ctx context.Context, payoffID string, req dto.CreatePayoffRequest, userID string) (*domain.Payoff, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.payoffRepo.FindPayoffByID(ctx, payoffID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payoff %s: %w", payoffID, err)
	}
	if err := s.dropEntry(ctx, existing); err != nil {
		return nil, err
	}

	updated, err := s.buildPayoff(req, userID)
	if err != nil {
		return nil, err
	}
	updated.PayoffID = existing.PayoffID
	updated.SupportingID = existing.SupportingID
	updated.CreatedAt = existing.CreatedAt
	updated.CreatedBy = existing.CreatedBy

	support, err := s.supporting(ctx, existing.SupportingID)
	if err != nil {
		return nil, err
	}

	entryID, err := s.generateEntry(ctx,
		[]thirdShare{{support: support, amount: updated.Amount}},
		updated.Date, updated.BankAccountID, updated.BankFee,
		fmt.Sprintf("payment %s", updated.Reference), userID)
	if err != nil {
		return nil, err
	}
	updated.EntryID = &entryID

	if err := s.payoffRepo.UpdatePayoff(ctx, *updated); err != nil {
		return nil, fmt.Errorf("failed to update payoff %s: %w", payoffID, err)
	}

	s.generateAccountLink(ctx, support, entryID)

	logger.Info("Payoff updated", "payoff_id", payoffID)
	return updated, nil
}

// dropEntry unlinks and deletes the payoff's entry; a closed entry refuses.
func (s *payoffService) dropEntry(ctx context.Context, payoff *domain.Payoff) error {
	if payoff.EntryID == nil {
		return nil
	}
	entry, err := s.entryRepo.FindEntryByID(ctx, *payoff.EntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find payment entry: %w", err)
	}
	if entry.Closed {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPayoffEntryClosed)
	}
	if entry.LinkID != nil {
		if err := s.linkSvc.Unlink(ctx, entry.EntryID); err != nil {
			return fmt.Errorf("failed to unlink payment entry: %w", err)
		}
	}
	if err := s.entryRepo.DeleteEntry(ctx, entry.EntryID); err != nil {
		return fmt.Errorf("failed to delete payment entry: %w", err)
	}
	return nil
}

// DeletePayoff removes a payment and its open accounting entry.
func (s *payoffService) DeletePayoff(ctx context.Context, payoffID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	payoff, err := s.payoffRepo.FindPayoffByID(ctx, payoffID)
	if err != nil {
		return fmt.Errorf("failed to find payoff %s: %w", payoffID, err)
	}
	if err := s.dropEntry(ctx, payoff); err != nil {
		return err
	}
	if err := s.payoffRepo.DeletePayoff(ctx, payoffID); err != nil {
		return fmt.Errorf("failed to delete payoff %s: %w", payoffID, err)
	}

	logger.Info("Payoff deleted", "payoff_id", payoffID, "by", userID)
	return nil
}

// MultiPay spreads one payment across several documents of the same third and
// posts a single payment entry. Allocation is pro rata over each document's
// rest to pay, or oldest first; rounding dust lands on the last allocation.
func (s *payoffService) MultiPay(ctx context.Context, req dto.MultiPayRequest, creatorUserID string) ([]domain.Payoff, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	repartition, ok := dto.RepartitionFromLabel(req.Repartition)
	if !ok {
		return nil, fmt.Errorf("%w: unknown repartition %q", apperrors.ErrValidation, req.Repartition)
	}
	mode, ok := dto.PayoffModeFromLabel(req.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: unknown payment mode %q", apperrors.ErrValidation, req.Mode)
	}
	date, err := time.Parse(entryDateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPayoffNonPositive)
	}

	type docState struct {
		support domain.Supportable
		rest    decimal.Decimal
	}
	docs := make([]docState, 0, len(req.SupportingIDs))
	restSum := decimal.Zero
	thirdID := int64(0)
	for _, id := range req.SupportingIDs {
		support, err := s.supporting(ctx, id)
		if err != nil {
			return nil, err
		}
		if thirdID == 0 {
			thirdID = support.SupportingThirdID()
		} else if support.SupportingThirdID() != thirdID {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPayoffMixedThirds)
		}
		rest, err := s.restToPay(ctx, support)
		if err != nil {
			return nil, err
		}
		docs = append(docs, docState{support: support, rest: rest})
		restSum = restSum.Add(rest)
	}
	if req.Amount.Sub(restSum).GreaterThan(domain.AmountEpsilon) {
		return nil, fmt.Errorf("%w: %s (rest %s)", apperrors.ErrValidation, ErrPayoffTooLarge, restSum.String())
	}

	// Oldest documents first; allocation order is date order either way.
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].support.CurrentDate().Before(docs[j].support.CurrentDate())
	})

	precision, err := s.currencyPrecision(ctx)
	if err != nil {
		return nil, err
	}

	amounts := make([]decimal.Decimal, len(docs))
	switch repartition {
	case domain.RepartitionProRata:
		for i, doc := range docs {
			amounts[i] = accounting.CurrencyRound(doc.rest.Mul(req.Amount).Div(restSum), precision)
		}
	case domain.RepartitionByDate:
		remaining := req.Amount
		for i, doc := range docs {
			share := decimal.Min(doc.rest, remaining)
			amounts[i] = share
			remaining = remaining.Sub(share)
		}
	}
	allocated := decimal.Zero
	for _, a := range amounts {
		allocated = allocated.Add(a)
	}
	// The rounded shares can land on either side of the requested amount;
	// the signed remainder goes to the last allocation, capped at its rest.
	if remainder := req.Amount.Sub(allocated); remainder.Abs().GreaterThan(multiPayRemainderEpsilon) {
		last := len(amounts) - 1
		amounts[last] = decimal.Min(amounts[last].Add(remainder), docs[last].rest)
	}

	var shares []thirdShare
	now := time.Now().UTC()
	var payoffs []domain.Payoff
	for i, doc := range docs {
		if !amounts[i].IsPositive() {
			continue
		}
		shares = append(shares, thirdShare{support: doc.support, amount: amounts[i]})
		payoffs = append(payoffs, domain.Payoff{
			PayoffID:      uuid.NewString(),
			SupportingID:  doc.support.SupportingID(),
			Date:          date,
			Amount:        amounts[i],
			Mode:          mode,
			Payer:         req.Payer,
			Reference:     req.Reference,
			BankAccountID: req.BankAccountID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		})
	}
	if len(payoffs) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPayoffNonPositive)
	}

	entryID, err := s.generateEntry(ctx, shares, date, req.BankAccountID, decimal.Zero,
		fmt.Sprintf("payment %s", req.Reference), creatorUserID)
	if err != nil {
		return nil, err
	}

	for i := range payoffs {
		payoffs[i].EntryID = &entryID
		if err := s.payoffRepo.SavePayoff(ctx, payoffs[i]); err != nil {
			return nil, fmt.Errorf("failed to save payoff: %w", err)
		}
	}
	supports := make([]domain.Supportable, len(shares))
	for i, share := range shares {
		supports[i] = share.support
	}
	s.generateMultiAccountLink(ctx, supports, entryID)

	logger.Info("Multi-pay recorded", "document_count", len(payoffs), "amount", req.Amount.String())
	return payoffs, nil
}

func (s *payoffService) currencyPrecision(ctx context.Context) (int, error) {
	precText, err := s.paramRepo.GetParameter(ctx, ParamCurrencyPrecision)
	if err != nil {
		return 0, err
	}
	precision := 2
	if precText != "" {
		if p, convErr := strconv.Atoi(precText); convErr == nil && p >= 0 {
			precision = p
		}
	}
	return precision, nil
}

func (s *payoffService) ListPayoffs(ctx context.Context, supportingID string) ([]domain.Payoff, error) {
	return s.payoffRepo.ListPayoffsBySupporting(ctx, supportingID)
}

func (s *payoffService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code, err := s.chartSvc.NormalizeCode(ctx, req.AccountCode)
	if err != nil {
		return nil, err
	}
	account := domain.BankAccount{
		Designation: req.Designation,
		AccountCode: code,
	}
	id, err := s.payoffRepo.SaveBankAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}
	account.BankAccountID = id

	logger.Info("Bank account created", "bank_account_id", id, "by", creatorUserID)
	return &account, nil
}

func (s *payoffService) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	return s.payoffRepo.ListBankAccounts(ctx)
}
