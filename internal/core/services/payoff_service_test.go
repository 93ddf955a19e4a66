package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PayoffServiceTestSuite struct {
	suite.Suite
	mockPayoffRepo *MockPayoffRepository
	mockBillRepo   *MockBillRepository
	mockEntryRepo  *MockEntryRepository
	mockYearRepo   *MockFiscalYearRepository
	mockThirdSvc   *MockThirdService
	mockChartSvc   *MockChartService
	mockParamRepo  *MockParameterRepository
	mockLinkSvc    *MockLinkService
	service        portssvc.PayoffSvcFacade

	year         domain.FiscalYear
	thirdAccount domain.ChartAccount
	cashAccount  domain.ChartAccount
	userID       string
}

func (suite *PayoffServiceTestSuite) SetupTest() {
	suite.mockPayoffRepo = new(MockPayoffRepository)
	suite.mockBillRepo = new(MockBillRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockYearRepo = new(MockFiscalYearRepository)
	suite.mockThirdSvc = new(MockThirdService)
	suite.mockChartSvc = new(MockChartService)
	suite.mockParamRepo = new(MockParameterRepository)
	suite.mockLinkSvc = new(MockLinkService)
	suite.service = services.NewPayoffService(
		suite.mockPayoffRepo, suite.mockBillRepo, suite.mockEntryRepo, suite.mockYearRepo,
		suite.mockThirdSvc, suite.mockChartSvc, suite.mockParamRepo, suite.mockLinkSvc)

	suite.userID = uuid.NewString()
	suite.year = domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Begin:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:       domain.YearRunning,
		IsActive:     true,
	}
	suite.thirdAccount = domain.ChartAccount{
		ChartAccountID: 1,
		FiscalYearID:   suite.year.FiscalYearID,
		Code:           "411",
		Name:           "customers",
		Type:           domain.Asset,
	}
	suite.cashAccount = domain.ChartAccount{
		ChartAccountID: 2,
		FiscalYearID:   suite.year.FiscalYearID,
		Code:           "531",
		Name:           "cash",
		Type:           domain.Asset,
	}
}

// validBill returns a validated sale of 120 gross for third 5.
func (suite *PayoffServiceTestSuite) validBill(date time.Time) *domain.Bill {
	billID := uuid.NewString()
	entryID := uuid.NewString()
	num := 1
	return &domain.Bill{
		BillID:       billID,
		FiscalYearID: &suite.year.FiscalYearID,
		Type:         domain.BillTypeBill,
		Num:          &num,
		Date:         date,
		Status:       domain.BillValid,
		ThirdID:      5,
		EntryID:      &entryID,
		Details: []domain.BillDetail{
			{BillID: billID, Designation: "consulting", SellAccountCode: "706",
				ExclTaxTotal: decimal.RequireFromString("100"), VATAmount: decimal.RequireFromString("20")},
		},
	}
}

// expectEntryGeneration wires the mocks every payment posting goes through.
func (suite *PayoffServiceTestSuite) expectEntryGeneration() {
	suite.mockYearRepo.On("FindFiscalYearsForDate", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]domain.FiscalYear{suite.year}, nil)
	suite.mockThirdSvc.On("ResolveAccount", mock.Anything, int64(5), domain.MaskCustomer, suite.year.FiscalYearID).
		Return(&suite.thirdAccount, nil)
	suite.mockParamRepo.On("GetParameter", mock.Anything, services.ParamCashAccount).Return("531", nil)
	suite.mockChartSvc.On("FindChartAccount", mock.Anything, suite.year.FiscalYearID, "531").
		Return(&suite.cashAccount, nil)
}

// expectPosting registers the atomic payment posting; the entry stays open
// for lettering, so closeEntry is always false here.
func (suite *PayoffServiceTestSuite) expectPosting(linesOK func(lines []domain.EntryLineAccount) bool) {
	suite.mockEntryRepo.On("PostEntry", mock.Anything,
		mock.MatchedBy(func(e domain.EntryAccount) bool {
			return e.JournalID == domain.JournalPayment && e.FiscalYearID == suite.year.FiscalYearID
		}),
		mock.MatchedBy(linesOK), false).Return(nil, 0, nil)
}

func (suite *PayoffServiceTestSuite) TestCreatePayoff_GeneratesBalancedEntry() {
	bill := suite.validBill(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	suite.mockBillRepo.On("FindBillByID", mock.Anything, bill.BillID).Return(bill, nil)
	suite.mockPayoffRepo.On("ListPayoffsBySupporting", mock.Anything, bill.BillID).
		Return([]domain.Payoff{}, nil).Once()
	suite.expectEntryGeneration()
	suite.expectPosting(func(lines []domain.EntryLineAccount) bool {
		// Customer 411 is credited, cash 531 debited.
		state := domain.ControlBalance(lines, lines)
		return len(lines) == 2 && state.IsBalanced() &&
			lines[0].Amount.Equal(decimal.RequireFromString("-120")) && lines[0].ThirdID == 5 &&
			lines[1].Amount.Equal(decimal.RequireFromString("120"))
	})
	suite.mockPayoffRepo.On("SavePayoff", mock.Anything, mock.MatchedBy(func(p domain.Payoff) bool {
		return p.SupportingID == bill.BillID && p.EntryID != nil && p.Amount.Equal(decimal.RequireFromString("120"))
	})).Return(nil)
	// The document is fully settled: the payment letters with the bill's entry.
	suite.mockPayoffRepo.On("ListPayoffsBySupporting", mock.Anything, bill.BillID).
		Return([]domain.Payoff{{Amount: decimal.RequireFromString("120")}}, nil).Once()
	suite.mockLinkSvc.On("CreateLink", mock.Anything, mock.MatchedBy(func(entryIDs []string) bool {
		return len(entryIDs) == 2 && entryIDs[0] == *bill.EntryID
	})).Return(nil)

	req := dto.CreatePayoffRequest{
		SupportingID: bill.BillID,
		Date:         "2024-06-15",
		Amount:       decimal.RequireFromString("120"),
		Mode:         "CASH",
		Payer:        "ACME",
	}
	payoff, err := suite.service.CreatePayoff(context.Background(), req, suite.userID)

	suite.NoError(err)
	suite.NotNil(payoff.EntryID)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockLinkSvc.AssertExpectations(suite.T())
}

func (suite *PayoffServiceTestSuite) TestCreatePayoff_TooLarge() {
	bill := suite.validBill(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	suite.mockBillRepo.On("FindBillByID", mock.Anything, bill.BillID).Return(bill, nil)
	suite.mockPayoffRepo.On("ListPayoffsBySupporting", mock.Anything, bill.BillID).
		Return([]domain.Payoff{{Amount: decimal.RequireFromString("100")}}, nil)

	req := dto.CreatePayoffRequest{
		SupportingID: bill.BillID,
		Date:         "2024-06-15",
		Amount:       decimal.RequireFromString("50"),
		Mode:         "CASH",
	}
	_, err := suite.service.CreatePayoff(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "exceeds")
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayoffServiceTestSuite) TestCreatePayoff_BankFeeOnChargesAccount() {
	bill := suite.validBill(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	chargesAccount := domain.ChartAccount{
		ChartAccountID: 3, FiscalYearID: suite.year.FiscalYearID, Code: "627", Type: domain.Expense,
	}
	suite.mockBillRepo.On("FindBillByID", mock.Anything, bill.BillID).Return(bill, nil)
	suite.mockPayoffRepo.On("ListPayoffsBySupporting", mock.Anything, bill.BillID).
		Return([]domain.Payoff{}, nil)
	suite.expectEntryGeneration()
	suite.mockParamRepo.On("GetParameter", mock.Anything, services.ParamBankChargesAccount).Return("627", nil)
	suite.mockChartSvc.On("FindChartAccount", mock.Anything, suite.year.FiscalYearID, "627").
		Return(&chargesAccount, nil)
	suite.expectPosting(func(lines []domain.EntryLineAccount) bool {
		// Third -120, fee 5 on 627, bank 115.
		state := domain.ControlBalance(lines, lines)
		return len(lines) == 3 && state.IsBalanced() &&
			lines[1].Amount.Equal(decimal.RequireFromString("5")) &&
			lines[2].Amount.Equal(decimal.RequireFromString("115"))
	})
	suite.mockPayoffRepo.On("SavePayoff", mock.Anything, mock.AnythingOfType("domain.Payoff")).Return(nil)
	suite.mockLinkSvc.On("CreateLink", mock.Anything, mock.Anything).Return(nil)

	req := dto.CreatePayoffRequest{
		SupportingID: bill.BillID,
		Date:         "2024-06-15",
		Amount:       decimal.RequireFromString("120"),
		Mode:         "TRANSFER",
		BankFee:      decimal.RequireFromString("5"),
	}
	_, err := suite.service.CreatePayoff(context.Background(), req, suite.userID)

	suite.NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *PayoffServiceTestSuite) TestCreatePayoff_FeeAbsorbedWhenUnconfigured() {
	bill := suite.validBill(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	suite.mockBillRepo.On("FindBillByID", mock.Anything, bill.BillID).Return(bill, nil)
	suite.mockPayoffRepo.On("ListPayoffsBySupporting", mock.Anything, bill.BillID).
		Return([]domain.Payoff{}, nil)
	suite.expectEntryGeneration()
	suite.mockParamRepo.On("GetParameter", mock.Anything, services.ParamBankChargesAccount).Return("", nil)
	suite.expectPosting(func(lines []domain.EntryLineAccount) bool {
		// No fee line: the bank posts the full amount.
		return len(lines) == 2 && lines[1].Amount.Equal(decimal.RequireFromString("120"))
	})
	suite.mockPayoffRepo.On("SavePayoff", mock.Anything, mock.AnythingOfType("domain.Payoff")).Return(nil)
	suite.mockLinkSvc.On("CreateLink", mock.Anything, mock.Anything).Return(nil)

	req := dto.CreatePayoffRequest{
		SupportingID: bill.BillID,
		Date:         "2024-06-15",
		Amount:       decimal.RequireFromString("120"),
		Mode:         "TRANSFER",
		BankFee:      decimal.RequireFromString("5"),
	}
	_, err := suite.service.CreatePayoff(context.Background(), req, suite.userID)

	suite.NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *PayoffServiceTestSuite) TestCreatePayoff_RejectsBadRequests() {
	base := dto.CreatePayoffRequest{
		SupportingID: uuid.NewString(),
		Date:         "2024-06-15",
		Amount:       decimal.RequireFromString("10"),
		Mode:         "CASH",
	}

	badMode := base
	badMode.Mode = "BARTER"
	_, err := suite.service.CreatePayoff(context.Background(), badMode, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	badDate := base
	badDate.Date = "15/06/2024"
	_, err = suite.service.CreatePayoff(context.Background(), badDate, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	negative := base
	negative.Amount = decimal.RequireFromString("-10")
	_, err = suite.service.CreatePayoff(context.Background(), negative, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayoffServiceTestSuite) TestCreatePayoff_BuildingBillNotSettlable() {
	bill := suite.validBill(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	bill.Status = domain.BillBuilding
	suite.mockBillRepo.On("FindBillByID", mock.Anything, bill.BillID).Return(bill, nil)

	req := dto.CreatePayoffRequest{
		SupportingID: bill.BillID,
		Date:         "2024-06-15",
		Amount:       decimal.RequireFromString("10"),
		Mode:         "CASH",
	}
	_, err := suite.service.CreatePayoff(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayoffServiceTestSuite) TestMultiPay_ProRataRemainderOnLast() {
	// Three 10-gross bills of the same third; 10 split pro rata gives
	// 3.33 + 3.33 + 3.34, the dust landing on the newest document.
	bills := make([]*domain.Bill, 3)
	for i := range bills {
		b := suite.validBill(time.Date(2024, time.Month(3+i), 1, 0, 0, 0, 0, time.UTC))
		b.Details[0].ExclTaxTotal = decimal.RequireFromString("10")
		b.Details[0].VATAmount = decimal.Zero
		bills[i] = b
		suite.mockBillRepo.On("FindBillByID", mock.Anything, b.BillID).Return(b, nil)
		suite.mockPayoffRepo.On("ListPayoffsBySupporting", mock.Anything, b.BillID).
			Return([]domain.Payoff{}, nil)
	}
	suite.expectEntryGeneration()
	suite.mockParamRepo.On("GetParameter", mock.Anything, services.ParamCurrencyPrecision).Return("", nil)
	suite.expectPosting(func(lines []domain.EntryLineAccount) bool {
		// The three shares merge into a single third line.
		return len(lines) == 2 &&
			lines[0].Amount.Equal(decimal.RequireFromString("-10")) &&
			lines[1].Amount.Equal(decimal.RequireFromString("10"))
	})
	for i, b := range bills {
		want := "3.33"
		if i == 2 {
			want = "3.34"
		}
		amount := decimal.RequireFromString(want)
		billID := b.BillID
		suite.mockPayoffRepo.On("SavePayoff", mock.Anything, mock.MatchedBy(func(p domain.Payoff) bool {
			return p.SupportingID == billID && p.Amount.Equal(amount)
		})).Return(nil).Once()
	}

	req := dto.MultiPayRequest{
		SupportingIDs: []string{bills[0].BillID, bills[1].BillID, bills[2].BillID},
		Date:          "2024-06-15",
		Amount:        decimal.RequireFromString("10"),
		Mode:          "TRANSFER",
		Repartition:   "PRORATA",
	}
	payoffs, err := suite.service.MultiPay(context.Background(), req, suite.userID)

	suite.NoError(err)
	suite.Len(payoffs, 3)
	suite.mockPayoffRepo.AssertExpectations(suite.T())
}

func (suite *PayoffServiceTestSuite) TestMultiPay_ProRataOvershootCorrected() {
	// Three documents with 0.01 rest each and 0.02 to spread: each share
	// rounds up to 0.01, so the correction must pull the newest one back to
	// zero instead of recording 0.03 of payments for a 0.02 receipt.
	bills := make([]*domain.Bill, 3)
	for i := range bills {
		b := suite.validBill(time.Date(2024, time.Month(3+i), 1, 0, 0, 0, 0, time.UTC))
		b.Details[0].ExclTaxTotal = decimal.RequireFromString("0.01")
		b.Details[0].VATAmount = decimal.Zero
		bills[i] = b
		suite.mockBillRepo.On("FindBillByID", mock.Anything, b.BillID).Return(b, nil)
		suite.mockPayoffRepo.On("ListPayoffsBySupporting", mock.Anything, b.BillID).
			Return([]domain.Payoff{}, nil)
	}
	suite.expectEntryGeneration()
	suite.mockParamRepo.On("GetParameter", mock.Anything, services.ParamCurrencyPrecision).Return("2", nil)
	suite.expectPosting(func(lines []domain.EntryLineAccount) bool {
		return len(lines) == 2 &&
			lines[0].Amount.Equal(decimal.RequireFromString("-0.02")) &&
			lines[1].Amount.Equal(decimal.RequireFromString("0.02"))
	})
	for _, b := range bills[:2] {
		billID := b.BillID
		suite.mockPayoffRepo.On("SavePayoff", mock.Anything, mock.MatchedBy(func(p domain.Payoff) bool {
			return p.SupportingID == billID && p.Amount.Equal(decimal.RequireFromString("0.01"))
		})).Return(nil).Once()
	}

	req := dto.MultiPayRequest{
		SupportingIDs: []string{bills[0].BillID, bills[1].BillID, bills[2].BillID},
		Date:          "2024-06-15",
		Amount:        decimal.RequireFromString("0.02"),
		Mode:          "TRANSFER",
		Repartition:   "PRORATA",
	}
	payoffs, err := suite.service.MultiPay(context.Background(), req, suite.userID)

	suite.NoError(err)
	suite.Len(payoffs, 2)
	allocated := decimal.Zero
	for _, p := range payoffs {
		allocated = allocated.Add(p.Amount)
	}
	suite.True(allocated.Equal(req.Amount))
	suite.mockPayoffRepo.AssertExpectations(suite.T())
}

func (suite *PayoffServiceTestSuite) TestMultiPay_SettledDocumentsShareOneLetter() {
	// Both documents end fully settled by the shared payment entry: the
	// lettering must be a single link over every posting, not one per
	// document stealing the entry from the previous letter.
	older := suite.validBill(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	newer := suite.validBill(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	for _, b := range []*domain.Bill{older, newer} {
		suite.mockBillRepo.On("FindBillByID", mock.Anything, b.BillID).Return(b, nil)
		suite.mockPayoffRepo.On("ListPayoffsBySupporting", mock.Anything, b.BillID).
			Return([]domain.Payoff{}, nil).Once()
	}
	suite.expectEntryGeneration()
	suite.mockParamRepo.On("GetParameter", mock.Anything, services.ParamCurrencyPrecision).Return("2", nil)
	suite.expectPosting(func(lines []domain.EntryLineAccount) bool { return true })
	suite.mockPayoffRepo.On("SavePayoff", mock.Anything, mock.AnythingOfType("domain.Payoff")).Return(nil)
	for _, b := range []*domain.Bill{older, newer} {
		suite.mockPayoffRepo.On("ListPayoffsBySupporting", mock.Anything, b.BillID).
			Return([]domain.Payoff{{Amount: decimal.RequireFromString("120")}}, nil).Once()
	}
	suite.mockLinkSvc.On("CreateLink", mock.Anything, mock.MatchedBy(func(entryIDs []string) bool {
		return len(entryIDs) == 3 &&
			entryIDs[0] == *older.EntryID && entryIDs[1] == *newer.EntryID
	})).Return(nil).Once()

	req := dto.MultiPayRequest{
		SupportingIDs: []string{older.BillID, newer.BillID},
		Date:          "2024-06-15",
		Amount:        decimal.RequireFromString("240"),
		Mode:          "TRANSFER",
		Repartition:   "PRORATA",
	}
	payoffs, err := suite.service.MultiPay(context.Background(), req, suite.userID)

	suite.NoError(err)
	suite.Len(payoffs, 2)
	suite.mockLinkSvc.AssertExpectations(suite.T())
}

func (suite *PayoffServiceTestSuite) TestMultiPay_ByDateOldestFirst() {
	older := suite.validBill(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	newer := suite.validBill(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	for _, b := range []*domain.Bill{older, newer} {
		suite.mockBillRepo.On("FindBillByID", mock.Anything, b.BillID).Return(b, nil)
		suite.mockPayoffRepo.On("ListPayoffsBySupporting", mock.Anything, b.BillID).
			Return([]domain.Payoff{}, nil)
	}
	suite.expectEntryGeneration()
	suite.mockParamRepo.On("GetParameter", mock.Anything, services.ParamCurrencyPrecision).Return("2", nil)
	suite.expectPosting(func(lines []domain.EntryLineAccount) bool { return true })
	// 150 against two 120-gross bills: the older one is settled in full.
	suite.mockPayoffRepo.On("SavePayoff", mock.Anything, mock.MatchedBy(func(p domain.Payoff) bool {
		return p.SupportingID == older.BillID && p.Amount.Equal(decimal.RequireFromString("120"))
	})).Return(nil).Once()
	suite.mockPayoffRepo.On("SavePayoff", mock.Anything, mock.MatchedBy(func(p domain.Payoff) bool {
		return p.SupportingID == newer.BillID && p.Amount.Equal(decimal.RequireFromString("30"))
	})).Return(nil).Once()
	suite.mockLinkSvc.On("CreateLink", mock.Anything, mock.Anything).Return(nil)

	req := dto.MultiPayRequest{
		SupportingIDs: []string{newer.BillID, older.BillID},
		Date:          "2024-06-15",
		Amount:        decimal.RequireFromString("150"),
		Mode:          "CHEQUE",
		Repartition:   "BYDATE",
	}
	payoffs, err := suite.service.MultiPay(context.Background(), req, suite.userID)

	suite.NoError(err)
	suite.Len(payoffs, 2)
	suite.mockPayoffRepo.AssertExpectations(suite.T())
}

func (suite *PayoffServiceTestSuite) TestMultiPay_MixedThirdsRejected() {
	first := suite.validBill(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	second := suite.validBill(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	second.ThirdID = 6
	suite.mockBillRepo.On("FindBillByID", mock.Anything, first.BillID).Return(first, nil)
	suite.mockBillRepo.On("FindBillByID", mock.Anything, second.BillID).Return(second, nil)
	suite.mockPayoffRepo.On("ListPayoffsBySupporting", mock.Anything, first.BillID).
		Return([]domain.Payoff{}, nil)

	req := dto.MultiPayRequest{
		SupportingIDs: []string{first.BillID, second.BillID},
		Date:          "2024-06-15",
		Amount:        decimal.RequireFromString("100"),
		Mode:          "TRANSFER",
	}
	_, err := suite.service.MultiPay(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "same third")
}

func (suite *PayoffServiceTestSuite) TestDeletePayoff_RemovesOpenEntry() {
	entryID := uuid.NewString()
	linkID := uuid.NewString()
	payoff := &domain.Payoff{
		PayoffID:     uuid.NewString(),
		SupportingID: uuid.NewString(),
		Amount:       decimal.RequireFromString("120"),
		EntryID:      &entryID,
	}
	entry := &domain.EntryAccount{EntryID: entryID, FiscalYearID: suite.year.FiscalYearID, LinkID: &linkID}
	suite.mockPayoffRepo.On("FindPayoffByID", mock.Anything, payoff.PayoffID).Return(payoff, nil)
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(entry, nil)
	suite.mockLinkSvc.On("Unlink", mock.Anything, entryID).Return(nil)
	suite.mockEntryRepo.On("DeleteEntry", mock.Anything, entryID).Return(nil)
	suite.mockPayoffRepo.On("DeletePayoff", mock.Anything, payoff.PayoffID).Return(nil)

	err := suite.service.DeletePayoff(context.Background(), payoff.PayoffID, suite.userID)

	suite.NoError(err)
	suite.mockLinkSvc.AssertExpectations(suite.T())
	suite.mockPayoffRepo.AssertExpectations(suite.T())
}

func (suite *PayoffServiceTestSuite) TestDeletePayoff_ClosedEntryRefused() {
	entryID := uuid.NewString()
	payoff := &domain.Payoff{PayoffID: uuid.NewString(), EntryID: &entryID}
	entry := &domain.EntryAccount{EntryID: entryID, Closed: true}
	suite.mockPayoffRepo.On("FindPayoffByID", mock.Anything, payoff.PayoffID).Return(payoff, nil)
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(entry, nil)

	err := suite.service.DeletePayoff(context.Background(), payoff.PayoffID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayoffRepo.AssertNotCalled(suite.T(), "DeletePayoff", mock.Anything, mock.Anything)
}

func (suite *PayoffServiceTestSuite) TestCreateBankAccount() {
	suite.mockChartSvc.On("NormalizeCode", mock.Anything, "512").Return("512000", nil)
	suite.mockPayoffRepo.On("SaveBankAccount", mock.Anything, mock.MatchedBy(func(a domain.BankAccount) bool {
		return a.Designation == "main account" && a.AccountCode == "512000"
	})).Return(int64(3), nil)

	req := dto.CreateBankAccountRequest{Designation: "main account", AccountCode: "512"}
	account, err := suite.service.CreateBankAccount(context.Background(), req, suite.userID)

	suite.NoError(err)
	suite.Equal(int64(3), account.BankAccountID)
}

func TestPayoffServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayoffServiceTestSuite))
}
