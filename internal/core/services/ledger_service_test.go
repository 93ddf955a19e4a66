package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/accountsystem"
	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockEntryRepo *MockEntryRepository
	mockChartRepo *MockChartRepository
	mockYearRepo  *MockFiscalYearRepository
	mockLinkSvc   *MockLinkService
	service       portssvc.LedgerSvcFacade

	year        domain.FiscalYear
	bankAccount domain.ChartAccount
	sellAccount domain.ChartAccount
	userID      string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockChartRepo = new(MockChartRepository)
	suite.mockYearRepo = new(MockFiscalYearRepository)
	suite.mockLinkSvc = new(MockLinkService)

	system, err := accountsystem.Get("french")
	suite.Require().NoError(err)
	suite.service = services.NewLedgerService(suite.mockEntryRepo, suite.mockChartRepo, suite.mockYearRepo, suite.mockLinkSvc, system)

	suite.userID = uuid.NewString()
	suite.year = domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Begin:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:       domain.YearRunning,
		IsActive:     true,
	}
	suite.bankAccount = domain.ChartAccount{
		ChartAccountID: 1,
		FiscalYearID:   suite.year.FiscalYearID,
		Code:           "512",
		Name:           "bank",
		Type:           domain.Asset,
	}
	suite.sellAccount = domain.ChartAccount{
		ChartAccountID: 2,
		FiscalYearID:   suite.year.FiscalYearID,
		Code:           "706",
		Name:           "services",
		Type:           domain.Revenue,
	}
}

func (suite *LedgerServiceTestSuite) buildingEntry() *domain.EntryAccount {
	return &domain.EntryAccount{
		EntryID:      uuid.NewString(),
		FiscalYearID: suite.year.FiscalYearID,
		JournalID:    domain.JournalSelling,
		ValueDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Designation:  "sale",
	}
}

func (suite *LedgerServiceTestSuite) balancedLines(entryID string) []domain.EntryLineAccount {
	return []domain.EntryLineAccount{
		{
			Ref:     domain.PersistedLineRef(10),
			EntryID: entryID,
			Account: suite.bankAccount,
			Amount:  decimal.RequireFromString("-120"),
		},
		{
			Ref:     domain.PersistedLineRef(11),
			EntryID: entryID,
			Account: suite.sellAccount,
			Amount:  decimal.RequireFromString("120"),
		},
	}
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_ClampsValueDate() {
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, suite.year.FiscalYearID).Return(&suite.year, nil)
	suite.mockEntryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.EntryAccount) bool {
		return e.ValueDate.Equal(suite.year.Begin)
	})).Return(nil)

	req := dto.CreateEntryRequest{
		FiscalYearID: suite.year.FiscalYearID,
		JournalID:    domain.JournalSelling,
		ValueDate:    "2023-02-10", // before the year begins
		Designation:  "early sale",
	}
	entry, err := suite.service.CreateEntry(context.Background(), req, suite.userID)

	suite.NoError(err)
	suite.Equal(suite.year.Begin, entry.ValueDate)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_FinishedYearRejected() {
	finished := suite.year
	finished.Status = domain.YearFinished
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, finished.FiscalYearID).Return(&finished, nil)

	req := dto.CreateEntryRequest{
		FiscalYearID: finished.FiscalYearID,
		JournalID:    domain.JournalSelling,
		ValueDate:    "2024-02-10",
		Designation:  "too late",
	}
	_, err := suite.service.CreateEntry(context.Background(), req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCloseEntry_BalancedAssignsNum() {
	entry := suite.buildingEntry()
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockEntryRepo.On("FindEntryLines", mock.Anything, entry.EntryID).Return(suite.balancedLines(entry.EntryID), nil)
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, suite.year.FiscalYearID).Return(&suite.year, nil)
	suite.mockEntryRepo.On("CloseEntry", mock.Anything, entry.EntryID, mock.AnythingOfType("time.Time")).Return(7, nil)

	num, err := suite.service.CloseEntry(context.Background(), entry.EntryID, true, suite.userID)

	suite.NoError(err)
	suite.Equal(7, num)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCloseEntry_UnbalancedRejected() {
	entry := suite.buildingEntry()
	lines := suite.balancedLines(entry.EntryID)
	lines[1].Amount = decimal.RequireFromString("100") // 20 short on the credit side

	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockEntryRepo.On("FindEntryLines", mock.Anything, entry.EntryID).Return(lines, nil)
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, suite.year.FiscalYearID).Return(&suite.year, nil)

	_, err := suite.service.CloseEntry(context.Background(), entry.EntryID, true, suite.userID)

	suite.ErrorIs(err, services.ErrUnbalancedEntry)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "CloseEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCloseEntry_SkipCheckCloses() {
	entry := suite.buildingEntry()
	lines := suite.balancedLines(entry.EntryID)
	lines[1].Amount = decimal.RequireFromString("100")

	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockEntryRepo.On("FindEntryLines", mock.Anything, entry.EntryID).Return(lines, nil)
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, suite.year.FiscalYearID).Return(&suite.year, nil)
	suite.mockEntryRepo.On("CloseEntry", mock.Anything, entry.EntryID, mock.AnythingOfType("time.Time")).Return(8, nil)

	num, err := suite.service.CloseEntry(context.Background(), entry.EntryID, false, suite.userID)

	suite.NoError(err)
	suite.Equal(8, num)
}

func (suite *LedgerServiceTestSuite) TestCloseEntry_AlreadyClosed() {
	entry := suite.buildingEntry()
	entry.Closed = true
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockEntryRepo.On("FindEntryLines", mock.Anything, entry.EntryID).Return(suite.balancedLines(entry.EntryID), nil)

	_, err := suite.service.CloseEntry(context.Background(), entry.EntryID, true, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestReplaceLines_ClosedEntryRejected() {
	entry := suite.buildingEntry()
	entry.Closed = true
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)

	err := suite.service.ReplaceLines(context.Background(), entry.EntryID, "", suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ReplaceEntryLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReplaceLines_ForeignYearAccountRejected() {
	entry := suite.buildingEntry()
	foreign := suite.bankAccount
	foreign.FiscalYearID = uuid.NewString()

	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockChartRepo.On("FindChartAccountByID", mock.Anything, foreign.ChartAccountID).Return(&foreign, nil)

	err := suite.service.ReplaceLines(context.Background(), entry.EntryID, "-1|1|0|-120.000000|None|", suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestStageLine_AppendsToSerial() {
	entry := suite.buildingEntry()
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockChartRepo.On("FindChartAccountByID", mock.Anything, suite.bankAccount.ChartAccountID).Return(&suite.bankAccount, nil)

	req := dto.StageLineRequest{
		Serial:         "",
		ChartAccountID: suite.bankAccount.ChartAccountID,
		DebitVal:       decimal.RequireFromString("120"),
	}
	serialText, err := suite.service.StageLine(context.Background(), entry.EntryID, req)

	suite.NoError(err)
	suite.Contains(serialText, fmt.Sprintf("|%d|", suite.bankAccount.ChartAccountID))
	// A debit on an asset account stages a negative stored amount.
	suite.Contains(serialText, "-120.000000")
}

func (suite *LedgerServiceTestSuite) TestStageLine_ReportJournalRejectsRevenue() {
	entry := suite.buildingEntry()
	entry.JournalID = domain.JournalLastYearReport
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockChartRepo.On("FindChartAccountByID", mock.Anything, suite.sellAccount.ChartAccountID).Return(&suite.sellAccount, nil)

	req := dto.StageLineRequest{
		ChartAccountID: suite.sellAccount.ChartAccountID,
		CreditVal:      decimal.RequireFromString("50"),
	}
	_, err := suite.service.StageLine(context.Background(), entry.EntryID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRemoveStagedLine() {
	serialText := "12|1|0|-120.000000|None|\n-3|2|0|120.000000|None|"

	out, err := suite.service.RemoveStagedLine(serialText, -3)

	suite.NoError(err)
	suite.Equal("12|1|0|-120.000000|None|", out)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_NegatesAmounts() {
	entry := suite.buildingEntry()
	lines := suite.balancedLines(entry.EntryID)
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockEntryRepo.On("FindEntryLines", mock.Anything, entry.EntryID).Return(lines, nil)
	suite.mockEntryRepo.On("ReplaceEntryLines", mock.Anything, entry.EntryID, mock.MatchedBy(func(replaced []domain.EntryLineAccount) bool {
		return len(replaced) == 2 &&
			replaced[0].Amount.Equal(decimal.RequireFromString("120")) &&
			replaced[1].Amount.Equal(decimal.RequireFromString("-120"))
	})).Return(lines, nil)
	suite.mockEntryRepo.On("UpdateEntry", mock.Anything, mock.AnythingOfType("domain.EntryAccount")).Return(nil)

	err := suite.service.ReverseEntry(context.Background(), entry.EntryID, suite.userID)

	suite.NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_UnlinksFirst() {
	entry := suite.buildingEntry()
	linkID := uuid.NewString()
	entry.LinkID = &linkID

	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockLinkSvc.On("Unlink", mock.Anything, entry.EntryID).Return(nil)
	suite.mockEntryRepo.On("DeleteEntry", mock.Anything, entry.EntryID).Return(nil)

	err := suite.service.DeleteEntry(context.Background(), entry.EntryID)

	suite.NoError(err)
	suite.mockLinkSvc.AssertExpectations(suite.T())
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateLinkedPayment() {
	entry := suite.buildingEntry()
	lines := []domain.EntryLineAccount{
		{
			Ref:     domain.PersistedLineRef(10),
			EntryID: entry.EntryID,
			Account: domain.ChartAccount{ChartAccountID: 3, FiscalYearID: suite.year.FiscalYearID, Code: "411", Type: domain.Asset},
			Amount:  decimal.RequireFromString("-120"),
			ThirdID: 5,
		},
		{
			Ref:     domain.PersistedLineRef(11),
			EntryID: entry.EntryID,
			Account: suite.sellAccount,
			Amount:  decimal.RequireFromString("120"),
		},
	}
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockEntryRepo.On("HasLinesMatchingMask", mock.Anything, entry.EntryID, `^4[0-9]*$`).Return(true, nil)
	suite.mockEntryRepo.On("HasLinesMatchingMask", mock.Anything, entry.EntryID, `^5[0-9]*$`).Return(false, nil)
	suite.mockEntryRepo.On("FindEntryLines", mock.Anything, entry.EntryID).Return(lines, nil)
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, suite.year.FiscalYearID).Return(&suite.year, nil)
	suite.mockEntryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.EntryAccount) bool {
		return e.JournalID == domain.JournalPayment && e.FiscalYearID == suite.year.FiscalYearID
	})).Return(nil)
	suite.mockLinkSvc.On("CreateLink", mock.Anything, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 2 && ids[0] == entry.EntryID
	})).Return(nil)

	payment, serialText, err := suite.service.CreateLinkedPayment(context.Background(), entry.EntryID, suite.userID)

	suite.NoError(err)
	suite.Equal(domain.JournalPayment, payment.JournalID)
	// Only the third line is reversed into the staged set.
	suite.Contains(serialText, "120.000000")
	suite.NotContains(serialText, "-120.000000")
	suite.mockLinkSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateLinkedPayment_NoThirdLines() {
	entry := suite.buildingEntry()
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockEntryRepo.On("FindEntryLines", mock.Anything, entry.EntryID).Return(suite.balancedLines(entry.EntryID), nil)
	suite.mockEntryRepo.On("HasLinesMatchingMask", mock.Anything, entry.EntryID, `^4[0-9]*$`).Return(false, nil)

	_, _, err := suite.service.CreateLinkedPayment(context.Background(), entry.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateLinkedPayment_CashLineRejected() {
	entry := suite.buildingEntry()
	lines := suite.balancedLines(entry.EntryID)
	lines[0].ThirdID = 5 // owes a third, but the cash side is already posted

	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockEntryRepo.On("FindEntryLines", mock.Anything, entry.EntryID).Return(lines, nil)
	suite.mockEntryRepo.On("HasLinesMatchingMask", mock.Anything, entry.EntryID, `^4[0-9]*$`).Return(true, nil)
	suite.mockEntryRepo.On("HasLinesMatchingMask", mock.Anything, entry.EntryID, `^5[0-9]*$`).Return(true, nil)

	_, _, err := suite.service.CreateLinkedPayment(context.Background(), entry.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "cash")
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestClearGhostEntries() {
	suite.mockEntryRepo.On("SweepGhostEntries", mock.Anything).Return(3, nil)

	n, err := suite.service.ClearGhostEntries(context.Background())

	suite.NoError(err)
	suite.Equal(3, n)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func TestEntrySerialRendering(t *testing.T) {
	mockEntryRepo := new(MockEntryRepository)
	system, err := accountsystem.Get("french")
	assert.NoError(t, err)
	svc := services.NewLedgerService(mockEntryRepo, new(MockChartRepository), new(MockFiscalYearRepository), new(MockLinkService), system)

	lines := []domain.EntryLineAccount{
		{
			Ref:     domain.PersistedLineRef(4),
			EntryID: "e1",
			Account: domain.ChartAccount{ChartAccountID: 9, Type: domain.Asset},
			Amount:  decimal.RequireFromString("-33.3"),
		},
	}
	mockEntryRepo.On("FindEntryLines", mock.Anything, "e1").Return(lines, nil)

	serialText, err := svc.EntrySerial(context.Background(), "e1")
	assert.NoError(t, err)
	assert.Equal(t, "4|9|0|-33.300000|None|", serialText)
}
