package services_test

import (
	"context"
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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FiscalYearServiceTestSuite struct {
	suite.Suite
	mockYearRepo  *MockFiscalYearRepository
	mockChartRepo *MockChartRepository
	mockEntryRepo *MockEntryRepository
	mockCostRepo  *MockCostRepository
	mockChartSvc  *MockChartService
	service       portssvc.FiscalYearSvcFacade

	userID string
}

func (suite *FiscalYearServiceTestSuite) SetupTest() {
	suite.mockYearRepo = new(MockFiscalYearRepository)
	suite.mockChartRepo = new(MockChartRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockCostRepo = new(MockCostRepository)
	suite.mockChartSvc = new(MockChartService)

	system, err := accountsystem.Get("french")
	suite.Require().NoError(err)
	suite.service = services.NewFiscalYearService(
		suite.mockYearRepo, suite.mockChartRepo, suite.mockEntryRepo,
		suite.mockCostRepo, suite.mockChartSvc, system)

	suite.userID = uuid.NewString()
}

func runningYear() domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Begin:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:       domain.YearRunning,
		IsActive:     true,
	}
}

func (suite *FiscalYearServiceTestSuite) TestCreateFiscalYear_FirstYearIsActive() {
	suite.mockYearRepo.On("ListFiscalYears", mock.Anything).Return([]domain.FiscalYear{}, nil)
	suite.mockYearRepo.On("SaveFiscalYear", mock.Anything, mock.MatchedBy(func(y domain.FiscalYear) bool {
		return y.IsActive && y.PredecessorID == nil && y.Status == domain.YearBuilding
	})).Return(nil)

	begin := "2024-01-01"
	end := "2024-12-31"
	year, err := suite.service.CreateFiscalYear(context.Background(),
		dto.CreateFiscalYearRequest{Begin: &begin, End: &end}, suite.userID)

	suite.NoError(err)
	suite.True(year.IsActive)
	suite.mockYearRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestCreateFiscalYear_SuccessorChainsToLast() {
	last := runningYear()
	suite.mockYearRepo.On("ListFiscalYears", mock.Anything).Return([]domain.FiscalYear{last}, nil)
	suite.mockYearRepo.On("SaveFiscalYear", mock.Anything, mock.MatchedBy(func(y domain.FiscalYear) bool {
		return !y.IsActive &&
			y.PredecessorID != nil && *y.PredecessorID == last.FiscalYearID &&
			y.Begin.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			y.End.Equal(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	})).Return(nil)

	year, err := suite.service.CreateFiscalYear(context.Background(), dto.CreateFiscalYearRequest{}, suite.userID)

	suite.NoError(err)
	suite.Equal(last.FiscalYearID, *year.PredecessorID)
}

func (suite *FiscalYearServiceTestSuite) TestCreateFiscalYear_InvertedDatesRejected() {
	suite.mockYearRepo.On("ListFiscalYears", mock.Anything).Return([]domain.FiscalYear{}, nil)

	begin := "2024-12-31"
	end := "2024-01-01"
	_, err := suite.service.CreateFiscalYear(context.Background(),
		dto.CreateFiscalYearRequest{Begin: &begin, End: &end}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalYearServiceTestSuite) TestActivateFiscalYear_SweepsGhostsFirst() {
	year := runningYear()
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, year.FiscalYearID).Return(&year, nil)
	suite.mockEntryRepo.On("SweepGhostEntries", mock.Anything).Return(2, nil)
	suite.mockYearRepo.On("ActivateFiscalYear", mock.Anything, year.FiscalYearID).Return(nil)

	err := suite.service.ActivateFiscalYear(context.Background(), year.FiscalYearID)

	suite.NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockYearRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestSetFiscalYearRunning_RequiresBuilding() {
	year := runningYear()
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, year.FiscalYearID).Return(&year, nil)

	err := suite.service.SetFiscalYearRunning(context.Background(), year.FiscalYearID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalYearServiceTestSuite) TestImportChartsAccounts_CopiesMissingCodes() {
	predecessorID := uuid.NewString()
	year := runningYear()
	year.PredecessorID = &predecessorID

	source := []domain.ChartAccount{
		{ChartAccountID: 1, FiscalYearID: predecessorID, Code: "512", Name: "bank", Type: domain.Asset},
		{ChartAccountID: 2, FiscalYearID: predecessorID, Code: "706", Name: "services", Type: domain.Revenue},
	}
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, year.FiscalYearID).Return(&year, nil)
	suite.mockChartRepo.On("ListChartAccountsByYear", mock.Anything, predecessorID, "").Return(source, nil)
	// "512" already exists in the target year, "706" does not.
	suite.mockChartRepo.On("FindChartAccountByCode", mock.Anything, year.FiscalYearID, "512").
		Return(&domain.ChartAccount{ChartAccountID: 9}, nil)
	suite.mockChartRepo.On("FindChartAccountByCode", mock.Anything, year.FiscalYearID, "706").
		Return(nil, apperrors.ErrNotFound)
	suite.mockChartRepo.On("SaveChartAccount", mock.Anything, mock.MatchedBy(func(a domain.ChartAccount) bool {
		return a.Code == "706" && a.FiscalYearID == year.FiscalYearID && a.Type == domain.Revenue
	})).Return(int64(10), nil)

	imported, err := suite.service.ImportChartsAccounts(context.Background(), year.FiscalYearID, suite.userID)

	suite.NoError(err)
	suite.Equal(1, imported)
	suite.mockChartRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestImportChartsAccounts_NoPredecessor() {
	year := runningYear()
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, year.FiscalYearID).Return(&year, nil)

	_, err := suite.service.ImportChartsAccounts(context.Background(), year.FiscalYearID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalYearServiceTestSuite) TestCheckClose_ContraNotZero() {
	year := runningYear()
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, year.FiscalYearID).Return(&year, nil)
	suite.mockEntryRepo.On("SweepGhostEntries", mock.Anything).Return(0, nil)
	suite.mockChartRepo.On("SumContraAccounts", mock.Anything, year.FiscalYearID).
		Return(decimal.RequireFromString("12.5"), nil)

	_, err := suite.service.CheckCloseFiscalYear(context.Background(), year.FiscalYearID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "contra")
}

func (suite *FiscalYearServiceTestSuite) TestCheckClose_UnclosedWithoutSuccessor() {
	year := runningYear()
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, year.FiscalYearID).Return(&year, nil)
	suite.mockEntryRepo.On("SweepGhostEntries", mock.Anything).Return(0, nil)
	suite.mockChartRepo.On("SumContraAccounts", mock.Anything, year.FiscalYearID).Return(decimal.Zero, nil)
	suite.mockEntryRepo.On("CountUnclosedEntriesByYear", mock.Anything, year.FiscalYearID).Return(3, nil)
	suite.mockYearRepo.On("FindSuccessorFiscalYear", mock.Anything, year.FiscalYearID).Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.CheckCloseFiscalYear(context.Background(), year.FiscalYearID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalYearServiceTestSuite) TestCloseFiscalYear_MigratesUnclosedEntries() {
	year := runningYear()
	successor := runningYear()
	successor.Begin = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	successor.End = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	unclosed := domain.EntryAccount{
		EntryID:      uuid.NewString(),
		FiscalYearID: year.FiscalYearID,
		JournalID:    domain.JournalOther,
		ValueDate:    time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC),
	}
	oldAccount := domain.ChartAccount{ChartAccountID: 3, FiscalYearID: year.FiscalYearID, Code: "512", Name: "bank", Type: domain.Asset}
	newAccount := domain.ChartAccount{ChartAccountID: 30, FiscalYearID: successor.FiscalYearID, Code: "512", Name: "bank", Type: domain.Asset}

	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, year.FiscalYearID).Return(&year, nil)
	suite.mockEntryRepo.On("SweepGhostEntries", mock.Anything).Return(0, nil)
	suite.mockChartRepo.On("SumContraAccounts", mock.Anything, year.FiscalYearID).Return(decimal.Zero, nil)
	suite.mockEntryRepo.On("CountUnclosedEntriesByYear", mock.Anything, year.FiscalYearID).Return(1, nil)
	suite.mockYearRepo.On("FindSuccessorFiscalYear", mock.Anything, year.FiscalYearID).Return(&successor, nil)
	suite.mockCostRepo.On("ListCostAccountings", mock.Anything, year.FiscalYearID).Return([]domain.CostAccounting{}, nil)
	suite.mockEntryRepo.On("ListUnclosedEntriesByYear", mock.Anything, year.FiscalYearID).Return([]domain.EntryAccount{unclosed}, nil)
	suite.mockEntryRepo.On("FindEntryLines", mock.Anything, unclosed.EntryID).Return([]domain.EntryLineAccount{
		{Ref: domain.PersistedLineRef(1), EntryID: unclosed.EntryID, Account: oldAccount, Amount: decimal.RequireFromString("-50")},
	}, nil)
	suite.mockChartSvc.On("GetOrCreateChartAccount", mock.Anything, successor.FiscalYearID, "512", "bank", suite.userID).
		Return(&newAccount, nil)
	suite.mockEntryRepo.On("MoveEntryToYear", mock.Anything, unclosed.EntryID, successor.FiscalYearID,
		successor.Begin, map[int64]int64{3: 30}).Return(nil)
	suite.mockYearRepo.On("UpdateFiscalYearStatus", mock.Anything, year.FiscalYearID, domain.YearFinished,
		suite.userID, mock.AnythingOfType("time.Time")).Return(nil)

	err := suite.service.CloseFiscalYear(context.Background(), year.FiscalYearID, suite.userID)

	suite.NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockYearRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestCloseFiscalYear_ClosesCostAccountings() {
	year := runningYear()
	cost := domain.CostAccounting{
		CostAccountingID: uuid.NewString(),
		Name:             "workshop",
		Status:           domain.CostOpened,
		IsDefault:        true,
	}

	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, year.FiscalYearID).Return(&year, nil)
	suite.mockEntryRepo.On("SweepGhostEntries", mock.Anything).Return(0, nil)
	suite.mockChartRepo.On("SumContraAccounts", mock.Anything, year.FiscalYearID).Return(decimal.Zero, nil)
	suite.mockEntryRepo.On("CountUnclosedEntriesByYear", mock.Anything, year.FiscalYearID).Return(0, nil)
	suite.mockCostRepo.On("ListCostAccountings", mock.Anything, year.FiscalYearID).Return([]domain.CostAccounting{cost}, nil)
	suite.mockCostRepo.On("SetDefaultCostAccounting", mock.Anything, "").Return(nil)
	suite.mockCostRepo.On("UpdateCostAccounting", mock.Anything, mock.MatchedBy(func(c domain.CostAccounting) bool {
		return c.CostAccountingID == cost.CostAccountingID && c.Status == domain.CostClosed && !c.IsDefault
	})).Return(nil)
	suite.mockYearRepo.On("UpdateFiscalYearStatus", mock.Anything, year.FiscalYearID, domain.YearFinished,
		suite.userID, mock.AnythingOfType("time.Time")).Return(nil)

	err := suite.service.CloseFiscalYear(context.Background(), year.FiscalYearID, suite.userID)

	suite.NoError(err)
	suite.mockCostRepo.AssertExpectations(suite.T())
}

func (suite *FiscalYearServiceTestSuite) TestDeleteFiscalYear_OnlyLastYear() {
	first := runningYear()
	last := runningYear()
	suite.mockYearRepo.On("ListFiscalYears", mock.Anything).Return([]domain.FiscalYear{first, last}, nil)

	err := suite.service.DeleteFiscalYear(context.Background(), first.FiscalYearID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockYearRepo.AssertNotCalled(suite.T(), "DeleteFiscalYear", mock.Anything, mock.Anything)
}

func (suite *FiscalYearServiceTestSuite) TestDeleteFiscalYear_FinishedRejected() {
	last := runningYear()
	last.Status = domain.YearFinished
	suite.mockYearRepo.On("ListFiscalYears", mock.Anything).Return([]domain.FiscalYear{last}, nil)

	err := suite.service.DeleteFiscalYear(context.Background(), last.FiscalYearID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalYearServiceTestSuite) TestFiscalYearTotals_UsesCashMask() {
	year := runningYear()
	totals := &domain.FiscalYearTotals{
		Revenue: decimal.RequireFromString("1000"),
		Expense: decimal.RequireFromString("400"),
	}
	suite.mockChartRepo.On("FiscalYearTotals", mock.Anything, year.FiscalYearID, "^5[0-9]*$").Return(totals, nil)

	got, err := suite.service.FiscalYearTotals(context.Background(), year.FiscalYearID)

	suite.NoError(err)
	suite.True(got.Result().Equal(decimal.RequireFromString("600")))
}

func TestFiscalYearServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalYearServiceTestSuite))
}
