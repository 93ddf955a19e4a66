package services_test

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.EntryAccount, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryAccount), args.Error(1)
}

func (m *MockEntryRepository) FindEntryLines(ctx context.Context, entryID string) ([]domain.EntryLineAccount, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryLineAccount), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByYear(ctx context.Context, fiscalYearID string, journalID int64, closedOnly bool) ([]domain.EntryAccount, error) {
	args := m.Called(ctx, fiscalYearID, journalID, closedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryAccount), args.Error(1)
}

func (m *MockEntryRepository) ListUnclosedEntriesByYear(ctx context.Context, fiscalYearID string) ([]domain.EntryAccount, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryAccount), args.Error(1)
}

func (m *MockEntryRepository) CountUnclosedEntriesByYear(ctx context.Context, fiscalYearID string) (int, error) {
	args := m.Called(ctx, fiscalYearID)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryRepository) CountUnclosedEntriesByCost(ctx context.Context, costAccountingID string) (int, error) {
	args := m.Called(ctx, costAccountingID)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryRepository) CountEntriesByCostWithOtherYear(ctx context.Context, costAccountingID, fiscalYearID string) (int, error) {
	args := m.Called(ctx, costAccountingID, fiscalYearID)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByLink(ctx context.Context, linkID string) ([]domain.EntryAccount, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryAccount), args.Error(1)
}

func (m *MockEntryRepository) HasLinesMatchingMask(ctx context.Context, entryID, mask string) (bool, error) {
	args := m.Called(ctx, entryID, mask)
	return args.Bool(0), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.EntryAccount) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntry(ctx context.Context, entry domain.EntryAccount) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) ReplaceEntryLines(ctx context.Context, entryID string, lines []domain.EntryLineAccount) ([]domain.EntryLineAccount, error) {
	args := m.Called(ctx, entryID, lines)
	if args.Get(0) == nil {
		// Return(nil, nil) echoes the proposed lines, mirroring the repository.
		if args.Error(1) == nil {
			return lines, nil
		}
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryLineAccount), args.Error(1)
}

func (m *MockEntryRepository) PostEntry(ctx context.Context, entry domain.EntryAccount, lines []domain.EntryLineAccount, closeEntry bool) ([]domain.EntryLineAccount, int, error) {
	args := m.Called(ctx, entry, lines, closeEntry)
	if args.Get(0) == nil {
		// Return(nil, n, nil) echoes the proposed lines, mirroring the repository.
		if args.Error(2) == nil {
			return lines, args.Int(1), nil
		}
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.EntryLineAccount), args.Int(1), args.Error(2)
}

func (m *MockEntryRepository) CloseEntry(ctx context.Context, entryID string, entryDate time.Time) (int, error) {
	args := m.Called(ctx, entryID, entryDate)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockEntryRepository) SweepGhostEntries(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryRepository) MoveEntryToYear(ctx context.Context, entryID, targetYearID string, valueDate time.Time, accountRemap map[int64]int64) error {
	args := m.Called(ctx, entryID, targetYearID, valueDate, accountRemap)
	return args.Error(0)
}

func (m *MockEntryRepository) ClearCostAccountingRefs(ctx context.Context, costAccountingID string) error {
	args := m.Called(ctx, costAccountingID)
	return args.Error(0)
}

func (m *MockEntryRepository) BeginEditSession(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockEntryRepository) EndEditSession(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock ChartAccountRepository ---

type MockChartRepository struct {
	mock.Mock
}

var _ portsrepo.ChartAccountRepositoryFacade = (*MockChartRepository)(nil)

func (m *MockChartRepository) FindChartAccountByID(ctx context.Context, chartAccountID int64) (*domain.ChartAccount, error) {
	args := m.Called(ctx, chartAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockChartRepository) FindChartAccountByCode(ctx context.Context, fiscalYearID, code string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, fiscalYearID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockChartRepository) ListChartAccountsByYear(ctx context.Context, fiscalYearID, prefix string) ([]domain.ChartAccount, error) {
	args := m.Called(ctx, fiscalYearID, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartAccount), args.Error(1)
}

func (m *MockChartRepository) ChartAccountTotals(ctx context.Context, chartAccountID int64) (*domain.ChartAccountTotals, error) {
	args := m.Called(ctx, chartAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccountTotals), args.Error(1)
}

func (m *MockChartRepository) SumContraAccounts(ctx context.Context, fiscalYearID string) (decimal.Decimal, error) {
	args := m.Called(ctx, fiscalYearID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockChartRepository) SumLastYearReport(ctx context.Context, fiscalYearID string) (decimal.Decimal, error) {
	args := m.Called(ctx, fiscalYearID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockChartRepository) FiscalYearTotals(ctx context.Context, fiscalYearID, cashMask string) (*domain.FiscalYearTotals, error) {
	args := m.Called(ctx, fiscalYearID, cashMask)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYearTotals), args.Error(1)
}

func (m *MockChartRepository) TrialBalance(ctx context.Context, fiscalYearID, prefix string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, fiscalYearID, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockChartRepository) SaveChartAccount(ctx context.Context, account domain.ChartAccount) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChartRepository) UpdateChartAccount(ctx context.Context, account domain.ChartAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock FiscalYearRepository ---

type MockFiscalYearRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalYearRepositoryFacade = (*MockFiscalYearRepository)(nil)

func (m *MockFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindActiveFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindFiscalYearsForDate(ctx context.Context, d time.Time) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindSuccessorFiscalYear(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	args := m.Called(ctx, year)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) UpdateFiscalYearStatus(ctx context.Context, fiscalYearID string, status domain.FiscalYearStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, fiscalYearID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) ActivateFiscalYear(ctx context.Context, fiscalYearID string) error {
	args := m.Called(ctx, fiscalYearID)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) DeleteFiscalYear(ctx context.Context, fiscalYearID string) error {
	args := m.Called(ctx, fiscalYearID)
	return args.Error(0)
}

// --- Mock AccountLinkRepository ---

type MockLinkRepository struct {
	mock.Mock
}

var _ portsrepo.AccountLinkRepository = (*MockLinkRepository)(nil)

func (m *MockLinkRepository) CreateLink(ctx context.Context, entryIDs []string) (*domain.AccountLink, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLink), args.Error(1)
}

func (m *MockLinkRepository) DeleteLink(ctx context.Context, linkID string) error {
	args := m.Called(ctx, linkID)
	return args.Error(0)
}

func (m *MockLinkRepository) ClearEntryLink(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockLinkRepository) CountLinksBefore(ctx context.Context, fiscalYearID, linkID string) (int, error) {
	args := m.Called(ctx, fiscalYearID, linkID)
	return args.Int(0), args.Error(1)
}

// --- Mock LinkService ---

type MockLinkService struct {
	mock.Mock
}

var _ portssvc.LinkSvcFacade = (*MockLinkService)(nil)

func (m *MockLinkService) CreateLink(ctx context.Context, entryIDs []string) error {
	args := m.Called(ctx, entryIDs)
	return args.Error(0)
}

func (m *MockLinkService) Unlink(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockLinkService) LinkLetter(ctx context.Context, linkID string) (string, error) {
	args := m.Called(ctx, linkID)
	return args.String(0), args.Error(1)
}

// --- Mock CostAccountingRepository ---

type MockCostRepository struct {
	mock.Mock
}

var _ portsrepo.CostAccountingRepository = (*MockCostRepository)(nil)

func (m *MockCostRepository) FindCostAccountingByID(ctx context.Context, costAccountingID string) (*domain.CostAccounting, error) {
	args := m.Called(ctx, costAccountingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostAccounting), args.Error(1)
}

func (m *MockCostRepository) ListCostAccountings(ctx context.Context, fiscalYearID string) ([]domain.CostAccounting, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostAccounting), args.Error(1)
}

func (m *MockCostRepository) SaveCostAccounting(ctx context.Context, cost domain.CostAccounting) error {
	args := m.Called(ctx, cost)
	return args.Error(0)
}

func (m *MockCostRepository) UpdateCostAccounting(ctx context.Context, cost domain.CostAccounting) error {
	args := m.Called(ctx, cost)
	return args.Error(0)
}

func (m *MockCostRepository) SetDefaultCostAccounting(ctx context.Context, costAccountingID string) error {
	args := m.Called(ctx, costAccountingID)
	return args.Error(0)
}

func (m *MockCostRepository) CountModelEntriesByCost(ctx context.Context, costAccountingID string) (int, error) {
	args := m.Called(ctx, costAccountingID)
	return args.Int(0), args.Error(1)
}

func (m *MockCostRepository) CostAccountingResult(ctx context.Context, costAccountingID string) (*domain.CostAccountingResult, error) {
	args := m.Called(ctx, costAccountingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostAccountingResult), args.Error(1)
}

func (m *MockCostRepository) SyncBudgetYear(ctx context.Context, costAccountingID string, fiscalYearID *string) error {
	args := m.Called(ctx, costAccountingID, fiscalYearID)
	return args.Error(0)
}

// --- Mock ChartAccountService ---

type MockChartService struct {
	mock.Mock
}

var _ portssvc.ChartAccountSvcFacade = (*MockChartService)(nil)

func (m *MockChartService) CreateChartAccount(ctx context.Context, req dto.CreateChartAccountRequest, creatorUserID string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockChartService) GetOrCreateChartAccount(ctx context.Context, fiscalYearID, code, name, userID string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, fiscalYearID, code, name, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockChartService) FindChartAccount(ctx context.Context, fiscalYearID, code string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, fiscalYearID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockChartService) ListChartAccounts(ctx context.Context, fiscalYearID, prefix string) ([]domain.ChartAccount, error) {
	args := m.Called(ctx, fiscalYearID, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartAccount), args.Error(1)
}

func (m *MockChartService) ChartAccountTotals(ctx context.Context, chartAccountID int64) (*domain.ChartAccountTotals, error) {
	args := m.Called(ctx, chartAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccountTotals), args.Error(1)
}

func (m *MockChartService) NormalizeCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

// --- Mock ThirdService ---

type MockThirdService struct {
	mock.Mock
}

var _ portssvc.ThirdSvcFacade = (*MockThirdService)(nil)

func (m *MockThirdService) CreateThird(ctx context.Context, req dto.CreateThirdRequest, creatorUserID string) (*domain.Third, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Third), args.Error(1)
}

func (m *MockThirdService) GetThird(ctx context.Context, thirdID int64) (*domain.Third, []domain.ThirdAccount, error) {
	args := m.Called(ctx, thirdID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Third), args.Get(1).([]domain.ThirdAccount), args.Error(2)
}

func (m *MockThirdService) ListThirds(ctx context.Context) ([]domain.Third, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Third), args.Error(1)
}

func (m *MockThirdService) AttachAccount(ctx context.Context, thirdID int64, code string) (*domain.ThirdAccount, error) {
	args := m.Called(ctx, thirdID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ThirdAccount), args.Error(1)
}

func (m *MockThirdService) ResolveAccount(ctx context.Context, thirdID int64, mask domain.AccountMask, fiscalYearID string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, thirdID, mask, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockThirdService) ThirdTotal(ctx context.Context, thirdID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, thirdID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock BillRepository ---

type MockBillRepository struct {
	mock.Mock
}

var _ portsrepo.BillRepository = (*MockBillRepository)(nil)

func (m *MockBillRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepository) ListBillsByStatus(ctx context.Context, status int, limit int, nextToken string) ([]domain.Bill, string, error) {
	args := m.Called(ctx, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Bill), args.String(1), args.Error(2)
}

func (m *MockBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) NextBillNum(ctx context.Context, fiscalYearID string, billType domain.BillType) (int, error) {
	args := m.Called(ctx, fiscalYearID, billType)
	return args.Int(0), args.Error(1)
}

// --- Mock PayoffRepository ---

type MockPayoffRepository struct {
	mock.Mock
}

var _ portsrepo.PayoffRepository = (*MockPayoffRepository)(nil)

func (m *MockPayoffRepository) FindPayoffByID(ctx context.Context, payoffID string) (*domain.Payoff, error) {
	args := m.Called(ctx, payoffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payoff), args.Error(1)
}

func (m *MockPayoffRepository) ListPayoffsBySupporting(ctx context.Context, supportingID string) ([]domain.Payoff, error) {
	args := m.Called(ctx, supportingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payoff), args.Error(1)
}

func (m *MockPayoffRepository) SavePayoff(ctx context.Context, payoff domain.Payoff) error {
	args := m.Called(ctx, payoff)
	return args.Error(0)
}

func (m *MockPayoffRepository) UpdatePayoff(ctx context.Context, payoff domain.Payoff) error {
	args := m.Called(ctx, payoff)
	return args.Error(0)
}

func (m *MockPayoffRepository) DeletePayoff(ctx context.Context, payoffID string) error {
	args := m.Called(ctx, payoffID)
	return args.Error(0)
}

func (m *MockPayoffRepository) FindBankAccountByID(ctx context.Context, bankAccountID int64) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockPayoffRepository) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockPayoffRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ParameterRepository ---

type MockParameterRepository struct {
	mock.Mock
}

var _ portsrepo.ParameterRepository = (*MockParameterRepository)(nil)

func (m *MockParameterRepository) GetParameter(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockParameterRepository) SetParameter(ctx context.Context, name, value string) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

func (m *MockParameterRepository) EnsureDefaultParameters(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock ThirdRepository ---

type MockThirdRepository struct {
	mock.Mock
}

var _ portsrepo.ThirdRepository = (*MockThirdRepository)(nil)

func (m *MockThirdRepository) FindThirdByID(ctx context.Context, thirdID int64) (*domain.Third, error) {
	args := m.Called(ctx, thirdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Third), args.Error(1)
}

func (m *MockThirdRepository) ListThirds(ctx context.Context) ([]domain.Third, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Third), args.Error(1)
}

func (m *MockThirdRepository) SaveThird(ctx context.Context, third domain.Third) (int64, error) {
	args := m.Called(ctx, third)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThirdRepository) UpdateThirdStatus(ctx context.Context, thirdID int64, disabled bool) error {
	args := m.Called(ctx, thirdID, disabled)
	return args.Error(0)
}

func (m *MockThirdRepository) ListThirdAccounts(ctx context.Context, thirdID int64) ([]domain.ThirdAccount, error) {
	args := m.Called(ctx, thirdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ThirdAccount), args.Error(1)
}

func (m *MockThirdRepository) SaveThirdAccount(ctx context.Context, account domain.ThirdAccount) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThirdRepository) DeleteThirdAccount(ctx context.Context, thirdAccountID int64) error {
	args := m.Called(ctx, thirdAccountID)
	return args.Error(0)
}

func (m *MockThirdRepository) ThirdTotal(ctx context.Context, thirdID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, thirdID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
