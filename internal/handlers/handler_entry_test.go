package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.EntryAccount, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryAccount), args.Error(1)
}

func (m *MockLedgerService) GetEntry(ctx context.Context, entryID string) (*domain.EntryAccount, []domain.EntryLineAccount, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.EntryAccount), args.Get(1).([]domain.EntryLineAccount), args.Error(2)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, fiscalYearID string, journalID int64, closedOnly bool) ([]domain.EntryAccount, error) {
	args := m.Called(ctx, fiscalYearID, journalID, closedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryAccount), args.Error(1)
}

func (m *MockLedgerService) EntrySerial(ctx context.Context, entryID string) (string, error) {
	args := m.Called(ctx, entryID)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerService) ReplaceLines(ctx context.Context, entryID, serialVals, userID string) error {
	args := m.Called(ctx, entryID, serialVals, userID)
	return args.Error(0)
}

func (m *MockLedgerService) Balance(ctx context.Context, entryID, serialVals string) (*domain.BalanceState, error) {
	args := m.Called(ctx, entryID, serialVals)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceState), args.Error(1)
}

func (m *MockLedgerService) CloseEntry(ctx context.Context, entryID string, checkBalance bool, userID string) (int, error) {
	args := m.Called(ctx, entryID, checkBalance, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerService) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockLedgerService) ReverseEntry(ctx context.Context, entryID, userID string) error {
	args := m.Called(ctx, entryID, userID)
	return args.Error(0)
}

func (m *MockLedgerService) CreateLinkedPayment(ctx context.Context, entryID, userID string) (*domain.EntryAccount, string, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.EntryAccount), args.String(1), args.Error(2)
}

func (m *MockLedgerService) StageLine(ctx context.Context, entryID string, req dto.StageLineRequest) (string, error) {
	args := m.Called(ctx, entryID, req)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerService) RemoveStagedLine(serialVals string, lineSerialID int64) (string, error) {
	args := m.Called(serialVals, lineSerialID)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerService) ClearGhostEntries(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerService) BeginEditSession(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockLedgerService) EndEditSession(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerDateValidation()
	suite.router = gin.New()
	suite.router.Use(middleware.CallerIdentityMiddleware())

	suite.mockLedgerService = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1")
	registerEntryRoutes(v1, suite.mockLedgerService)
}

// --- Test Cases ---

func (suite *EntryHandlerTestSuite) TestCreateEntry_Success() {
	userID := uuid.NewString()
	fiscalYearID := uuid.NewString()
	expected := &domain.EntryAccount{
		EntryID:      uuid.NewString(),
		FiscalYearID: fiscalYearID,
		JournalID:    domain.JournalOther,
		ValueDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Designation:  "office rent",
	}

	suite.mockLedgerService.On("CreateEntry",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
			return req.FiscalYearID == fiscalYearID && req.JournalID == domain.JournalOther
		}),
		userID, // identity forwarded from the X-User-ID header
	).Return(expected, nil).Once()

	body, _ := json.Marshal(dto.CreateEntryRequest{
		FiscalYearID: fiscalYearID,
		JournalID:    domain.JournalOther,
		ValueDate:    "2024-06-01",
		Designation:  "office rent",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.EntryResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(expected.EntryID, responseBody.EntryID)
	suite.Equal("office rent", responseBody.Designation)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_InvalidDateRejected() {
	body := []byte(`{"fiscalYearID":"fy","journalID":5,"valueDate":"01/06/2024","designation":"x"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestCloseEntry_UnbalancedIsBadRequest() {
	entryID := uuid.NewString()
	suite.mockLedgerService.On("CloseEntry", mock.Anything, entryID, true, "system").
		Return(0, fmt.Errorf("%w: %s", apperrors.ErrValidation, services.ErrUnbalancedEntry)).Once()

	body := []byte(`{"checkBalance":true}`)
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/close", entryID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	// No X-User-ID header: the change is attributed to "system".

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "balance")
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()
	suite.mockLedgerService.On("GetEntry", mock.Anything, entryID).
		Return(nil, nil, fmt.Errorf("entry %s: %w", entryID, apperrors.ErrNotFound)).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/entries/%s", entryID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestEntryHandler(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
