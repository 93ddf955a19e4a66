package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LinkServiceTestSuite struct {
	suite.Suite
	mockLinkRepo  *MockLinkRepository
	mockEntryRepo *MockEntryRepository
	mockYearRepo  *MockFiscalYearRepository
	service       portssvc.LinkSvcFacade

	year domain.FiscalYear
}

func (suite *LinkServiceTestSuite) SetupTest() {
	suite.mockLinkRepo = new(MockLinkRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockYearRepo = new(MockFiscalYearRepository)
	suite.service = services.NewLinkService(suite.mockLinkRepo, suite.mockEntryRepo, suite.mockYearRepo)

	suite.year = domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		Begin:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:       domain.YearRunning,
	}
}

func (suite *LinkServiceTestSuite) entryInYear(yearID string) *domain.EntryAccount {
	return &domain.EntryAccount{
		EntryID:      uuid.NewString(),
		FiscalYearID: yearID,
		JournalID:    domain.JournalSelling,
	}
}

func (suite *LinkServiceTestSuite) TestCreateLink_TooFewEntries() {
	err := suite.service.CreateLink(context.Background(), []string{"only-one"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LinkServiceTestSuite) TestCreateLink_MixedYearsRejected() {
	a := suite.entryInYear(suite.year.FiscalYearID)
	b := suite.entryInYear(uuid.NewString())
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, a.EntryID).Return(a, nil)
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, b.EntryID).Return(b, nil)

	err := suite.service.CreateLink(context.Background(), []string{a.EntryID, b.EntryID})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "CreateLink", mock.Anything, mock.Anything)
}

func (suite *LinkServiceTestSuite) TestCreateLink_RelinksLinkedEntry() {
	a := suite.entryInYear(suite.year.FiscalYearID)
	b := suite.entryInYear(suite.year.FiscalYearID)
	oldLinkID := uuid.NewString()
	a.LinkID = &oldLinkID

	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, a.EntryID).Return(a, nil)
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, b.EntryID).Return(b, nil)
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, suite.year.FiscalYearID).Return(&suite.year, nil)

	// Unlink of the old link: a is its only member and carries lines.
	suite.mockEntryRepo.On("ListEntriesByLink", mock.Anything, oldLinkID).Return([]domain.EntryAccount{*a}, nil)
	suite.mockLinkRepo.On("ClearEntryLink", mock.Anything, a.EntryID).Return(nil)
	suite.mockEntryRepo.On("FindEntryLines", mock.Anything, a.EntryID).Return([]domain.EntryLineAccount{{}}, nil)
	suite.mockLinkRepo.On("DeleteLink", mock.Anything, oldLinkID).Return(nil)

	newLink := &domain.AccountLink{LinkID: uuid.NewString()}
	suite.mockLinkRepo.On("CreateLink", mock.Anything, []string{a.EntryID, b.EntryID}).Return(newLink, nil)

	err := suite.service.CreateLink(context.Background(), []string{a.EntryID, b.EntryID})

	suite.NoError(err)
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *LinkServiceTestSuite) TestUnlink_NoLinkIsNoop() {
	entry := suite.entryInYear(suite.year.FiscalYearID)
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)

	err := suite.service.Unlink(context.Background(), entry.EntryID)

	suite.NoError(err)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "DeleteLink", mock.Anything, mock.Anything)
}

func (suite *LinkServiceTestSuite) TestUnlink_FinishedYearIsNoop() {
	finished := suite.year
	finished.Status = domain.YearFinished
	entry := suite.entryInYear(finished.FiscalYearID)
	linkID := uuid.NewString()
	entry.LinkID = &linkID

	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, finished.FiscalYearID).Return(&finished, nil)

	err := suite.service.Unlink(context.Background(), entry.EntryID)

	suite.NoError(err)
	suite.mockLinkRepo.AssertNotCalled(suite.T(), "DeleteLink", mock.Anything, mock.Anything)
}

func (suite *LinkServiceTestSuite) TestUnlink_DeletesGhostSibling() {
	entry := suite.entryInYear(suite.year.FiscalYearID)
	linkID := uuid.NewString()
	entry.LinkID = &linkID
	entry.Closed = true

	ghost := suite.entryInYear(suite.year.FiscalYearID)
	ghost.LinkID = &linkID

	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)
	suite.mockYearRepo.On("FindFiscalYearByID", mock.Anything, suite.year.FiscalYearID).Return(&suite.year, nil)
	suite.mockEntryRepo.On("ListEntriesByLink", mock.Anything, linkID).Return([]domain.EntryAccount{*entry, *ghost}, nil)
	suite.mockLinkRepo.On("ClearEntryLink", mock.Anything, entry.EntryID).Return(nil)
	suite.mockLinkRepo.On("ClearEntryLink", mock.Anything, ghost.EntryID).Return(nil)
	suite.mockEntryRepo.On("FindEntryLines", mock.Anything, ghost.EntryID).Return([]domain.EntryLineAccount{}, nil)
	suite.mockEntryRepo.On("DeleteEntry", mock.Anything, ghost.EntryID).Return(nil)
	suite.mockLinkRepo.On("DeleteLink", mock.Anything, linkID).Return(nil)

	err := suite.service.Unlink(context.Background(), entry.EntryID)

	suite.NoError(err)
	// The closed entry is cleared but never deleted.
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, entry.EntryID)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockLinkRepo.AssertExpectations(suite.T())
}

func (suite *LinkServiceTestSuite) TestLinkLetter() {
	linkID := uuid.NewString()
	entry := suite.entryInYear(suite.year.FiscalYearID)
	suite.mockEntryRepo.On("ListEntriesByLink", mock.Anything, linkID).Return([]domain.EntryAccount{*entry}, nil)
	suite.mockLinkRepo.On("CountLinksBefore", mock.Anything, suite.year.FiscalYearID, linkID).Return(27, nil)

	letter, err := suite.service.LinkLetter(context.Background(), linkID)

	suite.NoError(err)
	suite.Equal("AB", letter)
}

func (suite *LinkServiceTestSuite) TestLinkLetter_EmptyLink() {
	linkID := uuid.NewString()
	suite.mockEntryRepo.On("ListEntriesByLink", mock.Anything, linkID).Return([]domain.EntryAccount{}, nil)

	_, err := suite.service.LinkLetter(context.Background(), linkID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLinkServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LinkServiceTestSuite))
}
