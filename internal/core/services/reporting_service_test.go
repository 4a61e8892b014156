package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CashSessionRepository ---
type MockCashSessionRepository struct {
	mock.Mock
}

var _ portsrepo.CashSessionRepositoryFacade = (*MockCashSessionRepository)(nil)

func (m *MockCashSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionRepository) FindOpenSession(ctx context.Context, scopeKey string) (*domain.CashSession, error) {
	args := m.Called(ctx, scopeKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSession), args.Error(1)
}

func (m *MockCashSessionRepository) SaveSession(ctx context.Context, session domain.CashSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) SummarizeSessionSales(ctx context.Context, sessionID string) (*domain.SessionSalesSummary, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionSalesSummary), args.Error(1)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockSessionRepo   *MockCashSessionRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingService
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockSessionRepo = new(MockCashSessionRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(portsrepo.RepositoryProvider{
		SessionRepo:   suite.mockSessionRepo,
		ReportingRepo: suite.mockReportingRepo,
	})
}

func (suite *ReportingServiceTestSuite) TestReconciliation_ReportsDrift() {
	ctx := context.Background()
	session := &domain.CashSession{
		SessionID:  "s-1",
		SalesCash:  dec("50"),
		SalesCard:  dec("20"),
		SalesOther: dec("0"),
		Status:     domain.SessionOpen,
	}
	summary := &domain.SessionSalesSummary{SaleCount: 3, VoidedCount: 1}
	summary.Recorded.Cash = dec("40")
	summary.Recorded.Card = dec("20")
	summary.Voided.Cash = dec("10")

	suite.mockSessionRepo.On("FindSessionByID", ctx, "s-1").Return(session, nil).Once()
	suite.mockReportingRepo.On("SummarizeSessionSales", ctx, "s-1").Return(summary, nil).Once()

	report, err := suite.service.GetSessionReconciliation(ctx, "s-1")

	suite.Require().NoError(err)
	suite.False(report.IsBalanced)
	suite.Equal("10", report.Drift.Cash.String())
	suite.True(report.Drift.Card.IsZero())
	suite.Equal("10", report.VoidedCash.String())
	suite.mockSessionRepo.AssertExpectations(suite.T())
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestReconciliation_SessionNotFound() {
	ctx := context.Background()
	suite.mockSessionRepo.On("FindSessionByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetSessionReconciliation(ctx, "missing")

	suite.ErrorIs(err, apperrors.ErrSessionNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "SummarizeSessionSales", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestReconciliation_StorageFailure() {
	ctx := context.Background()
	dbErr := errors.New("db unavailable")
	suite.mockSessionRepo.On("FindSessionByID", ctx, "s-1").Return(&domain.CashSession{SessionID: "s-1"}, nil).Once()
	suite.mockReportingRepo.On("SummarizeSessionSales", ctx, "s-1").Return(nil, dbErr).Once()

	_, err := suite.service.GetSessionReconciliation(ctx, "s-1")

	suite.ErrorIs(err, dbErr)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}
