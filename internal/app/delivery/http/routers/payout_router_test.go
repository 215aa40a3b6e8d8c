package routers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"studiobook-service/internal/app/config"
	"studiobook-service/internal/app/delivery/http/controllers"
	"studiobook-service/internal/app/delivery/http/middlewares"
	"studiobook-service/internal/pkg/dto/responses"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPayoutUsecase struct {
	mock.Mock
}

func (m *MockPayoutUsecase) RunPayoutBatch(ctx context.Context) (*responses.BatchReport, error) {
	args := m.Called(ctx)
	if report := args.Get(0); report != nil {
		return report.(*responses.BatchReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPayoutUsecase) ListHistory(ctx context.Context, payeeID string, page, pageSize int) ([]responses.PayoutHistoryEntry, int, error) {
	args := m.Called(ctx, payeeID, page, pageSize)
	if entries := args.Get(0); entries != nil {
		return entries.([]responses.PayoutHistoryEntry), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

const testAPIKey = "test-superadmin-api-key-12345"

func newPayoutTestRouter(usecase *MockPayoutUsecase) *chi.Mux {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			SuperadminAPIKey: testAPIKey,
			BaseUrl:          "http://localhost:8080",
		},
	}
	internalConfig.Payout.LockTTLInSeconds = 300
	internalConfig.Payout.HistoryPageSize = 20

	middlewareInstance := &middlewares.Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}

	payoutController := &controllers.PayoutController{
		Log:            logger,
		PayoutUsecase:  usecase,
		InternalConfig: internalConfig,
	}

	router := chi.NewRouter()
	router.Use(middlewareInstance.RequestIDMiddleware)
	router.Route("/payouts", func(r chi.Router) {
		attachPayoutRoutes(r, middlewareInstance, payoutController)
	})
	return router
}

func TestPayoutRouter_RunEndpoint(t *testing.T) {

	t.Run("Run without API key is unauthorized", func(t *testing.T) {
		mockUsecase := new(MockPayoutUsecase)

		router := newPayoutTestRouter(mockUsecase)
		req := httptest.NewRequest("POST", "/payouts", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockUsecase.AssertNotCalled(t, "RunPayoutBatch")
	})

	t.Run("Run with API key returns the batch report", func(t *testing.T) {
		mockUsecase := new(MockPayoutUsecase)
		mockUsecase.On("RunPayoutBatch", mock.Anything).Return(&responses.BatchReport{
			BatchID: "batch-1",
			Message: "Payout process completed",
			Results: []responses.PayoutResult{
				{PayeeID: "payee-1", Status: responses.PayoutResultSuccess, TransferID: "tr_1"},
			},
		}, nil)

		router := newPayoutTestRouter(mockUsecase)
		req := httptest.NewRequest("POST", "/payouts", nil)
		req.Header.Set(middlewares.HeaderAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var body responses.ResponseDTO
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.Success)
		mockUsecase.AssertExpectations(t)
	})
}

func TestPayoutRouter_HistoryEndpoint(t *testing.T) {
	mockUsecase := new(MockPayoutUsecase)
	mockUsecase.On("ListHistory", mock.Anything, "payee-1", 2, 10).Return([]responses.PayoutHistoryEntry{
		{ID: "h1", PayeeID: "payee-1", Status: "completed"},
	}, 25, nil)

	router := newPayoutTestRouter(mockUsecase)
	req := httptest.NewRequest("GET", "/payouts/history/payee-1?page=2&pageSize=10", nil)
	req.Header.Set(middlewares.HeaderAPIKey, testAPIKey)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body responses.ResponseDTO
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotNil(t, body.Pagination)
	assert.Equal(t, 25, body.Pagination.Total)
	mockUsecase.AssertExpectations(t)
}
