package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"studiobook-service/internal/app/config"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/exceptions"
	"studiobook-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PayoutController struct {
	Log            *zap.Logger
	PayoutUsecase  contracts.PayoutUsecase
	InternalConfig *config.InternalConfig
}

var (
	payoutControllerInstance *PayoutController
	oncePayoutController     sync.Once
)

func NewPayoutController(logger *zap.Logger, payoutUsecase contracts.PayoutUsecase, internalConfig *config.InternalConfig) *PayoutController {
	oncePayoutController.Do(func() {
		instance := &PayoutController{
			Log:            logger,
			PayoutUsecase:  payoutUsecase,
			InternalConfig: internalConfig,
		}
		payoutControllerInstance = instance
	})
	return payoutControllerInstance
}

// RunPayoutBatch handles POST /payouts/run. The endpoint is synchronous; the
// response carries the full per-payee outcome of the batch.
func (ctrl *PayoutController) RunPayoutBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("Request ID missing from context",
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	// The batch can hold the lock for up to its TTL; give it the same window.
	timeout := time.Duration(ctrl.InternalConfig.Payout.LockTTLInSeconds) * time.Second
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	report, err := ctrl.PayoutUsecase.RunPayoutBatch(ctx)
	if err != nil {
		ctrl.Log.Error("Failed to run payout batch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "payout_batch_completed", requestID,
		zap.String(constvars.LoggingBatchIDKey, report.BatchID),
		zap.Int("result_count", len(report.Results)),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, report.Message, report)
}

// ListHistory handles GET /payouts/history/{payeeID}?page=N&pageSize=M.
func (ctrl *PayoutController) ListHistory(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	payeeID := chi.URLParam(r, "payeeID")
	if payeeID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamMissing(nil, "payeeID"))
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = ctrl.InternalConfig.Payout.HistoryPageSize
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, total, err := ctrl.PayoutUsecase.ListHistory(ctx, payeeID, page, pageSize)
	if err != nil {
		ctrl.Log.Error("Failed to list payout history",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPayeeIDKey, payeeID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	baseURL := fmt.Sprintf("%s%s", ctrl.InternalConfig.App.BaseUrl, r.URL.Path)
	pagination := utils.BuildPaginationResponse(total, page, pageSize, baseURL)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.PayoutHistorySuccessfullyListed, pagination, entries)
}
