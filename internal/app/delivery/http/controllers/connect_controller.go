package controllers

import (
	"context"
	"net/http"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/dto/requests"
	"studiobook-service/internal/pkg/exceptions"
	"studiobook-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ConnectController struct {
	Log            *zap.Logger
	ConnectUsecase contracts.ConnectUsecase
}

var (
	connectControllerInstance *ConnectController
	onceConnectController     sync.Once
)

func NewConnectController(logger *zap.Logger, connectUsecase contracts.ConnectUsecase) *ConnectController {
	onceConnectController.Do(func() {
		connectControllerInstance = &ConnectController{
			Log:            logger,
			ConnectUsecase: connectUsecase,
		}
	})
	return connectControllerInstance
}

// CreateAccount handles POST /connect/accounts.
func (ctrl *ConnectController) CreateAccount(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.CreateConnectAccount)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := ctrl.ConnectUsecase.CreateAccount(ctx, request)
	if err != nil {
		ctrl.Log.Error("Failed to create connected account",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "connect_account_created", requestID,
		zap.String(constvars.LoggingAccountIDKey, result.AccountID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ConnectAccountCreated, result)
}

// GetAccountStatus handles GET /connect/accounts/{accountID}.
func (ctrl *ConnectController) GetAccountStatus(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	accountID := chi.URLParam(r, "accountID")
	if accountID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamMissing(nil, "accountID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	status, err := ctrl.ConnectUsecase.GetAccountStatus(ctx, accountID)
	if err != nil {
		ctrl.Log.Error("Failed to retrieve connected account",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAccountIDKey, accountID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConnectAccountRetrieved, status)
}
