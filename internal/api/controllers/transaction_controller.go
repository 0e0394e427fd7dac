package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/models/request_models"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

type TransactionController struct {
	transactionService services.TransactionServiceInterface
	log                *zap.Logger
}

func NewTransactionController(transactionService services.TransactionServiceInterface, log *zap.Logger) *TransactionController {
	return &TransactionController{
		transactionService: transactionService,
		log:                log,
	}
}

// CreateTransaction godoc
// @Summary Create a pending purchase
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body request_models.CreateTransactionRequest true "Purchase"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /transactions [post]
func (t *TransactionController) CreateTransaction(c *gin.Context) {
	var req request_models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	txn, err := t.transactionService.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, t.log, err)
		return
	}

	utils.RespondStatus(c, http.StatusCreated, txn, "Transaction created successfully")
}

// ProcessPayment godoc
// @Summary Charge a pending transaction with a tokenized card
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body request_models.ProcessPaymentRequest true "Card tokens"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /transactions/{id}/process [post]
func (t *TransactionController) ProcessPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request_models.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := t.transactionService.Submit(c.Request.Context(), id, req)
	if err != nil {
		// Conflicts and settled failures still tell the caller the stored status.
		if result != nil && !errors.Is(err, utils.ErrDatabaseError) {
			utils.HandleServiceErrorData(c, t.log, err, result)
			return
		}
		utils.HandleServiceError(c, t.log, err)
		return
	}

	utils.RespondSuccess(c, result, "Payment processed")
}

func (t *TransactionController) GetTransaction(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := t.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, t.log, err)
		return
	}

	utils.RespondSuccess(c, txn, "Transaction fetched successfully")
}

// ListTransactions is admin only.
func (t *TransactionController) ListTransactions(c *gin.Context) {
	page, pageSize, ok := parsePage(c)
	if !ok {
		return
	}

	txns, err := t.transactionService.ListTransactions(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, t.log, err)
		return
	}

	utils.RespondSuccess(c, txns, "Transactions fetched successfully")
}
