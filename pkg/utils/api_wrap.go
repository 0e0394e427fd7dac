package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusOK, data, message)
}

func RespondStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	RespondErrorData(c, code, nil, message)
}

// RespondErrorData is RespondError with a body, for failures that still
// report the resource's current state.
func RespondErrorData(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

// HandleServiceError translates a service error into the response envelope.
// Only fixed messages are written; the wrapped detail stays in the log.
func HandleServiceError(c *gin.Context, log *zap.Logger, err error) {
	HandleServiceErrorData(c, log, err, nil)
}

func HandleServiceErrorData(c *gin.Context, log *zap.Logger, err error, data interface{}) {
	code, message := classify(err)
	if code >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("trace_id", traceID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	RespondErrorData(c, code, data, message)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, ErrTransactionNotFound):
		return http.StatusNotFound, "Transaction not found"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, ErrInsufficientStock):
		return http.StatusBadRequest, "Not enough stock"
	case errors.Is(err, ErrInvalidAmount):
		return http.StatusBadRequest, "Invalid amount"
	case errors.Is(err, ErrMissingPaymentTokens):
		return http.StatusBadRequest, "cardToken and acceptanceToken are required"
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, ErrTransactionProcessed):
		return http.StatusConflict, "Transaction already processed"
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, "Conflict"
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, ErrProvider):
		return http.StatusBadGateway, "Error processing payment with provider"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
