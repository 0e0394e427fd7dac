package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbm "storefront/internal/models/db_models"
	"storefront/internal/models/response_models"
	"storefront/internal/services"
	"storefront/pkg/notifier"
	"storefront/pkg/utils"
)

const (
	EventSignatureHeader = "X-Event-Signature"
	statusEventName      = "status"
	streamHeartbeat      = 25 * time.Second
)

type PaymentController struct {
	paymentService     services.PaymentService
	transactionService services.TransactionServiceInterface
	notifier           notifier.StatusNotifier
	log                *zap.Logger
}

func NewPaymentController(
	paymentService services.PaymentService,
	transactionService services.TransactionServiceInterface,
	statusNotifier notifier.StatusNotifier,
	log *zap.Logger,
) *PaymentController {
	return &PaymentController{
		paymentService:     paymentService,
		transactionService: transactionService,
		notifier:           statusNotifier,
		log:                log,
	}
}

// GetAcceptanceData godoc
// @Summary Fetch the provider's acceptance contract for the checkout form
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /payments/acceptance-data [get]
func (p *PaymentController) GetAcceptanceData(c *gin.Context) {
	data, err := p.paymentService.GetAcceptanceData(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, p.log, err)
		return
	}

	utils.RespondSuccess(c, data, "Acceptance data fetched successfully")
}

// HandleWebhook godoc
// @Summary Provider event callback
// @Tags Payments
// @Accept json
// @Produce json
// @Param X-Event-Signature header string true "HMAC-SHA256 of the raw body"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /payments/webhook [post]
func (p *PaymentController) HandleWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ack, err := p.paymentService.HandleWebhook(c.Request.Context(), body, c.GetHeader(EventSignatureHeader))
	if err != nil {
		utils.HandleServiceError(c, p.log, err)
		return
	}

	utils.RespondSuccess(c, ack, "Event processed")
}

// StreamStatus sends the transaction's current status as a server-sent
// event, then every change until the notifier closes the stream.
func (p *PaymentController) StreamStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Subscribe before the snapshot so no change falls between them.
	events, cancel := p.notifier.Subscribe(id.String())
	defer cancel()

	snapshot, err := p.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, p.log, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	p.send(c, response_models.StatusEvent{ID: snapshot.ID, Status: snapshot.Status})
	if dbm.TransactionStatus(snapshot.Status).IsTerminal() {
		return
	}

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case ev, open := <-events:
			if !open {
				return
			}
			p.send(c, response_models.StatusEvent{ID: ev.ID, Status: ev.Status})
		case <-heartbeat.C:
			if _, err := c.Writer.WriteString(": ping\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (p *PaymentController) send(c *gin.Context, ev response_models.StatusEvent) {
	c.SSEvent(statusEventName, ev)
	c.Writer.Flush()
}
