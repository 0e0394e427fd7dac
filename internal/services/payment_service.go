package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbm "storefront/internal/models/db_models"
	"storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/provider"
	"storefront/pkg/utils"
)

const webhookAckOK = "ok"

type PaymentService interface {
	GetAcceptanceData(ctx context.Context) (*response_models.AcceptanceDataResponse, error)
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*response_models.WebhookAck, error)
}

type paymentService struct {
	transactions TransactionServiceInterface
	gateway      provider.Gateway
	events       repositories.WebhookEventRepository
	eventsSecret string
	log          *zap.Logger
}

func NewPaymentService(
	transactions TransactionServiceInterface,
	gateway provider.Gateway,
	events repositories.WebhookEventRepository,
	eventsSecret string,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		transactions: transactions,
		gateway:      gateway,
		events:       events,
		eventsSecret: eventsSecret,
		log:          log.Named("payments"),
	}
}

func (p *paymentService) GetAcceptanceData(ctx context.Context) (*response_models.AcceptanceDataResponse, error) {
	acceptance, err := p.gateway.GetAcceptanceToken(ctx)
	if err != nil {
		p.log.Warn("fetching acceptance token", zap.Error(err))
		return nil, providerError(err)
	}
	return &response_models.AcceptanceDataResponse{
		AcceptanceToken: acceptance.AcceptanceToken,
		Permalink:       acceptance.Permalink,
		Type:            acceptance.Type,
	}, nil
}

// HandleWebhook authenticates a provider callback and settles the
// transaction it refers to. Every callback is recorded, including rejected
// ones.
func (p *paymentService) HandleWebhook(ctx context.Context, rawBody []byte, signature string) (*response_models.WebhookAck, error) {
	record := &dbm.WebhookEvent{Payload: provider.AuditJSON(rawBody)}

	if !provider.VerifyInboundSignature(p.eventsSecret, rawBody, signature) {
		p.log.Warn("webhook signature rejected")
		p.audit(ctx, record, utils.ErrInvalidSignature)
		return nil, utils.ErrInvalidSignature
	}
	record.SignatureValid = true

	event, err := provider.DecodeEvent(rawBody)
	if err != nil {
		err = fmt.Errorf("%w: %v", utils.ErrInvalidRequest, err)
		p.audit(ctx, record, err)
		return nil, err
	}
	record.EventType = event.Type

	if event.Type != provider.EventTransactionUpdated {
		p.log.Info("ignoring webhook event", zap.String("event", event.Type))
		p.audit(ctx, record, nil)
		return &response_models.WebhookAck{Status: webhookAckOK}, nil
	}

	if event.Transaction == nil || event.Transaction.ID == "" {
		p.audit(ctx, record, utils.ErrMissingReference)
		return nil, utils.ErrMissingReference
	}
	record.ProviderReference = event.Transaction.ID
	record.Status = event.Transaction.Status

	result, err := p.transactions.FinalizeByProviderReference(ctx, event.Transaction.ID, event.Transaction)
	p.audit(ctx, record, err)
	if err != nil {
		p.log.Warn("webhook reconciliation failed",
			zap.String("provider_transaction_id", event.Transaction.ID),
			zap.Error(err))
		return nil, err
	}

	p.log.Info("webhook reconciled",
		zap.String("transaction_id", result.TransactionID),
		zap.String("provider_transaction_id", event.Transaction.ID),
		zap.String("status", result.Status))
	return &response_models.WebhookAck{Status: webhookAckOK}, nil
}

// audit stores the callback; a failure here never fails the webhook.
func (p *paymentService) audit(ctx context.Context, record *dbm.WebhookEvent, procErr error) {
	if procErr != nil {
		record.ProcessingError = procErr.Error()
	} else {
		now := time.Now().Unix()
		record.ProcessedAt = &now
	}
	if err := p.events.Insert(context.WithoutCancel(ctx), record); err != nil {
		p.log.Error("recording webhook event", zap.Error(err))
	}
}
