package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	dbm "storefront/internal/models/db_models"
	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/notifier"
	"storefront/pkg/provider"
	"storefront/pkg/utils"
)

const (
	paymentMethodCard       = "CARD"
	defaultInstallments     = 1
	reasonStockAtSettlement = "insufficient_stock_at_settlement"
	reasonProductGone       = "product_missing_at_settlement"
)

type TransactionServiceInterface interface {
	Create(ctx context.Context, req request_models.CreateTransactionRequest) (*response_models.TransactionResponse, error)
	Submit(ctx context.Context, id uuid.UUID, req request_models.ProcessPaymentRequest) (*response_models.SettlementResult, error)
	FinalizeByProviderReference(ctx context.Context, providerReference string, payload *provider.TransactionPayload) (*response_models.SettlementResult, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*response_models.TransactionResponse, error)
	ListTransactions(ctx context.Context, page, pageSize int) ([]response_models.TransactionResponse, error)
}

type TransactionService struct {
	ledger   repositories.LedgerRepository
	gateway  provider.Gateway
	notifier notifier.StatusNotifier
	currency string
	log      *zap.Logger
}

func NewTransactionService(
	ledger repositories.LedgerRepository,
	gateway provider.Gateway,
	statusNotifier notifier.StatusNotifier,
	currency string,
	log *zap.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		ledger:   ledger,
		gateway:  gateway,
		notifier: statusNotifier,
		currency: currency,
		log:      log.Named("transactions"),
	}
}

// outcome is one provider verdict to apply to a PENDING transaction.
type outcome struct {
	Status                dbm.TransactionStatus
	ProviderTransactionID string
	ProviderResponse      []byte
	Address               string
	City                  string
}

func (s *TransactionService) Create(ctx context.Context, req request_models.CreateTransactionRequest) (*response_models.TransactionResponse, error) {
	if req.Quantity <= 0 {
		return nil, utils.ErrInvalidQuantity
	}
	amount, unit, err := ParseAmount(req.Amount, req.AmountUnit)
	if err != nil {
		return nil, err
	}

	product, err := s.ledger.FindProduct(ctx, req.ProductID)
	if err != nil {
		return nil, storeError("find product", err)
	}
	if product == nil {
		return nil, utils.ErrProductNotFound
	}
	if req.Quantity > product.Stock {
		return nil, utils.ErrInsufficientStock
	}

	var txn dbm.Transaction
	err = s.ledger.Atomic(ctx, func(store repositories.LedgerRepository) error {
		customer, err := store.ResolveCustomer(ctx, dbm.Customer{
			Email:       req.CustomerEmail,
			FullName:    req.CustomerFullName,
			PhoneNumber: req.CustomerPhone,
		})
		if err != nil {
			return err
		}

		txn = dbm.Transaction{
			Amount:     amount,
			AmountUnit: unit,
			Status:     dbm.TxnStatusPending,
			Quantity:   req.Quantity,
			ProductID:  product.ID,
			CustomerID: customer.ID,
		}
		if err := store.InsertTransaction(ctx, &txn); err != nil {
			return err
		}
		txn.Product = *product
		txn.Customer = *customer

		if req.Address == "" && req.City == "" {
			return nil
		}
		delivery := &dbm.Delivery{
			TransactionID: txn.ID,
			Address:       orNotProvided(req.Address),
			City:          orNotProvided(req.City),
			Status:        dbm.DeliveryStatusPending,
		}
		if err := store.InsertDelivery(ctx, delivery); err != nil {
			return err
		}
		txn.Delivery = delivery
		return nil
	})
	if err != nil {
		return nil, storeError("create transaction", err)
	}

	s.log.Info("transaction created",
		zap.String("transaction_id", txn.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", txn.Quantity),
		zap.Int64("amount", txn.Amount),
		zap.String("amount_unit", string(txn.AmountUnit)))

	return toTransactionResponse(&txn), nil
}

// Submit sends a PENDING transaction to the provider once and applies the
// answer. After dispatch the request context's cancellation is ignored so
// the outcome is always recorded.
func (s *TransactionService) Submit(ctx context.Context, id uuid.UUID, req request_models.ProcessPaymentRequest) (*response_models.SettlementResult, error) {
	txn, err := s.ledger.FindTransaction(ctx, id)
	if err != nil {
		return nil, storeError("find transaction", err)
	}
	if txn == nil {
		return nil, utils.ErrTransactionNotFound
	}
	if txn.Status != dbm.TxnStatusPending || txn.ProviderTransactionID != nil {
		return toSettlementResult(txn), utils.ErrTransactionProcessed
	}
	if strings.TrimSpace(req.CardToken) == "" || strings.TrimSpace(req.AcceptanceToken) == "" {
		return nil, utils.ErrMissingPaymentTokens
	}

	installments := req.Installments
	if installments <= 0 {
		installments = defaultInstallments
	}
	payload := provider.TransactionRequest{
		AmountInCents: MinorUnits(txn.Amount, txn.AmountUnit),
		Currency:      s.currency,
		CustomerEmail: txn.Customer.Email,
		Reference:     txn.ID.String(),
		PaymentMethod: provider.PaymentMethod{
			Type:         paymentMethodCard,
			Token:        req.CardToken,
			Installments: installments,
		},
		AcceptanceToken: req.AcceptanceToken,
	}

	dispatchCtx := context.WithoutCancel(ctx)
	log := s.log.With(zap.String("transaction_id", id.String()))

	res, callErr := s.gateway.CreateTransaction(dispatchCtx, payload)
	if callErr != nil {
		log.Warn("provider rejected payment", zap.Error(callErr))
		failed, err := s.settle(dispatchCtx, id, outcome{
			Status:           dbm.TxnStatusFailed,
			ProviderResponse: auditPayload(callErr),
		})
		if err != nil {
			log.Error("recording provider failure", zap.Error(err))
			return nil, errors.Join(providerError(callErr), err)
		}
		return toSettlementResult(failed), providerError(callErr)
	}

	mapped := MapSubmitStatus(res.Transaction.Status)
	log.Info("provider answered",
		zap.String("provider_transaction_id", res.Transaction.ID),
		zap.String("provider_status", res.Transaction.Status),
		zap.String("status", string(mapped)))

	updated, err := s.settle(dispatchCtx, id, outcome{
		Status:                mapped,
		ProviderTransactionID: res.Transaction.ID,
		ProviderResponse:      provider.AuditJSON(res.Raw),
		Address:               req.Address,
		City:                  req.City,
	})
	if updated == nil {
		return nil, err
	}
	return toSettlementResult(updated), err
}

// FinalizeByProviderReference applies a provider-pushed status to the
// transaction the provider knows as providerReference.
func (s *TransactionService) FinalizeByProviderReference(ctx context.Context, providerReference string, payload *provider.TransactionPayload) (*response_models.SettlementResult, error) {
	if payload == nil || strings.TrimSpace(payload.Status) == "" {
		return nil, fmt.Errorf("%w: event status missing", utils.ErrInvalidRequest)
	}

	txn, err := s.ledger.FindTransactionByProviderID(ctx, providerReference)
	if err != nil {
		return nil, storeError("find transaction by provider id", err)
	}
	if txn == nil {
		return nil, utils.ErrTransactionNotFound
	}

	updated, err := s.settle(ctx, txn.ID, outcome{
		Status:                MapWebhookStatus(payload.Status),
		ProviderTransactionID: providerReference,
		ProviderResponse:      provider.AuditJSON(payload.Raw()),
	})
	if updated == nil {
		return nil, err
	}
	return toSettlementResult(updated), err
}

// settle is the only writer of transaction status. It locks the row, applies
// out if the transaction is still PENDING, and on COMPLETED decrements stock
// and approves the delivery in the same database transaction. Anything
// targeting a non-PENDING transaction returns the stored row unchanged.
func (s *TransactionService) settle(ctx context.Context, id uuid.UUID, out outcome) (*dbm.Transaction, error) {
	log := s.log.With(
		zap.String("transaction_id", id.String()),
		zap.String("status", string(out.Status)))

	var result *dbm.Transaction
	transitioned := false

	err := s.ledger.Atomic(ctx, func(store repositories.LedgerRepository) error {
		txn, err := store.LockTransaction(ctx, id)
		if err != nil {
			return err
		}
		if txn == nil {
			return utils.ErrTransactionNotFound
		}
		result = txn

		if txn.Status != dbm.TxnStatusPending {
			log.Info("ignoring transition on settled transaction", zap.String("current", string(txn.Status)))
			return nil
		}

		update := repositories.TransactionUpdate{ProviderResponse: out.ProviderResponse}
		if out.ProviderTransactionID != "" {
			providerID := out.ProviderTransactionID
			update.ProviderTransactionID = &providerID
			txn.ProviderTransactionID = &providerID
		}

		if out.Status == dbm.TxnStatusPending {
			if err := store.UpdateTransaction(ctx, id, update); err != nil {
				return err
			}
			if out.Address != "" || out.City != "" {
				return upsertDelivery(ctx, store, id, out.Address, out.City, dbm.DeliveryStatusPending)
			}
			return nil
		}

		if !CanTransition(txn.Status, out.Status) {
			log.Warn("rejected transition", zap.String("current", string(txn.Status)))
			return nil
		}

		status := out.Status
		update.Status = &status
		if err := store.UpdateTransaction(ctx, id, update); err != nil {
			return err
		}
		if status == dbm.TxnStatusCompleted {
			if err := applySettlement(ctx, store, txn, out); err != nil {
				return err
			}
		}
		txn.Status = status
		transitioned = true
		return nil
	})

	if err != nil {
		if out.Status == dbm.TxnStatusCompleted &&
			(errors.Is(err, utils.ErrInsufficientStock) || errors.Is(err, utils.ErrProductNotFound)) {
			return s.compensate(ctx, id, out, err)
		}
		return nil, storeError("settle transaction", err)
	}

	if transitioned {
		log.Info("transaction settled")
		s.notifier.Publish(id.String(), string(result.Status))
	}
	return result, nil
}

// compensate records FAILED when a completion could not be settled, so a
// COMPLETED row always has its stock decrement and delivery.
func (s *TransactionService) compensate(ctx context.Context, id uuid.UUID, out outcome, cause error) (*dbm.Transaction, error) {
	reason := reasonStockAtSettlement
	if errors.Is(cause, utils.ErrProductNotFound) {
		reason = reasonProductGone
	}
	s.log.Error("settlement aborted, marking transaction failed",
		zap.String("transaction_id", id.String()),
		zap.String("provider_transaction_id", out.ProviderTransactionID),
		zap.String("reason", reason),
		zap.Error(cause))

	record, _ := json.Marshal(map[string]json.RawMessage{
		"reason":            mustJSON(reason),
		"provider_response": provider.AuditJSON(out.ProviderResponse),
	})
	failed, err := s.settle(ctx, id, outcome{
		Status:                dbm.TxnStatusFailed,
		ProviderTransactionID: out.ProviderTransactionID,
		ProviderResponse:      record,
	})
	if err != nil {
		return nil, errors.Join(cause, err)
	}
	return failed, cause
}

func applySettlement(ctx context.Context, store repositories.LedgerRepository, txn *dbm.Transaction, out outcome) error {
	product, err := store.LockProduct(ctx, txn.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return utils.ErrProductNotFound
	}
	if product.Stock < txn.Quantity {
		return utils.ErrInsufficientStock
	}
	if err := store.DecrementStock(ctx, product.ID, txn.Quantity); err != nil {
		return err
	}
	return upsertDelivery(ctx, store, txn.ID, out.Address, out.City, dbm.DeliveryStatusApproved)
}

// upsertDelivery keeps an existing placeholder's address unless a new one
// is supplied.
func upsertDelivery(ctx context.Context, store repositories.LedgerRepository, transactionID uuid.UUID, address, city string, status dbm.DeliveryStatus) error {
	existing, err := store.FindDelivery(ctx, transactionID)
	if err != nil {
		return err
	}
	if existing == nil {
		return store.InsertDelivery(ctx, &dbm.Delivery{
			TransactionID: transactionID,
			Address:       orNotProvided(address),
			City:          orNotProvided(city),
			Status:        status,
		})
	}
	if address == "" {
		address = existing.Address
	}
	if city == "" {
		city = existing.City
	}
	return store.UpdateDelivery(ctx, existing.ID, orNotProvided(address), orNotProvided(city), status)
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*response_models.TransactionResponse, error) {
	txn, err := s.ledger.FindTransaction(ctx, id)
	if err != nil {
		return nil, storeError("find transaction", err)
	}
	if txn == nil {
		return nil, utils.ErrTransactionNotFound
	}
	// Public lookup: customer contact data is only on the admin list.
	resp := toTransactionResponse(txn)
	resp.Customer = nil
	return resp, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, page, pageSize int) ([]response_models.TransactionResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	txns, err := s.ledger.ListTransactions(ctx, page, pageSize)
	if err != nil {
		return nil, storeError("list transactions", err)
	}

	out := make([]response_models.TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, *toTransactionResponse(&txns[i]))
	}
	return out, nil
}

func orNotProvided(v string) string {
	if strings.TrimSpace(v) == "" {
		return dbm.AddressNotProvided
	}
	return v
}

func auditPayload(err error) []byte {
	var perr *provider.Error
	if errors.As(err, &perr) {
		return perr.AuditPayload()
	}
	return provider.AuditJSON([]byte(err.Error()))
}

func providerError(err error) error {
	if errors.Is(err, utils.ErrProvider) {
		return err
	}
	return fmt.Errorf("%w: %v", utils.ErrProvider, err)
}

func mustJSON(v string) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// storeError passes domain errors through and tags everything else as a
// database failure.
func storeError(op string, err error) error {
	for _, group := range []error{
		utils.ErrNotFound,
		utils.ErrInvalidRequest,
		utils.ErrConflict,
		utils.ErrUnauthorized,
		utils.ErrProvider,
	} {
		if errors.Is(err, group) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %v", utils.ErrDatabaseError, op, err)
}
