package services

import (
	"github.com/google/uuid"

	dbm "storefront/internal/models/db_models"
	"storefront/internal/models/response_models"
)

func toProductResponse(p *dbm.Product) *response_models.ProductResponse {
	if p == nil || p.ID == uuid.Nil {
		return nil
	}
	return &response_models.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}

func toCustomerResponse(c *dbm.Customer) *response_models.CustomerResponse {
	if c == nil || c.Email == "" {
		return nil
	}
	return &response_models.CustomerResponse{
		ID:          c.ID.String(),
		Email:       c.Email,
		FullName:    c.FullName,
		PhoneNumber: c.PhoneNumber,
	}
}

func toDeliveryResponse(d *dbm.Delivery) *response_models.DeliveryResponse {
	if d == nil {
		return nil
	}
	return &response_models.DeliveryResponse{
		ID:      d.ID.String(),
		Address: d.Address,
		City:    d.City,
		Status:  string(d.Status),
	}
}

func toTransactionResponse(t *dbm.Transaction) *response_models.TransactionResponse {
	return &response_models.TransactionResponse{
		ID:                    t.ID.String(),
		Status:                string(t.Status),
		Amount:                t.Amount,
		AmountUnit:            string(t.AmountUnit),
		Quantity:              t.Quantity,
		ProductID:             t.ProductID.String(),
		CustomerID:            t.CustomerID.String(),
		ProviderTransactionID: t.ProviderTransactionID,
		CreatedAt:             t.CreatedAt,
		Product:               toProductResponse(&t.Product),
		Customer:              toCustomerResponse(&t.Customer),
		Delivery:              toDeliveryResponse(t.Delivery),
	}
}

func toSettlementResult(t *dbm.Transaction) *response_models.SettlementResult {
	return &response_models.SettlementResult{
		TransactionID:         t.ID.String(),
		Status:                string(t.Status),
		ProviderTransactionID: t.ProviderTransactionID,
	}
}
