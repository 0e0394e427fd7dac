package request_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	ProductID        uuid.UUID       `json:"product_id" binding:"required"`
	Quantity         int             `json:"quantity" binding:"required,min=1"`
	CustomerEmail    string          `json:"customer_email" binding:"required,email"`
	CustomerFullName string          `json:"customer_full_name" binding:"required"`
	CustomerPhone    string          `json:"customer_phone" binding:"required"`
	Amount           decimal.Decimal `json:"amount"`
	// AmountUnit is "minor" or "major"; empty keeps the legacy magnitude rule.
	AmountUnit string `json:"amount_unit" binding:"omitempty,oneof=minor major"`
	Address    string `json:"address"`
	City       string `json:"city"`
}

// ProcessPaymentRequest carries tokenized card data only. Presence of the
// tokens is checked by the service so state conflicts are reported first.
type ProcessPaymentRequest struct {
	CardToken       string `json:"card_token"`
	AcceptanceToken string `json:"acceptance_token"`
	Installments    int    `json:"installments" binding:"omitempty,min=1,max=36"`
	Address         string `json:"address"`
	City            string `json:"city"`
}
