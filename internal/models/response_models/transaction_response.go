package response_models

type CustomerResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

type DeliveryResponse struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	City    string `json:"city"`
	Status  string `json:"status"`
}

type TransactionResponse struct {
	ID                    string            `json:"id"`
	Status                string            `json:"status"`
	Amount                int64             `json:"amount"`
	AmountUnit            string            `json:"amount_unit"`
	Quantity              int               `json:"quantity"`
	ProductID             string            `json:"product_id"`
	CustomerID            string            `json:"customer_id"`
	ProviderTransactionID *string           `json:"provider_transaction_id,omitempty"`
	CreatedAt             int64             `json:"created_at"`
	Product               *ProductResponse  `json:"product,omitempty"`
	Customer              *CustomerResponse `json:"customer,omitempty"`
	Delivery              *DeliveryResponse `json:"delivery,omitempty"`
}

type SettlementResult struct {
	TransactionID         string  `json:"transaction_id"`
	Status                string  `json:"status"`
	ProviderTransactionID *string `json:"provider_transaction_id"`
}

type StatusEvent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
