package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending   TransactionStatus = "PENDING"
	TxnStatusCompleted TransactionStatus = "COMPLETED"
	TxnStatusFailed    TransactionStatus = "FAILED"
	TxnStatusDeclined  TransactionStatus = "DECLINED"
	TxnStatusVoided    TransactionStatus = "VOIDED"
)

func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case TxnStatusCompleted, TxnStatusFailed, TxnStatusDeclined, TxnStatusVoided:
		return true
	}
	return false
}

// AmountUnit records how Amount was expressed by the client.
type AmountUnit string

const (
	AmountUnitMinor       AmountUnit = "minor"
	AmountUnitUnspecified AmountUnit = "unspecified"
)

type Transaction struct {
	BaseModel
	Amount     int64             `gorm:"not null" json:"amount"`
	AmountUnit AmountUnit        `gorm:"size:16;not null;default:unspecified" json:"amount_unit"`
	Status     TransactionStatus `gorm:"size:16;not null;index" json:"status"`
	Quantity   int               `gorm:"not null;check:quantity > 0" json:"quantity"`

	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`

	// Set once the provider responds. Unique so a webhook resolves one row.
	ProviderTransactionID *string `gorm:"uniqueIndex" json:"provider_transaction_id,omitempty"`
	// Audit trail of the last provider exchange; never returned to clients.
	ProviderResponse datatypes.JSON `gorm:"type:jsonb" json:"-"`

	Product  Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Customer Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Delivery *Delivery `gorm:"foreignKey:TransactionID" json:"delivery,omitempty"`
}
