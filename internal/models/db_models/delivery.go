package db_models

import "github.com/google/uuid"

type DeliveryStatus string

const (
	DeliveryStatusPending  DeliveryStatus = "PENDING"
	DeliveryStatusApproved DeliveryStatus = "APPROVED"
)

const AddressNotProvided = "Not provided"

type Delivery struct {
	BaseModel
	TransactionID uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"transaction_id"`
	Address       string         `json:"address"`
	City          string         `json:"city"`
	Status        DeliveryStatus `gorm:"size:16;not null;default:PENDING" json:"status"`
}
