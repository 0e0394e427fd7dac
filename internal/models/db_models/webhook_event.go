package db_models

import "gorm.io/datatypes"

// WebhookEvent stores every inbound provider callback for audit.
type WebhookEvent struct {
	BaseModel
	EventType         string         `gorm:"size:64;index"`
	ProviderReference string         `gorm:"index"`
	Status            string         `gorm:"size:32"`
	Payload           datatypes.JSON `gorm:"type:jsonb"`
	SignatureValid    bool           `gorm:"index"`
	ProcessingError   string
	ProcessedAt       *int64
}
