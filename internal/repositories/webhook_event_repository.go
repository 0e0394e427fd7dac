package repositories

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/models/db_models"
)

type WebhookEventRepository interface {
	Insert(ctx context.Context, event *db_models.WebhookEvent) error
	ListByReference(ctx context.Context, providerReference string) ([]db_models.WebhookEvent, error)
}

type webhookEventRepository struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

func (w *webhookEventRepository) Insert(ctx context.Context, event *db_models.WebhookEvent) error {
	return w.db.WithContext(ctx).Create(event).Error
}

func (w *webhookEventRepository) ListByReference(ctx context.Context, providerReference string) ([]db_models.WebhookEvent, error) {
	var events []db_models.WebhookEvent
	err := w.db.WithContext(ctx).
		Where("provider_reference = ?", providerReference).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
