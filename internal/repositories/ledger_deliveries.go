package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models/db_models"
)

func (r *ledgerRepository) FindDelivery(ctx context.Context, transactionID uuid.UUID) (*db_models.Delivery, error) {
	var delivery db_models.Delivery
	err := r.db.WithContext(ctx).First(&delivery, "transaction_id = ?", transactionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &delivery, nil
}

func (r *ledgerRepository) InsertDelivery(ctx context.Context, delivery *db_models.Delivery) error {
	return r.db.WithContext(ctx).Create(delivery).Error
}

func (r *ledgerRepository) UpdateDelivery(ctx context.Context, id uuid.UUID, address, city string, status db_models.DeliveryStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Delivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"address": address,
			"city":    city,
			"status":  status,
		}).Error
}
