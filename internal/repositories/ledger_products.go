package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models/db_models"
	"storefront/pkg/utils"
)

func (r *ledgerRepository) FindProduct(ctx context.Context, id uuid.UUID) (*db_models.Product, error) {
	return r.findProduct(r.db.WithContext(ctx), id)
}

func (r *ledgerRepository) LockProduct(ctx context.Context, id uuid.UUID) (*db_models.Product, error) {
	return r.findProduct(lockForUpdate(r.db.WithContext(ctx)), id)
}

func (r *ledgerRepository) findProduct(db *gorm.DB, id uuid.UUID) (*db_models.Product, error) {
	var product db_models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *ledgerRepository) ListProducts(ctx context.Context) ([]db_models.Product, error) {
	var products []db_models.Product
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ledgerRepository) InsertProduct(ctx context.Context, product *db_models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// DecrementStock subtracts quantity only while enough stock remains, so two
// settlements can never both consume the last units.
func (r *ledgerRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	res := r.db.WithContext(ctx).
		Model(&db_models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return utils.ErrInsufficientStock
	}
	return nil
}
