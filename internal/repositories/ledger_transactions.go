package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/models/db_models"
)

// TransactionUpdate lists the columns a settlement may write. Nil fields are
// left untouched.
type TransactionUpdate struct {
	Status                *db_models.TransactionStatus
	ProviderTransactionID *string
	ProviderResponse      []byte
}

func (u TransactionUpdate) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	if u.ProviderTransactionID != nil {
		cols["provider_transaction_id"] = *u.ProviderTransactionID
	}
	if u.ProviderResponse != nil {
		cols["provider_response"] = datatypes.JSON(u.ProviderResponse)
	}
	return cols
}

func (r *ledgerRepository) InsertTransaction(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(txn).Error
}

func (r *ledgerRepository) FindTransaction(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error) {
	return r.firstTransaction(r.db.WithContext(ctx).
		Preload("Product").
		Preload("Customer").
		Preload("Delivery"), "id = ?", id)
}

func (r *ledgerRepository) FindTransactionByProviderID(ctx context.Context, providerTransactionID string) (*db_models.Transaction, error) {
	return r.firstTransaction(r.db.WithContext(ctx), "provider_transaction_id = ?", providerTransactionID)
}

func (r *ledgerRepository) LockTransaction(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error) {
	return r.firstTransaction(lockForUpdate(r.db.WithContext(ctx)), "id = ?", id)
}

func (r *ledgerRepository) firstTransaction(db *gorm.DB, query string, args ...interface{}) (*db_models.Transaction, error) {
	var txn db_models.Transaction
	if err := db.Where(query, args...).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, page, pageSize int) ([]db_models.Transaction, error) {
	var txns []db_models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Customer").
		Preload("Delivery").
		Order("created_at DESC").
		Order("id").
		Scopes(func(db *gorm.DB) *gorm.DB {
			offset := (page - 1) * pageSize
			return db.Offset(offset).Limit(pageSize)
		}).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *ledgerRepository) UpdateTransaction(ctx context.Context, id uuid.UUID, update TransactionUpdate) error {
	cols := update.columns()
	if len(cols) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&db_models.Transaction{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
