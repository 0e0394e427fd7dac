package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/models/db_models"
)

// LedgerRepository is the transactional store over products, customers,
// transactions and deliveries. Find methods return (nil, nil) when the row
// does not exist. Lock methods take a row lock that lasts until the
// enclosing Atomic call returns.
type LedgerRepository interface {
	// Atomic runs fn against a repository bound to one database
	// transaction. fn's error rolls everything back.
	Atomic(ctx context.Context, fn func(store LedgerRepository) error) error

	FindProduct(ctx context.Context, id uuid.UUID) (*db_models.Product, error)
	LockProduct(ctx context.Context, id uuid.UUID) (*db_models.Product, error)
	ListProducts(ctx context.Context) ([]db_models.Product, error)
	InsertProduct(ctx context.Context, product *db_models.Product) error
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error

	FindCustomerByEmail(ctx context.Context, email string) (*db_models.Customer, error)
	ResolveCustomer(ctx context.Context, customer db_models.Customer) (*db_models.Customer, error)

	InsertTransaction(ctx context.Context, txn *db_models.Transaction) error
	FindTransaction(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error)
	FindTransactionByProviderID(ctx context.Context, providerTransactionID string) (*db_models.Transaction, error)
	LockTransaction(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error)
	ListTransactions(ctx context.Context, page, pageSize int) ([]db_models.Transaction, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, update TransactionUpdate) error

	FindDelivery(ctx context.Context, transactionID uuid.UUID) (*db_models.Delivery, error)
	InsertDelivery(ctx context.Context, delivery *db_models.Delivery) error
	UpdateDelivery(ctx context.Context, id uuid.UUID, address, city string, status db_models.DeliveryStatus) error
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Atomic(ctx context.Context, fn func(store LedgerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}

func (r *ledgerRepository) FindCustomerByEmail(ctx context.Context, email string) (*db_models.Customer, error) {
	var customer db_models.Customer
	err := r.db.WithContext(ctx).First(&customer, "email = ?", normalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// ResolveCustomer returns the customer with customer.Email, inserting it
// first if absent. Concurrent first purchases collapse onto one row through
// the unique email index.
func (r *ledgerRepository) ResolveCustomer(ctx context.Context, customer db_models.Customer) (*db_models.Customer, error) {
	customer.Email = normalizeEmail(customer.Email)

	existing, err := r.FindCustomerByEmail(ctx, customer.Email)
	if err != nil || existing != nil {
		return existing, err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&customer).Error
	if err != nil {
		return nil, err
	}

	existing, err = r.FindCustomerByEmail(ctx, customer.Email)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("customer vanished after upsert")
	}
	return existing, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func lockForUpdate(db *gorm.DB) *gorm.DB {
	// SQLite ignores the clause; Postgres issues SELECT ... FOR UPDATE.
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
