package services

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/models/response_models"
	"storefront/internal/repositories"
	"storefront/pkg/utils"
)

type CatalogServiceInterface interface {
	ListProducts(ctx context.Context) ([]response_models.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*response_models.ProductResponse, error)
}

type CatalogService struct {
	ledger repositories.LedgerRepository
}

func NewCatalogService(ledger repositories.LedgerRepository) CatalogServiceInterface {
	return &CatalogService{ledger: ledger}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]response_models.ProductResponse, error) {
	products, err := s.ledger.ListProducts(ctx)
	if err != nil {
		return nil, storeError("list products", err)
	}

	out := make([]response_models.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *toProductResponse(&products[i]))
	}
	return out, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*response_models.ProductResponse, error) {
	product, err := s.ledger.FindProduct(ctx, id)
	if err != nil {
		return nil, storeError("find product", err)
	}
	if product == nil {
		return nil, utils.ErrProductNotFound
	}
	return toProductResponse(product), nil
}
