package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/models/request_models"
	"storefront/internal/repositories"
	"storefront/internal/testutil"
	"storefront/pkg/utils"
)

func TestAdminLogin(t *testing.T) {
	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)
	tokens := utils.NewTokenIssuer("jwt-test-secret")
	svc := NewAdminService("Admin@Example.com", hash, tokens, zap.NewNop())
	ctx := context.Background()

	res, err := svc.Login(ctx, request_models.AdminLoginRequest{Email: "admin@example.com", Password: "s3cret"})
	require.NoError(t, err)
	claims, err := tokens.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin@example.com", claims.Subject)

	_, err = svc.Login(ctx, request_models.AdminLoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = svc.Login(ctx, request_models.AdminLoginRequest{Email: "other@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestAdminLogin_UnknownEmailStillHashes(t *testing.T) {
	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)
	svc := NewAdminService("admin@example.com", hash, utils.NewTokenIssuer("jwt-test-secret"), zap.NewNop()).(*AdminService)

	var compared []string
	svc.compare = func(h, plain string) error {
		compared = append(compared, h)
		return utils.ComparePasswords(h, plain)
	}

	_, err = svc.Login(context.Background(), request_models.AdminLoginRequest{Email: "guess@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	require.Len(t, compared, 1)
	assert.NotEqual(t, hash, compared[0])
	assert.NotEmpty(t, compared[0])

	_, err = svc.Login(context.Background(), request_models.AdminLoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	require.Len(t, compared, 2)
	assert.Equal(t, hash, compared[1])
}

func TestAdminLogin_NotConfigured(t *testing.T) {
	svc := NewAdminService("", "", utils.NewTokenIssuer("x"), zap.NewNop())
	_, err := svc.Login(context.Background(), request_models.AdminLoginRequest{Email: "a@b.co", Password: "p"})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestCatalog(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewCatalogService(repositories.NewLedgerRepository(db))
	ctx := context.Background()
	testutil.SeedProduct(t, db, "Mouse", 210000, 12)
	headphones := testutil.SeedProduct(t, db, "Audifonos", 850000, 8)

	list, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Audifonos", list[0].Name)

	got, err := svc.GetProduct(ctx, headphones.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(850000), got.Price)

	_, err = svc.GetProduct(ctx, uuid.New())
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}
