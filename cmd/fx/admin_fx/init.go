package admin_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

var Module = fx.Provide(
	provideTokenIssuer, provideAdminService)

func provideTokenIssuer(cfg *config.Config, log *zap.Logger) *utils.TokenIssuer {
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set, admin login is disabled")
	}
	return utils.NewTokenIssuer(cfg.JWTSecret)
}

func provideAdminService(cfg *config.Config, tokens *utils.TokenIssuer, log *zap.Logger) services.AdminServiceInterface {
	return services.NewAdminService(cfg.AdminEmail, cfg.AdminPasswordHash, tokens, log)
}
