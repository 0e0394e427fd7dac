package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"storefront/internal/config"
)

var Module = fx.Provide(config.Load, provideLogger)

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
