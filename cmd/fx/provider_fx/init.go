package provider_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/pkg/provider"
)

var Module = fx.Provide(provideGateway)

func provideGateway(cfg *config.Config, log *zap.Logger) provider.Gateway {
	if cfg.Provider.EventsSecret == "" {
		log.Warn("PROVIDER_EVENTS_SECRET is not set, every webhook will be rejected")
	}
	return provider.NewClient(provider.Config{
		BaseURL:         cfg.Provider.BaseURL,
		PublicKey:       cfg.Provider.PublicKey,
		PrivateKey:      cfg.Provider.PrivateKey,
		IntegritySecret: cfg.Provider.IntegritySecret,
		Timeout:         cfg.Provider.Timeout,
	}, log.Named("provider"))
}
