package transaction_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/notifier"
	"storefront/pkg/provider"
)

var Module = fx.Provide(
	provideTransactionService, provideCatalogService)

func provideTransactionService(
	ledger repositories.LedgerRepository,
	gateway provider.Gateway,
	statusNotifier notifier.StatusNotifier,
	cfg *config.Config,
	log *zap.Logger,
) services.TransactionServiceInterface {
	return services.NewTransactionService(ledger, gateway, statusNotifier, cfg.Provider.Currency, log)
}

func provideCatalogService(ledger repositories.LedgerRepository) services.CatalogServiceInterface {
	return services.NewCatalogService(ledger)
}
