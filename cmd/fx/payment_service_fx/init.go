package payment_service_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/provider"
)

var Module = fx.Provide(
	providePaymentService,
)

func providePaymentService(
	transactions services.TransactionServiceInterface,
	gateway provider.Gateway,
	events repositories.WebhookEventRepository,
	cfg *config.Config,
	log *zap.Logger,
) services.PaymentService {
	return services.NewPaymentService(transactions, gateway, events, cfg.Provider.EventsSecret, log)
}
