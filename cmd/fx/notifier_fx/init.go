package notifier_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"storefront/internal/config"
	dbm "storefront/internal/models/db_models"
	"storefront/pkg/notifier"
)

var Module = fx.Provide(provideNotifier)

func provideNotifier(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) notifier.StatusNotifier {
	hub := notifier.NewHub(cfg.NotifierGracePeriod, func(status string) bool {
		return dbm.TransactionStatus(status).IsTerminal()
	}, log.Named("notifier"))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			hub.Close()
			return nil
		},
	})
	return hub
}
