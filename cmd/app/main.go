package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"storefront/cmd/fx/admin_fx"
	"storefront/cmd/fx/config_fx"
	"storefront/cmd/fx/controllers_fx"
	"storefront/cmd/fx/db_fx"
	"storefront/cmd/fx/ledger_fx"
	"storefront/cmd/fx/notifier_fx"
	"storefront/cmd/fx/payment_service_fx"
	"storefront/cmd/fx/provider_fx"
	"storefront/cmd/fx/transaction_fx"
	"storefront/internal/config"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		ledger_fx.Module,
		provider_fx.Module,
		notifier_fx.Module,
		transaction_fx.Module,
		payment_service_fx.Module,
		admin_fx.Module,
		controllers_fx.Module,

		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
