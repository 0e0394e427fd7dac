package controllers_fx

import (
	"go.uber.org/fx"

	"storefront/internal/api"
	"storefront/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewProductController),
	fx.Provide(controllers.NewTransactionController),
	fx.Provide(controllers.NewPaymentController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewHealthController),
	fx.Provide(provideControllers),
	fx.Provide(api.NewRouter),
)

func provideControllers(
	products *controllers.ProductController,
	transactions *controllers.TransactionController,
	payments *controllers.PaymentController,
	admin *controllers.AdminController,
	health *controllers.HealthController,
) api.Controllers {
	return api.Controllers{
		Products:     products,
		Transactions: transactions,
		Payments:     payments,
		Admin:        admin,
		Health:       health,
	}
}
