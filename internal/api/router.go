package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/api/controllers"
	"storefront/internal/config"
	"storefront/internal/services"
	"storefront/pkg/middleware"
	"storefront/pkg/utils"
)

type Controllers struct {
	Products     *controllers.ProductController
	Transactions *controllers.TransactionController
	Payments     *controllers.PaymentController
	Admin        *controllers.AdminController
	Health       *controllers.HealthController
}

func NewRouter(cfg *config.Config, log *zap.Logger, tokens *utils.TokenIssuer, ctrl Controllers) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL))

	RegisterRoutes(r, tokens, ctrl)
	return r
}

func RegisterRoutes(r *gin.Engine, tokens *utils.TokenIssuer, ctrl Controllers) {
	r.GET("/healthz", ctrl.Health.Healthz)

	productsGroup := r.Group("/products")
	productsGroup.GET("", ctrl.Products.ListProducts)
	productsGroup.GET("/:id", ctrl.Products.GetProduct)

	transactionsGroup := r.Group("/transactions")
	transactionsGroup.POST("", ctrl.Transactions.CreateTransaction)
	transactionsGroup.GET("/:id", ctrl.Transactions.GetTransaction)
	transactionsGroup.POST("/:id/process", ctrl.Transactions.ProcessPayment)
	transactionsGroup.GET("",
		middleware.JWTAuthMiddleware(tokens),
		middleware.RoleMiddleware(services.RoleAdmin),
		ctrl.Transactions.ListTransactions)

	paymentsGroup := r.Group("/payments")
	paymentsGroup.GET("/acceptance-data", ctrl.Payments.GetAcceptanceData)
	paymentsGroup.POST("/webhook", ctrl.Payments.HandleWebhook)
	paymentsGroup.GET("/transactions/:id/events", ctrl.Payments.StreamStatus)

	adminGroup := r.Group("/admin")
	adminGroup.POST("/login", ctrl.Admin.Login)
}
