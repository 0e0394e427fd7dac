package ledger_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"storefront/internal/repositories"
)

var Module = fx.Provide(
	provideLedgerRepo, provideWebhookEventRepo)

func provideLedgerRepo(db *gorm.DB) repositories.LedgerRepository {
	return repositories.NewLedgerRepository(db)
}

func provideWebhookEventRepo(db *gorm.DB) repositories.WebhookEventRepository {
	return repositories.NewWebhookEventRepository(db)
}
