package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/infra"
)

// NewRootCommand builds the operator CLI for schema and catalog chores.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "ledgerctl",
		Short:        "Manage the storefront database",
		SilenceUsage: true,
	}

	root.AddCommand(newMigrateCommand(connect))
	root.AddCommand(newSeedCommand(connect))
	return root
}

type connectFunc func() (*gorm.DB, *zap.Logger, func(), error)

func connect() (*gorm.DB, *zap.Logger, func(), error) {
	cfg := config.Load()
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := infra.InitPostgresql(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		infra.ClosePostgresql(db, log)
		_ = log.Sync()
	}
	return db, log, closeFn, nil
}

func newMigrateCommand(open connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the ledger tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, log, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			if err := infra.Migrate(db.WithContext(cmd.Context())); err != nil {
				return err
			}
			log.Info("migration complete")
			return nil
		},
	}
}
