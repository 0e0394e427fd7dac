package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbm "storefront/internal/models/db_models"
	"storefront/internal/repositories"
)

// DefaultCatalog is what seed inserts into an empty product table.
var DefaultCatalog = []dbm.Product{
	{Name: "Reloj Inteligente Sport v2", Description: "Reloj deportivo con GPS y monitor de ritmo cardiaco", Price: 150000, Stock: 15},
	{Name: "Audífonos Noise Cancelling", Description: "Audífonos inalámbricos con cancelación activa de ruido", Price: 850000, Stock: 8},
	{Name: "Cargador Carga Rápida 65W", Description: "Cargador USB-C GaN de 65W", Price: 120000, Stock: 50},
	{Name: "Mouse Ergonómico Wireless", Description: "Mouse vertical inalámbrico recargable", Price: 210000, Stock: 12},
}

func newSeedCommand(open connectFunc) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the default catalog (run migrate first)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, log, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()

			inserted, err := SeedCatalog(cmd.Context(), repositories.NewLedgerRepository(db), DefaultCatalog, force)
			if err != nil {
				return err
			}
			log.Info("seed complete", zap.Int("inserted", inserted))
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d products\n", inserted)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "insert even when products already exist")
	return cmd
}

// SeedCatalog inserts products when the catalog is empty, or always with
// force. It returns how many rows were written.
func SeedCatalog(ctx context.Context, ledger repositories.LedgerRepository, products []dbm.Product, force bool) (int, error) {
	inserted := 0
	err := ledger.Atomic(ctx, func(store repositories.LedgerRepository) error {
		existing, err := store.ListProducts(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 && !force {
			return nil
		}

		for _, p := range products {
			product := p
			if err := store.InsertProduct(ctx, &product); err != nil {
				return fmt.Errorf("insert %q: %w", p.Name, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
