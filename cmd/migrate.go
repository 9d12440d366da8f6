package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satheeshds/invoicing/db"
	"github.com/satheeshds/invoicing/logging"
	"github.com/satheeshds/invoicing/services"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create database indexes and sync the invoice number sequence",
	Long: `Migrate creates the MongoDB indexes the API relies on (including the
unique index on invoice numbers) and raises the invoice counter to the
current invoice count. It is safe to run repeatedly.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	if err := services.NewInvoiceService(store.Invoices, store.Sequence).SyncSequence(ctx); err != nil {
		return fmt.Errorf("syncing invoice numbers: %w", err)
	}
	logging.Info().Msg("migration finished")
	return nil
}
