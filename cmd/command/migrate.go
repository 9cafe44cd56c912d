package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	_, log, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer log.Close()
	defer db.Close()

	applied, err := migrations.Apply(ctx, db, log)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info("Migrations applied: %d", applied)
	return nil
}
