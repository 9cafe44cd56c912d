package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	lotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/lot"
	profileRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/profile"
	profilesService "github.com/m04kA/SMC-ParkingService/internal/service/profiles"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
)

var assignRoleCmd = &cobra.Command{
	Use:   "assign-role <email> <role>",
	Short: "Assign a role (user, operator, admin, superadmin) to an existing profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfiles(cmd, func(ctx context.Context, svc *profilesService.Service) error {
			return svc.AssignRole(ctx, args[0], args[1])
		})
	},
}

var seedSuperadminCmd = &cobra.Command{
	Use:   "seed-superadmin <email>",
	Short: "Grant the superadmin role to an existing profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfiles(cmd, func(ctx context.Context, svc *profilesService.Service) error {
			return svc.SeedSuperadmin(ctx, args[0])
		})
	},
}

// withProfiles поднимает сервис профилей поверх базы без метрик
func withProfiles(cmd *cobra.Command, fn func(ctx context.Context, svc *profilesService.Service) error) error {
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

	wrapped := dbmetrics.Wrap(db, nil)
	svc := profilesService.NewService(
		profileRepo.NewRepository(wrapped),
		lotRepo.NewRepository(wrapped),
		bookingRepo.NewRepository(wrapped),
		log,
	)

	if err := fn(ctx, svc); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}

	log.Info("%s: done", cmd.Name())
	return nil
}
