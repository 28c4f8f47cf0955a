package bootstrap

import (
	"context"
	"log/slog"

	"decor-booking/internal/pkg/config"
	"decor-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var AdminSeedModule = fx.Module("admin_seed",
	fx.Invoke(SeedAdmin),
)

// SeedAdmin creates the ADMIN_EMAIL account on startup if it does not exist yet.
func SeedAdmin(lc fx.Lifecycle, cfg config.Config, cmds commands.UserAdminCommands, logger *slog.Logger) {
	if cfg.Admin.Email == "" {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			id, created, err := cmds.EnsureAdmin(ctx, commands.RegisterRequest{
				Email:    cfg.Admin.Email,
				Password: cfg.Admin.Password,
				Name:     cfg.Admin.Name,
			})
			if err != nil {
				return err
			}
			if created {
				logger.Info("管理者アカウントを作成しました", "user_id", id)
			}
			return nil
		},
	})
}
