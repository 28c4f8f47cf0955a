package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"decor-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/joho/godotenv"
)

func main() {
	var (
		dir     = flag.String("dir", "migrations", "migration directory")
		atlas   = flag.String("atlas", "atlas", "path to the atlas binary")
		dryRun  = flag.Bool("dry-run", false, "print pending migrations without applying them")
		timeout = flag.Duration("timeout", 2*time.Minute, "overall migration timeout")
	)
	flag.Parse()

	// .envが無い環境（CIなど）では環境変数のみを使用
	_ = godotenv.Load()

	if err := run(*dir, *atlas, *dryRun, *timeout); err != nil {
		slog.Error("マイグレーションに失敗しました", "error", err.Error())
		os.Exit(1)
	}
}

func run(dir, atlasPath string, dryRun bool, timeout time.Duration) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return err
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), atlasPath)
	if err != nil {
		return err
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	slog.Info("マイグレーション完了",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target,
		"dry_run", dryRun)
	return nil
}
