package main

import (
	"context"
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"padel-ranking-api/internal/app"
	"padel-ranking-api/internal/core/config"
	"padel-ranking-api/internal/core/logger"
)

// opener 按需打开依赖；测试里替换成内存库
type opener func(ctx context.Context, forceMigrate bool) (*app.App, error)

func openFromConfig(path *string) opener {
	return func(ctx context.Context, forceMigrate bool) (*app.App, error) {
		cfg, err := config.LoadE(*path)
		if err != nil {
			return nil, err
		}
		if forceMigrate {
			cfg.DB.AutoMigrate = true
		}
		log, _ := logger.New(cfg.Log.Level, cfg.Log.JSON)
		return app.New(ctx, cfg, log.With(zap.String("cmd", "admin")))
	}
}

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "padel-admin",
		Short:         "Maintenance commands for the padel ranking store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(open), createUserCmd(open), rankingCmd(open))
	return root
}

func main() {
	_ = godotenv.Load()
	var cfgPath string
	root := newRootCmd(openFromConfig(&cfgPath))
	root.PersistentFlags().StringVar(&cfgPath, "config", os.Getenv("CONFIG_PATH"), "path to the YAML config")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "padel-admin: %v\n", err)
		os.Exit(1)
	}
}
