// Package ctl implements olharctl, the operator tool for the portfolio
// backend: inspecting the image catalog, issuing admin tokens and running
// migrations against the configured database.
package ctl

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/murillocortez/olhar-autoral/internal/catalog"
	"github.com/murillocortez/olhar-autoral/internal/logging"
	"github.com/murillocortez/olhar-autoral/internal/server"
	"github.com/murillocortez/olhar-autoral/internal/server/config"
	"github.com/murillocortez/olhar-autoral/internal/server/repositories/repomanager"
)

// seams replaced in tests
var (
	loadConfig = config.LoadFromFile

	newSource = func(ctx context.Context, cfg *config.Config, logger logging.Logger) (catalog.Source, error) {
		bucket, err := server.NewBucket(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
		return catalog.NewLoader(bucket, logger, server.LoaderConfig(cfg.Catalog)), nil
	}

	openDB = repomanager.Open

	runMigrations = func(ctx context.Context, db *sql.DB) error {
		return repomanager.NewPostgresRepositoryManager().RunMigrations(ctx, db)
	}
)

type globalOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand assembles the olharctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "olharctl",
		Short:         "Operate the portfolio backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config file (.json, .yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level for diagnostics on stderr")

	root.AddCommand(
		newCatalogCommand(opts),
		newResolveCommand(opts),
		newGalleryCommand(opts),
		newTokenCommand(opts),
		newMigrateCommand(opts),
	)

	return root
}

func (o *globalOptions) config() (*config.Config, error) {
	return loadConfig(o.configPath)
}

func (o *globalOptions) logger(cmd *cobra.Command) logging.Logger {
	return logging.New(o.logLevel, "text", cmd.ErrOrStderr())
}

// loadRecords lists the bucket once.
func (o *globalOptions) loadRecords(cmd *cobra.Command) ([]catalog.Record, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}

	src, err := newSource(cmd.Context(), cfg, o.logger(cmd))
	if err != nil {
		return nil, err
	}

	return src.Load(cmd.Context())
}
