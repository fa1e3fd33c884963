/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"slices"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/internal/iocache"
	"github.com/gnames/symbdb/internal/iodb"
	"github.com/gnames/symbdb/internal/iofilter"
	"github.com/gnames/symbdb/internal/iologger"
	"github.com/gnames/symbdb/internal/iomigrate"
	"github.com/gnames/symbdb/internal/iomycnf"
	"github.com/gnames/symbdb/internal/iosink"
	"github.com/gnames/symbdb/internal/iosource"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getMigrateCmd() *cobra.Command {
	var (
		clearCache bool
		dryRun     bool
		output     string
		outputDir  string
		batchSize  int
		driver     string
		host       string
		database   string
	)

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate filtered Symbiota occurrences to SQLite",
		Long: `Copy the filtered occurrence subset of a Symbiota database
into a SQLite file.

This command:
  1. Connects to the source database (MySQL or PostgreSQL)
  2. Selects occurrences inside the bounding box, or from the
     countries and states listed in filters.yaml
  3. Fetches their collections, institutions and taxa, and walks
     taxaenumtree up to the roots of the classification
  4. Writes reference tables, then occurrences in batches

Every fetched table is cached in ~/.cache/symbdb/tables. After a
failure the next run reuses the cache and continues from the first
unfinished step. Use --clear-cache to start from scratch.

The output file is YYYY-MM-DD_symbscan.sqlite in the output
directory. Rows already present in it are kept.

Examples:
  symbdb migrate
  symbdb migrate --dry-run
  symbdb migrate --clear-cache -o /tmp/north_america.sqlite
  symbdb migrate --driver postgres --host mirror.example.org`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []config.Option
			flags := cmd.Flags()
			if flags.Changed("output") {
				opts = append(opts, config.OptSinkPath(output))
			}
			if flags.Changed("output-dir") {
				opts = append(opts, config.OptSinkOutputDir(outputDir))
			}
			if flags.Changed("batch-size") {
				opts = append(opts, config.OptBatchSize(batchSize))
			}
			if flags.Changed("driver") {
				opts = append(opts, config.OptSourceDriver(driver))
			}
			if flags.Changed("host") {
				opts = append(opts, config.OptSourceHost(host))
			}
			if flags.Changed("database") {
				opts = append(opts, config.OptSourceDatabase(database))
			}
			opts = append(opts,
				config.OptMigrateClearCache(clearCache),
				config.OptMigrateDryRun(dryRun),
			)

			err := runMigrate(cmd, opts)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	migrateCmd.Flags().BoolVar(&clearCache, "clear-cache", false,
		"remove cached tables before the run")
	migrateCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false,
		"fetch and cache tables without writing the output")
	migrateCmd.Flags().StringVarP(&output, "output", "o", "",
		"output file (default: YYYY-MM-DD_symbscan.sqlite)")
	migrateCmd.Flags().StringVar(&outputDir, "output-dir", "",
		"directory for the dated output file")
	migrateCmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0,
		"occurrences per batch")
	migrateCmd.Flags().StringVar(&driver, "driver", "",
		"source driver: mysql or postgres")
	migrateCmd.Flags().StringVar(&host, "host", "",
		"source database host")
	migrateCmd.Flags().StringVar(&database, "database", "",
		"source database name")

	return migrateCmd
}

func runMigrate(cmd *cobra.Command, opts []config.Option) error {
	ctx := cmd.Context()
	if err := resolveSource(opts); err != nil {
		return err
	}

	flt, err := iofilter.Load(config.FiltersFilePath(homeDir))
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	iologger.WithRunID(runID)

	op := iodb.NewOperator()
	if err = op.Connect(ctx, &cfg.Source); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to %s database: <em>%s@%s:%d/%s</em>",
		cfg.Source.Driver, cfg.Source.User, cfg.Source.Host,
		cfg.Source.Port, cfg.Source.Database)

	m := iomigrate.New(
		cfg,
		flt,
		iosource.New(op, &cfg.Source),
		iosink.New(cfg.OutputPath(time.Now())),
		iocache.New(cfg.TablesCacheDir()),
		iomigrate.OptRunID(runID),
		iomigrate.OptProgressBar(showProgress()),
	)

	sum, err := m.Migrate(ctx)
	writeMetrics("migrate", sum, err)
	return err
}

// resolveSource applies flag options and, for MySQL, fills missing
// credentials from ~/.my.cnf. Settings from flags, environment and
// config.yaml take precedence over the file.
func resolveSource(opts []config.Option) error {
	cfg.Update(opts)
	if cfg.Source.Driver != "mysql" {
		return nil
	}

	explicit := append(slices.Clone(fileOpts), opts...)
	return iomycnf.Apply(cfg, config.MyCnfPath(homeDir), explicit)
}
