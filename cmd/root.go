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
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/internal/iofs"
	"github.com/gnames/symbdb/internal/iologger"
	symbdb "github.com/gnames/symbdb/pkg"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	cfg     *config.Config
	// fileOpts are the settings found in config.yaml and environment.
	fileOpts []config.Option
)

// getRootCmd returns the root command with all subcommands attached.
// Every call builds an independent command tree.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			symbdb.Version, symbdb.Build),
		Use:   "symbdb",
		Short: "Symbdb migrates Symbiota occurrences to SQLite",
		Long: `Symbdb copies a geographically filtered subset of a Symbiota
occurrence database (MySQL or a PostgreSQL mirror) into a portable
SQLite file.

The output contains the selected occurrences together with every
collection, institution and taxon they refer to. The taxa are closed
under the parent relation, so the whole classification of each
occurrence is available offline.

Commands:
  migrate  copy the filtered subset into YYYY-MM-DD_symbscan.sqlite
  ingest   append occurrences from a tab-separated file
  schema   create an empty output file

Configuration precedence (highest to lowest):
  1. Command line flags
  2. Environment variables (SYMBDB_*)
  3. Config file (~/.config/symbdb/config.yaml)
  4. Built-in defaults

Source credentials are read from ~/.my.cnf when source.user is empty
and the driver is mysql. Values from that file rank just above the
built-in defaults.
The occurrence filter is kept in ~/.config/symbdb/filters.yaml.

Environment Variables:
  SYMBDB_SOURCE_DRIVER            mysql or postgres
  SYMBDB_SOURCE_HOST              source host
  SYMBDB_SOURCE_PORT              source port
  SYMBDB_SOURCE_USER              source user
  SYMBDB_SOURCE_PASSWORD          source password
  SYMBDB_SOURCE_DATABASE          source database name
  SYMBDB_SINK_OUTPUT_DIR          directory for output files
  SYMBDB_BATCH_SIZE               occurrences per batch
  SYMBDB_LOG_LEVEL                debug, info, warn or error`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "symbdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	// -V is consistent with other gn projects
	rootCmd.Flags().BoolP("version", "V", false, "version for symbdb")

	rootCmd.AddCommand(
		getMigrateCmd(),
		getIngestCmd(),
		getSchemaCmd(),
	)
	return rootCmd
}

func bootstrap(_ *cobra.Command, _ []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureFiltersFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	fileOpts = cfgViper.ToOptions()
	cfg = config.New()
	cfg.Update(fileOpts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"filters_file", config.FiltersFilePath(homeDir),
	)
	return nil
}

// Execute runs the command line interface. The context is passed to
// every command, so cancelling it stops a running migration.
func Execute(ctx context.Context) error {
	return getRootCmd().ExecuteContext(ctx)
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ConfigFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Variables are bound one by one, so it is clear which ones are
	// allowed. They match the fields of config.ToOptions().
	v.SetEnvPrefix("SYMBDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Source database
	v.BindEnv("source.driver", "SYMBDB_SOURCE_DRIVER")
	v.BindEnv("source.host", "SYMBDB_SOURCE_HOST")
	v.BindEnv("source.port", "SYMBDB_SOURCE_PORT")
	v.BindEnv("source.user", "SYMBDB_SOURCE_USER")
	v.BindEnv("source.password", "SYMBDB_SOURCE_PASSWORD")
	v.BindEnv("source.database", "SYMBDB_SOURCE_DATABASE")
	v.BindEnv("source.ssl_mode", "SYMBDB_SOURCE_SSL_MODE")
	v.BindEnv("source.timeout", "SYMBDB_SOURCE_TIMEOUT")
	v.BindEnv("source.attempts", "SYMBDB_SOURCE_ATTEMPTS")
	v.BindEnv("source.backoff", "SYMBDB_SOURCE_BACKOFF")
	v.BindEnv("source.max_params", "SYMBDB_SOURCE_MAX_PARAMS")

	// Output and cache
	v.BindEnv("sink.output_dir", "SYMBDB_SINK_OUTPUT_DIR")
	v.BindEnv("sink.path", "SYMBDB_SINK_PATH")
	v.BindEnv("cache.dir", "SYMBDB_CACHE_DIR")

	// Log configuration
	v.BindEnv("log.level", "SYMBDB_LOG_LEVEL")
	v.BindEnv("log.format", "SYMBDB_LOG_FORMAT")
	v.BindEnv("log.destination", "SYMBDB_LOG_DESTINATION")

	v.BindEnv("metrics.textfile", "SYMBDB_METRICS_TEXTFILE")
	v.BindEnv("batch_size", "SYMBDB_BATCH_SIZE")

	v.AutomaticEnv()
}
