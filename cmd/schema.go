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
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/internal/ioschema"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/spf13/cobra"
)

// getSchemaCmd returns the schema command.
func getSchemaCmd() *cobra.Command {
	var output string

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Create an empty SQLite output with the current schema",
		Long: `Create the SQLite output file and apply all schema migrations.

Running it on an existing file brings the file to the current schema
version without touching its data.

Examples:
  symbdb schema
  symbdb schema -o empty.sqlite`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("output") {
				cfg.Update([]config.Option{config.OptSinkPath(output)})
			}
			err := runSchema(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	schemaCmd.Flags().StringVarP(&output, "output", "o", "",
		"output file (default: YYYY-MM-DD_symbscan.sqlite)")

	return schemaCmd
}

func runSchema(cmd *cobra.Command) error {
	ctx := cmd.Context()
	path := cfg.OutputPath(time.Now())

	sm := ioschema.NewManager()
	if err := sm.Create(ctx, path); err != nil {
		return err
	}
	v, err := sm.Version(ctx, path)
	if err != nil {
		return err
	}

	gn.Info("Schema version <em>%d</em> is ready in %s", v, path)
	return nil
}
