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
	"github.com/gnames/symbdb/internal/ioingest"
	"github.com/gnames/symbdb/internal/iologger"
	"github.com/gnames/symbdb/internal/iosink"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// getIngestCmd returns the ingest command.
func getIngestCmd() *cobra.Command {
	var (
		output    string
		batchSize int
	)

	ingestCmd := &cobra.Command{
		Use:   "ingest <file.tsv>",
		Short: "Append occurrences from a tab-separated file",
		Long: `Append occurrences from a tab-separated file to the SQLite output.

The first line of the file is a header. Columns that exist in the
omoccurrences table are imported, other columns are ignored. All rows
go to the "csv_upload" collection, which is created when missing.
Empty cells become NULL. A row whose occid already exists in the
output stops the ingest; earlier batches stay written.

The output file is created with the full schema when it does not
exist yet.

Examples:
  symbdb ingest occurrences.tsv
  symbdb ingest -o 2024-05-01_symbscan.sqlite occurrences.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if cmd.Flags().Changed("output") {
				opts = append(opts, config.OptSinkPath(output))
			}
			if cmd.Flags().Changed("batch-size") {
				opts = append(opts, config.OptBatchSize(batchSize))
			}

			err := runIngest(cmd, args[0], opts)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	ingestCmd.Flags().StringVarP(&output, "output", "o", "",
		"output file (default: YYYY-MM-DD_symbscan.sqlite)")
	ingestCmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0,
		"rows per write")

	return ingestCmd
}

func runIngest(cmd *cobra.Command, path string, opts []config.Option) error {
	cfg.Update(opts)

	runID := uuid.NewString()
	iologger.WithRunID(runID)

	in := ioingest.New(
		cfg,
		iosink.New(cfg.OutputPath(time.Now()), iosink.OptStrict()),
		ioingest.OptRunID(runID),
		ioingest.OptProgressBar(showProgress()),
	)
	sum, err := in.Ingest(cmd.Context(), path)
	writeMetrics("ingest", sum, err)
	return err
}
