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
	"log/slog"
	"os"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/symbdb/internal/iometrics"
	"github.com/gnames/symbdb/pkg/lifecycle"
	"golang.org/x/term"
)

// showProgress is true when progress bars have a terminal to draw on.
func showProgress() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// writeMetrics exports the outcome of a run when a textfile is
// configured. A failure to write metrics does not fail the run.
func writeMetrics(command string, sum *lifecycle.Summary, runErr error) {
	path := cfg.Metrics.Textfile
	if path == "" {
		return
	}

	m := iometrics.New()
	m.Observe(command, sum, runErr, time.Now())
	if err := m.WriteTextfile(path); err != nil {
		gn.PrintErrorMessage(err)
		slog.Error("Cannot write metrics", "path", path, "error", err)
		return
	}
	slog.Info("Metrics written", "path", path)
}
