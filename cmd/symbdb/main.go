// Package main provides the symbdb CLI application.
// symbdb migrates a filtered subset of a Symbiota database to SQLite.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/symbdb/cmd"
	"github.com/gnames/symbdb/pkg/errcode"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(errcode.ExitCode(err))
	}
}
