package iosink

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/symbdb/internal/ioschema"
)

// Optimize runs ANALYZE and VACUUM on the destination file.
//
// VACUUM cannot run inside a transaction, so both statements go
// straight to the connection.
func (s *sink) Optimize(ctx context.Context) error {
	slog.Info("Running ANALYZE and VACUUM", "path", s.path)
	timeStart := time.Now()

	db, err := ioschema.Open(ctx, s.path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, q := range []string{"ANALYZE", "VACUUM"} {
		if _, err = db.ExecContext(ctx, q); err != nil {
			slog.Error("Optimization failed", "statement", q, "error", err)
			return OptimizeError(s.path, err)
		}
	}

	slog.Info("Optimization completed",
		"duration", time.Since(timeStart).String())
	return nil
}
