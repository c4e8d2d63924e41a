package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/harrison/lgrep/internal/history"
)

// recordRun appends run to the history database at dbPath
func recordRun(ctx context.Context, dbPath string, run *history.RunRecord) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	return store.Record(ctx, run)
}

// showHistory prints the n most recent runs recorded in dbPath
func showHistory(ctx context.Context, out io.Writer, dbPath string, n int) error {
	if n <= 0 {
		return fmt.Errorf("--show-history must be positive, got %d", n)
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(ctx, n)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintln(out, run.Summary())
	}

	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d runs in %s\n", len(runs), total, store.Path())
	return nil
}
