package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/reattach/internal/presentation/tui"
)

// ReportsOptions configures the reports commands.
type ReportsOptions struct {
	CommonOptions
	JSON   bool
	Stdout io.Writer
}

// ListReports prints the IDs of stored reports, one per line.
func ListReports(ctx context.Context, opts ReportsOptions) error {
	return withStore(ctx, opts, func(b *Backends) error {
		ids, err := b.Store.List(ctx)
		if err != nil {
			return err
		}
		if opts.JSON {
			if ids == nil {
				ids = []string{}
			}
			return json.NewEncoder(opts.Stdout).Encode(ids)
		}
		for _, id := range ids {
			fmt.Fprintln(opts.Stdout, id)
		}
		return nil
	})
}

// ShowReport prints one stored report.
func ShowReport(ctx context.Context, opts ReportsOptions, id string) error {
	return withStore(ctx, opts, func(b *Backends) error {
		report, err := b.Store.Load(ctx, id)
		if err != nil {
			return fmt.Errorf("report %s: %w", id, err)
		}
		if opts.JSON {
			enc := json.NewEncoder(opts.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		return printMarkdown(opts.Stdout, tui.ReportMarkdown(report))
	})
}

// DeleteReport removes a stored report.
func DeleteReport(ctx context.Context, opts ReportsOptions, id string) error {
	return withStore(ctx, opts, func(b *Backends) error {
		if _, err := b.Store.Load(ctx, id); err != nil {
			return fmt.Errorf("report %s: %w", id, err)
		}
		if err := b.Store.Delete(ctx, id); err != nil {
			return err
		}
		printSystemMessage(opts.Stdout, "Deleted report %s", id)
		return nil
	})
}

func withStore(ctx context.Context, opts ReportsOptions, fn func(*Backends) error) error {
	cfg, logger, err := loadConfig(opts.CommonOptions)
	if err != nil {
		return err
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	backends, err := OpenBackends(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer backends.Close()
	if backends.Store == nil {
		return ErrNoStore
	}
	return fn(backends)
}

