package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/reattach/internal/presentation/tui"
	"github.com/aretw0/reattach/pkg/adapters/file"
	"github.com/aretw0/reattach/pkg/observability"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	CommonOptions
	DocumentPath  string
	Out           string // Defaults to DocumentPath
	Mode          string
	CopyOverrides bool
	Select        []string
	Where         string
	DryRun        bool
	JSON          bool
	Stdout        io.Writer
}

// Execute runs one reattach pass over a document file and writes the result
// back unless DryRun is set.
func Execute(ctx context.Context, opts RunOptions) error {
	cfg, logger, err := loadConfig(opts.CommonOptions)
	if err != nil {
		return err
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	mode, err := resolveMode(opts.Mode, opts.CopyOverrides, cfg)
	if err != nil {
		return err
	}

	host, err := loadHost(opts.DocumentPath, opts.Where, opts.Select)
	if err != nil {
		return err
	}

	backends, err := OpenBackends(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer backends.Close()

	engine := createEngine(cfg, backends, logger, observability.LogHooks(logger))
	report, err := engine.Run(ctx, host, mode)
	if err != nil {
		return err
	}

	if !opts.DryRun {
		out := opts.Out
		if out == "" {
			out = opts.DocumentPath
		}
		if err := file.SaveDocument(out, host.Snapshot()); err != nil {
			return err
		}
		logger.Debug("Document saved", "path", out)
	}

	if opts.JSON {
		enc := json.NewEncoder(opts.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printMarkdown(opts.Stdout, tui.ReportMarkdown(report))
}

// printMarkdown renders markdown with glamour when w is a terminal.
func printMarkdown(w io.Writer, markdown string) error {
	render := func(s string) (string, error) { return s, nil }
	if f, ok := w.(*os.File); ok {
		render = tui.NewRenderer(f)
	}
	out, err := render(markdown)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
