package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"txthistogram/pkg/chart"
	"txthistogram/pkg/config"
	"txthistogram/pkg/histogram"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newRenderer returns the chart renderer used by --png.
var newRenderer = func(logger *zap.Logger) chart.Renderer {
	return chart.NewPNG(logger)
}

// runHistogram loads configuration, builds the histogram for dir, prints it
// and renders the chart when requested.
func runHistogram(cmd *cobra.Command, dir string, opts *options, logger *zap.Logger) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, &cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	table, err := histogram.NewBuilder(cfg, logger).Build(dir, cfg.Interval)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	if err := printTable(cmd.OutOrStdout(), table, cfg.Interval); err != nil {
		return fmt.Errorf("failed to print histogram: %w", err)
	}

	if !cfg.Chart.Enabled {
		return nil
	}
	output := cfg.Chart.Output
	if output == "" {
		output = filepath.Join(dir, "output.png")
	}
	if err := newRenderer(logger).Render(table, cfg.Interval, cfg.Chart.Width, cfg.Chart.Height, output); err != nil {
		logger.Error("Failed to render chart", zap.String("output", output), zap.Error(err))
		return fmt.Errorf("failed to render chart: %w", err)
	}
	logger.Info("Chart written", zap.String("output", output))
	return nil
}

// applyFlags overrides file configuration with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *options) {
	flags := cmd.Flags()
	if flags.Changed("interval") {
		cfg.Interval = opts.interval
	}
	if flags.Changed("png") {
		cfg.Chart.Enabled = opts.png
	}
	if flags.Changed("width") {
		cfg.Chart.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Chart.Height = opts.height
	}
	if flags.Changed("output") {
		cfg.Chart.Output = opts.output
	}
	if flags.Changed("max-depth") {
		cfg.MaxArchiveDepth = opts.maxDepth
	}
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, opts.ignore...)
}

func printTable(w io.Writer, table histogram.Table, interval int) error {
	warn := color.New(color.FgYellow)
	for i, line := range histogram.Format(table, interval) {
		var err error
		if i == 0 && table.Unreadable > 0 {
			_, err = warn.Fprintln(w, line)
		} else {
			_, err = fmt.Fprintln(w, line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
