package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"txthistogram/pkg/logging"
	"txthistogram/pkg/version"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options holds the command-line flags of the root command.
type options struct {
	configPath string
	debug      bool
	interval   int
	png        bool
	width      int
	height     int
	output     string
	ignore     []string
	maxDepth   int
}

// syncLogger flushes a logger the command created itself.
var syncLogger = logging.Sync

// NewRootCmd builds the txthistogram command. logger receives diagnostics;
// --debug swaps it for a development logger. The returned func flushes that
// debug logger and must be called once the command has run.
func NewRootCmd(logger *zap.Logger) (*cobra.Command, func()) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := &options{}
	var debugLogger *zap.Logger

	rootCmd := &cobra.Command{
		Use:   "txthistogram [directory] [interval]",
		Short: "txthistogram builds a word count histogram of the text files in a directory",
		Long: `txthistogram scans a directory and its subdirectories for .txt files and counts
the words in each. Zip archives, including zip files nested inside them, are
scanned as well. The per-file counts are grouped into buckets of the given
interval and printed; --png also renders the histogram as an image.`,
		Args:         cobra.RangeArgs(0, 2),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.debug && debugLogger == nil {
				l, err := logging.Setup(true, version.AppName, version.Get().Version)
				if err != nil {
					return fmt.Errorf("failed to initialize debug logger: %w", err)
				}
				debugLogger = l
				logger = l
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if len(args) > 1 {
				if cmd.Flags().Changed("interval") {
					return errors.New("interval given both as argument and --interval flag")
				}
				if _, err := strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("invalid interval %q: %w", args[1], err)
				}
				if err := cmd.Flags().Set("interval", args[1]); err != nil {
					return err
				}
			}
			return runHistogram(cmd, dir, opts, logger.With(zap.String("runID", uuid.NewString())))
		},
	}

	flags := rootCmd.Flags()
	flags.IntVarP(&opts.interval, "interval", "i", 1, "Width of each histogram bucket")
	flags.BoolVar(&opts.png, "png", false, "Also render the histogram as a PNG image")
	flags.IntVar(&opts.width, "width", 500, "PNG width in pixels")
	flags.IntVar(&opts.height, "height", 500, "PNG height in pixels")
	flags.StringVarP(&opts.output, "output", "o", "", "PNG output path (default <directory>/output.png)")
	flags.StringArrayVar(&opts.ignore, "ignore", nil, "Glob of paths to skip, relative to the directory (repeatable)")
	flags.IntVar(&opts.maxDepth, "max-depth", 32, "Deepest level of nested archives to scan")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&opts.configPath, "config", "", "Path to a YAML config file (default $TXTHISTOGRAM_CONFIG)")
	persistent.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCmd())

	flush := func() {
		if debugLogger != nil {
			syncLogger(debugLogger)
		}
	}
	return rootCmd, flush
}

// Execute runs the root command with os.Args.
func Execute(logger *zap.Logger) error {
	rootCmd, flush := NewRootCmd(logger)
	defer flush()
	return rootCmd.Execute()
}
