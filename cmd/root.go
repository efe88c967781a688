package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"webpify/internal/batch"
	"webpify/internal/config"
	"webpify/internal/logging"
	"webpify/internal/progress"
	"webpify/internal/tui"
)

var (
	configPath    string
	rootDir       string
	includeHidden bool
	verbose       bool

	quality     int
	workers     int
	useTUI      bool
	failOnError bool
	noOrient    bool
)

var rootCmd = &cobra.Command{
	Use:   "webpify [flags]",
	Short: "webpify - convert a tree of images to WebP",
	Long: "webpify recursively finds .jpg, .jpeg, .png and .gif files under a directory and writes a\n" +
		"compressed WebP copy next to each one as <name>.webp. Originals are never modified.\n" +
		"Transparency is discarded: every output is opaque RGB.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log := logging.New(cmd.ErrOrStderr(), cfg.Verbose)
		out := cmd.OutOrStdout()

		var display batch.Display = progress.NewBar(out)
		if cfg.TUI {
			display = tui.NewDisplay(out)
		}

		runner := batch.Runner{Config: cfg, Display: display, Out: out, Log: log}
		summary, err := runner.Run(cmd.Context())
		if err != nil {
			return err
		}
		if summary.Total > 0 {
			log.Debug("converted %d/%d images, saved %s", summary.Converted, summary.Total, tui.FormatBytes(summary.BytesSaved))
		}
		return nil
	},
}

// Execute runs the CLI. SIGINT and SIGTERM cancel the batch; jobs already
// running finish before the process exits.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the optional config file, and any flags the
// user set explicitly, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Root = rootDir
	}
	if flags.Changed("include-hidden") {
		cfg.IncludeHidden = includeHidden
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("quality") {
		cfg.Quality = quality
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("tui") {
		cfg.TUI = useTUI
	}
	if flags.Changed("fail-on-error") {
		cfg.FailOnError = failOnError
	}
	if flags.Changed("no-orient") {
		cfg.AutoOrient = !noOrient
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&rootDir, "dir", "d", "", "directory to scan for image files (default: current directory)")
	pf.BoolVar(&includeHidden, "include-hidden", false, "include dot-files and dot-directories")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	f := rootCmd.Flags()
	f.IntVarP(&quality, "quality", "q", config.DefaultQuality, "WebP quality passed to the encoder")
	f.IntVarP(&workers, "workers", "w", 0, "concurrent conversions (default: number of CPUs)")
	f.BoolVar(&useTUI, "tui", false, "interactive progress view instead of the plain bar")
	f.BoolVar(&failOnError, "fail-on-error", false, "exit non-zero when any image fails to convert")
	f.BoolVar(&noOrient, "no-orient", false, "ignore EXIF orientation")
}
