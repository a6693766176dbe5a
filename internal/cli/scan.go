package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/proofylabs/proofy/internal/config"
	"github.com/proofylabs/proofy/internal/formatter"
	"github.com/proofylabs/proofy/internal/gateway"
	"github.com/proofylabs/proofy/internal/intake"
	"github.com/proofylabs/proofy/internal/signals"
	"github.com/proofylabs/proofy/internal/ui"
)

var (
	scanTimeout    time.Duration
	scanNoTUI      bool
	scanOutputFile string
	scanSignalDir  string
)

func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Interrogate a media file for fabrication",
		Long: `Scan a media file through the neural gateway and return a forensic
verdict with categorized evidence.

By default the interactive console opens with the verdict, judicial
report, forensic timeline, and case history. Use --no-tui for plain
output suitable for scripts.

Examples:
  proofy scan interview.mp4
  proofy scan --no-tui -o json portrait.jpg
  proofy scan --no-tui --output-file report.md -o markdown clip.mov`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	cmd.Flags().DurationVar(&scanTimeout, "timeout", 0, "interrogation timeout (default from config)")
	cmd.Flags().BoolVar(&scanNoTUI, "no-tui", false, "disable terminal UI, output to stdout")
	cmd.Flags().StringVar(&scanOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().StringVar(&scanSignalDir, "signals", "", "extra signal catalog directory")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if !cmd.Flag("timeout").Changed {
		scanTimeout = cfg.Gateway.Timeout
	}

	media, err := intake.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening media: %w", err)
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(provider.Close)

	if scanNoTUI {
		defer releaseQuietly(media)
		return runScanPlain(cmd.Context(), cfg, provider, media)
	}

	coordinator := newCoordinator(cfg)
	catalog := loadSignalCatalog(cfg, scanSignalDir)
	return ui.Run(coordinator, provider, media, catalog, scanTimeout)
}

func runScanPlain(ctx context.Context, cfg *config.Config, provider gateway.Provider, media *intake.Media) error {
	if scanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, scanTimeout)
		defer cancel()
	}

	result, err := provider.AnalyzeMedia(ctx, media)
	if err != nil {
		return err
	}

	store := newHistoryStore(cfg)
	if _, err := store.Append(result); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to persist case: %v\n", err)
	}

	f := formatter.New(getOutputFormat(), useColor())
	output, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("formatting verdict: %w", err)
	}
	return writeOutput(output, scanOutputFile)
}

// loadSignalCatalog merges embedded defaults with configured and flag
// directories. Load failures degrade to the defaults.
func loadSignalCatalog(cfg *config.Config, extraDir string) *signals.Catalog {
	sets := make([][]*signals.Signal, 0, 3)

	defaults, err := signals.LoadDefaults()
	if err == nil {
		sets = append(sets, defaults)
	} else if isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to load default signals: %v\n", err)
	}

	dirs := append([]string{}, cfg.Storage.SignalDirs...)
	if extraDir != "" {
		dirs = append(dirs, extraDir)
	}
	for _, dir := range dirs {
		loaded, err := signals.LoadFromDirectory(dir)
		if err != nil {
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "Warning: failed to load signals from %s: %v\n", dir, err)
			}
			continue
		}
		sets = append(sets, loaded)
	}

	return signals.NewCatalog(sets...)
}

func closeQuietly(close func() error) {
	if err := close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close provider: %v\n", err)
	}
}

func releaseQuietly(media *intake.Media) {
	if err := media.Release(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to release preview: %v\n", err)
	}
}
