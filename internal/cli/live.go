package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/proofylabs/proofy/internal/config"
	"github.com/proofylabs/proofy/internal/forensic"
	"github.com/proofylabs/proofy/internal/gateway"
	"github.com/proofylabs/proofy/internal/history"
	"github.com/proofylabs/proofy/internal/intake"
)

var (
	liveSettle  time.Duration
	livePersist bool
)

func newLiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live [dir]",
		Short: "Watch a directory and interrogate new media in real time",
		Long: `Monitor a directory for new media files and interrogate each one as
it arrives, printing a one-line verdict. Press Ctrl+C to stop.

A short settle delay lets writers finish before the file is read.

Examples:
  proofy live ./incoming/
  proofy live --settle 5s --persist ./incoming/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLive,
	}

	cmd.Flags().DurationVar(&liveSettle, "settle", 0, "wait after a write before interrogating (default from config)")
	cmd.Flags().BoolVar(&livePersist, "persist", false, "append verdicts to case history")

	return cmd
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if !cmd.Flag("settle").Changed {
		liveSettle = cfg.Live.Settle
	}

	dir := cfg.Live.WatchDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no watch directory given (argument or live.watch_dir in config)")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer cleanupWatcher(watcher)

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(provider.Close)

	var store *history.Store
	if livePersist {
		store = newHistoryStore(cfg)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching directory: %s\n", dir)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	return runLiveLoop(cmd.Context(), cfg, watcher, provider, store)
}

// runLiveLoop runs the main watch loop with signal handling
func runLiveLoop(ctx context.Context, cfg *config.Config, watcher *fsnotify.Watcher, provider gateway.Provider, store *history.Store) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	seen := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-signals:
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if err := handleLiveEvent(ctx, cfg, event, provider, store, seen); err != nil && isVerbose() {
				fmt.Fprintf(os.Stderr, "Error handling event: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}
}

// pruneSeen drops cooldown entries whose window has elapsed, so a long watch
// session does not keep one entry per path forever.
func pruneSeen(seen map[string]time.Time, window time.Duration) {
	for path, last := range seen {
		if time.Since(last) >= window {
			delete(seen, path)
		}
	}
}

// handleLiveEvent interrogates a newly created or written media file. A
// per-path cooldown absorbs the create/write event bursts most writers emit.
func handleLiveEvent(ctx context.Context, cfg *config.Config, event fsnotify.Event, provider gateway.Provider, store *history.Store, seen map[string]time.Time) error {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return nil
	}

	pruneSeen(seen, liveSettle)
	if _, ok := seen[event.Name]; ok {
		return nil
	}
	seen[event.Name] = time.Now()

	if !intake.IsMedia(intake.DetectType(event.Name, nil)) {
		return nil
	}

	if liveSettle > 0 {
		select {
		case <-time.After(liveSettle):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	media, err := intake.Open(event.Name)
	if err != nil {
		return fmt.Errorf("opening %s: %w", event.Name, err)
	}
	defer releaseQuietly(media)

	callCtx := ctx
	if cfg.Gateway.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, cfg.Gateway.Timeout)
		defer cancel()
	}

	result, err := provider.AnalyzeMedia(callCtx, media)
	if err != nil {
		fmt.Printf("[%s] SKIP  %s: %v\n", time.Now().Format("15:04:05"), filepath.Base(event.Name), err)
		return nil
	}

	marker := "✓"
	if result.Verdict == forensic.VerdictFabricated {
		marker = "✗"
	}
	fmt.Printf("[%s] %s %-5s %s (%.0f%%, %s)\n",
		time.Now().Format("15:04:05"), marker, result.Verdict,
		filepath.Base(event.Name), result.DeepfakeProbability, result.ConfidenceLevel)

	if store != nil {
		if _, err := store.Append(result); err != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to persist case: %v\n", err)
		}
	}
	return nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}
