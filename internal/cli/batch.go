package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/proofylabs/proofy/internal/forensic"
	"github.com/proofylabs/proofy/internal/gateway"
	"github.com/proofylabs/proofy/internal/intake"
)

var (
	batchWorkers int
	batchTimeout time.Duration
	batchPersist bool
)

func newBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [dir|file...]",
		Short: "Triage a set of media files",
		Long: `Interrogate every media file in a directory (or an explicit file list)
and print a one-line verdict per file plus a closing summary.

Files that fail to analyze are reported and skipped; the batch
continues. Exit status is non-zero only when nothing could be
analyzed.

Examples:
  proofy batch ./evidence/
  proofy batch --workers 8 a.jpg b.mp4 c.wav`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().IntVar(&batchWorkers, "workers", 4, "concurrent interrogations")
	cmd.Flags().DurationVar(&batchTimeout, "timeout", 0, "per-file timeout (default from config)")
	cmd.Flags().BoolVar(&batchPersist, "persist", false, "append verdicts to case history")

	return cmd
}

type batchOutcome struct {
	path   string
	result *forensic.AnalysisResult
	err    error
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if !cmd.Flag("timeout").Changed {
		batchTimeout = cfg.Gateway.Timeout
	}

	paths, err := collectMediaPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no media files found")
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(provider.Close)

	outcomes := interrogateAll(cmd.Context(), provider, paths)

	if batchPersist {
		store := newHistoryStore(cfg)
		for _, o := range outcomes {
			if o.result == nil {
				continue
			}
			if _, err := store.Append(o.result); err != nil && isVerbose() {
				fmt.Fprintf(os.Stderr, "Warning: failed to persist %s: %v\n", o.path, err)
			}
		}
	}

	return printBatchSummary(outcomes)
}

// interrogateAll fans the paths out over a bounded worker pool and returns
// outcomes in input order.
func interrogateAll(ctx context.Context, provider gateway.Provider, paths []string) []batchOutcome {
	outcomes := make([]batchOutcome, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)

	var mu sync.Mutex
	for i, path := range paths {
		g.Go(func() error {
			outcome := interrogateOne(ctx, provider, path)
			mu.Lock()
			outcomes[i] = outcome
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func interrogateOne(ctx context.Context, provider gateway.Provider, path string) batchOutcome {
	if batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, batchTimeout)
		defer cancel()
	}

	media, err := intake.Open(path)
	if err != nil {
		return batchOutcome{path: path, err: err}
	}
	defer releaseQuietly(media)

	result, err := provider.AnalyzeMedia(ctx, media)
	if err != nil {
		return batchOutcome{path: path, err: err}
	}
	return batchOutcome{path: path, result: result}
}

// collectMediaPaths expands directories into their media files and passes
// explicit file arguments through untouched.
func collectMediaPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(arg, entry.Name())
			if intake.IsMedia(intake.DetectType(path, nil)) {
				paths = append(paths, path)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func printBatchSummary(outcomes []batchOutcome) error {
	var fabricated, real, failed int

	for _, o := range outcomes {
		if o.err != nil {
			failed++
			fmt.Printf("SKIP  %-40s %v\n", filepath.Base(o.path), o.err)
			continue
		}
		switch o.result.Verdict {
		case forensic.VerdictFabricated:
			fabricated++
		default:
			real++
		}
		fmt.Printf("%-5s %-40s %3.0f%% %s\n",
			o.result.Verdict, filepath.Base(o.path),
			o.result.DeepfakeProbability, o.result.ConfidenceLevel)
	}

	fmt.Printf("\n%d analyzed: %d real, %d fabricated, %d failed\n",
		real+fabricated, real, fabricated, failed)

	if real+fabricated == 0 {
		return fmt.Errorf("all %d files failed analysis", failed)
	}
	return nil
}
