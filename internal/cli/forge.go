package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/proofylabs/proofy/internal/emoji"
)

var (
	forgeKind    string
	forgeTimeout time.Duration
)

func newForgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forge [prompt...]",
		Short: "Generate a synthetic test asset for red-team drills",
		Long: `Generate a deliberately synthetic asset from a prompt. Use it to
exercise your own detection pipeline with known fabrications.

The generated file lands in the system temp directory; the path is
printed on completion.

Examples:
  proofy forge "press conference at a podium, studio lighting"
  proofy forge --kind image "portrait of a news anchor"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runForge,
	}

	cmd.Flags().StringVar(&forgeKind, "kind", "image", "asset kind to generate")
	cmd.Flags().DurationVar(&forgeTimeout, "timeout", 0, "generation timeout (default from config)")

	return cmd
}

func runForge(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if !cmd.Flag("timeout").Changed {
		forgeTimeout = cfg.Gateway.Timeout
	}

	prompt := strings.Join(args, " ")

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(provider.Close)

	ctx := cmd.Context()
	if forgeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, forgeTimeout)
		defer cancel()
	}

	asset, err := provider.GenerateSynthetic(ctx, forgeKind, prompt)
	if err != nil {
		return err
	}

	fmt.Printf("%s Synthetic %s generated: %s\n", emoji.GetEmoji("forge"), asset.Kind, asset.Path)
	return nil
}
