package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/go-termfmt"

	"github.com/proofylabs/proofy/internal/emoji"
	"github.com/proofylabs/proofy/internal/forensic"
	"github.com/proofylabs/proofy/internal/intake"
)

var (
	groundTimeout    time.Duration
	groundOutputFile string
)

func newGroundCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ground [file]",
		Short: "Trace a suspected fabrication to source archives",
		Long: `Reverse-ground a media file: search for the probable original the
fabrication was derived from and list the alterations applied to it.

Examples:
  proofy ground suspect.jpg
  proofy ground -o json suspect.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: runGround,
	}

	cmd.Flags().DurationVar(&groundTimeout, "timeout", 0, "grounding timeout (default from config)")
	cmd.Flags().StringVar(&groundOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runGround(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if !cmd.Flag("timeout").Changed {
		groundTimeout = cfg.Gateway.Timeout
	}

	media, err := intake.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening media: %w", err)
	}
	defer releaseQuietly(media)

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(provider.Close)

	ctx := cmd.Context()
	if groundTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, groundTimeout)
		defer cancel()
	}

	report, err := provider.ReverseGrounding(ctx, media)
	if err != nil {
		return err
	}

	output, err := formatGroundingReport(report)
	if err != nil {
		return err
	}
	return writeOutput(output, groundOutputFile)
}

func formatGroundingReport(report *forensic.GroundingReport) ([]byte, error) {
	if getOutputFormat() == "json" {
		return json.MarshalIndent(report, "", "  ")
	}

	opts := termfmt.DefaultOptions()
	opts.Color = useColor()
	opts.Emoji = !emoji.IsEmojiDisabled()

	var b strings.Builder
	b.WriteString(emoji.GetEmoji("ground") + " Reverse Grounding\n\n")

	status := "origin not located"
	if report.OriginFound {
		status = "probable origin located"
	}

	items := []termfmt.TreeItem{
		{Label: "Exhibit", Value: report.FileMetadata.Name},
		{Label: "Status", Value: status},
		{Label: "Assessment", Value: report.Assessment, Last: true},
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, opts) + "\n")

	if len(report.Sources) > 0 {
		b.WriteString("\nSources\n")
		for i, src := range report.Sources {
			branch := "├─"
			if i == len(report.Sources)-1 {
				branch = "└─"
			}
			fmt.Fprintf(&b, "%s %s (%.0f%% similar) %s\n", branch, src.Title, src.Similarity*100, src.URL)
		}
	}

	if len(report.Alterations) > 0 {
		b.WriteString("\nAlterations\n")
		for i, alt := range report.Alterations {
			branch := "├─"
			if i == len(report.Alterations)-1 {
				branch = "└─"
			}
			fmt.Fprintf(&b, "%s %s\n", branch, alt)
		}
	}

	return []byte(b.String()), nil
}
