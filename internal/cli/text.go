package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/go-termfmt"

	"github.com/proofylabs/proofy/internal/emoji"
	"github.com/proofylabs/proofy/internal/forensic"
)

var (
	textTimeout    time.Duration
	textOutputFile string
)

func newTextCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text [file]",
		Short: "Interrogate a text sample for machine authorship",
		Long: `Analyze a text sample and estimate the probability it was machine
generated, with the stylistic markers that drove the estimate.

Reads from the named file, or from stdin when the argument is "-" or
omitted.

Examples:
  proofy text statement.txt
  pbpaste | proofy text -
  proofy text -o json essay.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runText,
	}

	cmd.Flags().DurationVar(&textTimeout, "timeout", 0, "interrogation timeout (default from config)")
	cmd.Flags().StringVar(&textOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runText(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if !cmd.Flag("timeout").Changed {
		textTimeout = cfg.Gateway.Timeout
	}

	sample, err := readTextSample(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(sample) == "" {
		return fmt.Errorf("empty text sample")
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(provider.Close)

	ctx := cmd.Context()
	if textTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, textTimeout)
		defer cancel()
	}

	report, err := provider.InterrogateText(ctx, sample)
	if err != nil {
		return err
	}

	output, err := formatTextReport(report)
	if err != nil {
		return err
	}
	return writeOutput(output, textOutputFile)
}

func readTextSample(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

func formatTextReport(report *forensic.TextReport) ([]byte, error) {
	if getOutputFormat() == "json" {
		return json.MarshalIndent(report, "", "  ")
	}

	opts := termfmt.DefaultOptions()
	opts.Color = useColor()
	opts.Emoji = !emoji.IsEmojiDisabled()

	var b strings.Builder
	b.WriteString(emoji.GetEmoji("text") + " Text Lab\n\n")

	items := []termfmt.TreeItem{
		{Label: "Synthetic Probability", Value: fmt.Sprintf("%.0f%%", report.SyntheticProbability)},
		{Label: "Assessment", Value: report.Assessment, Last: true},
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, opts) + "\n")

	if len(report.Markers) > 0 {
		b.WriteString("\nMarkers\n")
		for i, marker := range report.Markers {
			branch := "├─"
			if i == len(report.Markers)-1 {
				branch = "└─"
			}
			fmt.Fprintf(&b, "%s %s\n", branch, marker)
		}
	}

	return []byte(b.String()), nil
}
