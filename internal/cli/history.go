package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/proofylabs/proofy/internal/forensic"
	"github.com/proofylabs/proofy/internal/formatter"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage closed cases",
		Long: `List and inspect the persisted case history. The store keeps the most
recent verdicts, newest first.`,
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List closed cases, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newHistoryStore(GetGlobalConfig())

			entries := store.Entries()
			if len(entries) == 0 {
				fmt.Println("No closed cases")
				return nil
			}

			for _, entry := range entries {
				fmt.Printf("%s  %s  %-10s %3.0f%%  %s\n",
					entry.ID[:8],
					entry.Timestamp.Format("2006-01-02 15:04"),
					entry.Verdict,
					entry.DeepfakeProbability,
					entry.FileMetadata.Name)
			}
			return nil
		},
	}
}

func newHistoryShowCommand() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a closed case in the selected output format",
		Long: `Show a single case by ID. An unambiguous ID prefix is accepted.

Examples:
  proofy history show 4f1c2a9e
  proofy history show -o markdown 4f1c2a9e --output-file report.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newHistoryStore(GetGlobalConfig())

			result, err := findCase(store.Entries(), args[0])
			if err != nil {
				return err
			}

			f := formatter.New(getOutputFormat(), useColor())
			output, err := f.Format(result)
			if err != nil {
				return fmt.Errorf("formatting case: %w", err)
			}
			return writeOutput(output, outputFile)
		},
	}

	cmd.Flags().StringVar(&outputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the persisted case history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetGlobalConfig()
			if !force {
				return fmt.Errorf("refusing to delete %s without --force", cfg.Storage.HistoryPath)
			}
			if err := os.Remove(cfg.Storage.HistoryPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("deleting history: %w", err)
			}
			fmt.Println("Case history cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm deletion")

	return cmd
}

func findCase(entries []*forensic.AnalysisResult, idOrPrefix string) (*forensic.AnalysisResult, error) {
	var match *forensic.AnalysisResult
	for _, entry := range entries {
		if entry.ID == idOrPrefix {
			return entry, nil
		}
		if len(idOrPrefix) >= 4 && len(entry.ID) >= len(idOrPrefix) && entry.ID[:len(idOrPrefix)] == idOrPrefix {
			if match != nil {
				return nil, fmt.Errorf("ambiguous case ID prefix: %s", idOrPrefix)
			}
			match = entry
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no case found for %s", idOrPrefix)
	}
	return match, nil
}
