package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/proofylabs/proofy/internal/emoji"
	"github.com/proofylabs/proofy/internal/signals"
)

func newSignalsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signals",
		Short: "Manage fabrication signatures",
		Long: `List and validate the fabrication signature catalog consulted while
reviewing verdicts.

Signatures are YAML files describing known synthesis artifacts across
visual, audio, and temporal categories.`,
	}

	cmd.AddCommand(newSignalsListCommand())
	cmd.AddCommand(newSignalsValidateCommand())

	return cmd
}

func newSignalsListCommand() *cobra.Command {
	var directory string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged fabrication signatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := loadSignalCatalog(GetGlobalConfig(), directory)
			if catalog.Len() == 0 {
				fmt.Println("No signatures loaded")
				return nil
			}

			for _, sig := range catalog.All() {
				fmt.Printf("%-32s %-8s %-6s %s\n", sig.ID, sig.Category, sig.Severity, sig.Name)
			}
			fmt.Printf("\n%d signatures\n", catalog.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", "", "extra signal directory")

	return cmd
}

func newSignalsValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate signature files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				loaded, err := signals.LoadFromFile(path)
				if err != nil {
					failed++
					fmt.Printf("%s %s: %v\n", emoji.GetEmoji("error"), path, err)
					continue
				}
				fmt.Printf("%s %s: %d signature(s)\n", emoji.GetEmoji("success"), path, len(loaded))
			}
			if failed > 0 {
				fmt.Fprintf(os.Stderr, "\n%d file(s) failed validation\n", failed)
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}
}
