package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/proofylabs/proofy/internal/config"
	"github.com/proofylabs/proofy/internal/emoji"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "proofy",
		Short: "Deepfake Detection Console",
		Long: `Proofy interrogates media files through a generative-AI gateway and
returns a forensic verdict: REAL or FABRICATED, with a fabrication
probability, a confidence level, and categorized evidence.

Peripheral tools cover reverse grounding, text authorship analysis,
batch triage, synthetic asset generation, and live directory scanning.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flag("output").Changed {
				cfg.Output.DefaultFormat = outputFmt
			}
			if verbose {
				cfg.Output.Verbose = true
			}
			globalConfig = cfg
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "terminal", "output format (terminal, json, markdown, csv)")

	// Add subcommands
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newBatchCommand())
	rootCmd.AddCommand(newGroundCommand())
	rootCmd.AddCommand(newTranscribeCommand())
	rootCmd.AddCommand(newTextCommand())
	rootCmd.AddCommand(newForgeCommand())
	rootCmd.AddCommand(newLiveCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newSignalsCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("Proofy %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers

func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	if globalConfig != nil && globalConfig.Output.DefaultFormat != "" {
		return globalConfig.Output.DefaultFormat
	}
	return outputFmt
}

// GetGlobalConfig returns the loaded configuration, falling back to
// defaults when commands run outside the root command lifecycle.
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		globalConfig = config.DefaultConfig()
	}
	return globalConfig
}

func useColor() bool {
	return !noColor
}

func writeOutput(data []byte, outputFile string) error {
	if outputFile == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputFile, data, 0o644)
}
