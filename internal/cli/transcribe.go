package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/proofylabs/proofy/internal/intake"
)

var (
	transcribeTimeout    time.Duration
	transcribeOutputFile string
)

func newTranscribeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe [file]",
		Short: "Extract a transcript from an audio asset",
		Long: `Transcribe an audio file through the gateway. Useful as a first step
before feeding spoken content to the text lab.

Examples:
  proofy transcribe voicemail.mp3
  proofy transcribe voicemail.mp3 --output-file transcript.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runTranscribe,
	}

	cmd.Flags().DurationVar(&transcribeTimeout, "timeout", 0, "transcription timeout (default from config)")
	cmd.Flags().StringVar(&transcribeOutputFile, "output-file", "", "save transcript to file instead of stdout")

	return cmd
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if !cmd.Flag("timeout").Changed {
		transcribeTimeout = cfg.Gateway.Timeout
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
	if transcribeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, transcribeTimeout)
		defer cancel()
	}

	transcript, err := provider.TranscribeAudio(ctx, media)
	if err != nil {
		return err
	}

	return writeOutput([]byte(transcript+"\n"), transcribeOutputFile)
}
