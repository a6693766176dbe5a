// Package gateway defines the contract with the remote generative-AI service
// performing the actual media interrogation. The detection itself is an
// external collaborator; this package specifies only the request/response
// shape and the failure taxonomy.
package gateway

import (
	"context"

	"github.com/proofylabs/proofy/internal/forensic"
	"github.com/proofylabs/proofy/internal/intake"
)

// Analyzer is the primary single-call interface: a media file and derived
// metadata in, a fully populated AnalysisResult or a classified *Error out.
type Analyzer interface {
	AnalyzeMedia(ctx context.Context, media *intake.Media) (*forensic.AnalysisResult, error)
}

// Grounder traces a suspected fabrication back to probable source archives.
type Grounder interface {
	ReverseGrounding(ctx context.Context, media *intake.Media) (*forensic.GroundingReport, error)
}

// Transcriber extracts a transcript from an audio asset.
type Transcriber interface {
	TranscribeAudio(ctx context.Context, media *intake.Media) (string, error)
}

// TextInterrogator classifies a text sample for machine authorship.
type TextInterrogator interface {
	InterrogateText(ctx context.Context, text string) (*forensic.TextReport, error)
}

// Forger generates a synthetic test asset for red-team drills.
type Forger interface {
	GenerateSynthetic(ctx context.Context, kind, prompt string) (*forensic.SyntheticAsset, error)
}

// Provider combines every gateway capability. Peripheral tools share the same
// request/response/failure shape as the primary analysis call.
type Provider interface {
	Analyzer
	Grounder
	Transcriber
	TextInterrogator
	Forger

	// Name returns the provider identifier (e.g. "gemini", "openai").
	Name() string

	// ValidateConfig verifies the provider has usable configuration. A
	// missing credential surfaces as KindCredentialMissing.
	ValidateConfig() error

	// Close releases provider resources.
	Close() error
}
