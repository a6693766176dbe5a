package formatter

import (
	"encoding/json"
	"time"

	"github.com/proofylabs/proofy/internal/forensic"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(result *forensic.AnalysisResult) ([]byte, error) {
	output := &verdictOutput{
		ID:          result.ID,
		GeneratedAt: result.Timestamp,
		Exhibit: exhibitOutput{
			Name: result.FileMetadata.Name,
			Size: result.FileMetadata.Size,
			Type: result.FileMetadata.Type,
		},
		Verdict:             string(result.Verdict),
		DeepfakeProbability: result.DeepfakeProbability,
		Confidence:          string(result.ConfidenceLevel),
		Summary:             result.Summary,
		Recommendation:      result.UserRecommendation,
		Evidence:            result.Explanations,
	}
	return json.MarshalIndent(output, "", "  ")
}

type verdictOutput struct {
	ID                  string                 `json:"id"`
	GeneratedAt         time.Time              `json:"generated_at"`
	Exhibit             exhibitOutput          `json:"exhibit"`
	Verdict             string                 `json:"verdict"`
	DeepfakeProbability float64                `json:"deepfake_probability"`
	Confidence          string                 `json:"confidence"`
	Summary             string                 `json:"summary"`
	Recommendation      string                 `json:"recommendation,omitempty"`
	Evidence            []forensic.Explanation `json:"evidence"`
}

type exhibitOutput struct {
	Name string `json:"name"`
	Size string `json:"size"`
	Type string `json:"type"`
}
