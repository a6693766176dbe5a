package forensic

import (
	"fmt"
	"time"
)

// Verdict classifies a media asset as returned by the analysis gateway.
type Verdict string

const (
	VerdictReal       Verdict = "REAL"
	VerdictFabricated Verdict = "FABRICATED"
)

// Valid reports whether the verdict is one of the closed set.
func (v Verdict) Valid() bool {
	return v == VerdictReal || v == VerdictFabricated
}

// ConfidenceLevel is the categorical confidence label attached to a verdict.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// ExplanationCategory categorizes a reported anomaly.
type ExplanationCategory string

const (
	CategoryVisual   ExplanationCategory = "visual"
	CategoryAudio    ExplanationCategory = "audio"
	CategoryTemporal ExplanationCategory = "temporal"
	CategoryOther    ExplanationCategory = "other"
)

// Explanation is one piece of evidence supporting a verdict, optionally
// anchored to a mm:ss timestamp in the source media.
type Explanation struct {
	Category  ExplanationCategory `json:"category"`
	Point     string              `json:"point"`
	Detail    string              `json:"detail"`
	Timestamp string              `json:"timestamp,omitempty"`
}

// FileMetadata describes the interrogated asset. Preview is a transient
// session-scoped path and is never persisted.
type FileMetadata struct {
	Name    string `json:"name"`
	Size    string `json:"size"`
	Type    string `json:"type"`
	Preview string `json:"-"`
}

// AnalysisResult is the structured report returned by the analysis gateway.
// Explanations may be empty for a clean asset.
type AnalysisResult struct {
	ID                  string          `json:"id"`
	Timestamp           time.Time       `json:"timestamp"`
	Verdict             Verdict         `json:"verdict"`
	DeepfakeProbability float64         `json:"deepfakeProbability"`
	ConfidenceLevel     ConfidenceLevel `json:"confidenceLevel"`
	Summary             string          `json:"summary"`
	UserRecommendation  string          `json:"userRecommendation"`
	Explanations        []Explanation   `json:"explanations"`
	FileMetadata        FileMetadata    `json:"fileMetadata"`
}

// Validate checks the result invariants: a closed verdict and a probability
// within [0,100]. The verdict/probability relationship is gateway policy and
// is deliberately not enforced here.
func (r *AnalysisResult) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("result has no id")
	}
	if !r.Verdict.Valid() {
		return fmt.Errorf("invalid verdict: %q", r.Verdict)
	}
	if r.DeepfakeProbability < 0 || r.DeepfakeProbability > 100 {
		return fmt.Errorf("deepfake probability %.2f outside [0,100]", r.DeepfakeProbability)
	}
	return nil
}

// GroundingSource is one candidate origin located by reverse signal grounding.
// Similarity is a fraction in [0,1]; display layers scale it to a percentage.
type GroundingSource struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Archive    string  `json:"archive"`
	Similarity float64 `json:"similarity"`
}

// GroundingReport is the result of tracing an asset back to source archives.
type GroundingReport struct {
	ID           string            `json:"id"`
	Timestamp    time.Time         `json:"timestamp"`
	OriginFound  bool              `json:"originFound"`
	Assessment   string            `json:"assessment"`
	Sources      []GroundingSource `json:"sources"`
	Alterations  []string          `json:"alterations"`
	FileMetadata FileMetadata      `json:"fileMetadata"`
}

// TextReport is the result of interrogating a text sample for machine
// authorship.
type TextReport struct {
	ID                   string    `json:"id"`
	Timestamp            time.Time `json:"timestamp"`
	SyntheticProbability float64   `json:"syntheticProbability"`
	Assessment           string    `json:"assessment"`
	Markers              []string  `json:"markers"`
}

// SyntheticAsset describes a generated red-team test asset.
type SyntheticAsset struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Prompt    string    `json:"prompt"`
	Path      string    `json:"path"`
}
