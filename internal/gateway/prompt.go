package gateway

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/go-promptfmt"

	"github.com/proofylabs/proofy/internal/forensic"
)

// reportPayload is the JSON shape every provider asks the model to emit for
// a media interrogation.
type reportPayload struct {
	Verdict             string  `json:"verdict"`
	DeepfakeProbability float64 `json:"deepfakeProbability"`
	ConfidenceLevel     string  `json:"confidenceLevel"`
	Summary             string  `json:"summary"`
	UserRecommendation  string  `json:"userRecommendation"`
	Explanations        []struct {
		Category  string `json:"category"`
		Point     string `json:"point"`
		Detail    string `json:"detail"`
		Timestamp string `json:"timestamp"`
	} `json:"explanations"`
}

type groundingPayload struct {
	OriginFound bool   `json:"originFound"`
	Assessment  string `json:"assessment"`
	Sources     []struct {
		Title      string  `json:"title"`
		URL        string  `json:"url"`
		Archive    string  `json:"archive"`
		Similarity float64 `json:"similarity"`
	} `json:"sources"`
	Alterations []string `json:"alterations"`
}

type textPayload struct {
	SyntheticProbability float64  `json:"syntheticProbability"`
	Assessment           string   `json:"assessment"`
	Markers              []string `json:"markers"`
}

const analysisSystemPrompt = "You are a forensic media examiner. You inspect media for signs of " +
	"generative fabrication: blending seams, lighting inconsistencies, lip-sync drift, " +
	"spectral voice artifacts, temporal jitter. Respond only with the requested JSON."

// BuildAnalysisPrompt assembles the interrogation prompt for a media asset.
func BuildAnalysisPrompt(meta forensic.FileMetadata) *promptfmt.Prompt {
	return promptfmt.New().
		System(analysisSystemPrompt).
		User("Interrogate the attached media for deepfake manipulation.\n\nFile: %s\nSize: %s\nDeclared type: %s\n\nClassify the verdict as REAL or FABRICATED, report deepfakeProbability as a percentage in [0,100], confidenceLevel as High, Medium or Low, and anchor each explanation to a mm:ss timestamp where the evidence is visible.",
			meta.Name, meta.Size, meta.Type).
		ExpectJSON(&reportPayload{}).
		Build()
}

// BuildGroundingPrompt assembles the reverse signal grounding prompt.
func BuildGroundingPrompt(meta forensic.FileMetadata) *promptfmt.Prompt {
	return promptfmt.New().
		System("You are a provenance investigator. You trace suspected neural fabrications back to probable source archives and describe the alterations applied. Respond only with the requested JSON.").
		User("Trace the attached asset (%s, %s) back to its probable origins. Report whether an origin was found, candidate sources with similarity scores in [0,1], and the alterations separating the asset from each source.",
			meta.Name, meta.Type).
		ExpectJSON(&groundingPayload{}).
		Build()
}

// BuildTextPrompt assembles the text interrogation prompt.
func BuildTextPrompt(sample string) *promptfmt.Prompt {
	return promptfmt.New().
		System("You are a stylometric examiner. You assess whether a text was machine-generated. Respond only with the requested JSON.").
		User("Interrogate the following text for machine authorship. Report syntheticProbability as a percentage in [0,100] and list the stylometric markers behind the assessment.\n\n---\n%s\n---", sample).
		ExpectJSON(&textPayload{}).
		Build()
}

// ParseAnalysisResponse parses model output into an AnalysisResult, stamps
// id and timestamp, attaches the file metadata, and enforces the result
// invariants. Out-of-range probabilities are a provider defect and fail the
// call rather than reaching the coordinator.
func ParseAnalysisResponse(provider, content string, meta forensic.FileMetadata) (*forensic.AnalysisResult, error) {
	var payload reportPayload
	resp := promptfmt.NewResponse(content)
	if result := resp.TryParseJSON(&payload); !result.Success {
		return nil, NewError(KindUnspecified, provider,
			fmt.Errorf("malformed gateway response: %s", truncate(content, 200)))
	}

	result := &forensic.AnalysisResult{
		ID:                  uuid.NewString(),
		Timestamp:           time.Now().UTC(),
		Verdict:             forensic.Verdict(payload.Verdict),
		DeepfakeProbability: payload.DeepfakeProbability,
		ConfidenceLevel:     forensic.ConfidenceLevel(payload.ConfidenceLevel),
		Summary:             payload.Summary,
		UserRecommendation:  payload.UserRecommendation,
		FileMetadata:        meta,
	}
	for _, e := range payload.Explanations {
		result.Explanations = append(result.Explanations, forensic.Explanation{
			Category:  normalizeCategory(e.Category),
			Point:     e.Point,
			Detail:    e.Detail,
			Timestamp: e.Timestamp,
		})
	}

	if err := result.Validate(); err != nil {
		return nil, NewError(KindUnspecified, provider, fmt.Errorf("invalid gateway result: %w", err))
	}
	return result, nil
}

// ParseGroundingResponse parses model output into a GroundingReport.
func ParseGroundingResponse(provider, content string, meta forensic.FileMetadata) (*forensic.GroundingReport, error) {
	var payload groundingPayload
	resp := promptfmt.NewResponse(content)
	if result := resp.TryParseJSON(&payload); !result.Success {
		return nil, NewError(KindUnspecified, provider,
			fmt.Errorf("malformed grounding response: %s", truncate(content, 200)))
	}

	report := &forensic.GroundingReport{
		ID:           uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		OriginFound:  payload.OriginFound,
		Assessment:   payload.Assessment,
		Alterations:  payload.Alterations,
		FileMetadata: meta,
	}
	for _, s := range payload.Sources {
		report.Sources = append(report.Sources, forensic.GroundingSource{
			Title:      s.Title,
			URL:        s.URL,
			Archive:    s.Archive,
			Similarity: s.Similarity,
		})
	}
	return report, nil
}

// ParseTextResponse parses model output into a TextReport.
func ParseTextResponse(provider, content string) (*forensic.TextReport, error) {
	var payload textPayload
	resp := promptfmt.NewResponse(content)
	if result := resp.TryParseJSON(&payload); !result.Success {
		return nil, NewError(KindUnspecified, provider,
			fmt.Errorf("malformed text response: %s", truncate(content, 200)))
	}
	return &forensic.TextReport{
		ID:                   uuid.NewString(),
		Timestamp:            time.Now().UTC(),
		SyntheticProbability: payload.SyntheticProbability,
		Assessment:           payload.Assessment,
		Markers:              payload.Markers,
	}, nil
}

func normalizeCategory(category string) forensic.ExplanationCategory {
	switch forensic.ExplanationCategory(category) {
	case forensic.CategoryVisual, forensic.CategoryAudio, forensic.CategoryTemporal:
		return forensic.ExplanationCategory(category)
	default:
		return forensic.CategoryOther
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
