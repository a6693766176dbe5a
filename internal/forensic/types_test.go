package forensic

import (
	"testing"
	"time"
)

func validResult() *AnalysisResult {
	return &AnalysisResult{
		ID:                  "res-001",
		Timestamp:           time.Now(),
		Verdict:             VerdictFabricated,
		DeepfakeProbability: 82,
		ConfidenceLevel:     ConfidenceHigh,
		Summary:             "Temporal inconsistencies detected",
		Explanations: []Explanation{
			{Category: CategoryTemporal, Point: "Lip-sync drift", Detail: "Audio leads mouth motion", Timestamp: "00:14"},
		},
		FileMetadata: FileMetadata{Name: "sample.mp4", Size: "2.10 MB", Type: "video/mp4"},
	}
}

func TestAnalysisResultValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AnalysisResult)
		wantErr bool
	}{
		{
			name:   "valid result",
			mutate: func(r *AnalysisResult) {},
		},
		{
			name:    "missing id",
			mutate:  func(r *AnalysisResult) { r.ID = "" },
			wantErr: true,
		},
		{
			name:    "unknown verdict",
			mutate:  func(r *AnalysisResult) { r.Verdict = "SUSPICIOUS" },
			wantErr: true,
		},
		{
			name:    "probability above range",
			mutate:  func(r *AnalysisResult) { r.DeepfakeProbability = 100.5 },
			wantErr: true,
		},
		{
			name:    "probability below range",
			mutate:  func(r *AnalysisResult) { r.DeepfakeProbability = -1 },
			wantErr: true,
		},
		{
			name:   "boundary probabilities are valid",
			mutate: func(r *AnalysisResult) { r.DeepfakeProbability = 0 },
		},
		{
			name:   "empty explanations signify clean result",
			mutate: func(r *AnalysisResult) { r.Explanations = nil; r.Verdict = VerdictReal },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResult()
			tt.mutate(r)
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerdictValid(t *testing.T) {
	if !VerdictReal.Valid() || !VerdictFabricated.Valid() {
		t.Error("expected closed-set verdicts to be valid")
	}
	if Verdict("MAYBE").Valid() {
		t.Error("expected unknown verdict to be invalid")
	}
}
