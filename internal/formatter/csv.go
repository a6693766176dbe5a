package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/proofylabs/proofy/internal/forensic"
)

// csvFormatter formats evidence rows as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(result *forensic.AnalysisResult) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Result ID",
		"Exhibit",
		"Verdict",
		"Probability",
		"Confidence",
		"Category",
		"Point",
		"Detail",
		"Timestamp",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	probability := fmt.Sprintf("%.0f", result.DeepfakeProbability)

	if len(result.Explanations) == 0 {
		record := []string{
			result.ID,
			result.FileMetadata.Name,
			string(result.Verdict),
			probability,
			string(result.ConfidenceLevel),
			"", "", "", "",
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	for _, exp := range result.Explanations {
		record := []string{
			result.ID,
			result.FileMetadata.Name,
			string(result.Verdict),
			probability,
			string(result.ConfidenceLevel),
			string(exp.Category),
			exp.Point,
			exp.Detail,
			exp.Timestamp,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return b.Bytes(), nil
}
