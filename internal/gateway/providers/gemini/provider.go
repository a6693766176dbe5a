// Package gemini implements the analysis gateway against Google's Gemini API.
package gemini

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/proofylabs/proofy/internal/forensic"
	"github.com/proofylabs/proofy/internal/gateway"
	"github.com/proofylabs/proofy/internal/intake"
)

const (
	DefaultModel      = "gemini-2.5-flash"
	DefaultForgeModel = "gemini-2.0-flash-preview-image-generation"
)

// Provider calls the Gemini API for every gateway capability.
type Provider struct {
	client *genai.Client
	model  string
	apiKey string
}

// New creates a Gemini provider. The client is constructed lazily so a
// missing key surfaces as a classified credential error at call time, not a
// construction failure.
func New(apiKey, model string) (gateway.Provider, error) {
	if model == "" {
		model = DefaultModel
	}
	return &Provider{model: model, apiKey: apiKey}, nil
}

func (p *Provider) Name() string {
	return "gemini"
}

// ValidateConfig verifies a usable credential is present.
func (p *Provider) ValidateConfig() error {
	if p.apiKey == "" {
		return gateway.NewError(gateway.KindCredentialMissing, p.Name(), nil)
	}
	return nil
}

func (p *Provider) ensureClient(ctx context.Context) error {
	if p.client != nil {
		return nil
	}
	if err := p.ValidateConfig(); err != nil {
		return err
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: p.apiKey})
	if err != nil {
		return gateway.Classify(p.Name(), err)
	}
	p.client = client
	return nil
}

// AnalyzeMedia sends the asset inline with the interrogation prompt and
// parses the structured JSON verdict.
func (p *Provider) AnalyzeMedia(ctx context.Context, media *intake.Media) (*forensic.AnalysisResult, error) {
	prompt := gateway.BuildAnalysisPrompt(media.Metadata)
	content, err := p.generateJSON(ctx, prompt.SystemPrompt, prompt.String(), media)
	if err != nil {
		return nil, err
	}
	return gateway.ParseAnalysisResponse(p.Name(), content, media.Metadata)
}

// ReverseGrounding traces an asset back to probable source archives.
func (p *Provider) ReverseGrounding(ctx context.Context, media *intake.Media) (*forensic.GroundingReport, error) {
	prompt := gateway.BuildGroundingPrompt(media.Metadata)
	content, err := p.generateJSON(ctx, prompt.SystemPrompt, prompt.String(), media)
	if err != nil {
		return nil, err
	}
	return gateway.ParseGroundingResponse(p.Name(), content, media.Metadata)
}

// TranscribeAudio extracts a transcript from an audio asset.
func (p *Provider) TranscribeAudio(ctx context.Context, media *intake.Media) (string, error) {
	if err := p.ensureClient(ctx); err != nil {
		return "", err
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(media.Data, media.Metadata.Type),
		genai.NewPartFromText("Transcribe this audio verbatim. Respond with the transcript only."),
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil)
	if err != nil {
		return "", gateway.Classify(p.Name(), err)
	}
	text := resp.Text()
	if text == "" {
		return "", p.classifyEmpty(resp)
	}
	return text, nil
}

// InterrogateText classifies a text sample for machine authorship.
func (p *Provider) InterrogateText(ctx context.Context, text string) (*forensic.TextReport, error) {
	if err := p.ensureClient(ctx); err != nil {
		return nil, err
	}

	prompt := gateway.BuildTextPrompt(text)
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(prompt.SystemPrompt, genai.RoleUser),
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		genai.Text(prompt.String()), cfg)
	if err != nil {
		return nil, gateway.Classify(p.Name(), err)
	}
	content := resp.Text()
	if content == "" {
		return nil, p.classifyEmpty(resp)
	}
	return gateway.ParseTextResponse(p.Name(), content)
}

// GenerateSynthetic produces a synthetic test image for red-team drills and
// writes it to a temp file.
func (p *Provider) GenerateSynthetic(ctx context.Context, kind, prompt string) (*forensic.SyntheticAsset, error) {
	if err := p.ensureClient(ctx); err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	resp, err := p.client.Models.GenerateContent(ctx, DefaultForgeModel,
		genai.Text(prompt), cfg)
	if err != nil {
		return nil, gateway.Classify(p.Name(), err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil {
				continue
			}
			path := filepath.Join(os.TempDir(),
				fmt.Sprintf("proofy-forge-%s.png", uuid.NewString()[:8]))
			if err := os.WriteFile(path, part.InlineData.Data, 0o600); err != nil {
				return nil, gateway.Classify(p.Name(), err)
			}
			return &forensic.SyntheticAsset{
				ID:        uuid.NewString(),
				Timestamp: time.Now().UTC(),
				Kind:      kind,
				Prompt:    prompt,
				Path:      path,
			}, nil
		}
	}
	return nil, p.classifyEmpty(resp)
}

func (p *Provider) Close() error {
	p.client = nil
	return nil
}

func (p *Provider) generateJSON(ctx context.Context, system, prompt string, media *intake.Media) (string, error) {
	if err := p.ensureClient(ctx); err != nil {
		return "", err
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(media.Data, media.Metadata.Type),
		genai.NewPartFromText(prompt),
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg)
	if err != nil {
		return "", gateway.Classify(p.Name(), err)
	}
	content := resp.Text()
	if content == "" {
		return "", p.classifyEmpty(resp)
	}
	return content, nil
}

// classifyEmpty maps an empty completion to a gateway error, distinguishing
// safety blocks from other provider failures.
func (p *Provider) classifyEmpty(resp *genai.GenerateContentResponse) error {
	if resp != nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return gateway.NewError(gateway.KindSafetyRejected, p.Name(),
				fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason))
		}
		for _, cand := range resp.Candidates {
			if cand.FinishReason == genai.FinishReasonSafety {
				return gateway.NewError(gateway.KindSafetyRejected, p.Name(),
					fmt.Errorf("candidate blocked for safety"))
			}
		}
	}
	return gateway.NewError(gateway.KindUnspecified, p.Name(),
		fmt.Errorf("gateway returned an empty completion"))
}
