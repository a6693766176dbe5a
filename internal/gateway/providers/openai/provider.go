// Package openai implements the analysis gateway against an OpenAI-compatible
// API.
package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/proofylabs/proofy/internal/forensic"
	"github.com/proofylabs/proofy/internal/gateway"
	"github.com/proofylabs/proofy/internal/intake"
)

const (
	DefaultModel = "gpt-4o"
	maxTokens    = 2048
)

// Provider calls an OpenAI-compatible API for the gateway capabilities.
// Audio transcription uses Whisper; the forge uses the image endpoint.
type Provider struct {
	client *openai.Client
	model  string
	apiKey string
}

// New creates an OpenAI provider.
func New(apiKey, model string) (gateway.Provider, error) {
	if model == "" {
		model = DefaultModel
	}
	return &Provider{model: model, apiKey: apiKey, client: openai.NewClient(apiKey)}, nil
}

func (p *Provider) Name() string {
	return "openai"
}

func (p *Provider) ValidateConfig() error {
	if p.apiKey == "" {
		return gateway.NewError(gateway.KindCredentialMissing, p.Name(), nil)
	}
	return nil
}

func (p *Provider) AnalyzeMedia(ctx context.Context, media *intake.Media) (*forensic.AnalysisResult, error) {
	prompt := gateway.BuildAnalysisPrompt(media.Metadata)
	content, err := p.completeWithMedia(ctx, prompt.SystemPrompt, prompt.String(), media)
	if err != nil {
		return nil, err
	}
	return gateway.ParseAnalysisResponse(p.Name(), content, media.Metadata)
}

func (p *Provider) ReverseGrounding(ctx context.Context, media *intake.Media) (*forensic.GroundingReport, error) {
	prompt := gateway.BuildGroundingPrompt(media.Metadata)
	content, err := p.completeWithMedia(ctx, prompt.SystemPrompt, prompt.String(), media)
	if err != nil {
		return nil, err
	}
	return gateway.ParseGroundingResponse(p.Name(), content, media.Metadata)
}

func (p *Provider) TranscribeAudio(ctx context.Context, media *intake.Media) (string, error) {
	if err := p.ValidateConfig(); err != nil {
		return "", err
	}
	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: media.Path,
	})
	if err != nil {
		return "", gateway.Classify(p.Name(), err)
	}
	return resp.Text, nil
}

func (p *Provider) InterrogateText(ctx context.Context, text string) (*forensic.TextReport, error) {
	if err := p.ValidateConfig(); err != nil {
		return nil, err
	}
	prompt := gateway.BuildTextPrompt(text)
	req := openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt.String()},
		},
	}
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, gateway.Classify(p.Name(), err)
	}
	if len(resp.Choices) == 0 {
		return nil, gateway.NewError(gateway.KindUnspecified, p.Name(),
			fmt.Errorf("gateway returned no choices"))
	}
	return gateway.ParseTextResponse(p.Name(), resp.Choices[0].Message.Content)
}

func (p *Provider) GenerateSynthetic(ctx context.Context, kind, prompt string) (*forensic.SyntheticAsset, error) {
	if err := p.ValidateConfig(); err != nil {
		return nil, err
	}
	resp, err := p.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          openai.CreateImageModelDallE3,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
		N:              1,
	})
	if err != nil {
		return nil, gateway.Classify(p.Name(), err)
	}
	if len(resp.Data) == 0 {
		return nil, gateway.NewError(gateway.KindUnspecified, p.Name(),
			fmt.Errorf("image endpoint returned no data"))
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, gateway.Classify(p.Name(), err)
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("proofy-forge-%s.png", uuid.NewString()[:8]))
	if err := os.WriteFile(path, raw, 0o600); err != nil {
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

func (p *Provider) Close() error {
	return nil
}

// completeWithMedia sends the asset inline as a data URL alongside the
// interrogation prompt. Only image payloads are supported by the chat
// endpoint; other media fall back to metadata-only interrogation.
func (p *Provider) completeWithMedia(ctx context.Context, system, prompt string, media *intake.Media) (string, error) {
	if err := p.ValidateConfig(); err != nil {
		return "", err
	}

	userMsg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if strings.HasPrefix(media.Metadata.Type, "image/") {
		dataURL := fmt.Sprintf("data:%s;base64,%s",
			media.Metadata.Type, base64.StdEncoding.EncodeToString(media.Data))
		userMsg.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: prompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
		}
	} else {
		userMsg.Content = prompt
	}

	req := openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			userMsg,
		},
	}
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", gateway.Classify(p.Name(), err)
	}
	if len(resp.Choices) == 0 {
		return "", gateway.NewError(gateway.KindUnspecified, p.Name(),
			fmt.Errorf("gateway returned no choices"))
	}
	return resp.Choices[0].Message.Content, nil
}
