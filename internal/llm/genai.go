package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GenAIProvider implements Provider using the Google Gen AI SDK. It talks to
// the same endpoint family as GeminiProvider but through the SDK client.
type GenAIProvider struct {
	client *genai.Client
	model  string
}

// NewGenAIProvider creates a new SDK-backed Gemini provider.
func NewGenAIProvider(ctx context.Context, cfg GeminiConfig) (*GenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" && cfg.BaseURL != DefaultGeminiBaseURL {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GenAIProvider{
		client: client,
		model:  resolveModel(cfg.Model, geminiModels),
	}, nil
}

func (p *GenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	temp := float32(req.Config.Temperature)
	topK := float32(req.Config.TopK)
	topP := float32(req.Config.TopP)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopK:            &topK,
		TopP:            &topP,
		MaxOutputTokens: int32(req.Config.MaxOutputTokens),
	}

	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: req.Prompt}},
	}}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, mapGenAIError(err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return nil, &MalformedPayloadError{Err: errors.New("response has no candidate text")}
	}

	resp := &Response{
		Text:       result.Candidates[0].Content.Parts[0].Text,
		Model:      p.model,
		StopReason: mapGenAIStopReason(result),
	}

	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return resp, nil
}

func (p *GenAIProvider) ModelID() string {
	return p.model
}

func mapGenAIStopReason(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) > 0 {
		return normalizeFinishReason(string(result.Candidates[0].FinishReason))
	}
	return "end"
}

func mapGenAIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = defaultAPIMessage
		}
		return &APIError{StatusCode: apiErr.Code, Message: msg}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		msg := apiErrPtr.Message
		if msg == "" {
			msg = defaultAPIMessage
		}
		return &APIError{StatusCode: apiErrPtr.Code, Message: msg}
	}
	return &TransportError{Err: err}
}
