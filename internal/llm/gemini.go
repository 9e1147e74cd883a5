package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiAliases = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-lite":  "gemini-2.5-flash-lite",
	"gemini-pro":   "gemini-2.5-pro",
}

// Gemini sends the prompt schema as responseJsonSchema so the model replies
// with a bare JSON document.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", errMissingKey)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client, model: alias(cfg.Model, geminiAliases)}, nil
}

func (g *Gemini) Model() string { return g.model }

func (g *Gemini) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	if err := p.check(); err != nil {
		return nil, err
	}

	conf := &genai.GenerateContentConfig{
		MaxOutputTokens:    int32(p.MaxTokens),
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: p.Schema.Definition,
	}
	if p.Instructions != "" {
		conf.SystemInstruction = genai.NewContentFromText(p.Instructions, genai.RoleUser)
	}
	if p.Temperature > 0 {
		t := float32(p.Temperature)
		conf.Temperature = &t
	}

	input := []*genai.Content{genai.NewContentFromText(p.Input, genai.RoleUser)}
	res, err := g.client.Models.GenerateContent(ctx, g.model, input, conf)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, fromStatus(apiErr.Code, nil, err)
		}
		return nil, &Error{Kind: Unavailable, Err: err}
	}

	answer := []byte(res.Text())
	if len(res.Candidates) > 0 && res.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return nil, &Error{Kind: Truncated, Body: answer}
	}
	if err := p.Schema.Validate(answer); err != nil {
		return nil, err
	}

	c := &Completion{JSON: answer, Model: g.model}
	if res.ModelVersion != "" {
		c.Model = res.ModelVersion
	}
	if u := res.UsageMetadata; u != nil {
		c.Tokens = Tokens{In: int(u.PromptTokenCount), Out: int(u.CandidatesTokenCount)}
	}
	return c, nil
}
