package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

var openaiAliases = map[string]string{
	"gpt-mini": "gpt-4o-mini",
	"gpt":      "gpt-4o",
}

const openRouterURL = "https://openrouter.ai/api/v1"

// OpenAI speaks the chat completions API with a strict json_schema response
// format. OpenRouter and other compatible gateways use the same adapter with
// a different base URL.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", errMissingKey)
	}
	return newChatCompletions(cfg.APIKey, cfg.BaseURL, alias(cfg.Model, openaiAliases)), nil
}

// NewOpenRouter targets OpenRouter. Model IDs such as
// "google/gemini-2.5-flash" are sent unchanged.
func NewOpenRouter(cfg OpenRouterConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter: %w", errMissingKey)
	}
	base := cfg.BaseURL
	if base == "" {
		base = openRouterURL
	}
	return newChatCompletions(cfg.APIKey, base, cfg.Model), nil
}

func newChatCompletions(key, baseURL, model string) *OpenAI {
	conf := openai.DefaultConfig(key)
	if baseURL != "" {
		conf.BaseURL = baseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(conf), model: model}
}

func (o *OpenAI) Model() string { return o.model }

func (o *OpenAI) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	schema, err := p.Schema.JSON()
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", p.Schema.Name, err)
	}

	var msgs []openai.ChatCompletionMessage
	if p.Instructions != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: p.Instructions})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: p.Input})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               o.model,
		Messages:            msgs,
		MaxCompletionTokens: p.MaxTokens,
		Temperature:         float32(p.Temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        p.Schema.Name,
				Description: p.Schema.Description,
				Schema:      rawSchema(schema),
				Strict:      true,
			},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		switch {
		case errors.As(err, &apiErr):
			return nil, fromStatus(apiErr.HTTPStatusCode, nil, err)
		case errors.As(err, &reqErr):
			return nil, fromStatus(reqErr.HTTPStatusCode, nil, err)
		}
		return nil, &Error{Kind: Unavailable, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, malformed(nil, "reply has no choices")
	}

	choice := resp.Choices[0]
	answer := []byte(choice.Message.Content)
	if choice.FinishReason == openai.FinishReasonLength {
		return nil, &Error{Kind: Truncated, Body: answer}
	}
	if err := p.Schema.Validate(answer); err != nil {
		return nil, err
	}

	model := resp.Model
	if model == "" {
		model = o.model
	}
	return &Completion{
		JSON:   answer,
		Model:  model,
		Tokens: Tokens{In: resp.Usage.PromptTokens, Out: resp.Usage.CompletionTokens},
	}, nil
}

// rawSchema lets an encoded schema satisfy json.Marshaler for the SDK.
type rawSchema []byte

func (r rawSchema) MarshalJSON() ([]byte, error) { return r, nil }
