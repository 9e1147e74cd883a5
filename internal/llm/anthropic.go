package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var anthropicAliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-5",
	"claude-haiku":  "claude-haiku-4-5",
}

// Anthropic asks Claude to answer by calling one tool whose input schema is
// the prompt's schema. Forcing that tool makes the tool input the answer.
type Anthropic struct {
	client anthropic.Client
	model  string
}

func NewAnthropic(cfg AnthropicConfig, opts ...option.RequestOption) (*Anthropic, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: %w", errMissingKey)
	}
	// The retry decorator owns backoff.
	opts = append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}, opts...)
	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  alias(cfg.Model, anthropicAliases),
	}, nil
}

func (a *Anthropic) Model() string { return a.model }

func (a *Anthropic) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	if err := p.check(); err != nil {
		return nil, err
	}

	props, required, extra := p.Schema.objectParts()
	tool := anthropic.ToolParam{
		Name:        p.Schema.Name,
		Description: anthropic.String(p.Schema.Description),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties:  props,
			Required:    required,
			ExtraFields: extra,
		},
	}
	params := anthropic.MessageNewParams{
		Model:      anthropic.Model(a.model),
		MaxTokens:  int64(p.MaxTokens),
		Messages:   []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(p.Input))},
		Tools:      []anthropic.ToolUnionParam{{OfTool: &tool}},
		ToolChoice: anthropic.ToolChoiceParamOfTool(tool.Name),
	}
	if p.Instructions != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.Instructions}}
	}
	if p.Temperature > 0 {
		params.Temperature = anthropic.Float(p.Temperature)
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			var h http.Header
			if apiErr.Response != nil {
				h = apiErr.Response.Header
			}
			return nil, fromStatus(apiErr.StatusCode, h, err)
		}
		return nil, &Error{Kind: Unavailable, Err: err}
	}

	var answer []byte
	for _, block := range msg.Content {
		if block.Type == "tool_use" && block.Name == tool.Name {
			answer = block.Input
			break
		}
	}
	if msg.StopReason == anthropic.StopReasonMaxTokens {
		return nil, &Error{Kind: Truncated, Body: answer}
	}
	if answer == nil {
		return nil, malformed(nil, "no %s tool call in reply (stop reason %s)", tool.Name, msg.StopReason)
	}
	if err := p.Schema.Validate(answer); err != nil {
		return nil, err
	}

	return &Completion{
		JSON:  answer,
		Model: string(msg.Model),
		Tokens: Tokens{
			In:  int(msg.Usage.InputTokens),
			Out: int(msg.Usage.OutputTokens),
		},
	}, nil
}
