package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4oMini

// Config holds the connection parameters for an OpenAI-compatible
// chat completions endpoint.
type Config struct {
	APIKey  string        `mapstructure:"api_key" json:"api_key"`
	BaseURL string        `mapstructure:"base_url" json:"base_url"`
	Model   string        `mapstructure:"model" json:"model"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

// OpenAIClient talks to an OpenAI-compatible chat completions API.
type OpenAIClient struct {
	api   *openai.Client
	model string
}

func NewOpenAIClient(cfg Config) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIClient{
		api:   openai.NewClientWithConfig(clientCfg),
		model: model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	var messages []openai.ChatCompletionMessage

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if req.ImageURL != "" {
		user.MultiContent = []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: req.Prompt,
			},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    req.ImageURL,
					Detail: openai.ImageURLDetailAuto,
				},
			},
		}
	} else {
		user.Content = req.Prompt
	}
	messages = append(messages, user)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	return resp.Choices[0].Message.Content, nil
}
