// Package interpret calls the chat-completion provider that turns an
// uploaded paper into a personalized interpretation. The provider speaks the
// OpenAI wire protocol; the default configuration points at DeepSeek.
package interpret

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/ansapra/ansapra/internal/common"
	"github.com/sashabaranov/go-openai"
	"gopkg.in/yaml.v2"
)

//go:embed prompt/interpreter.yaml
var interpreterYAML []byte

type interpreterPrompt struct {
	SystemPrompt string `yaml:"system_prompt"`
}

// Parsed once; the asset is embedded, so a parse failure is a build defect
// and panics at startup.
var systemPrompt = func() string {
	var p interpreterPrompt
	if err := yaml.Unmarshal(interpreterYAML, &p); err != nil {
		panic(fmt.Errorf("parsing prompt yaml: %w", err))
	}
	return p.SystemPrompt
}()

// Interpreter produces an interpretation for a built prompt.
type Interpreter interface {
	Interpret(ctx context.Context, prompt string) (string, error)
}

type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

// NewClient builds a completion client. An empty apiKey is allowed; calls
// will then fail with common.ErrExternalService, which keeps the
// unconfigured-provider behavior a request-time error rather than a startup
// one.
func NewClient(apiKey, baseURL, model string, temperature float32, timeout time.Duration) *Client {
	var c *openai.Client
	if apiKey != "" {
		config := openai.DefaultConfig(apiKey)
		config.BaseURL = baseURL
		c = openai.NewClientWithConfig(config)
	}
	return &Client{
		client:      c,
		model:       model,
		temperature: temperature,
		timeout:     timeout,
	}
}

func (c *Client) Interpret(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("%w: completion provider API key is not configured", common.ErrExternalService)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: c.temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrExternalService, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion returned no choices", common.ErrExternalService)
	}

	return resp.Choices[0].Message.Content, nil
}
