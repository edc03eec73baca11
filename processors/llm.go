package processors

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"lectureAssist/config"
)

// TextCompleter is the single contract the generators have with the LLM
// service: one prompt in, one text completion out. Failures are returned as
// errors and every generator converts them into its own soft result.
type TextCompleter interface {
	Complete(prompt string, temperature float32, maxTokens int) (string, error)
}

const llmCallTimeout = 60 * time.Second

// CompletionClient calls an OpenAI-compatible chat completion endpoint.
type CompletionClient struct {
	cli   *openai.Client
	model string
}

// NewCompletionClient builds the process-wide LLM handle from config.
func NewCompletionClient(cfg *config.Config) *CompletionClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &CompletionClient{
		cli:   openai.NewClientWithConfig(clientConfig),
		model: cfg.ChatModel,
	}
}

func (c *CompletionClient) Complete(prompt string, temperature float32, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), llmCallTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	resp, err := c.cli.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion API failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices from chat completion API")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
