package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/chasingbytes/resume/backend/internal/service/assistant"
)

// OpenAIClient calls the OpenAI chat completions endpoint.
type OpenAIClient struct {
	client *goopenai.Client
}

// NewOpenAIClient creates a client. baseURL may point at any OpenAI-compatible API.
func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration) *OpenAIClient {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIClient{client: goopenai.NewClientWithConfig(cfg)}
}

// Complete implements assistant.Completer, returning every choice in order.
func (c *OpenAIClient) Complete(ctx context.Context, modelName string, messages []assistant.Message) ([]string, error) {
	req := goopenai.ChatCompletionRequest{
		Model:    modelName,
		Messages: make([]goopenai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		req.Messages = append(req.Messages, goopenai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}

	candidates := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		candidates = append(candidates, choice.Message.Content)
	}

	log.Debugf("[ai] openai completion model=%s, choices=%d, tokens=%d", modelName, len(candidates), resp.Usage.TotalTokens)
	return candidates, nil
}
