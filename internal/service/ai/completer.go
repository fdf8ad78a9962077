package ai

import (
	"context"
	"fmt"

	"github.com/chasingbytes/resume/backend/internal/config"
	"github.com/chasingbytes/resume/backend/internal/service/assistant"
)

// NewCompleter builds the completion client selected by cfg.Provider.
func NewCompleter(ctx context.Context, cfg config.AIConfig) (assistant.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Timeout), nil
	case config.ProviderArk:
		chatModel, err := cfg.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		svc, err := NewService(ctx, chatModel)
		if err != nil {
			return nil, err
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}
