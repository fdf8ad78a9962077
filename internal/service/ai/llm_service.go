package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	log "github.com/sirupsen/logrus"

	"github.com/chasingbytes/resume/backend/internal/service/assistant"
)

// Service runs completion requests through an eino chain backed by a chat model.
type Service struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the prompt chain around chatModel.
func NewService(ctx context.Context, chatModel model.ChatModel) (*Service, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("messages", false),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chain: runnable}, nil
}

// Complete implements assistant.Completer. The chat model yields a single candidate.
func (s *Service) Complete(ctx context.Context, modelName string, messages []assistant.Message) ([]string, error) {
	input := map[string]any{
		"messages": toSchemaMessages(messages),
	}

	var opts []compose.Option
	if modelName != "" {
		opts = append(opts, compose.WithChatModelOption(model.WithModel(modelName)))
	}

	response, err := s.chain.Invoke(ctx, input, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to run AI chain: %w", err)
	}
	if response == nil {
		return nil, nil
	}

	log.Debugf("[ai] ark completion model=%s, length=%d", modelName, len(response.Content))
	return []string{response.Content}, nil
}

func toSchemaMessages(messages []assistant.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case assistant.RoleSystem:
			out = append(out, schema.SystemMessage(msg.Content))
		case assistant.RoleUser:
			out = append(out, schema.UserMessage(msg.Content))
		default:
			out = append(out, &schema.Message{Role: schema.RoleType(msg.Role), Content: msg.Content})
		}
	}
	return out
}
