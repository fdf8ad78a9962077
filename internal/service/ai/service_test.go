package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chasingbytes/resume/backend/internal/config"
	"github.com/chasingbytes/resume/backend/internal/service/assistant"
)

type fakeChatModel struct {
	reply     string
	err       error
	input     []*schema.Message
	modelName string
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.input = input
	if common := model.GetCommonOptions(&model.Options{}, opts...); common.Model != nil {
		f.modelName = *common.Model
	}
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (f *fakeChatModel) BindTools([]*schema.ToolInfo) error {
	return nil
}

func TestServiceCompleteSendsMessagesInOrder(t *testing.T) {
	fake := &fakeChatModel{reply: "Python, SQL, machine learning."}
	svc, err := NewService(context.Background(), fake)
	require.NoError(t, err)

	candidates, err := svc.Complete(context.Background(), "ep-test", []assistant.Message{
		{Role: assistant.RoleSystem, Content: "persona {with braces}"},
		{Role: assistant.RoleUser, Content: "What are your top skills?"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Python, SQL, machine learning."}, candidates)

	require.Len(t, fake.input, 2)
	assert.Equal(t, schema.System, fake.input[0].Role)
	assert.Equal(t, "persona {with braces}", fake.input[0].Content)
	assert.Equal(t, schema.User, fake.input[1].Role)
	assert.Equal(t, "What are your top skills?", fake.input[1].Content)
	assert.Equal(t, "ep-test", fake.modelName)
}

func TestServiceCompleteWrapsModelError(t *testing.T) {
	cause := errors.New("quota exceeded")
	svc, err := NewService(context.Background(), &fakeChatModel{err: cause})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), "", []assistant.Message{{Role: assistant.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewServiceRequiresModel(t *testing.T) {
	_, err := NewService(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewCompleterSelectsProvider(t *testing.T) {
	completer, err := NewCompleter(context.Background(), config.AIConfig{
		Provider: config.ProviderOpenAI,
		APIKey:   "sk-test",
		Model:    "gpt-3.5-turbo",
	})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, completer)

	_, err = NewCompleter(context.Background(), config.AIConfig{Provider: "llama"})
	assert.Error(t, err)
}
