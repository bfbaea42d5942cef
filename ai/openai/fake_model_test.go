package openai

import (
	"context"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// fakeModel replays canned answers and records the prompts it received.
type fakeModel struct {
	mu       sync.Mutex
	answers  []string
	err      error
	calls    int
	messages [][]llms.MessageContent
	options  llms.CallOptions
}

var _ llms.Model = (*fakeModel)(nil)

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, opt := range options {
		opt(&f.options)
	}
	f.messages = append(f.messages, messages)
	call := f.calls
	f.calls++

	if f.err != nil {
		return nil, f.err
	}
	if len(f.answers) == 0 {
		return &llms.ContentResponse{}, nil
	}
	answer := f.answers[min(call, len(f.answers)-1)]
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: answer}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

// lastPrompt returns the text of the last message sent to the model.
func (f *fakeModel) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		return ""
	}
	last := f.messages[len(f.messages)-1]
	msg := last[len(last)-1]
	if text, ok := msg.Parts[0].(llms.TextContent); ok {
		return text.Text
	}
	return ""
}
