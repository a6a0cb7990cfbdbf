package mock

import (
	"context"

	"github.com/poiesic/tenderit/ai"
)

// MockChatModel is a test double for ai.ChatModel.
// It allows custom behavior injection via function fields or a queue of
// scripted replies.
type MockChatModel struct {
	// InvokeFunc is called by Invoke if set.
	// If nil, scripted replies are consumed in order.
	InvokeFunc func(ctx context.Context, messages []ai.Message) (string, error)

	replies   []string
	callCount int
}

// NewMockChatModel creates a mock chat model.
// Note: Returns concrete type to allow test assertions.
func NewMockChatModel() *MockChatModel {
	return &MockChatModel{}
}

// QueueReply appends a scripted reply. Replies are consumed in FIFO order
// by Invoke when InvokeFunc is not set.
func (m *MockChatModel) QueueReply(reply string) *MockChatModel {
	m.replies = append(m.replies, reply)
	return m
}

// Invoke returns the next scripted reply, or an empty string when the queue
// is exhausted and no InvokeFunc is set.
func (m *MockChatModel) Invoke(ctx context.Context, messages []ai.Message) (string, error) {
	m.callCount++

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, messages)
	}

	if len(m.replies) > 0 {
		reply := m.replies[0]
		m.replies = m.replies[1:]
		return reply, nil
	}
	return "", nil
}

// CallCount returns the number of times Invoke was called.
func (m *MockChatModel) CallCount() int {
	return m.callCount
}

// Reset clears the call count, custom function, and reply queue.
func (m *MockChatModel) Reset() {
	m.callCount = 0
	m.InvokeFunc = nil
	m.replies = nil
}
