package llm

import (
	"context"

	"mindmap-backend/application/ports"
)

// MockGateway is a canned ModelGateway for tests and local development.
type MockGateway struct {
	Content string
	Err     error

	Calls      int
	LastSystem string
	LastUser   string
}

// NewMockGateway returns a gateway that always replies with content.
func NewMockGateway(content string) *MockGateway {
	return &MockGateway{Content: content}
}

// Complete returns the canned reply, recording the call so tests can assert
// whether the gateway was reached at all.
func (m *MockGateway) Complete(ctx context.Context, systemInstruction, userMessage string) (*ports.ChatCompletion, error) {
	m.Calls++
	m.LastSystem = systemInstruction
	m.LastUser = userMessage
	if m.Err != nil {
		return nil, m.Err
	}
	return &ports.ChatCompletion{
		Choices: []ports.ChatChoice{
			{Message: ports.ChatMessage{Role: "assistant", Content: m.Content}},
		},
	}, nil
}
