package ports

import "context"

// ChatMessage is one message of a chat-completion exchange.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatChoice is one completion alternative in the provider envelope.
type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

// ChatCompletion is the provider response envelope, decoded at the HTTP level
// only. Extracting the assistant content out of it is the extractor's job,
// not the gateway's.
type ChatCompletion struct {
	Choices []ChatChoice `json:"choices"`
}

// ModelGateway defines the interface to the upstream chat-completion
// endpoint. One synchronous request, no internal retries: retrying a paid
// model call is a cost decision that belongs to the caller.
type ModelGateway interface {
	Complete(ctx context.Context, systemInstruction, userMessage string) (*ChatCompletion, error)
}
