package llm

import (
	"encoding/json"
	"strings"

	"mindmap-backend/application/ports"
	"mindmap-backend/domain/mindmap"
	"mindmap-backend/pkg/errors"
)

// ExtractCandidate pulls the assistant reply out of the provider envelope and
// parses it into a mindmap candidate.
//
// Responsibility stops at structural parseability: fence stripping and JSON
// decoding. Whether the candidate actually holds a usable hierarchy is the
// schema validator's call, so extraction and validation stay independently
// testable.
func ExtractCandidate(envelope *ports.ChatCompletion) (*mindmap.Candidate, error) {
	if envelope == nil || len(envelope.Choices) == 0 {
		return nil, errors.NewEmptyCompletionError()
	}

	content := envelope.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return nil, errors.NewEmptyCompletionError()
	}

	stripped := StripFence(content)

	var candidate mindmap.Candidate
	if err := json.Unmarshal([]byte(stripped), &candidate); err != nil {
		return nil, errors.NewMalformedOutputError(content, err)
	}

	return &candidate, nil
}
