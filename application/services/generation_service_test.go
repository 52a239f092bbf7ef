package services

import (
	"context"
	"encoding/json"
	"testing"

	"mindmap-backend/infrastructure/llm"
	"mindmap-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerationService_Generate_Success(t *testing.T) {
	// Arrange
	gateway := llm.NewMockGateway("```json\n" + `{
		"title": "Photosynthesis Overview",
		"keywords": [
			{"text": "Light Reactions", "level": 1, "children": [
				{"text": "Chlorophyll", "level": 2}
			]},
			{"text": "Calvin Cycle", "level": 1, "children": []}
		]
	}` + "\n```")
	svc := NewGenerationService(gateway, zap.NewNop())

	// Act
	result, err := svc.Generate(context.Background(), GenerationRequest{
		Text: "Photosynthesis is the process by which plants convert light...",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis Overview", result.Title)
	require.Len(t, result.Keywords, 2)
	assert.Equal(t, "Light Reactions", result.Keywords[0].Text)
	assert.Equal(t, 1, gateway.Calls)
}

func TestGenerationService_Generate_EmptyText(t *testing.T) {
	gateway := llm.NewMockGateway(`{"title": "T", "keywords": []}`)
	svc := NewGenerationService(gateway, zap.NewNop())

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.Generate(context.Background(), GenerationRequest{Text: text})

		assert.True(t, errors.IsInvalidInput(err), "text %q", text)
	}

	assert.Equal(t, 0, gateway.Calls, "empty input must not reach the gateway")
}

func TestGenerationService_Generate_DefaultLanguage(t *testing.T) {
	gateway := llm.NewMockGateway(`{"title": "T", "keywords": []}`)
	svc := NewGenerationService(gateway, zap.NewNop())

	_, err := svc.Generate(context.Background(), GenerationRequest{Text: "some text"})

	require.NoError(t, err)
	assert.Contains(t, gateway.LastUser, "Language: en\n")
}

func TestGenerationService_Generate_ExplicitLanguage(t *testing.T) {
	gateway := llm.NewMockGateway(`{"title": "T", "keywords": []}`)
	svc := NewGenerationService(gateway, zap.NewNop())

	_, err := svc.Generate(context.Background(), GenerationRequest{Text: "texto", Language: "es"})

	require.NoError(t, err)
	assert.Contains(t, gateway.LastUser, "Language: es\n")
}

func TestGenerationService_Generate_GatewayErrorPropagates(t *testing.T) {
	gateway := llm.NewMockGateway("")
	gateway.Err = errors.NewRateLimitedError()
	svc := NewGenerationService(gateway, zap.NewNop())

	_, err := svc.Generate(context.Background(), GenerationRequest{Text: "some text"})

	assert.True(t, errors.IsRateLimited(err), "error kind must survive the pipeline")
}

func TestGenerationService_Generate_MalformedOutput(t *testing.T) {
	gateway := llm.NewMockGateway("Sorry, I cannot help with that.")
	svc := NewGenerationService(gateway, zap.NewNop())

	_, err := svc.Generate(context.Background(), GenerationRequest{Text: "some text"})

	assert.True(t, errors.IsType(err, errors.ErrorTypeMalformedOutput))
}

func TestGenerationService_Generate_SchemaFailure(t *testing.T) {
	gateway := llm.NewMockGateway(`{"keywords": []}`)
	svc := NewGenerationService(gateway, zap.NewNop())

	_, err := svc.Generate(context.Background(), GenerationRequest{Text: "some text"})

	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestGenerationService_Generate_RepeatedCallsAreIndependent(t *testing.T) {
	gateway := llm.NewMockGateway(`{"title": "T", "keywords": []}`)
	svc := NewGenerationService(gateway, zap.NewNop())

	req := GenerationRequest{Text: "identical input"}
	_, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, gateway.Calls, "no caching between identical requests")
}

func TestGenerationService_Generate_ResultSerializesFlat(t *testing.T) {
	gateway := llm.NewMockGateway(`{"title": "T", "keywords": [{"text": "A", "level": 1}]}`)
	svc := NewGenerationService(gateway, zap.NewNop())

	result, err := svc.Generate(context.Background(), GenerationRequest{Text: "some text"})
	require.NoError(t, err)

	out, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "T", "keywords": [{"text": "A", "level": 1}]}`, string(out))
}
