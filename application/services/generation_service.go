package services

import (
	"context"
	"strings"

	"mindmap-backend/application/ports"
	"mindmap-backend/domain/mindmap"
	"mindmap-backend/infrastructure/llm"
	"mindmap-backend/pkg/errors"

	"go.uber.org/zap"
)

// DefaultLanguage is used when the request carries no language hint.
const DefaultLanguage = "en"

// GenerationRequest is the input to one generation.
type GenerationRequest struct {
	Text     string
	Language string
}

// GenerationService turns free-form text into a validated concept hierarchy.
// Stateless: every call is an independent gateway request with no cache and
// no shared state, so repeated identical inputs are independent model calls.
type GenerationService struct {
	gateway ports.ModelGateway
	logger  *zap.Logger
}

// NewGenerationService creates a new generation service.
func NewGenerationService(gateway ports.ModelGateway, logger *zap.Logger) *GenerationService {
	return &GenerationService{
		gateway: gateway,
		logger:  logger,
	}
}

// Generate runs the pipeline: validate input, build the prompt, call the
// gateway, extract the candidate, validate the schema. Each stage's error
// kind is preserved so callers can choose user-facing behavior per kind;
// nothing here retries.
func (s *GenerationService) Generate(ctx context.Context, req GenerationRequest) (*mindmap.Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, errors.NewInvalidInputError("Text is required")
	}

	language := req.Language
	if language == "" {
		language = DefaultLanguage
	}

	s.logger.Info("Generating mind map",
		zap.Int("textLength", len(req.Text)),
		zap.String("language", language),
	)

	system, user := BuildPrompt(req.Text, language)

	envelope, err := s.gateway.Complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	candidate, err := llm.ExtractCandidate(envelope)
	if err != nil {
		return nil, err
	}

	result, err := mindmap.Validate(candidate)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Generated mind map",
		zap.String("title", result.Title),
		zap.Int("concepts", len(result.Keywords)),
	)

	return result, nil
}
