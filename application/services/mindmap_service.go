package services

import (
	"context"
	"strings"
	"time"

	"mindmap-backend/application/ports"
	"mindmap-backend/domain/mindmap"
	"mindmap-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaveMindMapRequest is the input for persisting a generated map.
type SaveMindMapRequest struct {
	Title      string
	SourceText string
	Language   string
	Keywords   []mindmap.ConceptNode
}

// MindMapService manages the saved, user-owned mind maps. The maps are
// write-once: save, list, get, delete - no update operation exists.
type MindMapService struct {
	repo   ports.MindMapRepository
	logger *zap.Logger
}

// NewMindMapService creates a new mind map service.
func NewMindMapService(repo ports.MindMapRepository, logger *zap.Logger) *MindMapService {
	return &MindMapService{
		repo:   repo,
		logger: logger,
	}
}

// Save persists a mind map for the user with a server-generated id.
func (s *MindMapService) Save(ctx context.Context, userID string, req SaveMindMapRequest) (*mindmap.MindMap, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.NewInvalidInputError("title is required")
	}

	language := req.Language
	if language == "" {
		language = DefaultLanguage
	}

	result := &mindmap.Result{Title: req.Title, Keywords: req.Keywords}
	m := mindmap.NewMindMap(uuid.New().String(), userID, req.SourceText, language, result, time.Now().UTC())

	if err := s.repo.Save(ctx, m); err != nil {
		s.logger.Error("Failed to save mind map",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Saved mind map",
		zap.String("mindmapID", m.ID),
		zap.String("userID", userID),
	)
	return m, nil
}

// List returns the user's mind maps, newest first.
func (s *MindMapService) List(ctx context.Context, userID string) ([]*mindmap.MindMap, error) {
	maps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list mind maps",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, err
	}
	return maps, nil
}

// Get returns one of the user's mind maps by id.
func (s *MindMapService) Get(ctx context.Context, userID, id string) (*mindmap.MindMap, error) {
	m, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes one of the user's mind maps.
func (s *MindMapService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		s.logger.Error("Failed to delete mind map",
			zap.String("mindmapID", id),
			zap.String("userID", userID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("Deleted mind map",
		zap.String("mindmapID", id),
		zap.String("userID", userID),
	)
	return nil
}
