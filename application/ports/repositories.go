package ports

import (
	"context"

	"mindmap-backend/domain/mindmap"
)

// MindMapRepository defines the interface for mind map persistence.
// This is a port in hexagonal architecture - the application doesn't know
// about the implementation.
type MindMapRepository interface {
	// Save persists a mind map (insert only; maps are write-once)
	Save(ctx context.Context, m *mindmap.MindMap) error

	// GetByID retrieves a mind map by id, scoped to its owner
	GetByID(ctx context.Context, userID, id string) (*mindmap.MindMap, error)

	// ListByUser retrieves all mind maps for a user, newest first
	ListByUser(ctx context.Context, userID string) ([]*mindmap.MindMap, error)

	// Delete removes a mind map, scoped to its owner
	Delete(ctx context.Context, userID, id string) error
}
