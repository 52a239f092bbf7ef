package mindmap

import "time"

// Result is the generation output: a title plus the ordered level-1 concepts.
// Once returned for a request it is never mutated; Keywords is never nil.
type Result struct {
	Title    string        `json:"title"`
	Keywords []ConceptNode `json:"keywords"`
}

// MindMap is a persisted, user-owned mind map. Write-once: saved maps are
// inserted and deleted, never updated in place.
type MindMap struct {
	ID         string        `json:"id"`
	UserID     string        `json:"-"`
	Title      string        `json:"title"`
	SourceText string        `json:"sourceText"`
	Language   string        `json:"language"`
	Keywords   []ConceptNode `json:"keywords"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// NewMindMap builds the persisted form of a generation result for a user.
func NewMindMap(id, userID, sourceText, language string, result *Result, now time.Time) *MindMap {
	keywords := result.Keywords
	if keywords == nil {
		keywords = []ConceptNode{}
	}
	return &MindMap{
		ID:         id,
		UserID:     userID,
		Title:      result.Title,
		SourceText: sourceText,
		Language:   language,
		Keywords:   keywords,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
