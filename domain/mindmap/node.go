// Package mindmap holds the concept-hierarchy domain model: the two-level
// tree produced per generation plus the persisted mind map entity.
package mindmap

import "encoding/json"

// Node depth in the hierarchy. The root (title) is implicit at depth 0; the
// tree below it is exactly two levels deep.
const (
	LevelConcept    = 1
	LevelSubConcept = 2
)

// ConceptNode is a node of the output hierarchy. Children keep the order the
// model produced them in; only level-1 nodes carry children.
type ConceptNode struct {
	Text     string        `json:"text"`
	Level    int           `json:"level"`
	Children []ConceptNode `json:"children,omitempty"`
}

// Candidate is the loosely-typed parse target for raw model output. Keywords
// stays raw so the validator, not the JSON decoder, decides whether a
// missing or mistyped list is a structural failure.
type Candidate struct {
	Title    string          `json:"title"`
	Keywords json.RawMessage `json:"keywords"`
}

// CandidateNode mirrors the shape the model is asked for. The level field is
// untrusted and ignored; depth is recomputed during validation.
type CandidateNode struct {
	Text     string          `json:"text"`
	Level    int             `json:"level"`
	Children []CandidateNode `json:"children"`
}
