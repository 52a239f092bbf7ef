package mindmap

import (
	"encoding/json"
	"strings"

	"mindmap-backend/pkg/errors"
)

// Validate repairs a parsed candidate into a Result or rejects it.
//
// The request fails only on defects that cannot be repaired: a missing or
// blank title, or a keywords field that is not a list at all. Individual
// concepts or children with blank text are dropped; a partial well-formed
// result beats a total failure when the model produces some garbage entries.
//
// Levels are always recomputed from structural depth. The model is unreliable
// about numeric fields, so whatever it put in `level` is ignored: top-level
// concepts become level 1, their children level 2, and anything nested deeper
// is cut.
func Validate(candidate *Candidate) (*Result, error) {
	title := strings.TrimSpace(candidate.Title)
	if title == "" {
		return nil, errors.NewValidationError("model output has no title")
	}

	raw := candidate.Keywords
	if len(raw) == 0 || string(raw) == "null" {
		return nil, errors.NewValidationError("model output has no keywords list")
	}

	var nodes []CandidateNode
	if err := json.Unmarshal(raw, &nodes); err != nil {
		return nil, errors.NewValidationError("model output keywords is not a list").WithCause(err)
	}

	keywords := make([]ConceptNode, 0, len(nodes))
	for _, n := range nodes {
		text := strings.TrimSpace(n.Text)
		if text == "" {
			continue
		}

		children := make([]ConceptNode, 0, len(n.Children))
		for _, c := range n.Children {
			childText := strings.TrimSpace(c.Text)
			if childText == "" {
				continue
			}
			children = append(children, ConceptNode{
				Text:  childText,
				Level: LevelSubConcept,
			})
		}
		if len(children) == 0 {
			children = nil
		}

		keywords = append(keywords, ConceptNode{
			Text:     text,
			Level:    LevelConcept,
			Children: children,
		})
	}

	return &Result{Title: title, Keywords: keywords}, nil
}
