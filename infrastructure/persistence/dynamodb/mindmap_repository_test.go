package dynamodb

import (
	"testing"
	"time"

	"mindmap-backend/domain/mindmap"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyLayout(t *testing.T) {
	assert.Equal(t, "USER#user-1", userPK("user-1"))
	assert.Equal(t, "MINDMAP#abc-123", mindmapSK("abc-123"))
}

func TestItemMapping(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	item := mindmapItem{
		PK:         userPK("user-1"),
		SK:         mindmapSK("map-1"),
		EntityType: "MINDMAP",
		MindMapID:  "map-1",
		UserID:     "user-1",
		Title:      "Water Cycle",
		SourceText: "The water cycle describes...",
		Language:   "en",
		Keywords: []mindmap.ConceptNode{
			{Text: "Evaporation", Level: 1, Children: []mindmap.ConceptNode{
				{Text: "Heat", Level: 2},
			}},
		},
		CreatedAt: created.Format(time.RFC3339),
		UpdatedAt: created.Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	require.NoError(t, err)

	m, err := unmarshalMindMap(av)
	require.NoError(t, err)

	assert.Equal(t, "map-1", m.ID)
	assert.Equal(t, "user-1", m.UserID)
	assert.Equal(t, "Water Cycle", m.Title)
	assert.Equal(t, "en", m.Language)
	assert.True(t, created.Equal(m.CreatedAt))
	require.Len(t, m.Keywords, 1)
	assert.Equal(t, "Evaporation", m.Keywords[0].Text)
	require.Len(t, m.Keywords[0].Children, 1)
	assert.Equal(t, "Heat", m.Keywords[0].Children[0].Text)
}

func TestItemMapping_MissingKeywords(t *testing.T) {
	item := mindmapItem{
		PK:        userPK("user-1"),
		SK:        mindmapSK("map-1"),
		MindMapID: "map-1",
		UserID:    "user-1",
		Title:     "Empty",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	require.NoError(t, err)

	m, err := unmarshalMindMap(av)
	require.NoError(t, err)

	assert.NotNil(t, m.Keywords)
	assert.Empty(t, m.Keywords)
}
