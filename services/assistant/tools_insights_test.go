package assistant

import (
	"context"
	"testing"
	"time"

	"harborview/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchKnowledgeBase(t *testing.T) {
	insights := &fakeInsightRepo{hits: []models.Insight{
		{
			ID:         "i1",
			Category:   "guests",
			Content:    "Ana Silva prefers high floors.",
			Tags:       []string{"vip", "preferences"},
			Importance: 4,
			CreatedAt:  time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC),
		},
	}}
	ts := newTestToolset(t, nil, insights, nil)

	result := ts.ExecuteToolCall(context.Background(), "search_knowledge_base", map[string]any{
		"query": "ana",
	})

	require.NotContains(t, result, "error")
	assert.Equal(t, 1, result["count"])
	found, ok := result["insights"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, found, 1)
	assert.Equal(t, "i1", found[0]["id"])
	assert.Equal(t, 4, found[0]["importance"])
}

func TestSearchKnowledgeBaseRequiresQuery(t *testing.T) {
	ts := newTestToolset(t, nil, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "search_knowledge_base", map[string]any{})

	require.Contains(t, result, "error")
	assert.Equal(t, "missing required argument: query", result["error"])
}

func TestSaveInsightAppliesDefaults(t *testing.T) {
	insights := &fakeInsightRepo{}
	ts := newTestToolset(t, nil, insights, nil)

	result := ts.ExecuteToolCall(context.Background(), "save_insight", map[string]any{
		"category": "revenue",
		"content":  "Weekend rates underperform in June.",
	})

	require.NotContains(t, result, "error")
	assert.Equal(t, true, result["success"])
	require.Len(t, insights.saved, 1)

	saved := insights.saved[0]
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, result["id"], saved.ID)
	assert.Equal(t, "revenue", saved.Category)
	assert.Equal(t, 1, saved.Importance)
	assert.Nil(t, saved.Tags)
	assert.Equal(t, testNow, saved.CreatedAt)
}

func TestSaveInsightKeepsTagsAndImportance(t *testing.T) {
	insights := &fakeInsightRepo{}
	ts := newTestToolset(t, nil, insights, nil)

	result := ts.ExecuteToolCall(context.Background(), "save_insight", map[string]any{
		"category":   "operations",
		"content":    "Housekeeping is short-staffed on Sundays.",
		"tags":       []any{"staffing", "housekeeping"},
		"importance": float64(5),
	})

	require.NotContains(t, result, "error")
	require.Len(t, insights.saved, 1)
	assert.Equal(t, []string{"staffing", "housekeeping"}, insights.saved[0].Tags)
	assert.Equal(t, 5, insights.saved[0].Importance)
}
