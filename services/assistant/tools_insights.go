package assistant

import (
	"context"
	"time"

	"harborview/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
)

const knowledgeSearchLimit = 5

func (t *Toolset) insightTools() []Tool {
	return []Tool{
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "search_knowledge_base",
				Description: "Search previously saved insights by content or tag, most important first.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query":    {Type: genai.TypeString, Description: "Search query"},
						"category": {Type: genai.TypeString, Description: "Optional category filter"},
					},
					Required: []string{"query"},
				},
			},
			Run: t.searchKnowledgeBase,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "save_insight",
				Description: "Save an insight to the assistant's long-term knowledge base.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category":   {Type: genai.TypeString, Description: "Insight category, e.g. guests, revenue, operations"},
						"content":    {Type: genai.TypeString, Description: "The insight text"},
						"tags":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Relevance tags"},
						"importance": {Type: genai.TypeInteger, Description: "Ranking weight, higher is more important"},
					},
					Required: []string{"category", "content"},
				},
			},
			Run: t.saveInsight,
		},
	}
}

func (t *Toolset) searchKnowledgeBase(ctx context.Context, args map[string]any) (map[string]any, error) {
	query, err := requireString(args, "query")
	if err != nil {
		return nil, err
	}
	category := argString(args, "category", "")

	found, err := t.insights.Search(ctx, query, category, knowledgeSearchLimit)
	if err != nil {
		return nil, err
	}

	insights := make([]map[string]any, 0, len(found))
	for _, ins := range found {
		insights = append(insights, map[string]any{
			"id":         ins.ID,
			"category":   ins.Category,
			"content":    ins.Content,
			"tags":       ins.Tags,
			"importance": ins.Importance,
			"createdAt":  ins.CreatedAt.Format(time.RFC3339),
		})
	}
	return map[string]any{
		"query":    query,
		"count":    len(insights),
		"insights": insights,
	}, nil
}

func (t *Toolset) saveInsight(ctx context.Context, args map[string]any) (map[string]any, error) {
	category, err := requireString(args, "category")
	if err != nil {
		return nil, err
	}
	content, err := requireString(args, "content")
	if err != nil {
		return nil, err
	}

	insight := &models.Insight{
		ID:         uuid.NewString(),
		Category:   category,
		Content:    content,
		Tags:       argStrings(args, "tags"),
		Importance: argInt(args, "importance", 1),
		CreatedAt:  t.now(),
	}
	if err := t.insights.Save(ctx, insight); err != nil {
		return nil, err
	}

	return map[string]any{
		"success": true,
		"id":      insight.ID,
		"message": "Insight saved to the knowledge base.",
	}, nil
}
