package ai

import (
	"context"
	"fmt"
	"strings"

	"yt-summarizer/internal/models"

	"google.golang.org/genai"
)

// Searcher is a web search backend.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// WebSearchTool exposes a Searcher to the model as "<name>_search".
type WebSearchTool struct {
	searcher Searcher
}

func NewWebSearchTool(searcher Searcher) *WebSearchTool {
	return &WebSearchTool{searcher: searcher}
}

func (w *WebSearchTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        w.searcher.Name() + "_search",
		Description: "Search the web for up-to-date information and return the top results (title, url, snippet).",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"query": {
					Type:        genai.TypeString,
					Description: "The search query.",
				},
			},
			Required: []string{"query"},
		},
	}
}

func (w *WebSearchTool) Call(ctx context.Context, args map[string]any) (map[string]any, error) {
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query argument is required")
	}

	results, err := w.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	items := make([]any, 0, len(results))
	for _, r := range results {
		items = append(items, map[string]any{
			"title":   r.Title,
			"url":     r.URL,
			"snippet": r.Snippet,
		})
	}
	return map[string]any{"results": items}, nil
}
