package llm

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider generates issue text from raw feedback.
type Provider interface {
	// Summarize produces a single-line issue title.
	Summarize(ctx context.Context, feedback string) (string, error)
	// SummarizeWithDescription produces both a title and a structured
	// multi-section description from the richer prompt template.
	SummarizeWithDescription(ctx context.Context, feedback string) (summary, description string, err error)
}
