package llm

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/NikhilCode12/jira-team-bot/config"
	"github.com/NikhilCode12/jira-team-bot/internal/model"
)

const completionTimeout = 60 * time.Second

// GroqProvider talks to Groq's OpenAI-compatible chat completions endpoint.
type GroqProvider struct {
	client *resty.Client
	config config.LLMConfig
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

var (
	summaryMarker  = regexp.MustCompile(`(?is)summary:\s*(.+)`)
	descMarker     = regexp.MustCompile(`(?is)description\s*:\s*(.+)`)
	descMarkerLine = regexp.MustCompile(`(?i)\ndescription\s*:`)
)

func NewGroqProvider(cfg config.LLMConfig) *GroqProvider {
	return &GroqProvider{
		client: resty.New(),
		config: cfg,
	}
}

func (p *GroqProvider) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if p.config.APIKey == "" {
		return "", &model.ConfigurationError{
			Reason: "GROQ_API_KEY is not set. Get a free key at https://console.groq.com",
		}
	}

	reqBody := chatRequest{
		Model:       p.config.ModelName,
		Messages:    []Message{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	var respBody chatResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+p.config.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		SetResult(&respBody).
		Post(p.config.APIURL + "/openai/v1/chat/completions")

	if err != nil {
		return "", err
	}

	if resp.IsError() {
		return "", &model.UpstreamError{
			Service:    "groq",
			StatusCode: resp.StatusCode(),
			Detail:     resp.String(),
		}
	}

	if len(respBody.Choices) == 0 {
		return "", nil
	}
	return respBody.Choices[0].Message.Content, nil
}

// Summarize produces a single-line issue title from the feedback. If the
// completion carries no SUMMARY: marker, the first line of the feedback
// itself is used instead.
func (p *GroqProvider) Summarize(ctx context.Context, feedback string) (string, error) {
	prompt := summaryOnlyPrompt + "\n\nFEEDBACK:\n" + feedback

	text, err := p.complete(ctx, prompt, 150)
	if err != nil {
		return "", err
	}

	if m := summaryMarker.FindStringSubmatch(text); m != nil {
		summary := truncate(collapseSpace(m[1]), 255)
		if summary != "" {
			return summary, nil
		}
		return "Bug", nil
	}

	fallback := strings.TrimSpace(truncate(feedback, 200))
	if fallback == "" {
		fallback = "Bug"
	}
	return truncate(firstLine(fallback), 255), nil
}

// SummarizeWithDescription asks for both a title and a structured description
// (the richer prompt). Missing markers fall back to the raw feedback.
func (p *GroqProvider) SummarizeWithDescription(ctx context.Context, feedback string) (string, string, error) {
	prompt := feedbackToJiraPrompt + "\n\nFEEDBACK:\n" + feedback

	text, err := p.complete(ctx, prompt, 1024)
	if err != nil {
		return "", "", err
	}

	var summary, description string

	if m := summaryMarker.FindStringSubmatch(text); m != nil {
		value := m[1]
		// Summary runs until the DESCRIPTION: marker, first line only.
		if loc := descMarkerLine.FindStringIndex(value); loc != nil {
			value = value[:loc[0]]
		}
		summary = truncate(firstLine(strings.TrimSpace(value)), 255)
	}
	if m := descMarker.FindStringSubmatch(text); m != nil {
		description = truncate(strings.TrimSpace(m[1]), 65000)
	}

	if summary == "" {
		summary = strings.TrimSpace(truncate(feedback, 200))
		if summary == "" {
			summary = "Feedback"
		}
	}
	if description == "" {
		description = truncate(feedback, 65000)
	}

	return summary, description, nil
}

// truncate caps s at n runes, never splitting a multibyte character.
func truncate(s string, n int) string {
	if runes := []rune(s); len(runes) > n {
		return string(runes[:n])
	}
	return s
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
