package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikhilCode12/jira-team-bot/config"
	"github.com/NikhilCode12/jira-team-bot/internal/model"
)

func completionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"role": "assistant", "content": content}},
				},
			})
		} else {
			w.Write([]byte(`{"error":{"message":"rate limit"}}`))
		}
	}))
}

func provider(url string) *GroqProvider {
	return NewGroqProvider(config.LLMConfig{
		APIKey:    "test-key",
		APIURL:    url,
		ModelName: "llama-3.1-8b-instant",
	})
}

func TestSummarizeParsesMarker(t *testing.T) {
	srv := completionServer(t, http.StatusOK, "SUMMARY: Login button unresponsive on dashboard")
	defer srv.Close()

	summary, err := provider(srv.URL).Summarize(context.Background(), "the login button does nothing")
	require.NoError(t, err)
	assert.Equal(t, "Login button unresponsive on dashboard", summary)
}

func TestSummarizeCollapsesAndTruncates(t *testing.T) {
	long := "SUMMARY: " + strings.Repeat("word ", 100)
	srv := completionServer(t, http.StatusOK, long)
	defer srv.Close()

	summary, err := provider(srv.URL).Summarize(context.Background(), "feedback")
	require.NoError(t, err)
	assert.Len(t, summary, 255)
	assert.NotContains(t, summary, "\n")
}

func TestSummarizeTruncatesOnRuneBoundary(t *testing.T) {
	srv := completionServer(t, http.StatusOK, "SUMMARY: "+strings.Repeat("é", 300))
	defer srv.Close()

	summary, err := provider(srv.URL).Summarize(context.Background(), "feedback")
	require.NoError(t, err)
	assert.Equal(t, 255, utf8.RuneCountInString(summary))
	assert.True(t, utf8.ValidString(summary))
}

func TestSummarizeFallbackWithoutMarker(t *testing.T) {
	srv := completionServer(t, http.StatusOK, "I could not follow the requested format.")
	defer srv.Close()

	summary, err := provider(srv.URL).Summarize(context.Background(), "first line of feedback\nsecond line")
	require.NoError(t, err)
	assert.Equal(t, "first line of feedback", summary)
}

func TestSummarizeFallbackEmptyFeedback(t *testing.T) {
	srv := completionServer(t, http.StatusOK, "no marker here")
	defer srv.Close()

	summary, err := provider(srv.URL).Summarize(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, "Bug", summary)
}

func TestSummarizeMissingAPIKey(t *testing.T) {
	p := NewGroqProvider(config.LLMConfig{APIURL: "http://localhost:1", ModelName: "m"})

	_, err := p.Summarize(context.Background(), "feedback")
	var confErr *model.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, confErr.Reason, "GROQ_API_KEY")
}

func TestSummarizeUpstreamFailure(t *testing.T) {
	srv := completionServer(t, http.StatusTooManyRequests, "")
	defer srv.Close()

	_, err := provider(srv.URL).Summarize(context.Background(), "feedback")
	var upErr *model.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "groq", upErr.Service)
	assert.Equal(t, http.StatusTooManyRequests, upErr.StatusCode)
}

func TestSummarizeWithDescriptionParsesBothMarkers(t *testing.T) {
	content := "SUMMARY: Salary auto-setting bug\nDESCRIPTION:\nKey details\nDescription: salary resets on save\n\nIssue 1: Salary reset"
	srv := completionServer(t, http.StatusOK, content)
	defer srv.Close()

	summary, description, err := provider(srv.URL).SummarizeWithDescription(context.Background(), "feedback")
	require.NoError(t, err)
	assert.Equal(t, "Salary auto-setting bug", summary)
	assert.True(t, strings.HasPrefix(description, "Key details"))
	assert.Contains(t, description, "Issue 1: Salary reset")
}

func TestSummarizeWithDescriptionFallbacks(t *testing.T) {
	srv := completionServer(t, http.StatusOK, "freeform reply with no markers at all")
	defer srv.Close()

	feedback := "raw feedback text"
	summary, description, err := provider(srv.URL).SummarizeWithDescription(context.Background(), feedback)
	require.NoError(t, err)
	assert.Equal(t, feedback, summary)
	assert.Equal(t, feedback, description)
}
