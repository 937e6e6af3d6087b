package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return srv
}

func replyWith(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	})
}

func TestExplainTaskUsesServiceReply(t *testing.T) {
	srv := completionServer(t, replyWith("This task sets up the database schema."))

	c := newTestClient(srv.URL)
	got, live := c.ExplainTask(context.Background(), TaskInfo{Description: "Set up schema", Priority: "High"})

	assert.True(t, live)
	assert.Equal(t, "This task sets up the database schema.", got)
}

func TestExplainTaskFallsBackOnServerError(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := newTestClient(srv.URL)
	got, live := c.ExplainTask(context.Background(), TaskInfo{Description: "Set up schema", Priority: "High"})

	assert.False(t, live)
	require.NotEmpty(t, got)
	assert.Contains(t, got, "Set up schema")
	assert.Contains(t, got, "High")
}

func TestExplainTaskFallsBackOnTimeout(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		replyWith("too late")(w, nil)
	})

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	got, live := c.ExplainTask(context.Background(), TaskInfo{Description: "Slow task", Priority: "Low"})

	assert.False(t, live)
	assert.Contains(t, got, "Slow task")
}

func TestExplainTaskFallsBackWithoutAPIKey(t *testing.T) {
	srv := completionServer(t, func(http.ResponseWriter, *http.Request) {
		t.Error("a disabled client must not call the service")
	})

	c := NewClient(Config{BaseURL: srv.URL})
	got, live := c.ExplainTask(context.Background(), TaskInfo{Description: "Offline task", Priority: "Medium"})

	assert.False(t, live)
	assert.Contains(t, got, "Offline task")
}

func TestSuggestTasksParsesStructuredReply(t *testing.T) {
	srv := completionServer(t, replyWith(`{"tasks": ["one", "two", "three"]}`))

	c := newTestClient(srv.URL)
	got := c.SuggestTasks(context.Background(), "build a web shop")

	assert.Equal(t, []string{"one", "two", "three"}, got)
}

func TestSuggestTasksFallsBackOnMalformedReply(t *testing.T) {
	srv := completionServer(t, replyWith("sure! here are some tasks:"))

	c := newTestClient(srv.URL)
	got := c.SuggestTasks(context.Background(), "build a web shop")

	assert.Len(t, got, 6)
	assert.Equal(t, fallbackTaskPlan(), got)
}

func TestSuggestSubtasksFallsBackOnEmptyList(t *testing.T) {
	srv := completionServer(t, replyWith(`{"subtasks": []}`))

	c := newTestClient(srv.URL)
	got := c.SuggestSubtasks(context.Background(), TaskInfo{Description: "refactor", Priority: "Low"})

	assert.Len(t, got, 5)
	assert.Equal(t, fallbackSubtaskPlan(), got)
}

func TestChatFallsBackOnTransportError(t *testing.T) {
	srv := httptest.NewServer(replyWith("hi"))
	srv.Close() // connection refused from here on

	c := newTestClient(srv.URL)
	got := c.Chat(context.Background(), "what next?")

	assert.Equal(t, fallbackChat(), got)
}

func TestParseList(t *testing.T) {
	var tests = []struct {
		name     string
		reply    string
		key      string
		expected []string
	}{
		{"plain json", `{"tasks": ["a", "b"]}`, "tasks", []string{"a", "b"}},
		{"fenced json", "```json\n{\"subtasks\": [\"x\"]}\n```", "subtasks", []string{"x"}},
		{"blank entries dropped", `{"tasks": ["a", "  ", "b"]}`, "tasks", []string{"a", "b"}},
		{"wrong key", `{"tasks": ["a"]}`, "subtasks", []string{}},
		{"not json", "no structure here", "tasks", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := parseList(test.reply, test.key)
			if len(test.expected) == 0 {
				assert.Empty(t, got)

				return
			}
			assert.Equal(t, test.expected, got)
		})
	}
}
