// Package ai is the augmentation adapter: a bounded-timeout client for
// a generative text-completion service with deterministic fallbacks.
// Nothing in this package ever returns an error to its callers — any
// transport, auth or parse failure resolves to canned text.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"intertask/internal/logging"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "models/gemini-2.5-flash"
	defaultTimeout = 10 * time.Second
)

var errDisabled = errors.New("completion service disabled: no api key")

// TaskInfo carries the task fields the prompts embed.
type TaskInfo struct {
	Description string
	Priority    string
	Status      string
	Subtasks    []string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client talks to a Gemini-style generateContent endpoint. All calls
// pass through a circuit breaker so repeated failures short-circuit
// straight to the fallback path.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	apiKey  string
	model   string
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		http:   resty.New().SetBaseURL(cfg.BaseURL).SetTimeout(cfg.Timeout),
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "completion-service",
			Timeout: 30 * time.Second,
		}),
	}
}

// --- wire types ---

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateReply struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (r generateReply) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}

	return strings.TrimSpace(b.String())
}

// generate performs one completion call through the breaker.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errDisabled
	}

	out, err := c.breaker.Execute(func() (any, error) {
		var reply generateReply
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("key", c.apiKey).
			SetBody(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}).
			SetResult(&reply).
			Post(fmt.Sprintf("/v1beta/%s:generateContent", c.model))
		if err != nil {
			return nil, err
		}
		if !resp.IsSuccess() {
			return nil, fmt.Errorf("completion service answered %d", resp.StatusCode())
		}

		text := reply.text()
		if text == "" {
			return nil, errors.New("empty completion")
		}

		return text, nil
	})
	if err != nil {
		return "", err
	}

	return out.(string), nil
}

// ExplainTask returns a short natural-language explanation of the task.
// The second return is false when the templated fallback sentence was
// used; callers must not cache that text as if the service produced it.
func (c *Client) ExplainTask(ctx context.Context, t TaskInfo) (string, bool) {
	text, err := c.generate(ctx, explainPrompt(t))
	if err != nil {
		logging.Logger.Infof("explanation fell back to template: %v", err)

		return fallbackExplain(t), false
	}

	return text, true
}

// SuggestTasks asks for a six-item task breakdown of a project
// description, falling back to the generic plan.
func (c *Client) SuggestTasks(ctx context.Context, projectDescription string) []string {
	reply, err := c.generate(ctx, suggestTasksPrompt(projectDescription))
	if err == nil {
		if list := parseList(reply, "tasks"); len(list) > 0 {
			return list
		}
		logging.Logger.Infof("task suggestions fell back: unparseable reply")
	} else {
		logging.Logger.Infof("task suggestions fell back: %v", err)
	}

	return fallbackTaskPlan()
}

// SuggestSubtasks asks for a five-item subtask breakdown of a task,
// falling back to the generic steps.
func (c *Client) SuggestSubtasks(ctx context.Context, t TaskInfo) []string {
	reply, err := c.generate(ctx, suggestSubtasksPrompt(t))
	if err == nil {
		if list := parseList(reply, "subtasks"); len(list) > 0 {
			return list
		}
		logging.Logger.Infof("subtask suggestions fell back: unparseable reply")
	} else {
		logging.Logger.Infof("subtask suggestions fell back: %v", err)
	}

	return fallbackSubtaskPlan()
}

// Chat answers a free-form question, or the static guidance sentence.
func (c *Client) Chat(ctx context.Context, message string) string {
	text, err := c.generate(ctx, chatPrompt(message))
	if err != nil {
		logging.Logger.Infof("chat fell back to static reply: %v", err)

		return fallbackChat()
	}

	return text
}
