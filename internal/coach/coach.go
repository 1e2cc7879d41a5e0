// Package coach calls an LLM API for a short coaching summary over the
// user's practice history. The call is best-effort enrichment: every
// failure mode collapses into a fixed fallback insight, so callers never
// see an error from this package.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"algopulse/internal/models"
)

// historyLimit caps how much problem history is sent upstream.
const historyLimit = 10

// FallbackInsight is returned whenever the upstream call fails for any
// reason: network, non-200 status, timeout, or an unparseable response.
func FallbackInsight() models.Insight {
	return models.Insight{
		Motivation: "Keep pushing, every problem is a step towards mastery!",
		FocusArea:  "General Practice",
		Rationale:  "Data analysis currently unavailable.",
		Tip:        "Focus on understanding the space and time complexity of every solution.",
	}
}

// Config configures the coach client
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client is an HTTP client for the chat-completions style coaching API
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new coach client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// request is the chat-completions request payload
type request struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// response is the chat-completions response payload
type response struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Message message `json:"message"`
}

// GetInsights analyzes the user's progress and returns a coaching summary.
// On any failure the fixed fallback insight is returned instead.
func (c *Client) GetInsights(ctx context.Context, problems []models.Problem, stats models.UserStats) models.Insight {
	content, err := c.sendRequest(ctx, buildPrompt(problems, stats))
	if err != nil {
		c.logger.Warn("coach request failed, using fallback insight", zap.Error(err))
		return FallbackInsight()
	}

	insight, err := parseInsight(content)
	if err != nil {
		c.logger.Warn("coach response unparseable, using fallback insight", zap.Error(err))
		return FallbackInsight()
	}

	return insight
}

// buildPrompt renders the analysis prompt from the stats and the most
// recent slice of the problem history.
func buildPrompt(problems []models.Problem, stats models.UserStats) string {
	recent := problems
	if len(recent) > historyLimit {
		recent = recent[:historyLimit]
	}

	history, err := json.Marshal(recent)
	if err != nil {
		history = []byte("[]")
	}

	return fmt.Sprintf(`Act as a high-level competitive programming coach.
Analyze the user's DSA progress and provide a concise, motivating summary.

User Stats:
- Level: %d
- Total Problems: %d
- Current Streak: %d

Problems Logged (JSON):
%s

Provide your analysis in the following JSON format:
{
  "motivation": "A 1-sentence encouraging quote or remark.",
  "focusArea": "The specific topic they should focus on next (e.g., 'Dynamic Programming').",
  "rationale": "Why they should focus on that area.",
  "tip": "A technical tip related to their recent problems."
}`, stats.Level, stats.TotalSolved, stats.Streak, history)
}

// sendRequest posts the prompt to the chat-completions endpoint
func (c *Client) sendRequest(ctx context.Context, prompt string) (string, error) {
	payload := request{
		Model: c.model,
		Messages: []message{
			{
				Role:    "system",
				Content: "You are a competitive programming coach. Respond with ONLY a valid JSON object, no explanations, no markdown.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: 0.2,
		MaxTokens:   1024,
		Stream:      false,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("coach API returned status %d: %s", resp.StatusCode, body)
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in coach response")
	}

	return parsed.Choices[0].Message.Content, nil
}

// parseInsight extracts the insight JSON object from the model's reply,
// tolerating markdown code fences around it.
func parseInsight(content string) (models.Insight, error) {
	cleaned := strings.TrimSpace(content)

	if idx := strings.Index(cleaned, "```json"); idx != -1 {
		cleaned = cleaned[idx+len("```json"):]
		if end := strings.LastIndex(cleaned, "```"); end != -1 {
			cleaned = cleaned[:end]
		}
	} else if idx := strings.Index(cleaned, "```"); idx != -1 {
		cleaned = cleaned[idx+len("```"):]
		if end := strings.LastIndex(cleaned, "```"); end != -1 {
			cleaned = cleaned[:end]
		}
	}

	// Narrow to the outermost object in case the model added prose.
	if start := strings.Index(cleaned, "{"); start != -1 {
		if end := strings.LastIndex(cleaned, "}"); end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	var insight models.Insight
	if err := json.Unmarshal([]byte(cleaned), &insight); err != nil {
		return models.Insight{}, fmt.Errorf("failed to unmarshal insight: %w", err)
	}

	if insight == (models.Insight{}) {
		return models.Insight{}, fmt.Errorf("empty insight object")
	}

	return insight, nil
}
