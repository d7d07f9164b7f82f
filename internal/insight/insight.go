// Package insight generates narrative wellness insights with a
// generative model. The server degrades gracefully when no model is
// configured: callers fall back to rule-based analysis instead.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Insight is one model-generated observation.
type Insight struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Confidence      float64  `json:"confidence"`
	Recommendations []string `json:"recommendations"`
	DataPatterns    []string `json:"data_patterns"`
}

// Client produces insights from a pre-serialized data summary.
type Client interface {
	Generate(ctx context.Context, prompt string) ([]Insight, error)
}

// OpenAIClient talks to any OpenAI-compatible chat endpoint, including
// Gemini's compatibility layer when a base URL is configured.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     *zap.Logger
}

// NewOpenAIClient builds a client. baseURL may be empty for the default
// endpoint.
func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration, log *zap.Logger) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
		log:     log,
	}
}

const systemPrompt = `You are a wellness and productivity analyst. Given a JSON summary of a user's tasks, moods, focus sessions and wearable metrics, respond with ONLY a JSON object of the form:
{"insights": [{"title": "...", "description": "...", "confidence": 0.0, "recommendations": ["..."], "data_patterns": ["..."]}]}
Return 2 to 4 insights. No prose outside the JSON.`

// Generate asks the model for insights about the summarized data.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) ([]Insight, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return nil, fmt.Errorf("insight request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("insight request: empty response")
	}

	insights, err := ParseInsights(resp.Choices[0].Message.Content)
	if err != nil {
		c.log.Warn("unparseable insight response", zap.Error(err))
		return nil, err
	}
	return insights, nil
}

// ParseInsights decodes the model's JSON reply. Models often wrap JSON
// in markdown fences despite instructions, so fences are stripped first.
func ParseInsights(raw string) ([]Insight, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	var payload struct {
		Insights []Insight `json:"insights"`
	}
	if err := json.Unmarshal([]byte(s), &payload); err != nil {
		return nil, fmt.Errorf("decoding insights: %w", err)
	}
	if len(payload.Insights) == 0 {
		return nil, fmt.Errorf("decoding insights: none returned")
	}
	return payload.Insights, nil
}
