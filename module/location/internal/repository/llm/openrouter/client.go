// Package openrouter talks to an OpenAI-compatible chat-completions endpoint
// to produce the optional natural-language parts of a location verdict.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

const (
	DefaultURL   = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel = "meta-llama/llama-3.2-3b-instruct:free"

	explainMaxTokens = 200
	patternMaxTokens = 400
	temperature      = 0.3
	requestTimeout   = 30 * time.Second
)

var errEmptyReply = errors.New("openrouter: empty reply")

type Config struct {
	URL    string
	APIKey string
	Model  string
}

type Client struct {
	httpClient *http.Client
	cfg        Config
}

func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		cfg:        cfg,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) Explain(ctx context.Context, metrics domain.Metrics, findings domain.Findings) (string, error) {
	prompt := fmt.Sprintf(`Assess this employee location data for GPS spoofing or attendance fraud.

Location pings: %d total
- Average distance from office: %.3fkm
- Pings in work zone: %d/%d (%.0f%%)
- Total movement: %.3fkm
- Unique coordinates: %d
- GPS accuracy: %.0fm

Risk factors: %s
Spoofing indicators: %s

In 2-3 sentences, say whether the employee was likely physically present at work or spoofing their location. Weigh natural GPS drift against suspicious patterns.`,
		metrics.TotalPings, metrics.AvgDistanceKm, metrics.PingsInZone, metrics.TotalPings,
		metrics.ZonePercentage, metrics.TotalMovementKm, metrics.UniqueLocations, metrics.AvgGPSAccuracyM,
		listOrNone(findings.RiskFactors), listOrNone(findings.SpoofingIndicators),
	)

	reply, err := c.complete(ctx, prompt, explainMaxTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

type patternPing struct {
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	Time     time.Time `json:"time"`
	Accuracy *float64  `json:"accuracy"`
}

// AnalyzePattern sends every ping in req; callers bound the history.
func (c *Client) AnalyzePattern(ctx context.Context, req *domain.VerificationRequest) (string, error) {
	history := make([]patternPing, len(req.Pings))
	for i, p := range req.Pings {
		history[i] = patternPing{Lat: p.Lat, Lng: p.Lng, Time: p.Timestamp, Accuracy: p.Accuracy}
	}
	historyJSON, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal history: %w", err)
	}

	prompt := fmt.Sprintf(`You are a location fraud detection assistant. Analyze this employee's location pattern.

Employee: %s
Office: (%g, %g), Radius: %gkm
Location history: %s

Look for GPS spoofing (static or perfectly placed coordinates), proxy attendance, work-from-elsewhere patterns, and legitimate remote work.

Respond with ONLY JSON:
{
  "legitimacy_score": 85,
  "pattern_type": "LEGITIMATE/SUSPICIOUS/FRAUDULENT",
  "detected_patterns": ["pattern 1"],
  "spoofing_probability": 15,
  "recommendation": "action to take",
  "summary": "brief analysis"
}`, req.EmployeeName, req.Office.Lat, req.Office.Lng, req.Office.RadiusKm, historyJSON)

	return c.complete(ctx, prompt, patternMaxTokens)
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Title", "MCD HRMS")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("openrouter status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", errEmptyReply
	}
	return out.Choices[0].Message.Content, nil
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, "; ")
}
