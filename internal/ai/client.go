// Package ai is the optional external content source: an OpenAI-style
// chat-completions endpoint that returns the same seven-field JSON the
// rule-based pipeline produces. Responses are validated against the
// contract and never coerced.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ecomcopy-app/internal/copygen"
)

const prompt = `You are an expert DTC marketer.
From ONLY the product_name below, infer plausible attributes and produce STRICT JSON.

Always return ALL keys:
- SEO_title (<=70 chars)
- description (<=300 chars)
- benefit_bullets (exactly 3 items)
- tiktok_caption (<=150 chars)
- instagram_ad_caption (<=2200 chars)
- email_subjects (exactly 3 items)
- keywords_used (<=10 items)

Focus your effort on these requested channels (may be empty): %s.
Adopt the requested brand voice: %s.

Return valid JSON ONLY, no markdown, no prose.

product_name: "%s"
`

const requestTimeout = 30 * time.Second

// UpstreamError wraps any failure of the external service: timeout,
// non-200, malformed JSON or a schema violation. Callers treat it as a
// failed generation; no quota is consumed, no record written.
type UpstreamError struct {
	Reason string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("upstream generation failed: %s", e.Reason)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type Client struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient builds a client for the configured endpoint. Returns nil when
// the endpoint is not configured, which callers read as "use the local
// pipeline".
func NewClient(apiURL, apiKey, model string) *Client {
	if apiURL == "" || apiKey == "" {
		return nil
	}
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate submits the product name plus channel/voice hints and parses
// the response into the pipeline's output shape.
func (c *Client) Generate(ctx context.Context, productName, voice string, include []string) (copygen.GeneratedCopy, error) {
	var out copygen.GeneratedCopy

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "Return only valid JSON matching the schema."},
			{Role: "user", Content: fmt.Sprintf(prompt,
				strings.Join(include, ", "),
				voice,
				strings.ReplaceAll(productName, `"`, `\"`))},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return out, &UpstreamError{Reason: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return out, &UpstreamError{Reason: "build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, &UpstreamError{Reason: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return out, &UpstreamError{Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return out, &UpstreamError{Reason: "read response", Err: err}
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return out, &UpstreamError{Reason: "malformed response", Err: err}
	}
	if len(chat.Choices) == 0 {
		return out, &UpstreamError{Reason: "empty response"}
	}

	content := strings.TrimSpace(chat.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		// Models sometimes wrap the JSON in prose; salvage the outermost
		// object before giving up.
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end <= start {
			return out, &UpstreamError{Reason: "malformed content", Err: err}
		}
		if err := json.Unmarshal([]byte(content[start:end+1]), &out); err != nil {
			return out, &UpstreamError{Reason: "malformed content", Err: err}
		}
	}

	if err := out.Validate(); err != nil {
		return copygen.GeneratedCopy{}, &UpstreamError{Reason: "schema violation", Err: err}
	}
	return out, nil
}
