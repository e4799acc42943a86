package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGeminiTimeout = 30 * time.Second

type geminiClient struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

type geminiGenerateRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerateResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

func NewGeminiClient(opts Options) Client {
	baseURL := strings.TrimRight(opts.GeminiBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultGeminiTimeout
	}

	return &geminiClient{
		baseURL: baseURL,
		model:   opts.Model,
		apiKey:  opts.GeminiAPIKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *geminiClient) Generate(ctx context.Context, messages []Message) (string, error) {
	payload := geminiGenerateRequest{
		Contents: toGeminiContents(messages),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The key travels in a header rather than the query string so it can
	// never surface through logged URLs or error messages.
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini generateContent API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr == nil && len(data) > 0 {
			return "", fmt.Errorf("gemini API returned status %s: %s", resp.Status, string(data))
		}
		return "", fmt.Errorf("gemini API returned status %s", resp.Status)
	}

	var parsed geminiGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// A 2xx with an undecodable body counts as "no answer", not as a
		// provider outage.
		return "", fmt.Errorf("decode gemini response: %w", ErrNoAnswer)
	}

	for _, candidate := range parsed.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}

	return "", ErrNoAnswer
}

func toGeminiContents(messages []Message) []geminiContent {
	if len(messages) == 0 {
		return nil
	}
	contents := make([]geminiContent, 0, len(messages))
	for _, msg := range messages {
		role := msg.Role
		// Gemini only distinguishes user and model turns.
		if role == RoleAssistant {
			role = "model"
		} else {
			role = RoleUser
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}
	return contents
}
