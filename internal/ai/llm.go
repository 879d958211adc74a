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
)

const (
	llmTimeout     = 60 * time.Second
	llmMaxRetries  = 3
	llmRetryBase   = 500 * time.Millisecond
	llmMaxRespSize = 10 << 20 // 10 MB
)

// LLMClient talks to an OpenAI-compatible chat-completions endpoint
// (OpenAI, OpenRouter, Ollama's /v1, vLLM). Transient failures (429 and
// 5xx) are retried with exponential backoff.
type LLMClient struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewLLMClient creates a client for the given base URL and model. The API
// key may be empty for local servers that skip auth.
func NewLLMClient(baseURL, apiKey, model string) *LLMClient {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasSuffix(baseURL, "/chat/completions") {
		baseURL += "/chat/completions"
	}

	return &LLMClient{
		endpoint: baseURL,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: llmTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a system+user prompt pair and returns the assistant's
// reply content.
func (c *LLMClient) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling chat request: %w", err)
	}

	var lastErr error

	for attempt := 0; attempt < llmMaxRetries; attempt++ {
		if attempt > 0 {
			backoff := llmRetryBase * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		content, retryable, err := c.doComplete(ctx, body)
		if err == nil {
			return content, nil
		}

		lastErr = err
		if !retryable {
			return "", err
		}
	}

	return "", fmt.Errorf("chat completion failed after %d attempts: %w", llmMaxRetries, lastErr)
}

func (c *LLMClient) doComplete(ctx context.Context, body []byte) (_ string, retryable bool, _ error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("creating chat request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("calling chat API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20)) //nolint:errcheck // best-effort drain before close.

		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500

		return "", retry, fmt.Errorf("chat API returned status %d", resp.StatusCode)
	}

	var result chatResponse

	limited := io.LimitReader(resp.Body, llmMaxRespSize)
	if err := json.NewDecoder(limited).Decode(&result); err != nil {
		return "", false, fmt.Errorf("decoding chat response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", false, fmt.Errorf("chat API returned no choices")
	}

	return result.Choices[0].Message.Content, false, nil
}
