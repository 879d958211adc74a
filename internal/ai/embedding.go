package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

const embeddingTimeout = 30 * time.Second

// Circuit breaker configuration.
const (
	cbFailureThreshold = 5
	cbCooldown         = 30 * time.Second
)

// Circuit breaker states.
const (
	cbClosed   = iota // Normal operation.
	cbOpen            // Fail fast.
	cbHalfOpen        // Probe with one request.
)

// EmbeddingClient generates vector embeddings via the Ollama API.
type EmbeddingClient struct {
	ollamaURL string
	model     string
	client    *http.Client

	mu              sync.Mutex
	cbState         int
	cbFailures      int
	cbLastFailureAt time.Time
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// NewEmbeddingClient creates an EmbeddingClient for the given Ollama
// endpoint and model. Connections are restricted to loopback addresses;
// the embedding service is expected to run on the same host.
func NewEmbeddingClient(ollamaURL, model string) *EmbeddingClient {
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, _, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, fmt.Errorf("invalid address: %w", err)
			}

			ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
			if err != nil {
				return nil, fmt.Errorf("resolving embedding host: %w", err)
			}

			for _, ip := range ips {
				if !ip.IP.IsLoopback() {
					return nil, fmt.Errorf("embedding service connections restricted to localhost")
				}
			}

			return (&net.Dialer{}).DialContext(ctx, network, addr)
		},
	}

	return &EmbeddingClient{
		ollamaURL: ollamaURL,
		model:     model,
		client:    &http.Client{Timeout: embeddingTimeout, Transport: transport},
		cbState:   cbClosed,
	}
}

// Generate produces a vector embedding for the given text.
// It uses a circuit breaker to fail fast when the embedding service is down.
func (c *EmbeddingClient) Generate(ctx context.Context, text string) ([]float32, error) {
	if err := c.cbAllow(); err != nil {
		return nil, &EmbeddingError{Err: err}
	}

	result, err := c.doGenerate(ctx, text)
	if err != nil {
		c.cbRecordFailure()

		return nil, &EmbeddingError{Err: err}
	}

	c.cbRecordSuccess()

	return result, nil
}

func (c *EmbeddingClient) doGenerate(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: c.model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ollamaURL+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating embedding request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling ollama embed API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain body so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20)) //nolint:errcheck // best-effort drain before close.
		return nil, fmt.Errorf("ollama embed API returned status %d", resp.StatusCode)
	}

	var result embeddingResponse

	limited := io.LimitReader(resp.Body, 10<<20) // 10 MB
	if err := json.NewDecoder(limited).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding embedding response: %w", err)
	}

	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("ollama returned empty embeddings")
	}

	return result.Embeddings[0], nil
}

// cbAllow checks whether the circuit breaker permits a request.
// In closed state, all requests pass. In open state, requests are rejected
// until the cooldown expires, at which point we transition to half-open.
// In half-open state, one probe request is allowed.
func (c *EmbeddingClient) cbAllow() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.cbState {
	case cbClosed:
		return nil
	case cbOpen:
		if time.Since(c.cbLastFailureAt) >= cbCooldown {
			c.cbState = cbHalfOpen

			return nil
		}

		return ErrCircuitOpen
	case cbHalfOpen:
		// Already probing, reject additional requests.
		return ErrCircuitOpen
	}

	return nil
}

// cbRecordSuccess records a successful call. In half-open state this closes
// the circuit breaker, restoring normal operation.
func (c *EmbeddingClient) cbRecordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cbFailures = 0
	c.cbState = cbClosed
}

// cbRecordFailure records a failed call. After reaching the failure threshold
// the circuit breaker transitions to open state.
func (c *EmbeddingClient) cbRecordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cbFailures++
	c.cbLastFailureAt = time.Now()

	if c.cbFailures >= cbFailureThreshold || c.cbState == cbHalfOpen {
		c.cbState = cbOpen
	}
}
