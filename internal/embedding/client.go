package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrNotConfigured means the client was built without an API key and can
	// never produce embeddings.
	ErrNotConfigured = errors.New("embeddings client not configured")

	// ErrInvalidResponse means the provider answered with a shape the client
	// does not understand.
	ErrInvalidResponse = errors.New("invalid embeddings response")
)

// Config holds the configuration for the embeddings client
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.openai.com/v1",
		Model:   "text-embedding-3-small",
		Timeout: 30 * time.Second,
	}
}

// Client calls an OpenAI-compatible /embeddings endpoint. It makes a single
// attempt per call: matching is a convenience feature and must never hold up
// a submission behind retries.
type Client struct {
	httpClient *http.Client
	config     Config
	available  bool
}

// NewClient creates an embeddings client. Configuration is checked here, once:
// a client built without an API key stays alive but reports Available() ==
// false and fails every Generate call immediately.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.Model == "" {
		config.Model = DefaultConfig().Model
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultConfig().Timeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config:    config,
		available: config.APIKey != "",
	}
}

func (c *Client) Available() bool {
	return c.available
}

type embeddingRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embeddingResponse struct {
	Data  []embeddingData `json:"data"`
	Error *apiError       `json:"error,omitempty"`
}

type embeddingData struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Generate returns the embedding vector for text. Any transport failure,
// non-2xx status, provider-reported error or empty vector is returned as an
// error; there is exactly one response contract and anything else is a
// failure of this call.
func (c *Client) Generate(ctx context.Context, text string) ([]float32, error) {
	if !c.available {
		return nil, ErrNotConfigured
	}

	reqBody, err := json.Marshal(embeddingRequest{
		Input: []string{text},
		Model: c.config.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/embeddings", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embeddings provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(respBody, &embResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if embResp.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, embResp.Error.Message)
	}

	if len(embResp.Data) == 0 || len(embResp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", ErrInvalidResponse)
	}

	return embResp.Data[0].Embedding, nil
}
