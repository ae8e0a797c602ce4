package engine

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

// Client is the HTTP implementation of Evaluator.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a client for the engine at baseURL. A zero timeout
// disables the client-side deadline; callers usually pass the configured
// engine timeout so a hung engine degrades into a transport failure.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

type evaluateRequest struct {
	Mode  string `json:"mode"`
	Input string `json:"input"`
}

type evaluateResponse struct {
	Results []RawOutcome `json:"results"`
}

// Evaluate posts the full sheet text and decodes one outcome per line.
func (c *Client) Evaluate(ctx context.Context, mode Mode, input string) ([]RawOutcome, error) {
	payload, err := json.Marshal(evaluateRequest{Mode: mode.String(), Input: input})
	if err != nil {
		return nil, fmt.Errorf("engine: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/evaluate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("engine: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("engine: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out evaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("engine: decode response: %w", err)
	}
	return out.Results, nil
}
