// Package classifier provides the HTTP client for the remote classification
// service. Classification happens out of process so the rule set can be
// redeployed without touching the API.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fluxo/internal/classify"
)

// ClassificationError is returned for any failed classification attempt:
// network failures, timeouts, and non-2xx responses alike. The enrichment
// engine treats all of them the same way, so no finer distinction is needed.
type ClassificationError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ClassificationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("classification failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("classification failed: %s", e.Message)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// Client is an HTTP client for the classification service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a classification service client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type classifyRequest struct {
	RawDescription string `json:"raw_description"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Classify sends a raw description to the classification service. There are
// no retries and no local shortcuts: even an empty description goes over the
// wire, and the service's rejection comes back as a *ClassificationError.
func (c *Client) Classify(ctx context.Context, rawDescription string) (classify.Result, error) {
	body, err := json.Marshal(classifyRequest{RawDescription: rawDescription})
	if err != nil {
		return classify.Result{}, &ClassificationError{Message: "failed to encode request", Err: err}
	}

	url := c.baseURL + "/v1/classify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return classify.Result{}, &ClassificationError{Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify.Result{}, &ClassificationError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		message := "unexpected response"
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			message = errResp.Error.Message
		}
		return classify.Result{}, &ClassificationError{StatusCode: resp.StatusCode, Message: message}
	}

	var result classify.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return classify.Result{}, &ClassificationError{Message: "failed to decode response", Err: err}
	}

	return result, nil
}
