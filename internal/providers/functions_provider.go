package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// FunctionInvoker is the boundary to the hosted serverless runtime. Email
// delivery and calendar integration live behind it; callers treat every
// invocation as fire-and-forget.
type FunctionInvoker interface {
	Invoke(ctx context.Context, name string, payload map[string]interface{}) (map[string]interface{}, int, error)
}

// FunctionsProvider calls hosted functions over HTTP+JSON.
type FunctionsProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ FunctionInvoker = (*FunctionsProvider)(nil)

func NewFunctionsProvider() *FunctionsProvider {
	baseURL := os.Getenv("FUNCTIONS_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:54321"
	}

	return &FunctionsProvider{
		baseURL: baseURL,
		apiKey:  os.Getenv("FUNCTIONS_API_KEY"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Invoke POSTs the payload to <base>/functions/v1/<name> and decodes the JSON
// body. Returns the decoded body, the HTTP status, and an error for transport
// failures or non-2xx responses.
func (p *FunctionsProvider) Invoke(ctx context.Context, name string, payload map[string]interface{}) (map[string]interface{}, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/functions/v1/%s", p.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("function %s unreachable: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	var decoded map[string]interface{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil, resp.StatusCode, fmt.Errorf("failed to decode response from %s: %w", name, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decoded, resp.StatusCode, fmt.Errorf("function %s returned status %d", name, resp.StatusCode)
	}

	return decoded, resp.StatusCode, nil
}
