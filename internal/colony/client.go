package colony

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client reads agent snapshots from the host simulation.
type Client interface {
	GetAgent(ctx context.Context, agentID string) (*AgentState, error)
	ListAgents(ctx context.Context) ([]AgentState, error)
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) doReq(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("colony %s %s: %d %s", method, path, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *HTTPClient) GetAgent(ctx context.Context, agentID string) (*AgentState, error) {
	data, err := c.doReq(ctx, http.MethodGet, "/api/v1/agents/"+url.PathEscape(agentID))
	if err != nil {
		return nil, err
	}
	var state AgentState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode agent %s: %w", agentID, err)
	}
	return &state, nil
}

func (c *HTTPClient) ListAgents(ctx context.Context) ([]AgentState, error) {
	data, err := c.doReq(ctx, http.MethodGet, "/api/v1/agents")
	if err != nil {
		return nil, err
	}
	var agents []AgentState
	if err := json.Unmarshal(data, &agents); err != nil {
		return nil, fmt.Errorf("decode agents: %w", err)
	}
	return agents, nil
}
