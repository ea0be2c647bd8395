package netpad

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/netpad/client-go/internal/api"
)

// Client is the NetPad API client. It is safe for concurrent use;
// operations in flight during UpdateConfig keep the configuration they
// started with.
type Client struct {
	mu  sync.RWMutex
	cfg clientConfig
	api *api.Client
}

// buildAPIClient creates a transport client from the resolved config.
func buildAPIClient(cfg clientConfig) (*api.Client, error) {
	return api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     cfg.apiKey,
		Timeout:    cfg.timeout,
		MaxRetries: cfg.maxRetries,
		UserAgent:  userAgent,
		HTTPClient: cfg.httpClient,
		Logger:     cfg.resolveLogger(),
	})
}

// New creates a new NetPad client. Any field not set through options
// falls back to its NETPAD_* environment variable, then to a hard
// default. A client without an API key cannot be constructed: every
// call would fail authentication, so this is an immediate error.
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	cfg.applyEnv()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	apiClient, err := buildAPIClient(cfg)
	if err != nil {
		return nil, wrapError(err)
	}

	return &Client{cfg: cfg, api: apiClient}, nil
}

// transport snapshots the current transport handle. Operations hold the
// snapshot for their whole lifetime, so UpdateConfig never changes a
// request already in flight.
func (c *Client) transport() *api.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.api
}

// UpdateConfig applies partial configuration changes and rebuilds the
// underlying transport. Requests issued after UpdateConfig returns use
// the new configuration; in-flight requests are unaffected.
func (c *Client) UpdateConfig(opts ...Option) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg := c.cfg
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.apiKey == "" {
		return ErrMissingAPIKey
	}

	apiClient, err := buildAPIClient(cfg)
	if err != nil {
		return wrapError(err)
	}

	c.cfg = cfg
	c.api = apiClient
	return nil
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.baseURL
}

// ExecuteCommand dispatches a typed command through POST /command and
// returns the raw JSON response body.
func (c *Client) ExecuteCommand(ctx context.Context, commandType string, input map[string]any) (json.RawMessage, error) {
	if input == nil {
		input = map[string]any{}
	}
	req := commandRequest{Type: commandType, Input: input}

	var result json.RawMessage
	if err := c.transport().Do(ctx, http.MethodPost, "/command", req, &result); err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// GetTools lists the tools available on the server.
func (c *Client) GetTools(ctx context.Context) ([]Tool, error) {
	var resp toolsResponse
	if err := c.transport().Do(ctx, http.MethodGet, "/tools", nil, &resp); err != nil {
		return nil, wrapError(err)
	}
	return resp.Tools, nil
}

// ExecuteTool runs a named tool with the given parameters through
// POST /tools/execute.
func (c *Client) ExecuteTool(ctx context.Context, toolName string, params map[string]any) (json.RawMessage, error) {
	if params == nil {
		params = map[string]any{}
	}
	req := toolExecuteRequest{Tool: toolName, Parameters: params}

	var result json.RawMessage
	if err := c.transport().Do(ctx, http.MethodPost, "/tools/execute", req, &result); err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// AnalyzeCode runs the code_analysis command on the given source text.
// extra fields, if any, are merged into the command input.
func (c *Client) AnalyzeCode(ctx context.Context, code, language, analysisType string, extra map[string]any) (json.RawMessage, error) {
	input := map[string]any{
		"code":         code,
		"language":     language,
		"analysisType": analysisType,
	}
	mergeInput(input, extra)
	return c.ExecuteCommand(ctx, CommandCodeAnalysis, input)
}

// ExtractDataLineage runs the data_lineage_extraction command.
// fileName is optional; pass "" to omit it.
func (c *Client) ExtractDataLineage(ctx context.Context, code, language, fileName string) (json.RawMessage, error) {
	input := map[string]any{
		"code":     code,
		"language": language,
	}
	if fileName != "" {
		input["fileName"] = fileName
	}
	return c.ExecuteCommand(ctx, CommandDataLineage, input)
}

// SQLMetadataLookup runs the sql_metadata_lookup command on a SQL text.
// options, if any, are merged into the command input.
func (c *Client) SQLMetadataLookup(ctx context.Context, sql string, options map[string]any) (json.RawMessage, error) {
	input := map[string]any{"sql": sql}
	mergeInput(input, options)
	return c.ExecuteCommand(ctx, CommandSQLMetadata, input)
}

// RunWorkflow runs a named custom workflow through the command endpoint.
// input fields are merged alongside the workflow name.
func (c *Client) RunWorkflow(ctx context.Context, workflowName string, input map[string]any) (json.RawMessage, error) {
	payload := map[string]any{"workflowName": workflowName}
	mergeInput(payload, input)
	return c.ExecuteCommand(ctx, CommandCustomWorkflow, payload)
}

// RunWorkflowGraph submits a workflow graph (nodes and connections) to
// POST /workflow/run and returns the decoded port outputs.
func (c *Client) RunWorkflowGraph(ctx context.Context, graph any) (*WorkflowRunResult, error) {
	var result WorkflowRunResult
	if err := c.transport().Do(ctx, http.MethodPost, "/workflow/run", graph, &result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}

// HealthCheck calls GET /health and returns the raw JSON body. Any 2xx
// response means the service is healthy.
func (c *Client) HealthCheck(ctx context.Context) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.transport().Do(ctx, http.MethodGet, "/health", nil, &result); err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// TestConnection probes the API through HealthCheck and reports the
// outcome as a value. It exists so callers can check connectivity
// without handling errors: it never returns one.
func (c *Client) TestConnection(ctx context.Context) *ConnectionStatus {
	if _, err := c.HealthCheck(ctx); err != nil {
		return &ConnectionStatus{
			Success: false,
			Message: err.Error(),
			Err:     err,
		}
	}
	return &ConnectionStatus{
		Success: true,
		Message: "Successfully connected to NetPad API",
	}
}

// mergeInput copies extra fields into input. Extra fields win on
// collision, matching the payload shape of the editor extensions.
func mergeInput(input, extra map[string]any) {
	for k, v := range extra {
		input[k] = v
	}
}
