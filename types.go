package netpad

import "encoding/json"

// Command type tags dispatched through POST /command.
const (
	CommandCodeAnalysis   = "code_analysis"
	CommandDataLineage    = "data_lineage_extraction"
	CommandSQLMetadata    = "sql_metadata_lookup"
	CommandCustomWorkflow = "custom_workflow"
)

// Tool describes a remote tool advertised by GET /tools.
type Tool struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	AgentEnabled bool   `json:"agentEnabled,omitempty"`
}

type toolsResponse struct {
	Tools []Tool `json:"tools"`
}

// commandRequest is the body of POST /command.
type commandRequest struct {
	Type  string         `json:"type"`
	Input map[string]any `json:"input"`
}

// toolExecuteRequest is the body of POST /tools/execute.
type toolExecuteRequest struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
}

// ConnectionStatus is the result of TestConnection. It is always
// populated; TestConnection never returns an error.
type ConnectionStatus struct {
	Success bool
	Message string
	Err     error // the normalized failure, nil on success
}

// WorkflowRunResult is the decoded response of POST /workflow/run.
type WorkflowRunResult struct {
	Data WorkflowRunData `json:"data"`
}

// WorkflowRunData carries the per-port outputs of a workflow run.
type WorkflowRunData struct {
	PortData map[string]json.RawMessage `json:"portData"`
}
