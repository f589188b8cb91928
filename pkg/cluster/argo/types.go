package argo

// Subset of the Argo Workflows API objects which axon reads.
//
// The full schema belongs to the Argo server. Only fields named here
// are interpreted; everything else passes through untouched.

type ObjectMeta struct {
	Name      string            `json:"name"`
	Namespace string            `json:"namespace"`
	Labels    map[string]string `json:"labels,omitempty"`
}

type WorkflowStatus struct {
	Phase      string `json:"phase,omitempty"`
	StartedAt  string `json:"startedAt,omitempty"`
	FinishedAt string `json:"finishedAt,omitempty"`
	Message    string `json:"message,omitempty"`
}

type Workflow struct {
	Metadata ObjectMeta     `json:"metadata"`
	Status   WorkflowStatus `json:"status,omitempty"`
}

type WorkflowList struct {
	Items []Workflow `json:"items"`
}

// SubmitRequest is the body of POST /api/v1/workflows/{namespace}/submit .
type SubmitRequest struct {
	ResourceKind  string         `json:"resourceKind"`
	ResourceName  string         `json:"resourceName"`
	SubmitOptions *SubmitOptions `json:"submitOptions,omitempty"`
}

type SubmitOptions struct {
	GenerateName string   `json:"generateName,omitempty"`
	Labels       string   `json:"labels,omitempty"`
	Parameters   []string `json:"parameters,omitempty"`
}
