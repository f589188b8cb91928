package argo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
)

// ErrNotFound means the named workflow does not exist on the server.
var ErrNotFound = errors.New("workflow is not found")

// Client for the Argo Workflows server (:2746).
//
// Argo is an external orchestrator. This client only consumes its
// REST API; it never schedules anything by itself.
type Client interface {
	// list workflows in namespace.
	ListWorkflows(ctx context.Context, namespace string) ([]Workflow, error)

	// get one workflow by name.
	GetWorkflow(ctx context.Context, namespace string, name string) (Workflow, error)

	// submit a workflow from a WorkflowTemplate.
	SubmitWorkflow(ctx context.Context, namespace string, req SubmitRequest) (Workflow, error)

	// stop a running workflow.
	StopWorkflow(ctx context.Context, namespace string, name string) (Workflow, error)

	// Healthz pings the server.
	Healthz(ctx context.Context) error
}

type client struct {
	httpclient *http.Client
	baseURL    string
	token      string
}

type Option func(*client) *client

// WithToken sets the Bearer token sent to the Argo server.
func WithToken(token string) Option {
	return func(c *client) *client {
		c.token = token
		return c
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) *client {
		c.httpclient = hc
		return c
	}
}

// NewClient creates a Client for the Argo server at baseURL
// (like "https://argo-server:2746").
func NewClient(baseURL string, options ...Option) (Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, err
	}
	c := &client{
		httpclient: &http.Client{},
		baseURL:    baseURL,
	}
	for _, opt := range options {
		c = opt(c)
	}
	return c, nil
}

func (c *client) apipath(elem ...string) string {
	return c.baseURL + "/" + path.Join(append([]string{"api", "v1"}, elem...)...)
}

func (c *client) do(ctx context.Context, method string, url string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.httpclient.Do(req)
}

func (c *client) ListWorkflows(ctx context.Context, namespace string) ([]Workflow, error) {
	resp, err := c.do(ctx, http.MethodGet, c.apipath("workflows", namespace), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list WorkflowList
	if err := unmarshalJsonResponse(resp, &list, fmt.Sprintf(
		"cannot list workflows in namespace %s", namespace,
	)); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (c *client) GetWorkflow(ctx context.Context, namespace string, name string) (Workflow, error) {
	resp, err := c.do(ctx, http.MethodGet, c.apipath("workflows", namespace, name), nil)
	if err != nil {
		return Workflow{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Workflow{}, fmt.Errorf("%w: %s/%s", ErrNotFound, namespace, name)
	}

	var wf Workflow
	if err := unmarshalJsonResponse(resp, &wf, fmt.Sprintf(
		"cannot get workflow %s/%s", namespace, name,
	)); err != nil {
		return Workflow{}, err
	}
	return wf, nil
}

func (c *client) SubmitWorkflow(ctx context.Context, namespace string, sreq SubmitRequest) (Workflow, error) {
	resp, err := c.do(ctx, http.MethodPost, c.apipath("workflows", namespace, "submit"), sreq)
	if err != nil {
		return Workflow{}, err
	}
	defer resp.Body.Close()

	var wf Workflow
	if err := unmarshalJsonResponse(resp, &wf, fmt.Sprintf(
		"cannot submit %s %s", sreq.ResourceKind, sreq.ResourceName,
	)); err != nil {
		return Workflow{}, err
	}
	return wf, nil
}

func (c *client) StopWorkflow(ctx context.Context, namespace string, name string) (Workflow, error) {
	resp, err := c.do(
		ctx, http.MethodPut, c.apipath("workflows", namespace, name, "stop"),
		map[string]string{"name": name, "namespace": namespace},
	)
	if err != nil {
		return Workflow{}, err
	}
	defer resp.Body.Close()

	var wf Workflow
	if err := unmarshalJsonResponse(resp, &wf, fmt.Sprintf(
		"cannot stop workflow %s/%s", namespace, name,
	)); err != nil {
		return Workflow{}, err
	}
	return wf, nil
}

func (c *client) Healthz(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/version", nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if 400 <= resp.StatusCode {
		return fmt.Errorf("argo server is unhealthy (status code = %d)", resp.StatusCode)
	}
	return nil
}

// unmarshal http response which has json content.
//
// When status code is not 2xx, returns error with message4xx5xx
// and the server-sent message if any.
func unmarshalJsonResponse[T any](resp *http.Response, v *T, message4xx5xx string) error {
	if resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf(
				"unexpected response: %w (status code = %d)", err, resp.StatusCode,
			)
		}
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf(
			"%s: cannot read server message: %w", message4xx5xx, err,
		)
	}
	return fmt.Errorf(
		"%s (status code = %d): %s", message4xx5xx, resp.StatusCode, string(body),
	)
}
