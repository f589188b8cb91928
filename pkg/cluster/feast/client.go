package feast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Query for the Feast feature server's get-online-features API (:6566).
//
// Either FeatureService or Features must be set, not both.
type Query struct {
	FeatureService string           `json:"feature_service,omitempty"`
	Features       []string         `json:"features,omitempty"`
	Entities       map[string][]any `json:"entities"`
}

// FeatureVector is the columnar response of the feature server.
type FeatureVector struct {
	Values   []any    `json:"values"`
	Statuses []string `json:"statuses"`
}

type Response struct {
	Metadata struct {
		FeatureNames []string `json:"feature_names"`
	} `json:"metadata"`
	Results []FeatureVector `json:"results"`
}

// Client for the Feast feature server.
//
// Feast itself (registry, materialization, storage) is external.
// This client only reads online features.
type Client interface {
	GetOnlineFeatures(ctx context.Context, q Query) (*Response, error)

	// Healthz pings the feature server.
	Healthz(ctx context.Context) error
}

type client struct {
	httpclient *http.Client
	baseURL    string
}

func NewClient(baseURL string) Client {
	return &client{
		httpclient: &http.Client{},
		baseURL:    baseURL,
	}
}

func (c *client) GetOnlineFeatures(ctx context.Context, q Query) (*Response, error) {
	if q.FeatureService != "" && 0 < len(q.Features) {
		return nil, fmt.Errorf("query should have feature_service or features, not both")
	}

	b, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/get-online-features", bytes.NewBuffer(b),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if 300 <= resp.StatusCode {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf(
			"feature server error (status code = %d): %s", resp.StatusCode, string(body),
		)
	}

	var r Response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("unexpected response: %w", err)
	}
	return &r, nil
}

func (c *client) Healthz(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if 400 <= resp.StatusCode {
		return fmt.Errorf("feature server is unhealthy (status code = %d)", resp.StatusCode)
	}
	return nil
}
