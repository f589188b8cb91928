package filer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Entry is one file or directory in a filer listing.
type Entry struct {
	FullPath string `json:"FullPath"`
	FileSize int64  `json:"FileSize"`
	Mode     uint32 `json:"Mode"`
	Mime     string `json:"Mime,omitempty"`
}

// the filer encodes os.ModeDir into Mode.
func (e Entry) IsDir() bool {
	return e.Mode&uint32(os.ModeDir) != 0
}

type listing struct {
	Path    string  `json:"Path"`
	Entries []Entry `json:"Entries"`
}

// Client for the SeaweedFS Filer HTTP API (:8888).
//
// The filer maps a directory tree onto SeaweedFS volumes. Axon uses it
// for ad-hoc file exchange between pipeline steps; bulk artifact
// traffic goes through the S3 gateway instead.
type Client interface {
	// Upload stores content at path ("/buckets/axon/foo.txt").
	Upload(ctx context.Context, path string, content io.Reader, filename string) error

	// Download streams the file at path to handler.
	Download(ctx context.Context, path string, handler func(io.Reader) error) error

	// List returns the entries of the directory at path.
	List(ctx context.Context, path string) ([]Entry, error)

	// Delete removes the file or (recursively) the directory at path.
	Delete(ctx context.Context, path string, recursive bool) error

	// Healthz pings the filer.
	Healthz(ctx context.Context) error
}

type client struct {
	httpclient *http.Client
	baseURL    string
}

func NewClient(baseURL string) Client {
	return &client{
		httpclient: &http.Client{},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

func (c *client) fileurl(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if 0 < len(query) {
		u += "?" + query.Encode()
	}
	return u
}

func (c *client) Upload(ctx context.Context, path string, content io.Reader, filename string) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.fileurl(path, nil), pr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if 300 <= resp.StatusCode {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf(
			"cannot upload %s (status code = %d): %s", path, resp.StatusCode, string(body),
		)
	}
	return nil
}

func (c *client) Download(ctx context.Context, path string, handler func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fileurl(path, nil), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s is not found", path)
	}
	if 300 <= resp.StatusCode {
		return fmt.Errorf("cannot download %s (status code = %d)", path, resp.StatusCode)
	}

	return handler(resp.Body)
}

func (c *client) List(ctx context.Context, path string) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fileurl(path, nil), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if 300 <= resp.StatusCode {
		return nil, fmt.Errorf("cannot list %s (status code = %d)", path, resp.StatusCode)
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, fmt.Errorf("unexpected response: %w", err)
	}
	return l.Entries, nil
}

func (c *client) Delete(ctx context.Context, path string, recursive bool) error {
	query := url.Values{}
	if recursive {
		query.Set("recursive", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.fileurl(path, query), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// the filer answers 204 on success and 404 for missing paths.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if 300 <= resp.StatusCode {
		return fmt.Errorf("cannot delete %s (status code = %d)", path, resp.StatusCode)
	}
	return nil
}

func (c *client) Healthz(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if 500 <= resp.StatusCode {
		return fmt.Errorf("filer is unhealthy (status code = %d)", resp.StatusCode)
	}
	return nil
}
