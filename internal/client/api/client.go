package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/prizoapp/prizo-cli/internal/logging"
	"github.com/prizoapp/prizo-cli/internal/netx"
)

// DefaultRequestTimeout bounds a single delivery attempt against one
// candidate base URL.
const DefaultRequestTimeout = 12 * time.Second

// apiPrefix is appended to the origin to form the last candidate base.
const apiPrefix = "api"

// Client talks to the PRIZO backend over HTTP, trying each candidate base
// URL in turn until one returns a successful status.
type Client struct {
	bases   []string
	timeout time.Duration
	http    *http.Client
	log     logging.Logger
}

// NewClient builds a Client from the externally configured base URL (may be
// empty) and the page origin. The candidate order is: external base, origin,
// origin + "/api".
func NewClient(external, origin string, timeout time.Duration, log logging.Logger) (*Client, error) {
	bases := netx.CandidateBases(external, origin, apiPrefix)
	if len(bases) == 0 {
		return nil, errors.New("no API base URL configured")
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		bases:   bases,
		timeout: timeout,
		http:    &http.Client{},
		log:     log,
	}, nil
}

// do attempts delivery of one logical request against every candidate base,
// one attempt per base, each under its own timeout. The first 2xx response
// wins; otherwise the most recent error is returned.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) ([]byte, error) {
	var lastErr error

	for _, base := range c.bases {
		data, err := c.attempt(ctx, method, base+path, contentType, body)
		if err == nil {
			return data, nil
		}
		lastErr = err

		// Caller cancellation ends the loop; per-attempt timeouts advance.
		if ctx.Err() != nil {
			return nil, lastErr
		}

		c.log.Debug(ctx, "request failed, trying next base", "base", base, "path", path, "error", err)
	}

	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, method, url, contentType string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, url)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Message: extractMessage(data)}
	}

	return data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	data, err := c.do(ctx, http.MethodPost, path, "application/json", body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// postMultipart sends string fields plus one file part. The body is built
// once so it can be replayed against every candidate base.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, fileField, filename string, file []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			return err
		}
		if _, err := part.Write(file); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	data, err := c.do(ctx, http.MethodPost, path, w.FormDataContentType(), buf.Bytes())
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
