// Package report renders printable documents: invoices and
// certificates go out as HTML and come back as PDF via Gotenberg.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Renderer turns HTML into a PDF document.
type Renderer interface {
	Ping(ctx context.Context) error
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Client talks to a Gotenberg instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Gotenberg client. Rendering a full invoice
// through chromium can take a while, hence the generous timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ping checks whether the Gotenberg service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("report: gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

// RenderHTML converts raw HTML into a PDF.
func (c *Client) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("report: render failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// NoopRenderer stands in for Gotenberg when the runtime has no PDF
// service, returning the HTML bytes unchanged. The test-mode server
// uses it so print routes stay exercisable offline.
type NoopRenderer struct{}

func (NoopRenderer) Ping(context.Context) error { return nil }

func (NoopRenderer) RenderHTML(_ context.Context, html string) ([]byte, error) {
	return []byte(html), nil
}
