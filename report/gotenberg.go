// Package report talks to the Gotenberg service that turns report HTML into
// PDF documents.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// PageOptions tune the Chromium page used for conversion.
type PageOptions struct {
	Landscape bool
	// Paper size in inches; zero keeps the Gotenberg default (Letter).
	PaperWidth  float64
	PaperHeight float64
	Margin      float64
}

// A4Landscape suits wide period-by-account tables.
var A4Landscape = PageOptions{Landscape: true, PaperWidth: 8.27, PaperHeight: 11.7, Margin: 0.4}

// Client wraps interactions with the Gotenberg API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	page       PageOptions
}

// NewClient constructs a new client rendering A4 landscape pages.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		page: A4Landscape,
	}
}

// WithPage overrides the page options.
func (c *Client) WithPage(page PageOptions) *Client {
	c.page = page
	return c
}

// Ping checks if the remote Gotenberg service is available.
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
		return fmt.Errorf("gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

// RenderHTML converts a standalone HTML document into a PDF.
func (c *Client) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	// Chromium conversion requires the entry file to be named index.html.
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}
	if err := c.writePageFields(writer); err != nil {
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
		return nil, fmt.Errorf("render failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) writePageFields(w *multipart.Writer) error {
	fields := map[string]string{}
	if c.page.Landscape {
		fields["landscape"] = "true"
	}
	if c.page.PaperWidth > 0 && c.page.PaperHeight > 0 {
		fields["paperWidth"] = formatInches(c.page.PaperWidth)
		fields["paperHeight"] = formatInches(c.page.PaperHeight)
	}
	if c.page.Margin > 0 {
		m := formatInches(c.page.Margin)
		for _, side := range []string{"marginTop", "marginBottom", "marginLeft", "marginRight"} {
			fields[side] = m
		}
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}
	return nil
}

func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
