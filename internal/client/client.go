// Package client talks to the review backend's HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/joescharf/revu/internal/review"
)

// Client provides access to the review backend API.
type Client struct {
	baseURL string
	httpCli *http.Client
}

// New creates a backend client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCli: &http.Client{Timeout: timeout},
	}
}

type uploadResponse struct {
	ReportID string `json:"report_id"`
}

// Upload submits one file as a multipart form and returns the report
// identifier the backend issued for it.
func (c *Client) Upload(ctx context.Context, filename, mediaType string, content io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", mediaType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", fmt.Errorf("creating form part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("encoding file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/upload/", &body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var ur uploadResponse
	if err := json.Unmarshal(data, &ur); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	if ur.ReportID == "" {
		return "", fmt.Errorf("backend returned no report id")
	}
	return ur.ReportID, nil
}

// GetReport fetches the generated PDF for a report identifier.
func (c *Client) GetReport(ctx context.Context, id string) ([]byte, error) {
	data, err := c.get(ctx, fmt.Sprintf("%s/api/report/%s", c.baseURL, id), "report", id)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// GetReview fetches the review payload for a report identifier.
func (c *Client) GetReview(ctx context.Context, id string) (review.Payload, error) {
	data, err := c.get(ctx, fmt.Sprintf("%s/api/review/%s", c.baseURL, id), "review", id)
	if err != nil {
		return review.Payload{}, err
	}

	var p review.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return review.Payload{}, fmt.Errorf("decoding review payload: %w", err)
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, url, what, id string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", what, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s %s not found", what, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}
