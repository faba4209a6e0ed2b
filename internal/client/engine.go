package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"worksheet-gateway/internal/models"
)

// Client talks to the worksheet engine over HTTP. All substantive work
// (generation, scoring, assembly, PDF layout) happens on the engine side;
// the client only shapes payloads and surfaces failures.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Generate asks the engine for a fresh problem set.
func (c *Client) Generate(ctx context.Context, cfg models.GenerationConfig) ([]models.Problem, error) {
	var problems []models.Problem
	if err := c.postJSON(ctx, "/api/generate", cfg, &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

// Assemble asks the engine to build an ordered sequence from a pool.
func (c *Client) Assemble(ctx context.Context, payload models.AssemblePayload) ([]models.Problem, error) {
	var problems []models.Problem
	if err := c.postJSON(ctx, "/api/assemble", payload, &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

// Evaluate submits a problem set and returns the engine's difficulty summary.
func (c *Client) Evaluate(ctx context.Context, problems []models.Problem) (*models.Evaluation, error) {
	var eval models.Evaluation
	if err := c.postJSON(ctx, "/api/evaluate", problems, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

// Upload sends a question bank file; the engine parses it into a pool.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) ([]models.Problem, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	var problems []models.Problem
	if err := json.Unmarshal(body, &problems); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return problems, nil
}

// Export renders the configuration into a PDF on the engine and returns the
// raw bytes. kind is "questions" or "answers".
func (c *Client) Export(ctx context.Context, cfg models.GenerationConfig, kind string) ([]byte, error) {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/export/"+kind, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// do executes the request and reads the full body. A non-2xx status is a
// contract failure; the response text becomes the error detail.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("engine %s: status %d: %s", req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
