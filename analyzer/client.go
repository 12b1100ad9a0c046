package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client talks to the prescription image-analysis microservice. The OCR
// pipeline itself lives behind that service; this side only ships an image
// URL and reads back the extracted medication lines.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Medication mirrors one extracted prescription line.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

// Result is the analyzer's response for one prescription image.
type Result struct {
	Medications []Medication `json:"medications"`
	RawText     string       `json:"raw_text"`
}

type analyzeRequest struct {
	ImageURL string `json:"image_url"`
}

// New builds a client from ANALYZER_URL. An empty base URL is allowed; calls
// then fail with a clear error instead of panicking at startup.
func New() *Client {
	return &Client{
		baseURL:    os.Getenv("ANALYZER_URL"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithBaseURL is used by tests and non-env wiring.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Analyze submits a prescription image URL for OCR and text extraction.
func (c *Client) Analyze(ctx context.Context, imageURL string) (*Result, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("ANALYZER_URL is not set")
	}

	body, err := json.Marshal(analyzeRequest{ImageURL: imageURL})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyzer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("analyzer returned %d: %s", resp.StatusCode, payload)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode analyzer response: %w", err)
	}
	return &result, nil
}
