package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/talentmatch/internal/domain/model"
)

// HTTPClient wraps http.Client with the API's routes.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// MatchResponse mirrors the body of POST /vacancies.
type MatchResponse struct {
	RunID  int64        `json:"run_id"`
	Report model.Report `json:"report"`
}

// NewHTTPClient creates a new HTTP client with timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Health checks GET /healthz.
func (c *HTTPClient) Health(ctx context.Context) error {
	status, _, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", status)
	}
	return nil
}

// Match posts v and decodes the created run. The status is returned even
// when the body is an error document.
func (c *HTTPClient) Match(ctx context.Context, v model.Vacancy) (MatchResponse, int, error) {
	var resp MatchResponse
	status, body, err := c.do(ctx, http.MethodPost, "/vacancies", v)
	if err != nil || status != http.StatusCreated {
		return resp, status, err
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return resp, status, fmt.Errorf("failed to decode match response: %w", err)
	}
	return resp, status, nil
}

// Report fetches GET /vacancies/{id}/report.
func (c *HTTPClient) Report(ctx context.Context, runID int64) (model.Report, int, error) {
	var rep model.Report
	status, body, err := c.do(ctx, http.MethodGet, "/vacancies/"+strconv.FormatInt(runID, 10)+"/report", nil)
	if err != nil || status != http.StatusOK {
		return rep, status, err
	}
	if err := json.Unmarshal(body, &rep); err != nil {
		return rep, status, fmt.Errorf("failed to decode report: %w", err)
	}
	return rep, status, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in any) (int, []byte, error) {
	var reader io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}
