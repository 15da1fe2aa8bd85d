// Package delivery submits sanitized WorkReports to the remote service
// and manages the bounded local retry queue. Failures split into
// retryable (network, 5xx, 429) and terminal (auth, validation) classes.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/craftlens/craftlens/internal/models"
)

// submitPath is the fixed relative path of the report endpoint.
const submitPath = "/v1/reports"

// requestTimeout bounds every submission attempt. There are no
// synchronous retries; transient failures defer to the next pipeline run.
const requestTimeout = 15 * time.Second

// Status classifies the outcome of one submission attempt.
type Status string

const (
	StatusAccepted         Status = "accepted"
	StatusRetryable        Status = "retryable"
	StatusTerminal         Status = "terminal"
	StatusNotAuthenticated Status = "not_authenticated"
)

// Advisory is the optional version metadata a successful response carries.
type Advisory struct {
	LatestVersion string `json:"latestVersion"`
	Message       string `json:"message,omitempty"`
}

// Result is the outcome of one submission attempt.
type Result struct {
	Status   Status
	ReportID string
	Advisory *Advisory
	Err      error
}

type submitResponse struct {
	ReportID string    `json:"reportId"`
	Meta     *Advisory `json:"meta"`
}

// Client posts reports to the remote service.
type Client struct {
	baseURL string
	token   string
	version string
	httpc   *http.Client
}

// NewClient builds a submission client. version is sent as the
// client-version header on every request.
func NewClient(baseURL, token, version string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		version: version,
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

// Submit posts one report. The payload is validated against the wire
// schema before anything leaves the machine; validation failure is
// terminal, never queued.
func (c *Client) Submit(ctx context.Context, report *models.WorkReport) Result {
	payload, err := json.Marshal(report)
	if err != nil {
		return Result{Status: StatusTerminal, Err: fmt.Errorf("encoding report: %w", err)}
	}

	if err := validatePayload(payload); err != nil {
		return Result{Status: StatusTerminal, Err: fmt.Errorf("report failed wire validation: %w", err)}
	}

	var body bytes.Buffer
	zw := gzip.NewWriter(&body)
	if _, err := zw.Write(payload); err != nil {
		return Result{Status: StatusTerminal, Err: fmt.Errorf("compressing report: %w", err)}
	}
	if err := zw.Close(); err != nil {
		return Result{Status: StatusTerminal, Err: fmt.Errorf("compressing report: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, &body)
	if err != nil {
		return Result{Status: StatusTerminal, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("X-Client-Version", c.version)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Result{Status: StatusRetryable, Err: fmt.Errorf("posting report: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var decoded submitResponse
		// A malformed success body is still a success; the report is
		// delivered even if the server response is unusable.
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
		return Result{Status: StatusAccepted, ReportID: decoded.ReportID, Advisory: decoded.Meta}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Result{Status: StatusTerminal, Err: fmt.Errorf("authentication rejected: %s", resp.Status)}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return Result{Status: StatusRetryable, Err: fmt.Errorf("server unavailable: %s", resp.Status)}
	default:
		return Result{Status: StatusTerminal, Err: fmt.Errorf("report rejected: %s", resp.Status)}
	}
}
