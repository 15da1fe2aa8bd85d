package delivery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftlens/craftlens/internal/models"
)

func validReport(sessionID string) *models.WorkReport {
	return &models.WorkReport{
		AgentID:     "agent-1",
		SessionID:   sessionID,
		ReportType:  models.ReportSessionAnalysis,
		GeneratedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestSubmitAccepted(t *testing.T) {
	var received map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, submitPath, r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "gzip", r.Header.Get("Content-Encoding"))
		assert.Equal(t, "1.2.3", r.Header.Get("X-Client-Version"))

		zr, err := gzip.NewReader(r.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(zr)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"reportId": "r-42", "meta": {"latestVersion": "2.0.0", "message": "update available"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1", "1.2.3")
	result := c.Submit(context.Background(), validReport("s1"))

	require.Equal(t, StatusAccepted, result.Status)
	assert.Equal(t, "r-42", result.ReportID)
	require.NotNil(t, result.Advisory)
	assert.Equal(t, "2.0.0", result.Advisory.LatestVersion)
	assert.Equal(t, "agent-1", received["agent_id"])
	assert.Equal(t, "s1", received["session_id"])
}

func TestSubmitStatusClassification(t *testing.T) {
	tests := []struct {
		name string
		code int
		want Status
	}{
		{"no_content", http.StatusNoContent, StatusAccepted},
		{"unauthorized", http.StatusUnauthorized, StatusTerminal},
		{"forbidden", http.StatusForbidden, StatusTerminal},
		{"rate_limited", http.StatusTooManyRequests, StatusRetryable},
		{"server_error", http.StatusInternalServerError, StatusRetryable},
		{"bad_gateway", http.StatusBadGateway, StatusRetryable},
		{"bad_request", http.StatusBadRequest, StatusTerminal},
		{"unprocessable", http.StatusUnprocessableEntity, StatusTerminal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "tok", "dev")
			result := c.Submit(context.Background(), validReport("s1"))
			assert.Equal(t, tt.want, result.Status)
			if tt.want != StatusAccepted {
				assert.Error(t, result.Err)
			}
		})
	}
}

func TestSubmitNetworkErrorRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewClient(srv.URL, "tok", "dev")
	result := c.Submit(context.Background(), validReport("s1"))
	assert.Equal(t, StatusRetryable, result.Status)
	assert.Error(t, result.Err)
}

func TestSubmitInvalidPayloadNeverLeavesMachine(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	bad := validReport("s1")
	bad.AgentID = "" // violates the wire contract

	c := NewClient(srv.URL, "tok", "dev")
	result := c.Submit(context.Background(), bad)
	assert.Equal(t, StatusTerminal, result.Status)
	assert.Error(t, result.Err)
	assert.Zero(t, calls)
}

func TestSubmitMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", "dev")
	result := c.Submit(context.Background(), validReport("s1"))
	assert.Equal(t, StatusAccepted, result.Status)
	assert.Empty(t, result.ReportID)
	assert.Nil(t, result.Advisory)
}

func TestValidatePayload(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.WorkReport)
		wantErr bool
	}{
		{"valid", func(r *models.WorkReport) {}, false},
		{"empty_agent", func(r *models.WorkReport) { r.AgentID = "" }, true},
		{"bad_report_type", func(r *models.WorkReport) { r.ReportType = "weekly_digest" }, true},
		{"score_above_range", func(r *models.WorkReport) { r.Communication.Score = 101 }, true},
		{"score_below_range", func(r *models.WorkReport) { r.Domain.Score = -1 }, true},
		{"boundary_scores", func(r *models.WorkReport) {
			r.Communication.Score = 0
			r.Orchestration.Score = 100
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReport("s1")
			tt.mutate(r)
			payload, err := json.Marshal(r)
			require.NoError(t, err)

			err = validatePayload(payload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
