package runner

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftlens/craftlens/internal/config"
	"github.com/craftlens/craftlens/internal/store"
	"github.com/craftlens/craftlens/internal/transcripts"
)

const sessionLines = `{"type": "user", "timestamp": "2026-08-20T09:00:00Z", "message": {"role": "user", "content": "fix the failing handler test"}}
{"type": "assistant", "timestamp": "2026-08-20T09:01:00Z", "message": {"role": "assistant", "content": [{"type": "tool_use", "name": "Bash", "input": {"command": "go test ./..."}}], "usage": {"input_tokens": 500, "output_tokens": 90}}}
{"type": "assistant", "timestamp": "2026-08-20T09:05:00Z", "message": {"role": "assistant", "content": "Fixed and green."}}
`

func writeConfig(t *testing.T, stateDir, baseURL, token string) {
	t.Helper()
	content := "api_base_url: " + baseURL + "\napi_token: " + token + "\nagent_id: agent-1\n"
	require.NoError(t, os.MkdirAll(stateDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, config.ConfigFileName), []byte(content), 0o644))
}

func writeSession(t *testing.T, root, name string) {
	t.Helper()
	path := filepath.Join(root, "proj", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(sessionLines), 0o644))
}

func acceptingServer(t *testing.T, received *[]map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zr, err := gzip.NewReader(r.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(zr)
		require.NoError(t, err)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		*received = append(*received, payload)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"reportId": "r-1"}`))
	}))
}

func TestRunAnalyzesAndSubmits(t *testing.T) {
	var received []map[string]any
	srv := acceptingServer(t, &received)
	defer srv.Close()

	stateDir := t.TempDir()
	writeConfig(t, stateDir, srv.URL, "tok")

	root := t.TempDir()
	writeSession(t, root, "session-one.jsonl")
	writeSession(t, root, "session-two.jsonl")

	summary, err := Run(context.Background(), Options{
		StateDir: stateDir,
		MaxFiles: 10,
		Roots: []transcripts.SourceRoot{
			{Source: "claude", Dir: root, Extensions: []string{".jsonl"}},
		},
		Version: "dev",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Discovered)
	assert.Equal(t, 2, summary.Analyzed)
	assert.Equal(t, 2, summary.Submitted)
	assert.Zero(t, summary.Queued)

	require.Len(t, received, 2)
	assert.Equal(t, "agent-1", received[0]["agent_id"])
	assert.Equal(t, "session_analysis", received[0]["report_type"])

	local := store.Open(stateDir)
	obs := local.LoadObservations()
	assert.Equal(t, 2, obs.Counters.SessionsAnalyzed)
	assert.Equal(t, 2, obs.Counters.ReportsSubmitted)
}

func TestRunAggregateSubmitsOneSummary(t *testing.T) {
	var received []map[string]any
	srv := acceptingServer(t, &received)
	defer srv.Close()

	stateDir := t.TempDir()
	writeConfig(t, stateDir, srv.URL, "tok")

	root := t.TempDir()
	writeSession(t, root, "session-one.jsonl")
	writeSession(t, root, "session-two.jsonl")

	summary, err := Run(context.Background(), Options{
		StateDir:  stateDir,
		MaxFiles:  10,
		Aggregate: true,
		Roots: []transcripts.SourceRoot{
			{Source: "claude", Dir: root, Extensions: []string{".jsonl"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Analyzed)
	assert.Equal(t, 1, summary.Submitted)
	require.Len(t, received, 1)
	assert.Equal(t, "periodic_summary", received[0]["report_type"])
}

func TestRunDisabledDoesNothing(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	stateDir := t.TempDir()
	content := "enabled: false\napi_base_url: " + srv.URL + "\napi_token: tok\n"
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, config.ConfigFileName), []byte(content), 0o644))

	root := t.TempDir()
	writeSession(t, root, "session-one.jsonl")

	summary, err := Run(context.Background(), Options{
		StateDir: stateDir,
		Roots: []transcripts.SourceRoot{
			{Source: "claude", Dir: root, Extensions: []string{".jsonl"}},
		},
	})
	require.NoError(t, err)
	assert.Zero(t, summary.Discovered)
	assert.Zero(t, calls)
}

func TestRunUnauthenticatedStillObserves(t *testing.T) {
	stateDir := t.TempDir()
	// no config file at all: enabled, anonymous, no token

	root := t.TempDir()
	writeSession(t, root, "session-one.jsonl")

	summary, err := Run(context.Background(), Options{
		StateDir: stateDir,
		Roots: []transcripts.SourceRoot{
			{Source: "claude", Dir: root, Extensions: []string{".jsonl"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Analyzed)
	assert.Zero(t, summary.Submitted)
	assert.Zero(t, summary.Queued)

	local := store.Open(stateDir)
	obs := local.LoadObservations()
	assert.Equal(t, 1, obs.Counters.SessionsAnalyzed)
	assert.Empty(t, local.LoadQueue())
}

func TestRunQueuesOnServerFailureThenRetries(t *testing.T) {
	healthy := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	stateDir := t.TempDir()
	writeConfig(t, stateDir, srv.URL, "tok")

	root := t.TempDir()
	writeSession(t, root, "session-one.jsonl")

	opts := Options{
		StateDir: stateDir,
		Roots: []transcripts.SourceRoot{
			{Source: "claude", Dir: root, Extensions: []string{".jsonl"}},
		},
	}

	summary, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Queued)

	local := store.Open(stateDir)
	require.Len(t, local.LoadQueue(), 1)

	// next pass finds the server healthy and drains the queue
	healthy = true
	delivered, pending, err := RetryOnly(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)
	assert.Zero(t, pending)
	assert.Empty(t, local.LoadQueue())
}

func TestRunFileSingleTranscript(t *testing.T) {
	var received []map[string]any
	srv := acceptingServer(t, &received)
	defer srv.Close()

	stateDir := t.TempDir()
	writeConfig(t, stateDir, srv.URL, "tok")

	path := filepath.Join(t.TempDir(), "session-solo.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(sessionLines), 0o644))

	summary, err := RunFile(context.Background(), path, "claude", Options{StateDir: stateDir})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Analyzed)
	assert.Equal(t, 1, summary.Submitted)
	require.Len(t, received, 1)
	assert.Equal(t, "solo", received[0]["session_id"])
}

func TestRunFileUnusableIsNoop(t *testing.T) {
	stateDir := t.TempDir()
	writeConfig(t, stateDir, "http://127.0.0.1:1", "tok")

	summary, err := RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.jsonl"), "claude", Options{StateDir: stateDir})
	require.NoError(t, err)
	assert.Zero(t, summary.Analyzed)
}

func TestRunRespectsSinceFilter(t *testing.T) {
	stateDir := t.TempDir()
	// unauthenticated run: analysis only

	root := t.TempDir()
	writeSession(t, root, "session-old.jsonl")
	old := filepath.Join(root, "proj", "session-old.jsonl")
	stale := time.Now().Add(-72 * time.Hour)
	require.NoError(t, os.Chtimes(old, stale, stale))

	summary, err := Run(context.Background(), Options{
		StateDir: stateDir,
		Since:    time.Now().Add(-24 * time.Hour),
		Roots: []transcripts.SourceRoot{
			{Source: "claude", Dir: root, Extensions: []string{".jsonl"}},
		},
	})
	require.NoError(t, err)
	assert.Zero(t, summary.Discovered)
}
