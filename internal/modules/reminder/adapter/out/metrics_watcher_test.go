package out_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reminderadapter "jadwal/internal/modules/reminder/adapter/out"
)

func TestPrometheusMetricsExposesCounters(t *testing.T) {
	t.Parallel()
	m := reminderadapter.NewPrometheusMetrics()
	m.CycleStarted()
	m.Armed(3)
	m.Skipped(2)
	m.Fired("log")
	m.Fired("log")
	m.Failed("slack")
	m.SetPending(1)

	count, err := testutil.GatherAndCount(m.Registry(),
		"jadwal_reminder_cycles_total", "jadwal_reminders_armed_total", "jadwal_reminders_fired_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	server := httptest.NewServer(m.Handler())
	defer server.Close()
	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, "jadwal_reminders_armed_total 3")
	assert.Contains(t, text, `jadwal_reminders_fired_total{sink="log"} 2`)
	assert.Contains(t, text, `jadwal_reminders_failed_total{sink="slack"} 1`)
	assert.Contains(t, text, "jadwal_reminders_pending 1")
}

func TestFSNotifyWatcherSignalsOnNoteChange(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "courses")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := reminderadapter.NewFSNotifyWatcher(dir, 20*time.Millisecond, nil)
	events, err := watcher.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "basis-data.md"), []byte("---\n---\n"), 0o644))

	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected a catalog change signal")
	}

	cancel()
	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("expected watcher channel to close")
	}
}
