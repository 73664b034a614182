package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reminderadapter "jadwal/internal/modules/reminder/adapter/out"
	"jadwal/internal/modules/reminder/domain"
	apperrors "jadwal/internal/platform/errors"
)

type errorTransport struct{}

func (errorTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func sampleNotification() domain.Notification {
	return domain.Notification{
		Title:    "Kelas Basis Data akan dimulai",
		Body:     "Kelas akan dimulai dalam 15 menit\nRuang: R-201\nWaktu: 08:00-09:40",
		DedupKey: "class-Basis Data-08:00-09:40",
	}
}

func TestSlackNotifierPostsWebhook(t *testing.T) {
	t.Parallel()
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var payload map[string]any
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		received, _ = payload["text"].(string)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := reminderadapter.NewSlackNotifierWithClient(server.URL, server.Client())
	require.NoError(t, notifier.Ready(context.Background()))
	require.NoError(t, notifier.Notify(context.Background(), sampleNotification()))
	assert.Contains(t, received, "*Kelas Basis Data akan dimulai*")
	assert.Contains(t, received, "Ruang: R-201")
}

func TestSlackNotifierServerError(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := reminderadapter.NewSlackNotifierWithClient(server.URL, server.Client())
	assert.Error(t, notifier.Notify(context.Background(), sampleNotification()))
}

func TestSlackNotifierMissingURL(t *testing.T) {
	t.Parallel()
	notifier := reminderadapter.NewSlackNotifier("")
	err := notifier.Ready(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotificationUnavailable)
	assert.ErrorIs(t, notifier.Notify(context.Background(), sampleNotification()), apperrors.ErrNotificationUnavailable)
}

func TestSlackNotifierClientError(t *testing.T) {
	t.Parallel()
	notifier := reminderadapter.NewSlackNotifierWithClient("http://invalid-url", &http.Client{Transport: errorTransport{}})
	assert.Error(t, notifier.Notify(context.Background(), sampleNotification()))
}

type recordingNotifier struct {
	mu       sync.Mutex
	name     string
	readyErr error
	err      error
	sent     []domain.Notification
}

func (r *recordingNotifier) Name() string { return r.name }

func (r *recordingNotifier) Ready(context.Context) error { return r.readyErr }

func (r *recordingNotifier) Notify(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func TestMultiNotifierSkipsUnreadySinks(t *testing.T) {
	t.Parallel()
	down := &recordingNotifier{name: "desktop", readyErr: apperrors.ErrNotificationUnavailable}
	up := &recordingNotifier{name: "log"}
	multi := reminderadapter.NewMultiNotifier(down, up)

	require.NoError(t, multi.Ready(context.Background()))
	require.NoError(t, multi.Notify(context.Background(), sampleNotification()))
	assert.Equal(t, 0, down.count())
	assert.Equal(t, 1, up.count())
	assert.Equal(t, "desktop+log", multi.Name())
}

func TestMultiNotifierNotReadyWhenEverySinkIsDown(t *testing.T) {
	t.Parallel()
	multi := reminderadapter.NewMultiNotifier(
		&recordingNotifier{name: "desktop", readyErr: apperrors.ErrNotificationUnavailable},
		&recordingNotifier{name: "slack", readyErr: apperrors.ErrNotificationUnavailable},
	)
	assert.ErrorIs(t, multi.Ready(context.Background()), apperrors.ErrNotificationUnavailable)
	assert.ErrorIs(t, multi.Notify(context.Background(), sampleNotification()), apperrors.ErrNotificationUnavailable)

	empty := reminderadapter.NewMultiNotifier()
	assert.ErrorIs(t, empty.Ready(context.Background()), apperrors.ErrNotificationUnavailable)
}

func TestMultiNotifierSucceedsWhenOneSinkDelivers(t *testing.T) {
	t.Parallel()
	broken := &recordingNotifier{name: "slack", err: errors.New("boom")}
	ok := &recordingNotifier{name: "log"}
	multi := reminderadapter.NewMultiNotifier(broken, ok)
	require.NoError(t, multi.Notify(context.Background(), sampleNotification()))

	allBroken := reminderadapter.NewMultiNotifier(broken)
	err := allBroken.Notify(context.Background(), sampleNotification())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "slack"))
}

type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func TestDedupNotifierDropsRepeatsWithinADay(t *testing.T) {
	t.Parallel()
	clk := &stubClock{now: time.Date(2025, 9, 4, 7, 45, 0, 0, time.Local)}
	next := &recordingNotifier{name: "log"}
	dedup := reminderadapter.NewDedupNotifier(next, clk)

	require.NoError(t, dedup.Notify(context.Background(), sampleNotification()))
	require.NoError(t, dedup.Notify(context.Background(), sampleNotification()))
	assert.Equal(t, 1, next.count())

	clk.set(clk.Now().Add(24 * time.Hour))
	require.NoError(t, dedup.Notify(context.Background(), sampleNotification()))
	assert.Equal(t, 2, next.count())

	untagged := domain.Notification{Title: "x"}
	require.NoError(t, dedup.Notify(context.Background(), untagged))
	require.NoError(t, dedup.Notify(context.Background(), untagged))
	assert.Equal(t, 4, next.count())
}

func TestDedupNotifierForgetsFailedDelivery(t *testing.T) {
	t.Parallel()
	clk := &stubClock{now: time.Date(2025, 9, 4, 7, 45, 0, 0, time.Local)}
	next := &recordingNotifier{name: "slack", err: errors.New("boom")}
	dedup := reminderadapter.NewDedupNotifier(next, clk)

	require.Error(t, dedup.Notify(context.Background(), sampleNotification()))
	next.mu.Lock()
	next.err = nil
	next.mu.Unlock()
	require.NoError(t, dedup.Notify(context.Background(), sampleNotification()))
	assert.Equal(t, 1, next.count())
}

func TestLogNotifierAlwaysReady(t *testing.T) {
	t.Parallel()
	notifier := reminderadapter.NewLogNotifier(nil)
	assert.Equal(t, "log", notifier.Name())
	require.NoError(t, notifier.Ready(context.Background()))
	require.NoError(t, notifier.Notify(context.Background(), sampleNotification()))
}
