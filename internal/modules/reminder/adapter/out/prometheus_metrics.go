package out

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics records scheduler activity on its own registry.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	cycles  prometheus.Counter
	armed   prometheus.Counter
	skipped prometheus.Counter
	fired   *prometheus.CounterVec
	failed  *prometheus.CounterVec
	pending prometheus.Gauge
}

func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{registry: prometheus.NewRegistry()}

	m.cycles = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jadwal_reminder_cycles_total",
		Help: "Number of daily arming cycles started",
	})
	m.armed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jadwal_reminders_armed_total",
		Help: "Reminders armed for a future fire time",
	})
	m.skipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jadwal_reminders_skipped_total",
		Help: "Reminders skipped because their fire time had passed",
	})
	m.fired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jadwal_reminders_fired_total",
			Help: "Reminders delivered per sink",
		},
		[]string{"sink"},
	)
	m.failed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jadwal_reminders_failed_total",
			Help: "Reminder deliveries that failed per sink",
		},
		[]string{"sink"},
	)
	m.pending = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "jadwal_reminders_pending",
		Help: "Reminders armed and not yet fired",
	})

	m.registry.MustRegister(m.cycles, m.armed, m.skipped, m.fired, m.failed, m.pending)
	return m
}

func (m *PrometheusMetrics) CycleStarted()      { m.cycles.Inc() }
func (m *PrometheusMetrics) Armed(n int)        { m.armed.Add(float64(n)) }
func (m *PrometheusMetrics) Skipped(n int)      { m.skipped.Add(float64(n)) }
func (m *PrometheusMetrics) Fired(sink string)  { m.fired.WithLabelValues(sink).Inc() }
func (m *PrometheusMetrics) Failed(sink string) { m.failed.WithLabelValues(sink).Inc() }
func (m *PrometheusMetrics) SetPending(n int)   { m.pending.Set(float64(n)) }

func (m *PrometheusMetrics) Registry() *prometheus.Registry { return m.registry }

func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *PrometheusMetrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve metrics: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics: %w", err)
		}
		return <-errCh
	}
}
