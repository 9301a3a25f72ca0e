package observability

import (
	"context"

	"github.com/aretw0/reattach/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records run, item and font-load statistics in Prometheus.
type Metrics struct {
	Runs         *prometheus.CounterVec
	Items        *prometheus.CounterVec
	RunDuration  *prometheus.HistogramVec
	FontLoads    *prometheus.CounterVec
	FontDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reattach_runs_total",
				Help: "Total number of reattach runs",
			},
			[]string{"mode"},
		),
		Items: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reattach_items_total",
				Help: "Selected nodes by outcome",
			},
			[]string{"outcome"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reattach_run_duration_seconds",
				Help:    "Duration of reattach runs",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		FontLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reattach_font_loads_total",
				Help: "Font load requests by result",
			},
			[]string{"result"},
		),
		FontDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reattach_font_load_duration_seconds",
			Help:    "Duration of font load requests",
			Buckets: prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.Runs, m.Items, m.RunDuration, m.FontLoads, m.FontDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) {
			mode := string(e.Mode)
			m.Runs.WithLabelValues(mode).Inc()
			if e.Report != nil {
				m.RunDuration.WithLabelValues(mode).Observe(e.Report.FinishedAt.Sub(e.Report.StartedAt).Seconds())
			}
		},
		OnItem: func(_ context.Context, e *domain.ItemEvent) {
			m.Items.WithLabelValues(string(e.Item.Outcome)).Inc()
		},
		OnFontLoad: func(_ context.Context, e *domain.FontEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			}
			m.FontLoads.WithLabelValues(result).Inc()
			m.FontDuration.Observe(e.Duration.Seconds())
		},
	}
}
