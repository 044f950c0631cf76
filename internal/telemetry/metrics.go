package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"optab/internal/opcode"
)

const namespace = "optab"

// Metrics is one run's counters on a private registry. A run is a batch job,
// so the registry is published once at the end instead of scraped.
type Metrics struct {
	reg *prometheus.Registry

	linesRead    prometheus.Counter
	linesWritten prometheus.Counter
	linesDropped *prometheus.CounterVec
	vectorLines  prometheus.Counter
	duration     prometheus.Gauge
	lastSuccess  prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		linesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "lines_read_total", Help: "Rows read from the source.",
		}),
		linesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "lines_written_total", Help: "Rows handed to the sinks.",
		}),
		linesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "lines_dropped_total", Help: "Rows left out of the output, by reason.",
		}, []string{"reason"}),
		vectorLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "vector_lines_total", Help: "Rows routed to the vector rewriter.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "run_duration_seconds", Help: "Wall time of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_success_timestamp_seconds", Help: "Unix time the last run completed.",
		}),
	}
	m.reg.MustRegister(m.linesRead, m.linesWritten, m.linesDropped, m.vectorLines, m.duration, m.lastSuccess)
	for _, c := range []opcode.Class{opcode.DropEmpty, opcode.DropLeading, opcode.DropREX} {
		m.linesDropped.WithLabelValues(c.String())
	}
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Observe records a finished Transform.
func (m *Metrics) Observe(st opcode.Stats, elapsed time.Duration) {
	m.linesRead.Add(float64(st.Read))
	m.linesWritten.Add(float64(st.Written))
	m.vectorLines.Add(float64(st.Vector))
	for c, n := range st.Dropped {
		m.linesDropped.WithLabelValues(c.String()).Add(float64(n))
	}
	m.duration.Set(elapsed.Seconds())
	m.lastSuccess.SetToCurrentTime()
}

type Config struct {
	Textfile    string
	Pushgateway string
	Job         string
}

// Publish writes the textfile and pushes to the gateway, whichever are set.
func (m *Metrics) Publish(ctx context.Context, cfg Config) error {
	var errs []error
	if cfg.Textfile != "" {
		if err := prometheus.WriteToTextfile(cfg.Textfile, m.reg); err != nil {
			errs = append(errs, fmt.Errorf("textfile: %w", err))
		}
	}
	if cfg.Pushgateway != "" {
		job := cfg.Job
		if job == "" {
			job = namespace
		}
		if err := push.New(cfg.Pushgateway, job).Gatherer(m.reg).PushContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pushgateway: %w", err))
		}
	}
	return errors.Join(errs...)
}
