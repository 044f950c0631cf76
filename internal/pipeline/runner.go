package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"optab/internal/logging"
	"optab/internal/opcode"
	"optab/internal/telemetry"
	"optab/internal/vector"
	"optab/sink"
	"optab/source/lines"
)

type Runner struct {
	source lines.Adapter
	vector vector.Client
	tx     *opcode.Transformer
	sinks  []sink.Adapter

	metrics    *telemetry.Metrics
	metricsCfg telemetry.Config
	closed     bool
}

// NewRunner starts with the passthrough vector rewriter and no source or sinks.
func NewRunner() *Runner {
	r := &Runner{metrics: telemetry.New()}
	r.SetVector(vector.Passthrough{}, vector.Policy{})
	return r
}

func (r *Runner) AddSink(s sink.Adapter)    { r.sinks = append(r.sinks, s) }
func (r *Runner) SetSource(s lines.Adapter) { r.source = s }

// SetVector installs the rewriter for VEX/EVEX rows, wrapped in p.
func (r *Runner) SetVector(c vector.Client, p vector.Policy) {
	r.vector = c
	r.tx = opcode.New(vector.WithPolicy(c, p), opcode.WithLogger(logging.L()))
}

func (r *Runner) Metrics() *telemetry.Metrics         { return r.metrics }
func (r *Runner) MetricsConfig() telemetry.Config     { return r.metricsCfg }
func (r *Runner) SetMetricsConfig(c telemetry.Config) { r.metricsCfg = c }

/*──────── row routing ───────*/
func (r *Runner) push(rec sink.Record) error {
	for _, s := range r.sinks {
		if err := s.Push(rec); err != nil {
			return err
		}
	}
	return nil
}

// Run reads the whole source, rewrites it, and pushes the surviving rows to
// every sink in order. Nothing reaches a sink before the source hits EOF.
func (r *Runner) Run(ctx context.Context) (opcode.Stats, error) {
	if r.source == nil {
		return opcode.Stats{}, errors.New("runner: no source configured")
	}
	start := time.Now()

	var rows []string
	if err := r.source.Run(ctx, func(l string) error {
		rows = append(rows, l)
		return nil
	}); err != nil {
		return opcode.Stats{}, fmt.Errorf("source: %w", err)
	}

	out, st, err := r.tx.Transform(ctx, rows)
	if err != nil {
		return st, fmt.Errorf("transform: %w", err)
	}
	for i, l := range out {
		if err := r.push(sink.Record{Seq: i, Line: l}); err != nil {
			return st, fmt.Errorf("sink: %w", err)
		}
	}

	r.metrics.Observe(st, time.Since(start))
	logging.L().Info("pipeline: run complete",
		"read", st.Read, "written", st.Written, "vector", st.Vector, "dropped", st.DroppedTotal())
	return st, nil
}

// Close releases the source, the rewriter and every sink. Safe to call twice.
func (r *Runner) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	if r.source != nil {
		errs = append(errs, r.source.Close())
	}
	if r.vector != nil {
		errs = append(errs, r.vector.Close())
	}
	for _, s := range r.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
