package engine

import (
	"context"
	"errors"
	"fmt"

	"optab/internal/logging"
	"optab/internal/pipeline"
)

type Engine struct {
	runner *pipeline.Runner
}

// Run executes the pipeline once, flushes the sinks, then publishes metrics.
// A failed run publishes nothing.
func (e *Engine) Run(ctx context.Context) error {
	if _, err := e.runner.Run(ctx); err != nil {
		return errors.Join(err, e.runner.Close())
	}
	if err := e.runner.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := e.runner.Metrics().Publish(ctx, e.runner.MetricsConfig()); err != nil {
		logging.L().Warn("engine: metrics not published", "err", err)
	}
	return nil
}

func (e *Engine) Close() error {
	return e.runner.Close()
}
