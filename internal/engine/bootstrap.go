package engine

import (
	"context"
	"fmt"

	"optab/internal/pipeline"
)

type Config struct {
	PipelineYml string // optional; empty runs the default pipeline
}

func Bootstrap(ctx context.Context, cfg Config) (*Engine, error) {
	var (
		runner *pipeline.Runner
		err    error
	)
	if cfg.PipelineYml != "" {
		runner, err = pipeline.Compile(ctx, cfg.PipelineYml)
	} else {
		runner, err = pipeline.Default(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return &Engine{runner: runner}, nil
}
