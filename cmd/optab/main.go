// Command optab reads x86 instruction reference rows on stdin and writes
// their compact encoding strings to stdout, one per line.
//
// OPTAB_PIPELINE names an optional pipeline YAML selecting other sources,
// sinks, a gRPC vector rewriter and metrics publication.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tebeka/atexit"

	"optab/internal/engine"
	"optab/internal/logging"
)

func main() {
	logging.InitFromEnv()

	cfg := engine.Config{
		PipelineYml: os.Getenv("OPTAB_PIPELINE"), // optional
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	atexit.Register(stop)

	e, err := engine.Bootstrap(ctx, cfg)
	if err != nil {
		atexit.Fatalf("bootstrap: %v", err)
	}
	atexit.Register(func() { _ = e.Close() })

	if err := e.Run(ctx); err != nil {
		logging.L().Error("optab: run failed", "err", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
