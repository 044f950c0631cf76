package pipeline

import (
	"context"
	"fmt"
	"time"

	"optab/internal/config"
	"optab/internal/spec"
	"optab/internal/telemetry"
	"optab/internal/vector"
	"optab/sink"
	"optab/sink/stdout"
	"optab/source/kafka"
	"optab/source/lines"

	_ "optab/sink/kafka"
)

const healthTimeout = 5 * time.Second

// Compile builds a Runner from a pipeline file.
func Compile(ctx context.Context, path string) (*Runner, error) {
	cfg, err := config.LoadPipelineSpec(path)
	if err != nil {
		return nil, err
	}
	return Build(ctx, cfg)
}

// Default builds the stdin → passthrough → stdout runner.
func Default(ctx context.Context) (*Runner, error) {
	return Build(ctx, spec.Default())
}

func Build(ctx context.Context, cfg spec.File) (_ *Runner, err error) {
	r := NewRunner()
	defer func() {
		if err != nil {
			_ = r.Close()
		}
	}()

	/*──────── source ───────*/
	sc, err := config.LoadSourceConfig(cfg.Source.Config)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", cfg.Source.Kind, err)
	}
	src, err := newSource(cfg.Source)
	if err != nil {
		return nil, err
	}
	r.SetSource(src)
	if err = src.Configure(sc); err != nil {
		return nil, fmt.Errorf("source %s: %w", cfg.Source.Kind, err)
	}

	/*──────── vector rewriter ───────*/
	cli, err := newVectorClient(ctx, cfg.Vector)
	if err != nil {
		return nil, err
	}
	r.SetVector(cli, vector.Policy{
		Timeout:  time.Duration(cfg.Vector.TimeoutMS) * time.Millisecond,
		Attempts: cfg.Vector.RetryPolicy.Attempts,
		Backoff:  time.Duration(cfg.Vector.RetryPolicy.BackoffMS) * time.Millisecond,
	})

	/*──────── sinks ───────*/
	for _, name := range cfg.Sinks {
		sDrv, err := sink.NewAdapter(name)
		if err != nil {
			return nil, err
		}

		switch name {
		case spec.SinkStdout:
			err = sDrv.Configure(stdout.Config{PrintCounter: cfg.Debug.PrintCounter})
		case spec.SinkKafka:
			kc, lerr := config.LoadKafkaConfig(cfg.SinkConfigs.Kafka)
			if lerr != nil {
				err = lerr
				break
			}
			err = sDrv.Configure(kc)
		default:
			err = fmt.Errorf("no config block for sink %q", name)
		}
		if err != nil {
			return nil, fmt.Errorf("sink %s: %w", name, err)
		}
		r.AddSink(sDrv)
	}

	r.SetMetricsConfig(telemetry.Config{
		Textfile:    cfg.Metrics.Textfile,
		Pushgateway: cfg.Metrics.Pushgateway,
		Job:         cfg.Metrics.Job,
	})
	return r, nil
}

func newSource(s spec.Source) (lines.Adapter, error) {
	if s.Kind != spec.SourceKafka {
		return lines.NewAdapter(s.Kind)
	}
	kc, err := config.LoadKafkaSourceConfig(s.Config)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", s.Kind, err)
	}
	return kafka.New(kc), nil
}

func newVectorClient(ctx context.Context, v spec.VectorSpec) (vector.Client, error) {
	switch v.Type {
	case spec.VectorPassthrough, "":
		return vector.Passthrough{}, nil
	case spec.VectorGRPC:
		cli, err := vector.NewGRPCClient(v.Address)
		if err != nil {
			return nil, fmt.Errorf("vector: dial %s: %w", v.Address, err)
		}
		hctx, cancel := context.WithTimeout(ctx, healthTimeout)
		defer cancel()
		if err := cli.Health(hctx); err != nil {
			_ = cli.Close()
			return nil, fmt.Errorf("vector: %s: %w", v.Address, err)
		}
		return cli, nil
	default:
		return nil, fmt.Errorf("unsupported vector rewriter type %q", v.Type)
	}
}
