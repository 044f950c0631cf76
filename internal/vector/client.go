package vector

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"optab/internal/opcode"
	"optab/internal/transport"
)

// ErrUnavailable is returned by Health when the rewriter is not serving.
var ErrUnavailable = errors.New("vector rewriter unavailable")

// Client wraps a rewriter (in-process or over gRPC) with a uniform lifecycle.
type Client interface {
	opcode.VectorRewriter
	Health(ctx context.Context) error
	Close() error
}

// Passthrough returns every row unchanged.
type Passthrough struct{}

func (Passthrough) Rewrite(_ context.Context, line string) (string, error) { return line, nil }
func (Passthrough) Health(context.Context) error                           { return nil }
func (Passthrough) Close() error                                           { return nil }

// GRPCClient calls a rewriter service over gRPC.
type GRPCClient struct {
	conn *grpc.ClientConn
}

func NewGRPCClient(target string, opts ...grpc.DialOption) (*GRPCClient, error) {
	conn, err := transport.Dial(target, opts...)
	if err != nil {
		return nil, err
	}
	return &GRPCClient{conn: conn}, nil
}

func (c *GRPCClient) Rewrite(ctx context.Context, line string) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, rewriteMethod, wrapperspb.String(line), out); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

func (c *GRPCClient) Health(ctx context.Context) error {
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.GetStatus())
	}
	return nil
}

func (c *GRPCClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// InProcessClient adapts a rewriter compiled into the binary.
type InProcessClient struct {
	impl opcode.VectorRewriter
}

func NewInProcessClient(impl opcode.VectorRewriter) *InProcessClient {
	return &InProcessClient{impl: impl}
}

func (c *InProcessClient) Rewrite(ctx context.Context, line string) (string, error) {
	return c.impl.Rewrite(ctx, line)
}
func (c *InProcessClient) Health(context.Context) error { return nil }
func (c *InProcessClient) Close() error                 { return nil }
