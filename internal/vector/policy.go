package vector

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"optab/internal/logging"
	"optab/internal/opcode"
)

// Policy bounds each rewrite call. Attempts counts retries after the first
// call; zero values disable the timeout and retries.
type Policy struct {
	Timeout  time.Duration
	Attempts int
	Backoff  time.Duration
}

type policyRewriter struct {
	next opcode.VectorRewriter
	p    Policy
}

func WithPolicy(next opcode.VectorRewriter, p Policy) opcode.VectorRewriter {
	if p.Timeout <= 0 && p.Attempts <= 0 {
		return next
	}
	return &policyRewriter{next: next, p: p}
}

func (r *policyRewriter) Rewrite(ctx context.Context, line string) (string, error) {
	var err error
	for attempt := 0; attempt <= r.p.Attempts; attempt++ {
		if attempt > 0 {
			logging.L().Warn("vector: retrying rewrite", "attempt", attempt, "err", err)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(r.p.Backoff):
			}
		}
		var out string
		if out, err = r.call(ctx, line); err == nil {
			return out, nil
		}
		if status.Code(err) == codes.InvalidArgument || ctx.Err() != nil {
			break
		}
	}
	return "", err
}

func (r *policyRewriter) call(ctx context.Context, line string) (string, error) {
	if r.p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.p.Timeout)
		defer cancel()
	}
	return r.next.Rewrite(ctx, line)
}
