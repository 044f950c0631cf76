package opcode

import (
	"context"
	"fmt"
	"log/slog"
)

// VectorRewriter rewrites VEX/EVEX rows. The rules live outside this package.
type VectorRewriter interface {
	Rewrite(ctx context.Context, line string) (string, error)
}

// Stats counts what happened to the rows of one Transform call.
type Stats struct {
	Read    int
	Written int
	Vector  int
	Dropped map[Class]int
}

// DroppedTotal sums the dropped rows over all reasons.
func (s Stats) DroppedTotal() int {
	n := 0
	for _, c := range s.Dropped {
		n += c
	}
	return n
}

// Transformer applies classification and the rule chain to a batch of rows.
type Transformer struct {
	vector VectorRewriter
	log    *slog.Logger
}

type Option func(*Transformer)

// WithLogger sets the logger used for per-row debug output.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transformer) { t.log = l }
}

func New(vector VectorRewriter, opts ...Option) *Transformer {
	t := &Transformer{vector: vector, log: slog.Default()}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Transform rewrites lines and returns the survivors in their original
// relative order. A rewriter error aborts the whole batch.
func (t *Transformer) Transform(ctx context.Context, lines []string) ([]string, Stats, error) {
	st := Stats{Read: len(lines), Dropped: map[Class]int{}}
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		switch c := Classify(line); {
		case c == Vector:
			if t.vector == nil {
				return nil, st, fmt.Errorf("line %d: no vector rewriter configured", i+1)
			}
			v, err := t.vector.Rewrite(ctx, line)
			if err != nil {
				return nil, st, fmt.Errorf("line %d: vector rewrite: %w", i+1, err)
			}
			st.Vector++
			out = append(out, v)
		case c.Dropped():
			st.Dropped[c]++
			t.log.Debug("row dropped", "line", i+1, "reason", c.String())
		default:
			out = append(out, Normalize(line))
		}
	}
	st.Written = len(out)
	return out, st, nil
}
