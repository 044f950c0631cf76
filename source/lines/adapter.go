package lines

import "context"

// EmitFunc receives one input row, in order.
type EmitFunc func(line string) error

type Adapter interface {
	Configure(Config) error
	// Run emits every row until end of input, then returns nil.
	Run(context.Context, EmitFunc) error
	Close() error
}
