// optab/sink/stdout/driver.go
package stdout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"optab/sink"
)

/* ────────── public config ────────── */
type Config struct {
	PrintCounter bool `yaml:"print_counter"` // prepend output seq#
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config

	mu sync.Mutex // guards w
	w  *bufio.Writer
}

func newDriver(w io.Writer) *driver {
	return &driver{w: bufio.NewWriter(w)}
}

/* ────────── sink.Adapter ────────── */
func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-sink: expected Config, got %T", raw)
	}
	d.cfg = c
	return nil
}

func (d *driver) Push(r sink.Record) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cfg.PrintCounter {
		if _, err := fmt.Fprintf(d.w, "[%06d] ", r.Seq); err != nil {
			return err
		}
	}
	if _, err := d.w.WriteString(r.Line); err != nil {
		return err
	}
	return d.w.WriteByte('\n')
}

func (d *driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.w.Flush()
}

/* ────────── auto-register ────────── */
func init() {
	sink.Register("stdout", func() sink.Adapter { return newDriver(os.Stdout) })
}
