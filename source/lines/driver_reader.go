package lines

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"optab/internal/logging"
)

// ErrLineTooLong is returned when a row exceeds Config.MaxLineBytes.
var ErrLineTooLong = errors.New("lines: row exceeds max_line_bytes")

// ReaderDriver reads rows from an io.Reader. The "stdin" driver reads
// os.Stdin; the "file" driver opens Config.Path.
type ReaderDriver struct {
	cfg  Config
	open func(Config) (io.ReadCloser, error)
	rc   io.ReadCloser
}

// NewReaderDriver reads from r. Close does not close r.
func NewReaderDriver(r io.Reader) *ReaderDriver {
	return &ReaderDriver{open: func(Config) (io.ReadCloser, error) { return io.NopCloser(r), nil }}
}

func (d *ReaderDriver) Configure(cfg Config) error {
	applyDefaults(&cfg)
	d.cfg = cfg
	return nil
}

func (d *ReaderDriver) Run(ctx context.Context, emit EmitFunc) error {
	if d.rc == nil {
		rc, err := d.open(d.cfg)
		if err != nil {
			return err
		}
		d.rc = rc
	}
	if d.cfg.MaxLineBytes <= 0 {
		applyDefaults(&d.cfg)
	}

	sc := bufio.NewScanner(d.rc)
	sc.Buffer(make([]byte, 0, min(64*1024, d.cfg.MaxLineBytes)), d.cfg.MaxLineBytes)
	n := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		if err := emit(sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("%w (after line %d)", ErrLineTooLong, n)
		}
		return err
	}
	logging.L().Debug("lines: end of input", "count", n)
	return nil
}

func (d *ReaderDriver) Close() error {
	if d.rc == nil {
		return nil
	}
	err := d.rc.Close()
	d.rc = nil
	return err
}

func openStdin(Config) (io.ReadCloser, error) { return io.NopCloser(os.Stdin), nil }

func openFile(cfg Config) (io.ReadCloser, error) {
	if cfg.Path == "" {
		return nil, errors.New("lines: file source needs a path")
	}
	return os.Open(cfg.Path)
}

func init() {
	Register("stdin", func() Adapter { return &ReaderDriver{open: openStdin} })
	Register("file", func() Adapter { return &ReaderDriver{open: openFile} })
}
