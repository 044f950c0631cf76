package kafka

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/IBM/sarama"

	"optab/internal/logging"
	"optab/source/lines"
)

// offsetReader is the part of sarama.Client the driver needs.
type offsetReader interface {
	GetOffset(topic string, partition int32, time int64) (int64, error)
	Close() error
}

// Driver reads a topic as a finite table: every partition is read from the
// oldest retained offset up to the high-water mark seen when Run starts.
// Partitions are read one after another in ascending order, so a
// single-partition topic keeps the producer's row order.
type Driver struct {
	cfg     Config
	maxLine int

	offsets  offsetReader
	consumer sarama.Consumer
}

// New returns a Driver for cfg. Brokers are contacted in Configure.
func New(cfg Config) *Driver { return &Driver{cfg: cfg} }

var _ lines.Adapter = (*Driver)(nil)

func (d *Driver) Configure(c lines.Config) error {
	d.maxLine = c.MaxLineBytes
	if d.consumer != nil {
		return nil
	}

	ver, err := sarama.ParseKafkaVersion(d.cfg.Version)
	if err != nil {
		return err
	}
	sc := sarama.NewConfig()
	sc.Version = ver
	sc.ClientID = d.cfg.ClientID
	sc.Consumer.Return.Errors = true
	if d.cfg.TLSEn {
		sc.Net.TLS.Enable = true
	}
	if d.cfg.SASLUser != "" {
		sc.Net.SASL.Enable = true
		sc.Net.SASL.User, sc.Net.SASL.Password = d.cfg.SASLUser, d.cfg.SASLPass
	}

	cl, err := sarama.NewClient(d.cfg.Brokers, sc)
	if err != nil {
		return err
	}
	cons, err := sarama.NewConsumerFromClient(cl)
	if err != nil {
		_ = cl.Close()
		return err
	}
	d.offsets, d.consumer = cl, cons
	return nil
}

func (d *Driver) Run(ctx context.Context, emit lines.EmitFunc) error {
	if d.consumer == nil {
		return errors.New("kafka-source: not configured")
	}
	parts, err := d.consumer.Partitions(d.cfg.Topic)
	if err != nil {
		return fmt.Errorf("kafka-source: %s: %w", d.cfg.Topic, err)
	}
	parts = slices.Clone(parts)
	slices.Sort(parts)

	total := 0
	for _, p := range parts {
		n, err := d.drain(ctx, p, emit)
		total += n
		if err != nil {
			return err
		}
	}
	logging.L().Debug("kafka-source: end of input", "topic", d.cfg.Topic, "partitions", len(parts), "count", total)
	return nil
}

func (d *Driver) drain(ctx context.Context, p int32, emit lines.EmitFunc) (int, error) {
	oldest, err := d.offsets.GetOffset(d.cfg.Topic, p, sarama.OffsetOldest)
	if err != nil {
		return 0, fmt.Errorf("kafka-source: partition %d: %w", p, err)
	}
	hwm, err := d.offsets.GetOffset(d.cfg.Topic, p, sarama.OffsetNewest)
	if err != nil {
		return 0, fmt.Errorf("kafka-source: partition %d: %w", p, err)
	}
	if hwm <= oldest {
		return 0, nil
	}

	pc, err := d.consumer.ConsumePartition(d.cfg.Topic, p, sarama.OffsetOldest)
	if err != nil {
		return 0, fmt.Errorf("kafka-source: partition %d: %w", p, err)
	}
	defer pc.AsyncClose()

	n := 0
	for {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case cerr, ok := <-pc.Errors():
			if ok {
				return n, fmt.Errorf("kafka-source: partition %d: %w", p, cerr.Err)
			}
		case msg, ok := <-pc.Messages():
			if !ok {
				return n, fmt.Errorf("kafka-source: partition %d closed before offset %d", p, hwm)
			}
			row := strings.TrimRight(string(msg.Value), "\r\n")
			if d.maxLine > 0 && len(row) > d.maxLine {
				return n, fmt.Errorf("%w (partition %d offset %d)", lines.ErrLineTooLong, p, msg.Offset)
			}
			n++
			if err := emit(row); err != nil {
				return n, err
			}
			if msg.Offset >= hwm-1 {
				return n, nil
			}
		}
	}
}

func (d *Driver) Close() error {
	var errs []error
	if d.consumer != nil {
		errs = append(errs, d.consumer.Close())
		d.consumer = nil
	}
	if d.offsets != nil {
		errs = append(errs, d.offsets.Close())
		d.offsets = nil
	}
	return errors.Join(errs...)
}
