package kafka

import (
	"fmt"
	"strconv"

	"github.com/IBM/sarama"

	"optab/sink"
)

type driver struct {
	cfg Config
	p   sarama.SyncProducer

	newProducer func([]string, *sarama.Config) (sarama.SyncProducer, error)
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-sink: want Config, got %T", c)
	}
	d.cfg = cfg

	ver, err := sarama.ParseKafkaVersion(cfg.Version)
	if err != nil {
		return err
	}
	sc := sarama.NewConfig()
	sc.Version = ver
	sc.ClientID = cfg.ClientID
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.Acks)
	sc.Producer.Return.Successes = true
	if cfg.TLSEn {
		sc.Net.TLS.Enable = true
	}
	d.p, err = d.newProducer(cfg.Brokers, sc)
	return err
}

// Push blocks until the broker acknowledges the row, so a finished run means
// every row was delivered.
func (d *driver) Push(r sink.Record) error {
	_, _, err := d.p.SendMessage(&sarama.ProducerMessage{
		Topic: d.cfg.Topic,
		Key:   sarama.StringEncoder(strconv.Itoa(r.Seq)),
		Value: sarama.StringEncoder(r.Line),
	})
	if err != nil {
		return fmt.Errorf("kafka-sink: row %d: %w", r.Seq, err)
	}
	return nil
}

func (d *driver) Close() error {
	if d.p == nil {
		return nil
	}
	err := d.p.Close()
	d.p = nil
	return err
}

func init() {
	sink.Register("kafka", func() sink.Adapter { return &driver{newProducer: sarama.NewSyncProducer} })
}
