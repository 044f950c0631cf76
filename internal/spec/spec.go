package spec

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	SourceStdin = "stdin"
	SourceFile  = "file"
	SourceKafka = "kafka"

	VectorPassthrough = "passthrough"
	VectorGRPC        = "grpc"

	SinkStdout = "stdout"
	SinkKafka  = "kafka"
)

type Source struct {
	Kind   string `yaml:"kind"`   // stdin|file|kafka
	Config string `yaml:"config"` // koanf YAML, optional
}

func (s Source) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Kind, validation.Required, validation.In(SourceStdin, SourceFile, SourceKafka)),
	)
}

// VectorSpec selects the collaborator that rewrites VEX/EVEX rows.
type VectorSpec struct {
	Type        string `yaml:"type"`    // "passthrough", "grpc"
	Address     string `yaml:"address"` // e.g. "localhost:50051"
	TimeoutMS   int    `yaml:"timeout_ms"`
	RetryPolicy struct {
		Attempts  int `yaml:"attempts"`
		BackoffMS int `yaml:"backoff_ms"`
	} `yaml:"retry_policy"`
}

func (v VectorSpec) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Type, validation.Required, validation.In(VectorPassthrough, VectorGRPC)),
		validation.Field(&v.Address, validation.When(v.Type == VectorGRPC, validation.Required)),
		validation.Field(&v.TimeoutMS, validation.Min(0)),
	)
}

type sinkConfigs struct {
	Kafka string `yaml:"kafka"` // path to the kafka sink YAML
}

type MetricsSection struct {
	Textfile    string `yaml:"textfile"`    // node-exporter textfile path
	Pushgateway string `yaml:"pushgateway"` // e.g. "http://pushgateway:9091"
	Job         string `yaml:"job"`
}

type debugSection struct {
	PrintCounter bool `yaml:"print_counter"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	Source Source     `yaml:"source"`
	Vector VectorSpec `yaml:"vector"`

	Sinks       []string       `yaml:"sinks"`
	SinkConfigs sinkConfigs    `yaml:"sink_configs"`
	Metrics     MetricsSection `yaml:"metrics"`
	Debug       debugSection   `yaml:"debug"`
}

func (f File) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Source),
		validation.Field(&f.Vector),
		validation.Field(&f.Sinks, validation.Required, validation.Each(validation.In(SinkStdout, SinkKafka))),
	)
}

// Default is the pipeline used when no file is given: stdin rows, unchanged
// vector rows, stdout.
func Default() File {
	return File{
		SchemaVersion: "v1",
		Source:        Source{Kind: SourceStdin},
		Vector:        VectorSpec{Type: VectorPassthrough},
		Sinks:         []string{SinkStdout},
	}
}
