package kafka

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Brokers  []string `koanf:"brokers"`
	Topic    string   `koanf:"topic"`
	Acks     int16    `koanf:"required_acks"` // 1 or -1 (all); unset = -1
	Version  string   `koanf:"version"`
	ClientID string   `koanf:"client_id"`
	TLSEn    bool     `koanf:"tls_enabled"`
}

// LoadConfig merges YAML (if present) with env-vars
// (prefix `OPTAB_KAFKA__`, delimiter `__`).
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	sv := k.String("schema_version")
	if sv != "" && sv != "v1" {
		return Config{}, fmt.Errorf("kafka schema_version %q not supported (want v1)", sv)
	}

	_ = k.Load(env.Provider("OPTAB_KAFKA__", "__", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "OPTAB_KAFKA__"))
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return cfg, errors.New("kafka sink needs brokers and topic")
	}
	return cfg, nil
}

func applyDefaults(c *Config) {
	if c.Acks == 0 {
		c.Acks = -1
	}
	if c.Version == "" {
		c.Version = "2.8.0"
	}
	if c.ClientID == "" {
		c.ClientID = "optab"
	}
}
