package config

import (
	"optab/source/kafka"
	"optab/source/lines"
)

// LoadSourceConfig delegates to the line source loader.
func LoadSourceConfig(path string) (lines.Config, error) {
	return lines.LoadConfig(path)
}

// LoadKafkaSourceConfig reads the `kafka:` block of the same source file.
func LoadKafkaSourceConfig(path string) (kafka.Config, error) {
	return kafka.LoadConfig(path)
}
