package models

import (
	"time"

	"github.com/xhanalabs/xl/pkg/toolbox"
)

// DefaultAlphabet is used by `xl random string` when no alphabet is given.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomConfig holds defaults for the random generators.
type RandomConfig struct {
	Alphabet string `yaml:"alphabet" mapstructure:"alphabet"`
}

// KVConfig holds the default separators for key-value parsing.
type KVConfig struct {
	ElementSeparator string `yaml:"element_separator" mapstructure:"element_separator"`
	ItemSeparator    string `yaml:"item_separator" mapstructure:"item_separator"`
}

// ExecConfig bounds shell commands run through `xl exec`. A zero timeout
// leaves commands unbounded.
type ExecConfig struct {
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// HistoryConfig controls the JSONL invocation history.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// LogConfig selects the CLI log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// Config holds all settings read from .xlconfig via Viper.
type Config struct {
	Random  RandomConfig       `yaml:"random" mapstructure:"random"`
	KV      KVConfig           `yaml:"kv" mapstructure:"kv"`
	Exec    ExecConfig         `yaml:"exec" mapstructure:"exec"`
	History HistoryConfig      `yaml:"history" mapstructure:"history"`
	Log     LogConfig          `yaml:"log" mapstructure:"log"`
	Labels  toolbox.LabelTable `yaml:"labels,omitempty" mapstructure:"labels"`
}
