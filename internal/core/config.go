// Package core holds the xl configuration manager: loading .xlconfig with
// Viper, applying defaults and validating the result.
package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"github.com/xhanalabs/xl/pkg/models"
)

// ConfigFileName is the base name of the config file, read as YAML.
const ConfigFileName = ".xlconfig"

// ConfigurationManager defines the interface for loading and validating
// the xl configuration.
type ConfigurationManager interface {
	LoadConfig() (*models.Config, error)
	ValidateConfig(cfg *models.Config) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	// basePath is the directory where .xlconfig resides.
	basePath string
	// file, when set, is read instead of searching basePath.
	file string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// .xlconfig from basePath. A non-empty file overrides the search.
func NewConfigurationManager(basePath, file string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath, file: file}
}

// DefaultConfig returns a Config populated with the built-in defaults.
func DefaultConfig() *models.Config {
	return &models.Config{
		Random:  models.RandomConfig{Alphabet: models.DefaultAlphabet},
		KV:      models.KVConfig{ElementSeparator: "=", ItemSeparator: "&"},
		Exec:    models.ExecConfig{Timeout: 0},
		History: models.HistoryConfig{Enabled: true},
		Log:     models.LogConfig{Level: "info"},
	}
}

// LoadConfig reads .xlconfig using Viper. If no file exists the defaults
// are returned. XL_* environment variables override file values.
func (cm *viperConfigManager) LoadConfig() (*models.Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if cm.file != "" {
		v.SetConfigFile(cm.file)
	} else {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(cm.basePath)
	}
	v.SetConfigType("yaml")
	v.SetEnvPrefix("XL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("random.alphabet", cfg.Random.Alphabet)
	v.SetDefault("kv.element_separator", cfg.KV.ElementSeparator)
	v.SetDefault("kv.item_separator", cfg.KV.ItemSeparator)
	v.SetDefault("exec.timeout", cfg.Exec.Timeout)
	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("log.level", cfg.Log.Level)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cm.file != "" {
			return nil, fmt.Errorf("reading %s: %w", configLabel(cm.file), err)
		}
	}

	cfg.Random.Alphabet = v.GetString("random.alphabet")
	cfg.KV.ElementSeparator = v.GetString("kv.element_separator")
	cfg.KV.ItemSeparator = v.GetString("kv.item_separator")
	cfg.Exec.Timeout = v.GetDuration("exec.timeout")
	cfg.History.Enabled = v.GetBool("history.enabled")
	cfg.Log.Level = v.GetString("log.level")

	if err := v.UnmarshalKey("labels", &cfg.Labels); err != nil {
		return nil, fmt.Errorf("parsing labels: %w", err)
	}

	return cfg, nil
}

func configLabel(file string) string {
	if file != "" {
		return file
	}
	return ConfigFileName
}

// validLogLevels is the set of accepted log.level values.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks cfg for invalid values and returns one error
// listing every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.Random.Alphabet == "" {
		errs = append(errs, "random.alphabet must not be empty")
	}

	if utf8.RuneCountInString(cfg.KV.ElementSeparator) != 1 {
		errs = append(errs, fmt.Sprintf("kv.element_separator %q must be exactly one character", cfg.KV.ElementSeparator))
	}
	if utf8.RuneCountInString(cfg.KV.ItemSeparator) != 1 {
		errs = append(errs, fmt.Sprintf("kv.item_separator %q must be exactly one character", cfg.KV.ItemSeparator))
	}
	if cfg.KV.ElementSeparator == cfg.KV.ItemSeparator {
		errs = append(errs, "kv.element_separator and kv.item_separator must differ")
	}

	if cfg.Exec.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("exec.timeout must not be negative, got %s", cfg.Exec.Timeout))
	}

	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level %q must be one of debug, info, warn, error", cfg.Log.Level))
	}

	if err := cfg.Labels.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("labels: %s", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
