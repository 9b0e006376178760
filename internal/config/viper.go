// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"fjacquet/spending-nb/internal/bayes"
	"fjacquet/spending-nb/internal/tokenizer"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. SPENDING_LOG_LEVEL.
const EnvPrefix = "SPENDING"

// LogConfig configures the logrus logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"required"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// CSVConfig configures statement parsing.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter" validate:"len=1"`
}

// DataConfig locates the historical file, the archive and the model cache.
type DataConfig struct {
	HistoryFile string `mapstructure:"history_file" yaml:"history_file" validate:"required"`
	ArchiveDir  string `mapstructure:"archive_dir" yaml:"archive_dir" validate:"required"`
	CacheFile   string `mapstructure:"cache_file" yaml:"cache_file" validate:"required"`
}

// ModelConfig selects how the classifier scores.
type ModelConfig struct {
	Scoring string `mapstructure:"scoring" yaml:"scoring" validate:"oneof=reference log-prior"`
}

// TokenizerConfig selects how descriptions are split.
type TokenizerConfig struct {
	Mode string `mapstructure:"mode" yaml:"mode" validate:"oneof=whitespace stemmed"`
}

// ReportConfig controls the printed report.
type ReportConfig struct {
	Color     bool `mapstructure:"color" yaml:"color"`
	Breakdown bool `mapstructure:"breakdown" yaml:"breakdown"`
	Progress  bool `mapstructure:"progress" yaml:"progress"`
	Top       int  `mapstructure:"top" yaml:"top" validate:"min=1"`
}

// Config represents the complete application configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	CSV       CSVConfig       `mapstructure:"csv" yaml:"csv"`
	Data      DataConfig      `mapstructure:"data" yaml:"data"`
	Model     ModelConfig     `mapstructure:"model" yaml:"model"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer" yaml:"tokenizer"`
	Report    ReportConfig    `mapstructure:"report" yaml:"report"`
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// ScoringMode returns the validated scoring mode.
func (c *Config) ScoringMode() bayes.ScoringMode {
	mode, _ := bayes.ParseScoringMode(c.Model.Scoring)
	return mode
}

// TokenizerMode returns the configured tokenizer mode.
func (c *Config) TokenizerMode() tokenizer.Mode {
	return tokenizer.Mode(c.Tokenizer.Mode)
}

// InitializeConfig loads configuration with hierarchical precedence:
// defaults, then config file, then SPENDING_* environment variables.
// A non-empty configFile must exist; otherwise config.yaml is searched in
// $HOME/.spending-nb, ./.spending-nb and the working directory.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.spending-nb")
		v.AddConfigPath(".spending-nb")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("data.history_file", "./history_archive/cc_history_041018_073118.csv")
	v.SetDefault("data.archive_dir", "./history_archive")
	v.SetDefault("data.cache_file", "./model_cache/model.db")

	v.SetDefault("model.scoring", string(bayes.ScoringReference))
	v.SetDefault("tokenizer.mode", string(tokenizer.ModeWhitespace))

	v.SetDefault("report.color", true)
	v.SetDefault("report.breakdown", false)
	v.SetDefault("report.progress", false)
	v.SetDefault("report.top", 3)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if err := validate.Struct(config); err != nil {
		return formatValidationError(err)
	}
	return nil
}

var validate = newValidator()

// newValidator reports fields by their config key rather than the Go name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatFieldError(e))
	}
	return errors.New(strings.Join(messages, "; "))
}

func formatFieldError(e validator.FieldError) string {
	key := e.Namespace()
	if i := strings.Index(key, "."); i >= 0 {
		key = key[i+1:]
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", key)
	case "len":
		return fmt.Sprintf("%s must be exactly %s character(s), got: %q", key, e.Param(), e.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s, got: %q", key, e.Param(), e.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s, got: %v", key, e.Param(), e.Value())
	default:
		return fmt.Sprintf("%s is invalid", key)
	}
}
