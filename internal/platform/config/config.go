package config

import (
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	dErrors "patients/pkg/domain-errors"
	"patients/pkg/validation"
)

// EnvPrefix namespaces every environment variable read by FromEnv.
const EnvPrefix = "PATIENTS"

// Defaults
const (
	DefaultFile       = "patients.csv"
	DefaultSuccessLog = "good_log.txt"
	DefaultErrorLog   = "error_log.txt"
	DefaultLogLevel   = "info"
)

// Config captures the file locations and log level of the patients tool.
type Config struct {
	// File is the append-only patient store.
	File string `mapstructure:"file" validate:"required,notblank,csvsafe"`
	// SuccessLog and ErrorLog receive the two audit channels.
	SuccessLog string `mapstructure:"success_log" validate:"required,notblank,csvsafe"`
	ErrorLog   string `mapstructure:"error_log" validate:"required,notblank,csvsafe"`
	LogLevel   string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// FromEnv builds a Config from PATIENTS_* environment variables so main stays lean.
func FromEnv() (Config, error) {
	return Load(viper.New())
}

// Load reads the configuration through v, applying defaults and env binding.
func Load(v *viper.Viper) (Config, error) {
	v.SetDefault("file", DefaultFile)
	v.SetDefault("success_log", DefaultSuccessLog)
	v.SetDefault("error_log", DefaultErrorLog)
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, dErrors.Wrap(err, dErrors.CodeValidation, "failed to decode configuration")
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := validation.Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level maps LogLevel onto slog. Unknown values fall back to info.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
