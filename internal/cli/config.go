package cli

import (
	"errors"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ghettovoice/connuri/internal/errorutil"
	"github.com/ghettovoice/connuri/internal/log"
)

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputURI  = "uri"
)

const envPrefix = "CONNURI"

// Config is the CLI configuration.
type Config struct {
	Output       string    `mapstructure:"output"`
	ShowPassword bool      `mapstructure:"show_password"`
	Log          LogConfig `mapstructure:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("output", OutputJSON)
	v.SetDefault("show_password", false)
	v.SetDefault("log.format", log.FormatNone)
	v.SetDefault("log.level", "info")
}

// bindFlags maps command flags to configuration keys.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range map[string]string{
		"output":        "output",
		"show_password": "show-password",
		"log.format":    "log-format",
		"log.level":     "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

// loadConfig reads configuration from the file at path (if not empty), CONNURI_* environment variables and flags.
// Flags take precedence over the environment, the environment over the file.
func loadConfig(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	applyDefaults(v)

	if err := bindFlags(v, fs); err != nil {
		return nil, errtrace.Wrap(err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := cfg.validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	var errs []error
	switch cfg.Output {
	case OutputJSON, OutputYAML, OutputURI:
	default:
		errs = append(errs, errorutil.NewInvalidArgumentError("output must be one of json, yaml, uri, got %q", cfg.Output))
	}
	switch cfg.Log.Format {
	case log.FormatConsole, log.FormatDev, log.FormatJSON, log.FormatNone:
	default:
		errs = append(errs, errorutil.NewInvalidArgumentError("log.format must be one of console, dev, json, none, got %q", cfg.Log.Format))
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, errtrace.Wrap(err))
	}
	return errtrace.Wrap(errors.Join(errs...))
}

func (cfg *Config) level() slog.Level {
	lvl, _ := log.ParseLevel(cfg.Log.Level)
	return lvl
}
