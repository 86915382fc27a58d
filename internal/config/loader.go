package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/onedice/onedicebot/internal/errs"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "BOT"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"auto-push": "auto_push.enabled",
	"log-level": "logger.level",
}

// Load loads and validates configuration from:
// 1. Default values
// 2. the YAML file at path (optional, missing file is not an error)
// 3. BOT_* environment variables (BOT_TOKEN for the Telegram token)
// 4. flags that were explicitly set on the command line
//
// Every failure is returned as an errs.ConfigError.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("telegram.token", EnvPrefix+"_TOKEN", EnvPrefix+"_TELEGRAM_TOKEN"); err != nil {
		return nil, errs.NewConfigError("failed to bind token environment variable", err)
	}

	if err := readFile(v, path); err != nil {
		return nil, errs.NewConfigError("failed to load config file", err)
	}

	// Every known flag is bound. viper only ranks a flag above the file,
	// env and defaults once it has been changed on the command line.
	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, errs.NewConfigError(fmt.Sprintf("failed to bind flag %q", name), err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errs.NewConfigError("failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("Configuration loaded",
		"path", path,
		"log_level", cfg.Logger.Level,
		"locale", cfg.Messages.Locale,
		"auto_push", cfg.AutoPush.Enabled)

	return cfg, nil
}

// Validate checks the configuration. A missing token gets its own message so
// the operator knows which variable to set.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return errs.NewConfigError("telegram bot token is not set (export "+EnvPrefix+"_TOKEN)", nil)
	}

	if err := validator.New().Struct(c); err != nil {
		return errs.NewConfigError("invalid configuration", err)
	}

	return nil
}

// readFile merges the YAML file at path into v. An empty path or a missing
// file leaves the defaults in place.
func readFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	err := v.ReadInConfig()
	if err == nil {
		slog.Debug("Configuration file read", "path", path)
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Configuration file not found, using defaults", "path", path)
		return nil
	}

	return fmt.Errorf("failed to read %s: %w", path, err)
}
