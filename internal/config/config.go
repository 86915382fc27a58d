// Package config provides configuration loading, validation, and management
// for the OneDice bot. Values come from defaults, an optional YAML file,
// BOT_* environment variables and command-line flags, in increasing order of
// precedence.
package config

import "time"

// Config defines the application configuration parameters for all components
// of the bot.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Links     LinksConfig     `mapstructure:"links"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	AutoPush  AutoPushConfig  `mapstructure:"auto_push"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LoggerConfig controls the slog handler.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the transport settings. Token is read from BOT_TOKEN.
type TelegramConfig struct {
	Token           string `mapstructure:"token"            validate:"required"`
	PublishCommands bool   `mapstructure:"publish_commands"`
}

// LinksConfig holds the three link targets attached to the welcome message.
// URLs are passed to Telegram unchanged.
type LinksConfig struct {
	App     string `mapstructure:"app"     validate:"required"`
	Channel string `mapstructure:"channel" validate:"required"`
	Chat    string `mapstructure:"chat"    validate:"required"`
}

// MessagesConfig selects the welcome text. Empty overrides fall back to the
// built-in texts of Locale.
type MessagesConfig struct {
	Locale          string `mapstructure:"locale"           validate:"oneof=ru en"`
	WelcomeTemplate string `mapstructure:"welcome_template"`
	FallbackName    string `mapstructure:"fallback_name"`
	AppButton       string `mapstructure:"app_button"`
	ChannelButton   string `mapstructure:"channel_button"`
	ChatButton      string `mapstructure:"chat_button"`
	StartCommand    string `mapstructure:"start_command"`
}

// AutoPushConfig controls the startup sync of the working tree to a git remote.
type AutoPushConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	GitPath string        `mapstructure:"git_path" validate:"required_if=Enabled true"`
	Dir     string        `mapstructure:"dir"`
	Remote  string        `mapstructure:"remote"   validate:"required_if=Enabled true"`
	Branch  string        `mapstructure:"branch"   validate:"required_if=Enabled true"`
	Timeout time.Duration `mapstructure:"timeout"  validate:"min=1s,max=30m"`
}

// SchedulerConfig lists periodic tasks by registry name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task and sets its 6-field cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}
