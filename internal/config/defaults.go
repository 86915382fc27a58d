package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	// Telegram defaults
	DefaultPublishCommands = true

	// Link defaults
	DefaultAppURL     = "https://onedice.ru/"
	DefaultChannelURL = "https://t.me/onedices"
	DefaultChatURL    = "https://t.me/myonedice"

	// Message defaults
	DefaultLocale = "ru"

	// Auto-push defaults
	DefaultAutoPushEnabled = false
	DefaultGitPath         = "git"
	DefaultAutoPushDir     = "."
	DefaultAutoPushRemote  = "origin"
	DefaultAutoPushBranch  = "main"
	DefaultAutoPushTimeout = time.Minute

	// Scheduler defaults
	HealthCheckTask            = "health_check"
	DefaultHealthCheckSchedule = "0 */15 * * * *"
)

var defaults = map[string]any{
	"logger.level": DefaultLogLevel,
	"logger.json":  DefaultLogJSON,

	"telegram.publish_commands": DefaultPublishCommands,

	"links.app":     DefaultAppURL,
	"links.channel": DefaultChannelURL,
	"links.chat":    DefaultChatURL,

	"messages.locale":           DefaultLocale,
	"messages.welcome_template": "",
	"messages.fallback_name":    "",
	"messages.app_button":       "",
	"messages.channel_button":   "",
	"messages.chat_button":      "",
	"messages.start_command":    "",

	"auto_push.enabled":  DefaultAutoPushEnabled,
	"auto_push.git_path": DefaultGitPath,
	"auto_push.dir":      DefaultAutoPushDir,
	"auto_push.remote":   DefaultAutoPushRemote,
	"auto_push.branch":   DefaultAutoPushBranch,
	"auto_push.timeout":  DefaultAutoPushTimeout,

	"scheduler.tasks": map[string]any{
		HealthCheckTask: map[string]any{
			"enabled":  true,
			"schedule": DefaultHealthCheckSchedule,
		},
	},
}
