// Package main contains the entrypoint for the OneDice Telegram bot.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbot "github.com/go-telegram/bot"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/onedice/onedicebot/internal/autopush"
	"github.com/onedice/onedicebot/internal/bot"
	"github.com/onedice/onedicebot/internal/bot/handlers"
	"github.com/onedice/onedicebot/internal/bot/tasks"
	"github.com/onedice/onedicebot/internal/config"
	"github.com/onedice/onedicebot/internal/errs"
	"github.com/onedice/onedicebot/internal/logger"
	"github.com/onedice/onedicebot/internal/reply"
	"github.com/onedice/onedicebot/internal/telegram"
)

// Version is set at build time.
var Version = "dev"

// startupSyncer commits and pushes the working tree once at startup.
type startupSyncer interface {
	Sync(ctx context.Context) autopush.Result
}

var (
	loadDotEnv     = godotenv.Load
	newTelegramBot = telegram.NewTelegramBot
	newSyncer      = func(cfg config.AutoPushConfig, log *slog.Logger) startupSyncer {
		return autopush.NewRunner(cfg, log)
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "bot",
		Short:         "OneDice Telegram bot",
		Long:          "Answers /start with the OneDice welcome message and links to the app, channel and chat.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath, cmd)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "./config.yaml", "Path to configuration file")
	cmd.Flags().Bool("auto-push", false, "Commit and push the working tree to the git remote on startup")
	cmd.Flags().String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")

	return cmd
}

// run initializes and starts all application components (config, logger,
// startup sync, telegram client, dispatcher, scheduler) and blocks until ctx
// is cancelled. The startup sync runs before any Telegram call and its
// outcome never stops the bot.
func run(ctx context.Context, configPath string, cmd *cobra.Command) error {
	if err := loadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		slog.Error("Failed to load configuration", "path", configPath, "error", err)
		return err
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON, "version", Version)

	composer, err := reply.NewComposer(composerOptions(cfg))
	if err != nil {
		log.Error("Invalid welcome message configuration", "error", err)
		return errs.NewConfigError("invalid welcome message configuration", err)
	}

	if cfg.AutoPush.Enabled {
		res := newSyncer(cfg.AutoPush, log).Sync(ctx)
		log.Info("Startup sync finished", "success", res.Success, "stage", res.Stage)
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithErrorsHandler(func(err error) {
			log.Error("Telegram polling error", "error", err)
		}),
	}
	tg, err := newTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return err
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return err
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	hDeps := handlers.HandlerDeps{
		Logger:           log,
		Composer:         composer,
		Sender:           telegram.NewGateway(tg, log),
		StartDescription: composer.StartCommand(),
	}
	commands := handlers.RegisterAllCommands(hDeps)
	dispatcher := handlers.NewDispatcher(log, me.Username, commands)
	if err := telegram.RegisterDispatcher(tg, log, dispatcher.HandleUpdate); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return err
	}

	if cfg.Telegram.PublishCommands {
		if err := telegram.PublishCommands(ctx, tg, log, commands); err != nil {
			log.Warn("Failed to publish bot commands", "error", err)
		}
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{
		Logger:  log,
		BotInfo: tg,
	}))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return err
	}

	app := bot.NewBot(log, tg, sched)

	log.Info("Starting bot...")
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Bot stopped due to error", "error", err)
		return fmt.Errorf("bot stopped: %w", err)
	}

	log.Info("Bot stopped gracefully.")
	return nil
}

func composerOptions(cfg *config.Config) reply.Options {
	return reply.Options{
		Locale:        cfg.Messages.Locale,
		Template:      cfg.Messages.WelcomeTemplate,
		FallbackName:  cfg.Messages.FallbackName,
		AppButton:     cfg.Messages.AppButton,
		ChannelButton: cfg.Messages.ChannelButton,
		ChatButton:    cfg.Messages.ChatButton,
		StartCommand:  cfg.Messages.StartCommand,
		Links: reply.Links{
			App:     cfg.Links.App,
			Channel: cfg.Links.Channel,
			Chat:    cfg.Links.Chat,
		},
	}
}
