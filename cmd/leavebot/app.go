package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/guilherme-santos/leavebot/calendar/google"
	"github.com/guilherme-santos/leavebot/chat"
	"github.com/guilherme-santos/leavebot/chat/slack"
	"github.com/guilherme-santos/leavebot/internal"
	"github.com/guilherme-santos/leavebot/internal/config"
	"github.com/guilherme-santos/leavebot/internal/report"
	"github.com/guilherme-santos/leavebot/internal/runner"
)

type app struct {
	configPath string
	envFile    string
	logLevel   string

	cfg    config.Config
	logger zerolog.Logger
	output io.Writer
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "leavebot",
		Short:         "Posts team leave and meeting summaries from Google Calendar to Slack",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(a.output)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file (environment variables take precedence)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVar(&a.logLevel, "log-level", "", "log level, overrides LOG_LEVEL")

	cmd.AddCommand(a.serveCmd())
	cmd.AddCommand(a.runCmd())
	cmd.AddCommand(a.reportsCmd())
	return cmd
}

// load reads the configuration and replaces the bootstrap logger.
func (a *app) load() error {
	cfg, err := config.Load(a.configPath, a.envFile)
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	logger, err := internal.NewLogger(os.Stderr, level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("config: log level %q: %w", level, err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) runner(ctx context.Context, dryRun bool) (*runner.Runner, error) {
	source, err := google.NewClient(ctx, a.logger, []byte(a.cfg.Google.Credentials))
	if err != nil {
		return nil, err
	}

	var notifier internal.Notifier
	if dryRun {
		notifier = chat.WriterNotifier{W: a.output}
	} else {
		notifier, err = slack.NewNotifier(a.logger, a.cfg.Slack.Token, a.cfg.Slack.ChannelID)
		if err != nil {
			return nil, err
		}
	}

	builder := report.NewBuilder(a.logger, source,
		a.cfg.TeamCalendars(), a.cfg.PrimaryCalendar(), a.cfg.SecondaryCalendar())
	return runner.New(a.logger, builder, notifier), nil
}
