// Package config loads the process configuration once at startup.
//
// Values come from, in priority order: environment variables, an optional
// YAML file and defaults. A .env file, when present, is loaded into the
// environment first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/guilherme-santos/leavebot/internal"
)

type Config struct {
	Slack     SlackConfig     `mapstructure:"slack"`
	Google    GoogleConfig    `mapstructure:"google"`
	Calendars CalendarsConfig `mapstructure:"calendars"`
	Log       LogConfig       `mapstructure:"log"`
}

type SlackConfig struct {
	Token     string `mapstructure:"token"`
	ChannelID string `mapstructure:"channel_id"`
}

type GoogleConfig struct {
	// Credentials is the credentials JSON itself, CredentialsFile a path to it.
	Credentials     string `mapstructure:"credentials"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type CalendarsConfig struct {
	Primary   string   `mapstructure:"primary"`
	Secondary string   `mapstructure:"secondary"`
	Team      []string `mapstructure:"team"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var envBindings = map[string]string{
	"slack.token":             "SLACK_TOKEN",
	"slack.channel_id":        "SLACK_CHANNEL_ID",
	"google.credentials":      "GOOGLE_CREDENTIALS",
	"google.credentials_file": "GOOGLE_CREDENTIALS_FILE",
	"calendars.primary":       "PRIMARY_CALENDAR_ID",
	"calendars.secondary":     "SECONDARY_CALENDAR_ID",
	"calendars.team":          "TEAM_CALENDAR_IDS",
	"log.level":               "LOG_LEVEL",
	"log.format":              "LOG_FORMAT",
}

// Load reads envFile (skipped when empty or missing) and the YAML file at
// path (skipped when empty) and returns a validated configuration.
func Load(path, envFile string) (Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("calendars.primary", "primary")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("config: binding %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing: %w", err)
	}
	// From the environment the team list is a single comma separated value.
	cfg.Calendars.Team = splitList(cfg.Calendars.Team)
	cfg.Calendars.Primary = strings.TrimSpace(cfg.Calendars.Primary)
	cfg.Calendars.Secondary = strings.TrimSpace(cfg.Calendars.Secondary)

	if cfg.Google.Credentials == "" && cfg.Google.CredentialsFile != "" {
		b, err := os.ReadFile(cfg.Google.CredentialsFile)
		if err != nil {
			return Config{}, fmt.Errorf("config: reading google credentials: %w", err)
		}
		cfg.Google.Credentials = string(b)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// Validate reports every missing required setting at once.
func (c Config) Validate() error {
	var errs []error
	missing := func(key string) {
		errs = append(errs, fmt.Errorf("config: %s (%s) is required", key, envBindings[key]))
	}
	if c.Slack.Token == "" {
		missing("slack.token")
	}
	if c.Slack.ChannelID == "" {
		missing("slack.channel_id")
	}
	if c.Google.Credentials == "" {
		missing("google.credentials")
	}
	if c.Calendars.Primary == "" {
		missing("calendars.primary")
	}
	if len(c.Calendars.Team) == 0 {
		missing("calendars.team")
	}
	return errors.Join(errs...)
}

func (c Config) TeamCalendars() []internal.Calendar {
	return internal.NewCalendars(c.Calendars.Team)
}

func (c Config) PrimaryCalendar() internal.Calendar {
	return internal.Calendar{ID: c.Calendars.Primary}
}

// SecondaryCalendar is nil when no personal calendar is configured.
func (c Config) SecondaryCalendar() *internal.Calendar {
	if c.Calendars.Secondary == "" {
		return nil
	}
	return &internal.Calendar{ID: c.Calendars.Secondary}
}
