// Package config loads and validates the relay's configuration.
package config

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/classtools/push-relay/internal/semester"
)

// DBConfig holds the event-store connection settings. The DSN comes from the
// environment; the table name is the "database" option from the config file.
type DBConfig struct {
	DSN   string
	Table string
}

// QueueConfig holds the Redis queue settings. Messages are pushed onto the
// list <Namespace>:<Name>.
type QueueConfig struct {
	URL       string
	Namespace string
	Name      string
}

// Config holds the relay's configuration values. It is loaded once at startup
// and immutable thereafter.
type Config struct {
	Port        string
	WebhookPath string
	Secret      string
	Debug       bool
	LogLevel    slog.Level
	LogFormat   string
	LogOutput   string

	Database DBConfig
	Queue    QueueConfig

	MaxWorkers     int
	StoreTimeout   time.Duration
	PublishTimeout time.Duration

	Timezone  *time.Location
	Semesters []semester.Interval
}

// Accepted layouts for semester interval bounds, tried in order. Bounds
// without a zone are interpreted in the configured timezone.
var intervalLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Load reads configuration from a YAML file and the environment, sets
// defaults, and validates required fields. An empty file argument loads
// config.yaml from the working directory. Secrets (GITHUB_SECRET,
// POSTGRES_DSN, REDIS_URL) always come from the environment. Any malformed
// semester bound, unknown timezone, or missing secret is an error: the
// process must not begin listening with invalid configuration.
func Load(file string) (*Config, error) {
	v := viper.New()
	if file == "" {
		file = "config.yaml"
	}
	v.SetConfigFile(file)
	v.AutomaticEnv()

	v.SetDefault("port", "8188")
	v.SetDefault("webhook_path", "/")
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_output", "stdout")
	v.SetDefault("database", "push_events")
	v.SetDefault("queue_namespace", "githubgrader")
	v.SetDefault("queue_name", "push")
	v.SetDefault("max_workers", 5)
	v.SetDefault("store_timeout", 10*time.Second)
	v.SetDefault("publish_timeout", 10*time.Second)
	v.SetDefault("timezone", "UTC")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	if v.GetString("GITHUB_SECRET") == "" {
		return nil, fmt.Errorf("GITHUB_SECRET must be set")
	}
	if v.GetString("POSTGRES_DSN") == "" {
		return nil, fmt.Errorf("POSTGRES_DSN must be set")
	}
	if v.GetString("REDIS_URL") == "" {
		return nil, fmt.Errorf("REDIS_URL must be set")
	}

	webhookPath := v.GetString("webhook_path")
	if !strings.HasPrefix(webhookPath, "/") {
		return nil, fmt.Errorf("webhook_path must start with '/', got %q", webhookPath)
	}

	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", v.GetString("timezone"), err)
	}

	intervals, err := parseSemesters(v.GetStringMap("semesters"), loc)
	if err != nil {
		return nil, err
	}

	logLevel := slog.LevelInfo
	switch strings.ToLower(v.GetString("log_level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		slog.Warn("unrecognized log level, defaulting to info", "provided", v.GetString("log_level"))
	}
	if v.GetBool("debug") {
		logLevel = slog.LevelDebug
	}

	return &Config{
		Port:        v.GetString("port"),
		WebhookPath: webhookPath,
		Secret:      v.GetString("GITHUB_SECRET"),
		Debug:       v.GetBool("debug"),
		LogLevel:    logLevel,
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
		Database: DBConfig{
			DSN:   v.GetString("POSTGRES_DSN"),
			Table: v.GetString("database"),
		},
		Queue: QueueConfig{
			URL:       v.GetString("REDIS_URL"),
			Namespace: v.GetString("queue_namespace"),
			Name:      v.GetString("queue_name"),
		},
		MaxWorkers:     v.GetInt("max_workers"),
		StoreTimeout:   v.GetDuration("store_timeout"),
		PublishTimeout: v.GetDuration("publish_timeout"),
		Timezone:       loc,
		Semesters:      intervals,
	}, nil
}

// parseSemesters converts the raw "semesters" mapping (label -> {start, end})
// into intervals. Labels are sorted so that configuration errors are reported
// in a stable order.
func parseSemesters(raw map[string]any, loc *time.Location) ([]semester.Interval, error) {
	labels := make([]string, 0, len(raw))
	for label := range raw {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	intervals := make([]semester.Interval, 0, len(raw))
	for _, label := range labels {
		bounds, ok := raw[label].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("semester %q must be a mapping with start and end", label)
		}
		start, err := parseBound(bounds["start"], loc)
		if err != nil {
			return nil, fmt.Errorf("semester %q: invalid start: %w", label, err)
		}
		end, err := parseBound(bounds["end"], loc)
		if err != nil {
			return nil, fmt.Errorf("semester %q: invalid end: %w", label, err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("semester %q: end %s precedes start %s", label, end, start)
		}
		intervals = append(intervals, semester.Interval{Label: label, Start: start, End: end})
	}
	return intervals, nil
}

func parseBound(value any, loc *time.Location) (time.Time, error) {
	s, ok := value.(string)
	if !ok || s == "" {
		return time.Time{}, fmt.Errorf("bound is missing or not a string")
	}
	for _, layout := range intervalLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable bound %q", s)
}
