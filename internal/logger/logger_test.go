package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		log       func(l *slog.Logger)
		checkFunc func(t *testing.T, output string)
	}{
		{
			name:   "Text Logger Info Level",
			config: Config{Level: slog.LevelInfo, Format: "text", Output: "stdout"},
			log:    func(l *slog.Logger) { l.Info("test message") },
			checkFunc: func(t *testing.T, output string) {
				if !bytes.Contains([]byte(output), []byte("level=INFO")) ||
					!bytes.Contains([]byte(output), []byte("msg=\"test message\"")) {
					t.Errorf("Expected text log output with info level and message, got: %s", output)
				}
			},
		},
		{
			name:   "JSON Logger Debug Level",
			config: Config{Level: slog.LevelDebug, Format: "json", Output: "stdout"},
			log:    func(l *slog.Logger) { l.Debug("test message") },
			checkFunc: func(t *testing.T, output string) {
				var logEntry map[string]interface{}
				err := json.Unmarshal([]byte(output), &logEntry)
				if err != nil {
					t.Fatalf("Failed to unmarshal JSON log: %v, output: %s", err, output)
				}
				if logEntry["level"] != "DEBUG" || logEntry["msg"] != "test message" {
					t.Errorf("Expected JSON log output with debug level and message, got: %v", logEntry)
				}
			},
		},
		{
			name:   "Debug suppressed at info level",
			config: Config{Level: slog.LevelInfo, Format: "text", Output: "stdout"},
			log:    func(l *slog.Logger) { l.Debug("test message") },
			checkFunc: func(t *testing.T, output string) {
				if output != "" {
					t.Errorf("Expected debug line to be suppressed, got: %s", output)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.config, &buf)
			tt.log(logger)
			tt.checkFunc(t, buf.String())
		})
	}
}

// Callers configured for file output pass a nil writer and rely on NewLogger
// to open the file itself, so the open error is never silently dropped on
// their side.
func TestNewLoggerFileOutput(t *testing.T) {
	t.Chdir(t.TempDir())

	logger := NewLogger(Config{Level: slog.LevelInfo, Format: "text", Output: "file"}, nil)
	logger.Info("test message")

	contents, err := os.ReadFile(filepath.Join(".", "push-relay.log"))
	if err != nil {
		t.Fatalf("Expected push-relay.log to be created: %v", err)
	}
	if !bytes.Contains(contents, []byte("msg=\"test message\"")) {
		t.Errorf("Expected log line in push-relay.log, got: %s", contents)
	}
}
