package logger_test

import (
	"log/slog"
	"testing"

	"github.com/akehoe/bracketlab/internal/logger"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tc := range cases {
		if got := logger.ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSetLevel(t *testing.T) {
	log := logger.New()
	if log.GetLevel() != slog.LevelInfo {
		t.Errorf("default level = %v, want info", log.GetLevel())
	}

	log.SetLevel(slog.LevelDebug)
	if log.GetLevel() != slog.LevelDebug {
		t.Errorf("level after SetLevel = %v, want debug", log.GetLevel())
	}
}

func TestHTTPLoggingToggle(t *testing.T) {
	log := logger.New()
	if log.IsHTTPLoggingEnabled() {
		t.Error("HTTP logging should default to off")
	}

	log.EnableHTTPLogging()
	if !log.IsHTTPLoggingEnabled() {
		t.Error("HTTP logging should be on after enable")
	}

	log.DisableHTTPLogging()
	if log.IsHTTPLoggingEnabled() {
		t.Error("HTTP logging should be off after disable")
	}
}
