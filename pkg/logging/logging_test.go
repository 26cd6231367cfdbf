package logging

import (
	"log/slog"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewZapProductionLevel(t *testing.T) {
	logger, err := NewZap(false, "warn")
	if err != nil {
		t.Fatalf("NewZap: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info enabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn disabled at warn level")
	}

	dev, err := NewZap(true, "error")
	if err != nil {
		t.Fatalf("NewZap dev: %v", err)
	}
	if !dev.Core().Enabled(zapcore.DebugLevel) {
		t.Error("development logger should log debug")
	}
}
