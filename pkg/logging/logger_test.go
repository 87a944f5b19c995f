package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Level != InfoLevel {
		t.Errorf("expected default level %v, got %v", InfoLevel, config.Level)
	}
	if config.Format != TextFormat {
		t.Errorf("expected default format %v, got %v", TextFormat, config.Format)
	}
	if !config.AddCaller {
		t.Error("expected AddCaller to be true")
	}
	if !config.EnableColor {
		t.Error("expected EnableColor to be true")
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		level  logrus.Level
	}{
		{
			name:   "debug level",
			config: Config{Level: DebugLevel, Format: TextFormat},
			level:  logrus.DebugLevel,
		},
		{
			name:   "info level",
			config: Config{Level: InfoLevel, Format: JSONFormat},
			level:  logrus.InfoLevel,
		},
		{
			name:   "warn level",
			config: Config{Level: WarnLevel, Format: TextFormat},
			level:  logrus.WarnLevel,
		},
		{
			name:   "error level",
			config: Config{Level: ErrorLevel, Format: JSONFormat},
			level:  logrus.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.config)
			if logger == nil {
				t.Fatal("expected non-nil logger")
			}
			if logger.GetLevel() != tt.level {
				t.Errorf("expected level %v, got %v", tt.level, logger.GetLevel())
			}
		})
	}
}

func TestNewLoggerFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envLevel string
		envFmt   string
		wantLvl  logrus.Level
	}{
		{name: "debug from env", envLevel: "debug", envFmt: "json", wantLvl: logrus.DebugLevel},
		{name: "info from env", envLevel: "INFO", envFmt: "text", wantLvl: logrus.InfoLevel},
		{name: "warn from env", envLevel: "Warn", envFmt: "json", wantLvl: logrus.WarnLevel},
		{name: "no env vars", envLevel: "", envFmt: "", wantLvl: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envLevel != "" {
				os.Setenv("DOTLOTTIE_LOG_LEVEL", tt.envLevel)
				defer os.Unsetenv("DOTLOTTIE_LOG_LEVEL")
			}
			if tt.envFmt != "" {
				os.Setenv("DOTLOTTIE_LOG_FORMAT", tt.envFmt)
				defer os.Unsetenv("DOTLOTTIE_LOG_FORMAT")
			}

			logger := NewLoggerFromEnv()
			if logger == nil {
				t.Fatal("expected non-nil logger")
			}
			if logger.GetLevel() != tt.wantLvl {
				t.Errorf("expected level %v, got %v", tt.wantLvl, logger.GetLevel())
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input LogLevel
		want  logrus.Level
	}{
		{DebugLevel, logrus.DebugLevel},
		{InfoLevel, logrus.InfoLevel},
		{WarnLevel, logrus.WarnLevel},
		{ErrorLevel, logrus.ErrorLevel},
		{FatalLevel, logrus.FatalLevel},
		{"invalid", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			got := parseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("parseLogLevel(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	logger := NewLogger(DefaultConfig())
	entry := WithContext(logger, logrus.Fields{"key": "value"})

	if entry == nil {
		t.Fatal("expected non-nil entry")
	}
	if entry.Data["key"] != "value" {
		t.Errorf("expected field key=value, got %v", entry.Data["key"])
	}
}

func TestPlayerLogger(t *testing.T) {
	logger := NewLogger(DefaultConfig())
	entry := PlayerLogger(logger, "player-1")

	if entry == nil {
		t.Fatal("expected non-nil entry")
	}
	if entry.Data["system"] != "player" {
		t.Errorf("expected system=player, got %v", entry.Data["system"])
	}
	if entry.Data["playerID"] != "player-1" {
		t.Errorf("expected playerID=player-1, got %v", entry.Data["playerID"])
	}

	if PlayerLogger(nil, "x") != nil {
		t.Error("expected nil entry for nil logger")
	}
}

func TestContainerLogger(t *testing.T) {
	logger := NewLogger(DefaultConfig())
	entry := ContainerLogger(logger, "bundle.lottie")

	if entry == nil {
		t.Fatal("expected non-nil entry")
	}
	if entry.Data["source"] != "bundle.lottie" {
		t.Errorf("expected source=bundle.lottie, got %v", entry.Data["source"])
	}
}

func TestStateMachineLogger(t *testing.T) {
	logger := NewLogger(DefaultConfig())
	entry := StateMachineLogger(logger, "rating_sm")

	if entry == nil {
		t.Fatal("expected non-nil entry")
	}
	if entry.Data["stateMachineID"] != "rating_sm" {
		t.Errorf("expected stateMachineID=rating_sm, got %v", entry.Data["stateMachineID"])
	}
}

func TestThemeLogger(t *testing.T) {
	logger := NewLogger(DefaultConfig())
	entry := ThemeLogger(logger, "dark")

	if entry == nil {
		t.Fatal("expected non-nil entry")
	}
	if entry.Data["themeID"] != "dark" {
		t.Errorf("expected themeID=dark, got %v", entry.Data["themeID"])
	}
}

func TestInputsLogger(t *testing.T) {
	logger := NewLogger(DefaultConfig())
	entry := InputsLogger(logger)

	if entry == nil {
		t.Fatal("expected non-nil entry")
	}
	if entry.Data["system"] != "inputs" {
		t.Errorf("expected system=inputs, got %v", entry.Data["system"])
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:       InfoLevel,
		Format:      TextFormat,
		AddCaller:   false,
		EnableColor: false,
	})
	logger.SetOutput(&buf)

	logger.Info("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected log output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, "info") && !strings.Contains(output, "INFO") {
		t.Errorf("expected log output to contain log level, got: %s", output)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Level:     InfoLevel,
		Format:    JSONFormat,
		AddCaller: false,
	})
	logger.SetOutput(&buf)

	logger.WithFields(logrus.Fields{
		"animationID": "intro",
		"system":      "player",
	}).Info("test message")

	output := buf.String()
	if !strings.Contains(output, "\"message\":\"test message\"") {
		t.Errorf("expected JSON output to contain message field, got: %s", output)
	}
	if !strings.Contains(output, "\"animationID\":\"intro\"") {
		t.Errorf("expected JSON output to contain animationID field, got: %s", output)
	}
	if !strings.Contains(output, "\"system\":\"player\"") {
		t.Errorf("expected JSON output to contain system field, got: %s", output)
	}
}
