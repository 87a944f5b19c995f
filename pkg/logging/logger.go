package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the minimum log level.
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// LogFormat represents the output format for logs.
type LogFormat string

const (
	JSONFormat LogFormat = "json"
	TextFormat LogFormat = "text"
)

// Config holds logger configuration.
type Config struct {
	// Level sets the minimum log level
	Level LogLevel

	// Format sets the output format (json or text)
	Format LogFormat

	// AddCaller adds file and line number to log entries
	AddCaller bool

	// EnableColor enables colored output for text format
	EnableColor bool
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:       InfoLevel,
		Format:      TextFormat,
		AddCaller:   true,
		EnableColor: true,
	}
}

// NewLogger creates a new configured logger instance.
func NewLogger(config Config) *logrus.Logger {
	logger := logrus.New()

	logger.SetLevel(parseLogLevel(config.Level))

	switch config.Format {
	case JSONFormat:
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "caller",
			},
		})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FullTimestamp:   true,
			ForceColors:     config.EnableColor,
			DisableColors:   !config.EnableColor,
		})
	}

	logger.SetReportCaller(config.AddCaller)
	logger.SetOutput(os.Stdout)

	return logger
}

// NewLoggerFromEnv creates a logger configured from environment variables.
// Reads DOTLOTTIE_LOG_LEVEL and DOTLOTTIE_LOG_FORMAT.
func NewLoggerFromEnv() *logrus.Logger {
	config := DefaultConfig()

	if level := os.Getenv("DOTLOTTIE_LOG_LEVEL"); level != "" {
		config.Level = LogLevel(strings.ToLower(level))
	}

	if format := os.Getenv("DOTLOTTIE_LOG_FORMAT"); format != "" {
		config.Format = LogFormat(strings.ToLower(format))
	}

	return NewLogger(config)
}

func parseLogLevel(level LogLevel) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// WithContext creates a logger with standard context fields.
func WithContext(logger *logrus.Logger, fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

// PlayerLogger creates a logger entry scoped to a single player instance.
func PlayerLogger(logger *logrus.Logger, playerID string) *logrus.Entry {
	if logger == nil {
		return nil
	}
	return logger.WithFields(logrus.Fields{
		"system":   "player",
		"playerID": playerID,
	})
}

// ContainerLogger creates a logger entry scoped to container-reader operations.
func ContainerLogger(logger *logrus.Logger, source string) *logrus.Entry {
	if logger == nil {
		return nil
	}
	return logger.WithFields(logrus.Fields{
		"system": "container",
		"source": source,
	})
}

// StateMachineLogger creates a logger entry scoped to a state-machine run.
func StateMachineLogger(logger *logrus.Logger, smID string) *logrus.Entry {
	if logger == nil {
		return nil
	}
	return logger.WithFields(logrus.Fields{
		"system":          "statemachine",
		"stateMachineID":  smID,
	})
}

// ThemeLogger creates a logger entry scoped to theme/slot lowering.
func ThemeLogger(logger *logrus.Logger, themeID string) *logrus.Entry {
	if logger == nil {
		return nil
	}
	return logger.WithFields(logrus.Fields{
		"system":  "theme",
		"themeID": themeID,
	})
}

// InputsLogger creates a logger entry scoped to the global-inputs overlay.
func InputsLogger(logger *logrus.Logger) *logrus.Entry {
	if logger == nil {
		return nil
	}
	return logger.WithFields(logrus.Fields{
		"system": "inputs",
	})
}

// PerformanceLogger creates a logger with performance metrics context.
func PerformanceLogger(logger *logrus.Logger, operation string) *logrus.Entry {
	if logger == nil {
		return nil
	}
	return logger.WithFields(logrus.Fields{
		"operation": operation,
	})
}

// CLILogger creates a logger configured for CLI test utilities.
func CLILogger(utilityName string) *logrus.Logger {
	config := Config{
		Level:       InfoLevel,
		Format:      TextFormat,
		AddCaller:   false,
		EnableColor: true,
	}

	if level := os.Getenv("DOTLOTTIE_LOG_LEVEL"); level != "" {
		config.Level = LogLevel(strings.ToLower(level))
	}

	return NewLogger(config)
}
