package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"travel-backend/config"
)

// Logger wraps logrus.Logger with the structured helpers used by handlers
// and services.
type Logger struct {
	*logrus.Logger
}

type Fields map[string]interface{}

// New creates a logger from the logging section of the app config.
func New(cfg config.LoggingConfig) (*Logger, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	l.SetLevel(level)

	switch cfg.Format {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	var output io.Writer = os.Stdout
	if cfg.Output == "file" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, err
		}
		output = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
	}
	l.SetOutput(output)

	return &Logger{Logger: l}, nil
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}

func (l *Logger) WithFields(fields Fields) *logrus.Entry {
	return l.Logger.WithFields(logrus.Fields(fields))
}

func (l *Logger) LogRequest(method, path, clientIP string, status int, durationMs int64) {
	entry := l.WithFields(Fields{
		"method":      method,
		"path":        path,
		"client_ip":   clientIP,
		"status_code": status,
		"duration_ms": durationMs,
		"type":        "request",
	})
	switch {
	case status >= 500:
		entry.Error("HTTP request")
	case status >= 400:
		entry.Warn("HTTP request")
	default:
		entry.Info("HTTP request")
	}
}

// LogAdmin records an admin mutation on a catalog entity.
func (l *Logger) LogAdmin(adminID uint, action, entity string, entityID uint, err error) {
	entry := l.WithFields(Fields{
		"admin_id":  adminID,
		"action":    action,
		"entity":    entity,
		"entity_id": entityID,
		"type":      "admin",
	})
	if err != nil {
		entry.WithError(err).Warn("Admin action failed")
		return
	}
	entry.Info("Admin action")
}

func (l *Logger) LogSecurity(event, ip string, details Fields) {
	fields := Fields{
		"event": event,
		"ip":    ip,
		"type":  "security",
	}
	for k, v := range details {
		fields[k] = v
	}
	l.WithFields(fields).Warn("Security event")
}
