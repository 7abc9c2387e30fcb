package logger

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/entitykit/entitykit/utils"
)

// LogrusLogger implements Interface using logrus
type LogrusLogger struct {
	Logger        *logrus.Logger
	LogLevel      LogLevel
	SlowThreshold time.Duration
	config        Config
}

// NewLogrusLogger creates a new logger using logrus
func NewLogrusLogger(logger *logrus.Logger, config Config) Interface {
	return &LogrusLogger{
		Logger:        logger,
		LogLevel:      config.LogLevel,
		SlowThreshold: config.SlowThreshold,
		config:        config,
	}
}

// LogMode sets the log level
func (l *LogrusLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *LogrusLogger) entry(ctx context.Context) *logrus.Entry {
	entry := l.Logger.WithField("file", utils.FileWithLineNum())
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	return entry
}

// Info logs info messages
func (l *LogrusLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.entry(ctx).Infof(msg, data...)
	}
}

// Warn logs warning messages
func (l *LogrusLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.entry(ctx).Warnf(msg, data...)
	}
}

// Error logs error messages
func (l *LogrusLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.entry(ctx).Errorf(msg, data...)
	}
}

// Trace logs entity operation details
func (l *LogrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (op string, affected int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	op, affected := fc()

	fields := logrus.Fields{
		"duration": fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6),
		"op":       op,
	}

	if entity, _, relation := SplitOp(op); entity != "" {
		fields["entity"] = entity
		if relation != "" {
			fields["relation"] = relation
		}
	}

	if affected != -1 {
		fields["affected"] = affected
	}

	entry := l.entry(ctx)

	switch {
	case shouldLogError(err, l.config) && l.LogLevel >= Error:
		fields["error"] = err.Error()
		entry.WithFields(fields).Error("entity operation failed")

	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= Warn:
		fields["slow_threshold"] = l.SlowThreshold.String()
		entry.WithFields(fields).Warn("SLOW entity operation")

	case l.LogLevel >= Info:
		entry.WithFields(fields).Info("entity operation")
	}
}
