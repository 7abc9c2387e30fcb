package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/entitykit/entitykit/utils"
)

// ErrInvalidRelationKey invalid relation key error
var ErrInvalidRelationKey = errors.New("invalid relation key")

// LogLevel log level
type LogLevel int

const (
	// Silent silent log level
	Silent LogLevel = iota + 1
	// Error error log level
	Error
	// Warn warn log level
	Warn
	// Info info log level
	Info
)

// DefaultLogLevel is read from ENTITYKIT_LOG_LEVEL, warn when unset
var DefaultLogLevel = Warn

func init() {
	DefaultLogLevel = ParseLevel(os.Getenv("ENTITYKIT_LOG_LEVEL"))
	Default = New(log.New(os.Stderr, "\r\n", log.LstdFlags), Config{
		SlowThreshold: 100 * time.Millisecond,
		LogLevel:      DefaultLogLevel,
	})
}

// ParseLevel converts info|warn|error|silent to a LogLevel, warn otherwise
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "info":
		return Info
	case "error":
		return Error
	case "silent":
		return Silent
	default:
		return Warn
	}
}

// Writer log writer interface
type Writer interface {
	Printf(string, ...interface{})
}

// Config logger config
type Config struct {
	SlowThreshold                 time.Duration
	Colorful                      bool
	IgnoreInvalidRelationKeyError bool
	LogLevel                      LogLevel
}

// Interface logger interface
type Interface interface {
	LogMode(LogLevel) Interface
	Info(context.Context, string, ...interface{})
	Warn(context.Context, string, ...interface{})
	Error(context.Context, string, ...interface{})
	// Trace reports one entity operation, fc returns the operation name and
	// how many entities or messages it affected (-1 when not applicable)
	Trace(ctx context.Context, begin time.Time, fc func() (op string, affected int64), err error)
}

var (
	// Discard logger will print any log to io.Discard
	Discard = New(log.New(io.Discard, "", log.LstdFlags), Config{})
	// Default logger, writes to stderr
	Default Interface
)

// Colors
const (
	Reset       = "\033[0m"
	Red         = "\033[31m"
	Green       = "\033[32m"
	Yellow      = "\033[33m"
	Magenta     = "\033[35m"
	BlueBold    = "\033[34;1m"
	RedBold     = "\033[31;1m"
	YellowBold  = "\033[33;1m"
	MagentaBold = "\033[35;1m"
)

// New initialize logger
func New(writer Writer, config Config) Interface {
	var (
		infoStr      = "%s\n[info] "
		warnStr      = "%s\n[warn] "
		errStr       = "%s\n[error] "
		traceStr     = "%s\n[%.3fms] [affected:%v] %s"
		traceWarnStr = "%s %s\n[%.3fms] [affected:%v] %s"
		traceErrStr  = "%s %s\n[%.3fms] [affected:%v] %s"
	)

	if config.Colorful {
		infoStr = Green + "%s\n" + Reset + Green + "[info] " + Reset
		warnStr = BlueBold + "%s\n" + Reset + Magenta + "[warn] " + Reset
		errStr = Magenta + "%s\n" + Reset + Red + "[error] " + Reset
		traceStr = Green + "%s\n" + Reset + Yellow + "[%.3fms] " + BlueBold + "[affected:%v]" + Reset + " %s"
		traceWarnStr = Green + "%s " + Yellow + "%s\n" + Reset + RedBold + "[%.3fms] " + Yellow + "[affected:%v]" + Magenta + " %s" + Reset
		traceErrStr = RedBold + "%s " + MagentaBold + "%s\n" + Reset + Yellow + "[%.3fms] " + BlueBold + "[affected:%v]" + Reset + " %s"
	}

	return &logger{
		Writer:       writer,
		Config:       config,
		infoStr:      infoStr,
		warnStr:      warnStr,
		errStr:       errStr,
		traceStr:     traceStr,
		traceWarnStr: traceWarnStr,
		traceErrStr:  traceErrStr,
	}
}

type logger struct {
	Writer
	Config
	infoStr, warnStr, errStr            string
	traceStr, traceErrStr, traceWarnStr string
}

// LogMode log mode
func (l *logger) LogMode(level LogLevel) Interface {
	newlogger := *l
	newlogger.LogLevel = level
	return &newlogger
}

// Info print info
func (l *logger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.Printf(l.infoStr+msg, append([]interface{}{utils.FileWithLineNum()}, data...)...)
	}
}

// Warn print warn messages
func (l *logger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.Printf(l.warnStr+msg, append([]interface{}{utils.FileWithLineNum()}, data...)...)
	}
}

// Error print error messages
func (l *logger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.Printf(l.errStr+msg, append([]interface{}{utils.FileWithLineNum()}, data...)...)
	}
}

// Trace print entity operations
func (l *logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.LogLevel >= Error && (!errors.Is(err, ErrInvalidRelationKey) || !l.IgnoreInvalidRelationKeyError):
		op, affected := fc()
		l.Printf(l.traceErrStr, utils.FileWithLineNum(), err, float64(elapsed.Nanoseconds())/1e6, affectedString(affected), op)
	case elapsed > l.SlowThreshold && l.SlowThreshold != 0 && l.LogLevel >= Warn:
		op, affected := fc()
		slowLog := fmt.Sprintf("SLOW OPERATION >= %v", l.SlowThreshold)
		l.Printf(l.traceWarnStr, utils.FileWithLineNum(), slowLog, float64(elapsed.Nanoseconds())/1e6, affectedString(affected), op)
	case l.LogLevel == Info:
		op, affected := fc()
		l.Printf(l.traceStr, utils.FileWithLineNum(), float64(elapsed.Nanoseconds())/1e6, affectedString(affected), op)
	}
}

// SplitOp splits an operation name such as "Person.add_nested(cars)" into
// the entity schema, the operation and the relation it touched. Names without
// a schema prefix return an empty entity.
func SplitOp(op string) (entity, operation, relation string) {
	operation = op
	if i := strings.Index(op, "."); i > 0 && !strings.ContainsAny(op[:i], " (") {
		entity, operation = op[:i], op[i+1:]
	}
	if i := strings.Index(operation, "("); i >= 0 && strings.HasSuffix(operation, ")") {
		operation, relation = operation[:i], operation[i+1:len(operation)-1]
	}
	return entity, operation, relation
}

func affectedString(affected int64) interface{} {
	if affected == -1 {
		return "-"
	}
	return affected
}

// shouldLogError reports whether err is reported at error level for the given config
func shouldLogError(err error, config Config) bool {
	return err != nil && (!config.IgnoreInvalidRelationKeyError || !errors.Is(err, ErrInvalidRelationKey))
}
