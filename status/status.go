// Basic logging infrastructure shared by the ldfops verbs.
//
// The default logger prints to stderr and can additionally forward to an
// underlying simpler logger, typically syslog.  Batch verbs run with level
// Warning; -v lowers the level to Info.

package status

import (
	"fmt"
	"io"
	"log/syslog"
	"os"
	"sync"
)

// LogLevel indicates the minimum severity that will be printed.

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelError
	LogLevelCritical
)

// Implementations of this must be thread-safe.
type Logger interface {
	// Print only messages at level l or above
	SetLevel(l LogLevel)

	// Lower log level at least to l
	LowerLevelTo(l LogLevel)

	// Print on this stream, if installed
	SetStderr(w io.Writer)

	// Print on this underlying (simpler) logger, if installed - often syslog.
	SetUnderlying(w UnderlyingLogger)

	// Print at various levels.  None of these must exit or panic, the name
	// indicates the log level only.
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Criticalf(format string, args ...any)
}

// Typically the underlying logger would be a syslog thing, and it has a simpler interface.  In
// particular, log/syslog implements UnderlyingLogger.  An underlying logger must be thread-safe.
type UnderlyingLogger interface {
	Debug(m string) error
	Info(m string) error
	Warning(m string) error
	Err(m string) error
	Crit(m string) error
}

type StandardLogger struct {
	sync.Mutex
	level      LogLevel
	stderr     io.Writer
	underlying UnderlyingLogger
}

// MT: Constant after initialization, thread-safe.
var defaultLogger Logger = &StandardLogger{
	level:  LogLevelWarning,
	stderr: os.Stderr,
}

func Default() Logger {
	return defaultLogger
}

// Attach the Unix syslog daemon as the underlying logger of the default logger.

func StartSyslog(logTag string) error {
	w, err := syslog.Dial("", "", syslog.LOG_INFO|syslog.LOG_USER, logTag)
	if err != nil {
		return err
	}
	defaultLogger.SetUnderlying(w)
	return nil
}

func (sl *StandardLogger) SetLevel(l LogLevel) {
	sl.Lock()
	defer sl.Unlock()

	sl.level = l
}

func (sl *StandardLogger) LowerLevelTo(l LogLevel) {
	sl.Lock()
	defer sl.Unlock()

	if sl.level > l {
		sl.level = l
	}
}

func (sl *StandardLogger) SetStderr(stderr io.Writer) {
	sl.Lock()
	defer sl.Unlock()

	sl.stderr = stderr
}

func (sl *StandardLogger) SetUnderlying(underlying UnderlyingLogger) {
	sl.Lock()
	defer sl.Unlock()

	sl.underlying = underlying
}

func (sl *StandardLogger) emit(l LogLevel, s string) {
	if sl.stderr != nil {
		fmt.Fprintln(sl.stderr, s)
	}
	if sl.underlying != nil {
		switch l {
		case LogLevelDebug:
			sl.underlying.Debug(s)
		case LogLevelInfo:
			sl.underlying.Info(s)
		case LogLevelWarning:
			sl.underlying.Warning(s)
		case LogLevelError:
			sl.underlying.Err(s)
		case LogLevelCritical:
			sl.underlying.Crit(s)
		}
	}
}

func (sl *StandardLogger) logf(l LogLevel, format string, args ...any) {
	sl.Lock()
	defer sl.Unlock()

	if l >= sl.level {
		sl.emit(l, fmt.Sprintf(format, args...))
	}
}

func (sl *StandardLogger) Debugf(format string, args ...any) {
	sl.logf(LogLevelDebug, format, args...)
}

func (sl *StandardLogger) Infof(format string, args ...any) {
	sl.logf(LogLevelInfo, format, args...)
}

func (sl *StandardLogger) Warningf(format string, args ...any) {
	sl.logf(LogLevelWarning, format, args...)
}

func (sl *StandardLogger) Errorf(format string, args ...any) {
	sl.logf(LogLevelError, format, args...)
}

func (sl *StandardLogger) Criticalf(format string, args ...any) {
	sl.logf(LogLevelCritical, format, args...)
}
