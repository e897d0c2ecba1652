// ----------------------------------------------------------------------------
// FILE: vlog/vlog.go
// ----------------------------------------------------------------------------
// PACKAGE: vlog
// PURPOSE: Leveled logging for the CLI and REPL (SPEC_FULL.md §3.2). No
//          pack example pulls in a structured-logging library (zap,
//          zerolog, logrus never appear in any go.mod the examples
//          carry); the teacher itself has no logging at all beyond
//          REPL fmt.Print calls. A thin level-gated wrapper over the
//          standard library's log.Logger is the idiomatic minimum here,
//          grounded on the teacher's own log.Fatal use in main.go —
//          see DESIGN.md for the stdlib justification.
// ----------------------------------------------------------------------------

package vlog

import (
	"io"
	"log"
	"os"
)

// Level orders verbosity from quietest to loudest.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "?"
	}
}

// Logger gates a standard library log.Logger by level.
type Logger struct {
	level  Level
	logger *log.Logger
}

// New returns a Logger writing to w at the given level with a plain
// "LEVEL: " prefix per line, no timestamp (the REPL and batch runner
// interleave this with program output and a timestamp would only add
// noise to that stream).
func New(w io.Writer, level Level) *Logger {
	return &Logger{level: level, logger: log.New(w, "", 0)}
}

// Default returns a Logger at LevelInfo writing to stderr, the
// cmd/vyion root command's zero-value logger before flags are parsed.
func Default() *Logger { return New(os.Stderr, LevelInfo) }

// SetLevel adjusts verbosity after construction (the `--verbose`
// persistent flag does this once cobra has parsed arguments).
func (l *Logger) SetLevel(level Level) { l.level = level }

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level > l.level {
		return
	}
	l.logger.Printf(level.String()+": "+format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) { l.log(LevelError, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(LevelWarn, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(LevelInfo, format, args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.log(LevelDebug, format, args...) }
