package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	"voxelstream/internal/config"
)

// Logger is a leveled wrapper over the standard logger.
type Logger struct {
	out   *log.Logger
	level atomic.Int32
}

var std = New(os.Stderr, config.LevelInfo)

// New creates a logger writing to w at the given level
func New(w io.Writer, level config.Level) *Logger {
	l := &Logger{out: log.New(w, "", log.LstdFlags|log.Lmicroseconds)}
	l.level.Store(int32(level))
	return l
}

// Default returns the process-wide logger
func Default() *Logger { return std }

// SetLevel changes the minimum level that gets written
func (l *Logger) SetLevel(level config.Level) { l.level.Store(int32(level)) }

// Enabled reports whether messages at level are written
func (l *Logger) Enabled(level config.Level) bool {
	return int32(level) >= l.level.Load()
}

func (l *Logger) logf(level config.Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.out.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(config.LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(config.LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(config.LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(config.LevelError, format, args...) }

// Configure sets the process-wide level from a config string.
func Configure(level string) error {
	lv, err := config.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(lv)
	return nil
}

func Debugf(format string, args ...any) { std.Debugf(format, args...) }
func Infof(format string, args ...any)  { std.Infof(format, args...) }
func Warnf(format string, args ...any)  { std.Warnf(format, args...) }
func Errorf(format string, args ...any) { std.Errorf(format, args...) }
