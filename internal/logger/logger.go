package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Level int

const (
	Debug Level = iota
	Info
	Warning
	Error
)

var levelNames = map[Level]string{
	Debug:   "DEBUG",
	Info:    "INFO",
	Warning: "WARNING",
	Error:   "ERROR",
}

// Logger writes leveled messages to stdout and a size-rotated file.
type Logger struct {
	level Level
	out   *log.Logger
}

// New creates a logger writing to stdout and <dir>/server.log. An empty
// dir disables the file sink.
func New(dir string, level Level) (*Logger, error) {
	writer := io.Writer(os.Stdout)

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		rotated := &lumberjack.Logger{
			Filename:   filepath.Join(dir, "server.log"),
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		writer = io.MultiWriter(os.Stdout, rotated)
	}

	return &Logger{
		level: level,
		out:   log.New(writer, "", log.LstdFlags),
	}, nil
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("[%s] %s", levelNames[level], fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.log(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(Info, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(Warning, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(Error, format, args...) }

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(Error, format, args...)
	os.Exit(1)
}
