package lib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LogDirectory = "logs"
	LogFileName  = "log"
)

/*
	This file implements a leveled logging system (Debug, Info, Warn, Error, Fatal) with colored
	output to stdout and auto-rotating log files in the data directory.
*/

func init() {
	color.NoColor = false
}

// LoggerI defines the interface for various logging levels and formatted output
type LoggerI interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

const (
	DebugLevel int32 = -4
	InfoLevel  int32 = 0
	WarnLevel  int32 = 4
	ErrorLevel int32 = 8
)

var _ LoggerI = &Logger{}

// LoggerConfig holds configuration settings for the logger, including logging level and output writer
type LoggerConfig struct {
	Level int32 `json:"level"`
	Out   io.Writer
}

// Logger is the concrete implementation of LoggerI, managing log output based on configuration
type Logger struct {
	config LoggerConfig
}

// Debug() logs a message at the Debug level
func (l *Logger) Debug(msg string) { l.log(DebugLevel, "DEBUG: "+msg) }

// Info() logs a message at the Info level
func (l *Logger) Info(msg string) { l.log(InfoLevel, "INFO: "+msg) }

// Warn() logs a message at the Warn level
func (l *Logger) Warn(msg string) { l.log(WarnLevel, "WARN: "+msg) }

// Error() logs a message at the Error level
func (l *Logger) Error(msg string) { l.log(ErrorLevel, "ERROR: "+msg) }

// Fatal() logs an error message and terminates the program
func (l *Logger) Fatal(msg string) {
	l.log(ErrorLevel, "FATAL: "+msg)
	os.Exit(1)
}

// Debugf() logs a formatted message at the Debug level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, "DEBUG: "+fmt.Sprintf(format, args...))
}

// Infof() logs a formatted message at the Info level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, "INFO: "+fmt.Sprintf(format, args...))
}

// Warnf() logs a formatted message at the Warn level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, "WARN: "+fmt.Sprintf(format, args...))
}

// Errorf() logs a formatted message at the Error level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, "ERROR: "+fmt.Sprintf(format, args...))
}

// Fatalf() logs a formatted error message and terminates the program
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(ErrorLevel, "FATAL: "+fmt.Sprintf(format, args...))
	os.Exit(1)
}

// log() colors the message for its level and writes it with a timestamp to the configured writer
func (l *Logger) log(level int32, msg string) {
	if l.config.Level > level {
		return
	}
	timestamp := color.HiBlackString(time.Now().Format(time.StampMilli))
	if _, err := l.config.Out.Write([]byte(fmt.Sprintf("%s %s\n", timestamp, colorForLevel(level)(msg)))); err != nil {
		fmt.Println(err)
	}
}

// NewLogger() creates a new Logger instance with the specified configuration and optional data directory path
// when no writer is configured, output goes to stdout and an auto-rotating file under the data directory
func NewLogger(config LoggerConfig, dataDirPath ...string) LoggerI {
	if config.Out == nil {
		dir := DefaultDataDirPath()
		if len(dataDirPath) != 0 && dataDirPath[0] != "" {
			dir = dataDirPath[0]
		}
		if err := os.MkdirAll(filepath.Join(dir, LogDirectory), os.ModePerm); err != nil {
			panic(err)
		}
		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(dir, LogDirectory, LogFileName),
			MaxSize:    1, // megabyte
			MaxBackups: 100,
			MaxAge:     14, // days
			Compress:   true,
		}
		config.Out = io.MultiWriter(os.Stdout, logFile)
	}
	return &Logger{config: config}
}

// NewDefaultLogger() creates a Logger with default settings, logging at the Debug level to stdout
func NewDefaultLogger() LoggerI {
	return NewLogger(LoggerConfig{Level: DebugLevel, Out: os.Stdout})
}

// NewNullLogger() creates a Logger that discards all log output
func NewNullLogger() LoggerI {
	return NewLogger(LoggerConfig{Level: DebugLevel, Out: io.Discard})
}

// colorForLevel() maps a log level to its color function
func colorForLevel(level int32) func(format string, a ...interface{}) string {
	switch {
	case level <= DebugLevel:
		return color.BlueString
	case level <= InfoLevel:
		return color.GreenString
	case level <= WarnLevel:
		return color.YellowString
	default:
		return color.RedString
	}
}

// LogLevelFromString() converts a configured log level string into its int32 level
func LogLevelFromString(s string) (int32, ErrorI) {
	switch s {
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return 0, ErrInvalidLogLevel(s)
	}
}
