// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	defaultLogger *slog.Logger
	levelVar      = new(slog.LevelVar)
	logFile       *lumberjack.Logger
)

// Rotation limits for the application log file.
const (
	maxLogSizeMB  = 5
	maxLogBackups = 3
	maxLogAgeDays = 28
)

// getLogFilePath determines the path for the application log file based on XDG spec.
func getLogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	logDir := filepath.Join(stateDir, "cmdeck")
	return filepath.Join(logDir, "app.log"), nil
}

// LogFilePath returns the path InitLogger writes to when file logging is on.
func LogFilePath() (string, error) {
	return getLogFilePath()
}

// ParseLevel maps a config string (debug, info, warn, error) to a slog level.
// An empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// setupLogging configures the default logger based on whether to log to file and/or stderr.
func setupLogging(logToFile bool, logToStderr bool) error {
	if !logToFile && !logToStderr {
		// Default to stderr if neither is specified, to ensure logs aren't lost.
		logToStderr = true
	}

	var writers []io.Writer

	if logToFile {
		logFilePath, err := getLogFilePath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error determining log file path: %v. File logging disabled.\n", err)
		} else {
			logDir := filepath.Dir(logFilePath)
			// 0750: user rwx, group rx, others ---
			if err := os.MkdirAll(logDir, 0750); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating log directory %s: %v. File logging disabled.\n", logDir, err)
			} else {
				logFile = &lumberjack.Logger{
					Filename:   logFilePath,
					MaxSize:    maxLogSizeMB,
					MaxBackups: maxLogBackups,
					MaxAge:     maxLogAgeDays,
				}
				writers = append(writers, logFile)
			}
		}
	}

	if logToStderr {
		writers = append(writers, os.Stderr)
	}

	var finalWriter io.Writer
	switch len(writers) {
	case 0:
		finalWriter = os.Stderr
	case 1:
		finalWriter = writers[0]
	default:
		finalWriter = io.MultiWriter(writers...)
	}

	handler := slog.NewJSONHandler(finalWriter, &slog.HandlerOptions{Level: levelVar})
	defaultLogger = slog.New(handler)
	return nil
}

// InitLogger initializes the logger based on the execution mode (TUI or CLI).
// The TUI owns the terminal, so it always logs to the file and never to
// stderr; logToFile only matters in CLI mode.
func InitLogger(isTUI bool, level slog.Level, logToFile bool) {
	levelVar.Set(level)
	_ = Close()

	logToFile = logToFile || isTUI
	logToStderr := !isTUI

	if err := setupLogging(logToFile, logToStderr); err != nil {
		fmt.Fprintf(os.Stderr, "Logger initialization failed: %v. Falling back to basic stderr logging.\n", err)
		defaultLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))
		return
	}

	if logFilePath, err := getLogFilePath(); err == nil {
		Debug("Logging configured.", "file", logFilePath, "stderr", logToStderr, "level", level.String())
	}
}

// SetLevel changes the level of the active logger.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// SetLogger replaces the default logger instance, e.g. to capture output in tests.
func SetLogger(l *slog.Logger) {
	defaultLogger = l
}

// Logger returns the active logger.
func Logger() *slog.Logger {
	checkLogger()
	return defaultLogger
}

// Close flushes and closes the log file, if one is open.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// checkLogger ensures the logger is initialized before use. Code that never
// calls InitLogger (tests, embedding) logs warnings and errors to stderr.
func checkLogger() {
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	checkLogger()
	defaultLogger.Info(msg, args...)
}

// Infof logs a formatted informational message.
// Prefer Info with key-value pairs.
func Infof(format string, v ...interface{}) {
	checkLogger()
	defaultLogger.Info(fmt.Sprintf(format, v...))
}

// Error logs an error message.
func Error(msg string, args ...any) {
	checkLogger()
	defaultLogger.Error(msg, args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...interface{}) {
	checkLogger()
	defaultLogger.Error(fmt.Sprintf(format, v...))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	checkLogger()
	defaultLogger.Debug(msg, args...)
}

// Debugf logs a formatted debug message.
func Debugf(format string, v ...interface{}) {
	checkLogger()
	defaultLogger.Debug(fmt.Sprintf(format, v...))
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	checkLogger()
	defaultLogger.Warn(msg, args...)
}

// Warnf logs a formatted warning message.
func Warnf(format string, v ...interface{}) {
	checkLogger()
	defaultLogger.Warn(fmt.Sprintf(format, v...))
}
