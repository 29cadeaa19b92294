// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the logging level, ordered from most to least verbose.
type Level int

const (
	TRACE Level = iota
	DEBUG
	INFO
	WARN
	ERROR
	FATAL
	NONE
)

var levelNames = map[string]Level{
	"trace":    TRACE,
	"debug":    DEBUG,
	"info":     INFO,
	"warn":     WARN,
	"warning":  WARN,
	"error":    ERROR,
	"fatal":    FATAL,
	"critical": FATAL,
	"none":     NONE,
}

// LevelFromString parses a level name, falling back to INFO for unknown names.
func LevelFromString(s string) Level {
	if lv, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lv
	}
	return INFO
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case TRACE, DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		// above FatalLevel: nothing is enabled
		return zapcore.FatalLevel + 1
	}
}

// Config describes where and how verbosely to log.
type Config struct {
	Level    string
	Mode     string // "console" or "file"
	FileName string
}

// Manager owns the process logger.
type Manager struct {
	mu     sync.RWMutex
	level  zap.AtomicLevel
	logger *zap.SugaredLogger
	file   *os.File
}

var manager = newManager()

func newManager() *Manager {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	core := zapcore.NewCore(consoleEncoder(), zapcore.Lock(os.Stderr), level)
	return &Manager{
		level:  level,
		logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).Sugar(),
	}
}

// GetManager returns the process-wide log manager.
func GetManager() *Manager {
	return manager
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if isatty.IsTerminal(os.Stderr.Fd()) {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// Configure rebuilds the logger from cfg.
func (m *Manager) Configure(cfg Config) error {
	m.level.SetLevel(LevelFromString(cfg.Level).zapLevel())

	var (
		encoder zapcore.Encoder
		sink    zapcore.WriteSyncer
		file    *os.File
	)
	switch strings.ToLower(cfg.Mode) {
	case "", "console":
		encoder, sink = consoleEncoder(), zapcore.Lock(os.Stderr)
	case "file":
		if cfg.FileName == "" {
			return fmt.Errorf("log mode file requires a file name")
		}
		f, err := os.OpenFile(cfg.FileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", cfg.FileName, err)
		}
		file = f
		encoder, sink = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(f)
	default:
		return fmt.Errorf("unknown log mode %q", cfg.Mode)
	}

	m.ReplaceCore(zapcore.NewCore(encoder, sink, m.level))

	m.mu.Lock()
	old := m.file
	m.file = file
	m.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// ReplaceCore swaps the zap core that receives log entries.
func (m *Manager) ReplaceCore(core zapcore.Core) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).Sugar()
}

// Close flushes buffered entries and releases the log file, if any.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.logger.Sync()
	if m.file != nil {
		_ = m.file.Close()
		m.file = nil
	}
}

func (m *Manager) log(level Level, format string, v ...any) {
	m.mu.RLock()
	logger := m.logger
	m.mu.RUnlock()

	switch level {
	case TRACE, DEBUG:
		logger.Debugf(format, v...)
	case INFO:
		logger.Infof(format, v...)
	case WARN:
		logger.Warnf(format, v...)
	case ERROR:
		logger.Errorf(format, v...)
	case FATAL:
		logger.Fatalf(format, v...)
	}
}

// IsDebug reports whether debug entries are emitted.
func IsDebug() bool {
	return manager.level.Enabled(zapcore.DebugLevel)
}

func Trace(format string, v ...any) {
	manager.log(TRACE, format, v...)
}

func Debug(format string, v ...any) {
	manager.log(DEBUG, format, v...)
}

func Info(format string, v ...any) {
	manager.log(INFO, format, v...)
}

func Warn(format string, v ...any) {
	manager.log(WARN, format, v...)
}

func Error(format string, v ...any) {
	manager.log(ERROR, format, v...)
}

// Fatal logs and then exits the process.
func Fatal(format string, v ...any) {
	manager.log(FATAL, format, v...)
}
