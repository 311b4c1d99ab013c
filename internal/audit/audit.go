/*
 * FloofOS - Fast Line-rate Offload On Fabric Operating System
 * Copyright (C) 2025 FloofOS Networks <dev@floofos.io>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License.
 */

// Package audit records what happens in a terminal session: every submitted
// command, network changes, feed start/stop and session resets.
package audit

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006-01-02 15:04:05"

type Logger struct {
	base *zap.Logger
	zl   *zap.Logger
	file *os.File
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zap.NewNop(), zl: zap.NewNop()}
}

// Open appends to the log file at path, creating it and its directory.
func Open(path string, verbose bool) (*Logger, error) {
	if path == "" {
		return Nop(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	l := NewWithCore(zapcore.NewCore(newEncoder(), zapcore.AddSync(f), level))
	l.file = f
	return l, nil
}

func NewWithCore(core zapcore.Core) *Logger {
	base := zap.New(core)
	return &Logger{base: base, zl: base}
}

func newEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = " "
	return zapcore.NewConsoleEncoder(cfg)
}

// ForSession tags every following entry with the user and session id.
func (l *Logger) ForSession(user, sessionID string) *Logger {
	return &Logger{
		base: l.base,
		zl:   l.base.With(zap.String("user", user), zap.String("session", sessionID)),
		file: l.file,
	}
}

func (l *Logger) Command(line string) {
	l.zl.Info("command", zap.String("line", line))
}

func (l *Logger) Config(message string, fields ...zap.Field) {
	l.zl.Info(message, append(fields, zap.String("kind", "config"))...)
}

func (l *Logger) Info(message string, fields ...zap.Field) {
	l.zl.Info(message, fields...)
}

func (l *Logger) Debug(message string, fields ...zap.Field) {
	l.zl.Debug(message, fields...)
}

func (l *Logger) Warn(message string, fields ...zap.Field) {
	l.zl.Warn(message, fields...)
}

func (l *Logger) Error(message string, fields ...zap.Field) {
	l.zl.Error(message, fields...)
}

// Sync flushes buffered entries without closing the file.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

// Close flushes buffered entries and closes the log file, if any.
func (l *Logger) Close() error {
	_ = l.zl.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
