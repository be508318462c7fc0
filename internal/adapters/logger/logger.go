// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/saga/internal/core/ports"
)

// messager describes an error that can report its own message without the
// chain. This matches the Message() method provided by zerr.Error
// (go.trai.ch/zerr v0.3.0+).
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog with the pretty handler.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
}

// New creates a Logger writing to stderr.
func New() *Logger {
	return &Logger{logger: slog.New(NewPrettyHandler(os.Stderr, nil))}
}

// SetOutput redirects the logger to w. A nil writer resets to stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	l.logger = slog.New(NewPrettyHandler(w, nil))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error with its cause chain unrolled, one cause per line.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	l.logger.Error(formatChain(err))
}

// formatChain flattens an error chain into an indented, arrowed listing.
// Wrapped zerr errors contribute their own message only; the first plain
// error contributes its full text and ends the walk.
func formatChain(err error) string {
	var messages []string
	for current := err; current != nil; {
		if m, ok := current.(messager); ok {
			messages = append(messages, m.Message())
			current = errors.Unwrap(current)
			continue
		}
		messages = append(messages, current.Error())
		break
	}

	var lines []string
	for i, msg := range messages {
		parts := strings.Split(msg, "\n")
		switch i {
		case 0:
			lines = append(lines, "Error: "+parts[0])
			for _, p := range parts[1:] {
				lines = append(lines, "       "+p)
			}
		case 1:
			lines = append(lines, "", "  Caused by:")
			fallthrough
		default:
			lines = append(lines, "    → "+parts[0])
			for _, p := range parts[1:] {
				lines = append(lines, "      "+p)
			}
		}
	}

	return strings.Join(lines, "\n")
}

var _ ports.Logger = (*Logger)(nil)
