package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/phased/internal/core/ports"
	"golang.org/x/term"
)

// messager describes an error that can report its own message without
// the chain. This matches the Message() method of zerr.Error
// (go.trai.ch/zerr v0.3.0+); other errors fall back to Error().
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog. Output defaults to a
// pretty handler on a terminal and a JSON handler otherwise.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	level    slog.Level
	jsonMode bool
	output   io.Writer
}

// New creates a Logger writing to stderr.
func New() ports.Logger {
	l := &Logger{
		level:    slog.LevelInfo,
		jsonMode: !term.IsTerminal(int(os.Stderr.Fd())),
		output:   os.Stderr,
	}
	l.logger = slog.New(l.newHandler(os.Stderr))
	return l
}

// NewDebug creates a Logger that also emits debug messages. Used by
// tests and the --verbose flag.
func NewDebug(w io.Writer) ports.Logger {
	l := &Logger{
		level:  slog.LevelDebug,
		output: w,
	}
	l.logger = slog.New(l.newHandler(w))
	return l
}

func (l *Logger) newHandler(w io.Writer) slog.Handler {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: l.level}
	if l.jsonMode {
		return slog.NewJSONHandler(w, opts)
	}
	return NewPrettyHandler(w, opts)
}

// SetOutput updates the logger's output destination. If w is nil,
// os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(l.newHandler(w))
}

// SetJSON switches between JSON and pretty logging, preserving the
// output destination.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.logger = slog.New(l.newHandler(l.output))
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
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

// Error logs an error message with its cause chain.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	// Collect messages by traversing the error chain programmatically.
	var messages []string
	current := err

	for current != nil {
		if m, ok := current.(messager); ok {
			// zerr error: raw message without the chain.
			messages = append(messages, m.Message())
			current = errors.Unwrap(current)
		} else {
			// Standard error: append full Error() and stop.
			messages = append(messages, current.Error())
			break
		}
	}

	var formattedLines []string

	for i, msg := range messages {
		lines := strings.Split(msg, "\n")

		if i == 0 {
			formattedLines = append(formattedLines, "Error: "+lines[0])
			for _, line := range lines[1:] {
				formattedLines = append(formattedLines, "       "+line)
			}
		} else {
			if i == 1 {
				formattedLines = append(formattedLines, "", "  Caused by:")
			}
			formattedLines = append(formattedLines, "    → "+lines[0])
			for _, line := range lines[1:] {
				formattedLines = append(formattedLines, "      "+line)
			}
		}
	}

	msg := strings.Join(formattedLines, "\n")
	l.logger.Error(msg)
}
