// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/cjsguard/internal/core/ports"
	"go.trai.ch/cjsguard/internal/ui/style"
)

var _ ports.Logger = (*Logger)(nil)

// chainLink describes an error that reports its own message and metadata
// without the rest of the chain, as *zerr.Error does.
type chainLink interface {
	Message() string
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing pretty output to stderr.
func New() *Logger {
	return &Logger{
		logger: slog.New(NewPrettyHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})),
		output: os.Stderr,
	}
}

// SetOutput updates the logger's output destination, preserving the JSON mode.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(newHandler(w, l.jsonMode))
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	w := l.output
	if w == nil {
		w = os.Stderr
	}
	l.logger = slog.New(newHandler(w, enable))
}

func newHandler(w io.Writer, jsonMode bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if jsonMode {
		return slog.NewJSONHandler(w, opts)
	}
	return NewPrettyHandler(w, opts)
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

// Error logs an error. In pretty mode the error chain is rendered as a main
// message followed by its causes. JSON records carry the full error text and
// one cause object per link with its metadata.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err.Error(), "causes", causeRecords(collectErrorEntries(err)))
		return
	}

	l.logger.Error("", slog.Any("error", err))
}

// errorEntry is one message of an error chain and the metadata attached to it.
type errorEntry struct {
	msg  string
	meta map[string]any
}

// String renders the entry as its message followed by sorted key=value pairs.
func (e errorEntry) String() string {
	if len(e.meta) == 0 {
		return e.msg
	}

	pairs := make([]string, 0, len(e.meta))
	for _, key := range slices.Sorted(maps.Keys(e.meta)) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", key, e.meta[key]))
	}
	return e.msg + " (" + strings.Join(pairs, ", ") + ")"
}

// collectErrorEntries walks the error chain and returns one entry per message.
// zerr links contribute their own message and metadata; metadata on links
// without a message moves to the next message. The first foreign error ends the
// walk with its full text. Joined errors contribute the entries of each member,
// and pending metadata goes to the first member only.
func collectErrorEntries(err error) []errorEntry {
	return walkErrorChain(err, nil)
}

func walkErrorChain(err error, pending map[string]any) []errorEntry {
	var entries []errorEntry

	for current := err; current != nil; {
		if joined, ok := current.(interface{ Unwrap() []error }); ok {
			for _, member := range joined.Unwrap() {
				entries = append(entries, walkErrorChain(member, pending)...)
				pending = nil
			}
			break
		}

		link, ok := current.(chainLink)
		if !ok {
			entries = append(entries, errorEntry{msg: current.Error(), meta: pending})
			break
		}

		if meta := link.Metadata(); len(meta) > 0 {
			if pending == nil {
				pending = make(map[string]any, len(meta))
			} else {
				pending = maps.Clone(pending)
			}
			maps.Copy(pending, meta)
		}
		if msg := link.Message(); msg != "" {
			entries = append(entries, errorEntry{msg: msg, meta: pending})
			pending = nil
		}
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries formats the collected entries hierarchically.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		parts := strings.Split(entry.String(), "\n")

		if i == 0 {
			lines = append(lines, "Error: "+parts[0])
			for _, line := range parts[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    "+style.Arrow+" "+parts[0])
		for _, line := range parts[1:] {
			lines = append(lines, "      "+line)
		}
	}

	return strings.Join(lines, "\n")
}

// causeRecords converts entries into JSON objects holding the message under
// "msg" next to the metadata.
func causeRecords(entries []errorEntry) []map[string]any {
	records := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		record := make(map[string]any, len(entry.meta)+1)
		maps.Copy(record, entry.meta)
		record["msg"] = entry.msg
		records = append(records, record)
	}
	return records
}
