// Package logging wires up the process-wide slog logger: a human-readable
// handler on stderr plus an optional shared log file, with every record
// tagged by the run ID.
package logging

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultLogFile is written next to the working directory when no --log_file
// is given.
const DefaultLogFile = "lfi-chef.log"

// GenerateRunID returns a ULID identifying one invocation. It tags every log
// record and the default output filename, so a run's artifacts correlate.
func GenerateRunID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Setup installs the default slog logger. The returned closer flushes and
// releases the log file; callers should defer it. A failure to open the log
// file is returned rather than fatal so main can map it to the I/O exit code.
func Setup(logFile, runID string, verbose bool) (func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}

	var closer = func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, err
		}
		closer = func() { _ = f.Close() }
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}

	logger := slog.New(newMultiHandler(handlers...)).With("run_id", runID)
	slog.SetDefault(logger)
	return closer, nil
}

// multiHandler fans one record out to several handlers. Kept minimal: the
// first handler error wins, later handlers still see the record.
type multiHandler struct {
	handlers []slog.Handler
}

func newMultiHandler(handlers ...slog.Handler) *multiHandler {
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: next}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: next}
}
