package engine

import (
	"context"

	"lfichef/internal/config"
	"lfichef/internal/wordlist"
)

// Deps aggregates shared services and configuration provided to modules.
// Keeping them centralized avoids tight coupling between modules and concrete
// implementations. Source is nil for modes that read their input in a
// non-line-oriented way (harvest).
type Deps struct {
	Opts   *config.Options
	Source *wordlist.Source
	Sink   wordlist.Sink
}

// Module is a self-contained operating mode (generate, sanitize, harvest).
// It receives shared dependencies via Deps and writes payloads via the Sink.
type Module interface {
	// Name returns a short, stable identifier of the module (e.g., "generate").
	Name() string
	// Run executes the module logic and returns when finished or the context
	// is canceled.
	Run(ctx context.Context, deps Deps) error
}

// Engine orchestrates execution of one or more modules. It does not know
// about module internals; it only sequences them with shared dependencies.
type Engine struct {
	Deps    Deps
	Modules []Module
}

// Run invokes modules sequentially.
func (e *Engine) Run(ctx context.Context) error {
	for _, m := range e.Modules {
		if err := m.Run(ctx, e.Deps); err != nil {
			return err
		}
	}
	return nil
}
