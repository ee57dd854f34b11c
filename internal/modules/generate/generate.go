// Package generate implements the wordlist generation mode as a pluggable
// engine module: every input line is expanded through the mutation pipeline
// and all produced variants are written out.
package generate

import (
	"context"
	"log/slog"

	"lfichef/internal/engine"
	"lfichef/internal/mutate"
)

// Module expands each input line into its evasion variants. Lines are
// processed one at a time; a line's working set is flushed and discarded
// before the next line is read, so memory tracks the largest single
// expansion, not the input size.
type Module struct{}

func (Module) Name() string { return "generate" }

// Run streams the input wordlist through the mutation pipeline.
func (Module) Run(ctx context.Context, deps engine.Deps) error {
	pipeline := mutate.New(deps.Opts)

	lines := 0
	written := 0
	for deps.Source.Next() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		set, err := pipeline.Expand(deps.Source.Payload())
		if err != nil {
			return err
		}
		for _, payload := range set {
			if err := deps.Sink.WriteLine(payload); err != nil {
				return err
			}
		}
		lines++
		written += len(set)
	}
	if err := deps.Source.Err(); err != nil {
		return err
	}

	slog.Info("wordlist generation complete",
		"os", deps.Opts.OS, "lines_in", lines, "payloads_out", written,
		"out_file", deps.Opts.OutFile)
	return nil
}
