// Package sanitize implements the wordlist sanitization mode as a pluggable
// engine module: lines are canonicalized for the target OS and semantic
// duplicates are filtered, first-seen order preserved.
package sanitize

import (
	"context"
	"log/slog"

	"lfichef/helper"
	"lfichef/internal/engine"
	"lfichef/internal/sanitize"
)

// Module canonicalizes and deduplicates the input wordlist.
type Module struct{}

func (Module) Name() string { return "sanitize" }

// Run streams the input through the canonicalizer and dedup index. When
// near-duplicate diagnostics are enabled, each accepted payload is also
// compared against the previously accepted ones; matches are logged, never
// dropped.
func (Module) Run(ctx context.Context, deps engine.Deps) error {
	canon := sanitize.NewCanonicalizer(deps.Opts)
	dedup := sanitize.NewDeduper()

	var accepted []string // retained only for --near_dupes
	lines := 0
	kept := 0
	for deps.Source.Next() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lines++
		payload := canon.Canonicalize(deps.Source.Payload())
		if len(payload) == 0 {
			continue
		}
		if !dedup.Accept(payload) {
			continue
		}
		if err := deps.Sink.WriteLine(payload); err != nil {
			return err
		}
		kept++

		if deps.Opts.NearDupes > 0 {
			cur := string(payload)
			for _, prev := range accepted {
				if d := helper.LevenshteinRatio(cur, prev); d <= deps.Opts.NearDupes {
					slog.Warn("near-duplicate payloads",
						"payload", cur, "similar_to", prev, "distance", d)
					break
				}
			}
			accepted = append(accepted, cur)
		}
	}
	if err := deps.Source.Err(); err != nil {
		return err
	}

	slog.Info("wordlist sanitization complete",
		"os", deps.Opts.OS, "lines_in", lines, "unique_out", kept,
		"out_file", deps.Opts.OutFile)
	return nil
}
