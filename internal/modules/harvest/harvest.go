// Package harvest implements the seed-harvesting mode as a pluggable engine
// module: path prefixes are pulled out of a saved HTML page and written as a
// wordlist usable by generate mode.
package harvest

import (
	"context"
	"log/slog"
	"os"

	"lfichef/internal/engine"
	"lfichef/internal/harvest"
)

// Module extracts seed paths from an HTML input file. It reads the input
// itself (the document is tokenized, not line-oriented), so engine.Deps.Source
// is unused here.
type Module struct{}

func (Module) Name() string { return "harvest" }

// Run tokenizes the input document and writes each harvested path prefix.
func (Module) Run(ctx context.Context, deps engine.Deps) error {
	f, err := os.Open(deps.Opts.InFile)
	if err != nil {
		return err
	}
	defer f.Close()

	paths, err := harvest.Extract(f)
	if err != nil {
		return err
	}
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := deps.Sink.WriteLine([]byte(p)); err != nil {
			return err
		}
	}

	slog.Info("seed harvesting complete",
		"paths_out", len(paths), "out_file", deps.Opts.OutFile)
	return nil
}
