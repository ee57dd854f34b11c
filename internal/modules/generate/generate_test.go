package generate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lfichef/internal/config"
	"lfichef/internal/encoding"
	"lfichef/internal/engine"
	"lfichef/internal/mutate"
	"lfichef/internal/wordlist"
)

type memSink struct {
	lines []string
}

func (m *memSink) WriteLine(payload []byte) error {
	m.lines = append(m.lines, string(payload))
	return nil
}

func TestRunExpandsPerLine(t *testing.T) {
	table, _ := encoding.Build("u", config.OSLinux, nil)
	opts := &config.Options{OS: config.OSLinux, Encoding: table}

	sink := &memSink{}
	deps := engine.Deps{
		Opts:   opts,
		Source: wordlist.NewSource(strings.NewReader("/etc/passwd\n/etc/shadow\n")),
		Sink:   sink,
	}
	require.NoError(t, Module{}.Run(context.Background(), deps))

	// Two lines, each expanded independently: original first, then the
	// encoded variant. Mutations never combine across lines.
	assert.Equal(t, []string{
		"/etc/passwd",
		"%2fetc%2fpasswd",
		"/etc/shadow",
		"%2fetc%2fshadow",
	}, sink.lines)
}

func TestRunPropagatesExpansionCap(t *testing.T) {
	table, _ := encoding.Build("udbo", config.OSLinux, nil)
	opts := &config.Options{OS: config.OSLinux, Encoding: table, MaxExpansion: 4}

	deps := engine.Deps{
		Opts:   opts,
		Source: wordlist.NewSource(strings.NewReader("/etc/passwd\n")),
		Sink:   &memSink{},
	}
	err := Module{}.Run(context.Background(), deps)
	require.ErrorIs(t, err, mutate.ErrExpansionCap)
}
