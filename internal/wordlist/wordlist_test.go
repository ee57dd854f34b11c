package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceSkipsBlankLines(t *testing.T) {
	src := NewSource(strings.NewReader("/etc/passwd\n\n   \n/etc/shadow\n"))

	var lines []string
	for src.Next() {
		lines = append(lines, string(src.Payload()))
	}
	require.NoError(t, src.Err())
	assert.Equal(t, []string{"/etc/passwd", "/etc/shadow"}, lines)
}

func TestSourcePayloadSurvivesNext(t *testing.T) {
	src := NewSource(strings.NewReader("first/line\nsecond/line\n"))

	require.True(t, src.Next())
	first := src.Payload()
	require.True(t, src.Next())
	assert.Equal(t, "first/line", string(first))
	assert.Equal(t, "second/line", string(src.Payload()))
}

func TestSourceNoTrailingNewline(t *testing.T) {
	src := NewSource(strings.NewReader("/etc/passwd"))
	require.True(t, src.Next())
	assert.Equal(t, "/etc/passwd", string(src.Payload()))
	assert.False(t, src.Next())
	require.NoError(t, src.Err())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestFileSinkWritesAndCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	sink, err := Create(path)
	require.NoError(t, err)

	require.NoError(t, sink.WriteLine([]byte("../etc/passwd")))
	require.NoError(t, sink.WriteLine([]byte("%2fetc%2fpasswd")))
	assert.Equal(t, 2, sink.Count())
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "../etc/passwd\n%2fetc%2fpasswd\n", string(data))
}

func TestFileSinkTruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0o644))

	sink, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, sink.WriteLine([]byte("fresh")))
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(data))
}

func TestTrimSpace(t *testing.T) {
	assert.Equal(t, "a b", string(TrimSpace([]byte(" \t a b \r\n"))))
	assert.Empty(t, TrimSpace([]byte("  \t ")))
}
