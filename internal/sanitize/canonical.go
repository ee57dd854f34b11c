// Package sanitize normalizes payload lines to a single canonical per-OS
// form and filters semantic duplicates.
package sanitize

import (
	"bytes"

	"lfichef/internal/config"
	"lfichef/internal/wordlist"
)

// Canonicalizer rewrites one raw payload line into its canonical byte form
// for a target OS. Two inputs denoting the same path under the target's
// rules canonicalize to identical output, and the operation is idempotent.
type Canonicalizer struct {
	windows bool
	// drive is the windows drive directive; 0 means strip drive prefixes.
	drive byte
}

// NewCanonicalizer builds a canonicalizer from the run options.
func NewCanonicalizer(opts *config.Options) *Canonicalizer {
	return &Canonicalizer{windows: opts.Windows(), drive: opts.DriveLetter}
}

// Canonicalize produces the canonical form of one payload line. The input
// slice is not modified.
func (c *Canonicalizer) Canonicalize(raw []byte) []byte {
	line := wordlist.TrimSpace(raw)

	if c.windows {
		line = bytes.ToLower(line)
		line = bytes.ReplaceAll(line, []byte("/"), []byte(`\`))
		line = c.applyDrive(line)
	} else {
		line = bytes.ReplaceAll(line, []byte(`\`), []byte("/"))
	}

	// Substitutions can expose whitespace that was previously interior.
	line = wordlist.TrimSpace(line)
	// Callers may hold onto the result across lines; detach it from raw.
	return append([]byte(nil), line...)
}

// applyDrive enforces the drive-letter directive after slash normalization.
// A drive prefix is exactly two characters: one ASCII letter and a colon.
func (c *Canonicalizer) applyDrive(line []byte) []byte {
	hasDrive := len(line) >= 2 && isASCIILetter(line[0]) && line[1] == ':'

	if c.drive == 0 {
		if hasDrive {
			return line[2:]
		}
		return line
	}
	if hasDrive {
		if line[0] == c.drive {
			return line
		}
		replaced := append([]byte{c.drive, ':'}, line[2:]...)
		return replaced
	}
	return append([]byte{c.drive, ':'}, line...)
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
