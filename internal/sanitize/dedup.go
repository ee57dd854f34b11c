package sanitize

import "crypto/sha256"

// Deduper is a content-addressed set over canonical payloads. Only the
// 32-byte SHA-256 digest of each accepted payload is retained, which keeps
// memory bounded on duplicate-heavy inputs while staying exact: the whole
// payload is hashed, so there are no false positives or negatives.
type Deduper struct {
	seen map[[sha256.Size]byte]struct{}
}

// NewDeduper returns an empty dedup index.
func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[[sha256.Size]byte]struct{})}
}

// Accept records the payload's digest and returns true if it has not been
// seen in this run. Once accepted, an entry is never evicted.
func (d *Deduper) Accept(payload []byte) bool {
	sum := sha256.Sum256(payload)
	if _, ok := d.seen[sum]; ok {
		return false
	}
	d.seen[sum] = struct{}{}
	return true
}

// Len returns the number of unique payloads accepted so far.
func (d *Deduper) Len() int { return len(d.seen) }
