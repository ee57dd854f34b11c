// Package mutate implements the payload expansion pipeline for generate
// mode: the ordered application of the encoding-substitution, traversal-depth
// and null-byte stages to a growing payload set.
package mutate

import (
	"bytes"
	"errors"
	"fmt"

	"lfichef/internal/config"
	"lfichef/internal/wordlist"
)

// ErrExpansionCap is returned when a single line's expansion would exceed the
// configured --max_expansion limit. The run aborts rather than silently
// truncating the set.
var ErrExpansionCap = errors.New("per-line expansion cap exceeded")

var nullByte = []byte("%00")

// Pipeline expands one payload line at a time. Stage order is fixed:
// encoding substitution, then traversal depth, then null-byte injection.
// Every stage is additive over the entire set accumulated by earlier stages,
// so later stages also mutate earlier stages' output; the combinatorial
// growth is the point of the tool, not an accident.
type Pipeline struct {
	opts *config.Options
}

// New builds a pipeline from the run options.
func New(opts *config.Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// Expand produces the full variant set for one input line. The original
// (whitespace-trimmed) payload is always the first member of the result.
// Mutations never combine across lines.
func (p *Pipeline) Expand(original []byte) ([][]byte, error) {
	first := append([]byte(nil), wordlist.TrimSpace(original)...)
	set := [][]byte{first}

	var err error
	if set, err = p.encodeStage(set); err != nil {
		return nil, err
	}
	if set, err = p.traversalStage(set); err != nil {
		return nil, err
	}
	if set, err = p.nullByteStage(set); err != nil {
		return nil, err
	}
	return set, nil
}

// checkCap verifies that growing the current set by the stage's variant
// count stays within the configured cap. Growth is predicted up front so the
// run fails before materializing an oversized set.
func (p *Pipeline) checkCap(current, variantsPerPayload int) error {
	if p.opts.MaxExpansion <= 0 {
		return nil
	}
	predicted := current * (1 + variantsPerPayload)
	if predicted > p.opts.MaxExpansion {
		return fmt.Errorf("%w: line would expand to %d payloads, cap is %d",
			ErrExpansionCap, predicted, p.opts.MaxExpansion)
	}
	return nil
}

// encodeStage appends, for every rule in the encoding table and every
// payload in the set, a copy with the rule's substitutions applied. Rules
// with no matching character class still contribute their copy; duplicate
// spellings across stages are expected and intentional.
func (p *Pipeline) encodeStage(set [][]byte) ([][]byte, error) {
	rules := p.opts.Encoding.Rules
	if len(rules) == 0 {
		return set, nil
	}
	if err := p.checkCap(len(set), len(rules)); err != nil {
		return nil, err
	}
	mutations := make([][]byte, 0, len(set)*len(rules))
	for _, payload := range set {
		for _, rule := range rules {
			buf := payload
			if rule.Slash != "" && bytes.Contains(buf, []byte("/")) {
				buf = bytes.ReplaceAll(buf, []byte("/"), []byte(rule.Slash))
			}
			if rule.Backslash != "" && bytes.Contains(buf, []byte(`\`)) {
				buf = bytes.ReplaceAll(buf, []byte(`\`), []byte(rule.Backslash))
			}
			if rule.Period != "" && bytes.Contains(buf, []byte(".")) {
				buf = bytes.ReplaceAll(buf, []byte("."), []byte(rule.Period))
			}
			if p.opts.Windows() && rule.Colon != "" && bytes.Contains(buf, []byte(":")) {
				buf = bytes.ReplaceAll(buf, []byte(":"), []byte(rule.Colon))
			}
			if bytes.Equal(buf, payload) {
				// Nothing substituted; keep the copy anyway but detach it.
				buf = append([]byte(nil), payload...)
			}
			mutations = append(mutations, buf)
		}
	}
	return append(set, mutations...), nil
}

// traversalStage appends, for every depth in the configured range, every
// climb/separator pair and every payload in the set, a copy whose OS-native
// separators are rewritten to the pair's separator and which is prefixed
// with depth repetitions of the climb token.
func (p *Pipeline) traversalStage(set [][]byte) ([][]byte, error) {
	if !p.opts.TraversalEnabled() || len(p.opts.TraversalChars) == 0 {
		return set, nil
	}
	depths := p.opts.TraversalEnd - p.opts.TraversalStart + 1
	if err := p.checkCap(len(set), depths*len(p.opts.TraversalChars)); err != nil {
		return nil, err
	}
	native := []byte{p.opts.NativeSeparator()}
	mutations := make([][]byte, 0, len(set)*depths*len(p.opts.TraversalChars))
	for depth := p.opts.TraversalStart; depth <= p.opts.TraversalEnd; depth++ {
		for _, payload := range set {
			for _, pair := range p.opts.TraversalChars {
				body := bytes.ReplaceAll(payload, native, pair.Separator)
				buf := make([]byte, 0, depth*len(pair.Climb)+len(body))
				buf = append(buf, bytes.Repeat(pair.Climb, depth)...)
				buf = append(buf, body...)
				mutations = append(mutations, buf)
			}
		}
	}
	return append(set, mutations...), nil
}

// nullByteStage appends %00-suffixed and/or %00-prefixed copies of every
// payload in the set, per the configured mode.
func (p *Pipeline) nullByteStage(set [][]byte) ([][]byte, error) {
	mode := p.opts.NullByte
	if mode == config.NullByteNone {
		return set, nil
	}
	variants := 1
	if mode == config.NullByteBoth {
		variants = 2
	}
	if err := p.checkCap(len(set), variants); err != nil {
		return nil, err
	}
	mutations := make([][]byte, 0, len(set)*variants)
	for _, payload := range set {
		if mode == config.NullByteAppend || mode == config.NullByteBoth {
			buf := make([]byte, 0, len(payload)+len(nullByte))
			buf = append(buf, payload...)
			buf = append(buf, nullByte...)
			mutations = append(mutations, buf)
		}
		if mode == config.NullBytePrepend || mode == config.NullByteBoth {
			buf := make([]byte, 0, len(payload)+len(nullByte))
			buf = append(buf, nullByte...)
			buf = append(buf, payload...)
			mutations = append(mutations, buf)
		}
	}
	return append(set, mutations...), nil
}
