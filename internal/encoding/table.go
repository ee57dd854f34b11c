package encoding

// Rule is one coherent substitution rule set for the path-structural
// characters of a payload. An empty field means the rule defines no
// substitution for that character class and the class must be left alone.
// Colon is only ever populated for windows targets; on linux/mac the field
// stays empty so that rule indexes line up regardless of target OS.
type Rule struct {
	Slash     string
	Backslash string
	Period    string
	Colon     string
}

// Family letter codes accepted by the --encoding flag.
const (
	CodeURL       = 'u'
	CodeDoubleURL = 'd'
	CodeUTF16     = 'b'
	CodeOverlong  = 'o'
)

// family is a named group of rules. URL and double-URL define a single rule;
// UTF-16 and overlong UTF-8 define several because multiple alternate
// encodings exist for the same character.
type family struct {
	rules []Rule
}

// builtins maps family letter codes to their substitution rules. The colon
// values are stored here unconditionally and blanked out for non-windows
// targets when the table is assembled.
var builtins = map[rune]family{
	CodeURL: {rules: []Rule{
		{Slash: "%2f", Backslash: "%5c", Period: "%2e", Colon: "%3a"},
	}},
	CodeDoubleURL: {rules: []Rule{
		{Slash: "%252f", Backslash: "%255c", Period: "%252e", Colon: "%253a"},
	}},
	CodeUTF16: {rules: []Rule{
		{Slash: "%u002f", Backslash: "%u005c", Period: "%u002e", Colon: "%u003a"},
		{Slash: "%u2215", Backslash: "%u2216", Period: "%u002e", Colon: "%u003a"},
	}},
	CodeOverlong: {rules: []Rule{
		{Slash: "%c0%af", Backslash: "%c0%5c", Period: "%c0%2e", Colon: "%c0%3a"},
		{Slash: "%e0%80%af", Backslash: "%c0%80%5c", Period: "%e0%40%ae", Colon: "%e0%80%3a"},
		{Slash: "%c0%2f", Backslash: "%c0%5c", Period: "%c0%ae", Colon: "%c0%3a"},
	}},
}

// Table holds the assembled substitution rules for one run.
type Table struct {
	Rules []Rule
}

// Build assembles the rule table for the requested family letters in request
// order. Letters without a known family (built-in or custom) are skipped and
// returned in ignored so the caller can log them; permissive parsing is the
// documented behavior of the encoding selector. targetOS decides whether the
// colon class participates at all.
func Build(codes string, targetOS string, custom map[rune][]Rule) (Table, []rune) {
	var t Table
	var ignored []rune
	seen := map[rune]bool{}
	for _, c := range codes {
		if seen[c] {
			continue
		}
		seen[c] = true
		var rules []Rule
		if f, ok := builtins[c]; ok {
			rules = f.rules
		} else if cr, ok := custom[c]; ok {
			rules = cr
		} else {
			ignored = append(ignored, c)
			continue
		}
		for _, r := range rules {
			if targetOS != "windows" {
				r.Colon = ""
			}
			t.Rules = append(t.Rules, r)
		}
	}
	return t, ignored
}
