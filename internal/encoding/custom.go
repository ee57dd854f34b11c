package encoding

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// customFile is the TOML shape of an encoding-family definition file:
//
//	[[family]]
//	code = "x"
//	[[family.rule]]
//	slash = "%2f"
//	backslash = "%5c"
//	period = "%2e"
//	colon = "%3a"
type customFile struct {
	Family []customFamily `toml:"family"`
}

type customFamily struct {
	Code string       `toml:"code"`
	Rule []customRule `toml:"rule"`
}

type customRule struct {
	Slash     string `toml:"slash"`
	Backslash string `toml:"backslash"`
	Period    string `toml:"period"`
	Colon     string `toml:"colon"`
}

// LoadCustom reads extra encoding families from a TOML file. Each family must
// declare a single-letter code that does not shadow a built-in family, and at
// least one rule. Custom families become selectable through --encoding just
// like built-ins.
func LoadCustom(path string) (map[rune][]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cf customFile
	if err := toml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing encoding file %s: %w", path, err)
	}

	out := make(map[rune][]Rule, len(cf.Family))
	for _, f := range cf.Family {
		runes := []rune(f.Code)
		if len(runes) != 1 {
			return nil, fmt.Errorf("encoding family code %q must be a single letter", f.Code)
		}
		code := runes[0]
		if _, exists := builtins[code]; exists {
			return nil, fmt.Errorf("encoding family code %q shadows a built-in family", f.Code)
		}
		if len(f.Rule) == 0 {
			return nil, fmt.Errorf("encoding family %q defines no rules", f.Code)
		}
		rules := make([]Rule, 0, len(f.Rule))
		for _, r := range f.Rule {
			rules = append(rules, Rule{
				Slash:     r.Slash,
				Backslash: r.Backslash,
				Period:    r.Period,
				Colon:     r.Colon,
			})
		}
		out[code] = rules
	}
	return out, nil
}
