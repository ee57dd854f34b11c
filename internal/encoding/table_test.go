package encoding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFamilyContributions(t *testing.T) {
	tests := []struct {
		name  string
		codes string
		rules int
	}{
		{name: "url", codes: "u", rules: 1},
		{name: "double url", codes: "d", rules: 1},
		{name: "utf16", codes: "b", rules: 2},
		{name: "overlong utf8", codes: "o", rules: 3},
		{name: "all combined", codes: "udbo", rules: 7},
		{name: "order does not change count", codes: "obdu", rules: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, ignored := Build(tt.codes, "linux", nil)
			assert.Len(t, table.Rules, tt.rules)
			assert.Empty(t, ignored)
		})
	}
}

func TestBuildRequestOrder(t *testing.T) {
	table, _ := Build("ou", "linux", nil)
	require.Len(t, table.Rules, 4)
	// Overlong rules come first because 'o' was requested first.
	assert.Equal(t, "%c0%af", table.Rules[0].Slash)
	assert.Equal(t, "%2f", table.Rules[3].Slash)
}

func TestBuildColonPerOS(t *testing.T) {
	linux, _ := Build("udbo", "linux", nil)
	for i, r := range linux.Rules {
		assert.Emptyf(t, r.Colon, "rule %d must have no colon substitution on linux", i)
	}

	win, _ := Build("udbo", "windows", nil)
	require.Len(t, win.Rules, len(linux.Rules))
	for i, r := range win.Rules {
		assert.NotEmptyf(t, r.Colon, "rule %d must substitute colons on windows", i)
	}
	assert.Equal(t, "%3a", win.Rules[0].Colon)
}

func TestBuildIgnoresUnknownLetters(t *testing.T) {
	table, ignored := Build("uxz", "linux", nil)
	assert.Len(t, table.Rules, 1)
	assert.Equal(t, []rune{'x', 'z'}, ignored)
}

func TestBuildSkipsRepeatedLetters(t *testing.T) {
	table, ignored := Build("uu", "linux", nil)
	assert.Len(t, table.Rules, 1)
	assert.Empty(t, ignored)
}

func TestBuildCustomFamily(t *testing.T) {
	custom := map[rune][]Rule{
		'x': {{Slash: "%ef%bc%8f", Backslash: "%ef%bc%bc", Period: "%ef%bc%8e", Colon: "%ef%bc%9a"}},
	}
	table, ignored := Build("ux", "linux", custom)
	require.Empty(t, ignored)
	require.Len(t, table.Rules, 2)
	assert.Equal(t, "%ef%bc%8f", table.Rules[1].Slash)
	// Custom colon values are blanked for non-windows targets too.
	assert.Empty(t, table.Rules[1].Colon)
}

func TestLoadCustom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enc.toml")
	doc := `
[[family]]
code = "x"

[[family.rule]]
slash = "%ef%bc%8f"
backslash = "%ef%bc%bc"
period = "%ef%bc%8e"
colon = "%ef%bc%9a"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	custom, err := LoadCustom(path)
	require.NoError(t, err)
	require.Contains(t, custom, 'x')
	require.Len(t, custom['x'], 1)
	assert.Equal(t, "%ef%bc%8f", custom['x'][0].Slash)
}

func TestLoadCustomRejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "multi letter code",
			doc: `[[family]]
code = "xy"
[[family.rule]]
slash = "%2f"`,
		},
		{
			name: "shadows builtin",
			doc: `[[family]]
code = "u"
[[family.rule]]
slash = "%2f"`,
		},
		{
			name: "no rules",
			doc: `[[family]]
code = "x"`,
		},
		{
			name: "not toml",
			doc:  `{"family": []}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "enc.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o644))
			_, err := LoadCustom(path)
			assert.Error(t, err)
		})
	}
}
