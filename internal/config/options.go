package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"lfichef/internal/encoding"
)

// Operating modes.
const (
	ModeGenerate = "generate"
	ModeSanitize = "sanitize"
	ModeHarvest  = "harvest"
)

// Target operating systems. Mac and linux behave identically; both are kept
// as accepted spellings.
const (
	OSLinux   = "linux"
	OSMac     = "mac"
	OSWindows = "windows"
)

// NullByteMode selects where the %00 marker is injected.
type NullByteMode int

const (
	NullByteNone NullByteMode = iota
	NullBytePrepend
	NullByteAppend
	NullByteBoth
)

// TraversalPair is one climb/separator token pair used by the traversal
// stage, e.g. climb ".." with separator "/".
type TraversalPair struct {
	Climb     []byte
	Separator []byte
}

// Options holds all runtime configuration. It is built once in main, is
// read-only afterwards, and is passed explicitly into every stage; core logic
// never reaches for ambient state.
type Options struct {
	InFile  string
	OutFile string
	Mode    string
	OS      string

	Encoding       encoding.Table
	TraversalChars []TraversalPair
	TraversalStart int
	TraversalEnd   int
	NullByte       NullByteMode

	// DriveLetter is the windows drive directive for sanitize mode;
	// 0 means "no directive" (strip existing drive prefixes).
	DriveLetter byte

	// MaxExpansion caps the payloads produced per input line in generate
	// mode; 0 disables the cap.
	MaxExpansion int

	// NearDupes, when > 0, logs accepted sanitize-mode payloads within this
	// Levenshtein distance of an earlier accepted payload.
	NearDupes int

	LogFile string
	Verbose bool
	RunID   string
}

// ValidationError marks user-input failures that map to the validation exit
// code, as opposed to I/O or internal failures.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Validationf builds a ValidationError; exported for callers that classify
// user-input failures outside this package.
func Validationf(format string, args ...any) error {
	return validationErrf(format, args...)
}

// Windows returns true when the target OS is windows.
func (o *Options) Windows() bool { return o.OS == OSWindows }

// NativeSeparator returns the path separator of the target OS.
func (o *Options) NativeSeparator() byte {
	if o.Windows() {
		return '\\'
	}
	return '/'
}

// TraversalEnabled reports whether a traversal depth range was configured.
func (o *Options) TraversalEnabled() bool { return o.TraversalEnd > 0 }

// ValidateMode checks the positional mode argument.
func ValidateMode(mode string) (string, error) {
	switch mode {
	case ModeGenerate, ModeSanitize, ModeHarvest:
		return mode, nil
	}
	return "", validationErrf("unknown mode %q, expected generate, sanitize or harvest", mode)
}

// ValidateOS checks the positional OS argument.
func ValidateOS(targetOS string) (string, error) {
	switch targetOS {
	case OSLinux, OSMac, OSWindows:
		return targetOS, nil
	}
	return "", validationErrf("unknown os %q, expected linux, mac or windows", targetOS)
}

// ParseTraversal parses the --traversal value: either a single depth N
// (meaning 1:N) or an inclusive start:end range. The range must satisfy
// 1 <= start <= end.
func ParseTraversal(input string) (start, end int, err error) {
	if strings.Contains(input, ":") {
		left, right, _ := strings.Cut(input, ":")
		start, err = strconv.Atoi(strings.TrimSpace(left))
		if err == nil {
			end, err = strconv.Atoi(strings.TrimSpace(right))
		}
		if err != nil {
			return 0, 0, validationErrf("traversal range %q is not number:number", input)
		}
	} else {
		start = 1
		end, err = strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return 0, 0, validationErrf("traversal depth %q is not a number", input)
		}
	}
	if start < 1 || start > end {
		return 0, 0, validationErrf("traversal range %d:%d is invalid, need 1 <= start <= end", start, end)
	}
	return start, end, nil
}

// DefaultTraversalChars returns the default climb/separator pairs for the
// target OS.
func DefaultTraversalChars(targetOS string) []TraversalPair {
	if targetOS == OSWindows {
		return []TraversalPair{
			{Climb: []byte(`..\`), Separator: []byte(`\`)},
			{Climb: []byte(`....\\`), Separator: []byte(`\\`)},
		}
	}
	return []TraversalPair{
		{Climb: []byte("../"), Separator: []byte("/")},
		{Climb: []byte("....//"), Separator: []byte("//")},
	}
}

// ParseTraversalChars parses the comma-separated --traversal_chars list.
// Entries without a climb:separator delimiter are dropped and returned in
// ignored for the caller to log; dropping rather than aborting is the
// documented behavior for malformed traversal sets.
func ParseTraversalChars(input string) (pairs []TraversalPair, ignored []string) {
	for _, item := range strings.Split(input, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		climb, sep, found := strings.Cut(item, ":")
		if !found || climb == "" {
			ignored = append(ignored, item)
			continue
		}
		pairs = append(pairs, TraversalPair{Climb: []byte(climb), Separator: []byte(sep)})
	}
	return pairs, ignored
}

// ParseNullByte parses the --null_byte value. Unlike the permissive encoding
// selector, an unrecognized mode here is rejected outright.
func ParseNullByte(input string) (NullByteMode, error) {
	switch input {
	case "p":
		return NullBytePrepend, nil
	case "a":
		return NullByteAppend, nil
	case "b":
		return NullByteBoth, nil
	}
	return NullByteNone, validationErrf("null byte mode %q is invalid, expected p, a or b", input)
}

// ParseDrive validates the --drive directive: exactly one ASCII letter,
// folded to lowercase to match canonical windows payloads.
func ParseDrive(input string) (byte, error) {
	if len(input) != 1 {
		return 0, validationErrf("drive letter %q must be a single character", input)
	}
	c := input[0]
	switch {
	case c >= 'a' && c <= 'z':
		return c, nil
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 'a', nil
	}
	return 0, validationErrf("drive letter %q must be an ASCII letter", input)
}

// ValidateInFile resolves and checks the input file path. The file must
// exist and must not be a directory.
func ValidateInFile(path string) (string, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", validationErrf("input file %s does not exist", resolved)
		}
		return "", err
	}
	if info.IsDir() {
		return "", validationErrf("input path %s is a directory", resolved)
	}
	return resolved, nil
}

// ResolveOutFile resolves the output file path, creating parent directories
// as needed. An empty path yields the default generated name in the working
// directory, tagged with the run ID.
func ResolveOutFile(path, targetOS, runID string) (string, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, fmt.Sprintf("lfi-chef_%s_wordlist_%s.txt", targetOS, runID)), nil
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return "", err
	}
	return resolved, nil
}

// resolvePath expands a leading ~ to the user home directory and makes
// relative paths absolute against the working directory.
func resolvePath(path string) (string, error) {
	if path == "" {
		return "", validationErrf("empty file path")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return filepath.Abs(path)
}
