package helper

import (
	"strings"

	Levenshtein "github.com/agnivade/levenshtein"
)

// LevenshteinRatio returns the raw edit distance between two strings.
// Small distances between distinct canonical payloads usually indicate
// near-duplicate wordlist entries worth reviewing by hand.
func LevenshteinRatio(s1 string, s2 string) int {
	ratio := Levenshtein.ComputeDistance(s1, s2)
	return ratio
}

// Unique filters a string slice down to its first-seen unique members.
func Unique(strSlice []string) []string {
	keys := make(map[string]bool)
	list := []string{}
	for _, entry := range strSlice {
		if _, value := keys[entry]; !value {
			keys[entry] = true
			list = append(list, entry)
		}
	}
	return list
}

// PathPrefixes splits a URL path into its cumulative directory prefixes:
// "/a/b/c.txt" -> ["/a/", "/a/b/"]. The leaf segment is dropped since only
// directories are useful as traversal seeds.
func PathPrefixes(path string) []string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	parts := strings.Split(path, "/")
	// Drop the empty head and the leaf segment.
	parts = parts[1:]
	if len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}
	prefixes := make([]string, 0, len(parts))
	tempPath := "/"
	for _, v := range parts {
		if v == "" {
			continue
		}
		tempPath = tempPath + v + "/"
		prefixes = append(prefixes, tempPath)
	}
	return prefixes
}
