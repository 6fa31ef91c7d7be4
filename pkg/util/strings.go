package util

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseIntList parses "20, 50,x,200" into [20 50 200], dropping invalid,
// non-positive and repeated entries.
func ParseIntList(s string) []int {
	var out []int
	seen := map[int]bool{}
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v <= 0 || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Truncate cuts s to max runes and appends suffix when it was shortened.
func Truncate(s string, max int, suffix string) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max]) + suffix
}

// CollapseSpaces replaces whitespace runs with a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
