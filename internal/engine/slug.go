package engine

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify normalizes a display name into a URL-safe slug: lowercase,
// runs of non-alphanumeric characters collapsed to a single hyphen,
// leading and trailing hyphens trimmed.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// UniqueSlug derives an outlet-unique slug from a base name against the
// set of slugs already taken, appending -1, -2, ... on collision. The
// chosen slug is recorded in taken before returning, so successive calls
// with the same base name stay unique. Terminates after at most
// len(taken)+1 probes.
func UniqueSlug(taken map[string]bool, baseName string) string {
	base := Slugify(baseName)
	if base == "" {
		base = "untitled"
	}
	if !taken[base] {
		taken[base] = true
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken[candidate] {
			taken[candidate] = true
			return candidate
		}
	}
}
