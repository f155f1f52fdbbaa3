// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

// Package util provides small general-purpose helpers, currently URL slug
// generation and validation with Unicode normalization support.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugChars matches everything that may not appear in a slug.
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	// hyphenRuns matches two or more consecutive hyphens.
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Slugify converts an arbitrary string (typically a title) to a URL-friendly
// slug: accents are decomposed and stripped, the result is lowercased, spaces
// become hyphens, and anything outside [a-z0-9-] is removed.
func Slugify(s string) string {
	// Decompose accented characters and drop the combining marks
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, _ := transform.String(t, s)

	slug := strings.ToLower(plain)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// IsValidSlug reports whether s is a well-formed slug: non-empty, only
// lowercase letters, digits and single interior hyphens, and no leading or
// trailing hyphen.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	return !strings.Contains(s, "--")
}
