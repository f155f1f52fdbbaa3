// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package content

// Family partitions the override namespace. Case-study overrides and
// generic content blocks live under disjoint key prefixes, so writing one
// can never shadow the other.
type Family string

const (
	FamilyCaseStudy Family = "case-study"
	FamilyContent   Family = "content"
)

// Key returns the namespaced storage key for a slug.
func (f Family) Key(slug string) string {
	return string(f) + ":" + slug
}

// Valid reports whether f is a known family.
func (f Family) Valid() bool {
	return f == FamilyCaseStudy || f == FamilyContent
}
