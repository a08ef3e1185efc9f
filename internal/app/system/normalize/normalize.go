// internal/app/system/normalize/normalize.go

// Package normalize holds the canonical forms for user-supplied fields.
// Every store write goes through these so lookups stay consistent.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a personal name and collapses interior runs of whitespace
// to a single space.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Role lowercases and trims a role value. Validation against the
// allowed set happens separately; this only fixes case and spacing.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
