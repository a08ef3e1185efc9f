// internal/app/system/inputval/inputval.go

// Package inputval validates user-supplied input at the request
// boundary, before any business logic runs.
package inputval

import "strings"

// IsValidEmail reports whether s looks like a plain addr-spec email.
// Display-name forms ("Name <a@b>") are rejected; single-label domains
// are allowed so dev/test hosts like user@localhost work.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]

	return validDotAtom(local) && validDotAtom(domain)
}

// validDotAtom checks a dot-separated atom: no leading/trailing dot, no
// consecutive dots, no whitespace or angle brackets.
func validDotAtom(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}
	if strings.Contains(s, "..") {
		return false
	}
	return !strings.ContainsAny(s, " \t<>@")
}

// FirstMissing returns the name of the first field whose value is
// blank, or "" when all are present. Fields are checked in the order
// given so error messages are stable.
func FirstMissing(fields map[string]string, order ...string) string {
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			return name
		}
	}
	return ""
}
