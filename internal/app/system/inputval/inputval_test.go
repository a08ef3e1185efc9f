package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		// Valid
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"a@b.co", true},
		{"user@localhost", true}, // single-label domains for dev/test

		// Missing parts
		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},

		// Malformed dots
		{".user@example.com", false},
		{"user.@example.com", false},
		{"user..name@example.com", false},
		{"user@.example.com", false},
		{"user@example..com", false},

		// Display-name form and whitespace
		{"User Name <user@example.com>", false},
		{"user @example.com", false},
		{"user@ example.com", false},
		{"user@exam ple.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestFirstMissing(t *testing.T) {
	fields := map[string]string{
		"email":     "a@b.co",
		"firstName": "",
		"lastName":  "B",
		"role":      "member",
	}
	if got := FirstMissing(fields, "email", "firstName", "lastName", "role"); got != "firstName" {
		t.Errorf("FirstMissing = %q, want firstName", got)
	}

	fields["firstName"] = "A"
	if got := FirstMissing(fields, "email", "firstName", "lastName", "role"); got != "" {
		t.Errorf("FirstMissing = %q, want empty", got)
	}

	if got := FirstMissing(map[string]string{"uid": "  "}, "uid"); got != "uid" {
		t.Errorf("FirstMissing = %q, want uid (whitespace counts as blank)", got)
	}
}
