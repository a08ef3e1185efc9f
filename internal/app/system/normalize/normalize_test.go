package normalize_test

import (
	"testing"

	"github.com/clubstack/memberhub/internal/app/system/normalize"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  a@b.co  ", "a@b.co"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalize.Email(tt.in); got != tt.want {
			t.Errorf("Email(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Ada   Lovelace ", "Ada Lovelace"},
		{"Ada", "Ada"},
		{"\tAda\nLovelace", "Ada Lovelace"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalize.Name(tt.in); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRole(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Admin", "admin"},
		{" EXECUTIVE ", "executive"},
		{"member", "member"},
	}
	for _, tt := range tests {
		if got := normalize.Role(tt.in); got != tt.want {
			t.Errorf("Role(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
