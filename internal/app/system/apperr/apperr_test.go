package apperr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubstack/memberhub/internal/app/system/apperr"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"nil", nil, ""},
		{"unauthenticated", apperr.New(apperr.Unauthenticated, "no session"), apperr.Unauthenticated},
		{"permission denied", apperr.New(apperr.PermissionDenied, "admins only"), apperr.PermissionDenied},
		{"invalid argument", apperr.New(apperr.InvalidArgument, "bad role"), apperr.InvalidArgument},
		{"plain error", errors.New("boom"), apperr.Internal},
		{"wrapped", fmt.Errorf("outer: %w", apperr.New(apperr.InvalidArgument, "bad")), apperr.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apperr.KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.Unauthenticated, http.StatusUnauthorized},
		{apperr.PermissionDenied, http.StatusForbidden},
		{apperr.InvalidArgument, http.StatusBadRequest},
		{apperr.Internal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := apperr.HTTPStatus(tt.kind); got != tt.want {
			t.Errorf("HTTPStatus(%q) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	e := apperr.Wrap(apperr.Internal, "failed to update user role", cause)
	if e.Detail != "connection reset" {
		t.Errorf("Detail = %q, want cause text", e.Detail)
	}
	if e.Kind != apperr.Internal {
		t.Errorf("Kind = %q, want internal", e.Kind)
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	apperr.WriteJSON(rec, apperr.New(apperr.PermissionDenied, "Only administrators can change user roles."))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["error"]["kind"] != "permission-denied" {
		t.Errorf("kind = %q, want permission-denied", body["error"]["kind"])
	}
	if body["error"]["message"] == "" {
		t.Error("expected a human-readable message")
	}
}

func TestWriteJSON_UnclassifiedError(t *testing.T) {
	rec := httptest.NewRecorder()
	apperr.WriteJSON(rec, errors.New("secret driver detail"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	var body map[string]map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["error"]["kind"] != "internal" {
		t.Errorf("kind = %q, want internal", body["error"]["kind"])
	}
	if body["error"]["message"] == "secret driver detail" {
		t.Error("raw error text must not leak to the client")
	}
}
