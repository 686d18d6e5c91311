package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseOptionalInt(t *testing.T) {
	tests := []struct {
		raw          string
		defaultValue int
		want         int
		wantErr      bool
	}{
		{"", 200, 200, false},
		{"  ", 200, 200, false},
		{"50", 200, 50, false},
		{"0", 200, 0, false},
		{"-1", 200, 0, true},
		{"abc", 200, 0, true},
	}
	for _, tt := range tests {
		got, err := parseOptionalInt(tt.raw, tt.defaultValue)
		if tt.wantErr != (err != nil) {
			t.Errorf("parseOptionalInt(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseOptionalInt(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestParseOptionalInt64(t *testing.T) {
	got, err := parseOptionalInt64("")
	if err != nil || got != nil {
		t.Fatalf("empty value: got %v, %v; want nil, nil", got, err)
	}
	got, err = parseOptionalInt64("42")
	if err != nil || got == nil || *got != 42 {
		t.Fatalf("42: got %v, %v", got, err)
	}
	for _, raw := range []string{"0", "-3", "abc"} {
		if _, err := parseOptionalInt64(raw); err == nil {
			t.Errorf("parseOptionalInt64(%q): expected error", raw)
		}
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID(" 12 ")
	if err != nil || id != 12 {
		t.Fatalf("got %d, %v; want 12", id, err)
	}
	for _, raw := range []string{"", "0", "-1", "twelve"} {
		if _, err := parseID(raw); err == nil {
			t.Errorf("parseID(%q): expected error", raw)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-03-15")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if _, err := parseDate("2026-03-15T10:30:00Z"); err != nil {
		t.Fatalf("RFC3339 should parse: %v", err)
	}
	if _, err := parseDate("15/03/2026"); err == nil {
		t.Fatal("expected error for unsupported layout")
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var req loginRequest
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"username":"a","password":"b","surprise":true}`))
	if err := decodeJSON(r, &req); err == nil {
		t.Fatal("expected error for unknown field")
	}

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"username":"a","password":"b"}`))
	if err := decodeJSON(r, &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.Username != "a" || req.Password != "b" {
		t.Fatalf("decoded %+v", req)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, 404, "product not found")
	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"product not found"}` {
		t.Fatalf("body = %s", body)
	}
}
