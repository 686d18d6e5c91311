package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Main St 1, 1234 AB, Amsterdam, NL" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format = %q, want json", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"52.3728","lon":"4.8936"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	lat, lon, err := client.Geocode(context.Background(), "Main St 1, 1234 AB, Amsterdam, NL")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if lat != 52.3728 || lon != 4.8936 {
		t.Fatalf("got (%v, %v), want (52.3728, 4.8936)", lat, lon)
	}
}

func TestClientGeocodeNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	if _, _, err := NewClient(server.URL).Geocode(context.Background(), "nowhere"); err == nil {
		t.Fatal("expected error for empty result set")
	}
}

func TestClientGeocodeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	if _, _, err := NewClient(server.URL).Geocode(context.Background(), "anywhere"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestClientGeocodeBadCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"north","lon":"a bit west"}]`))
	}))
	defer server.Close()

	if _, _, err := NewClient(server.URL).Geocode(context.Background(), "anywhere"); err == nil {
		t.Fatal("expected error for unparsable coordinates")
	}
}
