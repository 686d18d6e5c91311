package service

import (
	"context"
	"errors"
	"testing"

	"purchasing-backend/internal/repository"
)

type stubGeocoder struct {
	lat, lon float64
	err      error
	calls    int
	lastQ    string
}

func (g *stubGeocoder) Geocode(_ context.Context, address string) (float64, float64, error) {
	g.calls++
	g.lastQ = address
	return g.lat, g.lon, g.err
}

func strp(v string) *string { return &v }

func supplierInput() repository.SupplierInput {
	return repository.SupplierInput{
		Name:        "Bolt BV",
		Address:     strp("Main St 1"),
		Postal:      strp("1234 AB"),
		City:        strp("Amsterdam"),
		CountryCode: "NL",
	}
}

func TestGeocodeSupplierFillsCoordinates(t *testing.T) {
	geocoder := &stubGeocoder{lat: 52.37, lon: 4.89}
	svc := New(nil, geocoder)

	input := supplierInput()
	svc.geocodeSupplier(context.Background(), &input)

	if geocoder.calls != 1 {
		t.Fatalf("geocoder called %d times, want 1", geocoder.calls)
	}
	if geocoder.lastQ != "Main St 1, 1234 AB, Amsterdam, NL" {
		t.Fatalf("geocode query = %q", geocoder.lastQ)
	}
	if input.Lat == nil || input.Lon == nil || *input.Lat != 52.37 || *input.Lon != 4.89 {
		t.Fatalf("coordinates not applied: %+v", input)
	}
}

func TestGeocodeSupplierSkipsWhenCoordinatesPresent(t *testing.T) {
	geocoder := &stubGeocoder{}
	svc := New(nil, geocoder)

	lat, lon := 1.0, 2.0
	input := supplierInput()
	input.Lat, input.Lon = &lat, &lon
	svc.geocodeSupplier(context.Background(), &input)

	if geocoder.calls != 0 {
		t.Fatalf("geocoder called %d times, want 0", geocoder.calls)
	}
}

func TestGeocodeSupplierSkipsWithoutAddress(t *testing.T) {
	geocoder := &stubGeocoder{}
	svc := New(nil, geocoder)

	input := repository.SupplierInput{Name: "Bolt BV", CountryCode: "NL"}
	svc.geocodeSupplier(context.Background(), &input)

	if geocoder.calls != 0 {
		t.Fatalf("geocoder called %d times, want 0", geocoder.calls)
	}
}

func TestGeocodeSupplierFailureLeavesInputUntouched(t *testing.T) {
	geocoder := &stubGeocoder{err: errors.New("service unavailable")}
	svc := New(nil, geocoder)

	input := supplierInput()
	svc.geocodeSupplier(context.Background(), &input)

	if input.Lat != nil || input.Lon != nil {
		t.Fatalf("coordinates set despite geocode failure: %+v", input)
	}
}

func TestGeocodeSupplierNilGeocoder(t *testing.T) {
	svc := New(nil, nil)
	input := supplierInput()
	svc.geocodeSupplier(context.Background(), &input)
	if input.Lat != nil || input.Lon != nil {
		t.Fatalf("coordinates set without a geocoder: %+v", input)
	}
}
