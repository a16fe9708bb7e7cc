package geocode

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/ports"
	"errors"
	"testing"
)

type countingBackend struct {
	inner Backend
	calls int
}

func (b *countingBackend) Resolve(ctx context.Context, raw, normalized string) (domain.GeocodePoint, error) {
	b.calls++
	return b.inner.Resolve(ctx, raw, normalized)
}

func TestGeocodeInlineLatLng(t *testing.T) {
	g := NewGeocoder(NewHashBackend(), NewCache())

	point, err := g.Geocode(context.Background(), " 37.77 , -122.42 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if point.Source != SourceInline {
		t.Fatalf("source = %q, want %q", point.Source, SourceInline)
	}
	if point.Coordinates.Lat != 37.77 || point.Coordinates.Lng != -122.42 {
		t.Fatalf("coordinates = %+v, want 37.77,-122.42", point.Coordinates)
	}
}

func TestGeocodeInlineOutOfRangeFallsThrough(t *testing.T) {
	// "95,10" looks like lat,lng but is outside valid bounds, so it is
	// treated as a free-text address and resolved by the backend.
	g := NewGeocoder(NewHashBackend(), NewCache())

	point, err := g.Geocode(context.Background(), "95,10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if point.Source != SourceHash {
		t.Fatalf("source = %q, want %q", point.Source, SourceHash)
	}
}

func TestGeocodeHashIdempotent(t *testing.T) {
	g := NewGeocoder(NewHashBackend(), NewCache())

	first, err := g.Geocode(context.Background(), "742 Evergreen Terrace, Springfield")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Casing and whitespace variants normalize to the same cache key and the
	// same derived point.
	second, err := g.Geocode(context.Background(), "  742  evergreen TERRACE,   Springfield ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Coordinates != second.Coordinates {
		t.Fatalf("coordinates differ: %+v vs %+v", first.Coordinates, second.Coordinates)
	}
	if first.Source != SourceHash {
		t.Fatalf("source = %q, want %q", first.Source, SourceHash)
	}
	if !first.Coordinates.Valid() {
		t.Fatalf("derived coordinates out of bounds: %+v", first.Coordinates)
	}
}

func TestGeocodeCacheHitSkipsBackend(t *testing.T) {
	backend := &countingBackend{inner: NewHashBackend()}
	g := NewGeocoder(backend, NewCache())

	for i := 0; i < 3; i++ {
		if _, err := g.Geocode(context.Background(), "1901 W Madison St"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if backend.calls != 1 {
		t.Fatalf("backend calls = %d, want 1", backend.calls)
	}
}

func TestGeocodeCachedFailure(t *testing.T) {
	cache := NewCache()
	g := NewGeocoder(NewHashBackend(), cache)

	cache.PutFailure("742 evergreen terrace")

	// A cached failure short-circuits even though the hash backend would
	// happily resolve anything.
	_, err := g.Geocode(context.Background(), " 742  Evergreen TERRACE ")
	if !errors.Is(err, ports.ErrAddressNotFound) {
		t.Fatalf("error = %v, want ErrAddressNotFound", err)
	}
}

func TestGeocodeEmptyAddress(t *testing.T) {
	g := NewGeocoder(NewHashBackend(), NewCache())

	for _, address := range []string{"", "   ", "\t\n"} {
		if _, err := g.Geocode(context.Background(), address); !errors.Is(err, ports.ErrAddressNotFound) {
			t.Fatalf("address %q: error = %v, want ErrAddressNotFound", address, err)
		}
	}
}

func TestCacheReset(t *testing.T) {
	cache := NewCache()
	g := NewGeocoder(NewHashBackend(), cache)

	cache.PutFailure("somewhere")
	if _, err := g.Geocode(context.Background(), "somewhere"); !errors.Is(err, ports.ErrAddressNotFound) {
		t.Fatalf("error = %v, want ErrAddressNotFound", err)
	}

	cache.Reset()

	if _, err := g.Geocode(context.Background(), "somewhere"); err != nil {
		t.Fatalf("unexpected error after reset: %v", err)
	}
}

func TestCacheSuccessAndFailureMutuallyExclusive(t *testing.T) {
	cache := NewCache()
	point := domain.GeocodePoint{Coordinates: domain.Coordinates{Lat: 1, Lng: 2}, Source: SourceHash}

	cache.Put("addr", point)
	cache.PutFailure("addr")
	if _, found, failed := cache.Lookup("addr"); found || !failed {
		t.Fatalf("after PutFailure: found=%v failed=%v, want found=false failed=true", found, failed)
	}

	cache.Put("addr", point)
	if got, found, failed := cache.Lookup("addr"); !found || failed || got != point {
		t.Fatalf("after Put: got=%+v found=%v failed=%v", got, found, failed)
	}
}
