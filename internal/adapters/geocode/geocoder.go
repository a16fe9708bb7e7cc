package geocode

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/ports"
	"errors"
	"fmt"
)

// Provenance tags recorded on geocoding results.
const (
	SourceInline = "inline-latlng"
	SourceHash   = "hash-dev"
	SourceORS    = "ors-geocode"
)

// Backend resolves a normalized address to coordinates.
// Backends return ports.ErrAddressNotFound when the address has no match;
// any other error is an upstream dependency failure and is never cached.
type Backend interface {
	Resolve(ctx context.Context, raw, normalized string) (domain.GeocodePoint, error)
}

// Geocoder implements ports.Geocoder in front of a pluggable backend.
//
// Resolution order:
//  1. inline "lat,lng" parse (bypasses cache and backend),
//  2. cache by normalized address (failures short-circuit),
//  3. backend call, with the outcome written back to the cache.
//
// Safe for concurrent use; the cache is the only cross-request state.
type Geocoder struct {
	backend Backend
	cache   *Cache
}

func NewGeocoder(backend Backend, cache *Cache) *Geocoder {
	return &Geocoder{backend: backend, cache: cache}
}

func (g *Geocoder) Geocode(ctx context.Context, address string) (domain.GeocodePoint, error) {
	if point, ok := parseInlineLatLng(address); ok {
		return point, nil
	}

	normalized := normalize(address)
	if normalized == "" {
		return domain.GeocodePoint{}, ports.ErrAddressNotFound
	}

	if point, found, failed := g.cache.Lookup(normalized); failed {
		return domain.GeocodePoint{}, ports.ErrAddressNotFound
	} else if found {
		return point, nil
	}

	point, err := g.backend.Resolve(ctx, address, normalized)
	if err != nil {
		if errors.Is(err, ports.ErrAddressNotFound) {
			g.cache.PutFailure(normalized)
			return domain.GeocodePoint{}, ports.ErrAddressNotFound
		}
		return domain.GeocodePoint{}, fmt.Errorf("geocode %q: %w", normalized, err)
	}

	g.cache.Put(normalized, point)
	return point, nil
}
