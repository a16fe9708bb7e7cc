package geocode

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSBackend resolves addresses through the OpenRouteService geocoding API
// (/geocode/search). Failures are surfaced directly; retry policy for the
// external service is an operational concern layered above this adapter.
type ORSBackend struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewORSBackend(apiKey string) (*ORSBackend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSBackend{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
	}, nil
}

func (b *ORSBackend) Resolve(ctx context.Context, raw, _ string) (domain.GeocodePoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/geocode/search", nil)
	if err != nil {
		return domain.GeocodePoint{}, fmt.Errorf("create geocode request: %w", err)
	}
	req.Header.Set("Authorization", b.apiKey)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("text", raw)
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := b.session.Do(req)
	if err != nil {
		return domain.GeocodePoint{}, fmt.Errorf("execute geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.GeocodePoint{}, fmt.Errorf(
			"geocode status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)),
		)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GeocodePoint{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.GeocodePoint{}, ports.ErrAddressNotFound
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.GeocodePoint{}, ports.ErrAddressNotFound
	}

	// ORS returns [lon, lat].
	c := domain.Coordinates{Lat: coords[1], Lng: coords[0]}
	if !c.Valid() {
		return domain.GeocodePoint{}, ports.ErrAddressNotFound
	}

	return domain.GeocodePoint{Coordinates: c, Source: SourceORS}, nil
}
