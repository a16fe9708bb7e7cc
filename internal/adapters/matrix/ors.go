package matrix

import (
	"bytes"
	"context"
	"delivery-dispatch-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SourceORS tags matrices produced by the OpenRouteService matrix API.
const SourceORS = "ors-matrix"

// Cost substituted for cells the service reports as unreachable. The solver
// then avoids the edge instead of the whole request aborting.
const unreachableCost = 1e9

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// ORSProvider computes full pairwise matrices through the OpenRouteService
// matrix endpoint. Transient failures are surfaced as errors, not retried:
// retry policy for the external routing service is operational, not part of
// the optimizer's contract.
type ORSProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

func NewORSProvider(apiKey string) (*ORSProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSProvider{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
	}, nil
}

func (p *ORSProvider) CalculateMatrix(ctx context.Context, points []domain.Coordinates) (domain.RouteMatrix, error) {
	n := len(points)
	if n == 0 {
		return domain.RouteMatrix{
			Source:          SourceORS,
			DistanceMeters:  [][]float64{},
			DurationSeconds: [][]float64{},
		}, nil
	}

	locations := make([][]float64, 0, n)
	for _, c := range points {
		locations = append(locations, c.CoordsToList())
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: locations,
		Metrics:   []string{"distance", "duration"},
	})
	if err != nil {
		return domain.RouteMatrix{}, fmt.Errorf("marshal matrix request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", p.baseURL, p.profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.RouteMatrix{}, fmt.Errorf("create matrix request: %w", err)
	}
	req.Header.Set("Authorization", p.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.session.Do(req)
	if err != nil {
		return domain.RouteMatrix{}, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.RouteMatrix{}, fmt.Errorf(
			"matrix status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)),
		)
	}

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return domain.RouteMatrix{}, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != n || len(mr.Durations) != n {
		return domain.RouteMatrix{}, fmt.Errorf(
			"expected %d matrix rows; got distances=%d durations=%d",
			n, len(mr.Distances), len(mr.Durations),
		)
	}

	distance := make([][]float64, n)
	duration := make([][]float64, n)
	for i := 0; i < n; i++ {
		if len(mr.Distances[i]) != n || len(mr.Durations[i]) != n {
			return domain.RouteMatrix{}, fmt.Errorf(
				"matrix row %d length mismatch: distances=%d durations=%d want %d",
				i, len(mr.Distances[i]), len(mr.Durations[i]), n,
			)
		}

		distance[i] = make([]float64, n)
		duration[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			dPtr := mr.Distances[i][j]
			tPtr := mr.Durations[i][j]

			// Unreachable cells come back null; substitute a sentinel cost so
			// the edge is avoided rather than failing the whole matrix.
			if dPtr == nil || tPtr == nil {
				distance[i][j] = unreachableCost
				duration[i][j] = unreachableCost
				continue
			}
			distance[i][j] = *dPtr
			duration[i][j] = *tPtr
		}
		distance[i][i] = 0
		duration[i][i] = 0
	}

	return domain.RouteMatrix{
		Source:          SourceORS,
		DistanceMeters:  distance,
		DurationSeconds: duration,
	}, nil
}
