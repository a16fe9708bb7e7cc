package ports

import (
	"context"
	"delivery-dispatch-service/internal/domain"
)

// Contract for computing a full pairwise distance/duration matrix over an
// ordered point list. The returned matrices are indexed by the same ordering
// as the input and have a zero diagonal.
type RouteMatrixProvider interface {
	CalculateMatrix(ctx context.Context, points []domain.Coordinates) (domain.RouteMatrix, error)
}
