package datasources

import (
	"context"
	"time"
)

// PrecomputedRecommendation is one stored entry of a user's top-k list.
type PrecomputedRecommendation struct {
	JobToken    int
	Score       float64
	Position    int
	Fallback    bool
	GeneratedAt time.Time
}

// PrecomputedRecommendationWriter replaces a user's stored recommendations.
type PrecomputedRecommendationWriter interface {
	DeleteUserPrecomputedRecommendations(ctx context.Context, userToken int) error
	UpsertPrecomputedRecommendation(ctx context.Context, userToken int, rec PrecomputedRecommendation) error
}

// PrecomputedRecommendationGetter reads a user's stored recommendations ordered by
// position. It returns an empty slice when none are stored.
type PrecomputedRecommendationGetter interface {
	GetPrecomputedRecommendations(ctx context.Context, userToken int, limit int) ([]PrecomputedRecommendation, error)
}

// PrecomputedRecommendationStore combines reads and writes of precomputed recommendations.
type PrecomputedRecommendationStore interface {
	PrecomputedRecommendationWriter
	PrecomputedRecommendationGetter
}

// NullPrecomputedRecommendationStore stores nothing; every read misses.
type NullPrecomputedRecommendationStore struct{}

var _ PrecomputedRecommendationStore = NullPrecomputedRecommendationStore{}

func (NullPrecomputedRecommendationStore) DeleteUserPrecomputedRecommendations(_ context.Context, _ int) error {
	return nil
}

func (NullPrecomputedRecommendationStore) UpsertPrecomputedRecommendation(
	_ context.Context,
	_ int,
	_ PrecomputedRecommendation,
) error {
	return nil
}

func (NullPrecomputedRecommendationStore) GetPrecomputedRecommendations(
	_ context.Context,
	_ int,
	_ int,
) ([]PrecomputedRecommendation, error) {
	return nil, nil
}
