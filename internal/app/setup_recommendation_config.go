package app

import (
	"time"

	"github.com/jbeshir/job-recommender/internal/command"
	"github.com/jbeshir/job-recommender/internal/domain"
)

// DefaultRecommendationLimit is how many jobs are precomputed and submitted per user.
const DefaultRecommendationLimit = 150

// DefaultGenerateRecommendationsConfig returns the default config for batch recommendation generation.
func DefaultGenerateRecommendationsConfig() command.GenerateRecommendationsConfig {
	return command.GenerateRecommendationsConfig{
		Limit:       DefaultRecommendationLimit,
		MaxDistance: domain.DefaultMaxDistance,
		Concurrency: 8,
	}
}

// DefaultRecommendJobsConfig returns the default config for serving recommendations.
func DefaultRecommendJobsConfig() command.RecommendJobsConfig {
	return command.RecommendJobsConfig{
		PrecomputedStaleThreshold: 48 * time.Hour,
		PrecomputedMaxDistance:    domain.DefaultMaxDistance,
		PrecomputedLimit:          DefaultRecommendationLimit,
	}
}
