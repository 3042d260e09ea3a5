package command

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jbeshir/job-recommender/internal/datasources"
	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/jbeshir/job-recommender/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// GenerateRecommendationsRequest is the request for the GenerateRecommendations command.
type GenerateRecommendationsRequest struct {
	Split domain.Split
}

// GenerateRecommendationsConfig holds configuration for batch recommendation generation.
type GenerateRecommendationsConfig struct {
	// Limit is the number of recommendations precomputed per user.
	Limit int
	// MaxDistance is the commute radius in miles.
	MaxDistance float64
	// Concurrency bounds the number of users processed at once.
	Concurrency int
}

// UserRecommendations is one user's generated job tokens, best first. Jobs is empty
// when generation failed for the user.
type UserRecommendations struct {
	UserToken int
	JobTokens []int
	Fallback  bool
}

// GenerateRecommendationsResult lists every user of the split in index order.
type GenerateRecommendationsResult struct {
	Users        []UserRecommendations
	SuccessCount int
	FailCount    int
}

// GenerateRecommendations computes and stores recommendations for every user in a split.
type GenerateRecommendations struct {
	Catalog           domain.Catalog
	PrecomputedWriter datasources.PrecomputedRecommendationWriter
	Config            GenerateRecommendationsConfig
}

// NewGenerateRecommendations creates a properly initialized GenerateRecommendations command.
func NewGenerateRecommendations(
	catalog domain.Catalog,
	precomputedWriter datasources.PrecomputedRecommendationWriter,
	config GenerateRecommendationsConfig,
) *GenerateRecommendations {
	return &GenerateRecommendations{
		Catalog:           catalog,
		PrecomputedWriter: precomputedWriter,
		Config:            config,
	}
}

// Execute processes users in parallel. Per-user failures are logged and counted; only
// cancellation aborts the run.
func (c *GenerateRecommendations) Execute(
	ctx context.Context, req GenerateRecommendationsRequest,
) (GenerateRecommendationsResult, error) {
	if _, err := domain.ParseSplit(string(req.Split)); err != nil {
		return GenerateRecommendationsResult{}, err
	}
	if c.Config.Limit <= 0 {
		return GenerateRecommendationsResult{}, fmt.Errorf("limit %d: %w", c.Config.Limit, domain.ErrInvalidArgument)
	}
	logger := domain.LoggerFromContext(ctx)

	var userIndices []int
	for idx := range c.Catalog.UserTokens.Len() {
		user, err := c.Catalog.User(idx)
		if err != nil {
			return GenerateRecommendationsResult{}, fmt.Errorf("reading user %d: %w", idx, err)
		}
		if user.Split == req.Split {
			userIndices = append(userIndices, idx)
		}
	}

	if len(userIndices) == 0 {
		logger.InfoContext(ctx, "no users need recommendation generation", "split", req.Split)
		return GenerateRecommendationsResult{}, nil
	}

	logger.InfoContext(ctx, "starting recommendation generation", "user_count", len(userIndices))

	result := GenerateRecommendationsResult{Users: make([]UserRecommendations, len(userIndices))}
	var mu sync.Mutex
	generatedAt := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Config.Concurrency, 1))
	for pos, userIndex := range userIndices {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			token, _ := c.Catalog.UserTokens.Token(userIndex)
			recs, err := c.generateForUser(gctx, userIndex, token, generatedAt)
			metrics.RecordBatchUser("generate_recommendations", err)

			mu.Lock()
			defer mu.Unlock()
			result.Users[pos] = recs
			if err != nil {
				logger.ErrorContext(gctx, "failed to generate recommendations for user",
					"user_token", token, "error", err)
				result.FailCount++
				return nil
			}
			result.SuccessCount++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return GenerateRecommendationsResult{}, fmt.Errorf("generating recommendations: %w", err)
	}

	logger.InfoContext(ctx, "recommendation generation complete",
		"success_count", result.SuccessCount, "fail_count", result.FailCount)

	return result, nil
}

// generateForUser computes and stores one user's recommendations. The returned value
// always carries the user token.
func (c *GenerateRecommendations) generateForUser(
	ctx context.Context, userIndex, userToken int, generatedAt time.Time,
) (UserRecommendations, error) {
	out := UserRecommendations{UserToken: userToken}

	rec, err := domain.Recommender{Catalog: c.Catalog}.Recommend(userIndex, c.Config.Limit, c.Config.MaxDistance)
	if err != nil {
		return out, fmt.Errorf("recommending jobs: %w", err)
	}

	if err := c.PrecomputedWriter.DeleteUserPrecomputedRecommendations(ctx, userToken); err != nil {
		return out, fmt.Errorf("deleting existing recommendations: %w", err)
	}

	tokens := make([]int, len(rec.Jobs))
	for position, idx := range rec.Jobs {
		tokens[position], _ = c.Catalog.JobTokens.Token(idx)
		if err := c.PrecomputedWriter.UpsertPrecomputedRecommendation(ctx, userToken,
			datasources.PrecomputedRecommendation{
				JobToken:    tokens[position],
				Score:       rec.Scores[position],
				Position:    position,
				Fallback:    rec.Fallback,
				GeneratedAt: generatedAt,
			}); err != nil {
			return out, fmt.Errorf("storing recommendation at position %d: %w", position, err)
		}
	}

	out.JobTokens = tokens
	out.Fallback = rec.Fallback
	return out, nil
}
