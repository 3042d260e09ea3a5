package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jbeshir/job-recommender/internal/datasources"
)

const precomputedTable = "precomputed_recommendations"

var _ datasources.PrecomputedRecommendationStore = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// DeleteUserPrecomputedRecommendations removes all precomputed recommendations for a user.
func (r *Repository) DeleteUserPrecomputedRecommendations(ctx context.Context, userToken int) error {
	del := sqlbuilder.DeleteFrom(precomputedTable)
	del.Where(del.Equal("user_token", userToken))

	query, args := del.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting precomputed recommendations: %w", err)
	}
	return nil
}

// UpsertPrecomputedRecommendation stores or replaces the recommendation at rec.Position.
func (r *Repository) UpsertPrecomputedRecommendation(
	ctx context.Context,
	userToken int,
	rec datasources.PrecomputedRecommendation,
) error {
	ib := sqlbuilder.InsertInto(precomputedTable)
	ib.Cols("user_token", "position", "job_token", "score", "fallback", "generated_at")
	ib.Values(userToken, rec.Position, rec.JobToken, rec.Score, rec.Fallback, rec.GeneratedAt)
	ib.SQL("ON DUPLICATE KEY UPDATE job_token = VALUES(job_token), score = VALUES(score), " +
		"fallback = VALUES(fallback), generated_at = VALUES(generated_at)")

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting precomputed recommendation: %w", err)
	}
	return nil
}

// GetPrecomputedRecommendations retrieves precomputed recommendations for a user, ordered by position.
func (r *Repository) GetPrecomputedRecommendations(
	ctx context.Context, userToken int, limit int,
) ([]datasources.PrecomputedRecommendation, error) {
	sb := sqlbuilder.Select("job_token", "score", "position", "fallback", "generated_at")
	sb.From(precomputedTable)
	sb.Where(sb.Equal("user_token", userToken))
	sb.OrderBy("position ASC")
	sb.Limit(limit)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching precomputed recommendations: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr // Explicitly ignore the error
		}
	}()

	result := make([]datasources.PrecomputedRecommendation, 0, limit)
	for rows.Next() {
		var rec datasources.PrecomputedRecommendation
		if err := rows.Scan(&rec.JobToken, &rec.Score, &rec.Position, &rec.Fallback, &rec.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scanning precomputed recommendation: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating precomputed recommendations: %w", err)
	}

	return result, nil
}
