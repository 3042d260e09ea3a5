package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jbeshir/job-recommender/internal/command"
	"github.com/jbeshir/job-recommender/internal/domain"
)

type UserRecommendationsList struct {
	Command            command.Command[command.RecommendJobsRequest, command.RecommendJobsResult]
	DefaultMaxDistance float64
	CacheMaxAge        time.Duration
}

func (c UserRecommendationsList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	userToken, err := pathToken(r, "user_id")
	if err != nil {
		logger.WarnContext(ctx, "unable to parse user ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	limit, err := parseLimit(q, defaultLimit)
	if err != nil {
		logger.WarnContext(ctx, "unable to parse limit in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	maxDistance, err := parseMaxDistance(q, c.DefaultMaxDistance)
	if err != nil {
		logger.WarnContext(ctx, "unable to parse max distance in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := c.Command.Execute(ctx, command.RecommendJobsRequest{
		UserToken:   userToken,
		Limit:       limit,
		MaxDistance: maxDistance,
	})
	if err != nil {
		logger.ErrorContext(ctx, "unable to recommend jobs", "user_token", userToken, "error", err)
		w.WriteHeader(statusForError(err))
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))
	writeJSON(ctx, w, JobsListResponse{
		Data: jobResponses(result.Jobs),
		Metadata: JobsListMetadata{
			Fallback: result.Fallback,
			Source:   result.Source,
		},
	})
}
