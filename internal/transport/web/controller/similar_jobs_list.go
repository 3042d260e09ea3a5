package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jbeshir/job-recommender/internal/command"
	"github.com/jbeshir/job-recommender/internal/domain"
)

type SimilarJobsList struct {
	Command     command.Command[command.ListSimilarJobsRequest, []command.RecommendedJob]
	CacheMaxAge time.Duration
}

func (c SimilarJobsList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	jobToken, err := pathToken(r, "job_id")
	if err != nil {
		logger.WarnContext(ctx, "unable to parse job ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	limit, err := parseLimit(r.URL.Query(), defaultLimit)
	if err != nil {
		logger.WarnContext(ctx, "unable to parse limit in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	jobs, err := c.Command.Execute(ctx, command.ListSimilarJobsRequest{JobToken: jobToken, Limit: limit})
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch similar jobs", "job_token", jobToken, "error", err)
		w.WriteHeader(statusForError(err))
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))
	writeJSON(ctx, w, JobsListResponse{Data: jobResponses(jobs)})
}
