package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jbeshir/job-recommender/internal/command"
	"github.com/jbeshir/job-recommender/internal/domain"
)

type JobResponse struct {
	JobID     int       `json:"job_id"`
	WindowID  int       `json:"window_id"`
	Title     string    `json:"title"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Zip       *int      `json:"zip,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Score     float64   `json:"score"`
}

type JobsListMetadata struct {
	Fallback bool   `json:"fallback"`
	Source   string `json:"source,omitempty"`
}

type JobsListResponse struct {
	Data     []JobResponse    `json:"data"`
	Metadata JobsListMetadata `json:"metadata"`
}

func jobResponse(job domain.Job, score float64) JobResponse {
	return JobResponse{
		JobID:     job.Token,
		WindowID:  job.WindowID,
		Title:     job.Title,
		City:      job.Location.City,
		State:     job.Location.State,
		Zip:       job.Location.Zip,
		StartDate: job.StartDate,
		EndDate:   job.EndDate,
		Score:     score,
	}
}

func jobResponses(jobs []command.RecommendedJob) []JobResponse {
	out := make([]JobResponse, len(jobs))
	for i, j := range jobs {
		out[i] = jobResponse(j.Job, j.Score)
	}
	return out
}

// statusForError maps domain errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}
