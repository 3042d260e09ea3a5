package controller

import (
	"net/http"

	"github.com/jbeshir/job-recommender/internal/command"
	"github.com/jbeshir/job-recommender/internal/domain"
)

type JobProbabilityResponse struct {
	JobResponse
	Probability float64 `json:"probability"`
	Distance    float64 `json:"distance"`
}

type JobProbabilitiesListResponse struct {
	Data []JobProbabilityResponse `json:"data"`
}

// UserJobProbabilitiesList serves the scoring model's application probabilities for a
// user's remaining candidates. Score holds the embedding similarity.
type UserJobProbabilitiesList struct {
	Command command.Command[command.ClassifyUserJobsRequest, []command.JobProbability]
}

func (c UserJobProbabilitiesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	userToken, err := pathToken(r, "user_id")
	if err != nil {
		logger.WarnContext(ctx, "unable to parse user ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	limit, err := parseLimit(r.URL.Query(), defaultLimit)
	if err != nil {
		logger.WarnContext(ctx, "unable to parse limit in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	probs, err := c.Command.Execute(ctx, command.ClassifyUserJobsRequest{UserToken: userToken, Limit: limit})
	if err != nil {
		logger.ErrorContext(ctx, "unable to classify user jobs", "user_token", userToken, "error", err)
		w.WriteHeader(statusForError(err))
		return
	}

	resp := JobProbabilitiesListResponse{Data: make([]JobProbabilityResponse, len(probs))}
	for i, p := range probs {
		resp.Data[i] = JobProbabilityResponse{
			JobResponse: jobResponse(p.Job, p.Similarity),
			Probability: p.Probability,
			Distance:    p.Distance,
		}
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(ctx, w, resp)
}
