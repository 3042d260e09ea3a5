package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jbeshir/job-recommender/internal/command"
	"github.com/jbeshir/job-recommender/internal/transport/web/controller"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FeedConfig describes the RSS feed's public identity.
type FeedConfig struct {
	BaseURL     string
	AuthorName  string
	AuthorEmail string
	CacheMaxAge time.Duration
}

func MakeRouter(
	recommendJobs command.Command[command.RecommendJobsRequest, command.RecommendJobsResult],
	classifyUserJobs command.Command[command.ClassifyUserJobsRequest, []command.JobProbability],
	listSimilarJobs command.Command[command.ListSimilarJobsRequest, []command.RecommendedJob],
	defaultMaxDistance float64,
	feed FeedConfig,
	authMiddleware func(http.Handler) http.Handler,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(authMiddleware)

	r.Handle("/v1/users/{user_id}/recommendations", controller.UserRecommendationsList{
		Command:            recommendJobs,
		DefaultMaxDistance: defaultMaxDistance,
		CacheMaxAge:        0,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/users/{user_id}/recommendations/rss", controller.UserRecommendationsRSS{
		FeedHostname:    feed.BaseURL,
		FeedAuthorName:  feed.AuthorName,
		FeedAuthorEmail: feed.AuthorEmail,
		Command:         recommendJobs,
		MaxDistance:     defaultMaxDistance,
		CacheMaxAge:     feed.CacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/users/{user_id}/job-probabilities", requireAuthMiddleware(controller.UserJobProbabilitiesList{
		Command: classifyUserJobs,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/jobs/{job_id}/similar", controller.SimilarJobsList{
		Command:     listSimilarJobs,
		CacheMaxAge: time.Hour,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r, nil
}
