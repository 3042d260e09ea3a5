package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/feeds"
	"github.com/jbeshir/job-recommender/internal/command"
	"github.com/jbeshir/job-recommender/internal/domain"
)

// UserRecommendationsRSS serves a user's recommendations as an RSS feed.
type UserRecommendationsRSS struct {
	FeedHostname    string
	FeedAuthorName  string
	FeedAuthorEmail string
	Command         command.Command[command.RecommendJobsRequest, command.RecommendJobsResult]
	MaxDistance     float64
	CacheMaxAge     time.Duration
}

func (c UserRecommendationsRSS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	result, err := c.Command.Execute(ctx, command.RecommendJobsRequest{
		UserToken:   userToken,
		Limit:       limit,
		MaxDistance: c.MaxDistance,
	})
	if err != nil {
		logger.ErrorContext(ctx, "unable to recommend jobs for feed", "user_token", userToken, "error", err)
		w.WriteHeader(statusForError(err))
		return
	}

	feedPath := r.URL.Path
	feed := &feeds.Feed{
		Title:       fmt.Sprintf("Recommended jobs for user %d", userToken),
		Link:        &feeds.Link{Href: c.FeedHostname + feedPath},
		Description: "Open jobs matched to this user's application history",
		Author:      &feeds.Author{Name: c.FeedAuthorName, Email: c.FeedAuthorEmail},
		Created:     time.Now(),
	}

	for _, j := range result.Jobs {
		id := strconv.Itoa(j.Job.Token)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          id,
			IsPermaLink: "false",
			Title:       j.Job.Title,
			Link:        &feeds.Link{Href: c.FeedHostname + "/v1/jobs/" + id + "/similar"},
			Description: jobLocation(j.Job.Location),
			Created:     j.Job.StartDate,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		logger.ErrorContext(ctx, "unable to format feed as RSS", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if _, err := w.Write([]byte(rss)); err != nil {
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}

func jobLocation(loc domain.Location) string {
	switch {
	case loc.City != "" && loc.State != "":
		return loc.City + ", " + loc.State
	case loc.Zip != nil:
		return fmt.Sprintf("%05d", *loc.Zip)
	default:
		return loc.State
	}
}
