package controller

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/jbeshir/job-recommender/internal/command"
	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/stretchr/testify/mock"
)

func testContext() func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		ctx := domain.ContextWithLogger(r.Context(), slog.New(slog.DiscardHandler))
		return r.WithContext(ctx)
	}
}

type mockCommand[Req, Res any] struct {
	mock.Mock
}

func newMockCommand[Req, Res any](t *testing.T) *mockCommand[Req, Res] {
	m := &mockCommand[Req, Res]{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockCommand[Req, Res]) Execute(ctx context.Context, req Req) (Res, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(Res)
	return res, args.Error(1)
}

var testJobs = []command.RecommendedJob{
	{
		Job: domain.Job{
			Token:     10,
			WindowID:  1,
			Title:     "Cashier",
			Location:  domain.Location{City: "Poway", State: "CA"},
			StartDate: time.Date(2012, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2012, 4, 10, 0, 0, 0, 0, time.UTC),
		},
		Score: 0.9,
	},
	{
		Job: domain.Job{
			Token:     11,
			WindowID:  1,
			Title:     "Barista",
			StartDate: time.Date(2012, 4, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2012, 4, 12, 0, 0, 0, 0, time.UTC),
		},
		Score: 0.6,
	},
}
