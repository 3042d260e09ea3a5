package command

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testContext() context.Context {
	return domain.ContextWithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // weak random is fine for sampling tests
}

func intPtr(v int) *int {
	return &v
}

// testCatalog has three users and three jobs in window 1:
//
//	job 10 and job 11 in Poway, job 12 in Bakersfield.
//
// User 100 (Train) lives in Poway and applied to job 11. User 200 (Test) lives in
// Poway and applied to nothing. User 300 (Test) cannot be located.
//
// Similarities for user 200 are 10: 1, 12: 0.8, 11: 0.6 and for user 300 are
// 11: 0.8, 12: 0.6, 10: 0.
func testCatalog(t *testing.T) domain.Catalog {
	t.Helper()

	userTokens, err := domain.NewTokenIndex([]int{100, 200, 300})
	require.NoError(t, err)
	jobTokens, err := domain.NewTokenIndex([]int{10, 11, 12})
	require.NoError(t, err)

	open := time.Date(2012, 4, 10, 0, 0, 0, 0, time.UTC)
	jobs := domain.Jobs{
		10: {Token: 10, WindowID: 1, Title: "Cashier", EndDate: open, Location: domain.Location{Zip: intPtr(92064)}},
		11: {Token: 11, WindowID: 1, Title: "Barista", EndDate: open, Location: domain.Location{Zip: intPtr(92064)}},
		12: {Token: 12, WindowID: 1, Title: "Welder", EndDate: open, Location: domain.Location{Zip: intPtr(93313)}},
	}
	users := domain.Users{
		100: {Token: 100, WindowID: 1, Split: domain.SplitTrain, CurrentlyEmployed: "Yes",
			Location: domain.Location{Zip: intPtr(92064)}},
		200: {Token: 200, WindowID: 1, Split: domain.SplitTest, CurrentlyEmployed: "No",
			Location: domain.Location{Zip: intPtr(92064)}},
		300: {Token: 300, WindowID: 1, Split: domain.SplitTest,
			Location: domain.Location{Zip: intPtr(99999)}},
	}

	windows, err := domain.NewValidityWindowIndex([]domain.Window{{
		ID:                 1,
		TrainStart:         time.Date(2012, 3, 1, 0, 0, 0, 0, time.UTC),
		TrainStopTestStart: time.Date(2012, 4, 1, 0, 0, 0, 0, time.UTC),
		TestStop:           time.Date(2012, 4, 14, 0, 0, 0, 0, time.UTC),
	}}, jobTokens, jobs)
	require.NoError(t, err)

	apps, err := domain.NewSparseMatrix(3, 3, []domain.SparseEntry{{Row: 0, Col: 1, Value: 1}})
	require.NoError(t, err)

	engine, err := domain.NewSimilarityEngineFromEmbeddings(
		mat.NewDense(3, 2, []float64{
			0.6, 0.8,
			1, 0,
			0, 1,
		}),
		mat.NewDense(3, 2, []float64{
			1, 0,
			0.6, 0.8,
			0.8, 0.6,
		}),
	)
	require.NoError(t, err)

	geo := domain.NewGeoLookup([]domain.GeoRecord{
		{Zip: 92064, State: "CA", City: "Poway", Coordinate: domain.Coordinate{Lat: 32.953, Long: -117.031}},
		{Zip: 93313, State: "CA", City: "Bakersfield", Coordinate: domain.Coordinate{Lat: 35.172, Long: -119.064}},
	})
	coords, err := domain.NewJobCoordinates(jobTokens, jobs, geo)
	require.NoError(t, err)

	return domain.Catalog{
		UserTokens: userTokens,
		JobTokens:  jobTokens,
		Users:      users,
		Jobs:       jobs,
		Windows:    windows,
		History:    domain.NewApplicationHistory(apps),
		Similarity: engine,
		Distance: domain.GeoDistanceFilter{
			Users:  users,
			Geo:    geo,
			Coords: coords,
		},
	}
}
