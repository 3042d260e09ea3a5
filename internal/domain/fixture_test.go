package domain

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// newTestRand creates a deterministic random number generator for testing.
func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // weak random is fine for sampling tests
}

func intPtr(v int) *int {
	return &v
}

var (
	testCoordPoway       = Coordinate{Lat: 32.953, Long: -117.031}
	testCoordBakersfield = Coordinate{Lat: 35.172, Long: -119.064}
	testCoordRamona      = Coordinate{Lat: 33.04, Long: -116.87}

	testWindowTestStart = time.Date(2012, 4, 1, 0, 0, 0, 0, time.UTC)
)

func testGeoLookup() GeoLookup {
	return NewGeoLookup([]GeoRecord{
		{Zip: 92064, State: "CA", City: "Poway", Coordinate: testCoordPoway},
		{Zip: 93313, State: "CA", City: "Bakersfield", Coordinate: testCoordBakersfield},
		{Zip: 92065, State: "CA", City: "Ramona", Coordinate: testCoordRamona},
	})
}

// testCatalog has three users and five jobs, all in window 1:
//
//	job 0 (10) Poway, job 1 (11) Bakersfield, job 2 (12) Ramona,
//	job 3 (13) Poway but expired before the test period, job 4 (14) unknown location.
//
// User 0 (100) lives in Poway and applied to jobs 1 and 3, user 1 (200) lives in
// Bakersfield (city only) and applied to nothing, user 2 (300) has no location and
// applied to job 0.
func testCatalog(t *testing.T) Catalog {
	t.Helper()

	userTokens, err := NewTokenIndex([]int{100, 200, 300})
	require.NoError(t, err)
	jobTokens, err := NewTokenIndex([]int{10, 11, 12, 13, 14})
	require.NoError(t, err)

	open := time.Date(2012, 4, 10, 0, 0, 0, 0, time.UTC)
	jobs := Jobs{
		10: {Token: 10, WindowID: 1, EndDate: open, Location: Location{Zip: intPtr(92064)}},
		11: {Token: 11, WindowID: 1, EndDate: open, Location: Location{Zip: intPtr(93313)}},
		12: {Token: 12, WindowID: 1, EndDate: open, Location: Location{City: "Ramona", State: "CA"}},
		13: {Token: 13, WindowID: 1, EndDate: time.Date(2012, 3, 15, 0, 0, 0, 0, time.UTC),
			Location: Location{Zip: intPtr(92064)}},
		14: {Token: 14, WindowID: 1, EndDate: time.Date(2012, 4, 2, 0, 0, 0, 0, time.UTC)},
	}
	users := Users{
		100: {Token: 100, WindowID: 1, Split: SplitTrain, CurrentlyEmployed: "Yes",
			Location: Location{Zip: intPtr(92064)}},
		200: {Token: 200, WindowID: 1, Split: SplitTest, CurrentlyEmployed: "No",
			Location: Location{City: "Bakersfield", State: "CA"}},
		300: {Token: 300, WindowID: 1, Split: SplitTrain, CurrentlyEmployed: "",
			Location: Location{Zip: intPtr(99999)}},
	}

	windows, err := NewValidityWindowIndex([]Window{{
		ID:                 1,
		TrainStart:         time.Date(2012, 3, 1, 0, 0, 0, 0, time.UTC),
		TrainStopTestStart: testWindowTestStart,
		TestStop:           time.Date(2012, 4, 14, 0, 0, 0, 0, time.UTC),
	}}, jobTokens, jobs)
	require.NoError(t, err)

	apps, err := NewSparseMatrix(3, 5, []SparseEntry{
		{Row: 0, Col: 1, Value: 1},
		{Row: 0, Col: 3, Value: 1},
		{Row: 2, Col: 0, Value: 1},
	})
	require.NoError(t, err)

	engine, err := NewSimilarityEngineFromEmbeddings(
		mat.NewDense(3, 2, []float64{
			1, 0,
			0, 1,
			1, 1,
		}),
		mat.NewDense(5, 2, []float64{
			0.9, 0.1,
			0.8, 0.2,
			0.5, 0.5,
			0.1, 0.9,
			0.95, 0,
		}),
	)
	require.NoError(t, err)

	geo := testGeoLookup()
	coords, err := NewJobCoordinates(jobTokens, jobs, geo)
	require.NoError(t, err)

	return Catalog{
		UserTokens: userTokens,
		JobTokens:  jobTokens,
		Users:      users,
		Jobs:       jobs,
		Windows:    windows,
		History:    NewApplicationHistory(apps),
		Similarity: engine,
		Distance: GeoDistanceFilter{
			Users:  users,
			Geo:    geo,
			Coords: coords,
		},
	}
}
