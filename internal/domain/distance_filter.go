package domain

import (
	"fmt"
	"slices"
)

// InvalidDistance marks a candidate whose distance cannot be assessed.
const InvalidDistance = -1.0

// JobCoordinates is the per-job coordinate table, addressed by job index. Jobs whose
// location could not be resolved hold the sentinel coordinate.
type JobCoordinates struct {
	coords     []Coordinate
	unresolved int
}

// NewJobCoordinates geocodes every job in index order. Unresolvable jobs are counted
// rather than failing the build.
func NewJobCoordinates(jobTokens TokenIndex, jobs Jobs, geo GeoLookup) (JobCoordinates, error) {
	t := JobCoordinates{coords: make([]Coordinate, jobTokens.Len())}
	for idx := range jobTokens.Len() {
		token, _ := jobTokens.Token(idx)
		job, err := jobs.Get(token)
		if err != nil {
			return JobCoordinates{}, fmt.Errorf("building job coordinates: %w", err)
		}
		if c, ok := geo.Resolve(job.Location); ok {
			t.coords[idx] = c
		} else {
			t.unresolved++
		}
	}
	return t, nil
}

// At returns the coordinate of job idx, the sentinel when out of range.
func (t JobCoordinates) At(idx int) Coordinate {
	if idx < 0 || idx >= len(t.coords) {
		return Coordinate{}
	}
	return t.coords[idx]
}

// Unresolved is the number of jobs stored with the sentinel coordinate.
func (t JobCoordinates) Unresolved() int {
	return t.unresolved
}

// DistanceQuery selects what GeoDistanceFilter.Filter returns. At least one of
// MaxDistance and ReturnDistances must be set.
type DistanceQuery struct {
	MaxDistance     *float64
	ReturnDistances bool
	// ReturnAll keeps every input job, sentinel distances included, so the result stays
	// aligned with the input. Only meaningful with ReturnDistances.
	ReturnAll bool
}

// WithinDistance is the query keeping jobs at most maxDistance miles away.
func WithinDistance(maxDistance float64) DistanceQuery {
	return DistanceQuery{MaxDistance: &maxDistance}
}

type DistanceResult struct {
	Jobs      []int
	Distances []float64
}

// GeoDistanceFilter restricts candidate jobs by their distance to a user.
type GeoDistanceFilter struct {
	Users  Users
	Geo    GeoLookup
	Coords JobCoordinates
}

// UserCoordinate resolves a user's location by postal code, then (city, state).
func (f GeoDistanceFilter) UserCoordinate(userToken int) (Coordinate, bool, error) {
	user, err := f.Users.Get(userToken)
	if err != nil {
		return Coordinate{}, false, err
	}
	c, ok := f.Geo.Resolve(user.Location)
	return c, ok, nil
}

// Distances returns the distance in miles from c to each job, InvalidDistance where
// either side is the sentinel.
func (f GeoDistanceFilter) Distances(c Coordinate, jobIndices []int) []float64 {
	dists := make([]float64, len(jobIndices))
	for i, idx := range jobIndices {
		jc := f.Coords.At(idx)
		if c.IsSentinel() || jc.IsSentinel() {
			dists[i] = InvalidDistance
			continue
		}
		dists[i] = SphericalDistance(c, jc)
	}
	return dists
}

// Filter applies q to jobIndices for the user. A user whose location cannot be
// resolved yields an empty result.
func (f GeoDistanceFilter) Filter(userToken int, jobIndices []int, q DistanceQuery) (DistanceResult, error) {
	if q.MaxDistance == nil && !q.ReturnDistances {
		return DistanceResult{}, fmt.Errorf("distance filter needs a max distance or raw distances: %w",
			ErrInvalidArgument)
	}

	c, ok, err := f.UserCoordinate(userToken)
	if err != nil {
		return DistanceResult{}, err
	}
	if !ok {
		return DistanceResult{}, nil
	}

	dists := f.Distances(c, jobIndices)

	switch {
	case q.ReturnDistances && q.ReturnAll:
		return DistanceResult{Jobs: slices.Clone(jobIndices), Distances: dists}, nil
	case q.ReturnDistances:
		var res DistanceResult
		for i, d := range dists {
			if d >= 0 {
				res.Jobs = append(res.Jobs, jobIndices[i])
				res.Distances = append(res.Distances, d)
			}
		}
		return res, nil
	default:
		var res DistanceResult
		for i, d := range dists {
			if d >= 0 && d <= *q.MaxDistance {
				res.Jobs = append(res.Jobs, jobIndices[i])
			}
		}
		return res, nil
	}
}

// NewJobCoordinatesFromTable wraps an already geocoded table.
func NewJobCoordinatesFromTable(coords []Coordinate) JobCoordinates {
	t := JobCoordinates{coords: slices.Clone(coords)}
	for _, c := range coords {
		if c.IsSentinel() {
			t.unresolved++
		}
	}
	return t
}
