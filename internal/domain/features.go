package domain

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Feature columns, in matrix order. Similarity and distance vary per job; the rest are
// per-user constants repeated on every row.
const (
	FeatureSimilarity = iota
	FeatureDistance
	FeatureMaxDistance
	FeatureMinDistance
	FeatureMedianDistance
	FeatureStdDistance
	FeatureEmployed
	FeatureAppliedCount

	NumFeatures
)

// Labels used in training sets.
const (
	LabelApplied    = 1.0
	LabelNotApplied = -1.0
)

// FeatureSet is a feature matrix with one row per job in Jobs. Labels is set only for
// training sets.
type FeatureSet struct {
	Features *mat.Dense
	Jobs     []int
	Labels   []float64
}

// FeatureBuilder assembles per-candidate feature matrices for a user.
type FeatureBuilder struct {
	Catalog Catalog
	// Rand drives negative sampling. Seed it for reproducible training sets.
	Rand *rand.Rand
}

// Build returns features for every window-eligible job the user has not applied to.
func (b FeatureBuilder) Build(userIndex int) (FeatureSet, error) {
	cands, err := b.Catalog.Candidates(userIndex)
	if err != nil {
		return FeatureSet{}, err
	}
	if len(cands.NotApplied) == 0 {
		return FeatureSet{}, fmt.Errorf("user %d has no candidate jobs: %w", cands.User.Token, ErrInsufficientData)
	}

	features, err := b.assemble(userIndex, cands, cands.NotApplied)
	if err != nil {
		return FeatureSet{}, err
	}
	return FeatureSet{Features: features, Jobs: cands.NotApplied}, nil
}

// BuildTraining returns a balanced training set: every applied job labelled
// LabelApplied and as many uniformly sampled non-applied jobs labelled LabelNotApplied.
func (b FeatureBuilder) BuildTraining(userIndex int) (FeatureSet, error) {
	cands, err := b.Catalog.Candidates(userIndex)
	if err != nil {
		return FeatureSet{}, err
	}
	if len(cands.Applied) == 0 {
		return FeatureSet{}, fmt.Errorf("no training data for user %d: %w", cands.User.Token, ErrInsufficientData)
	}

	negatives := b.sample(cands.NotApplied, len(cands.Applied))

	jobs := make([]int, 0, len(cands.Applied)+len(negatives))
	jobs = append(jobs, cands.Applied...)
	jobs = append(jobs, negatives...)

	labels := make([]float64, len(jobs))
	for i := range labels {
		if i < len(cands.Applied) {
			labels[i] = LabelApplied
		} else {
			labels[i] = LabelNotApplied
		}
	}

	features, err := b.assemble(userIndex, cands, jobs)
	if err != nil {
		return FeatureSet{}, err
	}
	return FeatureSet{Features: features, Jobs: jobs, Labels: labels}, nil
}

func (b FeatureBuilder) sample(from []int, n int) []int {
	if n >= len(from) {
		return slices.Clone(from)
	}
	rng := b.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // sampling, not security
	}
	perm := rng.Perm(len(from))[:n]
	out := make([]int, n)
	for i, p := range perm {
		out[i] = from[p]
	}
	return out
}

func (b FeatureBuilder) assemble(userIndex int, cands CandidateSet, jobs []int) (*mat.Dense, error) {
	sims, err := b.Catalog.Similarity.UserJobsSimilarity(userIndex, jobs)
	if err != nil {
		return nil, fmt.Errorf("scoring candidate similarity: %w", err)
	}

	res, err := b.Catalog.Distance.Filter(cands.User.Token, jobs, DistanceQuery{
		ReturnDistances: true,
		ReturnAll:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("computing candidate distances: %w", err)
	}
	if len(res.Distances) == 0 {
		return nil, fmt.Errorf("location of user %d unresolved: %w", cands.User.Token, ErrNotFound)
	}
	if len(sims) != len(jobs) || len(res.Distances) != len(jobs) {
		return nil, fmt.Errorf("got %d similarities and %d distances for %d jobs: %w",
			len(sims), len(res.Distances), len(jobs), ErrInvalidArgument)
	}

	stats := summarizeDistances(res.Distances)
	employed := cands.User.EmploymentFlag()
	appliedCount := float64(max(len(cands.Applied)-1, 0))

	m := mat.NewDense(len(jobs), NumFeatures, nil)
	for i := range jobs {
		m.SetRow(i, []float64{
			sims[i],
			res.Distances[i],
			stats.max,
			stats.min,
			stats.median,
			stats.std,
			employed,
			appliedCount,
		})
	}
	return m, nil
}

type distanceStats struct {
	max, min, median, std float64
}

// summarizeDistances includes InvalidDistance entries like any other value.
func summarizeDistances(d []float64) distanceStats {
	sorted := slices.Clone(d)
	slices.Sort(sorted)

	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return distanceStats{
		max:    floats.Max(d),
		min:    floats.Min(d),
		median: median,
		std:    stat.PopStdDev(d, nil),
	}
}
