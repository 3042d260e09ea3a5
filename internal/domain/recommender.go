package domain

import "fmt"

// DefaultMaxDistance is the default commute radius in miles.
const DefaultMaxDistance = 30.0

// Recommendation is a ranked list of job indices with their similarity scores.
type Recommendation struct {
	Jobs   []int
	Scores []float64
	// Fallback is set when no candidate was within range and the distance filter
	// was ignored.
	Fallback bool
}

// Recommender produces top-k job recommendations from the catalog.
type Recommender struct {
	Catalog Catalog
}

// Recommend ranks the user's window-eligible, not yet applied jobs by similarity and
// keeps those within maxDistance miles. When at least k survive, the first k are
// returned; fewer survivors are returned as they are. When none survive, the first k
// ranked candidates are returned regardless of distance.
func (r Recommender) Recommend(userIndex, k int, maxDistance float64) (Recommendation, error) {
	if k <= 0 {
		return Recommendation{}, fmt.Errorf("recommendation count %d: %w", k, ErrInvalidArgument)
	}

	cands, err := r.Catalog.Candidates(userIndex)
	if err != nil {
		return Recommendation{}, err
	}

	ranked, scores, err := r.Catalog.Similarity.RankUserJobs(userIndex, cands.NotApplied)
	if err != nil {
		return Recommendation{}, fmt.Errorf("ranking candidates: %w", err)
	}

	nearby, err := r.Catalog.Distance.Filter(cands.User.Token, ranked, WithinDistance(maxDistance))
	if err != nil {
		return Recommendation{}, fmt.Errorf("filtering candidates by distance: %w", err)
	}

	if len(nearby.Jobs) == 0 {
		n := min(k, len(ranked))
		return Recommendation{
			Jobs:     ranked[:n],
			Scores:   scores[:n],
			Fallback: len(ranked) > 0,
		}, nil
	}

	scoreOf := make(map[int]float64, len(ranked))
	for i, job := range ranked {
		scoreOf[job] = scores[i]
	}

	n := min(k, len(nearby.Jobs))
	rec := Recommendation{Jobs: nearby.Jobs[:n], Scores: make([]float64, n)}
	for i, job := range rec.Jobs {
		rec.Scores[i] = scoreOf[job]
	}
	return rec, nil
}
