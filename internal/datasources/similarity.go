package datasources

import (
	"context"
)

// SimilarJob is a job returned from a nearest-neighbour search.
type SimilarJob struct {
	JobToken int
	Score    float64
}

// JobVector is a job's embedding as stored in a vector index.
type JobVector struct {
	JobToken int
	WindowID int
	Values   []float32
}

// SimilarityRepository combines all similarity-related interfaces.
type SimilarityRepository interface {
	SimilarJobLister
	JobVectorUpserter
}

// SimilarJobLister finds the jobs closest to a given job within the same window.
type SimilarJobLister interface {
	ListSimilarJobs(ctx context.Context, jobToken int, limit int) ([]SimilarJob, error)
}

// JobVectorUpserter writes job embeddings to a vector index.
type JobVectorUpserter interface {
	UpsertJobVectors(ctx context.Context, vectors []JobVector) error
}

// NullSimilarityRepository is a null implementation of SimilarityRepository.
type NullSimilarityRepository struct{}

var _ SimilarityRepository = NullSimilarityRepository{}

func (NullSimilarityRepository) ListSimilarJobs(_ context.Context, _ int, _ int) ([]SimilarJob, error) {
	return nil, nil
}

func (NullSimilarityRepository) UpsertJobVectors(_ context.Context, _ []JobVector) error {
	return nil
}

// JobVectorLister enumerates the job embeddings held in memory.
type JobVectorLister interface {
	ListJobVectors(ctx context.Context) ([]JobVector, error)
}
