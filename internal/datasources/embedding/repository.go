package embedding

import (
	"context"
	"fmt"

	"github.com/jbeshir/job-recommender/internal/datasources"
	"github.com/jbeshir/job-recommender/internal/domain"
)

var (
	_ datasources.SimilarJobLister = Repository{}
	_ datasources.JobVectorLister  = Repository{}
)

// Repository serves similarity lookups from the SVD embeddings loaded into the catalog.
type Repository struct {
	Catalog domain.Catalog
}

func (r Repository) ListSimilarJobs(_ context.Context, jobToken int, limit int) ([]datasources.SimilarJob, error) {
	tokens, scores, err := r.Catalog.SimilarJobs(jobToken, limit)
	if err != nil {
		return nil, err
	}

	result := make([]datasources.SimilarJob, len(tokens))
	for i, token := range tokens {
		result[i] = datasources.SimilarJob{JobToken: token, Score: scores[i]}
	}
	return result, nil
}

// ListJobVectors returns every job's embedding in index order.
func (r Repository) ListJobVectors(ctx context.Context) ([]datasources.JobVector, error) {
	vectors := make([]datasources.JobVector, 0, r.Catalog.JobTokens.Len())
	for idx, token := range r.Catalog.JobTokens.Tokens() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		job, err := r.Catalog.Jobs.Get(token)
		if err != nil {
			return nil, err
		}
		values, err := r.Catalog.Similarity.JobVector(idx)
		if err != nil {
			return nil, fmt.Errorf("reading embedding of job %d: %w", token, err)
		}

		v := datasources.JobVector{JobToken: token, WindowID: job.WindowID, Values: make([]float32, len(values))}
		for i, x := range values {
			v.Values[i] = float32(x)
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}
