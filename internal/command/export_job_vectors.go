package command

import (
	"context"
	"fmt"

	"github.com/jbeshir/job-recommender/internal/datasources"
	"github.com/jbeshir/job-recommender/internal/domain"
)

// ExportJobVectors copies the in-memory job embeddings to a vector index.
type ExportJobVectors struct {
	Source      datasources.JobVectorLister
	Destination datasources.JobVectorUpserter
}

func NewExportJobVectors(source datasources.JobVectorLister, destination datasources.JobVectorUpserter) *ExportJobVectors {
	return &ExportJobVectors{Source: source, Destination: destination}
}

// Execute returns the number of vectors written.
func (c *ExportJobVectors) Execute(ctx context.Context, _ Empty) (int, error) {
	vectors, err := c.Source.ListJobVectors(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing job vectors: %w", err)
	}
	if len(vectors) == 0 {
		domain.LoggerFromContext(ctx).InfoContext(ctx, "no job vectors to export")
		return 0, nil
	}

	if err := c.Destination.UpsertJobVectors(ctx, vectors); err != nil {
		return 0, fmt.Errorf("upserting job vectors: %w", err)
	}

	domain.LoggerFromContext(ctx).InfoContext(ctx, "exported job vectors", "count", len(vectors))
	return len(vectors), nil
}
