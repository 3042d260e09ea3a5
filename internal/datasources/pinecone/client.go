package pinecone

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jbeshir/job-recommender/internal/datasources"
	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ datasources.SimilarityRepository = (*Client)(nil)

const (
	namespace       = "jobs"
	upsertBatchSize = 100
	maxQueryLimit   = 10000
)

type Client struct {
	pinecone *pinecone.Client
	index    *pinecone.Index
}

func NewClient(
	ctx context.Context,
	apiKey string,
	indexName string,
) (*Client, error) {
	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey:     apiKey,
		Headers:    nil,
		Host:       "",
		RestClient: nil,
		SourceTag:  "",
	})
	if err != nil {
		return nil, fmt.Errorf("creating pinecone client: %w", err)
	}

	idx, err := pc.DescribeIndex(ctx, indexName)
	if err != nil {
		return nil, fmt.Errorf("retrieving pinecone index metadata for [%s]: %w", indexName, err)
	}

	return &Client{
		pinecone: pc,
		index:    idx,
	}, nil
}

func (c *Client) connect() (*pinecone.IndexConnection, error) {
	idxConn, err := c.pinecone.Index(pinecone.NewIndexConnParams{
		Host:      c.index.Host,
		Namespace: namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("creating pinecone index connection: %w", err)
	}
	return idxConn, nil
}

// UpsertJobVectors writes job embeddings in batches, tagging each with its window so
// similarity queries stay within it.
func (c *Client) UpsertJobVectors(ctx context.Context, vectors []datasources.JobVector) error {
	if len(vectors) == 0 {
		return nil
	}

	idxConn, err := c.connect()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := idxConn.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	for start := 0; start < len(vectors); start += upsertBatchSize {
		batch := vectors[start:min(start+upsertBatchSize, len(vectors))]

		pcVectors := make([]*pinecone.Vector, 0, len(batch))
		for _, v := range batch {
			metadata, err := structpb.NewStruct(map[string]any{
				"job_token": float64(v.JobToken),
				"window_id": float64(v.WindowID),
			})
			if err != nil {
				return fmt.Errorf("creating metadata for job [%d]: %w", v.JobToken, err)
			}
			pcVectors = append(pcVectors, &pinecone.Vector{
				Id:       vectorID(v.JobToken),
				Values:   v.Values,
				Metadata: metadata,
			})
		}

		if _, err := idxConn.UpsertVectors(ctx, pcVectors); err != nil {
			return fmt.Errorf("upserting vectors %d to %d: %w", start, start+len(batch), err)
		}
	}
	return nil
}

// ListSimilarJobs queries the index with the job's own vector, restricted to its window.
func (c *Client) ListSimilarJobs(ctx context.Context, jobToken int, limit int) ([]datasources.SimilarJob, error) {
	if limit > maxQueryLimit {
		return nil, fmt.Errorf("limit value too high [%d]", limit)
	}
	if limit <= 0 {
		return nil, nil
	}

	idxConn, err := c.connect()
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := idxConn.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	id := vectorID(jobToken)
	resp, err := idxConn.FetchVectors(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("fetching vector for job [%d]: %w", jobToken, err)
	}
	base, ok := resp.Vectors[id]
	if !ok || base == nil {
		return nil, nil
	}

	filter, err := windowFilter(base, jobToken)
	if err != nil {
		return nil, err
	}

	queryResp, err := idxConn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          base.Values,
		TopK:            uint32(limit), //nolint:gosec // bounded by maxQueryLimit
		MetadataFilter:  filter,
		IncludeValues:   false,
		IncludeMetadata: false,
		SparseValues:    nil,
	})
	if err != nil {
		return nil, fmt.Errorf("querying for similar vectors: %w", err)
	}

	return similarJobsFromMatches(queryResp.Matches)
}

func windowFilter(base *pinecone.Vector, jobToken int) (*pinecone.MetadataFilter, error) {
	metadataMap := map[string]any{
		"job_token": map[string]any{
			"$ne": float64(jobToken),
		},
	}
	if base.Metadata != nil {
		if window, ok := base.Metadata.GetFields()["window_id"]; ok {
			metadataMap["window_id"] = map[string]any{"$eq": window.GetNumberValue()}
		}
	}

	filter, err := structpb.NewStruct(metadataMap)
	if err != nil {
		return nil, fmt.Errorf("creating metadata filter map: %w", err)
	}
	return filter, nil
}

func similarJobsFromMatches(matches []*pinecone.ScoredVector) ([]datasources.SimilarJob, error) {
	results := make([]datasources.SimilarJob, 0, len(matches))
	for _, scoredVector := range matches {
		token, err := jobTokenFromVectorID(scoredVector.Vector.Id)
		if err != nil {
			return nil, err
		}
		results = append(results, datasources.SimilarJob{
			JobToken: token,
			Score:    float64(scoredVector.Score),
		})
	}
	return results, nil
}

func vectorID(jobToken int) string {
	return "job_" + strconv.Itoa(jobToken)
}

func jobTokenFromVectorID(id string) (int, error) {
	const prefix = "job_"
	if len(id) <= len(prefix) || id[:len(prefix)] != prefix {
		return 0, fmt.Errorf("unexpected pinecone vector ID format [%s]", id)
	}
	token, err := strconv.Atoi(id[len(prefix):])
	if err != nil {
		return 0, fmt.Errorf("unexpected pinecone vector ID format [%s]: %w", id, err)
	}
	return token, nil
}
