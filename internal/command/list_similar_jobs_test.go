package command

import (
	"errors"
	"testing"

	"github.com/jbeshir/job-recommender/internal/datasources"
	"github.com/jbeshir/job-recommender/internal/datasources/embedding"
	"github.com/jbeshir/job-recommender/internal/datasources/mocks"
	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListSimilarJobs_Execute(t *testing.T) {
	catalog := testCatalog(t)

	cases := []struct {
		name       string
		similar    []datasources.SimilarJob
		listErr    error
		wantTokens []int
		wantErr    bool
	}{
		{
			name:       "skips_jobs_missing_from_catalog",
			similar:    []datasources.SimilarJob{{JobToken: 12, Score: 0.96}, {JobToken: 77, Score: 0.5}},
			wantTokens: []int{12},
		},
		{
			name:       "empty",
			wantTokens: []int{},
		},
		{
			name:    "lister_error",
			listErr: errors.New("pinecone unavailable"),
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lister := mocks.NewMockSimilarJobLister(t)
			lister.On("ListSimilarJobs", mock.Anything, 10, 5).Return(tc.similar, tc.listErr)

			jobs, err := NewListSimilarJobs(catalog.Jobs, lister).
				Execute(testContext(), ListSimilarJobsRequest{JobToken: 10, Limit: 5})
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTokens, jobTokens(jobs))
		})
	}
}

func TestListSimilarJobs_FromEmbeddings(t *testing.T) {
	catalog := testCatalog(t)
	cmd := NewListSimilarJobs(catalog.Jobs, embedding.Repository{Catalog: catalog})

	// job 10 is (1, 0); job 12 scores 0.8 and job 11 scores 0.6.
	jobs, err := cmd.Execute(testContext(), ListSimilarJobsRequest{JobToken: 10, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, []int{12, 11}, jobTokens(jobs))
	assert.InDelta(t, 0.8, jobs[0].Score, 1e-12)

	_, err = cmd.Execute(testContext(), ListSimilarJobsRequest{JobToken: 404, Limit: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = cmd.Execute(testContext(), ListSimilarJobsRequest{JobToken: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
