package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Candidates(t *testing.T) {
	c := testCatalog(t)

	cands, err := c.Candidates(0)
	require.NoError(t, err)
	assert.Equal(t, 100, cands.User.Token)
	assert.Equal(t, []int{0, 2, 4}, cands.NotApplied)
	// applied jobs are listed whether or not they are still open.
	assert.Equal(t, []int{1, 3}, cands.Applied)

	_, err = c.Candidates(7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_SimilarJobs(t *testing.T) {
	c := testCatalog(t)

	cases := []struct {
		name       string
		job        int
		limit      int
		wantTokens []int
		wantScores []float64
		wantErr    error
	}{
		{
			name:       "ranked_within_window",
			job:        10,
			limit:      5,
			wantTokens: []int{14, 11, 12},
			wantScores: []float64{0.855, 0.74, 0.5},
		},
		{
			name:       "limited",
			job:        10,
			limit:      2,
			wantTokens: []int{14, 11},
			wantScores: []float64{0.855, 0.74},
		},
		{
			name:    "unknown_job",
			job:     99,
			limit:   2,
			wantErr: ErrNotFound,
		},
		{
			name:    "non_positive_limit",
			job:     10,
			limit:   0,
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, scores, err := c.SimilarJobs(tc.job, tc.limit)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTokens, tokens)
			assert.InDeltaSlice(t, tc.wantScores, scores, 1e-12)
		})
	}
}
