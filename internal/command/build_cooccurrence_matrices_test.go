package command

import (
	"testing"

	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCooccurrenceMatrices_Execute(t *testing.T) {
	users, err := domain.NewTokenIndex([]int{100, 200})
	require.NoError(t, err)
	jobs, err := domain.NewTokenIndex([]int{10, 11})
	require.NoError(t, err)
	windows, err := domain.NewTokenIndex([]int{1, 2})
	require.NoError(t, err)

	cmd := NewBuildCooccurrenceMatrices(users, jobs, windows)
	out, err := cmd.Execute(testContext(), BuildCooccurrenceMatricesRequest{
		Users: []domain.User{{Token: 100, WindowID: 1}, {Token: 200, WindowID: 2}, {Token: 300, WindowID: 1}},
		Jobs:  []domain.Job{{Token: 10, WindowID: 2}, {Token: 11, WindowID: 9}},
		Applications: []domain.Application{
			{UserToken: 100, JobToken: 11},
			{UserToken: 100, JobToken: 11},
			{UserToken: 200, JobToken: 10},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, out.Applications.At(0, 1))
	assert.Equal(t, 1.0, out.Applications.At(1, 0))
	assert.Equal(t, 2, out.Applications.NNZ())

	assert.Equal(t, []domain.SparseEntry{
		{Row: 0, Col: 0, Value: 1},
		{Row: 1, Col: 1, Value: 1},
	}, out.UserWindows.Entries())

	assert.Equal(t, []domain.SparseEntry{{Row: 0, Col: 1, Value: 1}}, out.JobWindows.Entries())
}
