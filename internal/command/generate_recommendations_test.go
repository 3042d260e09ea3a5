package command

import (
	"context"
	"errors"
	"testing"

	"github.com/jbeshir/job-recommender/internal/datasources"
	"github.com/jbeshir/job-recommender/internal/datasources/mocks"
	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testGenerateRecommendationsConfig() GenerateRecommendationsConfig {
	return GenerateRecommendationsConfig{
		Limit:       2,
		MaxDistance: domain.DefaultMaxDistance,
		Concurrency: 2,
	}
}

func matchRecommendation(jobToken, position int, fallback bool) any {
	return mock.MatchedBy(func(rec datasources.PrecomputedRecommendation) bool {
		return rec.JobToken == jobToken && rec.Position == position &&
			rec.Fallback == fallback && !rec.GeneratedAt.IsZero()
	})
}

func TestGenerateRecommendations_Execute(t *testing.T) {
	store := mocks.NewMockPrecomputedRecommendationStore(t)

	store.On("DeleteUserPrecomputedRecommendations", mock.Anything, 200).Return(nil).Once()
	store.On("UpsertPrecomputedRecommendation", mock.Anything, 200, matchRecommendation(10, 0, false)).
		Return(nil).Once()
	store.On("UpsertPrecomputedRecommendation", mock.Anything, 200, matchRecommendation(11, 1, false)).
		Return(nil).Once()

	store.On("DeleteUserPrecomputedRecommendations", mock.Anything, 300).Return(nil).Once()
	store.On("UpsertPrecomputedRecommendation", mock.Anything, 300, matchRecommendation(11, 0, true)).
		Return(nil).Once()
	store.On("UpsertPrecomputedRecommendation", mock.Anything, 300, matchRecommendation(12, 1, true)).
		Return(nil).Once()

	cmd := NewGenerateRecommendations(testCatalog(t), store, testGenerateRecommendationsConfig())
	result, err := cmd.Execute(testContext(), GenerateRecommendationsRequest{Split: domain.SplitTest})
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.FailCount)
	assert.Equal(t, []UserRecommendations{
		{UserToken: 200, JobTokens: []int{10, 11}},
		{UserToken: 300, JobTokens: []int{11, 12}, Fallback: true},
	}, result.Users)
}

func TestGenerateRecommendations_UserFailureIsCounted(t *testing.T) {
	store := mocks.NewMockPrecomputedRecommendationStore(t)

	store.On("DeleteUserPrecomputedRecommendations", mock.Anything, 200).
		Return(errors.New("db error")).Once()
	store.On("DeleteUserPrecomputedRecommendations", mock.Anything, 300).Return(nil).Once()
	store.On("UpsertPrecomputedRecommendation", mock.Anything, 300, mock.Anything).Return(nil).Twice()

	cmd := NewGenerateRecommendations(testCatalog(t), store, testGenerateRecommendationsConfig())
	result, err := cmd.Execute(testContext(), GenerateRecommendationsRequest{Split: domain.SplitTest})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailCount)
	require.Len(t, result.Users, 2)
	assert.Equal(t, UserRecommendations{UserToken: 200}, result.Users[0])
	assert.Equal(t, []int{11, 12}, result.Users[1].JobTokens)
}

func TestGenerateRecommendations_TrainSplit(t *testing.T) {
	store := mocks.NewMockPrecomputedRecommendationStore(t)

	// user 100 applied to job 11. Job 12 ranks first but is out of range.
	store.On("DeleteUserPrecomputedRecommendations", mock.Anything, 100).Return(nil).Once()
	store.On("UpsertPrecomputedRecommendation", mock.Anything, 100, matchRecommendation(10, 0, false)).
		Return(nil).Once()

	cmd := NewGenerateRecommendations(testCatalog(t), store, testGenerateRecommendationsConfig())
	result, err := cmd.Execute(testContext(), GenerateRecommendationsRequest{Split: domain.SplitTrain})
	require.NoError(t, err)

	assert.Equal(t, []UserRecommendations{{UserToken: 100, JobTokens: []int{10}}}, result.Users)
}

func TestGenerateRecommendations_Errors(t *testing.T) {
	cases := []struct {
		name    string
		split   domain.Split
		config  GenerateRecommendationsConfig
		ctx     func() context.Context
		wantErr error
	}{
		{
			name:    "unknown_split",
			split:   "Validation",
			config:  testGenerateRecommendationsConfig(),
			ctx:     testContext,
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "non_positive_limit",
			split:   domain.SplitTest,
			config:  GenerateRecommendationsConfig{MaxDistance: domain.DefaultMaxDistance},
			ctx:     testContext,
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:   "cancelled",
			split:  domain.SplitTest,
			config: testGenerateRecommendationsConfig(),
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(testContext())
				cancel()
				return ctx
			},
			wantErr: context.Canceled,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := NewGenerateRecommendations(testCatalog(t), datasources.NullPrecomputedRecommendationStore{}, tc.config)
			_, err := cmd.Execute(tc.ctx(), GenerateRecommendationsRequest{Split: tc.split})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
