// Package mocks holds testify mocks of the datasource interfaces.
package mocks

import (
	"context"

	"github.com/jbeshir/job-recommender/internal/datasources"
	"github.com/stretchr/testify/mock"
)

// TestingT is satisfied by *testing.T.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

var (
	_ datasources.PrecomputedRecommendationStore = (*MockPrecomputedRecommendationStore)(nil)
	_ datasources.SimilarJobLister               = (*MockSimilarJobLister)(nil)
	_ datasources.JobVectorLister                = (*MockJobVectorLister)(nil)
	_ datasources.JobVectorUpserter              = (*MockJobVectorUpserter)(nil)
)

type MockPrecomputedRecommendationStore struct {
	mock.Mock
}

// NewMockPrecomputedRecommendationStore returns a mock that asserts its expectations
// when the test ends.
func NewMockPrecomputedRecommendationStore(t TestingT) *MockPrecomputedRecommendationStore {
	m := &MockPrecomputedRecommendationStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPrecomputedRecommendationStore) DeleteUserPrecomputedRecommendations(
	ctx context.Context,
	userToken int,
) error {
	return m.Called(ctx, userToken).Error(0)
}

func (m *MockPrecomputedRecommendationStore) UpsertPrecomputedRecommendation(
	ctx context.Context,
	userToken int,
	rec datasources.PrecomputedRecommendation,
) error {
	return m.Called(ctx, userToken, rec).Error(0)
}

func (m *MockPrecomputedRecommendationStore) GetPrecomputedRecommendations(
	ctx context.Context,
	userToken int,
	limit int,
) ([]datasources.PrecomputedRecommendation, error) {
	args := m.Called(ctx, userToken, limit)
	recs, _ := args.Get(0).([]datasources.PrecomputedRecommendation)
	return recs, args.Error(1)
}

type MockSimilarJobLister struct {
	mock.Mock
}

func NewMockSimilarJobLister(t TestingT) *MockSimilarJobLister {
	m := &MockSimilarJobLister{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSimilarJobLister) ListSimilarJobs(
	ctx context.Context,
	jobToken int,
	limit int,
) ([]datasources.SimilarJob, error) {
	args := m.Called(ctx, jobToken, limit)
	jobs, _ := args.Get(0).([]datasources.SimilarJob)
	return jobs, args.Error(1)
}

type MockJobVectorLister struct {
	mock.Mock
}

func NewMockJobVectorLister(t TestingT) *MockJobVectorLister {
	m := &MockJobVectorLister{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockJobVectorLister) ListJobVectors(ctx context.Context) ([]datasources.JobVector, error) {
	args := m.Called(ctx)
	vectors, _ := args.Get(0).([]datasources.JobVector)
	return vectors, args.Error(1)
}

type MockJobVectorUpserter struct {
	mock.Mock
}

func NewMockJobVectorUpserter(t TestingT) *MockJobVectorUpserter {
	m := &MockJobVectorUpserter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockJobVectorUpserter) UpsertJobVectors(ctx context.Context, vectors []datasources.JobVector) error {
	return m.Called(ctx, vectors).Error(0)
}
