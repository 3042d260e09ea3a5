package command

import (
	"errors"
	"testing"

	"github.com/jbeshir/job-recommender/internal/datasources"
	"github.com/jbeshir/job-recommender/internal/datasources/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExportJobVectors_Execute(t *testing.T) {
	vectors := []datasources.JobVector{
		{JobToken: 10, WindowID: 1, Values: []float32{1, 0}},
		{JobToken: 11, WindowID: 1, Values: []float32{0.6, 0.8}},
	}

	cases := []struct {
		name      string
		vectors   []datasources.JobVector
		listErr   error
		upsertErr error
		want      int
		wantErr   bool
	}{
		{name: "exports_all", vectors: vectors, want: 2},
		{name: "nothing_to_export", want: 0},
		{name: "list_error", listErr: errors.New("boom"), wantErr: true},
		{name: "upsert_error", vectors: vectors, upsertErr: errors.New("quota"), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			source := mocks.NewMockJobVectorLister(t)
			destination := mocks.NewMockJobVectorUpserter(t)

			source.On("ListJobVectors", mock.Anything).Return(tc.vectors, tc.listErr)
			if tc.listErr == nil && len(tc.vectors) > 0 {
				destination.On("UpsertJobVectors", mock.Anything, tc.vectors).Return(tc.upsertErr)
			}

			n, err := NewExportJobVectors(source, destination).Execute(testContext(), Empty{})
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}
