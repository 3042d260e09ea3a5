package files

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSVDFactors(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "stitched_occurs.mtx")
	svPath := prefix + ".singular_values"

	require.NoError(t, writeFile(svPath, func(w io.Writer) error {
		return WriteVector(w, []float64{3, 2, 1})
	}))
	for i, vecs := range [][2][]float64{
		{{1, 0, 0}, {0.6, 0.8}},
		{{0, 1, 0}, {0.8, -0.6}},
	} {
		require.NoError(t, writeFile(fmt.Sprintf("%s.U.%d", prefix, i), func(w io.Writer) error {
			return WriteVector(w, vecs[0])
		}))
		require.NoError(t, writeFile(fmt.Sprintf("%s.V.%d", prefix, i), func(w io.Writer) error {
			return WriteVector(w, vecs[1])
		}))
	}

	f, err := ReadSVDFactors(prefix, svPath, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2}, f.SingularValues)
	assert.Equal(t, [][]float64{{1, 0, 0}, {0, 1, 0}}, f.JobVectors)
	assert.Equal(t, [][]float64{{0.6, 0.8}, {0.8, -0.6}}, f.UserVectors)

	engine, err := domain.NewSimilarityEngine(f, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 3, engine.NumJobs())
	assert.Equal(t, 2, engine.NumUsers())

	_, err = ReadSVDFactors(prefix, svPath, 4)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = ReadSVDFactors(prefix, svPath, 3)
	assert.ErrorContains(t, err, "job singular vector 2")
}
