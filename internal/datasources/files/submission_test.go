package files

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestWriteSubmission(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSubmission(&buf, []SubmissionRow{
		{UserToken: 47, JobTokens: []int{169528, 284009}},
		{UserToken: 72},
	}))
	assert.Equal(t, "UserId\tJobIds\n47\t169528 284009\n72\t\n", buf.String())
}

func TestWriteSubmissionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submission.tsv")
	require.NoError(t, WriteSubmissionFile(path, []SubmissionRow{{UserToken: 1, JobTokens: []int{2}}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "UserId\tJobIds\n1\t2\n", string(data))
}

func TestScoringModelSnapshot_FileRoundTrip(t *testing.T) {
	features := mat.NewDense(4, domain.NumFeatures, []float64{
		0.9, 2, 40, 2, 10, 12, 1, 1,
		0.8, 5, 40, 2, 10, 12, 1, 1,
		0.1, 40, 40, 2, 10, 12, 1, 1,
		0.2, 30, 40, 2, 10, 12, 1, 1,
	})
	labels := []float64{domain.LabelApplied, domain.LabelApplied, domain.LabelNotApplied, domain.LabelNotApplied}

	model := domain.NewScoringModel(domain.DefaultScoringModelConfig())
	require.NoError(t, model.Fit(features, labels))
	snap, err := model.Snapshot()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, WriteScoringModelSnapshotFile(path, snap))

	got, err := ReadScoringModelSnapshotFile(path)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestReadScoringModelSnapshotFile_Missing(t *testing.T) {
	_, err := ReadScoringModelSnapshotFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
