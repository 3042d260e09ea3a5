package domain

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SVDFactors are the outputs of a truncated singular value decomposition of the
// jobs x users interaction matrix.
type SVDFactors struct {
	SingularValues []float64
	// JobVectors holds the left singular vectors, one slice of length numJobs each.
	JobVectors [][]float64
	// UserVectors holds the right singular vectors, one slice of length numUsers each.
	UserVectors [][]float64
}

// SimilarityEngine scores users against jobs by the inner product of their embeddings.
type SimilarityEngine struct {
	users *mat.Dense
	jobs  *mat.Dense
}

// NewSimilarityEngine folds the first rank singular values into the singular vectors,
// giving user embeddings V.D and job embeddings U.D. When normalize is set every row
// is scaled to unit length.
func NewSimilarityEngine(f SVDFactors, rank int, normalize bool) (*SimilarityEngine, error) {
	if rank <= 0 || rank > len(f.SingularValues) || rank > len(f.JobVectors) || rank > len(f.UserVectors) {
		return nil, fmt.Errorf("rank %d exceeds available factors: %w", rank, ErrInvalidArgument)
	}

	d := mat.NewDiagDense(rank, f.SingularValues[:rank])

	users, err := foldFactors(f.UserVectors[:rank], d)
	if err != nil {
		return nil, fmt.Errorf("building user embeddings: %w", err)
	}
	jobs, err := foldFactors(f.JobVectors[:rank], d)
	if err != nil {
		return nil, fmt.Errorf("building job embeddings: %w", err)
	}

	if normalize {
		if err := NormalizeRows(users); err != nil {
			return nil, fmt.Errorf("normalizing user embeddings: %w", err)
		}
		if err := NormalizeRows(jobs); err != nil {
			return nil, fmt.Errorf("normalizing job embeddings: %w", err)
		}
	}

	return &SimilarityEngine{users: users, jobs: jobs}, nil
}

// NewSimilarityEngineFromEmbeddings wraps precomputed embedding matrices.
func NewSimilarityEngineFromEmbeddings(users, jobs *mat.Dense) (*SimilarityEngine, error) {
	_, ur := users.Dims()
	_, jr := jobs.Dims()
	if ur != jr {
		return nil, fmt.Errorf("user rank %d does not match job rank %d: %w", ur, jr, ErrInvalidArgument)
	}
	return &SimilarityEngine{users: users, jobs: jobs}, nil
}

func foldFactors(vectors [][]float64, d *mat.DiagDense) (*mat.Dense, error) {
	n := len(vectors[0])
	if n == 0 {
		return nil, fmt.Errorf("singular vectors are empty: %w", ErrInvalidArgument)
	}
	raw := make([]float64, 0, len(vectors)*n)
	for i, v := range vectors {
		if len(v) != n {
			return nil, fmt.Errorf("singular vector %d has length %d, want %d: %w",
				i, len(v), n, ErrInvalidArgument)
		}
		raw = append(raw, v...)
	}

	// vectors are stored one component per row, so the embeddings are their transpose.
	factors := mat.NewDense(len(vectors), n, raw)
	var out mat.Dense
	out.Mul(factors.T(), d)
	return &out, nil
}

// NormalizeRows scales each row of m to unit L2 norm in place. Zero rows are left
// untouched. It fails with ErrNaN if m holds NaNs before or after normalizing.
func NormalizeRows(m *mat.Dense) error {
	rows, _ := m.Dims()
	for i := range rows {
		if floats.HasNaN(m.RawRowView(i)) {
			return fmt.Errorf("row %d before normalization: %w", i, ErrNaN)
		}
	}

	for i := range rows {
		row := m.RawRowView(i)
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
		if floats.HasNaN(row) {
			return fmt.Errorf("row %d after normalization: %w", i, ErrNaN)
		}
	}
	return nil
}

// Rank is the embedding dimension.
func (e *SimilarityEngine) Rank() int {
	_, r := e.jobs.Dims()
	return r
}

func (e *SimilarityEngine) NumUsers() int {
	n, _ := e.users.Dims()
	return n
}

func (e *SimilarityEngine) NumJobs() int {
	n, _ := e.jobs.Dims()
	return n
}

// UserVector returns a copy of the user's embedding.
func (e *SimilarityEngine) UserVector(userIndex int) ([]float64, error) {
	if userIndex < 0 || userIndex >= e.NumUsers() {
		return nil, fmt.Errorf("user index %d: %w", userIndex, ErrNotFound)
	}
	return mat.Row(nil, userIndex, e.users), nil
}

// JobVector returns a copy of the job's embedding.
func (e *SimilarityEngine) JobVector(jobIndex int) ([]float64, error) {
	if jobIndex < 0 || jobIndex >= e.NumJobs() {
		return nil, fmt.Errorf("job index %d: %w", jobIndex, ErrNotFound)
	}
	return mat.Row(nil, jobIndex, e.jobs), nil
}

// UserJobsSimilarity returns the inner product of the user's embedding with each job's,
// aligned with jobIndices.
func (e *SimilarityEngine) UserJobsSimilarity(userIndex int, jobIndices []int) ([]float64, error) {
	vec, err := e.UserVector(userIndex)
	if err != nil {
		return nil, err
	}
	if err := e.checkJobs(jobIndices); err != nil {
		return nil, err
	}
	return scoreRows(e.jobs, vec, jobIndices), nil
}

// RankUserJobs orders jobIndices by descending similarity to the user.
func (e *SimilarityEngine) RankUserJobs(userIndex int, jobIndices []int) ([]int, []float64, error) {
	vec, err := e.UserVector(userIndex)
	if err != nil {
		return nil, nil, err
	}
	if err := e.checkJobs(jobIndices); err != nil {
		return nil, nil, err
	}
	ordered, scores := OrderSimilarity(e.jobs, vec, jobIndices)
	return ordered, scores, nil
}

// SimilarJobs ranks candidates by similarity to jobIndex, excluding jobIndex itself,
// and keeps at most limit of them.
func (e *SimilarityEngine) SimilarJobs(jobIndex int, candidates []int, limit int) ([]int, []float64, error) {
	vec, err := e.JobVector(jobIndex)
	if err != nil {
		return nil, nil, err
	}
	if err := e.checkJobs(candidates); err != nil {
		return nil, nil, err
	}

	others := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if c != jobIndex {
			others = append(others, c)
		}
	}

	ordered, scores := OrderSimilarity(e.jobs, vec, others)
	if len(ordered) > limit {
		ordered, scores = ordered[:limit], scores[:limit]
	}
	return ordered, scores, nil
}

func (e *SimilarityEngine) checkJobs(jobIndices []int) error {
	n := e.NumJobs()
	for _, idx := range jobIndices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("job index %d: %w", idx, ErrNotFound)
		}
	}
	return nil
}

func scoreRows(m *mat.Dense, vector []float64, indices []int) []float64 {
	scores := make([]float64, len(indices))
	for i, idx := range indices {
		scores[i] = floats.Dot(m.RawRowView(idx), vector)
	}
	return scores
}

// OrderSimilarity scores the given rows of matrix against vector and returns the indices
// and scores sorted by descending score. Equal scores keep their order in indices.
func OrderSimilarity(matrix *mat.Dense, vector []float64, indices []int) ([]int, []float64) {
	scores := scoreRows(matrix, vector, indices)

	order := make([]int, len(indices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	orderedIndices := make([]int, len(order))
	orderedScores := make([]float64, len(order))
	for i, o := range order {
		orderedIndices[i] = indices[o]
		orderedScores[i] = scores[o]
	}
	return orderedIndices, orderedScores
}
