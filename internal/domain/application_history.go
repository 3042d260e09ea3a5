package domain

import "slices"

// ApplicationHistory records which user applied to which job, as a users x jobs
// sparse matrix. Nonzero cells are application counts and are treated as booleans.
type ApplicationHistory struct {
	matrix SparseMatrix
}

func NewApplicationHistory(matrix SparseMatrix) ApplicationHistory {
	return ApplicationHistory{matrix: matrix}
}

// Matrix returns the underlying sparse matrix.
func (h ApplicationHistory) Matrix() SparseMatrix {
	return h.matrix
}

// Applied returns the ascending job indices the user applied to.
func (h ApplicationHistory) Applied(userIndex int) []int {
	return h.matrix.RowIndices(userIndex)
}

// Filter removes the user's applied jobs from candidates. The result is ascending
// and deduplicated.
func (h ApplicationHistory) Filter(userIndex int, candidates []int) []int {
	filtered, _ := h.FilterWithApplied(userIndex, candidates)
	return filtered
}

// FilterWithApplied is Filter that also returns every job the user applied to.
func (h ApplicationHistory) FilterWithApplied(userIndex int, candidates []int) (filtered, applied []int) {
	applied = h.Applied(userIndex)

	sorted := slices.Clone(candidates)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	filtered = make([]int, 0, len(sorted))
	for _, job := range sorted {
		if _, found := slices.BinarySearch(applied, job); !found {
			filtered = append(filtered, job)
		}
	}
	return filtered, applied
}
