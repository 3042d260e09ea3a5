package domain

import "github.com/james-bowman/sparse"

// CooccurrenceBuilder counts (row, column) pairs extracted from source records into a
// sparse matrix. Row and column keys are natural tokens resolved through the indices;
// records whose keys do not resolve are skipped and counted.
type CooccurrenceBuilder[S any] struct {
	rows, cols     TokenIndex
	rowKey, colKey func(S) int
	// counts is nil when either index is empty, since no record can then resolve.
	counts         *sparse.DOK
	skipped        int
}

func NewCooccurrenceBuilder[S any](rows, cols TokenIndex, rowKey, colKey func(S) int) *CooccurrenceBuilder[S] {
	b := &CooccurrenceBuilder[S]{
		rows:   rows,
		cols:   cols,
		rowKey: rowKey,
		colKey: colKey,
	}
	if rows.Len() > 0 && cols.Len() > 0 {
		b.counts = sparse.NewDOK(rows.Len(), cols.Len())
	}
	return b
}

// Add counts one record and reports whether both of its keys resolved.
func (b *CooccurrenceBuilder[S]) Add(source S) bool {
	r, ok := b.rows.Index(b.rowKey(source))
	if !ok {
		b.skipped++
		return false
	}
	c, ok := b.cols.Index(b.colKey(source))
	if !ok {
		b.skipped++
		return false
	}
	b.counts.Set(r, c, b.counts.At(r, c)+1)
	return true
}

func (b *CooccurrenceBuilder[S]) AddAll(sources []S) {
	for _, s := range sources {
		b.Add(s)
	}
}

// Skipped is the number of records whose keys did not resolve.
func (b *CooccurrenceBuilder[S]) Skipped() int {
	return b.skipped
}

// Build returns the counts as a rows.Len() x cols.Len() matrix.
func (b *CooccurrenceBuilder[S]) Build() (SparseMatrix, error) {
	if b.counts == nil {
		return NewSparseMatrix(b.rows.Len(), b.cols.Len(), nil)
	}
	return sparseFromNonZero(b.rows.Len(), b.cols.Len(), b.counts.ToCSR())
}

// Cooccurrence builders used by the batch tools.

// NewApplicationMatrixBuilder counts applications per (user, job).
func NewApplicationMatrixBuilder(users, jobs TokenIndex) *CooccurrenceBuilder[Application] {
	return NewCooccurrenceBuilder(users, jobs,
		func(a Application) int { return a.UserToken },
		func(a Application) int { return a.JobToken },
	)
}

// NewJobWindowMatrixBuilder marks which window each job was posted in.
func NewJobWindowMatrixBuilder(jobs, windows TokenIndex) *CooccurrenceBuilder[Job] {
	return NewCooccurrenceBuilder(jobs, windows,
		func(j Job) int { return j.Token },
		func(j Job) int { return j.WindowID },
	)
}

// NewUserWindowMatrixBuilder marks which window each user belongs to.
func NewUserWindowMatrixBuilder(users, windows TokenIndex) *CooccurrenceBuilder[User] {
	return NewCooccurrenceBuilder(users, windows,
		func(u User) int { return u.Token },
		func(u User) int { return u.WindowID },
	)
}
