package domain

import (
	"fmt"
	"slices"
	"time"
)

// Window is the date range of one temporal window of the dataset.
type Window struct {
	ID                 int
	TrainStart         time.Time
	TrainStopTestStart time.Time
	TestStop           time.Time
}

// ValidityWindowIndex lists, per window, the jobs still open once the window's test
// period starts.
type ValidityWindowIndex struct {
	buckets map[int][]int
}

// NewValidityWindowIndex buckets every job into its window when its end date is at or
// after the window's test start. jobs must cover every token in jobTokens.
func NewValidityWindowIndex(windows []Window, jobTokens TokenIndex, jobs Jobs) (ValidityWindowIndex, error) {
	starts := make(map[int]time.Time, len(windows))
	buckets := make(map[int][]int, len(windows))
	for _, w := range windows {
		starts[w.ID] = w.TrainStopTestStart
		buckets[w.ID] = []int{}
	}

	for idx := range jobTokens.Len() {
		token, _ := jobTokens.Token(idx)
		job, err := jobs.Get(token)
		if err != nil {
			return ValidityWindowIndex{}, fmt.Errorf("building window index: %w", err)
		}

		testStart, ok := starts[job.WindowID]
		if !ok {
			return ValidityWindowIndex{}, fmt.Errorf("job %d references window %d: %w",
				token, job.WindowID, ErrNotFound)
		}
		if !job.EndDate.Before(testStart) {
			buckets[job.WindowID] = append(buckets[job.WindowID], idx)
		}
	}

	return ValidityWindowIndex{buckets: buckets}, nil
}

// Jobs returns the ascending indices of jobs eligible in the window. An unknown window
// fails with ErrNotFound; a known window may have no eligible jobs.
func (w ValidityWindowIndex) Jobs(windowID int) ([]int, error) {
	jobs, ok := w.buckets[windowID]
	if !ok {
		return nil, fmt.Errorf("window %d: %w", windowID, ErrNotFound)
	}
	return slices.Clone(jobs), nil
}
