package domain

import "fmt"

// Catalog bundles the immutable, preloaded structures the recommender and feature
// builder read. It is safe for concurrent use.
type Catalog struct {
	UserTokens TokenIndex
	JobTokens  TokenIndex
	Users      Users
	Jobs       Jobs
	Windows    ValidityWindowIndex
	History    ApplicationHistory
	Similarity *SimilarityEngine
	Distance   GeoDistanceFilter
}

// CandidateSet is a user's window-eligible jobs split by application history.
type CandidateSet struct {
	User       User
	NotApplied []int
	Applied    []int
}

// User returns the record of the user at userIndex.
func (c Catalog) User(userIndex int) (User, error) {
	token, ok := c.UserTokens.Token(userIndex)
	if !ok {
		return User{}, fmt.Errorf("user index %d: %w", userIndex, ErrNotFound)
	}
	return c.Users.Get(token)
}

// Candidates returns the jobs eligible in the user's window, minus those they applied to.
func (c Catalog) Candidates(userIndex int) (CandidateSet, error) {
	user, err := c.User(userIndex)
	if err != nil {
		return CandidateSet{}, err
	}

	windowJobs, err := c.Windows.Jobs(user.WindowID)
	if err != nil {
		return CandidateSet{}, fmt.Errorf("listing window jobs for user %d: %w", user.Token, err)
	}

	notApplied, applied := c.History.FilterWithApplied(userIndex, windowJobs)
	return CandidateSet{User: user, NotApplied: notApplied, Applied: applied}, nil
}

// SimilarJobs ranks the jobs eligible in the given job's window by similarity to it,
// excluding the job itself, and returns at most limit job tokens with their scores.
func (c Catalog) SimilarJobs(jobToken, limit int) ([]int, []float64, error) {
	if limit <= 0 {
		return nil, nil, fmt.Errorf("similar job count %d: %w", limit, ErrInvalidArgument)
	}

	jobIndex, err := c.JobTokens.Lookup(jobToken)
	if err != nil {
		return nil, nil, err
	}
	job, err := c.Jobs.Get(jobToken)
	if err != nil {
		return nil, nil, err
	}

	windowJobs, err := c.Windows.Jobs(job.WindowID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing window jobs for job %d: %w", jobToken, err)
	}

	ranked, scores, err := c.Similarity.SimilarJobs(jobIndex, windowJobs, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("ranking similar jobs: %w", err)
	}

	tokens := make([]int, len(ranked))
	for i, idx := range ranked {
		tokens[i], _ = c.JobTokens.Token(idx)
	}
	return tokens, scores, nil
}
