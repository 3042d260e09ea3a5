package command

import (
	"context"
	"fmt"

	"github.com/jbeshir/job-recommender/internal/domain"
)

// BuildCooccurrenceMatricesRequest carries the raw records to count.
type BuildCooccurrenceMatricesRequest struct {
	Users        []domain.User
	Jobs         []domain.Job
	Applications []domain.Application
}

// CooccurrenceMatrices are the user-job, user-window and job-window count matrices.
type CooccurrenceMatrices struct {
	Applications domain.SparseMatrix
	UserWindows  domain.SparseMatrix
	JobWindows   domain.SparseMatrix
}

// BuildCooccurrenceMatrices counts records into sparse matrices over fixed token indices.
// Records with tokens outside the indices are skipped and logged.
type BuildCooccurrenceMatrices struct {
	UserTokens   domain.TokenIndex
	JobTokens    domain.TokenIndex
	WindowTokens domain.TokenIndex
}

func NewBuildCooccurrenceMatrices(userTokens, jobTokens, windowTokens domain.TokenIndex) *BuildCooccurrenceMatrices {
	return &BuildCooccurrenceMatrices{
		UserTokens:   userTokens,
		JobTokens:    jobTokens,
		WindowTokens: windowTokens,
	}
}

func (c *BuildCooccurrenceMatrices) Execute(
	ctx context.Context, req BuildCooccurrenceMatricesRequest,
) (CooccurrenceMatrices, error) {
	logger := domain.LoggerFromContext(ctx)
	var out CooccurrenceMatrices

	apps := domain.NewApplicationMatrixBuilder(c.UserTokens, c.JobTokens)
	apps.AddAll(req.Applications)
	m, err := apps.Build()
	if err != nil {
		return CooccurrenceMatrices{}, fmt.Errorf("building application matrix: %w", err)
	}
	out.Applications = m
	if apps.Skipped() > 0 {
		logger.WarnContext(ctx, "skipped applications with unknown tokens", "count", apps.Skipped())
	}

	users := domain.NewUserWindowMatrixBuilder(c.UserTokens, c.WindowTokens)
	users.AddAll(req.Users)
	if out.UserWindows, err = users.Build(); err != nil {
		return CooccurrenceMatrices{}, fmt.Errorf("building user window matrix: %w", err)
	}
	if users.Skipped() > 0 {
		logger.WarnContext(ctx, "skipped users with unknown tokens", "count", users.Skipped())
	}

	jobs := domain.NewJobWindowMatrixBuilder(c.JobTokens, c.WindowTokens)
	jobs.AddAll(req.Jobs)
	if out.JobWindows, err = jobs.Build(); err != nil {
		return CooccurrenceMatrices{}, fmt.Errorf("building job window matrix: %w", err)
	}
	if jobs.Skipped() > 0 {
		logger.WarnContext(ctx, "skipped jobs with unknown tokens", "count", jobs.Skipped())
	}

	logger.InfoContext(ctx, "built cooccurrence matrices",
		"applications", out.Applications.NNZ(),
		"user_windows", out.UserWindows.NNZ(),
		"job_windows", out.JobWindows.NNZ())
	return out, nil
}
