package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jbeshir/job-recommender/internal/app"
	"github.com/jbeshir/job-recommender/internal/command"
	"github.com/jbeshir/job-recommender/internal/datasources/files"
	"github.com/jbeshir/job-recommender/internal/domain"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, logger, err := app.SetupLogger(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(ctx); err != nil {
		logger.ErrorContext(ctx, "building application matrix failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := app.DataConfig{
		UsersPath:      app.MustGetEnvAsString(ctx, "DATA_USERS_PATH"),
		JobsPath:       app.MustGetEnvAsString(ctx, "DATA_JOBS_PATH"),
		WindowsPath:    app.MustGetEnvAsString(ctx, "DATA_WINDOWS_PATH"),
		UserTokensPath: app.GetEnvAsStringOrDefault("DATA_USER_TOKENS_PATH", ""),
		JobTokensPath:  app.GetEnvAsStringOrDefault("DATA_JOB_TOKENS_PATH", ""),
	}
	applicationsPath := app.MustGetEnvAsString(ctx, "DATA_APPLICATIONS_PATH")
	outputDir := app.MustGetEnvAsString(ctx, "MATRIX_OUTPUT_DIR")

	format, err := files.ParseCoordinateFormat(app.GetEnvAsStringOrDefault("MATRIX_FORMAT", "mm"))
	if err != nil {
		return err
	}

	rec, err := app.LoadRecords(ctx, cfg)
	if err != nil {
		return fmt.Errorf("loading records: %w", err)
	}
	applications, err := files.ReadApplicationsFile(applicationsPath)
	if err != nil {
		return fmt.Errorf("reading applications: %w", err)
	}
	windowTokens, err := rec.WindowTokens()
	if err != nil {
		return err
	}

	buildCmd := command.NewBuildCooccurrenceMatrices(rec.UserTokens, rec.JobTokens, windowTokens)
	matrices, err := buildCmd.Execute(ctx, command.BuildCooccurrenceMatricesRequest{
		Users:        rec.UserList(),
		Jobs:         rec.JobList(),
		Applications: applications,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	outputs := []struct {
		name string
		m    domain.SparseMatrix
	}{
		{name: "user_job.mtx", m: matrices.Applications},
		{name: "user_window.mtx", m: matrices.UserWindows},
		{name: "job_window.mtx", m: matrices.JobWindows},
	}
	for _, o := range outputs {
		if err := files.WriteSparseMatrixFile(filepath.Join(outputDir, o.name), o.m, format); err != nil {
			return fmt.Errorf("writing %s: %w", o.name, err)
		}
	}

	tokenFiles := []struct {
		name string
		idx  domain.TokenIndex
	}{
		{name: "user_tokens.txt", idx: rec.UserTokens},
		{name: "job_tokens.txt", idx: rec.JobTokens},
		{name: "window_tokens.txt", idx: windowTokens},
	}
	for _, f := range tokenFiles {
		if err := files.WriteTokenIndexFile(filepath.Join(outputDir, f.name), f.idx); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
	}

	domain.LoggerFromContext(ctx).InfoContext(ctx, "wrote co-occurrence matrices",
		"dir", outputDir, "applications", matrices.Applications.NNZ())
	return nil
}
