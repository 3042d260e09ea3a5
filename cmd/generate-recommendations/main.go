package main

import (
	"context"
	"fmt"
	"os"

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
		logger.ErrorContext(ctx, "recommendation generation failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "recommendation generation completed successfully")
}

func run(ctx context.Context) error {
	dataConfig := app.DataConfigFromEnv(ctx)
	if err := dataConfig.Validate(); err != nil {
		return err
	}

	catalog, err := app.LoadCatalog(ctx, dataConfig)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	store, err := app.SetupPrecomputedStore(ctx)
	if err != nil {
		return fmt.Errorf("setting up precomputed recommendation store: %w", err)
	}

	split, err := domain.ParseSplit(app.GetEnvAsStringOrDefault("GENERATE_SPLIT", string(domain.SplitTest)))
	if err != nil {
		return err
	}

	generateCmd := command.NewGenerateRecommendations(catalog, store, app.DefaultGenerateRecommendationsConfig())
	result, err := generateCmd.Execute(ctx, command.GenerateRecommendationsRequest{Split: split})
	if err != nil {
		return err
	}

	// Users whose generation failed still get a row, with no jobs.
	submissionPath := app.GetEnvAsStringOrDefault("SUBMISSION_PATH", "")
	if submissionPath == "" {
		return nil
	}

	rows := make([]files.SubmissionRow, 0, len(result.Users))
	for _, u := range result.Users {
		rows = append(rows, files.SubmissionRow{UserToken: u.UserToken, JobTokens: u.JobTokens})
	}
	if err := files.WriteSubmissionFile(submissionPath, rows); err != nil {
		return fmt.Errorf("writing submission file: %w", err)
	}

	domain.LoggerFromContext(ctx).InfoContext(ctx, "wrote submission file",
		"path", submissionPath, "users", len(rows), "failed", result.FailCount)
	return nil
}
