package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"

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
		logger.ErrorContext(ctx, "scoring model training failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	dataConfig := app.DataConfigFromEnv(ctx)
	if err := dataConfig.Validate(); err != nil {
		return err
	}

	outputPath := app.MustGetEnvAsString(ctx, "SCORING_MODEL_OUTPUT_PATH")
	testFraction, err := strconv.ParseFloat(app.GetEnvAsStringOrDefault("TRAIN_TEST_FRACTION", "0.2"), 64)
	if err != nil {
		return fmt.Errorf("parsing TRAIN_TEST_FRACTION: %w", err)
	}
	userLimit, err := strconv.Atoi(app.GetEnvAsStringOrDefault("TRAIN_USER_LIMIT", "0"))
	if err != nil {
		return fmt.Errorf("parsing TRAIN_USER_LIMIT: %w", err)
	}
	seed, err := strconv.ParseUint(app.GetEnvAsStringOrDefault("TRAIN_SEED", "0"), 10, 64)
	if err != nil {
		return fmt.Errorf("parsing TRAIN_SEED: %w", err)
	}

	catalog, err := app.LoadCatalog(ctx, dataConfig)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	//nolint:gosec // weak random is fine for negative sampling
	rng := rand.New(rand.NewPCG(seed, seed))
	model := domain.NewScoringModel(domain.DefaultScoringModelConfig())
	trainCmd := command.NewTrainScoringModel(command.NewBuildTrainingSet(catalog, rng), model)

	result, err := trainCmd.Execute(ctx, command.TrainScoringModelRequest{
		TestFraction: testFraction,
		PositiveOnly: app.GetEnvAsStringOrDefault("TRAIN_EVALUATE_POSITIVE_ONLY", "false") == "true",
		UserLimit:    userLimit,
	})
	if err != nil {
		return err
	}

	snap, err := model.Snapshot()
	if err != nil {
		return err
	}
	if err := files.WriteScoringModelSnapshotFile(outputPath, snap); err != nil {
		return fmt.Errorf("writing scoring model: %w", err)
	}

	domain.LoggerFromContext(ctx).InfoContext(ctx, "wrote scoring model",
		"path", outputPath, "train_rows", result.TrainRows,
		"test_rows", result.TestRows, "accuracy", result.Accuracy)
	return nil
}
