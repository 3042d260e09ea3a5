package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jbeshir/job-recommender/internal/app"
	"github.com/jbeshir/job-recommender/internal/command"
	"github.com/jbeshir/job-recommender/internal/datasources/embedding"
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
		logger.ErrorContext(ctx, "exporting job vectors failed", "error", err)
		os.Exit(1)
	}
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

	pineconeClient, err := app.SetupPineconeClient(ctx)
	if err != nil {
		return err
	}

	exportCmd := command.NewExportJobVectors(embedding.Repository{Catalog: catalog}, pineconeClient)
	n, err := exportCmd.Execute(ctx, command.Empty{})
	if err != nil {
		return err
	}

	domain.LoggerFromContext(ctx).InfoContext(ctx, "exported job vectors", "count", n)
	return nil
}
