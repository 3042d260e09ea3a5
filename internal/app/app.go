package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jbeshir/job-recommender/internal/command"
	"github.com/jbeshir/job-recommender/internal/datasources"
	"github.com/jbeshir/job-recommender/internal/datasources/embedding"
	"github.com/jbeshir/job-recommender/internal/datasources/mysql"
	"github.com/jbeshir/job-recommender/internal/datasources/pinecone"
	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/jbeshir/job-recommender/internal/transport/web/router"
	"github.com/jbeshir/job-recommender/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

// SetupLogger installs a JSON logger at LOG_LEVEL (default info) as the default and in ctx.
func SetupLogger(ctx context.Context) (context.Context, *slog.Logger, error) {
	logLevel := slog.LevelInfo
	if lvl := GetEnvAsStringOrDefault("LOG_LEVEL", ""); lvl != "" {
		if err := logLevel.UnmarshalText([]byte(lvl)); err != nil {
			return ctx, nil, fmt.Errorf("LOG_LEVEL not recognised [%s]: %w", lvl, err)
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return domain.ContextWithLogger(ctx, logger), logger, nil
}

func Setup(ctx context.Context) ([]Component, error) {
	dataConfig := DataConfigFromEnv(ctx)

	catalog, err := LoadCatalog(ctx, dataConfig)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	model, err := LoadScoringModel(ctx, dataConfig.ScoringModelPath)
	if err != nil {
		return nil, fmt.Errorf("loading scoring model: %w", err)
	}

	store, err := SetupPrecomputedStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up precomputed recommendation store: %w", err)
	}

	similarity, err := setupSimilarJobLister(ctx, catalog)
	if err != nil {
		return nil, fmt.Errorf("setting up similarity repository: %w", err)
	}

	authMiddleware, err := setupAuthMiddleware(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up auth middleware: %w", err)
	}

	recommendJobsCmd := command.NewRecommendJobs(catalog, store, DefaultRecommendJobsConfig())
	classifyUserJobsCmd := command.NewClassifyUserJobs(catalog, model)
	listSimilarJobsCmd := command.NewListSimilarJobs(catalog.Jobs, similarity)

	httpRouter, err := router.MakeRouter(
		recommendJobsCmd,
		classifyUserJobsCmd,
		listSimilarJobsCmd,
		domain.DefaultMaxDistance,
		router.FeedConfig{
			BaseURL:     MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
			AuthorName:  MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_NAME"),
			AuthorEmail: MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_EMAIL"),
			CacheMaxAge: MustGetEnvAsDuration(ctx, "RSS_FEED_CACHE_MAX_AGE"),
		},
		authMiddleware,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	return []Component{
		&server.Server{
			TLSDisabled:       MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED"),
			TLSDisabledPort:   MustGetEnvAsInt(ctx, "PORT"),
			AutocertHostnames: MustGetEnvAsStrings(ctx, "HTTP_AUTOCERT_HOSTNAMES"),
			Router:            httpRouter,
		},
	}, nil
}

// SetupPrecomputedStore selects the precomputed recommendation store by STORE_DRIVER.
func SetupPrecomputedStore(ctx context.Context) (datasources.PrecomputedRecommendationStore, error) {
	switch driver := MustGetEnvAsString(ctx, "STORE_DRIVER"); driver {
	case "null":
		return datasources.NullPrecomputedRecommendationStore{}, nil
	case "mysql":
		db, err := mysql.Connect(ctx, MustGetEnvAsString(ctx, "MYSQL_URI"))
		if err != nil {
			return nil, fmt.Errorf("connecting to MySQL: %w", err)
		}
		if err := mysql.EnsureSchema(ctx, db); err != nil {
			return nil, fmt.Errorf("creating MySQL schema: %w", err)
		}
		return mysql.New(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver [%s]", driver)
	}
}

// SetupPineconeClient connects to the Pinecone index named by PINECONE_INDEX_NAME.
func SetupPineconeClient(ctx context.Context) (*pinecone.Client, error) {
	client, err := pinecone.NewClient(
		ctx,
		MustGetEnvAsString(ctx, "PINECONE_API_KEY"),
		MustGetEnvAsString(ctx, "PINECONE_INDEX_NAME"),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to pinecone: %w", err)
	}
	return client, nil
}

func setupSimilarJobLister(ctx context.Context, catalog domain.Catalog) (datasources.SimilarJobLister, error) {
	switch driver := MustGetEnvAsString(ctx, "SIMILARITY_DRIVER"); driver {
	case "null":
		return datasources.NullSimilarityRepository{}, nil
	case "embedding":
		return embedding.Repository{Catalog: catalog}, nil
	case "pinecone":
		return SetupPineconeClient(ctx)
	default:
		return nil, fmt.Errorf("unknown similarity driver [%s]", driver)
	}
}

func setupAuthMiddleware(ctx context.Context) (func(http.Handler) http.Handler, error) {
	var validators []router.AuthValidator

	for _, driver := range MustGetEnvAsStrings(ctx, "AUTH_DRIVERS") {
		switch driver {
		case "":
			// Skip empty strings (e.g., from splitting an empty AUTH_DRIVERS)
		case "auth0":
			v, err := router.NewAuth0Validator(
				MustGetEnvAsString(ctx, "AUTH0_DOMAIN"),
				MustGetEnvAsString(ctx, "AUTH0_AUDIENCE"),
			)
			if err != nil {
				return nil, fmt.Errorf("creating Auth0 validator: %w", err)
			}
			validators = append(validators, v)
		case "operator_token":
			v, err := router.NewOperatorTokenValidator(MustGetEnvAsStrings(ctx, "OPERATOR_TOKEN_HASHES"))
			if err != nil {
				return nil, fmt.Errorf("creating operator token validator: %w", err)
			}
			validators = append(validators, v)
		default:
			return nil, fmt.Errorf("unknown auth driver [%s]", driver)
		}
	}

	return router.NewAuthMiddleware(validators), nil
}
