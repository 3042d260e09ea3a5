package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jbeshir/job-recommender/internal/datasources/files"
	"github.com/jbeshir/job-recommender/internal/domain"
)

// DataConfig locates the dataset files a catalog is built from.
type DataConfig struct {
	UsersPath   string `validate:"required,file"`
	JobsPath    string `validate:"required,file"`
	WindowsPath string `validate:"required,file"`
	ZipsPath    string `validate:"required,file"`

	// ApplicationMatrixPath is a Matrix Market user-job count matrix. When empty the
	// history is counted from ApplicationsPath.
	ApplicationsPath       string `validate:"required_without=ApplicationMatrixPath,omitempty,file"`
	ApplicationMatrixPath  string `validate:"omitempty,file"`
	ApplicationMatrixBased string `validate:"omitempty,oneof=0 1"`

	// UserTokensPath and JobTokensPath fix the index order. When empty, indices follow
	// the order of the users and jobs files.
	UserTokensPath string `validate:"required_with=JobTokensPath,omitempty,file"`
	JobTokensPath  string `validate:"required_with=UserTokensPath,omitempty,file"`

	FactorsPrefix       string `validate:"required"`
	SingularValuesPath  string `validate:"required,file"`
	Rank                int    `validate:"gte=1"`
	NormalizeEmbeddings bool

	ScoringModelPath string `validate:"omitempty,file"`
}

// DataConfigFromEnv reads the DATA_* variables.
func DataConfigFromEnv(ctx context.Context) DataConfig {
	return DataConfig{
		UsersPath:              MustGetEnvAsString(ctx, "DATA_USERS_PATH"),
		JobsPath:               MustGetEnvAsString(ctx, "DATA_JOBS_PATH"),
		WindowsPath:            MustGetEnvAsString(ctx, "DATA_WINDOWS_PATH"),
		ZipsPath:               MustGetEnvAsString(ctx, "DATA_ZIPS_PATH"),
		ApplicationsPath:       GetEnvAsStringOrDefault("DATA_APPLICATIONS_PATH", ""),
		ApplicationMatrixPath:  GetEnvAsStringOrDefault("DATA_APPLICATION_MATRIX_PATH", ""),
		ApplicationMatrixBased: GetEnvAsStringOrDefault("DATA_APPLICATION_MATRIX_BASE", "1"),
		UserTokensPath:         GetEnvAsStringOrDefault("DATA_USER_TOKENS_PATH", ""),
		JobTokensPath:          GetEnvAsStringOrDefault("DATA_JOB_TOKENS_PATH", ""),
		FactorsPrefix:          MustGetEnvAsString(ctx, "DATA_FACTORS_PREFIX"),
		SingularValuesPath:     MustGetEnvAsString(ctx, "DATA_SINGULAR_VALUES_PATH"),
		Rank:                   MustGetEnvAsInt(ctx, "DATA_EMBEDDING_RANK"),
		NormalizeEmbeddings:    MustGetEnvAsBoolean(ctx, "DATA_NORMALIZE_EMBEDDINGS"),
		ScoringModelPath:       GetEnvAsStringOrDefault("SCORING_MODEL_PATH", ""),
	}
}

// Validate checks required paths are set and exist.
func (c DataConfig) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("data config field %s failed %q check: %w",
				verrs[0].Field(), verrs[0].Tag(), domain.ErrInvalidArgument)
		}
		return fmt.Errorf("validating data config: %w", err)
	}
	return nil
}

// Records are the raw dataset records and the indices assigned to them.
type Records struct {
	Users      domain.Users
	Jobs       domain.Jobs
	Windows    []domain.Window
	UserTokens domain.TokenIndex
	JobTokens  domain.TokenIndex
}

// UserList returns the users in index order.
func (r Records) UserList() []domain.User {
	out := make([]domain.User, 0, len(r.Users))
	for _, token := range r.UserTokens.Tokens() {
		if u, ok := r.Users[token]; ok {
			out = append(out, u)
		}
	}
	return out
}

// JobList returns the jobs in index order.
func (r Records) JobList() []domain.Job {
	out := make([]domain.Job, 0, len(r.Jobs))
	for _, token := range r.JobTokens.Tokens() {
		if j, ok := r.Jobs[token]; ok {
			out = append(out, j)
		}
	}
	return out
}

// WindowTokens indexes window IDs in file order.
func (r Records) WindowTokens() (domain.TokenIndex, error) {
	b := domain.NewTokenIndexBuilder()
	for _, w := range r.Windows {
		b.Add(w.ID)
	}
	return b.Build()
}

// LoadRecords reads users, jobs and windows, and the token indices over them.
func LoadRecords(ctx context.Context, cfg DataConfig) (Records, error) {
	logger := domain.LoggerFromContext(ctx)
	var rec Records
	var err error

	if rec.Users, err = files.ReadUsersFile(cfg.UsersPath); err != nil {
		return Records{}, err
	}
	if rec.Jobs, err = files.ReadJobsFile(cfg.JobsPath); err != nil {
		return Records{}, err
	}
	if rec.Windows, err = files.ReadWindowsFile(cfg.WindowsPath); err != nil {
		return Records{}, err
	}

	if cfg.UserTokensPath != "" {
		if rec.UserTokens, err = files.ReadTokenIndexFile(cfg.UserTokensPath); err != nil {
			return Records{}, err
		}
		if rec.JobTokens, err = files.ReadTokenIndexFile(cfg.JobTokensPath); err != nil {
			return Records{}, err
		}
	} else {
		if rec.UserTokens, err = files.TokenizeUsersFile(cfg.UsersPath); err != nil {
			return Records{}, err
		}
		if rec.JobTokens, err = files.TokenizeJobsFile(cfg.JobsPath); err != nil {
			return Records{}, err
		}
	}

	logger.InfoContext(ctx, "loaded dataset records",
		"users", len(rec.Users), "jobs", len(rec.Jobs), "windows", len(rec.Windows))
	return rec, nil
}

// LoadCatalog builds the immutable catalog the recommender reads.
func LoadCatalog(ctx context.Context, cfg DataConfig) (domain.Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return domain.Catalog{}, err
	}
	logger := domain.LoggerFromContext(ctx)

	rec, err := LoadRecords(ctx, cfg)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("loading records: %w", err)
	}

	windows, err := domain.NewValidityWindowIndex(rec.Windows, rec.JobTokens, rec.Jobs)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("indexing validity windows: %w", err)
	}

	history, err := loadHistory(ctx, cfg, rec)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("loading application history: %w", err)
	}

	factors, err := files.ReadSVDFactors(cfg.FactorsPrefix, cfg.SingularValuesPath, cfg.Rank)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("reading embedding factors: %w", err)
	}
	engine, err := domain.NewSimilarityEngine(factors, cfg.Rank, cfg.NormalizeEmbeddings)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("building similarity engine: %w", err)
	}
	if engine.NumUsers() != rec.UserTokens.Len() || engine.NumJobs() != rec.JobTokens.Len() {
		return domain.Catalog{}, fmt.Errorf("embeddings cover %d users and %d jobs, indices have %d and %d: %w",
			engine.NumUsers(), engine.NumJobs(), rec.UserTokens.Len(), rec.JobTokens.Len(), domain.ErrInvalidArgument)
	}

	geoRecords, err := files.ReadGeoRecordsFile(cfg.ZipsPath)
	if err != nil {
		return domain.Catalog{}, err
	}
	geo := domain.NewGeoLookup(geoRecords)
	coords, err := domain.NewJobCoordinates(rec.JobTokens, rec.Jobs, geo)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("resolving job coordinates: %w", err)
	}
	if n := coords.Unresolved(); n > 0 {
		logger.WarnContext(ctx, "jobs without a resolvable location", "count", n)
	}

	return domain.Catalog{
		UserTokens: rec.UserTokens,
		JobTokens:  rec.JobTokens,
		Users:      rec.Users,
		Jobs:       rec.Jobs,
		Windows:    windows,
		History:    history,
		Similarity: engine,
		Distance: domain.GeoDistanceFilter{
			Users:  rec.Users,
			Geo:    geo,
			Coords: coords,
		},
	}, nil
}

func loadHistory(ctx context.Context, cfg DataConfig, rec Records) (domain.ApplicationHistory, error) {
	if cfg.ApplicationMatrixPath != "" {
		m, err := files.ReadSparseMatrixFile(cfg.ApplicationMatrixPath, cfg.ApplicationMatrixBased == "0")
		if err != nil {
			return domain.ApplicationHistory{}, err
		}
		rows, cols := m.Dims()
		if rows != rec.UserTokens.Len() || cols != rec.JobTokens.Len() {
			return domain.ApplicationHistory{}, fmt.Errorf("application matrix is %dx%d, indices are %dx%d: %w",
				rows, cols, rec.UserTokens.Len(), rec.JobTokens.Len(), domain.ErrInvalidArgument)
		}
		return domain.NewApplicationHistory(m), nil
	}

	apps, err := files.ReadApplicationsFile(cfg.ApplicationsPath)
	if err != nil {
		return domain.ApplicationHistory{}, err
	}
	b := domain.NewApplicationMatrixBuilder(rec.UserTokens, rec.JobTokens)
	b.AddAll(apps)
	if b.Skipped() > 0 {
		domain.LoggerFromContext(ctx).WarnContext(ctx, "skipped applications with unknown tokens",
			"count", b.Skipped())
	}
	m, err := b.Build()
	if err != nil {
		return domain.ApplicationHistory{}, err
	}
	return domain.NewApplicationHistory(m), nil
}

// LoadScoringModel restores a fitted model from path, or returns an unfitted model when
// path is empty.
func LoadScoringModel(ctx context.Context, path string) (*domain.ScoringModel, error) {
	cfg := domain.DefaultScoringModelConfig()
	if path == "" {
		domain.LoggerFromContext(ctx).InfoContext(ctx, "no scoring model configured")
		return domain.NewScoringModel(cfg), nil
	}

	snap, err := files.ReadScoringModelSnapshotFile(path)
	if err != nil {
		return nil, err
	}
	model, err := domain.NewScoringModelFromSnapshot(cfg, snap)
	if err != nil {
		return nil, fmt.Errorf("restoring scoring model: %w", err)
	}
	return model, nil
}
