package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/golestat/prediction-league/external/jobqueue"
	"github.com/golestat/prediction-league/external/resultfeed"
	"github.com/golestat/prediction-league/internal/config"
	"github.com/golestat/prediction-league/internal/domain/match"
	"github.com/golestat/prediction-league/internal/domain/prediction"
	"github.com/golestat/prediction-league/internal/domain/question"
	"github.com/golestat/prediction-league/internal/domain/scoring"
	"github.com/golestat/prediction-league/internal/domain/season"
	"github.com/golestat/prediction-league/internal/domain/standings"
	"github.com/golestat/prediction-league/internal/domain/user"
	repocache "github.com/golestat/prediction-league/internal/infrastructure/repository/cache"
	"github.com/golestat/prediction-league/internal/infrastructure/repository/memory"
	"github.com/golestat/prediction-league/internal/infrastructure/repository/postgres"
	"github.com/golestat/prediction-league/internal/interfaces/httpapi"
	"github.com/golestat/prediction-league/internal/platform/cache"
	"github.com/golestat/prediction-league/internal/platform/logging"
	"github.com/golestat/prediction-league/internal/platform/resilience"
	"github.com/golestat/prediction-league/internal/usecase"
)

type repositories struct {
	matches     match.Repository
	predictions prediction.Repository
	questions   question.Repository
	users       user.Repository
	seasons     season.Repository
	standings   standings.Repository
	scoring     scoring.Repository
}

// NewHTTPServer wires repositories, services and the router into a ready
// server. The returned cleanup closes the storage handle and must run after
// the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	rules := scoring.DefaultRules()
	scorer := usecase.NewMatchScoringService(repos.matches, repos.predictions, repos.questions, repos.scoring, rules)
	aggregator := usecase.NewAggregationService(repos.matches, repos.predictions, repos.questions, repos.users, repos.standings, rules)
	recalc := usecase.NewRecalculationService(repos.seasons, repos.matches, repos.questions, scorer, aggregator, logger)
	admin := usecase.NewAdminService(repos.matches, repos.questions, recalc, logger)
	rankings := usecase.NewRankingsService(repos.seasons, repos.standings)
	resultSync := buildResultSync(cfg, repos.matches, admin, logger)

	handler := httpapi.NewHandler(rankings, admin, recalc, resultSync, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.StorageDriver == config.StorageMemory {
		return buildMemoryRepositories(cfg, logger), func() error { return nil }, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return repositories{}, nil, err
	}
	if cfg.DemoSeedEnabled {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap demo seed: %w", err)
		}
		logger.Info("demo seed applied")
	}

	repos := repositories{
		matches:     postgres.NewMatchRepository(db),
		predictions: postgres.NewPredictionRepository(db),
		questions:   postgres.NewQuestionRepository(db),
		users:       postgres.NewUserRepository(db),
		seasons:     postgres.NewSeasonRepository(db),
		standings:   postgres.NewStandingsRepository(db),
		scoring:     postgres.NewScoringRepository(db),
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.seasons = repocache.NewSeasonRepository(repos.seasons, store)
		repos.standings = repocache.NewStandingsRepository(repos.standings, store)
		logger.Info("read-through cache enabled", "ttl", cfg.CacheTTL.String())
	}

	return repos, db.Close, nil
}

func buildMemoryRepositories(cfg config.Config, logger *logging.Logger) repositories {
	matches := memory.NewMatchRepository(nil)
	predictions := memory.NewPredictionRepository(nil)
	questions := memory.NewQuestionRepository(nil, nil)
	users := memory.NewUserRepository(nil)
	seasons := memory.NewSeasonRepository(nil)
	if cfg.DemoSeedEnabled {
		matches = memory.NewMatchRepository(memory.SeedMatches())
		predictions = memory.NewPredictionRepository(memory.SeedPredictions())
		questions = memory.NewQuestionRepository(memory.SeedQuestions(), memory.SeedAnswers())
		users = memory.NewUserRepository(memory.SeedUsers())
		seasons = memory.NewSeasonRepository(memory.SeedSeasons())
		logger.Info("demo seed applied")
	}

	return repositories{
		matches:     matches,
		predictions: predictions,
		questions:   questions,
		users:       users,
		seasons:     seasons,
		standings:   memory.NewStandingsRepository(),
		scoring:     memory.NewScoringRepository(predictions, questions),
	}
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	dbName := dbNameFromURL(dsn)
	if dbName == "" {
		dbName = "prediction_league"
	}

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func buildResultSync(cfg config.Config, matchRepo match.Repository, admin *usecase.AdminService, logger *logging.Logger) *usecase.ResultSyncService {
	if !cfg.ResultFeedEnabled {
		return nil
	}

	feed := resultfeed.NewClient(resultfeed.ClientConfig{
		BaseURL:    cfg.ResultFeedBaseURL,
		Token:      cfg.ResultFeedToken,
		Timeout:    cfg.ResultFeedTimeout,
		MaxRetries: cfg.ResultFeedMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ResultFeedCircuitEnabled,
			FailureThreshold: cfg.ResultFeedCircuitFailureCount,
			OpenTimeout:      cfg.ResultFeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ResultFeedCircuitHalfOpenMaxReq,
		},
	})

	queue := usecase.NewNoopJobQueue()
	if cfg.QStashEnabled {
		queue = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	return usecase.NewResultSyncService(
		feed,
		matchRepo,
		admin,
		queue,
		cfg.ResultFeedSeasonIDBySeason,
		cfg.JobResultSyncInterval,
		logger,
	)
}
