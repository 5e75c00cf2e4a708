// cmd/recommender-api/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pmis-recommender/internal/catalog"
	"pmis-recommender/internal/common/config"
	"pmis-recommender/internal/common/database"
	"pmis-recommender/internal/common/logger"
	"pmis-recommender/internal/common/observability"
	collaborativesignal "pmis-recommender/internal/engine/collaborative-signal"
	contentsimilarity "pmis-recommender/internal/engine/content-similarity"
	fairnessadjustment "pmis-recommender/internal/engine/fairness-adjustment"
	"pmis-recommender/internal/engine/ranker"
	skillgap "pmis-recommender/internal/engine/skill-gap"
	"pmis-recommender/internal/registry"
	"pmis-recommender/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting recommender API...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()

	// --- Load model artifacts with retry ---
	reg := registry.New(&cfg.Artifacts, log)
	err = retryWithBackoff(func() error {
		return reg.Load()
	}, 5, 2*time.Second, zapLog, "model artifact load")
	if err != nil {
		// Start degraded: the health endpoint reports it and scoring
		// requests get a model-unavailable error until the process is
		// restarted with valid artifacts in place.
		zapLog.Error("model artifact load failed, serving degraded until restart", zap.Error(err))
	}

	// --- Build the scoring pipeline ---
	pgCatalog := catalog.NewPostgresCatalog(pg.DB, log)

	cacheTTL := time.Duration(cfg.Database.Redis.CacheTTL) * time.Second
	students := catalog.NewCachedStudentStore(pgCatalog, rdb.Client, cacheTTL, cfg.Artifacts.SnapshotVersion, log)
	signals := catalog.NewPairSignalCache(rdb.Client, cacheTTL, cfg.Artifacts.SnapshotVersion)

	courses, err := pgCatalog.ListCourses(ctx)
	if err != nil {
		zapLog.Warn("course catalog load failed, skill-gap suggestions disabled", zap.Error(err))
	}

	contentEngine := contentsimilarity.NewEngine(&contentsimilarity.Config{
		LexicalWeight:   cfg.Scoring.LexicalWeight,
		MetadataWeight:  cfg.Scoring.MetadataWeight,
		DegreeWeight:    cfg.Scoring.DegreeWeight,
		LevelWeight:     cfg.Scoring.LevelWeight,
		LocationWeight:  cfg.Scoring.LocationWeight,
		CGPAWeight:      cfg.Scoring.CGPAWeight,
		TierBonusWeight: cfg.Scoring.TierBonusWeight,
	})

	factors, ferr := reg.Factors()
	if ferr != nil {
		zapLog.Warn("collaborative signal unavailable", zap.Error(ferr))
	}
	collabProvider := collaborativesignal.NewProvider(factors)

	predictor, perr := reg.Predictor()
	if perr != nil {
		zapLog.Warn("success predictor unavailable", zap.Error(perr))
	}

	adjuster := fairnessadjustment.NewAdjuster(&fairnessadjustment.Config{
		Enabled:      cfg.Fairness.Enabled,
		MaxMagnitude: cfg.Fairness.MaxMagnitude,
		Groups:       cfg.Fairness.Groups,
	})

	annotator := skillgap.NewAnnotator(&skillgap.Config{
		MaxSkills:          cfg.SkillGap.MaxSkills,
		MaxCoursesPerSkill: cfg.SkillGap.MaxCoursesPerSkill,
		PrereqGate:         cfg.SkillGap.PrereqGate,
	}, courses)

	pipeline := ranker.NewRanker(&ranker.Config{
		ContentWeight:       cfg.Scoring.ContentWeight,
		CollaborativeWeight: cfg.Scoring.CollaborativeWeight,
		HybridWeight:        cfg.Scoring.HybridWeight,
		SuccessWeight:       cfg.Scoring.SuccessWeight,
		PredictorTimeout:    time.Duration(cfg.Scoring.PredictorTimeout) * time.Millisecond,
		Parallelism:         cfg.Scoring.Parallelism,
	}, contentEngine, collabProvider, predictor, adjuster, annotator, log)

	srv := server.New(cfg, log, server.Deps{
		Students: students,
		Listings: pgCatalog,
		Ranker:   pipeline,
		Registry: reg,
		Signals:  signals,
		Obs:      obs,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	case sig := <-stop:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("recommender API stopped")
}
