// Package app wires configuration, the database pool, repositories and
// services into a runnable pipeline. Nothing here holds global state; the
// caller owns the App and closes it.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/matchday-data/epl-warehouse/internal/config"
	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
	"github.com/matchday-data/epl-warehouse/internal/infrastructure/extract/fbdata"
	"github.com/matchday-data/epl-warehouse/internal/infrastructure/repository/postgres"
	"github.com/matchday-data/epl-warehouse/internal/platform/logging"
	"github.com/matchday-data/epl-warehouse/internal/usecase"
)

type App struct {
	Config config.Config
	Logger *logging.Logger
	DB     *sqlx.DB

	stagingRepo staging.Repository

	Staging    *usecase.StagingService
	Cleaning   *usecase.CleaningService
	Dimensions *usecase.DimensionService
	Mappings   *usecase.MappingService
	Facts      *usecase.FactService
	Pipeline   *usecase.PipelineService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database pool ready",
		"db", dbNameFromURL(cfg.DBURL),
		"max_open", cfg.DBMaxOpenConns, "max_idle", cfg.DBMaxIdleConns)

	stagingRepo := postgres.NewStagingRepository(db)
	manifestRepo := postgres.NewManifestRepository(db)
	dimensionRepo := postgres.NewDimensionRepository(db)
	mappingRepo := postgres.NewMappingRepository(db)
	factRepo := postgres.NewFactRepository(db)
	etlLogRepo := postgres.NewETLLogRepository(db)

	var teamsAPI usecase.TeamsAPI
	if cfg.FootballDataEnabled {
		teamsAPI = fbdata.NewClient(fbdata.ClientConfig{
			BaseURL:    cfg.FootballDataBaseURL,
			Token:      cfg.FootballDataToken,
			Timeout:    cfg.FootballDataTimeout,
			MaxRetries: cfg.FootballDataMaxRetries,
			Logger:     logger,
		})
	}

	stagingSvc := usecase.NewStagingService(stagingRepo, manifestRepo, teamsAPI, usecase.StagingConfig{
		SeasonCSVDir:        cfg.SeasonCSVDir,
		EventsDir:           cfg.EventsDir,
		MatchesDir:          cfg.MatchesDir,
		RefereeXLSXPath:     cfg.RefereeXLSXPath,
		RefereeSheet:        cfg.RefereeSheet,
		FootballDataEnabled: cfg.FootballDataEnabled,
		SeasonStart:         cfg.SeasonStart,
		Workers:             cfg.StagingWorkers,
		MockStatsSeed:       cfg.MockStatsSeed,
		MockStatsRows:       cfg.MockStatsRows,
	}, logger)

	cleaningSvc := usecase.NewCleaningService(stagingRepo, logger)
	dimensionSvc := usecase.NewDimensionService(dimensionRepo, logger)
	mappingSvc := usecase.NewMappingService(stagingRepo, dimensionRepo, factRepo, mappingRepo, logger)
	factSvc := usecase.NewFactService(stagingRepo, dimensionRepo, factRepo, mappingRepo, logger)

	pipelineSvc := usecase.NewPipelineService(
		stagingSvc,
		cleaningSvc,
		dimensionSvc,
		mappingSvc,
		factSvc,
		stagingRepo,
		etlLogRepo,
		cfg.JobName,
		logger,
	)

	return &App{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		stagingRepo: stagingRepo,
		Staging:     stagingSvc,
		Cleaning:    cleaningSvc,
		Dimensions:  dimensionSvc,
		Mappings:    mappingSvc,
		Facts:       factSvc,
		Pipeline:    pipelineSvc,
	}, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// Ping verifies database connectivity with a short deadline.
func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := a.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// TruncateStaging empties the staging tables outside a full pipeline run.
func (a *App) TruncateStaging(ctx context.Context) error {
	return a.stagingRepo.TruncateForCleanup(ctx)
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
