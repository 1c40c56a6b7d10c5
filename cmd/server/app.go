package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lingualoop/lingualoop-api/internal/config"
	"github.com/lingualoop/lingualoop-api/internal/domain/srs"
	"github.com/lingualoop/lingualoop-api/internal/platform/memory"
	"github.com/lingualoop/lingualoop-api/internal/platform/postgres"
	"github.com/lingualoop/lingualoop-api/internal/service/auth"
	"github.com/lingualoop/lingualoop-api/internal/service/hearts"
	"github.com/lingualoop/lingualoop-api/internal/service/lesson"
	"github.com/lingualoop/lingualoop-api/internal/service/review"
	"github.com/lingualoop/lingualoop-api/internal/service/stats"
	"github.com/lingualoop/lingualoop-api/internal/service/xp"
	"github.com/lingualoop/lingualoop-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore       store.UserStore
	lessonStore     store.LessonStore
	sessionStore    store.SessionStore
	progressStore   store.UserProgressStore
	completionStore store.LessonCompletionStore
	historyStore    store.ReviewHistoryStore

	// Services
	jwtService    auth.JWTService
	hasher        auth.PasswordHasher
	lessonService lesson.LessonService
	reviewService review.ReviewService
	statsService  stats.StatsService
}

// newApplication creates an application instance with all dependencies
// initialized.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.hasher = auth.NewBcryptHasher(cfg.Auth.BCryptCost)

	// Stores. Sessions are short-lived and in-flight only, so they live in
	// memory; everything else is Postgres.
	progressStore := postgres.NewPostgresUserProgressStore(db, logger)
	completionStore := postgres.NewPostgresLessonCompletionStore(db, logger)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.lessonStore = postgres.NewPostgresLessonStore(db, logger)
	app.progressStore = progressStore
	app.completionStore = completionStore
	app.historyStore = postgres.NewPostgresReviewHistoryStore(db, logger)
	app.sessionStore = memory.NewSessionStore()

	settlementStore := postgres.NewPostgresSettlementStore(db, completionStore, progressStore, logger)

	heartsService := hearts.NewService(hearts.Policy{
		RefillInterval: time.Duration(cfg.Gamification.HeartRefillMinutes) * time.Minute,
	})
	xpService := xp.NewDefaultService()
	srsService := srs.NewDefaultService()

	app.lessonService, err = lesson.NewLessonService(lesson.Config{
		LessonStore:     app.lessonStore,
		SessionStore:    app.sessionStore,
		ProgressStore:   app.progressStore,
		CompletionStore: app.completionStore,
		SettlementStore: settlementStore,
		XPService:       xpService,
		HeartsService:   heartsService,
		MaxHearts:       cfg.Gamification.MaxHearts,
		DefaultLessonXP: cfg.Gamification.DefaultLessonXP,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lesson service: %w", err)
	}

	app.reviewService, err = review.NewReviewService(app.historyStore, srsService, logger, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}

	app.statsService, err = stats.NewStatsService(
		app.progressStore,
		app.completionStore,
		heartsService,
		cfg.Gamification.MaxHearts,
		logger,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
