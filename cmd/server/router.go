package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lingualoop/lingualoop-api/internal/api"
	apimiddleware "github.com/lingualoop/lingualoop-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.hasher, app.logger)
	lessonHandler := api.NewLessonHandler(app.lessonService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	statsHandler := api.NewStatsHandler(app.statsService, app.logger)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Lesson session endpoints
			r.Post("/lessons/{lessonID}/session", lessonHandler.StartSession)
			r.Get("/lessons/{lessonID}/session", lessonHandler.GetSession)
			r.Post("/lessons/{lessonID}/session/answers", lessonHandler.SubmitAnswer)
			r.Delete("/lessons/{lessonID}/session", lessonHandler.AbandonSession)
			r.Get("/lessons/{lessonID}/completions", lessonHandler.GetCompletionHistory)

			// Spaced-repetition review endpoints
			r.Post("/reviews", reviewHandler.SubmitReview)
			r.Get("/reviews/due", reviewHandler.GetDueFlashcards)
			r.Get("/reviews/struggling", reviewHandler.GetStrugglingFlashcards)

			// Gamification stats endpoints
			r.Get("/paths/{pathID}/stats", statsHandler.GetStats)
			r.Post("/paths/{pathID}/hearts/refill", statsHandler.RefillHearts)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
