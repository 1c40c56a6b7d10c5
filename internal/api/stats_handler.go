package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/api/middleware"
	"github.com/lingualoop/lingualoop-api/internal/api/shared"
	"github.com/lingualoop/lingualoop-api/internal/service/stats"
)

// StatsHandler handles gamification-stats API requests.
type StatsHandler struct {
	statsService stats.StatsService
	logger       *slog.Logger
}

// NewStatsHandler creates a new StatsHandler with the given dependencies.
func NewStatsHandler(statsService stats.StatsService, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{
		statsService: statsService,
		logger:       logger.With(slog.String("component", "stats_handler")),
	}
}

// GetStats handles GET /paths/{pathID}/stats.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	pathID, err := uuid.Parse(chi.URLParam(r, "pathID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid path ID")
		return
	}

	userStats, err := h.statsService.GetUserStats(r.Context(), userID, pathID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to get stats", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newStatsResponse(userStats))
}

// RefillHearts handles POST /paths/{pathID}/hearts/refill.
func (h *StatsHandler) RefillHearts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	pathID, err := uuid.Parse(chi.URLParam(r, "pathID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid path ID")
		return
	}

	progress, err := h.statsService.RefillHearts(r.Context(), userID, pathID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to refill hearts", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newRefillResponse(progress))
}
