// Package api contains the HTTP handlers, request/response models and
// route wiring for the public REST surface.
package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/domain/session"
	"github.com/lingualoop/lingualoop-api/internal/service/lesson"
	"github.com/lingualoop/lingualoop-api/internal/service/stats"
)

// RegisterRequest is the request for user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest is the request for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is the request for exchanging a refresh token for a
// new token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned by all authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// StartSessionRequest is the request for starting a lesson session.
type StartSessionRequest struct {
	PathID uuid.UUID `json:"path_id" validate:"required"`
	// Mode defaults to flashcard when omitted.
	Mode string `json:"mode,omitempty" validate:"omitempty,oneof=flashcard quiz recall"`
}

// SubmitAnswerRequest is the request for answering the current flashcard
// of an in-flight session.
type SubmitAnswerRequest struct {
	PathID           uuid.UUID `json:"path_id" validate:"required"`
	Correct          bool      `json:"correct"`
	TimeSpentSeconds int       `json:"time_spent_seconds" validate:"min=0"`
}

// FlashcardResponse is the client view of a flashcard mid-session. The
// answer is deliberately absent; clients check answers server-side.
type FlashcardResponse struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
}

// SessionResponse is the client view of a lesson session.
type SessionResponse struct {
	LessonID        uuid.UUID          `json:"lesson_id"`
	State           string             `json:"state"`
	Mode            string             `json:"mode"`
	CurrentIndex    int                `json:"current_index"`
	CardsAnswered   int                `json:"cards_answered"`
	TotalCards      int                `json:"total_cards"`
	HeartsRemaining int                `json:"hearts_remaining"`
	CurrentCard     *FlashcardResponse `json:"current_card,omitempty"`
	StartedAt       time.Time          `json:"started_at"`
}

// newSessionResponse maps a session aggregate to its client view.
func newSessionResponse(sess *session.LessonSession) (SessionResponse, error) {
	progress, err := sess.Progress()
	if err != nil {
		return SessionResponse{}, err
	}

	resp := SessionResponse{
		LessonID:        sess.LessonID(),
		State:           string(sess.State()),
		Mode:            string(sess.ReviewMode()),
		CurrentIndex:    sess.CurrentIndex(),
		CardsAnswered:   progress.Completed(),
		TotalCards:      progress.Total(),
		HeartsRemaining: sess.Hearts().Current(),
		StartedAt:       sess.StartedAt(),
	}

	if card, ok := sess.CurrentCard(); ok {
		resp.CurrentCard = &FlashcardResponse{
			ID:       card.ID,
			Question: card.Question,
		}
	}

	return resp, nil
}

// CompletionResponse is the client view of a persisted lesson completion.
type CompletionResponse struct {
	ID              uuid.UUID `json:"id"`
	LessonID        uuid.UUID `json:"lesson_id"`
	CompletedAt     time.Time `json:"completed_at"`
	XPEarned        int       `json:"xp_earned"`
	Accuracy        int       `json:"accuracy"`
	HeartsRemaining int       `json:"hearts_remaining"`
	IsPerfect       bool      `json:"is_perfect"`
}

// newCompletionResponse maps a completion record to its client view.
func newCompletionResponse(c *domain.LessonCompletion) CompletionResponse {
	return CompletionResponse{
		ID:              c.ID,
		LessonID:        c.LessonID,
		CompletedAt:     c.CompletedAt,
		XPEarned:        c.XPEarned,
		Accuracy:        c.Accuracy,
		HeartsRemaining: c.HeartsRemaining,
		IsPerfect:       c.IsPerfect,
	}
}

// CompletionHistoryResponse lists a user's completions of one lesson,
// most recent first.
type CompletionHistoryResponse struct {
	Completions []CompletionResponse `json:"completions"`
	Count       int                  `json:"count"`
}

// newCompletionHistoryResponse maps completion records to the list view.
// An empty history serializes as an empty array, not null.
func newCompletionHistoryResponse(completions []*domain.LessonCompletion) CompletionHistoryResponse {
	views := make([]CompletionResponse, 0, len(completions))
	for _, c := range completions {
		views = append(views, newCompletionResponse(c))
	}
	return CompletionHistoryResponse{Completions: views, Count: len(views)}
}

// SubmitAnswerResponse is returned for every answer submission. Completion,
// XPEarned and Streak are present only when this answer completed the
// lesson.
type SubmitAnswerResponse struct {
	Event      string              `json:"event"`
	Session    SessionResponse     `json:"session"`
	Completion *CompletionResponse `json:"completion,omitempty"`
	XPEarned   int                 `json:"xp_earned,omitempty"`
	Streak     int                 `json:"streak,omitempty"`
	IsNewBest  bool                `json:"is_new_best,omitempty"`
}

// newSubmitAnswerResponse maps a lesson-service submit result to its
// client view.
func newSubmitAnswerResponse(result *lesson.SubmitResult) (SubmitAnswerResponse, error) {
	sessResp, err := newSessionResponse(result.Session)
	if err != nil {
		return SubmitAnswerResponse{}, err
	}

	resp := SubmitAnswerResponse{
		Event:   string(result.Event.Type()),
		Session: sessResp,
	}

	if result.Completion != nil {
		view := newCompletionResponse(result.Completion)
		resp.Completion = &view
		resp.XPEarned = result.XPEarned
		resp.Streak = result.Streak.Count()
		resp.IsNewBest = result.IsNewBest
	}

	return resp, nil
}

// SubmitReviewRequest is the request for reviewing one flashcard outside
// a lesson session.
type SubmitReviewRequest struct {
	FlashcardID uuid.UUID `json:"flashcard_id" validate:"required"`
	IsCorrect   bool      `json:"is_correct"`
}

// SubmitReviewResponse is the scheduling outcome of one review.
type SubmitReviewResponse struct {
	FlashcardID       uuid.UUID `json:"flashcard_id"`
	IsCorrect         bool      `json:"is_correct"`
	IntervalDays      int       `json:"interval_days"`
	NextReviewDate    time.Time `json:"next_review_date"`
	FlaggedStruggling bool      `json:"flagged_struggling"`
	ClearedStruggling bool      `json:"cleared_struggling"`
}

// FlashcardListResponse carries a list of flashcard IDs, used for the due
// and struggling queues.
type FlashcardListResponse struct {
	FlashcardIDs []uuid.UUID `json:"flashcard_ids"`
	Count        int         `json:"count"`
}

// HeartsResponse is the client view of a hearts value.
type HeartsResponse struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// StatsResponse is the assembled gamification snapshot for one user+path.
type StatsResponse struct {
	Hearts           HeartsResponse `json:"hearts"`
	XP               int            `json:"xp"`
	Streak           int            `json:"streak"`
	NextRefillAt     *time.Time     `json:"next_refill_at,omitempty"`
	RefillProgress   float64        `json:"refill_progress"`
	AverageAccuracy  float64        `json:"average_accuracy"`
	LastActivityDate *time.Time     `json:"last_activity_date,omitempty"`
}

// newStatsResponse maps assembled user stats to their client view.
func newStatsResponse(us *stats.UserStats) StatsResponse {
	resp := StatsResponse{
		Hearts: HeartsResponse{
			Current: us.Hearts.Current(),
			Max:     us.Hearts.Max(),
		},
		XP:              us.XP.Amount(),
		Streak:          us.Streak.Count(),
		NextRefillAt:    us.NextRefillAt,
		RefillProgress:  us.RefillProgress,
		AverageAccuracy: us.AverageAccuracy,
	}
	if !us.LastActivityDate.IsZero() {
		t := us.LastActivityDate
		resp.LastActivityDate = &t
	}
	return resp
}

// RefillResponse is returned by the heart-refill endpoint.
type RefillResponse struct {
	Hearts          HeartsResponse `json:"hearts"`
	LastHeartRefill time.Time      `json:"last_heart_refill"`
}

// newRefillResponse maps a progress aggregate to the refill view.
func newRefillResponse(progress *domain.UserProgress) RefillResponse {
	return RefillResponse{
		Hearts: HeartsResponse{
			Current: progress.Hearts.Current(),
			Max:     progress.Hearts.Max(),
		},
		LastHeartRefill: progress.LastHeartRefill,
	}
}
