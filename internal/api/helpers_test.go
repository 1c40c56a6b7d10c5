package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lingualoop/lingualoop-api/internal/api/shared"
	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/domain/session"
)

// testTime is a fixed instant used across handler tests.
var testTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// authInjector returns middleware that places the given user ID into the
// request context, standing in for the real JWT middleware.
func authInjector(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// newTestRouter builds a chi router with the given routes registered under
// an auth-injecting middleware.
func newTestRouter(userID uuid.UUID, register func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authInjector(userID))
		register(r)
	})
	return r
}

// doJSON performs a request with an optional JSON body against the handler
// and returns the recorder.
func doJSON(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded response body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

// makeFlashcards builds n valid flashcards.
func makeFlashcards(n int) []domain.Flashcard {
	cards := make([]domain.Flashcard, n)
	for i := range cards {
		cards[i] = domain.Flashcard{
			ID:         uuid.New(),
			Question:   "question",
			Answer:     "answer",
			Difficulty: domain.DifficultyEasy,
		}
	}
	return cards
}

// makeSession starts an in-progress session over n cards with full hearts.
func makeSession(t *testing.T, lessonID uuid.UUID, n int) *session.LessonSession {
	t.Helper()

	hearts, err := domain.FullHearts(5)
	require.NoError(t, err)

	sess, err := session.Start(lessonID, makeFlashcards(n), hearts, session.ModeFlashcard, testTime)
	require.NoError(t, err)
	return sess
}
