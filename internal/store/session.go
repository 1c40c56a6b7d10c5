package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain/session"
)

// SessionStore is the volatile store for in-flight lesson sessions,
// keyed by (user, lesson).
//
// Implementations must guarantee at most one in-flight session per key
// and must serialize concurrent operations on the same key, so that
// SubmitAnswer calls are never interleaved on the same aggregate. The
// aggregate itself performs no locking.
type SessionStore interface {
	// Save persists the session for the user, replacing any existing
	// session for the same (user, lesson) pair.
	Save(ctx context.Context, userID uuid.UUID, sess *session.LessonSession) error

	// FindByUserAndLesson retrieves the in-flight session for the pair.
	// Returns ErrSessionNotFound if none exists.
	FindByUserAndLesson(ctx context.Context, userID, lessonID uuid.UUID) (*session.LessonSession, error)

	// Delete removes the session for the pair. Deleting a missing session
	// is not an error: terminal cleanup must be idempotent.
	Delete(ctx context.Context, userID, lessonID uuid.UUID) error
}
