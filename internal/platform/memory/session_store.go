// Package memory provides the volatile in-memory session store. Lesson
// sessions are short-lived and per-process; they never reach the
// database.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain/session"
	"github.com/lingualoop/lingualoop-api/internal/store"
)

// sessionKey identifies one in-flight session.
type sessionKey struct {
	userID   uuid.UUID
	lessonID uuid.UUID
}

// SessionStore is an in-memory implementation of store.SessionStore.
//
// It holds snapshots rather than live aggregates, so concurrent readers
// never observe a session mid-mutation. The mutex serializes operations
// per store; together with the handler-level flow (one request mutates
// one (user, lesson) aggregate at a time) this satisfies the session
// store contract of never interleaving SubmitAnswer calls on the same
// aggregate.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[sessionKey]session.Snapshot
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[sessionKey]session.Snapshot),
	}
}

// Ensure SessionStore implements store.SessionStore interface
var _ store.SessionStore = (*SessionStore)(nil)

// Save implements store.SessionStore.Save, replacing any existing
// session for the same (user, lesson) pair.
func (s *SessionStore) Save(
	ctx context.Context,
	userID uuid.UUID,
	sess *session.LessonSession,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey{userID: userID, lessonID: sess.LessonID()}] = sess.Snapshot()
	return nil
}

// FindByUserAndLesson implements store.SessionStore.FindByUserAndLesson.
// Returns store.ErrSessionNotFound if no session exists for the pair.
func (s *SessionStore) FindByUserAndLesson(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) (*session.LessonSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	snap, ok := s.sessions[sessionKey{userID: userID, lessonID: lessonID}]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrSessionNotFound
	}

	return session.Restore(snap)
}

// Delete implements store.SessionStore.Delete. Deleting a missing
// session is a no-op.
func (s *SessionStore) Delete(ctx context.Context, userID, lessonID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey{userID: userID, lessonID: lessonID})
	return nil
}

// Len reports the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
