package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/store"
)

// PostgresSettlementStore implements store.SettlementStore by running the
// completion insert and the progress upsert in one transaction.
type PostgresSettlementStore struct {
	db          *sql.DB
	completions *PostgresLessonCompletionStore
	progress    *PostgresUserProgressStore
	logger      *slog.Logger
}

// NewPostgresSettlementStore creates a settlement store over the given
// component stores. The database connection must be the one the component
// stores were built on.
func NewPostgresSettlementStore(
	db *sql.DB,
	completions *PostgresLessonCompletionStore,
	progress *PostgresUserProgressStore,
	logger *slog.Logger,
) *PostgresSettlementStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if completions == nil || progress == nil {
		panic("component stores cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSettlementStore{
		db:          db,
		completions: completions,
		progress:    progress,
		logger:      logger.With(slog.String("component", "settlement_store")),
	}
}

// Ensure PostgresSettlementStore implements store.SettlementStore interface
var _ store.SettlementStore = (*PostgresSettlementStore)(nil)

// SaveCompletionAndProgress implements store.SettlementStore.
func (s *PostgresSettlementStore) SaveCompletionAndProgress(
	ctx context.Context,
	completion *domain.LessonCompletion,
	progress *domain.UserProgress,
) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.completions.WithTx(tx).Save(ctx, completion); err != nil {
			return fmt.Errorf("failed to save completion: %w", err)
		}
		if err := s.progress.WithTx(tx).Save(ctx, progress); err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}
		return nil
	})
}
