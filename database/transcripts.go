package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Turn is one completed question/answer exchange. Turns are append-only audit
// records and are never fed back into prompts.
type Turn struct {
	ID        uuid.UUID
	Question  string
	Reply     string
	Outcome   string
	Provider  string
	CreatedAt time.Time
}

func NewTurn(question, reply, outcome, provider string) Turn {
	return Turn{
		ID:        uuid.New(),
		Question:  question,
		Reply:     reply,
		Outcome:   outcome,
		Provider:  provider,
		CreatedAt: time.Now().UTC(),
	}
}

type TranscriptStore struct {
	pool *pgxpool.Pool
}

func NewTranscriptStore(pool *pgxpool.Pool) *TranscriptStore {
	return &TranscriptStore{pool: pool}
}

func (s *TranscriptStore) Save(ctx context.Context, turn Turn) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("transcript store is not configured")
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO chat_turns (id, question, reply, outcome, provider, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		turn.ID, turn.Question, turn.Reply, turn.Outcome, turn.Provider, turn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat turn: %w", err)
	}

	return nil
}
