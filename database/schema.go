package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

func EnsureTranscriptSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("postgres pool is not configured")
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS chat_turns (
			id UUID PRIMARY KEY,
			question TEXT NOT NULL,
			reply TEXT NOT NULL,
			outcome TEXT NOT NULL,
			provider TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS idx_chat_turns_created ON chat_turns(created_at)",
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema statement: %w", err)
		}
	}

	return nil
}
