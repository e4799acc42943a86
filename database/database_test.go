package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestEnsureTranscriptSchemaRejectsNilPool(t *testing.T) {
	if err := EnsureTranscriptSchema(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil pool")
	}
}

func TestTranscriptStoreSaveRejectsNilPool(t *testing.T) {
	store := NewTranscriptStore(nil)
	if err := store.Save(context.Background(), NewTurn("q", "a", "answered", "gemini")); err == nil {
		t.Fatal("expected error when pool is not configured")
	}
}

func TestNewTurnPopulatesIdentity(t *testing.T) {
	turn := NewTurn("question", "reply", "answered", "gemini")

	if turn.ID == uuid.Nil {
		t.Fatal("expected a turn id")
	}
	if turn.CreatedAt.IsZero() {
		t.Fatal("expected a creation timestamp")
	}
	if turn.Question != "question" || turn.Reply != "reply" {
		t.Fatalf("unexpected turn fields: %+v", turn)
	}
}
