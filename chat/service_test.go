package chat

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/abhishekkumawat-47/bajaj-chatbot/docstore"
	"github.com/abhishekkumawat-47/bajaj-chatbot/llm"
)

type stubSource struct {
	docs []docstore.Document
	err  error
}

func (s *stubSource) Load(ctx context.Context) ([]docstore.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

var _ DocumentSource = (*stubSource)(nil)

type stubLLM struct {
	answer string
	err    error
	got    []llm.Message
}

func (s *stubLLM) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	s.got = messages
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

var _ llm.Client = (*stubLLM)(nil)

func newTestService(docs DocumentSource, client llm.Client) *Service {
	return NewService(docs, client, log.New(io.Discard, "", 0))
}

func TestAnswerPassesThroughProviderText(t *testing.T) {
	provider := &stubLLM{answer: "File the claim within 30 days."}
	svc := newTestService(&stubSource{docs: []docstore.Document{
		{Name: "claims.txt", Content: "Claims must be filed within 30 days."},
	}}, provider)

	resp, err := svc.Answer(context.Background(), "What is the claim process?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Reply != "File the claim within 30 days." {
		t.Fatalf("unexpected reply: %q", resp.Reply)
	}
	if resp.Outcome != OutcomeAnswered {
		t.Fatalf("unexpected outcome: %q", resp.Outcome)
	}

	if len(provider.got) != 1 {
		t.Fatalf("expected 1 message sent to provider, got %d", len(provider.got))
	}
	prompt := provider.got[0].Content
	if provider.got[0].Role != llm.RoleUser {
		t.Fatalf("expected user role, got %q", provider.got[0].Role)
	}
	if !strings.Contains(prompt, "Document 1:\nClaims must be filed within 30 days.") {
		t.Fatalf("prompt missing document block:\n%s", prompt)
	}
	if !strings.Contains(prompt, "User Question: What is the claim process?") {
		t.Fatalf("prompt missing question:\n%s", prompt)
	}
}

func TestAnswerRejectsBlankQuestion(t *testing.T) {
	svc := newTestService(&stubSource{}, &stubLLM{})
	if _, err := svc.Answer(context.Background(), "   "); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestAnswerWrapsLoaderFailure(t *testing.T) {
	svc := newTestService(&stubSource{err: errors.New("permission denied")}, &stubLLM{})
	_, err := svc.Answer(context.Background(), "question")
	if !errors.Is(err, ErrDocumentAccess) {
		t.Fatalf("expected ErrDocumentAccess, got %v", err)
	}
	if errors.Is(err, ErrProviderUnavailable) {
		t.Fatal("document failure must not look like a provider failure")
	}
}

func TestAnswerWrapsProviderTransportFailure(t *testing.T) {
	svc := newTestService(&stubSource{}, &stubLLM{err: errors.New("connection refused")})
	_, err := svc.Answer(context.Background(), "question")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestAnswerDowngradesNoAnswerToFallback(t *testing.T) {
	svc := newTestService(&stubSource{}, &stubLLM{err: llm.ErrNoAnswer})

	resp, err := svc.Answer(context.Background(), "question")
	if err != nil {
		t.Fatalf("no-answer must not surface as an error, got %v", err)
	}
	if resp.Reply != FallbackAnswer {
		t.Fatalf("expected fallback answer, got %q", resp.Reply)
	}
	if resp.Outcome != OutcomeFallback {
		t.Fatalf("unexpected outcome: %q", resp.Outcome)
	}
}

func TestAnswerTreatsBlankAnswerAsFallback(t *testing.T) {
	svc := newTestService(&stubSource{}, &stubLLM{answer: "  \n "})

	resp, err := svc.Answer(context.Background(), "question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reply != FallbackAnswer || resp.Outcome != OutcomeFallback {
		t.Fatalf("expected fallback response, got %+v", resp)
	}
}

func TestAnswerWorksWithEmptyDocumentSet(t *testing.T) {
	provider := &stubLLM{answer: FallbackAnswer}
	svc := newTestService(&stubSource{}, provider)

	resp, err := svc.Answer(context.Background(), "anything covered?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Reply != FallbackAnswer {
		t.Fatalf("unexpected reply: %q", resp.Reply)
	}
	if !strings.Contains(provider.got[0].Content, "Documents:") {
		t.Fatal("prompt should still carry the documents section")
	}
}

func TestAnswerBuildsIdenticalPromptsForRepeatQuestions(t *testing.T) {
	provider := &stubLLM{answer: "ok"}
	source := &stubSource{docs: []docstore.Document{{Content: "stable"}}}
	svc := newTestService(source, provider)

	if _, err := svc.Answer(context.Background(), "same question"); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	first := provider.got[0].Content

	if _, err := svc.Answer(context.Background(), "same question"); err != nil {
		t.Fatalf("second answer: %v", err)
	}
	second := provider.got[0].Content

	if first != second {
		t.Fatal("expected byte-identical prompts across identical requests")
	}
}
