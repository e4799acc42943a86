package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/abhishekkumawat-47/bajaj-chatbot/docstore"
	"github.com/abhishekkumawat-47/bajaj-chatbot/llm"
)

// DocumentSource yields the reference documents for one request.
type DocumentSource interface {
	Load(ctx context.Context) ([]docstore.Document, error)
}

// Service drives the load -> assemble -> generate pipeline for a single
// question. It holds no per-request state, so one instance serves concurrent
// requests.
type Service struct {
	docs   DocumentSource
	llm    llm.Client
	logger *log.Logger
}

func NewService(docs DocumentSource, llmClient llm.Client, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		docs:   docs,
		llm:    llmClient,
		logger: logger,
	}
}

// Answer resolves one user question against the current document set.
// Provider responses that carry no usable text become the fixed fallback reply
// rather than an error; loader and transport failures surface as wrapped
// ErrDocumentAccess / ErrProviderUnavailable.
func (s *Service) Answer(ctx context.Context, question string) (Response, error) {
	if strings.TrimSpace(question) == "" {
		return Response{}, ErrEmptyQuestion
	}
	if s.docs == nil {
		return Response{}, fmt.Errorf("document source is not configured")
	}
	if s.llm == nil {
		return Response{}, fmt.Errorf("llm client is not configured")
	}

	docs, err := s.docs.Load(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrDocumentAccess, err)
	}
	if len(docs) == 0 {
		s.logger.Printf("no reference documents found, answer will not be grounded")
	}

	prompt := BuildPrompt(docs, question)

	answer, err := s.llm.Generate(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
	if err != nil {
		if errors.Is(err, llm.ErrNoAnswer) {
			s.logger.Printf("provider returned no answer, substituting fallback: %v", err)
			return Response{Reply: FallbackAnswer, Outcome: OutcomeFallback}, nil
		}
		return Response{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Response{Reply: FallbackAnswer, Outcome: OutcomeFallback}, nil
	}

	return Response{Reply: answer, Outcome: OutcomeAnswered}, nil
}
