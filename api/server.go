package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/abhishekkumawat-47/bajaj-chatbot/chat"
	"github.com/abhishekkumawat-47/bajaj-chatbot/config"
	"github.com/abhishekkumawat-47/bajaj-chatbot/database"
)

// Answerer resolves one user question into a reply.
type Answerer interface {
	Answer(ctx context.Context, question string) (chat.Response, error)
}

// DocumentLister names the reference documents currently visible to the loader.
type DocumentLister interface {
	Names(ctx context.Context) ([]string, error)
}

// TranscriptRecorder persists answered turns. Optional; a nil recorder
// disables transcripts.
type TranscriptRecorder interface {
	Save(ctx context.Context, turn database.Turn) error
}

// Server exposes the chat API the front end talks to.
type Server struct {
	svc         Answerer
	docs        DocumentLister
	transcripts TranscriptRecorder
	provider    string
	logger      *log.Logger
	handler     http.Handler
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type documentsResponse struct {
	Documents []string `json:"documents"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New constructs a Server. transcripts may be nil when no audit log is
// configured.
func New(svc Answerer, docs DocumentLister, transcripts TranscriptRecorder, provider string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		svc:         svc,
		docs:        docs,
		transcripts: transcripts,
		provider:    provider,
		logger:      logger,
	}
	s.handler = corsMiddleware(s.loggingMiddleware(s.routes()))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Printf("server shutdown: %v", err)
		}
	}()

	s.logger.Printf("chat API listening on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/documents", s.handleDocuments)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}

	s.writeJSON(w, http.StatusOK, messageResponse{Message: "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, http.MethodPost)
		return
	}

	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("message is required"))
		return
	}

	ctx := r.Context()

	resp, err := s.svc.Answer(ctx, req.Message)
	if err != nil {
		// Internal detail stays in the log; the client gets a short fixed
		// sentence and a status it can branch on.
		s.logger.Printf("chat failed: %v", err)
		switch {
		case errors.Is(err, chat.ErrEmptyQuestion):
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("message is required"))
		case errors.Is(err, chat.ErrDocumentAccess):
			s.writeJSON(w, http.StatusInternalServerError, chatResponse{Reply: "Error reading reference documents."})
		case errors.Is(err, chat.ErrProviderUnavailable):
			s.writeJSON(w, http.StatusInternalServerError, chatResponse{Reply: fmt.Sprintf("Error contacting %s.", providerLabel(s.provider))})
		default:
			s.writeJSON(w, http.StatusInternalServerError, chatResponse{Reply: "Something went wrong. Please try again."})
		}
		return
	}

	s.recordTurn(ctx, req.Message, resp)
	s.writeJSON(w, http.StatusOK, chatResponse{Reply: resp.Reply})
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, http.MethodGet)
		return
	}

	names, err := s.docs.Names(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("list documents: %w", err))
		return
	}

	s.writeJSON(w, http.StatusOK, documentsResponse{Documents: names})
}

func (s *Server) recordTurn(ctx context.Context, question string, resp chat.Response) {
	if s.transcripts == nil {
		return
	}

	turn := database.NewTurn(question, resp.Reply, string(resp.Outcome), s.provider)
	if err := s.transcripts.Save(ctx, turn); err != nil {
		s.logger.Printf("save chat turn %s: %v", turn.ID, err)
	}
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed, use %s", allowed))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Printf("api error (%d): %v", status, err)
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// corsMiddleware lets the separately hosted chat front end call the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func providerLabel(provider string) string {
	switch provider {
	case config.ProviderGemini:
		return "Gemini API"
	case config.ProviderOpenAI:
		return "OpenAI API"
	default:
		return "answer provider"
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}

	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON object")
	}

	return nil
}
