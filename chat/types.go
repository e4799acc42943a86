package chat

import "errors"

// FallbackAnswer is returned whenever the provider gives back nothing the
// documents can ground.
const FallbackAnswer = "I'm not sure based on the provided documents."

type Outcome string

const (
	// OutcomeAnswered means the provider produced grounded answer text.
	OutcomeAnswered Outcome = "answered"
	// OutcomeFallback means the provider response carried no usable text and
	// the fixed fallback sentence was substituted.
	OutcomeFallback Outcome = "fallback"
)

type Response struct {
	Reply   string
	Outcome Outcome
}

var (
	// ErrEmptyQuestion rejects blank questions before any work is done.
	ErrEmptyQuestion = errors.New("question cannot be empty")
	// ErrDocumentAccess covers a missing or unreadable documents directory.
	ErrDocumentAccess = errors.New("reference documents unavailable")
	// ErrProviderUnavailable covers network failures, timeouts, and non-2xx
	// responses from the answer provider.
	ErrProviderUnavailable = errors.New("answer provider unreachable")
)
