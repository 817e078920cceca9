// Package recognize defines the boundary to the remote sign-recognition
// service. The engine hands off one encoded frame per capture event and
// consumes the result asynchronously; this package owns nothing beyond
// that exchange.
package recognize

import "context"

// Scope selects what the remote service should recognize.
type Scope string

const (
	ScopeWord     Scope = "WORD"
	ScopeSentence Scope = "SENTENCE"
)

// Request is one capture handoff: an opaque encoded image plus the
// recognition scope and a language hint.
type Request struct {
	Image    []byte // encoded JPEG
	Scope    Scope
	Language string
}

// Result is the remote service's answer.
type Result struct {
	Text string
}

// Recognizer performs remote sign recognition on a captured frame.
type Recognizer interface {
	Recognize(ctx context.Context, req Request) (*Result, error)
}
