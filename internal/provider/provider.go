package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/mailterm/internal/model"
)

// ErrorKind classifies a fetch failure.
type ErrorKind int

const (
	// KindUnreachable means the server could not be reached.
	KindUnreachable ErrorKind = iota

	// KindAuth means the server rejected the credentials.
	KindAuth

	// KindMalformed means the server response could not be parsed.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "authentication failed"
	case KindMalformed:
		return "malformed response"
	default:
		return "server unreachable"
	}
}

// FetchError is the only error kind originating in the mail domain. It
// is never fatal: a failed fetch leaves prior data intact and the UI
// interactive.
type FetchError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether err (or any error in its chain) is a
// FetchError with authentication kind.
func IsAuthError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindAuth
}

// Provider is the opaque mail source. Fetch returns the complete current
// mailbox snapshot or an error; it is the only operation in the system
// that suspends. Mock and real implementations are interchangeable.
type Provider interface {
	Fetch(ctx context.Context) ([]model.Message, error)
}
