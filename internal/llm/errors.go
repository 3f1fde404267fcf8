package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorKind classifies provider failures for the retry policy.
type ErrorKind int

const (
	// KindUnavailable covers network failures and 5xx answers.
	KindUnavailable ErrorKind = iota
	KindRateLimit
	// KindInvalidResponse means the output did not match the schema.
	KindInvalidResponse
	// KindTruncated means structured output hit MaxTokens.
	KindTruncated
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimit:
		return "rate limited"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "truncated"
	default:
		return "provider unavailable"
	}
}

// Error is returned by every provider.
type Error struct {
	Kind ErrorKind

	// RetryAfter is the wait the provider asked for, if any.
	RetryAfter time.Duration

	// Content is the offending output for invalid or truncated responses.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "llm: " + e.Kind.String()
	}
	return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// fromStatus maps an SDK error carrying an HTTP status onto an *Error.
// Anything that is not a 429 is treated as the provider being unavailable.
func fromStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimit, Err: err}
	}
	return &Error{Kind: KindUnavailable, Err: err}
}
