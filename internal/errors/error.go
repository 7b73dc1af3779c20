package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrMergeNotSupported = errors.New("cart merge on login is not supported by the commerce api")
	ErrEmptyBaseUrl      = errors.New("missing commerce api base url")
	ErrNoCart            = errors.New("no cart has been fetched yet")
)

// Kind classifies every failed intent per the client error taxonomy.
type Kind int

const (
	KindTransport Kind = iota
	KindValidation
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// IntentError carries a display-ready message for the view layer next to the
// underlying cause. Message is the server-provided message when one exists,
// otherwise the per-operation fallback.
type IntentError struct {
	Err     error
	Message string
	Kind    Kind
}

func (e *IntentError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *IntentError) Unwrap() error {
	return e.Err
}

func NewIntentError(kind Kind, message string, err error) *IntentError {
	return &IntentError{Kind: kind, Message: message, Err: err}
}

// DisplayMessage resolves err to something the view can render. A non
// IntentError falls back to the operation fallback message.
func DisplayMessage(err error, fallback string) string {
	intentErr := &IntentError{}
	if errors.As(err, &intentErr) && intentErr.Message != "" {
		return intentErr.Message
	}
	return fallback
}

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
