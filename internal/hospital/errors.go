package hospital

import (
	"errors"
	"net/http"

	"hospital-backend/internal/storage"
)

// Kind classifies service failures so handlers can pick a status code
// without inspecting message strings.
type Kind int

const (
	KindValidation Kind = iota + 1 // missing or malformed required fields
	KindReference                  // malformed id
	KindNotFound                   // referenced entity absent
	KindConflict                   // duplicate booking, email or admin
	KindAuth                       // bad credentials
	KindInternal
)

// Error is the structured error surfaced to handlers. Msg is what the
// client sees.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

func errf(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// wrapStore lifts storage sentinel errors into the taxonomy, using msg as
// the client-facing text for the expected cases.
func wrapStore(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrInvalidID):
		return &Error{Kind: KindReference, Msg: msg, Err: err}
	case errors.Is(err, storage.ErrNotFound):
		return &Error{Kind: KindNotFound, Msg: msg, Err: err}
	case errors.Is(err, storage.ErrDuplicate):
		return &Error{Kind: KindConflict, Msg: msg, Err: err}
	default:
		return &Error{Kind: KindInternal, Msg: "internal error", Err: err}
	}
}

// HTTPStatus maps an error to the conventional status code. Unclassified
// errors are treated as internal.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation, KindReference:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
