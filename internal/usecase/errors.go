package usecase

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by read operations for an unknown movie session.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput wraps request values that fail to parse.
var ErrInvalidInput = errors.New("invalid input")

type ErrorKind string

const (
	KindEmpty          ErrorKind = "empty"
	KindMalformed      ErrorKind = "malformed"
	KindOutOfBounds    ErrorKind = "out_of_bounds"
	KindDuplicates     ErrorKind = "duplicates"
	KindUnknownSession ErrorKind = "unknown_session"
	KindTaken          ErrorKind = "taken"
)

// FieldIssue carries the per-field messages of one ticket request,
// identified by its index in the submitted list.
type FieldIssue struct {
	Index  int               `json:"index"`
	Fields map[string]string `json:"fields"`
}

type SeatRef struct {
	MovieSession int64 `json:"movie_session"`
	Row          int   `json:"row"`
	Seat         int   `json:"seat"`
}

// ValidationError rejects a whole order request. Depending on Kind one of
// Issues, Seats or SessionIDs lists what was wrong.
type ValidationError struct {
	Kind       ErrorKind
	Issues     []FieldIssue
	Seats      []SeatRef
	SessionIDs []int64
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindEmpty:
		return "at least one ticket is required"
	case KindMalformed:
		return fmt.Sprintf("%d ticket request(s) are malformed", len(e.Issues))
	case KindOutOfBounds:
		return fmt.Sprintf("%d ticket request(s) are outside the cinema hall", len(e.Issues))
	case KindDuplicates:
		return fmt.Sprintf("%d seat(s) requested more than once", len(e.Seats))
	case KindUnknownSession:
		return fmt.Sprintf("movie session(s) %v do not exist", e.SessionIDs)
	case KindTaken:
		return fmt.Sprintf("%d seat(s) are already taken", len(e.Seats))
	default:
		return "invalid order request"
	}
}

// Details is the structured payload reported to the client.
func (e *ValidationError) Details() map[string]any {
	details := map[string]any{"kind": e.Kind}
	switch {
	case len(e.Issues) > 0:
		details["tickets"] = e.Issues
	case len(e.Seats) > 0:
		details["seats"] = e.Seats
	case len(e.SessionIDs) > 0:
		details["movie_sessions"] = e.SessionIDs
	}
	return details
}
