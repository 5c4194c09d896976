package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrTimeout     = errors.New("request timed out")
)

// Error is a backend rejection: a non-2xx response with whatever
// human-readable message could be extracted from its body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed: %s", http.StatusText(e.Status))
}

// errorBody covers the error shapes the backend is known to produce:
// a flat message/detail string, a list of field-level validation errors,
// or a FastAPI-style detail list.
type errorBody struct {
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
	Errors  []fieldError    `json:"errors"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Loc     []any  `json:"loc"`
	Msg     string `json:"msg"`
}

func (f fieldError) text() string {
	msg := f.Message
	if msg == "" {
		msg = f.Msg
	}
	field := f.Field
	if field == "" && len(f.Loc) > 0 {
		field = fmt.Sprint(f.Loc[len(f.Loc)-1])
	}
	if field != "" && msg != "" {
		return field + ": " + msg
	}
	return msg
}

// extractMessage pulls a human-readable error message out of a structured
// error body. Field-level validation errors are joined into one string.
// Returns "" when the body has no recognizable shape.
func extractMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}

	if eb.Message != "" {
		return eb.Message
	}

	if len(eb.Errors) > 0 {
		return joinFieldErrors(eb.Errors)
	}

	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			return s
		}
		var fes []fieldError
		if err := json.Unmarshal(eb.Detail, &fes); err == nil {
			return joinFieldErrors(fes)
		}
	}

	return ""
}

func joinFieldErrors(fes []fieldError) string {
	parts := make([]string, 0, len(fes))
	for _, fe := range fes {
		if t := fe.text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "; ")
}
