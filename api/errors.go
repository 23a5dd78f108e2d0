package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"library-portal/library"
)

const defaultMessage = "request failed"

// Error is a non-2xx reply from the backend.
type Error struct {
	StatusCode int
	// Message is safe to show to the user.
	Message string
	// Fields holds per-field validation messages, when the backend sent any.
	Fields    map[string]string
	RequestID string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// Is lets callers test status classes against the library sentinels.
func (e *Error) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return target == library.ErrNotLoggedIn
	case http.StatusForbidden:
		return target == library.ErrForbidden
	case http.StatusNotFound:
		return target == library.ErrNotFound
	}
	return false
}

type errorBody struct {
	Message     string            `json:"message"`
	Error       string            `json:"error"`
	FieldErrors map[string]string `json:"fieldErrors"`
}

// newError extracts a message from body: "message", then "error", then the
// raw text, then a default.
func newError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		e.Fields = parsed.FieldErrors
		switch {
		case parsed.Message != "":
			e.Message = parsed.Message
		case parsed.Error != "":
			e.Message = parsed.Error
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "<") {
		e.Message = text
	}

	if e.Message == "" {
		if text := http.StatusText(status); text != "" {
			e.Message = strings.ToLower(text)
		} else {
			e.Message = defaultMessage
		}
	}
	return e
}
