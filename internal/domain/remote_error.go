package domain

import (
	"fmt"
	"net/http"
	"strings"
)

// RemoteError is a non-2xx response from the Bexio API, carrying whatever
// structure the error body had. It is created by the transport on failure and
// consumed once, either by the search resolver (to decide on fallback) or by
// the error enhancer at the tool boundary.
type RemoteError struct {
	StatusCode  int
	Message     string
	FieldErrors []string
	Body        string
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bexio API error - HTTP %d", e.StatusCode)
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	} else if e.Body != "" {
		b.WriteString(": " + e.Body)
	}
	if len(e.FieldErrors) > 0 {
		b.WriteString(" | errors: " + strings.Join(e.FieldErrors, "; "))
	}
	return b.String()
}

// IsValidation reports whether the remote rejected the payload itself rather
// than the request as a whole.
func (e *RemoteError) IsValidation() bool {
	return e.StatusCode == http.StatusUnprocessableEntity
}
