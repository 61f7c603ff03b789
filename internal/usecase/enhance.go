package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

// fieldHints maps commonly-missing fields to a remediation hint. A hint is
// added when the field name appears anywhere in the remote error detail.
var fieldHints = []struct {
	field string
	hint  string
}{
	{"text", "every position needs a 'text' describing the line item, e.g. positions=[{\"text\": \"Consulting\"}]"},
	{"positions", "invoices need at least one position: positions=[{\"type\": \"KbPositionCustom\", \"text\": \"Item description\", \"amount\": 1, \"unit_price\": 10.0}]"},
	{"contact_id", "pass the id of an existing contact (use search_contacts to find one)"},
	{"name_1", "name_1 is the company name or first name and cannot be auto-filled"},
	{"intern_name", "intern_name is the internal article name and cannot be auto-filled"},
	{"tax_id", "use list_taxes to pick a valid tax id; only active taxes are accepted"},
	{"user_id", "user_id must reference an existing Bexio user (default is 1)"},
	{"duration", "duration is a HH:MM string, e.g. \"02:30\" for 2.5 hours"},
	{"date", "dates use YYYY-MM-DD format"},
}

// ErrorEnhancer rewrites remote validation failures into actionable text. It
// never hides information: the original error is always included verbatim,
// and anything that is not a recognizable validation failure passes through
// unchanged.
type ErrorEnhancer struct{}

// NewErrorEnhancer creates an enhancer.
func NewErrorEnhancer() *ErrorEnhancer {
	return &ErrorEnhancer{}
}

// Enhance returns the user-facing message for an operation failure.
func (e *ErrorEnhancer) Enhance(err error) string {
	var remote *domain.RemoteError
	if !errors.As(err, &remote) || !remote.IsValidation() {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString("Bexio rejected the request with a validation error (HTTP 422).\n")

	if len(remote.FieldErrors) > 0 {
		b.WriteString("Problem fields:\n")
		for _, fe := range remote.FieldErrors {
			fmt.Fprintf(&b, "  - %s\n", fe)
		}
	}

	if hints := matchHints(remote); len(hints) > 0 {
		b.WriteString("Hints:\n")
		for _, h := range hints {
			fmt.Fprintf(&b, "  - %s\n", h)
		}
	}

	b.WriteString("Original error: ")
	b.WriteString(err.Error())
	return b.String()
}

func matchHints(remote *domain.RemoteError) []string {
	detail := strings.ToLower(remote.Message + " " + strings.Join(remote.FieldErrors, " "))
	var hints []string
	for _, fh := range fieldHints {
		if strings.Contains(detail, fh.field) {
			hints = append(hints, fh.hint)
		}
	}
	return hints
}
