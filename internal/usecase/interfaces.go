package usecase

import (
	"context"
	"fmt"

	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

// RecordReader is the slice of the remote API the completion engine needs for
// its LOOKUP and EXISTING fill strategies. Both are single bounded reads; the
// engine never retries them.
type RecordReader interface {
	// Fetch retrieves the current state of one record.
	Fetch(ctx context.Context, kind domain.Kind, id int) (domain.Record, error)
	// ListActiveTaxes returns the active taxes in API order.
	ListActiveTaxes(ctx context.Context) ([]domain.Record, error)
}

// SearchClient is the slice of the remote API the search resolver needs.
type SearchClient interface {
	// NativeSearch posts a search body to the kind's /search endpoint.
	NativeSearch(ctx context.Context, kind domain.Kind, body any) ([]domain.Record, error)
	// ListPage fetches the first page of up to limit records.
	ListPage(ctx context.Context, kind domain.Kind, limit int) ([]domain.Record, error)
}

// MissingFieldError reports a required field that the caller did not supply
// and that no fill strategy can provide.
type MissingFieldError struct {
	Kind  domain.Kind
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q for %s", e.Field, e.Kind)
}
