package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

func TestEnhancePassesThroughNonRemoteErrors(t *testing.T) {
	enhancer := NewErrorEnhancer()
	err := errors.New("dial tcp: connection refused")

	assert.Equal(t, err.Error(), enhancer.Enhance(err))
}

func TestEnhancePassesThroughNonValidationRemoteErrors(t *testing.T) {
	enhancer := NewErrorEnhancer()
	err := &domain.RemoteError{StatusCode: 401, Message: "invalid token"}

	got := enhancer.Enhance(err)

	assert.Equal(t, err.Error(), got)
	assert.NotContains(t, got, "validation error")
}

func TestEnhanceValidationErrorKeepsOriginalVerbatim(t *testing.T) {
	enhancer := NewErrorEnhancer()
	err := &domain.RemoteError{
		StatusCode:  422,
		Message:     "invalid data",
		FieldErrors: []string{"positions[0].text: This value should not be blank."},
	}

	got := enhancer.Enhance(err)

	assert.Contains(t, got, "validation error (HTTP 422)")
	assert.Contains(t, got, err.Error(), "original error text survives enhancement")
	assert.Contains(t, got, "positions[0].text: This value should not be blank.")
}

func TestEnhanceAddsFieldHints(t *testing.T) {
	enhancer := NewErrorEnhancer()
	tests := []struct {
		name     string
		err      *domain.RemoteError
		wantHint string
	}{
		{
			name:     "missing position text",
			err:      &domain.RemoteError{StatusCode: 422, FieldErrors: []string{"text is required"}},
			wantHint: "'text' describing the line item",
		},
		{
			name:     "bad contact reference",
			err:      &domain.RemoteError{StatusCode: 422, Message: "contact_id does not exist"},
			wantHint: "search_contacts",
		},
		{
			name:     "inactive tax",
			err:      &domain.RemoteError{StatusCode: 422, FieldErrors: []string{"tax_id is invalid"}},
			wantHint: "list_taxes",
		},
		{
			name:     "bad duration format",
			err:      &domain.RemoteError{StatusCode: 422, Message: "duration has an invalid format"},
			wantHint: "HH:MM",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enhancer.Enhance(tt.err)
			assert.Contains(t, got, "Hints:")
			assert.Contains(t, got, tt.wantHint)
		})
	}
}

func TestEnhanceNoHintsForUnknownFields(t *testing.T) {
	enhancer := NewErrorEnhancer()
	err := &domain.RemoteError{StatusCode: 422, Message: "some obscure problem"}

	got := enhancer.Enhance(err)

	assert.NotContains(t, got, "Hints:")
	assert.Contains(t, got, "Original error: "+err.Error())
}

func TestEnhanceWrappedRemoteError(t *testing.T) {
	enhancer := NewErrorEnhancer()
	remote := &domain.RemoteError{StatusCode: 422, Message: "invalid data"}
	err := fmt.Errorf("failed to create invoice: %w", remote)

	got := enhancer.Enhance(err)

	assert.Contains(t, got, "validation error (HTTP 422)")
	assert.Contains(t, got, "failed to create invoice")
}
