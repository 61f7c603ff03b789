package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

type fakeReader struct {
	record     domain.Record
	fetchErr   error
	fetchCalls int
	taxes      []domain.Record
	taxErr     error
}

func (f *fakeReader) Fetch(ctx context.Context, kind domain.Kind, id int) (domain.Record, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.record, nil
}

func (f *fakeReader) ListActiveTaxes(ctx context.Context) ([]domain.Record, error) {
	if f.taxErr != nil {
		return nil, f.taxErr
	}
	return f.taxes, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(reader *fakeReader) *CompletionEngine {
	return NewCompletionEngine(reader, StandardDefaults(), testLogger())
}

func TestCompleteContactCreateFillsDefaults(t *testing.T) {
	engine := newTestEngine(&fakeReader{})

	got, err := engine.Complete(context.Background(), domain.Operation{
		Kind:    domain.KindContact,
		Action:  domain.ActionCreate,
		Payload: domain.NewPayload(map[string]any{"name_1": "Acme Corp"}),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name_1":          "Acme Corp",
		"contact_type_id": 2,
		"user_id":         1,
		"owner_id":        1,
	}, got.Raw())
}

func TestCompleteContactCreateMissingName(t *testing.T) {
	engine := newTestEngine(&fakeReader{})

	_, err := engine.Complete(context.Background(), domain.Operation{
		Kind:    domain.KindContact,
		Action:  domain.ActionCreate,
		Payload: domain.NewPayload(map[string]any{"mail": "info@acme.ch"}),
	})

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "name_1", missing.Field)
	assert.Equal(t, domain.KindContact, missing.Kind)
}

func TestCompleteContactEmailAlias(t *testing.T) {
	engine := newTestEngine(&fakeReader{})

	got, err := engine.Complete(context.Background(), domain.Operation{
		Kind:   domain.KindContact,
		Action: domain.ActionCreate,
		Payload: domain.NewPayload(map[string]any{
			"name_1": "Acme Corp",
			"email":  "info@acme.ch",
		}),
	})
	require.NoError(t, err)

	v, ok := got.Get("mail")
	require.True(t, ok)
	assert.Equal(t, "info@acme.ch", v)
	assert.False(t, got.Has("email"))
}

func TestCompleteContactEmailDoesNotOverwriteMail(t *testing.T) {
	engine := newTestEngine(&fakeReader{})

	got, err := engine.Complete(context.Background(), domain.Operation{
		Kind:   domain.KindContact,
		Action: domain.ActionCreate,
		Payload: domain.NewPayload(map[string]any{
			"name_1": "Acme Corp",
			"email":  "alias@acme.ch",
			"mail":   "real@acme.ch",
		}),
	})
	require.NoError(t, err)

	v, _ := got.Get("mail")
	assert.Equal(t, "real@acme.ch", v)
}

func TestCompletePreservesFalsyCallerValues(t *testing.T) {
	engine := newTestEngine(&fakeReader{})

	got, err := engine.Complete(context.Background(), domain.Operation{
		Kind:   domain.KindItem,
		Action: domain.ActionCreate,
		Payload: domain.NewPayload(map[string]any{
			"intern_name":    "Widget",
			"is_stock":       false,
			"delivery_price": 0,
			"currency_id":    0,
		}),
	})
	require.NoError(t, err)

	v, _ := got.Get("is_stock")
	assert.Equal(t, false, v)
	v, _ = got.Get("delivery_price")
	assert.Equal(t, 0, v)
	v, _ = got.Get("currency_id")
	assert.Equal(t, 0, v)
}

func TestCompleteDoesNotMutateCallerPayload(t *testing.T) {
	engine := newTestEngine(&fakeReader{})
	args := map[string]any{"name_1": "Acme Corp"}

	_, err := engine.Complete(context.Background(), domain.Operation{
		Kind:    domain.KindContact,
		Action:  domain.ActionCreate,
		Payload: domain.NewPayload(args),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"name_1": "Acme Corp"}, args)
}

func TestCompleteIsIdempotent(t *testing.T) {
	engine := newTestEngine(&fakeReader{taxes: []domain.Record{{"id": float64(3)}}})
	op := domain.Operation{
		Kind:   domain.KindInvoice,
		Action: domain.ActionCreate,
		Payload: domain.NewPayload(map[string]any{
			"contact_id": 5,
			"positions":  []any{map[string]any{"text": "Consulting"}},
		}),
	}

	once, err := engine.Complete(context.Background(), op)
	require.NoError(t, err)

	op.Payload = once
	twice, err := engine.Complete(context.Background(), op)
	require.NoError(t, err)

	assert.Equal(t, once.Raw(), twice.Raw())
}

func TestCompleteInvoiceRequiresPositions(t *testing.T) {
	engine := newTestEngine(&fakeReader{})
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "absent", payload: map[string]any{"contact_id": 5}},
		{name: "empty array", payload: map[string]any{"contact_id": 5, "positions": []any{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Complete(context.Background(), domain.Operation{
				Kind:    domain.KindInvoice,
				Action:  domain.ActionCreate,
				Payload: domain.NewPayload(tt.payload),
			})
			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, "positions", missing.Field)
		})
	}
}

func TestCompleteInvoicePositionDefaults(t *testing.T) {
	engine := newTestEngine(&fakeReader{taxes: []domain.Record{
		{"id": float64(3), "name": "UN77"},
		{"id": float64(9), "name": "UN81"},
	}})

	got, err := engine.Complete(context.Background(), domain.Operation{
		Kind:   domain.KindInvoice,
		Action: domain.ActionCreate,
		Payload: domain.NewPayload(map[string]any{
			"contact_id": 5,
			"positions": []any{
				map[string]any{"text": "Consulting"},
				map[string]any{"text": "Hosting", "unit_price": 25.0, "tax_id": 9},
			},
		}),
	})
	require.NoError(t, err)

	raw, _ := got.Get("positions")
	positions := raw.([]any)
	require.Len(t, positions, 2)

	first := positions[0].(map[string]any)
	assert.Equal(t, "KbPositionCustom", first["type"])
	assert.Equal(t, 1, first["amount"])
	assert.Equal(t, 0.0, first["unit_price"])
	assert.Equal(t, float64(3), first["tax_id"])

	second := positions[1].(map[string]any)
	assert.Equal(t, 25.0, second["unit_price"])
	assert.Equal(t, 9, second["tax_id"])

	v, _ := got.Get("user_id")
	assert.Equal(t, 1, v)
}

func TestCompleteInvoicePositionMissingText(t *testing.T) {
	engine := newTestEngine(&fakeReader{taxes: []domain.Record{{"id": float64(3)}}})

	_, err := engine.Complete(context.Background(), domain.Operation{
		Kind:   domain.KindInvoice,
		Action: domain.ActionCreate,
		Payload: domain.NewPayload(map[string]any{
			"contact_id": 5,
			"positions": []any{
				map[string]any{"text": "Consulting"},
				map[string]any{"unit_price": 25.0},
			},
		}),
	})

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "positions[1].text", missing.Field)
}

func TestCompleteTaxLookupFailureLeavesFieldAbsent(t *testing.T) {
	engine := newTestEngine(&fakeReader{taxErr: errors.New("boom")})

	got, err := engine.Complete(context.Background(), domain.Operation{
		Kind:   domain.KindInvoice,
		Action: domain.ActionCreate,
		Payload: domain.NewPayload(map[string]any{
			"contact_id": 5,
			"positions":  []any{map[string]any{"text": "Consulting"}},
		}),
	})
	require.NoError(t, err)

	raw, _ := got.Get("positions")
	pos := raw.([]any)[0].(map[string]any)
	assert.NotContains(t, pos, "tax_id")
}

func TestCompleteUpdatePreservesExistingFields(t *testing.T) {
	reader := &fakeReader{record: domain.Record{
		"name_1":          "Acme Corp",
		"contact_type_id": float64(1),
		"user_id":         float64(4),
		"owner_id":        float64(4),
		"nr":              "10001",
		"city":            "Zurich",
	}}
	engine := newTestEngine(reader)

	got, err := engine.Complete(context.Background(), domain.Operation{
		Kind:    domain.KindContact,
		Action:  domain.ActionUpdate,
		ID:      7,
		Payload: domain.NewPayload(map[string]any{"name_1": "Acme AG"}),
	})
	require.NoError(t, err)

	v, _ := got.Get("name_1")
	assert.Equal(t, "Acme AG", v, "caller value wins over existing")
	v, _ = got.Get("contact_type_id")
	assert.Equal(t, float64(1), v)
	v, _ = got.Get("nr")
	assert.Equal(t, "10001", v)
	assert.False(t, got.Has("city"), "only registered fields are copied")
	assert.Equal(t, 1, reader.fetchCalls)
}

func TestCompleteUpdateFetchFailureFallsBackToCallerFields(t *testing.T) {
	engine := newTestEngine(&fakeReader{fetchErr: errors.New("HTTP 500")})

	got, err := engine.Complete(context.Background(), domain.Operation{
		Kind:    domain.KindTimesheet,
		Action:  domain.ActionUpdate,
		ID:      42,
		Payload: domain.NewPayload(map[string]any{"duration": "02:30"}),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"duration": "02:30"}, got.Raw())
}

func TestCompleteUnknownKindPassesThrough(t *testing.T) {
	reader := &fakeReader{}
	engine := newTestEngine(reader)

	got, err := engine.Complete(context.Background(), domain.Operation{
		Kind:    domain.KindCurrency,
		Action:  domain.ActionCreate,
		Payload: domain.NewPayload(map[string]any{"name": "EUR", "round_factor": 0.05}),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"name": "EUR", "round_factor": 0.05}, got.Raw())
	assert.Zero(t, reader.fetchCalls)
}

func TestDefaultsApply(t *testing.T) {
	d := StandardDefaults()
	userID := 9
	currencyID := 2
	d.Apply(&userID, nil, nil, &currencyID)

	assert.Equal(t, 9, d.UserID)
	assert.Equal(t, 1, d.OwnerID)
	assert.Equal(t, 2, d.ContactTypeID)
	assert.Equal(t, 2, d.CurrencyID)
}

func TestCompleteUsesConfiguredDefaults(t *testing.T) {
	d := StandardDefaults()
	userID := 12
	d.Apply(&userID, nil, nil, nil)
	engine := NewCompletionEngine(&fakeReader{}, d, testLogger())

	got, err := engine.Complete(context.Background(), domain.Operation{
		Kind:    domain.KindProject,
		Action:  domain.ActionCreate,
		Payload: domain.NewPayload(map[string]any{"name": "Website", "contact_id": 5}),
	})
	require.NoError(t, err)

	v, _ := got.Get("user_id")
	assert.Equal(t, 12, v)
	v, _ = got.Get("pr_state_id")
	assert.Equal(t, 1, v)
	v, _ = got.Get("pr_project_type_id")
	assert.Equal(t, 1, v)
}
