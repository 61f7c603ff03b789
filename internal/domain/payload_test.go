package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadHasDistinguishesAbsentFromZero(t *testing.T) {
	p := NewPayload(map[string]any{
		"is_stock":   false,
		"unit_price": 0,
		"title":      "",
	})

	assert.True(t, p.Has("is_stock"))
	assert.True(t, p.Has("unit_price"))
	assert.True(t, p.Has("title"))
	assert.False(t, p.Has("user_id"))
}

func TestPayloadCloneIsIndependent(t *testing.T) {
	original := map[string]any{
		"contact_id": 5,
		"positions": []any{
			map[string]any{"text": "Consulting"},
		},
	}
	p := NewPayload(original)

	clone := p.Clone()
	clone.Set("user_id", 1)
	pos, ok := clone.Get("positions")
	require.True(t, ok)
	pos.([]any)[0].(map[string]any)["amount"] = 1

	assert.False(t, p.Has("user_id"))
	assert.NotContains(t, original["positions"].([]any)[0], "amount")
}

func TestPayloadClonePreservesPositionOrder(t *testing.T) {
	p := NewPayload(map[string]any{
		"positions": []any{
			map[string]any{"text": "first"},
			map[string]any{"text": "second"},
			map[string]any{"text": "third"},
		},
	})

	raw, ok := p.Clone().Get("positions")
	require.True(t, ok)
	positions := raw.([]any)
	require.Len(t, positions, 3)
	assert.Equal(t, "first", positions[0].(map[string]any)["text"])
	assert.Equal(t, "second", positions[1].(map[string]any)["text"])
	assert.Equal(t, "third", positions[2].(map[string]any)["text"])
}

func TestNewPayloadNilMap(t *testing.T) {
	p := NewPayload(nil)
	p.Set("user_id", 1)
	assert.Equal(t, 1, p.Len())
}
