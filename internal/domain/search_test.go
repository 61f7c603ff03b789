package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperator(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      Operator
		supported bool
	}{
		{name: "equals", raw: "=", want: OpEquals, supported: true},
		{name: "like", raw: "like", want: OpLike, supported: true},
		{name: "like uppercase", raw: "LIKE", want: OpLike, supported: true},
		{name: "like padded", raw: "  like ", want: OpLike, supported: true},
		{name: "not equal unsupported", raw: "!=", want: Operator("!="), supported: false},
		{name: "greater than unsupported", raw: ">", want: Operator(">"), supported: false},
		{name: "empty unsupported", raw: "", want: Operator(""), supported: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseOperator(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.supported, ok)
		})
	}
}

func TestMatches(t *testing.T) {
	record := Record{
		"id":     float64(7),
		"name_1": "Acme Corp",
		"mail":   "info@acme.ch",
		"active": true,
		"contact_address": map[string]any{
			"city": "Zurich",
		},
	}

	tests := []struct {
		name       string
		conditions []Condition
		want       bool
	}{
		{
			name:       "equality casts numbers to strings",
			conditions: []Condition{{Field: "id", Value: "7", Op: "="}},
			want:       true,
		},
		{
			name:       "equality on native number value",
			conditions: []Condition{{Field: "id", Value: 7, Op: "="}},
			want:       true,
		},
		{
			name:       "like is case-insensitive substring",
			conditions: []Condition{{Field: "name_1", Value: "acme", Op: "like"}},
			want:       true,
		},
		{
			name:       "like no match",
			conditions: []Condition{{Field: "name_1", Value: "globex", Op: "like"}},
			want:       false,
		},
		{
			name:       "empty operator defaults to equality",
			conditions: []Condition{{Field: "active", Value: "true"}},
			want:       true,
		},
		{
			name:       "dotted path into nested object",
			conditions: []Condition{{Field: "contact_address.city", Value: "zurich", Op: "like"}},
			want:       true,
		},
		{
			name:       "dotted path through missing key",
			conditions: []Condition{{Field: "contact_address.street.name", Value: "x", Op: "like"}},
			want:       false,
		},
		{
			name:       "missing field never equals a value",
			conditions: []Condition{{Field: "nope", Value: "7", Op: "="}},
			want:       false,
		},
		{
			name:       "unknown operator fails closed",
			conditions: []Condition{{Field: "id", Value: "7", Op: ">"}},
			want:       false,
		},
		{
			name:       "empty field fails closed",
			conditions: []Condition{{Field: "", Value: "7", Op: "="}},
			want:       false,
		},
		{
			name:       "nil expected never matches like",
			conditions: []Condition{{Field: "name_1", Value: nil, Op: "like"}},
			want:       false,
		},
		{
			name: "all conditions must hold",
			conditions: []Condition{
				{Field: "name_1", Value: "acme", Op: "like"},
				{Field: "id", Value: "8", Op: "="},
			},
			want: false,
		},
		{
			name: "conjunction of passing conditions",
			conditions: []Condition{
				{Field: "name_1", Value: "acme", Op: "like"},
				{Field: "mail", Value: "info@acme.ch", Op: "="},
			},
			want: true,
		},
		{
			name:       "no conditions matches everything",
			conditions: nil,
			want:       true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(record, tt.conditions))
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	records := []Record{
		{"id": float64(1), "name_1": "Acme"},
		{"id": float64(2), "name_1": "Globex"},
		{"id": float64(3), "name_1": "Acme Schweiz"},
	}

	got := Filter(records, []Condition{{Field: "name_1", Value: "acme", Op: "like"}})

	require.Len(t, got, 2)
	assert.Equal(t, float64(1), got[0]["id"])
	assert.Equal(t, float64(3), got[1]["id"])
}

func TestFilterEmptyResultIsNotNil(t *testing.T) {
	got := Filter([]Record{{"id": 1}}, []Condition{{Field: "id", Value: "2", Op: "="}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
