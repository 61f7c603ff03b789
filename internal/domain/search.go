package domain

import (
	"fmt"
	"strings"
)

// Operator is a search comparison understood by the client-side filter. The
// remote API accepts more (!=, >, is_null, ...), but only these two can be
// evaluated locally; everything else fails closed during fallback filtering.
type Operator string

const (
	OpEquals Operator = "="
	OpLike   Operator = "like"
)

// ParseOperator normalizes a raw criteria string. The boolean reports whether
// the operator is supported by the client-side filter; unsupported operators
// are still passed through verbatim to the remote search endpoint.
func ParseOperator(raw string) (Operator, bool) {
	switch Operator(strings.ToLower(strings.TrimSpace(raw))) {
	case OpEquals:
		return OpEquals, true
	case OpLike:
		return OpLike, true
	default:
		return Operator(raw), false
	}
}

// Condition is one search criterion. Field may be a dotted path into nested
// objects ("contact_address.city").
type Condition struct {
	Field string `json:"field"`
	Value any    `json:"value"`
	Op    string `json:"criteria"`
}

// matchFuncs is the closed dispatch table for local evaluation. Operators
// without an entry never match.
var matchFuncs = map[Operator]func(actual, expected any) bool{
	OpEquals: func(actual, expected any) bool {
		return stringify(actual) == stringify(expected)
	},
	OpLike: func(actual, expected any) bool {
		if expected == nil {
			return false
		}
		return strings.Contains(
			strings.ToLower(stringify(actual)),
			strings.ToLower(stringify(expected)),
		)
	},
}

// Matches reports whether the record satisfies every condition (logical AND).
// A condition with an empty field or an operator the filter cannot honor
// evaluates false.
func Matches(record Record, conditions []Condition) bool {
	for _, cond := range conditions {
		if cond.Field == "" {
			return false
		}
		op := Operator(cond.Op)
		if cond.Op == "" {
			op = OpEquals
		} else if parsed, ok := ParseOperator(cond.Op); ok {
			op = parsed
		}
		match, ok := matchFuncs[op]
		if !ok {
			return false
		}
		if !match(lookupPath(record, cond.Field), cond.Value) {
			return false
		}
	}
	return true
}

// Filter returns the subset of records matching all conditions, preserving
// input order.
func Filter(records []Record, conditions []Condition) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if Matches(rec, conditions) {
			out = append(out, rec)
		}
	}
	return out
}

// lookupPath traverses a dotted path through nested objects. A missing
// intermediate key or a non-object along the way resolves to nil rather than
// an error.
func lookupPath(record Record, path string) any {
	var current any = record
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = obj[part]
	}
	return current
}

// stringify casts both sides of a comparison to text. Remote JSON numbers and
// caller-supplied strings drift in type, so equality is always over strings.
func stringify(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", v)
}
