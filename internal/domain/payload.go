package domain

// Payload is the field set of a create/update request. It distinguishes
// "field absent" from "field present with a zero value": a caller-supplied
// false or 0 must survive completion untouched, so all reads go through Has.
type Payload struct {
	fields map[string]any
}

// NewPayload wraps the given arguments. The map is not copied; use Clone
// before mutating shared data.
func NewPayload(fields map[string]any) Payload {
	if fields == nil {
		fields = make(map[string]any)
	}
	return Payload{fields: fields}
}

// Has reports whether the field was supplied, regardless of its value.
func (p Payload) Has(field string) bool {
	_, ok := p.fields[field]
	return ok
}

// Get returns the field value and whether it was supplied.
func (p Payload) Get(field string) (any, bool) {
	v, ok := p.fields[field]
	return v, ok
}

// Set stores a field value.
func (p Payload) Set(field string, value any) {
	p.fields[field] = value
}

// Delete removes a field.
func (p Payload) Delete(field string) {
	delete(p.fields, field)
}

// Len returns the number of supplied fields.
func (p Payload) Len() int {
	return len(p.fields)
}

// Raw exposes the underlying map for serialization as a request body.
func (p Payload) Raw() map[string]any {
	return p.fields
}

// Clone returns an independent copy. Top-level fields are copied, and array
// values holding objects (invoice/quote positions) are copied element-wise so
// per-position completion never mutates the caller's structures. Element
// order is preserved.
func (p Payload) Clone() Payload {
	out := make(map[string]any, len(p.fields))
	for k, v := range p.fields {
		out[k] = cloneValue(v)
	}
	return Payload{fields: out}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}
