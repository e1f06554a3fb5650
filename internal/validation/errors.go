package validation

import (
	"bytes"
	"encoding/json"
)

// Errors holds failure messages per field, in the order fields failed.
type Errors struct {
	order  []string
	fields map[string][]string
}

// NewErrors returns an empty collection.
func NewErrors() *Errors {
	return &Errors{fields: make(map[string][]string)}
}

// Add appends msg to field.
func (e *Errors) Add(field, msg string) {
	if _, ok := e.fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], msg)
}

// Empty reports whether no field failed.
func (e *Errors) Empty() bool { return e == nil || len(e.order) == 0 }

// Has reports whether field has at least one message.
func (e *Errors) Has(field string) bool {
	if e == nil {
		return false
	}
	_, ok := e.fields[field]
	return ok
}

// Get returns the messages for field.
func (e *Errors) Get(field string) []string {
	if e == nil {
		return nil
	}
	return e.fields[field]
}

// Fields returns the failed fields in order.
func (e *Errors) Fields() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.order...)
}

// Flatten returns every message, field by field.
func (e *Errors) Flatten() []string {
	if e == nil {
		return nil
	}
	var out []string
	for _, f := range e.order {
		out = append(out, e.fields[f]...)
	}
	return out
}

// MarshalJSON encodes the collection as an object keeping field order.
func (e *Errors) MarshalJSON() ([]byte, error) {
	if e.Empty() {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range e.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		msgs, err := json.Marshal(e.fields[f])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(msgs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ValidationError is returned when one or more fields fail their rules.
type ValidationError struct {
	Errors *Errors
}

func (e *ValidationError) Error() string {
	if msgs := e.Errors.Flatten(); len(msgs) > 0 {
		return "validation failed: " + msgs[0]
	}
	return "validation failed"
}
