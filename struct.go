package constrec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Struct is a plain mutable structure: an ordered mapping from field name
// to value. It is the unprotected counterpart of Record and the type its
// conversions produce. Fields iterate in insertion order.
type Struct struct {
	keys []string
	vals map[string]any
}

// NewStruct returns a structure with no fields.
func NewStruct() *Struct {
	return &Struct{
		vals: make(map[string]any),
	}
}

// Set assigns a field, overwriting freely. New fields append to the
// iteration order; existing fields keep their position.
func (s *Struct) Set(name string, value any) {
	if _, ok := s.vals[name]; !ok {
		s.keys = append(s.keys, name)
	}
	s.vals[name] = value
}

// Get returns the value of a field and whether it is present.
func (s *Struct) Get(name string) (any, bool) {
	v, ok := s.vals[name]
	return v, ok
}

// Has reports whether a field is present.
func (s *Struct) Has(name string) bool {
	_, ok := s.vals[name]
	return ok
}

// Delete removes a field. Deleting an absent field is a no-op.
func (s *Struct) Delete(name string) {
	if _, ok := s.vals[name]; !ok {
		return
	}
	delete(s.vals, name)
	for i, k := range s.keys {
		if k == name {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of fields.
func (s *Struct) Len() int {
	return len(s.keys)
}

// FieldNames returns the field names in insertion order.
func (s *Struct) FieldNames() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Fields iterates over name/value pairs in insertion order.
func (s *Struct) Fields() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range s.keys {
			if !yield(k, s.vals[k]) {
				return
			}
		}
	}
}

// Clone returns an independent shallow copy.
func (s *Struct) Clone() *Struct {
	out := &Struct{
		keys: make([]string, len(s.keys)),
		vals: make(map[string]any, len(s.vals)),
	}
	copy(out.keys, s.keys)
	for k, v := range s.vals {
		out.vals[k] = v
	}
	return out
}

// MapFields applies fn to every field in order and collects the results
// into a new structure under the same names. The first error aborts the
// remaining fields.
func (s *Struct) MapFields(fn func(name string, value any) (any, error)) (*Struct, error) {
	out := NewStruct()
	for _, k := range s.keys {
		v, err := fn(k, s.vals[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out.Set(k, v)
	}
	return out, nil
}

// String renders the structure one field per line, nested structures
// indented below their field name. An empty structure renders as a fixed
// message rather than an empty listing.
func (s *Struct) String() string {
	if len(s.keys) == 0 {
		return "struct with no fields"
	}
	return strings.Join(s.renderLines(), "\n")
}

func (s *Struct) renderLines() []string {
	var lines []string
	for _, k := range s.keys {
		vl := renderValue(s.vals[k])
		if len(vl) == 1 {
			lines = append(lines, k+": "+vl[0])
			continue
		}
		lines = append(lines, k+":")
		for _, l := range vl {
			lines = append(lines, "    "+l)
		}
	}
	return lines
}

// renderValue formats a single field value as one or more lines. Nested
// structures and records expand to their own field listings.
func renderValue(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{strconv.Quote(val)}
	case *Struct:
		if val == nil || val.Len() == 0 {
			return []string{"struct with no fields"}
		}
		return val.renderLines()
	case *Record:
		if val == nil || val.Len() == 0 {
			return []string{"record with no fields"}
		}
		return strings.Split(val.String(), "\n")
	case nil:
		return []string{"<nil>"}
	default:
		return []string{fmt.Sprintf("%v", val)}
	}
}

// MarshalJSON implements json.Marshaler with fields in insertion order.
// The standard map marshaler would sort keys and lose the order.
func (s *Struct) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := json.Marshal(s.vals[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
