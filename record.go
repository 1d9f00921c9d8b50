// Package constrec implements an assign-once record: an ordered mapping
// from field name to value in which a field, once written, can never be
// overwritten. Changing a value requires explicitly clearing the field
// (which raises an advisory) and adding it again. Conversions back to the
// plain mutable Struct type are supported and likewise advisory-raising,
// since the result is no longer protected.
//
// A record is an in-memory value for single-goroutine use; it performs no
// locking of its own.
package constrec

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// constMarker prefixes every field line of a record's rendering.
const constMarker = "<CONST> "

// Record is an ordered field→value mapping with assign-once semantics.
// Each field is either absent or present-and-locked; Set moves a field
// from absent to locked, Clear moves it back. There is no in-place update.
//
// The zero value is usable, with advisories going to LogDiagnostics.
type Record struct {
	keys []string
	vals map[string]any
	diag DiagnosticHandler
}

// Field is a name/value pair for typed record construction.
type Field struct {
	Name  string
	Value any
}

// F is a shorthand for Field.
// Example: FromFields([]Field{F("name", "cart"), F("count", 5)})
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// New returns a record with no fields.
func New(opts ...Option) *Record {
	r := &Record{
		vals: make(map[string]any),
		diag: LogDiagnostics,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromPairs builds a record from a flat alternating name/value argument
// list: FromPairs("x", 1, "y", 2). Names must be strings; invalid
// identifiers are sanitized with a FIELD_RENAMED advisory. A repeated name
// fails with PERMISSION_DENIED exactly as a second Set would.
//
// Construction is not atomic: on failure the record built so far is
// returned alongside the error, with every pair before the failing one
// already applied. Callers wanting all-or-nothing must discard the record
// when err is non-nil.
func FromPairs(nameValue ...any) (*Record, error) {
	r := New()
	err := r.AddPairs(nameValue...)
	return r, err
}

// FromFields builds a record from typed name/value pairs, with the same
// semantics (and the same non-atomicity) as FromPairs.
func FromFields(fields []Field, opts ...Option) (*Record, error) {
	r := New(opts...)
	for _, f := range fields {
		if err := r.addSanitized(f.Name, f.Value); err != nil {
			return r, err
		}
	}
	return r, nil
}

// FromStruct builds a record by copying every field of an existing plain
// structure. Accepted inputs: *Struct (insertion order), map[string]any
// (sorted key order, since Go maps do not preserve insertion), or a Go
// struct value or pointer (exported fields, declaration order). Any other
// input fails with NOT_A_STRUCT.
func FromStruct(src any, opts ...Option) (*Record, error) {
	r := New(opts...)

	switch s := src.(type) {
	case nil:
		return r, NewNotAStructError(src)
	case *Struct:
		if s == nil {
			return r, NewNotAStructError(src)
		}
		for k, v := range s.Fields() {
			if err := r.addSanitized(k, v); err != nil {
				return r, err
			}
		}
		return r, nil
	case Struct:
		return FromStruct(&s, opts...)
	case map[string]any:
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if err := r.addSanitized(k, s[k]); err != nil {
				return r, err
			}
		}
		return r, nil
	}

	rv := reflect.ValueOf(src)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return r, NewNotAStructError(src)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return r, NewNotAStructError(src)
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		ft := rt.Field(i)
		if !ft.IsExported() {
			continue
		}
		if err := r.addSanitized(ft.Name, rv.Field(i).Interface()); err != nil {
			return r, err
		}
	}
	return r, nil
}

// AddPairs applies a flat alternating name/value argument list through the
// assign-once path. See FromPairs for the semantics.
func (r *Record) AddPairs(nameValue ...any) error {
	if len(nameValue)%2 != 0 {
		return &FieldError{
			Code:    ErrCodeInvalidFieldNames,
			Message: "name/value arguments must come in pairs",
		}
	}
	for i := 0; i < len(nameValue); i += 2 {
		name, ok := nameValue[i].(string)
		if !ok {
			return &FieldError{
				Code:    ErrCodeInvalidFieldNames,
				Message: fmt.Sprintf("argument %d: field name must be a string, got %T", i, nameValue[i]),
			}
		}
		if err := r.addSanitized(name, nameValue[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// addSanitized is the constructor-path add: it rewrites invalid names
// (with an advisory) before handing off to Set.
func (r *Record) addSanitized(name string, value any) error {
	if !ValidName(name) {
		clean := SanitizeName(name)
		r.emit(Diagnostic{
			Code:    DiagFieldRenamed,
			Field:   name,
			Renamed: clean,
			Message: fmt.Sprintf("field name %q is not a valid identifier, using %q", name, clean),
		})
		name = clean
	}
	return r.Set(name, value)
}

// Set adds a brand-new field and locks it. Writing to a field that is
// already present fails with PERMISSION_DENIED and leaves the record
// unchanged; the only path to a new value is Clear followed by Set.
// Compound targets (nested paths, indexed elements) fail with
// MULTI_DIM_NOT_SUPPORTED.
func (r *Record) Set(name string, value any) error {
	if strings.ContainsAny(name, ".([{") {
		return NewMultiDimensionalError(name)
	}
	if _, ok := r.vals[name]; ok {
		return NewPermissionDeniedError(name)
	}
	if r.vals == nil {
		r.vals = make(map[string]any)
	}
	r.keys = append(r.keys, name)
	r.vals[name] = value
	return nil
}

// Get returns the value of a field and whether it is present.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.vals[name]
	return v, ok
}

// Has reports whether a field is present.
func (r *Record) Has(name string) bool {
	_, ok := r.vals[name]
	return ok
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// FieldNames returns the field names in insertion order.
func (r *Record) FieldNames() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Fields iterates over name/value pairs in insertion order.
func (r *Record) Fields() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range r.keys {
			if !yield(k, r.vals[k]) {
				return
			}
		}
	}
}

// Clear removes a field, releasing its lock, and emits a FIELD_CLEARED
// advisory. The field may be re-added afterward with a new value; removal
// leaves no tombstone. Fails with FIELD_NOT_FOUND if the field is absent
// and INVALID_PROPERTY_NAME if the name is empty.
func (r *Record) Clear(name string) error {
	if name == "" {
		return &FieldError{
			Code:    ErrCodeInvalidPropertyName,
			Message: "field name must be a non-empty string",
		}
	}
	if _, ok := r.vals[name]; !ok {
		return NewFieldNotFoundError(name)
	}
	delete(r.vals, name)
	for i, k := range r.keys {
		if k == name {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	r.emit(Diagnostic{
		Code:    DiagFieldCleared,
		Field:   name,
		Message: "clearing a const field",
	})
	return nil
}

// RemoveField is an alias for Clear.
func (r *Record) RemoveField(name string) error {
	return r.Clear(name)
}

// ToStruct returns a plain mutable snapshot of the record, in field order,
// and emits a CONSTNESS_LOST advisory: mutations of the result are no
// longer guarded. The snapshot is independent of the record.
func (r *Record) ToStruct() *Struct {
	r.emit(Diagnostic{
		Code:    DiagConstnessLost,
		Message: "converting to a plain struct loses constness",
	})
	return r.snapshot()
}

// snapshot is the quiet conversion used internally by the display and
// mapping paths. The advisory suppression is scoped to the call; ToStruct
// remains the only conversion callers see.
func (r *Record) snapshot() *Struct {
	out := NewStruct()
	for _, k := range r.keys {
		out.Set(k, r.vals[k])
	}
	return out
}

// String renders the record like its plain-structure snapshot, with every
// field line prefixed by the lock marker and continuation lines padded to
// the marker's width. An empty record renders as "record with no fields".
func (r *Record) String() string {
	if len(r.keys) == 0 {
		return "record with no fields"
	}
	pad := strings.Repeat(" ", len(constMarker))
	var lines []string
	for _, k := range r.keys {
		vl := renderValue(r.vals[k])
		if len(vl) == 1 {
			lines = append(lines, constMarker+k+": "+vl[0])
			continue
		}
		lines = append(lines, constMarker+k+":")
		for _, l := range vl {
			lines = append(lines, pad+"    "+l)
		}
	}
	return strings.Join(lines, "\n")
}

// TypeName returns the name the environment uses for a plain structure, so
// generic type-inspecting helpers need not special-case the record.
func (r *Record) TypeName() string {
	return "struct"
}

// MapFields applies fn to every field of the quiet snapshot in order, with
// the same contract as Struct.MapFields. Utilities written against plain
// structures work against a record through this without modification.
func (r *Record) MapFields(fn func(name string, value any) (any, error)) (*Struct, error) {
	return r.snapshot().MapFields(fn)
}

// MarshalJSON implements json.Marshaler via the quiet snapshot, preserving
// field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.snapshot().MarshalJSON()
}

func (r *Record) emit(d Diagnostic) {
	if r.diag == nil {
		LogDiagnostics(d)
		return
	}
	r.diag(d)
}
