package constrec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect returns an option that captures advisories into the returned slice.
func collect() (Option, *[]Diagnostic) {
	var diags []Diagnostic
	opt := WithDiagnostics(func(d Diagnostic) {
		diags = append(diags, d)
	})
	return opt, &diags
}

func TestSetThenGet(t *testing.T) {
	r := New()
	require.NoError(t, r.Set("a", 5))

	v, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestSetTwiceDenied(t *testing.T) {
	r := New()
	require.NoError(t, r.Set("a", 5))

	err := r.Set("a", 7)
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))

	// The stored value is untouched.
	v, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestSetCompoundTarget(t *testing.T) {
	r := New()
	for _, name := range []string{"a.b", "a[0]", "a(1)"} {
		err := r.Set(name, 1)
		require.Error(t, err, name)
		assert.True(t, IsCode(err, ErrCodeMultiDimensional), name)
	}
	assert.Equal(t, 0, r.Len())
}

func TestClearThenReAdd(t *testing.T) {
	opt, diags := collect()
	r := New(opt)
	require.NoError(t, r.Set("a", 5))

	require.NoError(t, r.Clear("a"))
	_, ok := r.Get("a")
	assert.False(t, ok)

	// Clearing again fails: the field is gone, not tombstoned.
	err := r.Clear("a")
	require.Error(t, err)
	assert.True(t, IsFieldNotFound(err))

	// Re-adding succeeds and the new value wins.
	require.NoError(t, r.Set("a", 9))
	v, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, 9, v)

	require.Len(t, *diags, 1)
	assert.Equal(t, DiagFieldCleared, (*diags)[0].Code)
	assert.Equal(t, "a", (*diags)[0].Field)
}

func TestClearEmptyName(t *testing.T) {
	r := New()
	err := r.Clear("")
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeInvalidPropertyName))
}

func TestRemoveFieldAlias(t *testing.T) {
	r := New()
	require.NoError(t, r.Set("a", 1))
	require.NoError(t, r.RemoveField("a"))
	assert.False(t, r.Has("a"))
}

func TestFromPairs(t *testing.T) {
	r, err := FromPairs("x", 1, "y", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, r.FieldNames())
	v, _ := r.Get("x")
	assert.Equal(t, 1, v)
	v, _ = r.Get("y")
	assert.Equal(t, 2, v)
}

func TestFromPairsOddArguments(t *testing.T) {
	_, err := FromPairs("x", 1, "y")
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeInvalidFieldNames))
}

func TestFromPairsNonStringName(t *testing.T) {
	_, err := FromPairs("x", 1, 42, 2)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeInvalidFieldNames))
}

func TestFromPairsDuplicateName(t *testing.T) {
	r, err := FromPairs("x", 1, "y", 2, "x", 3)
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))

	// Construction is not atomic: the prefix before the failing pair stays.
	assert.Equal(t, []string{"x", "y"}, r.FieldNames())
	v, _ := r.Get("x")
	assert.Equal(t, 1, v)
	v, _ = r.Get("y")
	assert.Equal(t, 2, v)
}

func TestFromPairsSanitizesName(t *testing.T) {
	r, err := FromPairs("my field", 1)
	require.NoError(t, err)

	assert.True(t, r.Has("myField"))
	assert.False(t, r.Has("my field"))
}

func TestFromPairsEmptyEqualsNew(t *testing.T) {
	r, err := FromPairs()
	require.NoError(t, err)
	assert.Equal(t, New().FieldNames(), r.FieldNames())
	assert.Equal(t, 0, r.Len())
}

func TestFromFieldsRenameAdvisory(t *testing.T) {
	opt, diags := collect()
	r, err := FromFields([]Field{F("2fast", "zoom"), F("ok", true)}, opt)
	require.NoError(t, err)

	assert.Equal(t, []string{"x2fast", "ok"}, r.FieldNames())
	require.Len(t, *diags, 1)
	assert.Equal(t, DiagFieldRenamed, (*diags)[0].Code)
	assert.Equal(t, "2fast", (*diags)[0].Field)
	assert.Equal(t, "x2fast", (*diags)[0].Renamed)
}

func TestFromStruct(t *testing.T) {
	s := NewStruct()
	s.Set("name", "Alice")
	s.Set("age", 30)
	s.Set("active", true)

	r, err := FromStruct(s)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "active"}, r.FieldNames())
	v, _ := r.Get("age")
	assert.Equal(t, 30, v)
}

func TestFromStructMapSortsKeys(t *testing.T) {
	r, err := FromStruct(map[string]any{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, r.FieldNames())
}

func TestFromStructGoStruct(t *testing.T) {
	type addr struct {
		City string
		Zip  int
	}
	type person struct {
		Name   string
		Age    int
		hidden string
	}

	r, err := FromStruct(person{Name: "Bob", Age: 41, hidden: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age"}, r.FieldNames())

	// Pointers work too.
	r, err = FromStruct(&addr{City: "Berlin", Zip: 10115})
	require.NoError(t, err)
	assert.Equal(t, []string{"City", "Zip"}, r.FieldNames())
	v, _ := r.Get("City")
	assert.Equal(t, "Berlin", v)
}

func TestFromStructRejectsNonStructs(t *testing.T) {
	for _, in := range []any{nil, 42, "hello", []int{1, 2}, []map[string]any{{"a": 1}}} {
		_, err := FromStruct(in)
		require.Error(t, err)
		assert.True(t, IsCode(err, ErrCodeNotAStruct))
	}
}

func TestRoundTrip(t *testing.T) {
	r, err := FromPairs("name", "Alice", "age", 30)
	require.NoError(t, err)

	opt, diags := collect()
	r2, err := FromStruct(r.ToStruct(), opt)
	require.NoError(t, err)
	assert.Empty(t, *diags)

	assert.Equal(t, r.FieldNames(), r2.FieldNames())
	for k, v := range r.Fields() {
		v2, ok := r2.Get(k)
		require.True(t, ok)
		assert.Equal(t, v, v2)
	}
}

func TestToStructAdvisoryAndIndependence(t *testing.T) {
	opt, diags := collect()
	r, err := FromFields([]Field{F("a", 1)}, opt)
	require.NoError(t, err)

	s := r.ToStruct()
	require.Len(t, *diags, 1)
	assert.Equal(t, DiagConstnessLost, (*diags)[0].Code)

	// The snapshot is detached: mutating it leaves the record alone.
	s.Set("a", 99)
	s.Set("b", 2)
	v, _ := r.Get("a")
	assert.Equal(t, 1, v)
	assert.False(t, r.Has("b"))
}

func TestStringEmpty(t *testing.T) {
	assert.Equal(t, "record with no fields", New().String())
}

func TestStringMarksEveryField(t *testing.T) {
	r, err := FromPairs("a", 5, "b", "hi")
	require.NoError(t, err)

	lines := strings.Split(r.String(), "\n")
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, constMarker), l)
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "struct", New().TypeName())
}

func TestMapFields(t *testing.T) {
	r, err := FromPairs("a", 2, "b", 3)
	require.NoError(t, err)

	out, err := r.MapFields(func(name string, v any) (any, error) {
		return v.(int) * 10, nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, out.FieldNames())
	v, _ := out.Get("b")
	assert.Equal(t, 30, v)
}

func TestMarshalJSONPreservesOrder(t *testing.T) {
	r, err := FromPairs("zebra", 1, "apple", 2)
	require.NoError(t, err)

	data, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"apple":2}`, string(data))
}

func TestZeroValueRecord(t *testing.T) {
	var r Record
	require.NoError(t, r.Set("a", 1))
	v, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}
