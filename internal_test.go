package inspect

import (
	"bytes"
	"reflect"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackEmptyAfterRender(t *testing.T) {
	t.Parallel()
	var depths []int
	in := New()
	in.Dispatcher().Register(FilterFunc(func(e *Event) {
		depths = append(depths, len(in.stack))
	}))
	in.Set("a", map[string]any{"b": []any{1, map[string]any{"c": 2}}})
	in.Set("d", 3)

	in.Text()
	assert.Empty(t, in.stack)
	in.HTML()
	assert.Empty(t, in.stack)
	// a, b, 0, 1, c, d for each of the two renders.
	assert.Equal(t, []int{0, 1, 2, 2, 3, 0, 0, 1, 2, 2, 3, 0}, depths)
}

func TestStackResetOnEntry(t *testing.T) {
	t.Parallel()
	in := New()
	in.stack = Path{"left", "over"}
	var paths []string
	in.Dispatcher().Register(FilterFunc(func(e *Event) {
		paths = append(paths, e.Path.String())
	}))
	in.Set("k", "v")
	in.Text()
	assert.Equal(t, []string{""}, paths)
	assert.Empty(t, in.stack)
}

func TestInspectValueMembers(t *testing.T) {
	t.Parallel()
	type inner struct{ X int }
	type outer struct {
		A     string
		B     inner `inspect:"bee,omitempty"`
		C     *inner
		skip  int
		Empty string `inspect:""`
	}
	n := inspectValue(outer{A: "a", C: &inner{X: 1}})
	assert.Equal(t, Nested, n.shape)
	assert.True(t, n.object)
	keys := make([]any, len(n.members))
	for i, m := range n.members {
		keys[i] = m.key
	}
	assert.Equal(t, []any{"A", "bee", "C", "Empty"}, keys)
	assert.Equal(t, "o_key", n.keyClass())
	assert.Equal(t, "empty-object", n.emptyWhat())
}

func TestInspectValueRefs(t *testing.T) {
	t.Parallel()
	m := NewMap()
	assert.NotZero(t, inspectValue(m).ref)
	assert.NotZero(t, inspectValue(map[string]int{}).ref)
	assert.NotZero(t, inspectValue([]int{1}).ref)
	assert.Zero(t, inspectValue([]int{}).ref)
	assert.Zero(t, inspectValue(struct{ A int }{}).ref)
	assert.NotZero(t, inspectValue(&struct{ A int }{}).ref)
}

func TestLeafValue(t *testing.T) {
	t.Parallel()
	s := "x"
	ps := &s
	var nilBytes []byte
	assert.Equal(t, "x", leafValue(&ps))
	assert.Nil(t, leafValue((*int)(nil)))
	assert.Nil(t, leafValue(nilBytes))
	assert.Equal(t, "ab", leafValue([]byte("ab")))
	assert.Equal(t, 3, leafValue(3))
}

func TestCompareKeys(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		keys any
		want any
	}{
		"ints":    {keys: []int{10, -1, 2}, want: []int{-1, 2, 10}},
		"strings": {keys: []string{"b", "a", "B"}, want: []string{"B", "a", "b"}},
		"floats":  {keys: []float64{2.5, 0.5}, want: []float64{0.5, 2.5}},
		"mixed":   {keys: []any{"b", 1, "a"}, want: []any{1, "a", "b"}},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rv := reflect.ValueOf(tt.keys)
			vals := make([]reflect.Value, rv.Len())
			for i := range vals {
				vals[i] = rv.Index(i)
			}
			slices.SortFunc(vals, compareKeys)
			got := reflect.MakeSlice(rv.Type(), 0, rv.Len())
			got = reflect.Append(got, vals...)
			assert.Equal(t, tt.want, got.Interface())
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, normalizeKey(int8(3)))
	assert.Equal(t, 3, normalizeKey(uint64(3)))
	assert.Equal(t, "k", normalizeKey(Format("k")))
	assert.Equal(t, "", normalizeKey(nil))
	assert.Equal(t, 1.5, normalizeKey(1.5))
	assert.Equal(t, "[1]", normalizeKey([]int{1}))
}

func TestMergeValues(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []any{"a", "b"}, mergeValues("a", "b"))
	assert.Equal(t, []any{"a", "b", "c"}, mergeValues([]any{"a"}, []any{"b", "c"}))

	got := mergeValues(map[string]any{"x": 1}, "y")
	m, ok := got.(*Map)
	require.True(t, ok)
	assert.Equal(t, []any{"x", 0}, m.Keys())
}

func TestIsEmptyValue(t *testing.T) {
	t.Parallel()
	var nilMap *Map
	tests := map[string]struct {
		value any
		want  bool
	}{
		"nil":         {value: nil, want: true},
		"nil Map":     {value: nilMap, want: true},
		"empty Map":   {value: NewMap(), want: true},
		"zero":        {value: 0, want: true},
		"false":       {value: false, want: true},
		"blank":       {value: "", want: true},
		"empty slice": {value: []any{}, want: true},
		"struct":      {value: struct{}{}, want: false},
		"one":         {value: 1, want: false},
		"text":        {value: "x", want: false},
		"pointer":     {value: new(int), want: false},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isEmpty(tt.value))
		})
	}
}

func TestRecursionLogged(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	m := NewMap()
	m.Set("self", m)
	in := New(WithLogger(logger))
	in.SetData(m)
	in.Text()
	assert.Contains(t, buf.String(), "recursion detected")
	assert.Contains(t, buf.String(), "self")
}

func TestMergeRejectLogged(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	in := New(WithLogger(logger))
	require.Error(t, in.Merge("nope"))
	assert.Contains(t, buf.String(), "merge rejected")
}
