package inspect

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// Entry is a single keyed member of a [Map].
type Entry struct {
	Key   any
	Value any
}

// Map is an ordered keyed collection. Keys are strings or ints. Values
// appended without a key receive the next free int key, so a Map built
// only through [Map.Append] behaves as a sequence.
//
// The zero value is not usable; create maps with [NewMap].
type Map struct {
	entries []Entry
	index   map[any]int
	next    int
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{index: make(map[any]int)}
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Get returns the value stored under key.
func (m *Map) Get(key any) (any, bool) {
	pos, ok := m.index[normalizeKey(key)]
	if !ok {
		return nil, false
	}
	return m.entries[pos].Value, true
}

// Set stores value under key, overwriting any previous value in place.
func (m *Map) Set(key any, value any) {
	key = normalizeKey(key)
	if pos, ok := m.index[key]; ok {
		m.entries[pos].Value = value
		return
	}
	if n, ok := key.(int); ok && n >= m.next {
		m.next = n + 1
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Append stores value under the next free int key and returns that key.
func (m *Map) Append(value any) int {
	key := m.next
	m.Set(key, value)
	return key
}

// Delete removes key. It reports whether the key was present.
func (m *Map) Delete(key any) bool {
	key = normalizeKey(key)
	pos, ok := m.index[key]
	if !ok {
		return false
	}
	m.entries = slices.Delete(m.entries, pos, pos+1)
	delete(m.index, key)
	for i := pos; i < len(m.entries); i++ {
		m.index[m.entries[i].Key] = i
	}
	return true
}

// Entries returns a copy of the entries in insertion order.
func (m *Map) Entries() []Entry {
	return slices.Clone(m.entries)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []any {
	keys := make([]any, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

func (m *Map) clone() *Map {
	out := NewMap()
	for _, e := range m.entries {
		out.Set(e.Key, e.Value)
	}
	return out
}

// isList reports whether the keys are exactly 0..n-1 in order.
func (m *Map) isList() bool {
	for i, e := range m.entries {
		if n, ok := e.Key.(int); !ok || n != i {
			return false
		}
	}
	return true
}

func (m *Map) values() []any {
	out := make([]any, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Value
	}
	return out
}

func normalizeKey(key any) any {
	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int(rv.Uint())
	case reflect.String:
		return rv.String()
	case reflect.Invalid:
		return ""
	}
	if rv.Comparable() {
		return key
	}
	return fmt.Sprint(key)
}

// asMap converts the mergeable shapes into a fresh *Map.
func asMap(v any) (*Map, bool) {
	switch x := v.(type) {
	case *Map:
		if x == nil {
			return nil, false
		}
		return x.clone(), true
	case []any:
		m := NewMap()
		for _, e := range x {
			m.Append(e)
		}
		return m, true
	case map[string]any:
		m := NewMap()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			m.Set(k, x[k])
		}
		return m, true
	}
	return nil, false
}

// mergeMaps merges src into a copy of dst. String keys present on both sides
// combine recursively; int keys from either side are renumbered and appended.
func mergeMaps(dst, src *Map) *Map {
	out := NewMap()
	for _, m := range []*Map{dst, src} {
		for _, e := range m.entries {
			if _, ok := e.Key.(int); ok {
				out.Append(e.Value)
				continue
			}
			if prev, ok := out.Get(e.Key); ok {
				out.Set(e.Key, mergeValues(prev, e.Value))
				continue
			}
			out.Set(e.Key, e.Value)
		}
	}
	return out
}

func mergeValues(a, b any) any {
	merged := mergeMaps(wrapMap(a), wrapMap(b))
	if merged.isList() {
		return merged.values()
	}
	return merged
}

func wrapMap(v any) *Map {
	if m, ok := asMap(v); ok {
		return m
	}
	m := NewMap()
	m.Append(v)
	return m
}

// compareKeys orders map keys: numbers numerically, strings lexically and
// everything else by its formatted form.
func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	if a.Kind() == b.Kind() {
		switch {
		case a.CanInt():
			return cmp.Compare(a.Int(), b.Int())
		case a.CanUint():
			return cmp.Compare(a.Uint(), b.Uint())
		case a.CanFloat():
			return cmp.Compare(a.Float(), b.Float())
		case a.Kind() == reflect.String:
			return cmp.Compare(a.String(), b.String())
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
