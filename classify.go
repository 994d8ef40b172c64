package inspect

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Shape is the layout class of an inspected value.
type Shape int

const (
	// Leaf is a scalar or null: anything that is not a keyed collection.
	Leaf Shape = iota
	// Flat is a keyed collection whose direct members are all leaves.
	// Empty collections are flat.
	Flat
	// Nested is a keyed collection with at least one composite member.
	Nested
)

func (s Shape) String() string {
	switch s {
	case Leaf:
		return "leaf"
	case Flat:
		return "flat"
	case Nested:
		return "nested"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Classify reports the shape of v.
func Classify(v any) Shape {
	return inspectValue(v).shape
}

type member struct {
	key   any
	value any
}

// node is a value resolved once into its shape and members.
type node struct {
	shape   Shape
	leaf    any
	object  bool
	members []member
	ref     ref
}

// ref identifies a composite by address and type. A struct and its first
// field share an address but not a type.
type ref struct {
	addr uintptr
	typ  reflect.Type
}

func refOf(rv reflect.Value) ref {
	return ref{addr: rv.Pointer(), typ: rv.Type()}
}

func (r ref) valid() bool { return r.addr != 0 }

func (n node) emptyWhat() string {
	if n.object {
		return "empty-object"
	}
	return "empty-array"
}

func (n node) keyClass() string {
	if n.object {
		return "o_key"
	}
	return "a_key"
}

var (
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

// isComposite reports whether v is a keyed collection or object.
func isComposite(v any) bool {
	_, ok := composite(v)
	return ok
}

// composite resolves pointers and interfaces down to the collection value.
func composite(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	if _, ok := v.(*Map); ok {
		return reflect.ValueOf(v), v.(*Map) != nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() || implementsText(rv.Type()) {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if implementsText(rv.Type()) {
		return reflect.Value{}, false
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Array, reflect.Struct:
		return rv, true
	case reflect.Slice:
		return rv, rv.Type().Elem().Kind() != reflect.Uint8
	}
	return reflect.Value{}, false
}

func implementsText(t reflect.Type) bool {
	return t.Implements(stringerType) || t.Implements(errorType)
}

func inspectValue(v any) node {
	if m, ok := v.(*Map); ok && m != nil {
		n := node{ref: refOf(reflect.ValueOf(m))}
		for _, e := range m.entries {
			n.members = append(n.members, member{key: e.Key, value: e.Value})
		}
		return n.classify()
	}
	rv, ok := composite(v)
	if !ok {
		return node{shape: Leaf, leaf: leafValue(v)}
	}
	var n node
	if ptr := reflect.ValueOf(v); ptr.Kind() == reflect.Pointer {
		n.ref = refOf(ptr)
	}
	switch rv.Kind() {
	case reflect.Map:
		n.ref = refOf(rv)
		type pair struct{ k, v reflect.Value }
		pairs := make([]pair, 0, rv.Len())
		for iter := rv.MapRange(); iter.Next(); {
			pairs = append(pairs, pair{iter.Key(), iter.Value()})
		}
		slices.SortFunc(pairs, func(a, b pair) int { return compareKeys(a.k, b.k) })
		for _, p := range pairs {
			n.members = append(n.members, member{key: p.k.Interface(), value: p.v.Interface()})
		}
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Len() > 0 {
			n.ref = refOf(rv)
		}
		for i := 0; i < rv.Len(); i++ {
			n.members = append(n.members, member{key: i, value: rv.Index(i).Interface()})
		}
	case reflect.Struct:
		n.object = true
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("inspect"); ok {
				tag, _, _ = strings.Cut(tag, ",")
				if tag == "-" {
					continue
				}
				if tag != "" {
					name = tag
				}
			}
			n.members = append(n.members, member{key: name, value: rv.Field(i).Interface()})
		}
	}
	return n.classify()
}

func (n node) classify() node {
	n.shape = Flat
	for _, m := range n.members {
		if isComposite(m.value) {
			n.shape = Nested
			break
		}
	}
	return n
}

// leafValue strips pointers from scalars; nil pointers become nil.
func leafValue(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		if implementsText(rv.Type()) {
			return rv.Interface()
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		if rv.IsNil() {
			return nil
		}
		return string(rv.Bytes())
	}
	return rv.Interface()
}
