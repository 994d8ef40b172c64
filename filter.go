package inspect

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Path is the chain of keys from the rendered root down to the parent of
// the pair being filtered.
type Path []any

// Len returns the depth of the path.
func (p Path) Len() int { return len(p) }

// Last returns the innermost key.
func (p Path) Last() (any, bool) {
	if len(p) == 0 {
		return nil, false
	}
	return p[len(p)-1], true
}

// String joins the keys with dots.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, k := range p {
		parts[i] = fmt.Sprint(k)
	}
	return strings.Join(parts, ".")
}

// Event carries one key/value pair through the filter chain.
//
// Filters rewrite a pair by assigning to Key, Value or Style; a field a
// filter leaves alone keeps its prior value. The renderer reads all three
// back once every filter has run. Mode and Path are context only.
type Event struct {
	// Mode is the inspector's caller-set type tag.
	Mode string
	// Path holds the ancestor keys of the pair, not the pair's own key.
	Path Path
	Key   any
	Value any
	// Style is the presentation hint for the pair. It starts as the style
	// inherited from the enclosing pair.
	Style string
}

// Filter rewrites a pair before it is rendered.
type Filter interface {
	Filter(e *Event)
}

// FilterFunc adapts a function to [Filter].
type FilterFunc func(e *Event)

// Filter calls f(e).
func (f FilterFunc) Filter(e *Event) { f(e) }

// Dispatcher runs filters synchronously in registration order.
type Dispatcher struct {
	filters []Filter
}

// Register appends filters to the chain.
func (d *Dispatcher) Register(filters ...Filter) {
	for _, f := range filters {
		if f != nil {
			d.filters = append(d.filters, f)
		}
	}
}

// Len returns the number of registered filters.
func (d *Dispatcher) Len() int { return len(d.filters) }

// Dispatch hands e to every filter in turn and returns it.
func (d *Dispatcher) Dispatch(e *Event) *Event {
	for _, f := range d.filters {
		f.Filter(e)
	}
	return e
}

// Redact returns a Filter that masks the value of every pair whose key, or
// dotted path including the key, matches one of patterns. Patterns use
// [path.Match] syntax: "password" matches that key at any depth,
// "db.*" matches every direct member of db.
func Redact(patterns ...string) (Filter, error) {
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return nil, errors.Wrapf(err, "redact pattern %q", p)
		}
	}
	patterns = slices.Clone(patterns)
	return FilterFunc(func(e *Event) {
		key := fmt.Sprint(e.Key)
		full := append(slices.Clip(e.Path), e.Key).String()
		for _, p := range patterns {
			if ok, _ := path.Match(p, key); ok {
				e.Value = redacted(e.Value)
				return
			}
			if ok, _ := path.Match(p, full); ok {
				e.Value = redacted(e.Value)
				return
			}
		}
	}), nil
}

func redacted(v any) string {
	return string(redact.Sprint(fmt.Sprint(v)).Redact())
}
