package inspect

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// Sentinel errors for programmatic error handling.
var (
	ErrState             = errors.New("inspector data is not mergeable")
	ErrInvalidInput      = errors.New("argument is not mergeable")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDecode            = errors.New("decode failed")
)

// Conventional keys used by [Inspector.AddError] and [Inspector.AddDebug].
const (
	KeyError = "error"
	KeyDebug = "debug"
)

// Format represents an output format.
type Format string

const (
	HTML Format = "html"
	Text Format = "text"
	YAML Format = "yaml"
	JSON Format = "json"
)

var formats = []Format{HTML, Text, YAML, JSON}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	return slices.Clone(formats)
}

// ParseFormat parses a format string.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%q", s)
}

// Inspector accumulates debug values and renders them as HTML or text.
//
// An Inspector is not safe for concurrent use. Rendering owns the path stack
// for the duration of the call, so renders must not overlap.
type Inspector struct {
	data    any
	stack   Path
	title   string
	typ     string
	indent  string
	width   int
	filters Dispatcher
	out     io.Writer
	logger  *log.Logger
}

// Option configures an [Inspector].
type Option func(*Inspector)

// WithTitle sets the title rendered above the root value.
func WithTitle(title string) Option {
	return func(i *Inspector) { i.title = title }
}

// WithType sets the type tag passed to filters as [Event.Mode].
func WithType(typ string) Option {
	return func(i *Inspector) { i.typ = typ }
}

// WithIndent sets the text outline indentation unit. Default: a tab.
func WithIndent(indent string) Option {
	return func(i *Inspector) { i.indent = indent }
}

// WithMaxWidth truncates displayed leaf values to n columns.
func WithMaxWidth(n int) Option {
	return func(i *Inspector) { i.width = n }
}

// WithOutput sets the writer used by [Inspector.Display]. Default: stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Inspector) { i.out = w }
}

// WithLogger sets the debug logger. Default: discard.
func WithLogger(l *log.Logger) Option {
	return func(i *Inspector) { i.logger = l }
}

// WithFilter registers filters on the inspector's dispatcher.
func WithFilter(filters ...Filter) Option {
	return func(i *Inspector) { i.filters.Register(filters...) }
}

// New returns an empty Inspector.
func New(opts ...Option) *Inspector {
	i := &Inspector{
		data:   NewMap(),
		indent: "\t",
		out:    os.Stdout,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

var (
	registryMu sync.Mutex
	registry   = map[string]*Inspector{}
)

// Instance returns the process-wide Inspector registered under key,
// creating it on first use. Instances live for the life of the process.
// The returned Inspector itself is not safe for concurrent use.
func Instance(key string) *Inspector {
	registryMu.Lock()
	defer registryMu.Unlock()
	i, ok := registry[key]
	if !ok {
		i = New()
		registry[key] = i
	}
	return i
}

// Dispatcher returns the filter chain run for every rendered pair.
func (i *Inspector) Dispatcher() *Dispatcher { return &i.filters }

// Type returns the type tag.
func (i *Inspector) Type() string { return i.typ }

// SetType sets the type tag passed to filters as [Event.Mode].
func (i *Inspector) SetType(typ string) { i.typ = typ }

// Title returns the title.
func (i *Inspector) Title() string { return i.title }

// SetTitle sets the title rendered above the root value.
func (i *Inspector) SetTitle(title string) { i.title = title }

// container returns the data as a *Map. Sequences and string-keyed maps are
// converted in place; scalar or nil data is replaced by an empty map.
func (i *Inspector) container() *Map {
	if m, ok := i.data.(*Map); ok && m != nil {
		return m
	}
	m, ok := asMap(i.data)
	if !ok {
		m = NewMap()
	}
	i.data = m
	return m
}

// Push appends value to the root sequence. Scalar data is replaced by an
// empty container first.
func (i *Inspector) Push(value any) {
	i.container().Append(value)
}

// Add appends value to the sequence stored under key, creating it if
// absent. A non-sequence value already under key is replaced.
func (i *Inspector) Add(key string, value any) {
	m := i.container()
	if seq, ok := m.Get(key); ok {
		if s, ok := seq.([]any); ok {
			m.Set(key, append(slices.Clip(s), value))
			return
		}
	}
	m.Set(key, []any{value})
}

// AddError appends value under [KeyError].
func (i *Inspector) AddError(value any) { i.Add(KeyError, value) }

// AddDebug appends value under [KeyDebug].
func (i *Inspector) AddDebug(value any) { i.Add(KeyDebug, value) }

// Data returns the whole container.
func (i *Inspector) Data() any { return i.data }

// Get returns the value stored under key.
func (i *Inspector) Get(key string) (any, bool) {
	switch d := i.data.(type) {
	case *Map:
		if d != nil {
			return d.Get(key)
		}
	case map[string]any:
		v, ok := d[key]
		return v, ok
	}
	return nil, false
}

// SetData replaces the whole container.
func (i *Inspector) SetData(value any) { i.data = value }

// Set stores value under key, overwriting what was there.
func (i *Inspector) Set(key string, value any) {
	if d, ok := i.data.(map[string]any); ok {
		d[key] = value
		return
	}
	i.container().Set(key, value)
}

// IsEmpty reports whether the whole container is empty.
func (i *Inspector) IsEmpty() bool { return isEmpty(i.data) }

// IsEmptyKey reports whether the value under key is absent or empty.
func (i *Inspector) IsEmptyKey(key string) bool {
	v, ok := i.Get(key)
	return !ok || isEmpty(v)
}

// isEmpty treats nil, zero scalars and empty collections as empty.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if m, ok := v.(*Map); ok {
		return m == nil || m.Len() == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String, reflect.Chan:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Struct:
		return false
	}
	return rv.IsZero()
}

// Merge deep-merges other into the container. String keys present on both
// sides are combined recursively; int keys are appended.
func (i *Inspector) Merge(other any) error {
	own, ok := asMap(i.data)
	if !ok {
		err := errors.Wrapf(ErrState, "data is %T", i.data)
		i.logger.Debug("merge rejected", "err", err)
		return err
	}
	in, ok := asMap(other)
	if !ok {
		err := errors.Wrapf(ErrInvalidInput, "argument is %T", other)
		i.logger.Debug("merge rejected", "err", err)
		return err
	}
	i.data = mergeMaps(own, in)
	return nil
}

func (i *Inspector) lookup(key string) any {
	v, _ := i.Get(key)
	return v
}

// HTML renders the whole container as nested tables.
func (i *Inspector) HTML() string { return i.renderHTML(i.data) }

// HTMLKey renders the value under key as nested tables.
func (i *Inspector) HTMLKey(key string) string { return i.renderHTML(i.lookup(key)) }

// Text renders the whole container as an indented outline.
func (i *Inspector) Text() string { return i.renderText(i.data) }

// TextKey renders the value under key as an indented outline.
func (i *Inspector) TextKey(key string) string { return i.renderText(i.lookup(key)) }

// Display writes the HTML rendering of the whole container to the output.
func (i *Inspector) Display() error {
	_, err := io.WriteString(i.out, i.HTML())
	return err
}

// DisplayKey writes the HTML rendering of the value under key to the output.
func (i *Inspector) DisplayKey(key string) error {
	_, err := io.WriteString(i.out, i.HTMLKey(key))
	return err
}

// Write renders the whole container in format f and writes it to w.
func (i *Inspector) Write(w io.Writer, f Format) error {
	return i.write(w, f, i.data)
}

// WriteKey renders the value under key in format f and writes it to w.
func (i *Inspector) WriteKey(w io.Writer, f Format, key string) error {
	return i.write(w, f, i.lookup(key))
}

func (i *Inspector) write(w io.Writer, f Format, v any) error {
	switch f {
	case HTML:
		_, err := fmt.Fprintln(w, i.renderHTML(v))
		return err
	case Text:
		_, err := fmt.Fprintln(w, i.renderText(v))
		return err
	case YAML:
		return writeYAML(w, v)
	case JSON:
		return writeJSON(w, v)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", f)
	}
}

// Marshal renders the whole container in format f.
func (i *Inspector) Marshal(f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := i.Write(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
