package inspect

import (
	"fmt"
	"html"
	"reflect"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Escaper encodes a display string for an output mode.
type Escaper func(string) string

// Decorator converts leaf values into their display form.
type Decorator struct {
	// Escape encodes strings and stringified values. Nil means no escaping.
	Escape Escaper
	// MaxWidth truncates the natural string form of a value to this many
	// display columns, ending in "...". Zero means no limit.
	MaxWidth int
}

// HTMLDecorator escapes HTML special characters.
func HTMLDecorator(maxWidth int) Decorator {
	return Decorator{Escape: html.EscapeString, MaxWidth: maxWidth}
}

// TextDecorator leaves strings as they are.
func TextDecorator(maxWidth int) Decorator {
	return Decorator{MaxWidth: maxWidth}
}

// Decorate renders v for display. Blank strings are quoted so they stay
// visible. With emphasize set, non-string literals are wrapped in
// <strong> markers and null additionally in <i>.
func (d Decorator) Decorate(v any, emphasize bool) string {
	v = leafValue(v)
	if v == nil {
		if emphasize {
			return "<strong><i>null</i></strong>"
		}
		return "null"
	}
	switch x := v.(type) {
	case string:
		return d.str(x)
	case bool:
		return d.strong(strconv.FormatBool(x), emphasize)
	case error:
		return d.strong(d.escape(x.Error()), emphasize)
	case fmt.Stringer:
		return d.strong(d.escape(x.String()), emphasize)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return d.str(rv.String())
	case reflect.Bool:
		return d.strong(strconv.FormatBool(rv.Bool()), emphasize)
	}
	return d.strong(d.escape(fmt.Sprint(v)), emphasize)
}

func (d Decorator) str(s string) string {
	if strings.TrimSpace(s) == "" {
		return "'" + s + "'"
	}
	return d.escape(s)
}

func (d Decorator) escape(s string) string {
	if d.MaxWidth > 0 && runewidth.StringWidth(s) > d.MaxWidth {
		s = runewidth.Truncate(s, d.MaxWidth, "...")
	}
	if d.Escape == nil {
		return s
	}
	return d.Escape(s)
}

func (d Decorator) strong(s string, on bool) string {
	if !on {
		return s
	}
	return "<strong>" + s + "</strong>"
}
