package inspect

import (
	"fmt"
	"html"
	"strings"
)

func (i *Inspector) renderHTML(v any) string {
	w := i.newWalk(HTMLDecorator(i.width))
	var b strings.Builder
	b.WriteString(`<div class="debugger">` + "\n")
	b.WriteString(`<div class="debug">` + "\n")
	b.WriteString(w.html(v, i.title, true, ""))
	b.WriteString("\n</div>\n</div>")
	return b.String()
}

// html renders one node. Only the root call carries a title; non-root
// flat collections become row lists, everything else a two-column table.
func (w *walk) html(v any, title string, root bool, style string) string {
	n := w.resolve(v)
	switch {
	case n.shape == Leaf:
		value := w.dec.Decorate(n.leaf, true)
		if root && title != "" {
			return htmlLeafTable(title, value)
		}
		return value
	case n.shape == Flat && !root:
		w.open(n)
		defer w.close(n)
		return w.htmlRows(n, style)
	default:
		w.open(n)
		defer w.close(n)
		return w.htmlTable(n, title, style)
	}
}

func (w *walk) htmlRows(n node, style string) string {
	var b strings.Builder
	for _, m := range n.members {
		e := w.filter(m, style)
		key := w.dec.Decorate(e.Key, true)
		value := w.htmlValue(e)
		fmt.Fprintf(&b, `<span class="%s"%s>%s</span><span class="value"%s>%s</span><br/>`+"\n",
			n.keyClass(), styleAttr(e.Style), key, styleAttr(e.Style), value)
	}
	if len(n.members) == 0 {
		fmt.Fprintf(&b, `<span class="%s">%s</span><br/>`+"\n", n.keyClass(), n.emptyWhat())
	}
	return b.String()
}

// htmlValue renders a filtered value in a row list. A filter may have
// swapped a leaf for a collection, which then renders one level down.
func (w *walk) htmlValue(e *Event) string {
	if !isComposite(e.Value) {
		return w.dec.Decorate(e.Value, true)
	}
	return w.descend(e.Key, func() string {
		return w.html(e.Value, "", false, e.Style)
	})
}

func (w *walk) htmlTable(n node, title, style string) string {
	var b strings.Builder
	b.WriteString(`<table class="grid" style="width: 100%">` + "\n")
	if title != "" {
		fmt.Fprintf(&b, `<thead><tr><th colspan="2" class="title">%s</th></tr></thead>`+"\n", html.EscapeString(title))
	}
	b.WriteString("<tbody>\n")
	for _, m := range n.members {
		e := w.filter(m, style)
		key := w.dec.Decorate(e.Key, true)
		value := w.descend(e.Key, func() string {
			return w.html(e.Value, "", false, e.Style)
		})
		fmt.Fprintf(&b, `<tr><td class="%s"%s>%s</td><td class="value"%s>%s</td></tr>`+"\n",
			n.keyClass(), styleAttr(e.Style), key, styleAttr(e.Style), value)
	}
	if len(n.members) == 0 {
		fmt.Fprintf(&b, `<tr><td colspan="2" class="%s">%s</td></tr>`+"\n", n.keyClass(), n.emptyWhat())
	}
	b.WriteString("</tbody>\n</table>")
	return b.String()
}

func htmlLeafTable(title, value string) string {
	return `<div class="debug"><table class="grid" style="width: 100%">` +
		`<thead><tr><th class="title">` + html.EscapeString(title) + `</th></tr></thead>` +
		`<tbody><tr><td class="a_key">` + value + `</td></tr></tbody></table></div>`
}

func styleAttr(style string) string {
	if style == "" {
		return ""
	}
	return ` style="` + html.EscapeString(style) + `"`
}
