package inspect

import (
	"fmt"
	"strings"
)

const (
	textDown  = " - ↓"
	textArrow = " → "
)

func (i *Inspector) renderText(v any) string {
	w := i.newWalk(TextDecorator(i.width))
	return w.text(v, i.title, 1)
}

// text renders one node as outline lines indented level-1 units. The title
// line is emitted only by the call that received it.
func (w *walk) text(v any, title string, level int) string {
	indent := strings.Repeat(w.indent, level-1)
	var lines []string
	if title != "" {
		lines = append(lines, title+textDown)
	}
	n := w.resolve(v)
	if n.shape == Leaf {
		lines = append(lines, indent+w.dec.Decorate(n.leaf, false))
		return strings.Join(lines, "\n")
	}

	// Flat and nested collections differ only in whether any member
	// recurses, so both share one loop.
	w.open(n)
	defer w.close(n)
	for _, m := range n.members {
		e := w.filter(m, "")
		key := fmt.Sprint(e.Key)
		if !isComposite(e.Value) {
			lines = append(lines, indent+key+textArrow+w.dec.Decorate(e.Value, false))
			continue
		}
		lines = append(lines, indent+key+textDown)
		lines = append(lines, w.descend(e.Key, func() string {
			return w.text(e.Value, "", level+1)
		}))
	}
	if len(n.members) == 0 {
		lines = append(lines, indent+n.emptyWhat())
	}
	return strings.Join(lines, "\n")
}
