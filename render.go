package inspect

// recursion stands in for a value already being rendered higher up the path.
type recursion struct{}

func (recursion) String() string { return "*RECURSION*" }

// walk holds the state of one top-level render call.
type walk struct {
	*Inspector
	dec    Decorator
	active map[ref]bool
}

func (i *Inspector) newWalk(dec Decorator) *walk {
	i.stack = i.stack[:0]
	return &walk{Inspector: i, dec: dec, active: make(map[ref]bool)}
}

// resolve classifies v. A composite already open on the current path
// resolves to a leaf marker instead.
func (w *walk) resolve(v any) node {
	n := inspectValue(v)
	if n.shape != Leaf && n.ref.valid() && w.active[n.ref] {
		w.logger.Debug("recursion detected", "path", w.stack.String())
		return node{shape: Leaf, leaf: recursion{}}
	}
	return n
}

func (w *walk) open(n node) {
	if n.ref.valid() {
		w.active[n.ref] = true
	}
}

func (w *walk) close(n node) {
	if n.ref.valid() {
		delete(w.active, n.ref)
	}
}

// filter dispatches one pair with a snapshot of the current path.
func (w *walk) filter(m member, style string) *Event {
	e := &Event{
		Mode:  w.typ,
		Path:  append(Path(nil), w.stack...),
		Key:   m.key,
		Value: m.value,
		Style: style,
	}
	return w.filters.Dispatch(e)
}

// descend renders a member value one level down with key on the path.
func (w *walk) descend(key any, render func() string) string {
	w.stack = append(w.stack, key)
	defer func() { w.stack = w.stack[:len(w.stack)-1] }()
	return render()
}
