// Package inspect renders arbitrary nested values for debugging.
//
// An [Inspector] accumulates values in an ordered container and renders
// them either as nested HTML tables or as an indented plain-text outline.
// Any Go value works: scalars, slices, arrays, maps, structs, pointers and
// the ordered [*Map] used as the container.
//
//	in := inspect.New(inspect.WithTitle("request"))
//	in.AddError("bad input")
//	in.AddDebug("step1")
//	fmt.Println(in.Text())
//
// # Layout
//
// Every value is classified once as a [Leaf], a [Flat] collection (all
// members are leaves) or a [Nested] collection. Leaves render through a
// [Decorator]. Flat collections below the root render as key/value rows;
// nested collections, and any collection at the root, render as a
// two-column table (HTML) or a " - ↓" header with an indented block (text).
// A collection that contains itself renders "*RECURSION*" where it repeats.
//
// # Filters
//
// A [Filter] sees every key/value pair before it is rendered, as an
// [Event] carrying the inspector's type tag and the [Path] of ancestor
// keys. Filters rewrite the pair by assigning to the event's Key, Value
// and Style fields:
//
//	in.Dispatcher().Register(inspect.FilterFunc(func(e *inspect.Event) {
//		if e.Key == "token" {
//			e.Value = "REDACTED"
//		}
//	}))
//
// [Redact] builds a filter that masks values by key or path pattern.
//
// # Container
//
// [Inspector.Add] appends to a key's own sequence, [Inspector.Push] to the
// root sequence, and [Inspector.Set] overwrites. [Inspector.Merge]
// deep-merges another container. Named instances shared across a process
// come from [Instance].
//
// # Formats
//
// Besides [Inspector.HTML] and [Inspector.Text], [Inspector.Write] accepts
// a [Format] and can also dump the container as YAML or JSON. [Decode]
// reads YAML or JSON documents into the same ordered shapes.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrState]: the inspector's own data cannot be merged into
//   - [ErrInvalidInput]: the merge argument is not a container
//   - [ErrUnsupportedFormat]: unknown format string
//   - [ErrDecode]: malformed YAML or JSON input
package inspect
