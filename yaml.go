package inspect

import (
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Decode reads one YAML or JSON document from r. Mappings become [*Map]
// with their source key order, sequences become []any and scalars their
// natural Go values. An empty input decodes to an empty [*Map].
func Decode(r io.Reader) (any, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewMap(), nil
		}
		return nil, errors.Wrapf(ErrDecode, "%v", err)
	}
	d := nodeDecoder{expanding: make(map[*yaml.Node]bool)}
	v, err := d.fromNode(&doc)
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "%v", err)
	}
	return v, nil
}

// maxDecodeNodes bounds the nodes visited while expanding aliases.
const maxDecodeNodes = 1 << 20

type nodeDecoder struct {
	expanding map[*yaml.Node]bool
	visited   int
}

func (d *nodeDecoder) fromNode(n *yaml.Node) (any, error) {
	d.visited++
	if d.visited > maxDecodeNodes {
		return nil, errors.Newf("document expands past %d nodes", maxDecodeNodes)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NewMap(), nil
		}
		return d.fromNode(n.Content[0])
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key any
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, err
			}
			value, err := d.fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, value)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.fromNode(c)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.AliasNode:
		if d.expanding[n.Alias] {
			return nil, errors.Newf("recursive alias %q", n.Value)
		}
		d.expanding[n.Alias] = true
		defer delete(d.expanding, n.Alias)
		return d.fromNode(n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// MarshalYAML encodes the map as a mapping node in insertion order.
func (m *Map) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range m.entries {
		var key, value yaml.Node
		if err := key.Encode(e.Key); err != nil {
			return nil, err
		}
		if err := value.Encode(e.Value); err != nil {
			return nil, err
		}
		out.Content = append(out.Content, &key, &value)
	}
	return out, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
