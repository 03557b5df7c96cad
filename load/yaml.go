package load

import (
	"fmt"
	"sort"

	"github.com/accelforge/specfe/ir"
	"github.com/accelforge/specfe/pipeline"

	"github.com/goccy/go-yaml"
)

// fromYAML converts a decoded YAML value into a tree value. Mappings
// become nodes of kind, preserving field order from the source.
func fromYAML(s *pipeline.Specification, kind *ir.Kind, v any) (ir.Value, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		n := s.Arena().New(kind)
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v", item.Key)
			}
			if n.Has(key) {
				return nil, fmt.Errorf("duplicate key %q", key)
			}
			fv, err := fromYAML(s, kind, item.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			n.Set(key, fv)
		}
		return n, nil
	case []any:
		out := make([]ir.Value, len(x))
		for i := range x {
			var err error
			if out[i], err = fromYAML(s, kind, x[i]); err != nil {
				return nil, err
			}
		}
		return out, nil
	case nil, bool, string, int64, float64:
		return x, nil
	case int:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case float32:
		return float64(x), nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}

// link walks the finished tree and sets every node's Parent and Doc,
// reaching into sequences for node elements.
func link(n *ir.Node, doc ir.Doc, parent *ir.Node) {
	n.Parent = parent
	n.Doc = doc
	for _, v := range n.Items() {
		switch x := v.(type) {
		case *ir.Node:
			link(x, doc, n)
		case []ir.Value:
			for _, ev := range x {
				if child, ok := ev.(*ir.Node); ok {
					link(child, doc, n)
				}
			}
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
