package ir

import (
	"fmt"
	"iter"
)

// Value is anything a node field can hold: a scalar (string, int64,
// float64, bool, nil), a []Value sequence, or a nested *Node.
type Value = any

// Doc is implemented by the root container that owns a node tree.
type Doc interface {
	RootNode() *Node
}

// Node is an ordered mapping from field name to value. Insertion order
// is iteration order, and iteration order is the traversal order of
// every pass that walks the tree.
//
// Nodes belonging to a document come from Arena.New, which issues their
// identities. The zero value works as a plain mapping; it is given an
// identity the first time an identity-dependent operation needs one.
type Node struct {
	// Parent names the node currently holding this node as a field
	// value, or nil at the root or while detached. It is a navigation
	// aid, never ownership.
	Parent *Node

	// Doc points back at the owning document.
	Doc Doc

	kind  *Kind
	arena *Arena
	id    uint64

	fields []field
	index  map[string]int
	dead   map[string]struct{}
}

type field struct {
	name  string
	value Value
}

// ID is the node's arena identity. Two locations alias when they hold
// nodes with the same ID; Equal does not consult it.
func (n *Node) ID() uint64 { return n.id }

func (n *Node) Kind() *Kind { return n.kind }

// Len counts the stored fields, ignoring undeclared-but-defaulted
// attributes.
func (n *Node) Len() int { return len(n.fields) }

// Has reports whether name is stored on this node. Declared attributes
// that only have a schema default are not stored.
func (n *Node) Has(name string) bool {
	_, ok := n.index[name]
	return ok
}

// Get returns the stored value for name, falling back to the kind's
// declared default. A deleted declared attribute stays not-found.
func (n *Node) Get(name string) (Value, error) {
	if v, ok := n.Lookup(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoAttr, name)
}

// Lookup is Get without the error.
func (n *Node) Lookup(name string) (Value, bool) {
	if _, gone := n.dead[name]; gone {
		return nil, false
	}
	if i, ok := n.index[name]; ok {
		return n.fields[i].value, true
	}
	if n.kind != nil {
		if def, ok := n.kind.Lookup(name); ok {
			return def.Default, true
		}
	}
	return nil, false
}

// Set stores a value under name, appending the field when new and
// reviving a deleted declared attribute.
func (n *Node) Set(name string, v Value) {
	delete(n.dead, name)
	if i, ok := n.index[name]; ok {
		n.fields[i].value = v
		return
	}
	if n.index == nil {
		n.index = make(map[string]int)
	}
	n.index[name] = len(n.fields)
	n.fields = append(n.fields, field{name: name, value: v})
}

// Delete removes a field. A declared attribute stays not-found after
// deletion rather than reverting to its default.
func (n *Node) Delete(name string) error {
	i, stored := n.index[name]
	if !stored {
		if _, ok := n.Lookup(name); !ok {
			return fmt.Errorf("%w: %q", ErrNoAttr, name)
		}
		n.bury(name)
		return nil
	}
	copy(n.fields[i:], n.fields[i+1:])
	n.fields = n.fields[:len(n.fields)-1]
	delete(n.index, name)
	for j := i; j < len(n.fields); j++ {
		n.index[n.fields[j].name] = j
	}
	if n.kind != nil {
		if _, declared := n.kind.Lookup(name); declared {
			n.bury(name)
		}
	}
	return nil
}

func (n *Node) bury(name string) {
	if n.dead == nil {
		n.dead = make(map[string]struct{})
	}
	n.dead[name] = struct{}{}
}

// Items iterates the stored fields in insertion order.
func (n *Node) Items() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i := range n.fields {
			if !yield(n.fields[i].name, n.fields[i].value) {
				return
			}
		}
	}
}

// Names returns the stored field names in insertion order.
func (n *Node) Names() []string {
	out := make([]string, len(n.fields))
	for i := range n.fields {
		out[i] = n.fields[i].name
	}
	return out
}

// SetParents points every direct child node's Parent at n.
func (n *Node) SetParents() {
	for _, v := range n.Items() {
		adopt(v, n)
	}
}

// adopt establishes the parent link for node values, reaching one level
// into sequences (a node held in a sequence is contained by the node
// holding the sequence).
func adopt(v Value, parent *Node) {
	switch x := v.(type) {
	case *Node:
		x.Parent = parent
	case []Value:
		for _, e := range x {
			adopt(e, parent)
		}
	}
}

// Root follows Parent links up to the top of the tree.
func (n *Node) Root() *Node {
	res := n
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
