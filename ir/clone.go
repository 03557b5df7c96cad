package ir

// Clone returns a deep structural copy of n with fresh identities
// throughout. Nested nodes and sequence elements are duplicated
// recursively; nothing is shared with the original. A back-edge to a
// node still being cloned cannot unfold into a finite tree, so it is
// cut: the copy holds nil at that position.
func (n *Node) Clone() *Node {
	a := n.arena
	if a == nil {
		a = NewArena()
	}
	return n.clone(a, make(map[uint64]struct{}))
}

func (n *Node) clone(a *Arena, active map[uint64]struct{}) *Node {
	if n.arena == nil {
		// zero-value nodes get an identity on first use
		n.arena = a
		n.id = a.grab()
	}
	active[n.id] = struct{}{}
	defer delete(active, n.id)

	dst := a.New(n.kind)
	dst.Doc = n.Doc
	for name, v := range n.Items() {
		cv := cloneValue(v, a, active)
		dst.Set(name, cv)
		adopt(cv, dst)
	}
	for name := range n.dead {
		dst.bury(name)
	}
	return dst
}

func cloneValue(v Value, a *Arena, active map[uint64]struct{}) Value {
	switch x := v.(type) {
	case *Node:
		if x == nil {
			return nil
		}
		if _, cyc := active[x.id]; cyc {
			return nil
		}
		return x.clone(a, active)
	case []Value:
		out := make([]Value, len(x))
		for i := range x {
			out[i] = cloneValue(x[i], a, active)
		}
		return out
	default:
		return x
	}
}
