package ir

// Equal reports structural equality of two values: same shape and same
// field values, recursively. It is identity-blind — two distinct nodes
// compare equal when their kinds and contents do. Sharing a location is
// a property of IDs, not of Equal.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Node:
		y, ok := b.(*Node)
		if !ok {
			return false
		}
		return equalNodes(x, y)
	case []Value:
		y, ok := b.([]Value)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	default:
		if ax, ok := normInt(a); ok {
			bx, ok := normInt(b)
			return ok && ax == bx
		}
		return a == b
	}
}

func equalNodes(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind != b.kind {
		return false
	}
	if len(a.fields) != len(b.fields) {
		return false
	}
	for i := range a.fields {
		if a.fields[i].name != b.fields[i].name {
			return false
		}
		if !Equal(a.fields[i].value, b.fields[i].value) {
			return false
		}
	}
	return true
}
