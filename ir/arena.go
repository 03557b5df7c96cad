package ir

// Arena issues node identities. Identities are monotonic and never
// reused, so a set of them stays a sound alias detector for the life of
// the arena no matter what happens to the nodes themselves.
type Arena struct {
	next uint64
}

func NewArena() *Arena {
	return &Arena{}
}

// New allocates a node of the given kind. A nil kind is allowed for
// plain mapping nodes with no declared schema.
func (a *Arena) New(kind *Kind) *Node {
	return &Node{kind: kind, arena: a, id: a.grab()}
}

func (a *Arena) grab() uint64 {
	a.next++
	return a.next
}
