package pipeline

import (
	"github.com/accelforge/specfe/debug"
	"github.com/accelforge/specfe/ir"
)

// ReferenceResolverName is the stable pipeline name of the resolver,
// for MustRunAfter queries.
const ReferenceResolverName = "references-to-copies"

// ReferenceResolver turns an aliased node graph into a strict tree. A
// loaded document may hold the same node at several locations (a
// reusable block referenced from multiple parents); downstream
// consumers assume every node has exactly one parent. The resolver
// walks the tree depth-first in field order: the first location to
// reach a node keeps it, every later location gets an independent deep
// copy, and singly-reachable nodes are never copied.
type ReferenceResolver struct {
	Base
}

func NewReferenceResolver() *ReferenceResolver {
	return &ReferenceResolver{Base: NewBase(ReferenceResolverName)}
}

func (p *ReferenceResolver) Process(s *Specification) error {
	p.Begin(s)
	if s.Root == nil {
		return nil
	}
	// The pipeline list is configuration, not data: park it so the walk
	// cannot reach it, restore it when done.
	procs := s.Processors
	s.Processors = nil
	seen := make(map[uint64]struct{})
	root := p.visit(s, s.Root, seen, 0).(*ir.Node)
	root.Doc = s
	s.Root = root
	s.Processors = procs
	return nil
}

// visit resolves one location. The node is detached before any decision
// so the same function serves first visits and alias visits; the caller
// holding the result as a field value establishes the true Parent link.
// The seen set holds arena identities, which are never reused, so no
// retention of visited values is needed to keep it sound.
func (p *ReferenceResolver) visit(s *Specification, v ir.Value, seen map[uint64]struct{}, depth int) ir.Value {
	n, ok := v.(*ir.Node)
	if !ok {
		// Aliasing of non-node values is not resolved.
		return v
	}
	n.Parent = nil

	if _, dup := seen[n.ID()]; dup {
		if debug.Resolve() {
			debug.Logf("depth %d: splitting aliased node %d\n", depth, n.ID())
		}
		n = n.Clone()
	}
	seen[n.ID()] = struct{}{}

	for name, val := range n.Items() {
		nv := p.visit(s, val, seen, depth+1)
		n.Set(name, nv)
		if child, ok := nv.(*ir.Node); ok {
			child.Parent = n
			child.Doc = s
		}
	}
	n.Parent = nil
	return n
}
