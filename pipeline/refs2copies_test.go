package pipeline

import (
	"testing"

	"github.com/accelforge/specfe/ir"
)

func treeIDs(n *ir.Node) map[uint64]int {
	ids := map[uint64]int{}
	var walk func(v ir.Value)
	walk = func(v ir.Value) {
		node, ok := v.(*ir.Node)
		if !ok {
			return
		}
		ids[node.ID()]++
		for _, fv := range node.Items() {
			walk(fv)
		}
	}
	walk(n)
	return ids
}

func TestResolveNoAliases(t *testing.T) {
	s := New()
	root := s.Arena().New(nil)
	child := s.Arena().New(nil)
	child.Set("x", int64(1))
	root.Set("a", child)
	root.Set("b", "scalar")
	s.Root = root

	before := treeIDs(root)
	p := NewReferenceResolver()
	if err := p.Process(s); err != nil {
		t.Fatal(err)
	}

	// an alias-free tree keeps every node and every identity
	after := treeIDs(s.Root)
	if len(after) != len(before) {
		t.Fatalf("node count changed: %d -> %d", len(before), len(after))
	}
	for id := range before {
		if after[id] != 1 {
			t.Errorf("id %d count = %d after resolve, want 1", id, after[id])
		}
	}
}

func TestResolveSplitsAliases(t *testing.T) {
	s := New()
	root := s.Arena().New(nil)
	shared := s.Arena().New(nil)
	shared.Set("meshX", int64(4))
	root.Set("a", shared)
	root.Set("b", shared)
	s.Root = root

	p := NewReferenceResolver()
	if err := p.Process(s); err != nil {
		t.Fatal(err)
	}

	av, _ := s.Root.Get("a")
	bv, _ := s.Root.Get("b")
	an, bn := av.(*ir.Node), bv.(*ir.Node)
	if an.ID() == bn.ID() {
		t.Fatal("aliased locations still share a node")
	}
	// first location in field order keeps the original
	if an.ID() != shared.ID() {
		t.Errorf("first location id = %d, want original %d", an.ID(), shared.ID())
	}
	if !ir.Equal(an, bn) {
		t.Error("split copies are not structurally equal")
	}
	if !ir.Equal(root, s.Root) {
		t.Error("resolved tree differs structurally from the input")
	}
	if an.Parent != s.Root || bn.Parent != s.Root {
		t.Error("split copies are not parented to the root")
	}
	if bn.Doc == nil {
		t.Error("copy has no document link")
	}

	// the copies are now independent
	an.Set("meshX", int64(8))
	if v, _ := bn.Get("meshX"); v != int64(4) {
		t.Errorf("mutating one copy changed the other: %v", v)
	}
}

func TestResolveNestedAlias(t *testing.T) {
	s := New()
	root := s.Arena().New(nil)
	inner := s.Arena().New(nil)
	inner.Set("v", int64(1))
	holder := s.Arena().New(nil)
	holder.Set("inner", inner)
	root.Set("direct", inner)
	root.Set("holder", holder)
	s.Root = root

	p := NewReferenceResolver()
	if err := p.Process(s); err != nil {
		t.Fatal(err)
	}
	for id, count := range treeIDs(s.Root) {
		if count != 1 {
			t.Errorf("id %d appears %d times after resolve", id, count)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	s := New()
	root := s.Arena().New(nil)
	shared := s.Arena().New(nil)
	shared.Set("x", int64(1))
	root.Set("a", shared)
	root.Set("b", shared)
	s.Root = root

	p := NewReferenceResolver()
	if err := p.Process(s); err != nil {
		t.Fatal(err)
	}
	first := treeIDs(s.Root)
	if err := p.Process(s); err != nil {
		t.Fatal(err)
	}
	second := treeIDs(s.Root)
	if len(first) != len(second) {
		t.Fatalf("second resolve changed node count: %d -> %d", len(first), len(second))
	}
	for id := range first {
		if second[id] != 1 {
			t.Errorf("second resolve disturbed id %d", id)
		}
	}
}

func TestResolveCycle(t *testing.T) {
	s := New()
	root := s.Arena().New(nil)
	n := s.Arena().New(nil)
	n.Set("v", int64(1))
	n.Set("self", n)
	root.Set("loop", n)
	s.Root = root

	p := NewReferenceResolver()
	if err := p.Process(s); err != nil {
		t.Fatal(err)
	}
	// the result is a finite strict tree
	for id, count := range treeIDs(s.Root) {
		if count != 1 {
			t.Errorf("id %d appears %d times after resolve", id, count)
		}
	}
	lv, _ := s.Root.Get("loop")
	ln := lv.(*ir.Node)
	sv, _ := ln.Get("self")
	inner, ok := sv.(*ir.Node)
	if !ok {
		t.Fatalf("self = %T, want a copied node", sv)
	}
	if inner.ID() == ln.ID() {
		t.Error("self-reference survived resolution")
	}
	if v, _ := inner.Get("v"); v != int64(1) {
		t.Errorf("copy lost content: v = %v", v)
	}
}

func TestResolveNilRoot(t *testing.T) {
	s := New()
	p := NewReferenceResolver()
	if err := p.Process(s); err != nil {
		t.Fatal(err)
	}
}

func TestResolveRestoresProcessors(t *testing.T) {
	s := New()
	s.Root = s.Arena().New(nil)
	p := NewReferenceResolver()
	s.Processors = []Processor{p}
	if err := p.Process(s); err != nil {
		t.Fatal(err)
	}
	if len(s.Processors) != 1 {
		t.Fatalf("processor list not restored: %v", s.Processors)
	}
}
