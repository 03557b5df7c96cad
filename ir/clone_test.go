package ir

import "testing"

func TestCloneDeep(t *testing.T) {
	a := NewArena()
	root := a.New(nil)
	child := a.New(nil)
	child.Set("size", int64(64))
	root.Set("name", "pe")
	root.Set("child", child)
	root.Set("list", []Value{int64(1), child.Clone()})
	root.SetParents()

	cp := root.Clone()
	if !Equal(root, cp) {
		t.Fatal("clone is not structurally equal to the original")
	}
	if cp.ID() == root.ID() {
		t.Error("clone shares the root's id")
	}
	ccv, _ := cp.Get("child")
	cc := ccv.(*Node)
	if cc.ID() == child.ID() {
		t.Error("clone shares a nested node's id")
	}
	if cc.Parent != cp {
		t.Error("cloned child's Parent is not the cloned root")
	}

	// mutating the copy must not reach the original
	cc.Set("size", int64(128))
	if v, _ := child.Get("size"); v != int64(64) {
		t.Errorf("original mutated through clone: size = %v", v)
	}
	lv, _ := cp.Get("list")
	lv.([]Value)[0] = int64(9)
	ov, _ := root.Get("list")
	if ov.([]Value)[0] != int64(1) {
		t.Error("original sequence mutated through clone")
	}
}

func TestCloneDeadAttrs(t *testing.T) {
	a := NewArena()
	r := NewRegistry()
	k, err := r.Define("box", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := k.AddAttr(AttrDef{Name: "depth", Type: IntType, Default: int64(4)}); err != nil {
		t.Fatal(err)
	}
	n := a.New(k)
	if err := n.Delete("depth"); err != nil {
		t.Fatal(err)
	}

	cp := n.Clone()
	if _, ok := cp.Lookup("depth"); ok {
		t.Error("clone resurrected a deleted declared attribute")
	}
}

func TestCloneCycle(t *testing.T) {
	a := NewArena()
	n := a.New(nil)
	m := a.New(nil)
	n.Set("down", m)
	m.Set("up", n)

	cp := n.Clone()
	cmv, _ := cp.Get("down")
	cm := cmv.(*Node)
	// the back-edge cannot unfold into a tree, so the copy holds nil
	if up, _ := cm.Get("up"); up != nil {
		t.Errorf("back-edge cloned to %v, want nil", up)
	}
}

func TestCloneZeroValueNode(t *testing.T) {
	n := &Node{}
	n.Set("a", int64(1))
	child := &Node{}
	child.Set("b", "x")
	n.Set("child", child)

	cp := n.Clone()
	if !Equal(n, cp) {
		t.Fatal("clone of a zero-value node is not structurally equal")
	}
	// cloning materializes identities
	if n.ID() == 0 || child.ID() == 0 {
		t.Error("originals still have zero ids after Clone")
	}
	ccv, _ := cp.Get("child")
	cc := ccv.(*Node)
	if cc.ID() == child.ID() {
		t.Error("clone shares the child's id")
	}
	cc.Set("b", "y")
	if v, _ := child.Get("b"); v != "x" {
		t.Errorf("original mutated through clone: b = %v", v)
	}
}

func TestCloneSharedSubtree(t *testing.T) {
	// a diamond is not a cycle: both paths get full copies
	a := NewArena()
	root := a.New(nil)
	shared := a.New(nil)
	shared.Set("v", int64(1))
	root.Set("a", shared)
	root.Set("b", shared)

	cp := root.Clone()
	av, _ := cp.Get("a")
	bv, _ := cp.Get("b")
	an, bn := av.(*Node), bv.(*Node)
	if an == nil || bn == nil {
		t.Fatal("diamond arm cloned to nil")
	}
	if an.ID() == bn.ID() {
		t.Error("diamond arms share an id after clone")
	}
	if !Equal(an, bn) {
		t.Error("diamond arms differ structurally")
	}
}
