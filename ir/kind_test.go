package ir

import (
	"errors"
	"testing"
)

func TestKindAddAttr(t *testing.T) {
	r := NewRegistry()
	k, err := r.Define("component", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := k.AddAttr(AttrDef{Name: "name", Type: StringType}); err != nil {
		t.Fatal(err)
	}
	if err := k.AddAttr(AttrDef{Name: "name", Type: StringType}); !errors.Is(err, ErrDupAttr) {
		t.Errorf("duplicate AddAttr = %v, want ErrDupAttr", err)
	}
	if err := k.AddAttr(AttrDef{Name: "width", Type: IntType, Default: "wat"}); !errors.Is(err, ErrBadDefault) {
		t.Errorf("mistyped default = %v, want ErrBadDefault", err)
	}
	if err := k.AddAttr(AttrDef{Name: "width", Type: IntType, Default: int64(8)}); err != nil {
		t.Fatal(err)
	}
	if err := k.AddAttr(AttrDef{Name: ""}); err == nil {
		t.Error("empty attribute name accepted")
	}
}

func TestKindInheritance(t *testing.T) {
	r := NewRegistry()
	base, err := r.Define("node", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := base.AddAttr(AttrDef{Name: "tag", Type: StringType, Default: "none"}); err != nil {
		t.Fatal(err)
	}
	sub, err := r.Define("storage", base)
	if err != nil {
		t.Fatal(err)
	}
	if err := sub.AddAttr(AttrDef{Name: "entries", Type: IntType}); err != nil {
		t.Fatal(err)
	}

	// inherited names stay reserved
	if err := sub.AddAttr(AttrDef{Name: "tag", Type: StringType}); !errors.Is(err, ErrDupAttr) {
		t.Errorf("shadowing inherited attr = %v, want ErrDupAttr", err)
	}
	if _, ok := sub.Lookup("tag"); !ok {
		t.Error("Lookup(tag) missed inherited attribute")
	}

	attrs := sub.Attrs()
	want := []string{"tag", "entries"}
	if len(attrs) != len(want) {
		t.Fatalf("Attrs() = %v, want names %v", attrs, want)
	}
	for i := range want {
		if attrs[i].Name != want[i] {
			t.Errorf("Attrs()[%d].Name = %q, want %q", i, attrs[i].Name, want[i])
		}
	}

	a := NewArena()
	n := a.New(sub)
	if v, _ := n.Get("tag"); v != "none" {
		t.Errorf("inherited default = %v, want none", v)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	k, err := r.Define("spec", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Define("spec", nil); !errors.Is(err, ErrDupKind) {
		t.Errorf("redefining kind = %v, want ErrDupKind", err)
	}
	if _, err := r.Define("", nil); err == nil {
		t.Error("empty kind name accepted")
	}
	if got := r.Lookup("spec"); got != k {
		t.Errorf("Lookup(spec) = %v, want %v", got, k)
	}
	if r.Lookup("other") != nil {
		t.Error("Lookup(other) found an unregistered kind")
	}
	if !r.Contains(k) {
		t.Error("Contains rejected its own kind")
	}
	foreign := NewRegistry()
	fk, _ := foreign.Define("spec", nil)
	if r.Contains(fk) {
		t.Error("Contains accepted a same-named kind from another registry")
	}
	if r.Contains(nil) {
		t.Error("Contains(nil) = true")
	}

	if _, err := r.Define("node", nil); err != nil {
		t.Fatal(err)
	}
	all := r.All()
	if len(all) != 2 || all[0].Name() != "node" || all[1].Name() != "spec" {
		t.Errorf("All() order = %v, want [node spec]", all)
	}
}
