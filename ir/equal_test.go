package ir

import "testing"

func TestEqual(t *testing.T) {
	a := NewArena()
	mk := func(pairs ...any) *Node {
		n := a.New(nil)
		for i := 0; i < len(pairs); i += 2 {
			n.Set(pairs[i].(string), pairs[i+1])
		}
		return n
	}

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nil == nil", nil, nil, true},
		{"string", "x", "x", true},
		{"string mismatch", "x", "y", false},
		{"int and int64", int(3), int64(3), true},
		{"int and float", int64(3), float64(3), false},
		{"bool", true, true, true},
		{"seq", []Value{int64(1), "a"}, []Value{int64(1), "a"}, true},
		{"seq length", []Value{int64(1)}, []Value{int64(1), int64(2)}, false},
		{"seq vs scalar", []Value{int64(1)}, int64(1), false},
		{"nodes same content", mk("a", int64(1)), mk("a", int64(1)), true},
		{"nodes value mismatch", mk("a", int64(1)), mk("a", int64(2)), false},
		{"nodes name mismatch", mk("a", int64(1)), mk("b", int64(1)), false},
		{"nodes order matters", mk("a", int64(1), "b", int64(2)), mk("b", int64(2), "a", int64(1)), false},
		{"node vs scalar", mk(), "x", false},
		{"nested", mk("c", mk("d", "x")), mk("c", mk("d", "x")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEqualKinds(t *testing.T) {
	a := NewArena()
	r := NewRegistry()
	k1, _ := r.Define("k1", nil)
	k2, _ := r.Define("k2", nil)
	n1 := a.New(k1)
	n2 := a.New(k2)
	if Equal(n1, n2) {
		t.Error("nodes of different kinds compare equal")
	}
	if !Equal(a.New(k1), a.New(k1)) {
		t.Error("empty nodes of the same kind compare unequal")
	}
}
