package ir

import "fmt"

// AttrDef declares one schema attribute of a kind.
type AttrDef struct {
	Name    string
	Type    Type
	Default Value
	// Owner names the processor that declared the attribute, empty for
	// built-ins. Only the owner removes the attribute from instances.
	Owner string
}

// Kind is a named node type with an ordered, inheritable attribute
// schema. The schema is per-kind: adding an attribute makes its default
// visible on every existing and future instance of the kind.
type Kind struct {
	name  string
	base  *Kind
	attrs []AttrDef
	index map[string]int
}

func (k *Kind) Name() string { return k.name }

func (k *Kind) Base() *Kind { return k.base }

// AddAttr appends an attribute to the kind's schema. The name must be
// new, including against inherited attributes, and a non-nil default
// must match the declared type.
func (k *Kind) AddAttr(def AttrDef) error {
	if def.Name == "" {
		return fmt.Errorf("attribute on kind %q must have a name", k.name)
	}
	if _, ok := k.Lookup(def.Name); ok {
		return fmt.Errorf("%w: %q on kind %q", ErrDupAttr, def.Name, k.name)
	}
	if def.Default != nil && def.Type != AnyType && TypeOf(def.Default) != def.Type {
		return fmt.Errorf("%w: %q on kind %q: %v is not %s",
			ErrBadDefault, def.Name, k.name, def.Default, def.Type)
	}
	if k.index == nil {
		k.index = make(map[string]int)
	}
	k.index[def.Name] = len(k.attrs)
	k.attrs = append(k.attrs, def)
	return nil
}

// Lookup finds an attribute by name, searching base kinds.
func (k *Kind) Lookup(name string) (AttrDef, bool) {
	for cur := k; cur != nil; cur = cur.base {
		if i, ok := cur.index[name]; ok {
			return cur.attrs[i], true
		}
	}
	return AttrDef{}, false
}

// Attrs returns the declared attributes in declaration order, base
// kinds first.
func (k *Kind) Attrs() []AttrDef {
	if k == nil {
		return nil
	}
	return append(k.base.Attrs(), k.attrs...)
}
