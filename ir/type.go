package ir

import "fmt"

// Type is the declared type of a schema attribute.
type Type int

const (
	AnyType Type = iota
	StringType
	IntType
	FloatType
	BoolType
	SeqType
	NodeType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		AnyType:    "Any",
		StringType: "String",
		IntType:    "Int",
		FloatType:  "Float",
		BoolType:   "Bool",
		SeqType:    "Seq",
		NodeType:   "Node",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Any":    AnyType,
		"String": StringType,
		"Int":    IntType,
		"Float":  FloatType,
		"Bool":   BoolType,
		"Seq":    SeqType,
		"Node":   NodeType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		AnyType,
		StringType,
		IntType,
		FloatType,
		BoolType,
		SeqType,
		NodeType,
	}
}

// TypeOf reports the Type of a value. Unknown scalars and nil report
// AnyType.
func TypeOf(v Value) Type {
	switch v.(type) {
	case string:
		return StringType
	case int, int64:
		return IntType
	case float64:
		return FloatType
	case bool:
		return BoolType
	case []Value:
		return SeqType
	case *Node:
		return NodeType
	}
	return AnyType
}

func normInt(v Value) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	}
	return 0, false
}
