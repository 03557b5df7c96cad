package eval

import (
	"fmt"

	"github.com/accelforge/specfe/debug"
	"github.com/accelforge/specfe/ir"
	"github.com/accelforge/specfe/pipeline"
)

// EvaluatorName is the Evaluator's stable pipeline name.
const EvaluatorName = "evaluate-expressions"

// CustomFuncsAttr is the spec-kind attribute naming the helper
// functions a document enables for its expressions. The Evaluator
// declares it, and only the Evaluator removes it.
const CustomFuncsAttr = "expression_custom_functions"

// Evaluator is the pipeline pass that expands $[...] expressions in
// string values across the whole tree. The environment is the
// document's variables section merged over caller-supplied data.
type Evaluator struct {
	pipeline.Base

	Data Env
}

func New(data Env) *Evaluator {
	return &Evaluator{Base: pipeline.NewBase(EvaluatorName), Data: data}
}

func (e *Evaluator) DeclareAttrs(s *pipeline.Specification) error {
	kind := s.Kinds().Lookup("spec")
	if kind == nil {
		var err error
		if kind, err = s.Kinds().Define("spec", nil); err != nil {
			return err
		}
	}
	return e.AddAttr(s, kind, CustomFuncsAttr, ir.SeqType, []ir.Value{})
}

func (e *Evaluator) Process(s *pipeline.Specification) error {
	e.Begin(s)
	// Expanding an aliased graph would evaluate a shared node through
	// one path and surprise every other path into it.
	if err := e.MustRunAfter(s, pipeline.ReferenceResolverName, false); err != nil {
		return err
	}
	if s.Root == nil {
		return nil
	}
	env, err := e.environment(s)
	if err != nil {
		return err
	}
	// variables first, so the rest of the document sees their final
	// values
	if vars, ok := varsNode(s.Root); ok {
		if _, err := ExpandValue(vars, env); err != nil {
			return fmt.Errorf("variables: %w", err)
		}
		for name, v := range vars.Items() {
			env[name] = envValue(v)
		}
	}
	if debug.Eval() {
		debug.Logf("eval env: %v\n", env)
	}
	if _, err := ExpandValue(s.Root, env); err != nil {
		return err
	}
	// consumed; removing it is the declaring processor's job alone,
	// and removal covers the declared default too
	if _, ok := s.Root.Lookup(CustomFuncsAttr); ok {
		return s.Root.Delete(CustomFuncsAttr)
	}
	return nil
}

func (e *Evaluator) environment(s *pipeline.Specification) (Env, error) {
	env := Env{}
	for k, v := range baseFuncs {
		env[k] = v
	}
	if names, ok := s.Root.Lookup(CustomFuncsAttr); ok {
		seq, ok := names.([]ir.Value)
		if !ok {
			return nil, fmt.Errorf("%s must be a sequence, got %T", CustomFuncsAttr, names)
		}
		extra, err := CustomFuncs(seq)
		if err != nil {
			return nil, err
		}
		for k, f := range extra {
			env[k] = f
		}
	}
	for k, v := range e.Data {
		env[k] = v
	}
	if vars, ok := varsNode(s.Root); ok {
		for name, v := range vars.Items() {
			env[name] = envValue(v)
		}
	}
	return env, nil
}

func varsNode(root *ir.Node) (*ir.Node, bool) {
	v, ok := root.Lookup("variables")
	if !ok {
		return nil, false
	}
	n, ok := v.(*ir.Node)
	return n, ok && n != nil
}

// envValue converts a tree value for use in expression environments;
// nested nodes become plain maps so expressions can index into them.
func envValue(v ir.Value) any {
	switch x := v.(type) {
	case *ir.Node:
		m := make(map[string]any, x.Len())
		for name, fv := range x.Items() {
			m[name] = envValue(fv)
		}
		return m
	case []ir.Value:
		out := make([]any, len(x))
		for i := range x {
			out[i] = envValue(x[i])
		}
		return out
	default:
		return v
	}
}
