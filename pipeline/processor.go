package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/accelforge/specfe/ir"
)

// Processor is one pass over a specification. DeclareAttrs runs for
// every processor before any Process call, because later passes may
// depend on schema entries declared by earlier ones. A processor keeps
// no mutable state across runs; its identity is its stable name.
type Processor interface {
	Name() string
	DeclareAttrs(s *Specification) error
	Process(s *Specification) error
}

// ErrBadAttrTarget reports an AddAttr call whose target is nil or not a
// kind registered with the specification. It is an implementation bug
// in a processor, never recoverable at runtime.
var ErrBadAttrTarget = errors.New("attribute target is not a registered node kind")

// ProcessorError reports a pipeline ordering violation.
type ProcessorError struct {
	Processor string
	Requires  string
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf(
		"%s must run before %s: add %s to the list of processors ahead of %s",
		e.Requires, e.Processor, e.Requires, e.Processor)
}

// Base carries the identity and logging shared by processors. Embed it
// and implement Process.
type Base struct {
	name string

	Log *slog.Logger
}

func NewBase(name string) Base {
	return Base{name: name, Log: slog.Default().With("processor", name)}
}

func (b *Base) Name() string { return b.name }

// DeclareAttrs declares nothing by default.
func (b *Base) DeclareAttrs(*Specification) error { return nil }

// Begin records that processing has started. Concrete processors call
// it first from Process.
func (b *Base) Begin(s *Specification) {
	b.Log.Debug("processing", "version", s.Version)
}

// MustRunAfter fails unless other has already run in this pipeline.
// With okIfMissing, an absent processor is accepted; one that is
// present but positioned later is always fatal.
func (b *Base) MustRunAfter(s *Specification, other string, okIfMissing bool) error {
	otherIdx := s.runIndex(other)
	myIdx := s.runIndex(b.name)
	if otherIdx > myIdx || (otherIdx == -1 && !okIfMissing) {
		return &ProcessorError{Processor: b.name, Requires: other}
	}
	return nil
}

// AddAttr declares an attribute on kind, owned by this processor. The
// owner alone may later remove the attribute from instances.
func (b *Base) AddAttr(s *Specification, kind *ir.Kind, name string, typ ir.Type, def ir.Value) error {
	return s.addAttr(b.name, kind, name, typ, def)
}
