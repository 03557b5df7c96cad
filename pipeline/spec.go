package pipeline

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/accelforge/specfe/debug"
	"github.com/accelforge/specfe/encode"
	"github.com/accelforge/specfe/ir"
)

// Specification is the root container of one pipeline run: the node
// tree, the ordered processor list, and the attribute-ownership
// registry. Loaders populate it, Run rewrites it, consumers take the
// finished tree.
type Specification struct {
	Root       *ir.Node
	Processors []Processor
	Version    string

	arena  *ir.Arena
	kinds  *ir.Registry
	run    []Processor
	owners map[string]map[string]string
	log    *slog.Logger
}

func New() *Specification {
	return &Specification{
		arena:  ir.NewArena(),
		kinds:  ir.NewRegistry(),
		owners: make(map[string]map[string]string),
		log:    slog.Default().With("component", "pipeline"),
	}
}

func (s *Specification) Arena() *ir.Arena { return s.arena }

func (s *Specification) Kinds() *ir.Registry { return s.kinds }

// RootNode implements ir.Doc.
func (s *Specification) RootNode() *ir.Node { return s.Root }

// ProcessorsRun returns the processors that have started processing, in
// execution order. Ordering queries (MustRunAfter) read this log, not
// the configured list.
func (s *Specification) ProcessorsRun() []Processor {
	return slices.Clone(s.run)
}

func (s *Specification) runIndex(name string) int {
	for i, p := range s.run {
		if p.Name() == name {
			return i
		}
	}
	return -1
}

// AttrOwner reports which processor declared attr on the named kind.
func (s *Specification) AttrOwner(kind, attr string) (string, bool) {
	owner, ok := s.owners[kind][attr]
	return owner, ok
}

func (s *Specification) addAttr(owner string, kind *ir.Kind, name string, typ ir.Type, def ir.Value) error {
	if !s.kinds.Contains(kind) {
		kindName := "<nil>"
		if kind != nil {
			kindName = kind.Name()
		}
		return fmt.Errorf("%w: %s", ErrBadAttrTarget, kindName)
	}
	if prev, ok := s.owners[kind.Name()][name]; ok {
		return fmt.Errorf("%w: %q on kind %q already declared by %s",
			ir.ErrDupAttr, name, kind.Name(), prev)
	}
	if err := kind.AddAttr(ir.AttrDef{Name: name, Type: typ, Default: def, Owner: owner}); err != nil {
		return err
	}
	byAttr := s.owners[kind.Name()]
	if byAttr == nil {
		byAttr = make(map[string]string)
		s.owners[kind.Name()] = byAttr
	}
	byAttr[name] = owner
	return nil
}

// Run executes the pipeline: every processor's DeclareAttrs in
// registration order, then every Process in the same order, each pass
// seeing the tree as left by the previous one. The first error aborts
// the run; no partial result is valid.
func (s *Specification) Run() error {
	for _, p := range s.Processors {
		if err := p.DeclareAttrs(s); err != nil {
			return fmt.Errorf("%s: declare attrs: %w", p.Name(), err)
		}
	}
	for _, p := range s.Processors {
		s.run = append(s.run, p)
		s.log.Debug("running", "processor", p.Name())
		var before []byte
		if debug.Pipeline() && s.Root != nil {
			before, _ = encode.Marshal(s.Root)
		}
		if err := p.Process(s); err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
		if debug.Pipeline() && s.Root != nil {
			after, _ := encode.Marshal(s.Root)
			debug.Logf("%s:\n%s\n", p.Name(), debug.DiffText(string(before), string(after)))
		}
	}
	return nil
}
