// Package load reads YAML specification files into a populated
// Specification: it expands globs, sniffs the document version, decodes
// with field order preserved, and assembles the node tree with parent
// and document links in place.
package load

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/accelforge/specfe/debug"
	"github.com/accelforge/specfe/ir"
	"github.com/accelforge/specfe/pipeline"

	"github.com/goccy/go-yaml"
)

// SupportedVersions lists the accepted "version:" values.
var SupportedVersions = []string{"0.3", "0.4"}

var versionRE = regexp.MustCompile(`version:[\s'"]*(\d+\.\d+)`)

var (
	ErrNotFound           = errors.New("no files matched")
	ErrNoVersion          = errors.New(`no version found in input files; have a "version: X.Y" somewhere in the inputs`)
	ErrVersionMismatch    = errors.New("input files disagree on version")
	ErrVersionUnsupported = errors.New("unsupported version")
	ErrBadDocument        = errors.New("malformed document")
	ErrDupSection         = errors.New("duplicate top-level section")
)

type config struct {
	data       map[string]string
	processors []pipeline.Processor
}

type Option func(*config)

// WithData merges key=value template data into the document's
// variables section, where expressions can see it.
func WithData(data map[string]string) Option {
	return func(c *config) {
		c.data = data
	}
}

// WithProcessors sets the pipeline the returned specification will run.
func WithProcessors(ps ...pipeline.Processor) Option {
	return func(c *config) {
		c.processors = ps
	}
}

// Files loads the YAML files matching patterns into one specification.
// Top-level sections from all files are merged into a single root;
// defining the same section twice is an error.
func Files(patterns []string, opts ...Option) (*pipeline.Specification, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	files, err := expandGlobs(patterns)
	if err != nil {
		return nil, err
	}
	contents := make([][]byte, len(files))
	for i, file := range files {
		if contents[i], err = os.ReadFile(file); err != nil {
			return nil, fmt.Errorf("could not read %q: %w", file, err)
		}
	}
	version, err := SniffVersion(contents)
	if err != nil {
		return nil, err
	}
	if debug.Load() {
		debug.Logf("loading version %s from %v\n", version, files)
	}

	s := pipeline.New()
	s.Version = version
	s.Processors = cfg.processors
	specKind, err := s.Kinds().Define("spec", nil)
	if err != nil {
		return nil, err
	}
	nodeKind, err := s.Kinds().Define("node", nil)
	if err != nil {
		return nil, err
	}

	root := s.Arena().New(specKind)
	root.Set("version", version)
	for i, data := range contents {
		if err := mergeFile(s, nodeKind, root, data); err != nil {
			return nil, fmt.Errorf("%s: %w", files[i], err)
		}
	}
	if len(cfg.data) > 0 {
		mergeData(s, nodeKind, root, cfg.data)
	}
	link(root, s, nil)
	s.Root = root
	return s, nil
}

func expandGlobs(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, pattern)
		}
		files = append(files, matches...)
	}
	return files, nil
}

// SniffVersion extracts the single "version: X.Y" all inputs agree on
// and checks it against SupportedVersions.
func SniffVersion(docs [][]byte) (string, error) {
	versions := map[string]struct{}{}
	for _, doc := range docs {
		if m := versionRE.FindSubmatch(doc); m != nil {
			versions[string(m[1])] = struct{}{}
		}
	}
	if len(versions) == 0 {
		return "", ErrNoVersion
	}
	if len(versions) > 1 {
		found := make([]string, 0, len(versions))
		for v := range versions {
			found = append(found, fmt.Sprintf("%q", v))
		}
		return "", fmt.Errorf("%w: found %s", ErrVersionMismatch, strings.Join(found, ", "))
	}
	var version string
	for v := range versions {
		version = v
	}
	for _, v := range SupportedVersions {
		if v == version {
			return version, nil
		}
	}
	return "", fmt.Errorf("%w: %s (supported: %s)",
		ErrVersionUnsupported, version, strings.Join(SupportedVersions, ", "))
}

func mergeFile(s *pipeline.Specification, nodeKind *ir.Kind, root *ir.Node, data []byte) error {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return err
	}
	if doc == nil {
		return nil
	}
	ms, ok := doc.(yaml.MapSlice)
	if !ok {
		return fmt.Errorf("%w: top level must be a mapping, got %T", ErrBadDocument, doc)
	}
	for _, item := range ms {
		key, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("%w: non-string key %v", ErrBadDocument, item.Key)
		}
		if key == "version" {
			// already sniffed and recorded
			continue
		}
		if root.Has(key) {
			return fmt.Errorf("%w: %q", ErrDupSection, key)
		}
		v, err := fromYAML(s, nodeKind, item.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		root.Set(key, v)
	}
	return nil
}

func mergeData(s *pipeline.Specification, nodeKind *ir.Kind, root *ir.Node, data map[string]string) {
	var vars *ir.Node
	if v, ok := root.Lookup("variables"); ok {
		vars, _ = v.(*ir.Node)
	}
	if vars == nil {
		vars = s.Arena().New(nodeKind)
		root.Set("variables", vars)
	}
	for _, key := range sortedKeys(data) {
		vars.Set(key, data[key])
	}
}
