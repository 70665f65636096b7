// Package session implements the parser state (spec §3): named G and
// pipeline bindings, an on-demand optimised-RG cache, always_copy
// consumption semantics, and the optional ghost diagnostic pool.
// Grounded on teacher dsl.Parser's CreateParser (clone-on-construct
// session state wrapping a shared collaborator) and
// original_source/.../parser_state.rs.
package session

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/obs"
	"github.com/solomonoff-lang/solomonoff/internal/pipeline"
	"github.com/solomonoff-lang/solomonoff/internal/ranged"
	"github.com/solomonoff-lang/solomonoff/internal/registry"
)

// Error reports a session-level failure: a duplicate or missing name.
type Error struct {
	Kind    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("session error (%v): %v", e.Kind, e.Message)
}

// variableEntry is one binding in the variables table (spec §3:
// "variables: Map<Name, (position, always_copy, G, Optional<RG>)>").
type variableEntry struct {
	pos        ig.V
	alwaysCopy bool
	nonFunc    bool
	graph      *ig.G
	rg         *ranged.RG
	token      uuid.UUID
}

// pipelineEntry is one binding in the pipelines table (spec §3).
type pipelineEntry struct {
	pos ig.V
	pl  *pipeline.Pipeline
}

// Session is the parser's mutable state: two name tables, the external
// function registry, and an optional ghost pool (spec §3).
type Session struct {
	variables map[string]*variableEntry
	pipelines map[string]*pipelineEntry
	Functions *registry.Registry
	Log       obs.Logger
	ghost     *Ghost
}

// New builds an empty session with the default external function
// registry (spec §4.7) and no ghost tracking.
func New() *Session {
	return &Session{
		variables: make(map[string]*variableEntry),
		pipelines: make(map[string]*pipelineEntry),
		Functions: registry.Default(),
		Log:       obs.Nop(),
	}
}

// EnableGhost turns on leak tracking for this session (spec §3, §5).
func (s *Session) EnableGhost() { s.ghost = NewGhost() }

// DefineVariable binds name to g (spec §3). Re-binding an existing name is
// DuplicateFunction (spec §7 — the original's "function" vocabulary for a
// named transducer binding, distinct from DuplicatePipeline).
func (s *Session) DefineVariable(name string, pos ig.V, alwaysCopy, nonFunc bool, g *ig.G) error {
	if existing, ok := s.variables[name]; ok {
		return Error{Kind: "DuplicateFunction",
			Message: fmt.Sprintf("%q already bound at %v, re-bound at %v", name, existing.pos, pos)}
	}
	if _, ok := s.pipelines[name]; ok {
		return Error{Kind: "DuplicateFunction",
			Message: fmt.Sprintf("%q is already bound as a pipeline", name)}
	}
	entry := &variableEntry{pos: pos, alwaysCopy: alwaysCopy, nonFunc: nonFunc, graph: g}
	entry.token = s.ghost.Track(name)
	s.variables[name] = entry
	return nil
}

// DefinePipeline binds name to pl (spec §3, `@NAME = PIPELINE_EXPR`).
// Re-binding an existing name is DuplicatePipeline (spec §7).
func (s *Session) DefinePipeline(name string, pos ig.V, pl *pipeline.Pipeline) error {
	if existing, ok := s.pipelines[name]; ok {
		return Error{Kind: "DuplicatePipeline",
			Message: fmt.Sprintf("%q already bound at %v, re-bound at %v", name, existing.pos, pos)}
	}
	if _, ok := s.variables[name]; ok {
		return Error{Kind: "DuplicatePipeline",
			Message: fmt.Sprintf("%q is already bound as a variable", name)}
	}
	s.pipelines[name] = &pipelineEntry{pos: pos, pl: pl}
	return nil
}

// Consume implements spec §3's consumption rule for a NamedRef appearing
// inside another expression: an always_copy=false binding is moved out
// (removed from the table, returned as-is) on first consumption; an
// always_copy=true binding is deep-cloned every time and stays bound.
func (s *Session) Consume(name string) (*ig.G, error) {
	entry, ok := s.variables[name]
	if !ok {
		return nil, Error{Kind: "UndefinedFunction", Message: fmt.Sprintf("undefined name %q", name)}
	}
	if entry.alwaysCopy {
		return entry.graph.Clone(), nil
	}
	delete(s.variables, name)
	s.ghost.Release(entry.token)
	return entry.graph, nil
}

// RG returns the cached ranged graph for a variable binding, materializing
// and caching it on first use (spec §3 "on-demand RG materialization").
// Unlike Consume, this never removes or clones the binding: evaluation is
// read-only.
func (s *Session) RG(name string) (*ranged.RG, error) {
	entry, ok := s.variables[name]
	if !ok {
		return nil, Error{Kind: "NonexistentTransducer", Message: fmt.Sprintf("no transducer named %q", name)}
	}
	if entry.rg == nil {
		rg, err := ranged.Build(entry.graph)
		if err != nil {
			return nil, err
		}
		entry.rg = rg
	}
	return entry.rg, nil
}

// LookupPipeline resolves a bound pipeline name (spec §3, used when
// `@NAME` appears inside a larger pipeline expression).
func (s *Session) LookupPipeline(name string) (*pipeline.Pipeline, error) {
	entry, ok := s.pipelines[name]
	if !ok {
		return nil, Error{Kind: "UndefinedPipeline", Message: fmt.Sprintf("undefined pipeline %q", name)}
	}
	return entry.pl, nil
}

// HasVariable reports whether name is currently bound as a variable.
func (s *Session) HasVariable(name string) bool {
	_, ok := s.variables[name]
	return ok
}

// Binding describes one name for listing purposes (spec §6 `/ls`).
type Binding struct {
	Name       string
	Pos        ig.V
	AlwaysCopy bool
	NonFunc    bool
	IsPipeline bool
}

// ListBindings returns every bound name, sorted (spec §6: "`/ls` (list
// bindings, sorted)").
func (s *Session) ListBindings() []Binding {
	out := make([]Binding, 0, len(s.variables)+len(s.pipelines))
	for name, e := range s.variables {
		out = append(out, Binding{Name: name, Pos: e.pos, AlwaysCopy: e.alwaysCopy, NonFunc: e.nonFunc})
	}
	for name, e := range s.pipelines {
		out = append(out, Binding{Name: name, Pos: e.pos, IsPipeline: true})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Unset removes a single binding (spec §6 `/unset NAME`), tearing down its
// graph if it was a variable.
func (s *Session) Unset(name string) error {
	if entry, ok := s.variables[name]; ok {
		entry.graph.DeleteAll()
		s.ghost.Release(entry.token)
		delete(s.variables, name)
		return nil
	}
	if _, ok := s.pipelines[name]; ok {
		delete(s.pipelines, name)
		return nil
	}
	return Error{Kind: "UndefinedFunction", Message: fmt.Sprintf("no binding named %q", name)}
}

// DeleteAll tears down every bound graph (spec §5 "Parser state's
// delete_all frees every G") and asserts the ghost pool is empty
// afterward, if tracking is enabled.
func (s *Session) DeleteAll() error {
	for name, entry := range s.variables {
		entry.graph.DeleteAll()
		s.ghost.Release(entry.token)
		delete(s.variables, name)
	}
	s.pipelines = make(map[string]*pipelineEntry)
	return s.ghost.AssertEmpty()
}
