// Package registry implements the external function registry (spec §4.7):
// a name -> handler map populated at session construction with
// ostiaCompress and activeLearningFromDataset, callable from a
// `name!(args)` expression in internal/dsl. Grounded on the teacher's
// dsl.Parser / engine.InferenceEngine split — a thin struct dispatching
// into a shared collaborator, generalized here from query execution to
// named-handler dispatch.
package registry

import (
	"fmt"

	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/obs"
	"github.com/solomonoff-lang/solomonoff/internal/ostia"
)

// Error reports a registry-level failure: an unknown function name or an
// argument shape a handler rejected.
type Error struct {
	Kind    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("registry error (%v): %v", e.Kind, e.Message)
}

// Args is the argument bundle a handler validates the shape of (spec §4.7:
// "an informant, an expression, or a literal path"). Exactly one field is
// populated per call site; handlers reject the shapes they don't expect.
type Args struct {
	Informant []ostia.Sample
	Path      string
}

// Handler matches spec §4.7's signature: (position, logger, args) ->
// Result<G, CompileError>.
type Handler func(pos ig.V, log obs.Logger, args Args) (*ig.G, error)

// Registry is the name -> handler map (spec §3 "external_functions:
// Map<Name, Handler>").
type Registry struct {
	handlers map[string]Handler
}

// New builds an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Default builds the registry populated at parser-state construction with
// ostiaCompress and activeLearningFromDataset (spec §4.7).
func Default() *Registry {
	r := New()
	r.Register("ostiaCompress", ostiaCompressHandler)
	r.Register("activeLearningFromDataset", activeLearningFromDatasetHandler)
	return r
}

// Register adds a named handler. Re-registering an existing name is a
// caller bug, not a recoverable error — callers only do this once, at
// session construction, with distinct built-in names.
func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

// Names lists every registered function name, for `/funcs` (spec §6).
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// Call dispatches to the named handler, reporting UndefinedExternalFunc
// (spec §7) if name isn't registered.
func (r *Registry) Call(name string, pos ig.V, log obs.Logger, args Args) (*ig.G, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, Error{Kind: "UndefinedExternalFunc", Message: fmt.Sprintf("no external function named %q", name)}
	}
	return h(pos, log, args)
}

func ostiaCompressHandler(pos ig.V, log obs.Logger, args Args) (*ig.G, error) {
	if args.Informant == nil {
		return nil, Error{Kind: "IncorrectFunctionArguments",
			Message: "ostiaCompress expects an informant argument list"}
	}
	return ostia.Infer(args.Informant, pos, log)
}

func activeLearningFromDatasetHandler(pos ig.V, log obs.Logger, args Args) (*ig.G, error) {
	if args.Path == "" {
		return nil, Error{Kind: "IncorrectFunctionArguments",
			Message: "activeLearningFromDataset expects a literal path argument"}
	}
	return ActiveLearningFromDataset(args.Path, pos, log)
}
