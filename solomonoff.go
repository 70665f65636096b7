// Package solomonoff is the library root: a session-backed compiler and
// evaluator for weighted finite-state transducer expressions, wiring
// together internal/dsl, internal/session, internal/att, and
// internal/symbol behind a small facade. Grounded on the teacher's root
// pgraph.go (a thin struct pairing a domain model with its parser,
// exposing Query/Save/Load), retargeted from a probabilistic graph model
// to a transducer session.
package solomonoff

import (
	"io"

	"github.com/solomonoff-lang/solomonoff/internal/att"
	"github.com/solomonoff-lang/solomonoff/internal/dsl"
	"github.com/solomonoff-lang/solomonoff/internal/eval"
	"github.com/solomonoff-lang/solomonoff/internal/obs"
	"github.com/solomonoff-lang/solomonoff/internal/session"
	"github.com/solomonoff-lang/solomonoff/internal/submatch"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// Engine pairs a parser session with the DSL parser bound to it: the
// library entry point a REPL, CLI, or embedding program constructs once
// per independent session (spec §3).
type Engine struct {
	Session *session.Session
	parser  *dsl.Parser
}

// New builds an empty Engine with the default external function registry
// (spec §4.7) and a discarding logger.
func New() *Engine {
	sess := session.New()
	return &Engine{Session: sess, parser: dsl.New(sess)}
}

// SetLogger replaces the engine's logger, threaded down into OSTIA
// ingestion progress, pipeline external-stage failures, and REPL command
// timing (spec §5).
func (e *Engine) SetLogger(log obs.Logger) { e.Session.Log = log }

// EnableGhost turns on the diagnostic leak pool for this engine's session
// (spec §3, §5).
func (e *Engine) EnableGhost() { e.Session.EnableGhost() }

// Exec parses one source line and executes every binding it contains
// against the engine's session (spec §3, §6).
func (e *Engine) Exec(line string) error {
	return e.parser.ParseLine(line)
}

// Eval runs input through the named transducer, materializing and caching
// its ranged graph on first use (spec §3, §4.2).
func (e *Engine) Eval(name string, input []symbol.Symbol) (symbol.IntSeq, bool, error) {
	rg, err := e.Session.RG(name)
	if err != nil {
		return symbol.IntSeq{}, false, err
	}
	scratch := make([]int, rg.Len())
	return eval.Evaluate(rg, input, scratch)
}

// EvalSubmatch runs input through the named transducer, validates the
// output's capture-group markers (spec §4.6), and applies matcher to every
// captured region, innermost first. ok is false if the transducer rejects
// input or matcher rejects any region.
func (e *Engine) EvalSubmatch(name string, input []symbol.Symbol, matcher submatch.Matcher) (symbol.IntSeq, bool, error) {
	out, ok, err := e.Eval(name, input)
	if err != nil || !ok {
		return symbol.IntSeq{}, ok, err
	}
	if err := submatch.Validate(out); err != nil {
		return symbol.IntSeq{}, false, err
	}
	return submatch.Apply(out, matcher)
}

// ListBindings returns every bound name, sorted (spec §6 `/ls`).
func (e *Engine) ListBindings() []session.Binding { return e.Session.ListBindings() }

// Unset removes a single binding (spec §6 `/unset NAME`).
func (e *Engine) Unset(name string) error { return e.Session.Unset(name) }

// Close tears down every bound graph and, if ghost tracking is enabled,
// reports any leak (spec §5).
func (e *Engine) Close() error { return e.Session.DeleteAll() }

// WriteTransducer serializes the named transducer's ranged graph as AT&T
// text (spec §6).
func (e *Engine) WriteTransducer(w io.Writer, name string) error {
	rg, err := e.Session.RG(name)
	if err != nil {
		return err
	}
	return att.Write(w, rg)
}
