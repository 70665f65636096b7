package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/solomonoff-lang/solomonoff/internal/combinators"
	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/ostia"
	"github.com/solomonoff-lang/solomonoff/internal/pipeline"
	"github.com/solomonoff-lang/solomonoff/internal/registry"
	"github.com/solomonoff-lang/solomonoff/internal/session"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

func posFrom(p lexer.Position) ig.V {
	return ig.V{Line: p.Line, Col: p.Column}
}

// convertTopLevel dispatches a parsed line item to its statement builder.
func convertTopLevel(sess *session.Session, t *TopLevel) (Statement, error) {
	switch {
	case t.Variable != nil:
		return convertVariableStmt(sess, t.Variable)
	case t.Pipeline != nil:
		return convertPipelineStmt(sess, t.Pipeline)
	default:
		return nil, Error{Kind: "Parse", Message: "empty statement"}
	}
}

func convertVariableStmt(sess *session.Session, v *VariableStmt) (Statement, error) {
	pos := posFrom(v.Pos)
	g, err := convertUnion(sess, v.Expr)
	if err != nil {
		return nil, err
	}
	return &bindVariable{name: v.Name, pos: pos, alwaysCopy: v.AlwaysCopy, nonFunc: v.NonFunc, graph: g}, nil
}

func convertPipelineStmt(sess *session.Session, p *PipelineStmt) (Statement, error) {
	pos := posFrom(p.Pos)
	pl, err := convertPipelineUnion(sess, p.Expr)
	if err != nil {
		return nil, err
	}
	return &bindPipeline{name: p.Name, pos: pos, pl: pl}, nil
}

// convertUnion folds every weighted term with combinators.Union (spec
// §4.1).
func convertUnion(sess *session.Session, u *Union) (*ig.G, error) {
	var result *ig.G
	for _, term := range u.Terms {
		g, err := convertWeightedTerm(sess, term)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = g
			continue
		}
		result, err = combinators.Union(result, g)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// convertWeightedTerm builds the concatenation, then applies the pre- and
// post-weight annotations to the whole sequence (spec §6): `'a':'b' 1`
// annotates the pair as a unit, not just its last atom.
func convertWeightedTerm(sess *session.Session, wt *WeightedTerm) (*ig.G, error) {
	g, err := convertConcat(sess, wt.Seq)
	if err != nil {
		return nil, err
	}
	if wt.Pre != nil {
		if err := combinators.LeftAction(g, ig.P{Weight: weightValue(wt.Pre), Output: symbol.Empty}); err != nil {
			return nil, err
		}
	}
	if wt.Post != nil {
		if err := combinators.RightAction(g, ig.P{Weight: weightValue(wt.Post), Output: symbol.Empty}); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func weightValue(w *WeightLit) int32 {
	v := int32(w.Value)
	if w.Neg {
		v = -v
	}
	return v
}

// convertConcat folds every atom with combinators.Concatenation (spec
// §4.1), left to right.
func convertConcat(sess *session.Session, c *Concat) (*ig.G, error) {
	var result *ig.G
	for _, ka := range c.Atoms {
		g, err := convertKleeneAtom(sess, ka)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = g
			continue
		}
		result, err = combinators.Concatenation(result, g)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func convertKleeneAtom(sess *session.Session, ka *KleeneAtom) (*ig.G, error) {
	g, err := convertAtom(sess, ig.Unknown, ka.Atom)
	if err != nil {
		return nil, err
	}
	switch ka.Op {
	case "*":
		return combinators.Star(ig.Unknown, g)
	case "+":
		return combinators.Plus(ig.Unknown, g)
	case "?":
		return combinators.Optional(ig.Unknown, g)
	default:
		return g, nil
	}
}

func convertAtom(sess *session.Session, pos ig.V, a *Atom) (*ig.G, error) {
	switch {
	case a.StringLit != nil:
		return convertStringLit(pos, a.StringLit)
	case a.OutputLit != nil:
		return convertOutputLit(a.OutputLit)
	case a.CharClass != nil:
		return convertCharClass(pos, *a.CharClass)
	case a.CodeRange != nil:
		return convertCodeRange(pos, *a.CodeRange)
	case a.Call != nil:
		return convertCall(sess, pos, a.Call)
	case a.Group != nil:
		return convertUnion(sess, a.Group)
	case a.Ref != nil:
		return sess.Consume(*a.Ref)
	default:
		return nil, Error{Kind: "Parse", Message: "empty atom"}
	}
}

func decodeStringLit(s *StringLitAST) (symbol.IntSeq, error) {
	if len(s.Raw) < 2 {
		return symbol.Empty, Error{Kind: "Parse", Message: "malformed string literal"}
	}
	return symbol.Unescape(s.Raw[1 : len(s.Raw)-1])
}

// convertStringLit compiles a plain string literal into a chain of
// single-codepoint edges, each with empty output (spec §6 `'aa'` matches
// "aa" and emits nothing) — reflection is opt-in, via an explicit output
// literal carrying a `\0` REFLECT marker ahead of the consuming atom.
func convertStringLit(pos ig.V, s *StringLitAST) (*ig.G, error) {
	decoded, err := decodeStringLit(s)
	if err != nil {
		return nil, err
	}
	runes := decoded.Runes()
	if len(runes) == 0 {
		return ig.EpsilonOutput(ig.Neutral), nil
	}
	var result *ig.G
	for _, r := range runes {
		if err := symbol.ValidateInputSymbol(r); err != nil {
			return nil, err
		}
		g, err := ig.Char(pos, r, ig.Neutral)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = g
			continue
		}
		result, err = combinators.Concatenation(result, g)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func convertOutputLit(o *OutputLitAST) (*ig.G, error) {
	decoded, err := decodeStringLit(o.Lit)
	if err != nil {
		return nil, err
	}
	return ig.EpsilonOutput(ig.P{Output: decoded}), nil
}

// readClassRune decodes one (possibly backslash-escaped) element of a
// character class body, reusing symbol.Unescape's escape table on a
// one-or-two-rune slice rather than duplicating it.
func readClassRune(runes []rune, i int) (rune, int, error) {
	if i >= len(runes) {
		return 0, i, Error{Kind: "Parse", Message: "truncated character class"}
	}
	var raw string
	var next int
	if runes[i] == '\\' {
		if i+1 >= len(runes) {
			return 0, i, Error{Kind: "Parse", Message: "dangling backslash in character class"}
		}
		raw = string(runes[i : i+2])
		next = i + 2
	} else {
		raw = string(runes[i])
		next = i + 1
	}
	decoded, err := symbol.Unescape(raw)
	if err != nil {
		return 0, i, err
	}
	rs := decoded.Runes()
	if len(rs) != 1 {
		return 0, i, Error{Kind: "Parse", Message: "character class element must decode to exactly one codepoint"}
	}
	return rs[0], next, nil
}

// parseCharClassRanges walks a class body like `a-z ` into inclusive
// (lo, hi) codepoint pairs, treating `-` between two elements as a range
// and any other `-` as a literal member.
func parseCharClassRanges(body string) ([][2]rune, error) {
	runes := []rune(body)
	var out [][2]rune
	i := 0
	for i < len(runes) {
		lo, next, err := readClassRune(runes, i)
		if err != nil {
			return nil, err
		}
		i = next
		if i < len(runes) && runes[i] == '-' && i+1 < len(runes) {
			hi, next2, err := readClassRune(runes, i+1)
			if err != nil {
				return nil, err
			}
			i = next2
			out = append(out, [2]rune{lo, hi})
		} else {
			out = append(out, [2]rune{lo, lo})
		}
	}
	return out, nil
}

func convertCharClass(pos ig.V, raw string) (*ig.G, error) {
	if len(raw) < 2 {
		return nil, Error{Kind: "Parse", Message: "malformed character class"}
	}
	ranges, err := parseCharClassRanges(raw[1 : len(raw)-1])
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return nil, Error{Kind: "Parse", Message: "empty character class"}
	}
	var result *ig.G
	for _, rg := range ranges {
		lo, hi := rg[0], rg[1]
		if hi < lo {
			lo, hi = hi, lo
		}
		g, err := ig.Range(pos, symbol.Symbol(lo-1), symbol.Symbol(hi), ig.Neutral)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = g
			continue
		}
		result, err = combinators.Union(result, g)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func convertCodeRange(pos ig.V, raw string) (*ig.G, error) {
	if len(raw) < 2 {
		return nil, Error{Kind: "Parse", Message: "malformed codepoint range"}
	}
	body := raw[1 : len(raw)-1]
	parts := strings.SplitN(body, "-", 2)
	if len(parts) != 2 {
		return nil, Error{Kind: "Parse", Message: fmt.Sprintf("malformed codepoint range %q", raw)}
	}
	lo, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, Error{Kind: "Parse", Message: fmt.Sprintf("bad codepoint range lower bound %q", parts[0])}
	}
	hi, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, Error{Kind: "Parse", Message: fmt.Sprintf("bad codepoint range upper bound %q", parts[1])}
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return ig.Range(pos, symbol.Symbol(lo-1), symbol.Symbol(hi), ig.Neutral)
}

// convertCall builds a registry.Args bundle from the call's arguments and
// dispatches through the session's function registry (spec §4.7).
func convertCall(sess *session.Session, pos ig.V, c *CallAST) (*ig.G, error) {
	var informant []ostia.Sample
	var path string
	for _, arg := range c.Args {
		switch {
		case arg.Pair != nil:
			in, err := decodeStringLit(arg.Pair.Input)
			if err != nil {
				return nil, err
			}
			if arg.Pair.Empty {
				// A query pair has no known output and is not a training sample.
				continue
			}
			out, err := decodeStringLit(arg.Pair.Output)
			if err != nil {
				return nil, err
			}
			informant = append(informant, ostia.Sample{Input: in, Output: out})
		case arg.Path != nil:
			decoded, err := decodeStringLit(arg.Path)
			if err != nil {
				return nil, err
			}
			path = decoded.String()
		default:
			return nil, Error{Kind: "Parse", Message: "empty call argument"}
		}
	}
	return sess.Functions.Call(c.Name, pos, sess.Log, registry.Args{Informant: informant, Path: path})
}

// convertPipelineUnion folds `||` right-to-left into nested Alternative
// stages (spec §4.4, §8 scenario 7): the leftmost term is tried first,
// each rejection falling through to the next.
func convertPipelineUnion(sess *session.Session, pu *PipelineUnion) (*pipeline.Pipeline, error) {
	pls := make([]*pipeline.Pipeline, 0, len(pu.Terms))
	for _, seq := range pu.Terms {
		pl, err := convertPipelineSeq(sess, seq)
		if err != nil {
			return nil, err
		}
		pls = append(pls, pl)
	}
	result := pls[len(pls)-1]
	for i := len(pls) - 2; i >= 0; i-- {
		next := pipeline.NewPipeline([]pipeline.Stage{{AltLeft: pls[i], AltRight: result}})
		next.Log = sess.Log
		result = next
	}
	return result, nil
}

// convertPipelineSeq flattens a `;`-separated sequence into one stage
// list, inlining any nested pipeline's own stages rather than nesting
// pipelines inside pipelines.
func convertPipelineSeq(sess *session.Session, seq *PipelineSeq) (*pipeline.Pipeline, error) {
	var stages []pipeline.Stage
	for _, atom := range seq.Atoms {
		pl, err := convertPipelineAtom(sess, atom)
		if err != nil {
			return nil, err
		}
		stages = append(stages, pl.Stages...)
	}
	pl := pipeline.NewPipeline(stages)
	pl.Log = sess.Log
	return pl, nil
}

func convertPipelineAtom(sess *session.Session, a *PipelineAtom) (*pipeline.Pipeline, error) {
	switch {
	case a.PipelineRef != nil:
		return sess.LookupPipeline(*a.PipelineRef)
	case a.Group != nil:
		return convertPipelineUnion(sess, a.Group)
	case a.VarRef != nil:
		rg, err := sess.RG(*a.VarRef)
		if err != nil {
			return nil, err
		}
		pl := pipeline.NewPipeline([]pipeline.Stage{{RG: rg}})
		pl.Log = sess.Log
		return pl, nil
	default:
		return nil, Error{Kind: "Parse", Message: "empty pipeline atom"}
	}
}
