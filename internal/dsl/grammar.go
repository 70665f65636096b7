// Package dsl implements the textual combinator and pipeline expression
// language named throughout spec §6: string/range/codepoint literals,
// concatenation, union, Kleene operators, weight annotations, external
// function calls, and the `@NAME = ...` pipeline composition syntax, each
// parsed line binding a name into a session.Session. Grounded on the
// teacher's internal/dsl three-file split (grammar.go's lexer and AST,
// convert.go's tree-walk into domain values, parser.go's thin ParseLine
// entry point), retargeted from the teacher's graph-query grammar to the
// transducer-expression grammar of original_source/.../grammar.rs.
package dsl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var dslLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "CodeRange", Pattern: `<[0-9]+-[0-9]+>`},
	{Name: "CharClass", Pattern: `\[([^\]\\]|\\.)*\]`},
	{Name: "SQString", Pattern: `'([^'\\]|\\.)*'`},
	{Name: "EmptySet", Pattern: `\x{2205}`},
	{Name: "OrOr", Pattern: `\|\|`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[=@!()<>|*+?:;,.\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Program is the top-level AST node: a source line is zero or more
// top-level bindings (normally exactly one, but the REPL may feed a
// multi-statement script file).
type Program struct {
	Items []*TopLevel `parser:"@@*"`
}

// TopLevel dispatches between a pipeline binding (`@NAME = ...`) and a
// variable binding (`NAME = ...`).
type TopLevel struct {
	Pos      lexer.Position
	Pipeline *PipelineStmt `parser:"  @@"`
	Variable *VariableStmt `parser:"| @@"`
}

// VariableStmt is `!!? nonfunc? NAME = UnionExpr` (spec §3, §6): the
// optional `!!` prefix marks always_copy, and the optional `nonfunc` prefix
// is recorded on the binding and reported by session.ListBindings; nothing
// else reads it.
type VariableStmt struct {
	Pos        lexer.Position
	AlwaysCopy bool   `parser:"@( \"!\" \"!\" )?"`
	NonFunc    bool   `parser:"@\"nonfunc\"?"`
	Name       string `parser:"@Ident \"=\""`
	Expr       *Union `parser:"@@"`
}

// PipelineStmt is `@NAME = PipelineUnion` (spec §3, §8).
type PipelineStmt struct {
	Pos  lexer.Position
	Name string         `parser:"\"@\" @Ident \"=\""`
	Expr *PipelineUnion `parser:"@@"`
}

// Union is the lowest-precedence combinator expression: one or more
// weighted terms separated by `|` (spec §4.1 union).
type Union struct {
	Terms []*WeightedTerm `parser:"@@ ( \"|\" @@ )*"`
}

// WeightedTerm wraps a concatenation in an optional pre- and/or
// post-weight annotation (spec §6 "weight annotation (pre `N expr` or
// post `expr N`)"), applying to the whole concatenated sequence rather
// than to a single atom.
type WeightedTerm struct {
	Pre  *WeightLit `parser:"@@?"`
	Seq  *Concat    `parser:"@@"`
	Post *WeightLit `parser:"@@?"`
}

// WeightLit is a signed integer weight annotation.
type WeightLit struct {
	Neg   bool `parser:"@\"-\"?"`
	Value int  `parser:"@Int"`
}

// Concat is one or more juxtaposed atoms (no separator token), each with
// its own optional Kleene suffix.
type Concat struct {
	Atoms []*KleeneAtom `parser:"@@+"`
}

// KleeneAtom is an atom with an optional `* + ?` postfix operator (spec
// §4.1 Kleene star/plus/optional).
type KleeneAtom struct {
	Atom *Atom  `parser:"@@"`
	Op   string `parser:"@( \"*\" | \"+\" | \"?\" )?"`
}

// Atom is a single combinator-expression primitive: a string literal, an
// output literal, a character class, a codepoint range, an external
// function call, a named reference, or a parenthesized group.
type Atom struct {
	StringLit *StringLitAST `parser:"  @@"`
	OutputLit *OutputLitAST `parser:"| @@"`
	CharClass *string       `parser:"| @CharClass"`
	CodeRange *string       `parser:"| @CodeRange"`
	Call      *CallAST      `parser:"| @@"`
	Group     *Union        `parser:"| \"(\" @@ \")\""`
	Ref       *string       `parser:"| @Ident"`
}

// StringLitAST is a raw single-quoted literal (spec §6 `'abc'`), decoded
// by internal/dsl's convert step via symbol.Unescape.
type StringLitAST struct {
	Raw string `parser:"@SQString"`
}

// OutputLitAST is an output-only literal (spec §6 `:'abc'`): matches the
// empty input, always emits the decoded literal.
type OutputLitAST struct {
	Lit *StringLitAST `parser:"\":\" @@"`
}

// CallAST is an external function invocation (spec §4.7 `name!(args)`).
type CallAST struct {
	Name string     `parser:"@Ident \"!\" \"(\""`
	Args []*CallArg `parser:"( @@ ( \",\" @@ )* )? \")\""`
}

// CallArg is one argument to an external function call: either an
// informant pair (`'in':'out'` or `'in':∅`) or a bare literal path.
type CallArg struct {
	Pair *InformantPair `parser:"  @@"`
	Path *StringLitAST  `parser:"| @@"`
}

// InformantPair is one informant entry (spec §4.5,
// §4.7): `'input':'output'` for a positive pair, `'input':∅` to mark a
// query-only input with no known output.
type InformantPair struct {
	Input  *StringLitAST `parser:"@@ \":\""`
	Output *StringLitAST `parser:"( @@"`
	Empty  bool          `parser:"| @EmptySet )"`
}

// PipelineUnion is the lowest-precedence pipeline expression: one or more
// sequences separated by `||` (spec §4.4 Alternative, §8 scenario 7).
type PipelineUnion struct {
	Terms []*PipelineSeq `parser:"@@ ( \"||\" @@ )*"`
}

// PipelineSeq is one or more pipeline atoms separated by `;` (spec §4.4
// sequential composition); `;` binds tighter than `||`.
type PipelineSeq struct {
	Atoms []*PipelineAtom `parser:"@@ ( \";\" @@ )*"`
}

// PipelineAtom is a single pipeline primitive: a named pipeline reference
// (`@NAME`), a named transducer/variable reference, or a parenthesized
// group.
type PipelineAtom struct {
	PipelineRef *string        `parser:"  \"@\" @Ident"`
	Group       *PipelineUnion `parser:"| \"(\" @@ \")\""`
	VarRef      *string        `parser:"| @Ident"`
}

var dslParser = participle.MustBuild[Program](
	participle.Lexer(dslLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)
