package dsl

import "github.com/solomonoff-lang/solomonoff/internal/session"

// Parser drives one session's worth of source lines: each ParseLine call
// lexes, parses, converts, and executes every top-level binding the line
// contains, against the bound session (spec §3, §6).
type Parser struct {
	Sess *session.Session
}

// New binds a Parser to sess.
func New(sess *session.Session) *Parser {
	return &Parser{Sess: sess}
}

// ParseLine parses input and executes every binding it contains, in
// order. A syntax error aborts before any binding in the line is
// executed; a semantic error partway through a multi-statement line
// leaves earlier bindings in the line already applied, matching the
// teacher's one-statement-per-call execution model.
func (p *Parser) ParseLine(input string) error {
	ast, err := dslParser.ParseString("", input)
	if err != nil {
		return enrichSyntaxError(input, err)
	}
	for _, item := range ast.Items {
		stmt, err := convertTopLevel(p.Sess, item)
		if err != nil {
			return err
		}
		if err := stmt.Execute(p.Sess); err != nil {
			return err
		}
	}
	return nil
}
