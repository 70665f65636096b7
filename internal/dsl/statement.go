package dsl

import (
	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/pipeline"
	"github.com/solomonoff-lang/solomonoff/internal/session"
)

// Statement is one executable top-level binding produced by converting a
// parsed line (spec §3's variable and pipeline tables).
type Statement interface {
	Execute(sess *session.Session) error
}

type bindVariable struct {
	name                string
	pos                 ig.V
	alwaysCopy, nonFunc bool
	graph               *ig.G
}

func (b *bindVariable) Execute(sess *session.Session) error {
	return sess.DefineVariable(b.name, b.pos, b.alwaysCopy, b.nonFunc, b.graph)
}

type bindPipeline struct {
	name string
	pos  ig.V
	pl   *pipeline.Pipeline
}

func (b *bindPipeline) Execute(sess *session.Session) error {
	return sess.DefinePipeline(b.name, b.pos, b.pl)
}
