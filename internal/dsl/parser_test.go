package dsl_test

import (
	"testing"

	"github.com/solomonoff-lang/solomonoff/internal/dsl"
	"github.com/solomonoff-lang/solomonoff/internal/eval"
	"github.com/solomonoff-lang/solomonoff/internal/session"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

func mustEval(t *testing.T, sess *session.Session, name, input string) (string, bool) {
	t.Helper()
	rg, err := sess.RG(name)
	if err != nil {
		t.Fatalf("RG(%q): %v", name, err)
	}
	scratch := make([]int, rg.Len())
	out, ok, err := eval.Evaluate(rg, []symbol.Symbol(input), scratch)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !ok {
		return "", false
	}
	return out.String(), true
}

func TestScenario1LiteralString(t *testing.T) {
	sess := session.New()
	p := dsl.New(sess)
	if err := p.ParseLine(`f = 'aa'`); err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if out, ok := mustEval(t, sess, "f", "aa"); !ok || out != "" {
		t.Errorf(`"aa" -> (%q, %v), want ("", true)`, out, ok)
	}
	for _, in := range []string{"a", "", "aab"} {
		if _, ok := mustEval(t, sess, "f", in); ok {
			t.Errorf("%q unexpectedly accepted", in)
		}
	}
}

func TestScenario2UnionStar(t *testing.T) {
	sess := session.New()
	p := dsl.New(sess)
	if err := p.ParseLine(`f = ('aa':'yy' | 'bb':'xx')*`); err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	cases := []struct {
		in, want string
		ok       bool
	}{
		{"", "", true},
		{"aabbaa", "yyxxyy", true},
		{"a", "", false},
		{"aba", "", false},
	}
	for _, c := range cases {
		out, ok := mustEval(t, sess, "f", c.in)
		if ok != c.ok || (ok && out != c.want) {
			t.Errorf("%q -> (%q,%v), want (%q,%v)", c.in, out, ok, c.want, c.ok)
		}
	}
}

func TestScenario3WeightSelectsHigher(t *testing.T) {
	sess := session.New()
	p := dsl.New(sess)
	if err := p.ParseLine(`f = 'a':'b' 1 | 'a':'c' 2`); err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	out, ok := mustEval(t, sess, "f", "a")
	if !ok || out != "c" {
		t.Errorf(`"a" -> (%q,%v), want ("c", true)`, out, ok)
	}
}

func TestScenario4ReflectMarker(t *testing.T) {
	sess := session.New()
	p := dsl.New(sess)
	if err := p.ParseLine(`f = (:'\0' [a-z ] | 'xx':'010' 2)*`); err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	cases := []struct{ in, want string }{
		{"helxxlo", "hel010lo"},
		{"xxxx", "010010"},
	}
	for _, c := range cases {
		out, ok := mustEval(t, sess, "f", c.in)
		if !ok || out != c.want {
			t.Errorf("%q -> (%q,%v), want (%q,true)", c.in, out, ok, c.want)
		}
	}
}

func TestScenario5OstiaCompress(t *testing.T) {
	sess := session.New()
	p := dsl.New(sess)
	line := `f = ostiaCompress!('a':'b','aa':'a','ab':'b','ba':'a','bb':'b')`
	if err := p.ParseLine(line); err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	accept := map[string]string{"a": "b", "aa": "a", "ab": "b", "ba": "a", "bb": "b"}
	for in, want := range accept {
		out, ok := mustEval(t, sess, "f", in)
		if !ok || out != want {
			t.Errorf("%q -> (%q,%v), want (%q,true)", in, out, ok, want)
		}
	}
	for _, in := range []string{"aba", ""} {
		if _, ok := mustEval(t, sess, "f", in); ok {
			t.Errorf("%q unexpectedly accepted", in)
		}
	}
}

func TestScenario6SequentialPipeline(t *testing.T) {
	sess := session.New()
	p := dsl.New(sess)
	for _, line := range []string{
		`a = 'a':'b'`,
		`b = 'b':'c'`,
		`@f = a ; b`,
	} {
		if err := p.ParseLine(line); err != nil {
			t.Fatalf("ParseLine(%q): %v", line, err)
		}
	}
	pl, err := sess.LookupPipeline("f")
	if err != nil {
		t.Fatalf("LookupPipeline: %v", err)
	}
	out, ok, err := pl.Run([]symbol.Symbol("a"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ok || string(out) != "c" {
		t.Errorf(`"a" -> (%q,%v), want ("c", true)`, string(out), ok)
	}
	for _, in := range []string{"b", ""} {
		_, ok, err := pl.Run([]symbol.Symbol(in))
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if ok {
			t.Errorf("%q unexpectedly accepted", in)
		}
	}
}

func TestScenario7AlternativePipeline(t *testing.T) {
	sess := session.New()
	p := dsl.New(sess)
	for _, line := range []string{
		`a = 'a':'b'`,
		`b = 'b':'c'`,
		`c = 'c':'3'`,
		`d = 'd':'4'`,
		`@f = a ; b ; c || d`,
	} {
		if err := p.ParseLine(line); err != nil {
			t.Fatalf("ParseLine(%q): %v", line, err)
		}
	}
	pl, err := sess.LookupPipeline("f")
	if err != nil {
		t.Fatalf("LookupPipeline: %v", err)
	}

	out, ok, err := pl.Run([]symbol.Symbol("a"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ok || string(out) != "3" {
		t.Errorf(`"a" -> (%q,%v), want ("3", true)`, string(out), ok)
	}

	out, ok, err = pl.Run([]symbol.Symbol("d"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ok || string(out) != "4" {
		t.Errorf(`"d" -> (%q,%v), want ("4", true)`, string(out), ok)
	}

	_, ok, err = pl.Run([]symbol.Symbol("x"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ok {
		t.Error(`"x" unexpectedly accepted`)
	}
}

func TestAlwaysCopyAllowsRereferencingBinding(t *testing.T) {
	sess := session.New()
	p := dsl.New(sess)
	if err := p.ParseLine(`!!a = 'x'`); err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if err := p.ParseLine(`b = a a`); err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if !sess.HasVariable("a") {
		t.Error("always_copy binding should survive being referenced")
	}
	if out, ok := mustEval(t, sess, "b", "xx"); !ok || out != "" {
		t.Errorf(`"xx" -> (%q,%v), want ("", true)`, out, ok)
	}
}

func TestPlainReferenceIsConsumed(t *testing.T) {
	sess := session.New()
	p := dsl.New(sess)
	if err := p.ParseLine(`a = 'x'`); err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if err := p.ParseLine(`b = a`); err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if sess.HasVariable("a") {
		t.Error("plain (non always_copy) binding should be consumed by reference")
	}
}

func TestDuplicateVariableIsError(t *testing.T) {
	sess := session.New()
	p := dsl.New(sess)
	if err := p.ParseLine(`a = 'x'`); err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if err := p.ParseLine(`a = 'y'`); err == nil {
		t.Fatal("expected a duplicate-binding error")
	}
}

func TestSyntaxErrorReported(t *testing.T) {
	sess := session.New()
	p := dsl.New(sess)
	if err := p.ParseLine(`a = `); err == nil {
		t.Fatal("expected a syntax error")
	}
}
