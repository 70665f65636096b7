// Package replcmd implements the REPL's slash-command surface (spec §6):
// `/?`, `/eval`, `/ls`, `/unset`, `/unset_all`, `/funcs`, `/verbose`, with
// every other line forwarded to internal/dsl as a binding statement.
// Grounded on teacher cmd/cli/main.go's `switch cmd` command loop,
// generalized from graph-session commands (new/load/use/list) to spec
// §6's transducer-session commands; every command's wall-clock duration is
// reported through internal/obs (spec §6 "each command reports its
// wall-clock duration via the debug logger").
package replcmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/solomonoff-lang/solomonoff/internal/dsl"
	"github.com/solomonoff-lang/solomonoff/internal/eval"
	"github.com/solomonoff-lang/solomonoff/internal/session"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// Error reports a malformed or unknown REPL command (spec §7
// IncorrectCommandArguments / UnrecognisedCommand).
type Error struct {
	Kind    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("repl error (%v): %v", e.Kind, e.Message)
}

const helpText = `Solomonoff interactive REPL

Commands:
  /?                      Show this help message
  /eval NAME INPUT        Evaluate INPUT through the named transducer
  /ls                     List bound names, sorted
  /unset NAME             Remove a single binding
  /unset_all              Remove every binding
  /funcs                  List registered external functions
  /verbose true|false     Toggle debug-level logging

Any other input is parsed as a variable or pipeline binding, e.g.:
  f = 'aa'
  @f = a ; b
`

// Dispatcher routes one REPL line to either a slash command or the DSL
// parser, against a single bound session.
type Dispatcher struct {
	Sess   *session.Session
	Parser *dsl.Parser
	Out    io.Writer
}

// New builds a Dispatcher bound to sess, writing command output to out.
func New(sess *session.Session, out io.Writer) *Dispatcher {
	return &Dispatcher{Sess: sess, Parser: dsl.New(sess), Out: out}
}

// Dispatch runs one line: a `/`-prefixed command, or a statement forwarded
// to the DSL parser. Every branch's duration is logged regardless of
// outcome.
func (d *Dispatcher) Dispatch(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	start := time.Now()
	var name string
	var err error
	if strings.HasPrefix(line, "/") {
		name, err = d.runCommand(line)
	} else {
		name, err = "statement", d.Parser.ParseLine(line)
	}
	d.Sess.Log.Duration(name, time.Since(start))
	return err
}

func (d *Dispatcher) runCommand(line string) (string, error) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "/?", "/help":
		fmt.Fprint(d.Out, helpText)
		return cmd, nil
	case "/eval":
		return cmd, d.cmdEval(args)
	case "/ls":
		return cmd, d.cmdList()
	case "/unset":
		return cmd, d.cmdUnset(args)
	case "/unset_all":
		return cmd, d.Sess.DeleteAll()
	case "/funcs":
		return cmd, d.cmdFuncs()
	case "/verbose":
		return cmd, d.cmdVerbose(args)
	default:
		return cmd, Error{Kind: "UnrecognisedCommand", Message: fmt.Sprintf("unrecognised command %q", cmd)}
	}
}

func (d *Dispatcher) cmdEval(args []string) error {
	if len(args) < 2 {
		return Error{Kind: "IncorrectCommandArguments", Message: "usage: /eval NAME INPUT"}
	}
	name := args[0]
	input := strings.Join(args[1:], " ")
	rg, err := d.Sess.RG(name)
	if err != nil {
		return err
	}
	scratch := make([]int, rg.Len())
	out, ok, err := eval.Evaluate(rg, []symbol.Symbol(input), scratch)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(d.Out, "(rejected)")
		return nil
	}
	fmt.Fprintln(d.Out, out.String())
	return nil
}

func (d *Dispatcher) cmdList() error {
	bindings := d.Sess.ListBindings()
	if len(bindings) == 0 {
		fmt.Fprintln(d.Out, "(no bindings)")
		return nil
	}
	for _, b := range bindings {
		kind := "variable"
		if b.IsPipeline {
			kind = "pipeline"
		}
		fmt.Fprintf(d.Out, "  %s\t%s\t%s\n", b.Name, kind, b.Pos)
	}
	return nil
}

func (d *Dispatcher) cmdUnset(args []string) error {
	if len(args) != 1 {
		return Error{Kind: "IncorrectCommandArguments", Message: "usage: /unset NAME"}
	}
	return d.Sess.Unset(args[0])
}

func (d *Dispatcher) cmdFuncs() error {
	names := d.Sess.Functions.Names()
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(d.Out, n)
	}
	return nil
}

func (d *Dispatcher) cmdVerbose(args []string) error {
	if len(args) != 1 {
		return Error{Kind: "IncorrectCommandArguments", Message: "usage: /verbose true|false"}
	}
	verbose, err := strconv.ParseBool(args[0])
	if err != nil {
		return Error{Kind: "IncorrectCommandArguments", Message: fmt.Sprintf("not a boolean: %q", args[0])}
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	d.Sess.Log = d.Sess.Log.WithLevel(level)
	return nil
}
