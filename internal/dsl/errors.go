package dsl

import "fmt"

// SyntaxError reports a line the lexer or grammar rejected outright,
// before any semantic conversion is attempted.
type SyntaxError struct {
	Kind    string
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error (%v): %v", e.Kind, e.Message)
}

// Error reports a semantic failure discovered while converting a parsed
// line into graphs, pipelines, or registry calls — an empty statement,
// atom or call argument, or a malformed literal, character class or
// codepoint range. Out-of-order range bounds are swapped rather than
// rejected, and errors from registry.Call and the session are returned as
// those packages' own error types.
type Error struct {
	Kind    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("dsl error (%v): %v", e.Kind, e.Message)
}

// enrichSyntaxError wraps a raw participle parse error, which already
// carries a usable message, into the SyntaxError idiom the rest of the
// package and the REPL report through.
func enrichSyntaxError(input string, err error) error {
	return SyntaxError{Kind: "Parse", Message: fmt.Sprintf("%v (in %q)", err, input)}
}
