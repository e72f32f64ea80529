package compiler

import "fmt"

// The compiler reports exactly one error per run: whichever of these is hit
// first aborts the whole compilation. Each carries the 1-based source line
// it was detected on.

// LexicalError is an unrecognized character or malformed token.
type LexicalError struct {
	Line int
	Msg  string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error on line %d: %s", e.Line, e.Msg)
}

// SyntaxError is a grammar violation, including an unexpected end of file.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error on line %d: %s", e.Line, e.Msg)
}

// SemanticError is a use of an identifier that was never assigned, or an
// operand combination the instruction repertoire does not support.
type SemanticError struct {
	Line int
	Msg  string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("semantic error on line %d: %s", e.Line, e.Msg)
}
