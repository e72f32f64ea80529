package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable name, original spelling preserved
	INTEGER    // unsigned decimal integer literal

	// Keywords (recognized case-insensitively)
	BEGIN // "begin"
	END   // "end"
	READ  // "read"
	WRITE // "write"

	// Punctuation and operators
	ASSIGN    // :=
	LPAREN    // (
	RPAREN    // )
	PLUS      // +
	MINUS     // -
	COMMA     // ,
	SEMICOLON // ;
)

// tokenNames is indexed by TokenType and holds the user-facing spelling used
// in error messages.
var tokenNames = [...]string{
	EOF:        "end of file",
	IDENTIFIER: "identifier",
	INTEGER:    "integer literal",
	BEGIN:      "'begin'",
	END:        "'end'",
	READ:       "'read'",
	WRITE:      "'write'",
	ASSIGN:     "':='",
	LPAREN:     "'('",
	RPAREN:     "')'",
	PLUS:       "'+'",
	MINUS:      "'-'",
	COMMA:      "','",
	SEMICOLON:  "';'",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Val    int64  // literal value, set for INTEGER tokens only
	Line   int    // 1-based source line
}

func (t Token) String() string {
	switch t.Type {
	case IDENTIFIER:
		return fmt.Sprintf("identifier %q", t.Lexeme)
	case INTEGER:
		return fmt.Sprintf("integer %d", t.Val)
	default:
		return t.Type.String()
	}
}
