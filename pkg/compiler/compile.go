package compiler

import (
	"os"
	"strings"
)

// Compile translates micro source text into x86-64 assembly. The returned
// SymbolTable holds the final variable layout, exposed for diagnostics.
func Compile(src string) (string, *SymbolTable, error) {
	return compile(NewStream(strings.NewReader(src)))
}

// CompileFile compiles the source file at srcPath and writes the assembly to
// asmPath. The assembly file is only written when compilation succeeds, so
// an error never leaves a partial artifact behind.
func CompileFile(srcPath, asmPath string) (*SymbolTable, error) {
	s, err := Open(srcPath)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	text, syms, err := compile(s)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(asmPath, []byte(text), 0o644); err != nil {
		return nil, err
	}
	return syms, nil
}

func compile(s *Stream) (string, *SymbolTable, error) {
	lex := NewLexer(s)
	syms := NewSymbolTable()
	em := NewEmitter()
	if err := NewParser(lex, syms, em).Program(); err != nil {
		return "", nil, err
	}
	return em.Text(), syms, nil
}

// Tokens scans the whole source text and returns its token sequence,
// including the trailing EOF token. Compilation proper scans lazily; this
// eager pass exists for debugging and tests.
func Tokens(src string) ([]Token, error) {
	lex := NewLexer(NewStream(strings.NewReader(src)))
	var toks []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, nil
		}
	}
}
