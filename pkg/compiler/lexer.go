package compiler

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// keywords maps lowercased source text to its keyword TokenType. Keyword
// recognition is case-insensitive; identifier spelling is case-sensitive.
var keywords = map[string]TokenType{
	"begin": BEGIN,
	"end":   END,
	"read":  READ,
	"write": WRITE,
}

// Lexer turns a Stream into tokens. It buffers at most one token of
// lookahead; the grammar is LL(1).
type Lexer struct {
	src    *Stream
	peeked *Token // cached lookahead, nil when empty
}

func NewLexer(src *Stream) *Lexer {
	return &Lexer{src: src}
}

// Peek returns the pending token without consuming it, scanning one if none
// is cached.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked == nil {
		tok, err := l.scan()
		if err != nil {
			return Token{}, err
		}
		l.peeked = &tok
	}
	return *l.peeked, nil
}

// Next consumes and returns the pending token. Scanning is lazy, so nothing
// is read past the last token the parser consumes.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

// Match consumes the pending token if it has the given type and reports
// whether it did. Used for optional-construct checks; a mismatch leaves the
// token in place for the caller to inspect.
func (l *Lexer) Match(tt TokenType) (bool, error) {
	tok, err := l.Peek()
	if err != nil {
		return false, err
	}
	if tok.Type != tt {
		return false, nil
	}
	l.peeked = nil
	return true, nil
}

// scan produces the next token from the stream. A clean end of source yields
// an EOF token so the parser can name the construct it was expecting.
func (l *Lexer) scan() (Token, error) {
	c, err := l.skipBlank()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Token{Type: EOF, Line: l.src.Line()}, nil
		}
		return Token{}, err
	}

	line := l.src.Line()
	switch {
	case isLetter(c):
		return l.scanWord(c, line)
	case isDigit(c):
		return l.scanNumber(c, line)
	}

	switch c {
	case '+':
		return Token{Type: PLUS, Lexeme: "+", Line: line}, nil
	case '-':
		return Token{Type: MINUS, Lexeme: "-", Line: line}, nil
	case ',':
		return Token{Type: COMMA, Lexeme: ",", Line: line}, nil
	case ';':
		return Token{Type: SEMICOLON, Lexeme: ";", Line: line}, nil
	case '(':
		return Token{Type: LPAREN, Lexeme: "(", Line: line}, nil
	case ')':
		return Token{Type: RPAREN, Lexeme: ")", Line: line}, nil
	case ':':
		next, err := l.src.Read()
		if err != nil && !errors.Is(err, io.EOF) {
			return Token{}, err
		}
		if err != nil || next != '=' {
			return Token{}, &LexicalError{Line: line, Msg: "':' must be followed by '='"}
		}
		return Token{Type: ASSIGN, Lexeme: ":=", Line: line}, nil
	}

	return Token{}, &LexicalError{Line: line, Msg: fmt.Sprintf("unrecognized character %q", c)}
}

// skipBlank consumes the maximal run of space, tab, carriage-return and
// newline characters and returns the first character after it.
func (l *Lexer) skipBlank() (byte, error) {
	for {
		c, err := l.src.Read()
		if err != nil {
			return 0, err
		}
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return c, nil
	}
}

// scanWord collects a maximal alphanumeric-or-underscore run starting at
// first. The lowercased run selects a keyword; anything else is an
// identifier carrying its original spelling.
func (l *Lexer) scanWord(first byte, line int) (Token, error) {
	var sb strings.Builder
	sb.WriteByte(first)
	for {
		c, err := l.src.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Token{}, err
		}
		if !isLetter(c) && !isDigit(c) && c != '_' {
			l.src.Unread(c)
			break
		}
		sb.WriteByte(c)
	}

	lexeme := sb.String()
	if tt, ok := keywords[strings.ToLower(lexeme)]; ok {
		return Token{Type: tt, Lexeme: lexeme, Line: line}, nil
	}
	return Token{Type: IDENTIFIER, Lexeme: lexeme, Line: line}, nil
}

// scanNumber collects a maximal decimal digit run starting at first. The
// value accumulates in the host integer width; there is no overflow check.
func (l *Lexer) scanNumber(first byte, line int) (Token, error) {
	var sb strings.Builder
	sb.WriteByte(first)
	val := int64(first - '0')
	for {
		c, err := l.src.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Token{}, err
		}
		if !isDigit(c) {
			l.src.Unread(c)
			break
		}
		sb.WriteByte(c)
		val = val*10 + int64(c-'0')
	}
	return Token{Type: INTEGER, Lexeme: sb.String(), Val: val, Line: line}, nil
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
