package compiler

import "fmt"

// value is the result of evaluating an operand or expression: either a
// compile-time literal or a reference to a frame slot. Evaluation always
// reduces to one of the two; there is never a pending computation.
type value struct {
	isLit bool
	lit   int64 // literal value when isLit
	off   int   // slot offset otherwise
}

// Parser recognizes the grammar by recursive descent and generates code as a
// side effect of each production. There is no syntax tree: identifiers are
// resolved and instructions emitted the moment a construct is recognized, so
// on error the emitter holds whatever was queued before the failure.
type Parser struct {
	lex  *Lexer
	syms *SymbolTable
	em   *Emitter
}

func NewParser(lex *Lexer, syms *SymbolTable, em *Emitter) *Parser {
	return &Parser{lex: lex, syms: syms, em: em}
}

// Program parses
//
//	program := 'begin' statement* 'end'
//
// and emits the whole translation. The frame reservation is patched last,
// once every variable and temporary has been seen. Nothing after 'end' is
// scanned.
func (p *Parser) Program() error {
	if err := p.expect(BEGIN); err != nil {
		return err
	}
	p.em.Prologue()
	for {
		done, err := p.lex.Match(END)
		if err != nil {
			return err
		}
		if done {
			break
		}
		if err := p.statement(); err != nil {
			return err
		}
	}
	p.em.Epilogue()
	p.em.SetFrameSize(p.syms.FrameBytes())
	return nil
}

// statement := ( read | write | assignment ) ';'
func (p *Parser) statement() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	switch tok.Type {
	case READ:
		err = p.readStatement()
	case WRITE:
		err = p.writeStatement()
	case IDENTIFIER:
		err = p.assignStatement(tok)
	default:
		return &SyntaxError{Line: tok.Line, Msg: fmt.Sprintf("expected a statement or 'end', got %s", tok)}
	}
	if err != nil {
		return err
	}
	return p.expect(SEMICOLON)
}

// readStatement := 'read' '(' ident (',' ident)* ')'
//
// Only assignment creates a variable, so every name in the list must have
// been assigned before.
func (p *Parser) readStatement() error {
	p.em.Comment("read")
	if err := p.expect(LPAREN); err != nil {
		return err
	}
	for {
		tok, err := p.lex.Next()
		if err != nil {
			return err
		}
		if tok.Type != IDENTIFIER {
			return &SyntaxError{Line: tok.Line, Msg: fmt.Sprintf("expected identifier, got %s", tok)}
		}
		off, ok := p.syms.Resolve(tok.Lexeme)
		if !ok {
			return &SemanticError{Line: tok.Line, Msg: fmt.Sprintf("identifier %q not defined", tok.Lexeme)}
		}
		p.em.ReadInto(off)

		more, err := p.lex.Match(COMMA)
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return p.expect(RPAREN)
}

// writeStatement := 'write' '(' expression (',' expression)* ')'
func (p *Parser) writeStatement() error {
	p.em.Comment("write")
	if err := p.expect(LPAREN); err != nil {
		return err
	}
	for {
		v, err := p.expression(1)
		if err != nil {
			return err
		}
		if v.isLit {
			p.em.WriteLiteral(v.lit)
		} else {
			p.em.WriteSlot(v.off)
		}

		more, err := p.lex.Match(COMMA)
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return p.expect(RPAREN)
}

// assignStatement := ident ':=' expression
//
// The right-hand side is evaluated before the target is allocated, so a
// fresh variable cannot appear inside its own defining expression.
func (p *Parser) assignStatement(target Token) error {
	p.em.Comment(target.Lexeme + " :=")
	if err := p.expect(ASSIGN); err != nil {
		return err
	}
	v, err := p.expression(1)
	if err != nil {
		return err
	}
	dst := p.syms.Alloc(target.Lexeme)
	if v.isLit {
		p.em.StoreLiteral(v.lit, dst)
	} else {
		p.em.CopySlot(dst, v.off)
	}
	return nil
}

// expression := operand ( ('+' | '-') expression )?
//
// The tail recurses on expression itself, so the operators are
// right-associative: a-b-c computes a-(b-c). depth numbers the recursion
// level from 1 and selects the temp slot for this level's result.
func (p *Parser) expression(depth int) (value, error) {
	left, err := p.operand(depth)
	if err != nil {
		return value{}, err
	}

	op, err := p.lex.Peek()
	if err != nil {
		return value{}, err
	}
	if op.Type != PLUS && op.Type != MINUS {
		return left, nil
	}
	if _, err := p.lex.Next(); err != nil {
		return value{}, err
	}

	right, err := p.expression(depth + 1)
	if err != nil {
		return value{}, err
	}
	return p.combine(left, right, op, depth)
}

// operand := ident | literal | '(' expression ')'
//
// A parenthesized expression evaluates at the current depth: its temp (if
// any) becomes this production's left value and is accumulated in place.
func (p *Parser) operand(depth int) (value, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return value{}, err
	}
	switch tok.Type {
	case INTEGER:
		return value{isLit: true, lit: tok.Val}, nil
	case IDENTIFIER:
		off, ok := p.syms.Resolve(tok.Lexeme)
		if !ok {
			return value{}, &SemanticError{Line: tok.Line, Msg: fmt.Sprintf("identifier %q not defined", tok.Lexeme)}
		}
		return value{off: off}, nil
	case LPAREN:
		v, err := p.expression(depth)
		if err != nil {
			return value{}, err
		}
		return v, p.expect(RPAREN)
	}
	return value{}, &SyntaxError{Line: tok.Line, Msg: fmt.Sprintf("expected an operand, got %s", tok)}
}

// combine applies op to two evaluated operands. Literal pairs fold at
// compile time and emit nothing. One slot and one literal go through this
// depth's temp slot. Two slots have no encoding in the instruction
// repertoire and are rejected; the restriction is deliberate.
func (p *Parser) combine(left, right value, op Token, depth int) (value, error) {
	sub := op.Type == MINUS
	switch {
	case left.isLit && right.isLit:
		if sub {
			return value{isLit: true, lit: left.lit - right.lit}, nil
		}
		return value{isLit: true, lit: left.lit + right.lit}, nil

	case left.isLit != right.isLit:
		tmp := p.syms.Temp(depth)
		if left.isLit {
			p.em.StoreLiteral(left.lit, tmp)
			if sub {
				p.em.SubSlot(tmp, right.off)
			} else {
				p.em.AddSlot(tmp, right.off)
			}
		} else {
			p.em.CopySlot(tmp, left.off)
			if sub {
				p.em.SubLiteral(tmp, right.lit)
			} else {
				p.em.AddLiteral(tmp, right.lit)
			}
		}
		return value{off: tmp}, nil
	}
	return value{}, &SemanticError{
		Line: op.Line,
		Msg:  fmt.Sprintf("'%s' between two identifiers is not supported", op.Lexeme),
	}
}

// expect consumes the next token and fails with a SyntaxError naming tt if
// it has any other type.
func (p *Parser) expect(tt TokenType) error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	if tok.Type != tt {
		return &SyntaxError{Line: tok.Line, Msg: fmt.Sprintf("expected %s, got %s", tt, tok)}
	}
	return nil
}
