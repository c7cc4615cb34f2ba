/*
File    : eplusplus/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package parser implements a recursive-descent parser, one token of
// lookahead, built around the ParseResult backtracking accumulator
// (see parseresult.go). Precedence climbs through a fixed chain:
// statements -> statement -> expr -> comp-expr -> arith-expr -> term ->
// factor -> power -> call -> atom.
package parser

import (
	"github.com/eplusplus-lang/eplusplus/lexer"
)

// Parser walks a flat Token slice with one token of lookahead.
type Parser struct {
	Tokens     []lexer.Token
	TokIdx     int
	CurrentTok lexer.Token
}

// NewParser returns a Parser positioned at the first token.
func NewParser(tokens []lexer.Token) *Parser {
	p := &Parser{Tokens: tokens, TokIdx: -1}
	p.advance()
	return p
}

func (p *Parser) advance() lexer.Token {
	p.TokIdx++
	p.updateCurrentTok()
	return p.CurrentTok
}

func (p *Parser) reverse(count int) lexer.Token {
	p.TokIdx -= count
	p.updateCurrentTok()
	return p.CurrentTok
}

func (p *Parser) updateCurrentTok() {
	if p.TokIdx >= 0 && p.TokIdx < len(p.Tokens) {
		p.CurrentTok = p.Tokens[p.TokIdx]
	}
}

// step registers one advancement on pr and consumes the current token.
func (p *Parser) step(pr *ParseResult) {
	pr.RegisterAdvancement()
	p.advance()
}

// Parse parses the full token stream as a single `statements` production
// and requires that nothing but EOF follows.
func (p *Parser) Parse() (Node, error) {
	pr := p.statements()
	if pr.Err != nil {
		return nil, pr.Err
	}
	if p.CurrentTok.Type != lexer.EOF {
		return nil, &InvalidSyntaxError{
			Msg:   "Expected an operator",
			Start: p.CurrentTok.PosStart,
			End:   p.CurrentTok.PosEnd,
		}
	}
	return pr.Node, nil
}

// isBlockTerminator reports whether tok ends a statements production
// (either end of input, or the closing brace of a block-form body).
func isBlockTerminator(t lexer.TokenType) bool {
	return t == lexer.EOF || t == lexer.RCURLYBRACKET
}

func (p *Parser) statements() *ParseResult {
	pr := NewParseResult()
	posStart := p.CurrentTok.PosStart

	for p.CurrentTok.Type == lexer.NEWLINE {
		p.step(pr)
	}

	stmts := make([]Node, 0)
	if !isBlockTerminator(p.CurrentTok.Type) {
		first := pr.Register(p.statement())
		if pr.Err != nil {
			return pr
		}
		stmts = append(stmts, first)
	}

	moreStatements := true
	for {
		newlineCount := 0
		for p.CurrentTok.Type == lexer.NEWLINE {
			p.step(pr)
			newlineCount++
		}
		if newlineCount == 0 {
			moreStatements = false
		}
		if !moreStatements || isBlockTerminator(p.CurrentTok.Type) {
			break
		}
		stmt := pr.TryRegister(p.statement())
		if stmt == nil {
			p.reverse(pr.ToReverseCount)
			moreStatements = false
			continue
		}
		stmts = append(stmts, stmt)
	}

	return pr.Success(&StatementsNode{
		span:       span{posStart, p.CurrentTok.PosStart},
		Statements: stmts,
	})
}

func (p *Parser) statement() *ParseResult {
	pr := NewParseResult()
	posStart := p.CurrentTok.PosStart

	if p.CurrentTok.Matches(lexer.KEYWORD, "RETURN") {
		p.step(pr)
		var value Node
		if p.CurrentTok.Type != lexer.NEWLINE && !isBlockTerminator(p.CurrentTok.Type) {
			maybe := pr.TryRegister(p.expr())
			if maybe == nil {
				p.reverse(pr.ToReverseCount)
			} else {
				value = maybe
			}
		}
		return pr.Success(&ReturnNode{span{posStart, p.CurrentTok.PosStart}, value})
	}

	if p.CurrentTok.Matches(lexer.KEYWORD, "CONTINUE") {
		p.step(pr)
		return pr.Success(&ContinueNode{span{posStart, p.CurrentTok.PosStart}})
	}

	if p.CurrentTok.Matches(lexer.KEYWORD, "BREAK") {
		p.step(pr)
		return pr.Success(&BreakNode{span{posStart, p.CurrentTok.PosStart}})
	}

	if p.CurrentTok.Type == lexer.HASH {
		return p.importStatement()
	}

	node := pr.Register(p.expr())
	if pr.Err != nil {
		return pr
	}
	return pr.Success(node)
}

func (p *Parser) importStatement() *ParseResult {
	pr := NewParseResult()
	posStart := p.CurrentTok.PosStart

	p.step(pr) // consume '#'

	if !p.CurrentTok.Matches(lexer.KEYWORD, "IMPORT") {
		return pr.Failure(&InvalidSyntaxError{"Expected 'IMPORT'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	p.step(pr)

	if p.CurrentTok.Type != lexer.STRING {
		return pr.Failure(&InvalidSyntaxError{"Expected a string literal path", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	path := p.CurrentTok.StrValue
	p.step(pr)

	if !p.CurrentTok.Matches(lexer.KEYWORD, "AS") {
		return pr.Failure(&InvalidSyntaxError{"Expected 'AS'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	p.step(pr)

	if p.CurrentTok.Type != lexer.IDENTIFIER {
		return pr.Failure(&InvalidSyntaxError{"Expected an identifier", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	alias := p.CurrentTok.StrValue
	end := p.CurrentTok.PosEnd
	p.step(pr)

	return pr.Success(&ImportNode{span{posStart, end}, path, alias})
}

func (p *Parser) expr() *ParseResult {
	pr := NewParseResult()
	posStart := p.CurrentTok.PosStart

	if p.CurrentTok.Matches(lexer.KEYWORD, "VAR") {
		p.step(pr)
		if p.CurrentTok.Type != lexer.IDENTIFIER {
			return pr.Failure(&InvalidSyntaxError{"Expected an identifier", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
		}
		name := p.CurrentTok.StrValue
		p.step(pr)
		if p.CurrentTok.Type != lexer.EQ {
			return pr.Failure(&InvalidSyntaxError{"Expected '='", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
		}
		p.step(pr)
		value := pr.Register(p.expr())
		if pr.Err != nil {
			return pr
		}
		return pr.Success(&VarAssignNode{span{posStart, value.PosEnd()}, name, value})
	}

	node := pr.Register(p.compExpr())
	if pr.Err != nil {
		return pr
	}
	for p.CurrentTok.Matches(lexer.KEYWORD, "AND") || p.CurrentTok.Matches(lexer.KEYWORD, "OR") {
		opTok := p.CurrentTok
		p.step(pr)
		right := pr.Register(p.compExpr())
		if pr.Err != nil {
			return pr
		}
		node = &BinOpNode{span{node.PosStart(), right.PosEnd()}, node, opTok, right}
	}
	return pr.Success(node)
}

func (p *Parser) compExpr() *ParseResult {
	pr := NewParseResult()

	if p.CurrentTok.Matches(lexer.KEYWORD, "NOT") {
		opTok := p.CurrentTok
		p.step(pr)
		operand := pr.Register(p.compExpr())
		if pr.Err != nil {
			return pr
		}
		return pr.Success(&UnaryOpNode{span{opTok.PosStart, operand.PosEnd()}, opTok, operand})
	}

	node := pr.Register(p.arithExpr())
	if pr.Err != nil {
		return pr
	}
	for isCompOp(p.CurrentTok.Type) {
		opTok := p.CurrentTok
		p.step(pr)
		right := pr.Register(p.arithExpr())
		if pr.Err != nil {
			return pr
		}
		node = &BinOpNode{span{node.PosStart(), right.PosEnd()}, node, opTok, right}
	}
	return pr.Success(node)
}

func isCompOp(t lexer.TokenType) bool {
	switch t {
	case lexer.EQEQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LTEQ, lexer.GTEQ:
		return true
	}
	return false
}

func (p *Parser) arithExpr() *ParseResult {
	pr := NewParseResult()
	node := pr.Register(p.term())
	if pr.Err != nil {
		return pr
	}
	for p.CurrentTok.Type == lexer.PLUS || p.CurrentTok.Type == lexer.MINUS || p.CurrentTok.Type == lexer.AT {
		opTok := p.CurrentTok
		p.step(pr)
		right := pr.Register(p.term())
		if pr.Err != nil {
			return pr
		}
		node = &BinOpNode{span{node.PosStart(), right.PosEnd()}, node, opTok, right}
	}
	return pr.Success(node)
}

func (p *Parser) term() *ParseResult {
	pr := NewParseResult()
	node := pr.Register(p.factor())
	if pr.Err != nil {
		return pr
	}
	for p.CurrentTok.Type == lexer.MUL || p.CurrentTok.Type == lexer.DIV {
		opTok := p.CurrentTok
		p.step(pr)
		right := pr.Register(p.factor())
		if pr.Err != nil {
			return pr
		}
		node = &BinOpNode{span{node.PosStart(), right.PosEnd()}, node, opTok, right}
	}
	return pr.Success(node)
}

func (p *Parser) factor() *ParseResult {
	pr := NewParseResult()
	tok := p.CurrentTok

	if tok.Type == lexer.PLUS || tok.Type == lexer.MINUS {
		p.step(pr)
		operand := pr.Register(p.factor())
		if pr.Err != nil {
			return pr
		}
		return pr.Success(&UnaryOpNode{span{tok.PosStart, operand.PosEnd()}, tok, operand})
	}
	return p.power()
}

func (p *Parser) power() *ParseResult {
	pr := NewParseResult()
	node := pr.Register(p.call())
	if pr.Err != nil {
		return pr
	}
	for p.CurrentTok.Type == lexer.POW {
		opTok := p.CurrentTok
		p.step(pr)
		right := pr.Register(p.factor())
		if pr.Err != nil {
			return pr
		}
		node = &BinOpNode{span{node.PosStart(), right.PosEnd()}, node, opTok, right}
	}
	return pr.Success(node)
}

func (p *Parser) call() *ParseResult {
	pr := NewParseResult()
	atomNode := pr.Register(p.atom())
	if pr.Err != nil {
		return pr
	}

	if p.CurrentTok.Type == lexer.LPAREN {
		p.step(pr)
		args := make([]Node, 0)
		if p.CurrentTok.Type != lexer.RPAREN {
			arg := pr.Register(p.expr())
			if pr.Err != nil {
				return pr.Failure(&InvalidSyntaxError{"Expected an expression, ')', or an operator", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
			}
			args = append(args, arg)
			for p.CurrentTok.Type == lexer.COMMA {
				p.step(pr)
				arg := pr.Register(p.expr())
				if pr.Err != nil {
					return pr
				}
				args = append(args, arg)
			}
			if p.CurrentTok.Type != lexer.RPAREN {
				return pr.Failure(&InvalidSyntaxError{"Expected ',' or ')'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
			}
		}
		end := p.CurrentTok.PosEnd
		p.step(pr)
		return pr.Success(&CallNode{span{atomNode.PosStart(), end}, atomNode, args})
	}
	return pr.Success(atomNode)
}

func (p *Parser) atom() *ParseResult {
	pr := NewParseResult()
	tok := p.CurrentTok

	switch {
	case tok.Type == lexer.INT || tok.Type == lexer.FLOAT:
		p.step(pr)
		return pr.Success(&NumberNode{span{tok.PosStart, tok.PosEnd}, tok})

	case tok.Type == lexer.STRING:
		p.step(pr)
		return pr.Success(&StringNode{span{tok.PosStart, tok.PosEnd}, tok})

	case tok.Type == lexer.IDENTIFIER:
		p.step(pr)
		name := tok.StrValue
		alias := ""
		end := tok.PosEnd
		if p.CurrentTok.Type == lexer.DBLCOLON {
			p.step(pr)
			if p.CurrentTok.Type != lexer.IDENTIFIER {
				return pr.Failure(&InvalidSyntaxError{"Expected an identifier", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
			}
			alias = name
			name = p.CurrentTok.StrValue
			end = p.CurrentTok.PosEnd
			p.step(pr)
		}
		return pr.Success(&VarAccessNode{span{tok.PosStart, end}, name, alias})

	case tok.Type == lexer.LPAREN:
		p.step(pr)
		inner := pr.Register(p.expr())
		if pr.Err != nil {
			return pr
		}
		if p.CurrentTok.Type != lexer.RPAREN {
			return pr.Failure(&InvalidSyntaxError{"Expected ')'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
		}
		p.step(pr)
		return pr.Success(inner)

	case tok.Type == lexer.LSQUARE:
		return p.listExpr()

	case tok.Matches(lexer.KEYWORD, "IF"):
		return p.ifExpr()

	case tok.Matches(lexer.KEYWORD, "FOR"):
		return p.forExpr()

	case tok.Matches(lexer.KEYWORD, "WHILE"):
		return p.whileExpr()

	case tok.Matches(lexer.KEYWORD, "FUNC"):
		return p.funcDef()
	}

	return pr.Failure(&InvalidSyntaxError{
		Msg:   "Expected int, float, identifier, '+', '-', '(', '[', IF, FOR, WHILE, or FUNC",
		Start: tok.PosStart,
		End:   tok.PosEnd,
	})
}

func (p *Parser) listExpr() *ParseResult {
	pr := NewParseResult()
	posStart := p.CurrentTok.PosStart
	p.step(pr) // consume '['

	elements := make([]Node, 0)
	if p.CurrentTok.Type != lexer.RSQUARE {
		el := pr.Register(p.expr())
		if pr.Err != nil {
			return pr.Failure(&InvalidSyntaxError{"Expected ']', an expression, '(', '[', or an operator", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
		}
		elements = append(elements, el)
		for p.CurrentTok.Type == lexer.COMMA {
			p.step(pr)
			el := pr.Register(p.expr())
			if pr.Err != nil {
				return pr
			}
			elements = append(elements, el)
		}
		if p.CurrentTok.Type != lexer.RSQUARE {
			return pr.Failure(&InvalidSyntaxError{"Expected ',' or ']'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
		}
	}
	end := p.CurrentTok.PosEnd
	p.step(pr)
	return pr.Success(&ListNode{span{posStart, end}, elements})
}

// inlineOrBlock parses the body that follows THEN/->: a single inline
// statement, or (when a NEWLINE follows) a block of statements closed by
// '}'. Returns the body node and whether it is block-form.
func (p *Parser) inlineOrBlock(pr *ParseResult) (Node, bool) {
	if p.CurrentTok.Type == lexer.NEWLINE {
		p.step(pr)
		body := pr.Register(p.statements())
		if pr.Err != nil {
			return nil, true
		}
		if p.CurrentTok.Type != lexer.RCURLYBRACKET {
			pr.Failure(&InvalidSyntaxError{"Expected '}'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
			return nil, true
		}
		p.step(pr)
		return body, true
	}
	body := pr.Register(p.statement())
	return body, false
}

func (p *Parser) ifExpr() *ParseResult {
	pr := NewParseResult()
	posStart := p.CurrentTok.PosStart
	p.step(pr) // consume IF

	cases := make([]IfCase, 0)
	cond := pr.Register(p.expr())
	if pr.Err != nil {
		return pr
	}
	if !p.CurrentTok.Matches(lexer.KEYWORD, "THEN") {
		return pr.Failure(&InvalidSyntaxError{"Expected 'THEN'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	p.step(pr)
	body, bodyNull := p.inlineOrBlock(pr)
	if pr.Err != nil {
		return pr
	}
	cases = append(cases, IfCase{cond, body, bodyNull})

	for p.CurrentTok.Matches(lexer.KEYWORD, "ELIF") {
		p.step(pr)
		cond := pr.Register(p.expr())
		if pr.Err != nil {
			return pr
		}
		if !p.CurrentTok.Matches(lexer.KEYWORD, "THEN") {
			return pr.Failure(&InvalidSyntaxError{"Expected 'THEN'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
		}
		p.step(pr)
		body, bodyNull := p.inlineOrBlock(pr)
		if pr.Err != nil {
			return pr
		}
		cases = append(cases, IfCase{cond, body, bodyNull})
	}

	var elseBody Node
	elseNull := false
	end := p.CurrentTok.PosStart
	if p.CurrentTok.Matches(lexer.KEYWORD, "ELSE") {
		p.step(pr)
		elseBody, elseNull = p.inlineOrBlock(pr)
		if pr.Err != nil {
			return pr
		}
		if elseBody != nil {
			end = elseBody.PosEnd()
		}
	} else if len(cases) > 0 {
		end = cases[len(cases)-1].Body.PosEnd()
	}

	return pr.Success(&IfNode{span{posStart, end}, cases, elseBody, elseNull})
}

func (p *Parser) forExpr() *ParseResult {
	pr := NewParseResult()
	posStart := p.CurrentTok.PosStart
	p.step(pr) // consume FOR

	if p.CurrentTok.Type != lexer.IDENTIFIER {
		return pr.Failure(&InvalidSyntaxError{"Expected an identifier", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	varName := p.CurrentTok.StrValue
	p.step(pr)

	if p.CurrentTok.Type != lexer.EQ {
		return pr.Failure(&InvalidSyntaxError{"Expected '='", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	p.step(pr)

	start := pr.Register(p.expr())
	if pr.Err != nil {
		return pr
	}

	if !p.CurrentTok.Matches(lexer.KEYWORD, "TO") {
		return pr.Failure(&InvalidSyntaxError{"Expected 'TO'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	p.step(pr)

	end := pr.Register(p.expr())
	if pr.Err != nil {
		return pr
	}

	var step Node
	if p.CurrentTok.Matches(lexer.KEYWORD, "STEP") {
		p.step(pr)
		step = pr.Register(p.expr())
		if pr.Err != nil {
			return pr
		}
	}

	if !p.CurrentTok.Matches(lexer.KEYWORD, "THEN") {
		return pr.Failure(&InvalidSyntaxError{"Expected 'THEN'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	p.step(pr)

	body, bodyNull := p.inlineOrBlock(pr)
	if pr.Err != nil {
		return pr
	}

	return pr.Success(&ForNode{span{posStart, body.PosEnd()}, varName, start, end, step, body, bodyNull})
}

func (p *Parser) whileExpr() *ParseResult {
	pr := NewParseResult()
	posStart := p.CurrentTok.PosStart
	p.step(pr) // consume WHILE

	cond := pr.Register(p.expr())
	if pr.Err != nil {
		return pr
	}
	if !p.CurrentTok.Matches(lexer.KEYWORD, "THEN") {
		return pr.Failure(&InvalidSyntaxError{"Expected 'THEN'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	p.step(pr)

	body, bodyNull := p.inlineOrBlock(pr)
	if pr.Err != nil {
		return pr
	}
	return pr.Success(&WhileNode{span{posStart, body.PosEnd()}, cond, body, bodyNull})
}

func (p *Parser) funcDef() *ParseResult {
	pr := NewParseResult()
	posStart := p.CurrentTok.PosStart
	p.step(pr) // consume FUNC

	name := ""
	if p.CurrentTok.Type == lexer.IDENTIFIER {
		name = p.CurrentTok.StrValue
		p.step(pr)
	}

	if p.CurrentTok.Type != lexer.LPAREN {
		return pr.Failure(&InvalidSyntaxError{"Expected '('", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	p.step(pr)

	params := make([]string, 0)
	if p.CurrentTok.Type == lexer.IDENTIFIER {
		params = append(params, p.CurrentTok.StrValue)
		p.step(pr)
		for p.CurrentTok.Type == lexer.COMMA {
			p.step(pr)
			if p.CurrentTok.Type != lexer.IDENTIFIER {
				return pr.Failure(&InvalidSyntaxError{"Expected an identifier", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
			}
			params = append(params, p.CurrentTok.StrValue)
			p.step(pr)
		}
	}
	if p.CurrentTok.Type != lexer.RPAREN {
		return pr.Failure(&InvalidSyntaxError{"Expected ',' or ')'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	p.step(pr)

	if p.CurrentTok.Type == lexer.ARROW {
		p.step(pr)
		body := pr.Register(p.expr())
		if pr.Err != nil {
			return pr
		}
		return pr.Success(&FuncDefNode{span{posStart, body.PosEnd()}, name, params, body, true})
	}

	if p.CurrentTok.Type != lexer.NEWLINE {
		return pr.Failure(&InvalidSyntaxError{"Expected '->' or a newline", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	p.step(pr)
	body := pr.Register(p.statements())
	if pr.Err != nil {
		return pr
	}
	if p.CurrentTok.Type != lexer.RCURLYBRACKET {
		return pr.Failure(&InvalidSyntaxError{"Expected '}'", p.CurrentTok.PosStart, p.CurrentTok.PosEnd})
	}
	end := p.CurrentTok.PosEnd
	p.step(pr)
	return pr.Success(&FuncDefNode{span{posStart, end}, name, params, body, false})
}
