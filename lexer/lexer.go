/*
File    : eplusplus/lexer/lexer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"strconv"
	"strings"

	"github.com/eplusplus-lang/eplusplus/position"
)

// Lexer turns E++ source text into a Token stream. It scans byte by byte,
// tracking a Position so every token carries an exact span for diagnostics.
type Lexer struct {
	Text    string
	Pos     position.Position
	Current byte
}

// NewLexer returns a Lexer positioned at the start of text, which came from
// fileName (used only in error messages and Position.FileName).
func NewLexer(fileName, text string) *Lexer {
	lex := &Lexer{
		Text: text,
		Pos:  position.New(fileName, text),
	}
	if len(text) > 0 {
		lex.Current = text[0]
	}
	return lex
}

// Advance consumes Current and moves to the next byte.
func (lex *Lexer) Advance() {
	lex.Pos = lex.Pos.Advance(lex.Current)
	if lex.Pos.Idx >= len(lex.Text) {
		lex.Current = 0
	} else {
		lex.Current = lex.Text[lex.Pos.Idx]
	}
}

// Peek looks one byte ahead of Current without consuming it.
func (lex *Lexer) Peek() byte {
	if lex.Pos.Idx+1 >= len(lex.Text) {
		return 0
	}
	return lex.Text[lex.Pos.Idx+1]
}

// MakeTokens tokenizes the entire source, returning the token list (ending
// in EOF) or the first error encountered.
func (lex *Lexer) MakeTokens() ([]Token, error) {
	tokens := make([]Token, 0)
	for lex.Current != 0 {
		switch {
		case lex.Current == ' ' || lex.Current == '\t':
			lex.Advance()
		case lex.Current == '#':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(HASH, "", 0, start, lex.Pos))
		case lex.Current == '\n' || lex.Current == ';':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(NEWLINE, "", 0, start, lex.Pos))
		case isDigit(lex.Current):
			tokens = append(tokens, lex.makeNumber())
		case isLetter(lex.Current) || lex.Current == '_':
			tokens = append(tokens, lex.makeIdentifier())
		case lex.Current == '"':
			tok, err := lex.makeString()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case lex.Current == '+':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(PLUS, "+", 0, start, lex.Pos))
		case lex.Current == '-':
			tokens = append(tokens, lex.makeMinusOrArrow())
		case lex.Current == '*':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(MUL, "*", 0, start, lex.Pos))
		case lex.Current == '/':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(DIV, "/", 0, start, lex.Pos))
		case lex.Current == '^':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(POW, "^", 0, start, lex.Pos))
		case lex.Current == '(':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(LPAREN, "(", 0, start, lex.Pos))
		case lex.Current == ')':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(RPAREN, ")", 0, start, lex.Pos))
		case lex.Current == '[':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(LSQUARE, "[", 0, start, lex.Pos))
		case lex.Current == ']':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(RSQUARE, "]", 0, start, lex.Pos))
		case lex.Current == '}':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(RCURLYBRACKET, "}", 0, start, lex.Pos))
		case lex.Current == ',':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(COMMA, ",", 0, start, lex.Pos))
		case lex.Current == '@':
			start := lex.Pos
			lex.Advance()
			tokens = append(tokens, NewToken(AT, "@", 0, start, lex.Pos))
		case lex.Current == '!':
			tok, err := lex.makeNotEquals()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case lex.Current == '=':
			tokens = append(tokens, lex.makeEquals())
		case lex.Current == '<':
			tokens = append(tokens, lex.makeLessThan())
		case lex.Current == '>':
			tokens = append(tokens, lex.makeGreaterThan())
		case lex.Current == ':':
			tok, err := lex.makeDblColon()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		default:
			start := lex.Pos
			ch := lex.Current
			lex.Advance()
			return nil, &IllegalCharError{
				Msg:   "'" + string(ch) + "'",
				Start: start,
				End:   lex.Pos,
			}
		}
	}
	tokens = append(tokens, NewToken(EOF, "", 0, lex.Pos, lex.Pos))
	return tokens, nil
}

// makeNumber consumes digits and at most one '.', producing an INT or
// FLOAT token depending on whether a decimal point was seen.
func (lex *Lexer) makeNumber() Token {
	start := lex.Pos
	var sb strings.Builder
	dotCount := 0
	for lex.Current != 0 && (isDigit(lex.Current) || lex.Current == '.') {
		if lex.Current == '.' {
			if dotCount == 1 {
				break
			}
			dotCount++
		}
		sb.WriteByte(lex.Current)
		lex.Advance()
	}
	text := sb.String()
	value, _ := strconv.ParseFloat(text, 64)
	if dotCount == 0 {
		return NewToken(INT, text, value, start, lex.Pos)
	}
	return NewToken(FLOAT, text, value, start, lex.Pos)
}

// makeIdentifier consumes letters, digits, and underscores, then
// classifies the result as KEYWORD or IDENTIFIER.
func (lex *Lexer) makeIdentifier() Token {
	start := lex.Pos
	var sb strings.Builder
	for lex.Current != 0 && (isLetter(lex.Current) || isDigit(lex.Current) || lex.Current == '_') {
		sb.WriteByte(lex.Current)
		lex.Advance()
	}
	text := sb.String()
	return NewToken(lookupIdent(text), text, 0, start, lex.Pos)
}

// makeString reads a double-quoted string, translating backslash escapes.
func (lex *Lexer) makeString() (Token, error) {
	start := lex.Pos
	lex.Advance() // consume opening quote
	var sb strings.Builder
	for lex.Current != '"' {
		if lex.Current == 0 {
			return Token{}, &ExpectedCharError{
				Msg:   "'\"'",
				Start: lex.Pos,
				End:   lex.Pos,
			}
		}
		if lex.Current == '\\' {
			lex.Advance()
			switch lex.Current {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte(lex.Current)
			}
			lex.Advance()
			continue
		}
		sb.WriteByte(lex.Current)
		lex.Advance()
	}
	lex.Advance() // consume closing quote
	return NewToken(STRING, sb.String(), 0, start, lex.Pos), nil
}

// makeMinusOrArrow distinguishes '-' from '->'.
func (lex *Lexer) makeMinusOrArrow() Token {
	start := lex.Pos
	lex.Advance()
	if lex.Current == '>' {
		lex.Advance()
		return NewToken(ARROW, "->", 0, start, lex.Pos)
	}
	return NewToken(MINUS, "-", 0, start, lex.Pos)
}

// makeNotEquals requires '!' to be followed by '='.
func (lex *Lexer) makeNotEquals() (Token, error) {
	start := lex.Pos
	lex.Advance()
	if lex.Current == '=' {
		lex.Advance()
		return NewToken(NEQ, "!=", 0, start, lex.Pos), nil
	}
	return Token{}, &ExpectedCharError{
		Msg:   "'=' (after '!')",
		Start: start,
		End:   lex.Pos,
	}
}

// makeEquals distinguishes '=' from '=='.
func (lex *Lexer) makeEquals() Token {
	start := lex.Pos
	lex.Advance()
	if lex.Current == '=' {
		lex.Advance()
		return NewToken(EQEQ, "==", 0, start, lex.Pos)
	}
	return NewToken(EQ, "=", 0, start, lex.Pos)
}

// makeLessThan distinguishes '<' from '<='.
func (lex *Lexer) makeLessThan() Token {
	start := lex.Pos
	lex.Advance()
	if lex.Current == '=' {
		lex.Advance()
		return NewToken(LTEQ, "<=", 0, start, lex.Pos)
	}
	return NewToken(LT, "<", 0, start, lex.Pos)
}

// makeGreaterThan distinguishes '>' from '>='.
func (lex *Lexer) makeGreaterThan() Token {
	start := lex.Pos
	lex.Advance()
	if lex.Current == '=' {
		lex.Advance()
		return NewToken(GTEQ, ">=", 0, start, lex.Pos)
	}
	return NewToken(GT, ">", 0, start, lex.Pos)
}

// makeDblColon requires ':' to be followed by another ':'.
func (lex *Lexer) makeDblColon() (Token, error) {
	start := lex.Pos
	lex.Advance()
	if lex.Current == ':' {
		lex.Advance()
		return NewToken(DBLCOLON, "::", 0, start, lex.Pos), nil
	}
	return Token{}, &ExpectedCharError{
		Msg:   "':' (after ':')",
		Start: start,
		End:   lex.Pos,
	}
}
