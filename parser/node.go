/*
File    : eplusplus/parser/node.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package parser turns a Token stream into an AST.
// The AST is a closed set of node types: Node's marker method is
// unexported, so no type outside this package can satisfy the interface,
// which lets the interpreter dispatch on it with an exhaustive type switch
// instead of runtime type assertions.
package parser

import (
	"github.com/eplusplus-lang/eplusplus/lexer"
	"github.com/eplusplus-lang/eplusplus/position"
)

// Node is implemented by every AST node. Every node carries its source
// span for diagnostics.
type Node interface {
	PosStart() position.Position
	PosEnd() position.Position
	node()
}

type span struct {
	Start position.Position
	End   position.Position
}

func (s span) PosStart() position.Position { return s.Start }
func (s span) PosEnd() position.Position   { return s.End }
func (span) node()                         {}

// StatementsNode sequences zero or more statements: the program root, or
// a block-form body (IF/FOR/WHILE/FUNC body ended by `}`).
type StatementsNode struct {
	span
	Statements []Node
}

// NumberNode is an INT or FLOAT literal.
type NumberNode struct {
	span
	Tok lexer.Token
}

// StringNode is a STRING literal.
type StringNode struct {
	span
	Tok lexer.Token
}

// ListNode is a `[e1, e2, ...]` literal.
type ListNode struct {
	span
	Elements []Node
}

// VarAccessNode reads a variable, optionally through a module alias
// (`alias::name`).
type VarAccessNode struct {
	span
	Name  string
	Alias string // "" when unqualified
}

// VarAssignNode is `VAR name = value`.
type VarAssignNode struct {
	span
	Name  string
	Value Node
}

// BinOpNode is a binary operation; OpTok selects the operator (keyword
// tokens AND/OR are matched on OpTok.StrValue).
type BinOpNode struct {
	span
	Left  Node
	OpTok lexer.Token
	Right Node
}

// UnaryOpNode is a prefix operation (`+`, `-`, `NOT`).
type UnaryOpNode struct {
	span
	OpTok lexer.Token
	Node  Node
}

// IfCase is one `cond THEN body` arm of an If node.
type IfCase struct {
	Condition       Node
	Body            Node
	BodyReturnsNull bool
}

// IfNode is `IF ... THEN ... (ELIF ... THEN ...)* (ELSE ...)?`.
type IfNode struct {
	span
	Cases    []IfCase
	ElseBody Node // nil if absent
	ElseNull bool
}

// ForNode is `FOR name = start TO end (STEP step)? THEN body`.
type ForNode struct {
	span
	VarName         string
	StartValue      Node
	EndValue        Node
	StepValue       Node // nil means default step 1
	Body            Node
	BodyReturnsNull bool
}

// WhileNode is `WHILE cond THEN body`.
type WhileNode struct {
	span
	Condition       Node
	Body            Node
	BodyReturnsNull bool
}

// FuncDefNode is `FUNC name?(params...) -> expr` or the block form.
type FuncDefNode struct {
	span
	Name             string // "" for anonymous
	ParamNames       []string
	Body             Node
	ShouldAutoReturn bool
}

// CallNode applies Callee to Args. Callee is whatever atom precedes the
// '(' — usually a VarAccessNode, but the parser does not restrict it to
// one.
type CallNode struct {
	span
	Callee Node
	Args   []Node
}

// ReturnNode is `RETURN expr?`.
type ReturnNode struct {
	span
	Value Node // nil when bare RETURN
}

// ContinueNode is `CONTINUE`.
type ContinueNode struct {
	span
}

// BreakNode is `BREAK`.
type BreakNode struct {
	span
}

// ImportNode is `# IMPORT "path" AS alias`.
type ImportNode struct {
	span
	Path  string
	Alias string
}
