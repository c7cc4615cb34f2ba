/*
File    : eplusplus/cmd/eplusplus/print_visitor.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package main

import (
	"bytes"
	"fmt"

	"github.com/eplusplus-lang/eplusplus/parser"
)

const indentSize = 4

// PrintingVisitor renders an AST as an indented tree, one line per node,
// for the --ast flag. Visit dispatches with a single type switch, the same
// shape as the evaluator's; each case holds one node kind's print rule.
type PrintingVisitor struct {
	Indent int
	Buf    bytes.Buffer
}

func (p *PrintingVisitor) indent() {
	for i := 0; i < p.Indent; i++ {
		p.Buf.WriteString(" ")
	}
}

func (p *PrintingVisitor) line(label string, detail string) {
	p.indent()
	if detail == "" {
		p.Buf.WriteString(fmt.Sprintf("%s\n", label))
		return
	}
	p.Buf.WriteString(fmt.Sprintf("%s (%s)\n", label, detail))
}

func (p *PrintingVisitor) nested(label string, detail string, children ...parser.Node) {
	p.line(label, detail)
	p.Indent += indentSize
	for _, c := range children {
		p.Visit(c)
	}
	p.Indent -= indentSize
}

// Visit dispatches node to its print rule.
func (p *PrintingVisitor) Visit(node parser.Node) {
	switch n := node.(type) {
	case *parser.StatementsNode:
		p.line("Statements", fmt.Sprintf("%d stmt(s)", len(n.Statements)))
		p.Indent += indentSize
		for _, s := range n.Statements {
			p.Visit(s)
		}
		p.Indent -= indentSize

	case *parser.NumberNode:
		p.line("Number", fmt.Sprintf("%v", n.Tok.NumValue))

	case *parser.StringNode:
		p.line("String", n.Tok.StrValue)

	case *parser.ListNode:
		p.nested("List", fmt.Sprintf("%d element(s)", len(n.Elements)), n.Elements...)

	case *parser.VarAccessNode:
		if n.Alias != "" {
			p.line("VarAccess", fmt.Sprintf("%s::%s", n.Alias, n.Name))
		} else {
			p.line("VarAccess", n.Name)
		}

	case *parser.VarAssignNode:
		p.nested("VarAssign", n.Name, n.Value)

	case *parser.BinOpNode:
		p.nested("BinOp", n.OpTok.String(), n.Left, n.Right)

	case *parser.UnaryOpNode:
		p.nested("UnaryOp", n.OpTok.String(), n.Node)

	case *parser.IfNode:
		p.line("If", fmt.Sprintf("%d case(s)", len(n.Cases)))
		p.Indent += indentSize
		for i, c := range n.Cases {
			p.nested(fmt.Sprintf("Case[%d]", i), "", c.Condition, c.Body)
		}
		if n.ElseBody != nil {
			p.nested("Else", "", n.ElseBody)
		}
		p.Indent -= indentSize

	case *parser.ForNode:
		children := []parser.Node{n.StartValue, n.EndValue}
		if n.StepValue != nil {
			children = append(children, n.StepValue)
		}
		children = append(children, n.Body)
		p.nested("For", n.VarName, children...)

	case *parser.WhileNode:
		p.nested("While", "", n.Condition, n.Body)

	case *parser.FuncDefNode:
		name := n.Name
		if name == "" {
			name = "<anonymous>"
		}
		p.nested("FuncDef", fmt.Sprintf("%s(%v)", name, n.ParamNames), n.Body)

	case *parser.CallNode:
		children := append([]parser.Node{n.Callee}, n.Args...)
		p.nested("Call", fmt.Sprintf("%d arg(s)", len(n.Args)), children...)

	case *parser.ReturnNode:
		if n.Value != nil {
			p.nested("Return", "", n.Value)
		} else {
			p.line("Return", "")
		}

	case *parser.ContinueNode:
		p.line("Continue", "")

	case *parser.BreakNode:
		p.line("Break", "")

	case *parser.ImportNode:
		p.line("Import", fmt.Sprintf("%q AS %s", n.Path, n.Alias))

	default:
		p.line("Unknown", fmt.Sprintf("%T", node))
	}
}

// String returns the accumulated tree text.
func (p *PrintingVisitor) String() string {
	return p.Buf.String()
}
