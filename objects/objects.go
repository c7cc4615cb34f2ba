/*
File    : eplusplus/objects/objects.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package objects defines the runtime value model for E++: a five-way sum
// type (Number, String, ListHandle, UserFunctionHandle,
// NativeFunctionHandle), all satisfying the Value interface. There is no
// separate boolean or nil type — NULL, TRUE and FALSE are just Numbers
// (0.0, 1.0, 0.0); a Number's Truthy predicate is what the evaluator uses
// for every conditional.
package objects

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/eplusplus-lang/eplusplus/parser"
)

// Kind identifies which arm of the Value sum type a Value occupies.
type Kind string

const (
	NumberKind         Kind = "number"
	StringKind         Kind = "string"
	ListKind           Kind = "list"
	UserFunctionKind   Kind = "function"
	NativeFunctionKind Kind = "native-function"
)

// Value is satisfied by every runtime value. Display produces the
// printing-contract string (§4.5); Truthy is the condition predicate used
// by IF and WHILE (NOT/AND/OR take Numbers and test them against zero).
type Value interface {
	Kind() Kind
	Display() string
	Truthy() bool
}

// Null returns a fresh Number(0.0): E++ has no distinct null type, so the
// "no value" result of statements like a block-form IF/FOR/WHILE, or a
// FuncDef expression, is just the falsy Number zero.
func Null() Value { return &Number{Val: 0} }

// Number is a double-precision value. Booleans are Numbers: 0.0 is false,
// anything else is true.
type Number struct {
	Val float64
}

func (n *Number) Kind() Kind   { return NumberKind }
func (n *Number) Truthy() bool { return n.Val != 0 }

// Display formats n per the printing contract: an integral, in-range value
// prints with no decimal point; anything else prints to 15 fractional
// digits with trailing zeros trimmed.
func (n *Number) Display() string {
	if n.Val == math.Trunc(n.Val) && math.Abs(n.Val) < math.MaxInt64 {
		return strconv.FormatFloat(n.Val, 'f', 0, 64)
	}
	s := strconv.FormatFloat(n.Val, 'f', 15, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// String is a sequence of bytes. Display returns the raw value, unquoted.
type String struct {
	Val string
}

func (s *String) Kind() Kind      { return StringKind }
func (s *String) Truthy() bool    { return true }
func (s *String) Display() string { return s.Val }

// List is a mutable, reference-shared ordered sequence of Values (a
// ListHandle). Every binding of the same List pointer observes mutation
// through APPEND/POP/EXTEND.
type List struct {
	Elements []Value
}

func (l *List) Kind() Kind   { return ListKind }
func (l *List) Truthy() bool { return true }

// Display renders an empty list as "", a one-element list as that
// element's own display form, and otherwise as "[e1, e2, ...]".
func (l *List) Display() string {
	switch len(l.Elements) {
	case 0:
		return ""
	case 1:
		return l.Elements[0].Display()
	}
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = el.Display()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// UserFunctionHandle is a reference-shared handle to a FuncDef AST. It
// deliberately does not capture its defining scope: E++ uses dynamic
// scoping for calls (see eval's Design Notes), so the body is always
// evaluated against the caller's table, not one closed over here.
type UserFunctionHandle struct {
	Name             string // "" for an anonymous function literal
	ParamNames       []string
	Body             parser.Node
	ShouldAutoReturn bool
}

func (f *UserFunctionHandle) Kind() Kind   { return UserFunctionKind }
func (f *UserFunctionHandle) Truthy() bool { return true }

func (f *UserFunctionHandle) Display() string {
	name := f.Name
	if name == "" {
		name = "<anonymous>"
	}
	return fmt.Sprintf("<function '%s'>", name)
}

// NativeFunctionHandle wraps a Go-implemented builtin. Execute receives
// already-evaluated argument Values and returns a Value or a plain error;
// it never imports eval's RTResult, which keeps objects free of a
// dependency on the evaluator.
type NativeFunctionHandle struct {
	Name    string
	Execute func(args []Value) (Value, error)
}

func (f *NativeFunctionHandle) Kind() Kind   { return NativeFunctionKind }
func (f *NativeFunctionHandle) Truthy() bool { return true }

func (f *NativeFunctionHandle) Display() string {
	return fmt.Sprintf("<built-in function '%s'>", f.Name)
}
