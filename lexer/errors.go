/*
File    : eplusplus/lexer/errors.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import "github.com/eplusplus-lang/eplusplus/position"

// IllegalCharError reports a byte the lexer has no rule for.
type IllegalCharError struct {
	Msg   string
	Start position.Position
	End   position.Position
}

func (e *IllegalCharError) Error() string        { return "Illegal Character: " + e.Msg }
func (e *IllegalCharError) ErrorName() string     { return "Illegal Character" }
func (e *IllegalCharError) Details() string       { return e.Msg }
func (e *IllegalCharError) PosStart() position.Position { return e.Start }
func (e *IllegalCharError) PosEnd() position.Position   { return e.End }

// ExpectedCharError reports a prefix that requires a specific following
// byte that was not found (e.g. a bare '!' not followed by '=').
type ExpectedCharError struct {
	Msg   string
	Start position.Position
	End   position.Position
}

func (e *ExpectedCharError) Error() string        { return "Expected Character: " + e.Msg }
func (e *ExpectedCharError) ErrorName() string     { return "Expected Character" }
func (e *ExpectedCharError) Details() string       { return e.Msg }
func (e *ExpectedCharError) PosStart() position.Position { return e.Start }
func (e *ExpectedCharError) PosEnd() position.Position   { return e.End }
