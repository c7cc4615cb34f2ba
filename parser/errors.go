/*
File    : eplusplus/parser/errors.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import "github.com/eplusplus-lang/eplusplus/position"

// InvalidSyntaxError reports a token that no grammar production accepts
// at the point it was encountered.
type InvalidSyntaxError struct {
	Msg   string
	Start position.Position
	End   position.Position
}

func (e *InvalidSyntaxError) Error() string            { return "Invalid Syntax: " + e.Msg }
func (e *InvalidSyntaxError) ErrorName() string         { return "Invalid Syntax" }
func (e *InvalidSyntaxError) Details() string           { return e.Msg }
func (e *InvalidSyntaxError) PosStart() position.Position { return e.Start }
func (e *InvalidSyntaxError) PosEnd() position.Position   { return e.End }
