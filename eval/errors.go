/*
File    : eplusplus/eval/errors.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import "github.com/eplusplus-lang/eplusplus/position"

// RuntimeError reports a failure discovered during tree-walking: an
// undefined name, a type mismatch between operands, a division by zero,
// an out-of-bounds list index, and so on.
type RuntimeError struct {
	Msg   string
	Start position.Position
	End   position.Position
}

func (e *RuntimeError) Error() string              { return "Runtime Error: " + e.Msg }
func (e *RuntimeError) ErrorName() string           { return "Runtime Error" }
func (e *RuntimeError) Details() string             { return e.Msg }
func (e *RuntimeError) PosStart() position.Position { return e.Start }
func (e *RuntimeError) PosEnd() position.Position   { return e.End }
