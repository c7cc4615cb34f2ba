/*
File    : eplusplus/nativefn/context.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package nativefn implements the Native Function Protocol (spec.md §4.4):
// a uniform Execute(args) (Value, error) call interface, grounded in the
// teacher's std/builtins.go Builtin{Name, Callback} registration pattern
// but adapted to a plain-error return so the objects package never needs
// to import eval's RTResult.
package nativefn

import (
	"bufio"
	"io"
	"math/rand"
	"time"
)

// Context carries the host-specific pieces every builtin needs: where to
// write/read, a private random source, and the two platform-specific
// integration hooks (CLEAR, SYSTEM) the interpreter never implements
// directly.
type Context struct {
	Out   io.Writer
	In    *bufio.Reader
	Rand  *rand.Rand
	Clear func() error
	Shell func(string) error
}

// NewContext builds a Context reading from in and writing to out, seeded
// from the current time, with no-op Clear/Shell hooks. Callers that want
// a real terminal clear or shell (the CLI) overwrite those two fields.
func NewContext(out io.Writer, in io.Reader) *Context {
	return &Context{
		Out:   out,
		In:    bufio.NewReader(in),
		Rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		Clear: func() error { return nil },
		Shell: func(string) error { return nil },
	}
}

// Clone returns a Context sharing Out/In/Clear/Shell but with its own,
// freshly seeded random source. Import hands a clone to the module's
// Interpreter; builtins already bound to c keep using c's source.
func (c *Context) Clone() *Context {
	return &Context{
		Out:   c.Out,
		In:    c.In,
		Rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		Clear: c.Clear,
		Shell: c.Shell,
	}
}
