/*
File    : eplusplus/scope/scope.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package scope implements the SymbolTable: a name→Value mapping with a
// parent pointer, forming the scope chain every Interpreter evaluates
// against.
package scope

import "github.com/eplusplus-lang/eplusplus/objects"

// SymbolTable is a mapping name→Value plus a parent pointer. Lookup walks
// the chain from the current table up to the root; assignment of a new
// VAR always writes locally, never walking up, which is what gives E++
// its function-call dynamic scoping (a called function's table parents
// directly to the caller's table, not to the table the function was
// defined in).
type SymbolTable struct {
	Symbols map[string]objects.Value
	Parent  *SymbolTable
}

// New creates a SymbolTable whose parent is the given table (nil for the
// root/global table).
func New(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		Symbols: make(map[string]objects.Value),
		Parent:  parent,
	}
}

// Get looks up name in this table, then its parent, and so on up the
// chain. The second return value is false if name is bound nowhere in
// the chain.
func (t *SymbolTable) Get(name string) (objects.Value, bool) {
	val, ok := t.Symbols[name]
	if !ok && t.Parent != nil {
		return t.Parent.Get(name)
	}
	return val, ok
}

// Set binds name to val in THIS table only, shadowing (but not
// overwriting) any same-named binding in a parent table. This is what
// VarAssign always does: E++ has no distinct reassignment form that
// walks the chain to mutate an outer binding.
func (t *SymbolTable) Set(name string, val objects.Value) {
	t.Symbols[name] = val
}
