/*
File    : eplusplus/scope/scope_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eplusplus-lang/eplusplus/objects"
)

func TestSymbolTable_SetAndGetLocal(t *testing.T) {
	root := New(nil)
	root.Set("x", &objects.Number{Val: 10})

	val, ok := root.Get("x")
	assert.True(t, ok)
	assert.Equal(t, 10.0, val.(*objects.Number).Val)
}

func TestSymbolTable_GetWalksParentChain(t *testing.T) {
	root := New(nil)
	root.Set("x", &objects.Number{Val: 1})
	child := New(root)

	val, ok := child.Get("x")
	assert.True(t, ok)
	assert.Equal(t, 1.0, val.(*objects.Number).Val)
}

func TestSymbolTable_GetMissingReturnsFalse(t *testing.T) {
	root := New(nil)
	_, ok := root.Get("missing")
	assert.False(t, ok)
}

func TestSymbolTable_SetShadowsWithoutMutatingParent(t *testing.T) {
	root := New(nil)
	root.Set("x", &objects.Number{Val: 1})
	child := New(root)
	child.Set("x", &objects.Number{Val: 2})

	childVal, _ := child.Get("x")
	parentVal, _ := root.Get("x")
	assert.Equal(t, 2.0, childVal.(*objects.Number).Val)
	assert.Equal(t, 1.0, parentVal.(*objects.Number).Val)
}

func TestSymbolTable_ChildDoesNotLeakIntoParent(t *testing.T) {
	root := New(nil)
	child := New(root)
	child.Set("onlyInChild", &objects.Number{Val: 5})

	_, ok := root.Get("onlyInChild")
	assert.False(t, ok)
}
