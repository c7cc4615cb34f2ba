/*
File    : eplusplus/objects/objects_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber_DisplayIntegral(t *testing.T) {
	n := &Number{Val: 42}
	assert.Equal(t, "42", n.Display())
}

func TestNumber_DisplayNegativeIntegral(t *testing.T) {
	n := &Number{Val: -7}
	assert.Equal(t, "-7", n.Display())
}

func TestNumber_DisplayFractional(t *testing.T) {
	n := &Number{Val: 3.5}
	assert.Equal(t, "3.5", n.Display())
}

func TestNumber_DisplayTrimsTrailingZeros(t *testing.T) {
	n := &Number{Val: 1.0 / 4}
	assert.Equal(t, "0.25", n.Display())
}

func TestNumber_Truthy(t *testing.T) {
	assert.True(t, (&Number{Val: 1}).Truthy())
	assert.True(t, (&Number{Val: -1}).Truthy())
	assert.False(t, (&Number{Val: 0}).Truthy())
}

func TestString_Display(t *testing.T) {
	s := &String{Val: "hello"}
	assert.Equal(t, "hello", s.Display())
	assert.True(t, s.Truthy())
}

func TestList_DisplayEmpty(t *testing.T) {
	l := &List{}
	assert.Equal(t, "", l.Display())
}

func TestList_DisplaySingleElementUnwraps(t *testing.T) {
	l := &List{Elements: []Value{&Number{Val: 5}}}
	assert.Equal(t, "5", l.Display())
}

func TestList_DisplayMultipleElements(t *testing.T) {
	l := &List{Elements: []Value{&Number{Val: 1}, &String{Val: "x"}}}
	assert.Equal(t, "[1, x]", l.Display())
}

func TestList_MutationVisibleThroughAlias(t *testing.T) {
	l := &List{Elements: []Value{&Number{Val: 1}}}
	alias := l
	alias.Elements = append(alias.Elements, &Number{Val: 2})
	assert.Len(t, l.Elements, 2)
}

func TestUserFunctionHandle_DisplayNamed(t *testing.T) {
	f := &UserFunctionHandle{Name: "square"}
	assert.Equal(t, "<function 'square'>", f.Display())
}

func TestUserFunctionHandle_DisplayAnonymous(t *testing.T) {
	f := &UserFunctionHandle{}
	assert.Equal(t, "<function '<anonymous>'>", f.Display())
}

func TestNativeFunctionHandle_Display(t *testing.T) {
	f := &NativeFunctionHandle{Name: "PRINT"}
	assert.Equal(t, "<built-in function 'PRINT'>", f.Display())
}
