/*
File    : eplusplus/nativefn/nativefn_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package nativefn

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eplusplus-lang/eplusplus/objects"
)

func newTestContext(stdin string) (*Context, *bytes.Buffer) {
	var out bytes.Buffer
	ctx := NewContext(&out, strings.NewReader(stdin))
	return ctx, &out
}

func TestHandles_RegistersEveryBuiltin(t *testing.T) {
	ctx, _ := newTestContext("")
	handles := Handles(ctx)
	for _, name := range []string{
		"PRINT", "PRINTLN", "LENGTH", "INPUT_STR", "INPUT_NUM", "CLEAR",
		"IS_NUM", "IS_STR", "IS_LIST", "IS_FUNC", "APPEND", "POP", "EXTEND",
		"SYSTEM", "RANDOM", "RANDOMIZE",
	} {
		assert.Contains(t, handles, name)
		assert.Equal(t, name, handles[name].Name)
	}
}

func TestPrint_JoinsArgsWithSpaceNoNewline(t *testing.T) {
	ctx, out := newTestContext("")
	val, err := biPrint(ctx, []objects.Value{&objects.Number{Val: 1}, &objects.String{Val: "x"}})
	require.NoError(t, err)
	assert.Equal(t, objects.Null(), val)
	assert.Equal(t, "1 x", out.String())
}

func TestPrintln_AddsTrailingNewline(t *testing.T) {
	ctx, out := newTestContext("")
	_, err := biPrintln(ctx, []objects.Value{&objects.String{Val: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out.String())
}

func TestPrint_RequiresAtLeastOneArgument(t *testing.T) {
	ctx, _ := newTestContext("")
	_, err := biPrint(ctx, nil)
	assert.Error(t, err)
}

func TestLength_StringAndList(t *testing.T) {
	ctx, _ := newTestContext("")
	v, err := biLength(ctx, []objects.Value{&objects.String{Val: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, 5.0, v.(*objects.Number).Val)

	v, err = biLength(ctx, []objects.Value{&objects.List{Elements: []objects.Value{&objects.Number{Val: 1}, &objects.Number{Val: 2}}}})
	require.NoError(t, err)
	assert.Equal(t, 2.0, v.(*objects.Number).Val)
}

func TestLength_RejectsOtherTypes(t *testing.T) {
	ctx, _ := newTestContext("")
	_, err := biLength(ctx, []objects.Value{&objects.Number{Val: 1}})
	assert.Error(t, err)
}

func TestInputStr_ReadsOneLine(t *testing.T) {
	ctx, _ := newTestContext("hello world\nsecond line\n")
	v, err := biInputStr(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", v.(*objects.String).Val)
}

func TestInputNum_RepromptsUntilParseable(t *testing.T) {
	ctx, _ := newTestContext("not a number\n42\n")
	v, err := biInputNum(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v.(*objects.Number).Val)
}

func TestIsPredicates_RequireExactlyOneArgument(t *testing.T) {
	ctx, _ := newTestContext("")
	_, err := biIsNum(ctx, nil)
	assert.Error(t, err)
	_, err = biIsNum(ctx, []objects.Value{&objects.Number{Val: 1}, &objects.Number{Val: 2}})
	assert.Error(t, err)
}

func TestIsFunc_MatchesBothFunctionKinds(t *testing.T) {
	ctx, _ := newTestContext("")
	v, err := biIsFunc(ctx, []objects.Value{&objects.UserFunctionHandle{Name: "f"}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.(*objects.Number).Val)

	v, err = biIsFunc(ctx, []objects.Value{&objects.NativeFunctionHandle{Name: "g"}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.(*objects.Number).Val)

	v, err = biIsFunc(ctx, []objects.Value{&objects.Number{Val: 1}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, v.(*objects.Number).Val)
}

func TestAppend_MutatesListInPlace(t *testing.T) {
	ctx, _ := newTestContext("")
	list := &objects.List{Elements: []objects.Value{&objects.Number{Val: 1}}}
	_, err := biAppend(ctx, []objects.Value{list, &objects.Number{Val: 2}})
	require.NoError(t, err)
	assert.Len(t, list.Elements, 2)
	assert.Equal(t, 2.0, list.Elements[1].(*objects.Number).Val)
}

func TestPop_DefaultsToTail(t *testing.T) {
	ctx, _ := newTestContext("")
	list := &objects.List{Elements: []objects.Value{&objects.Number{Val: 1}, &objects.Number{Val: 2}}}
	v, err := biPop(ctx, []objects.Value{list})
	require.NoError(t, err)
	assert.Equal(t, 2.0, v.(*objects.Number).Val)
	assert.Len(t, list.Elements, 1)
}

func TestPop_AtIndex(t *testing.T) {
	ctx, _ := newTestContext("")
	list := &objects.List{Elements: []objects.Value{&objects.Number{Val: 1}, &objects.Number{Val: 2}, &objects.Number{Val: 3}}}
	v, err := biPop(ctx, []objects.Value{list, &objects.Number{Val: 0}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.(*objects.Number).Val)
	assert.Len(t, list.Elements, 2)
}

func TestPop_OutOfBoundsIsError(t *testing.T) {
	ctx, _ := newTestContext("")
	list := &objects.List{}
	_, err := biPop(ctx, []objects.Value{list})
	assert.Error(t, err)
}

func TestExtend_AppendsAllElements(t *testing.T) {
	ctx, _ := newTestContext("")
	dst := &objects.List{Elements: []objects.Value{&objects.Number{Val: 1}}}
	src := &objects.List{Elements: []objects.Value{&objects.Number{Val: 2}, &objects.Number{Val: 3}}}
	_, err := biExtend(ctx, []objects.Value{dst, src})
	require.NoError(t, err)
	assert.Len(t, dst.Elements, 3)
}

func TestRandom_IsWithinRange(t *testing.T) {
	ctx, _ := newTestContext("")
	for i := 0; i < 20; i++ {
		v, err := biRandom(ctx, []objects.Value{&objects.Number{Val: 1}, &objects.Number{Val: 2}})
		require.NoError(t, err)
		n := v.(*objects.Number).Val
		assert.GreaterOrEqual(t, n, 1.0)
		assert.Less(t, n, 2.0)
	}
}

func TestRandomize_ReseedsDeterministically(t *testing.T) {
	ctx, _ := newTestContext("")
	_, err := biRandomize(ctx, []objects.Value{&objects.Number{Val: 7}})
	require.NoError(t, err)
	first, _ := biRandom(ctx, []objects.Value{&objects.Number{Val: 0}, &objects.Number{Val: 1}})

	_, err = biRandomize(ctx, []objects.Value{&objects.Number{Val: 7}})
	require.NoError(t, err)
	second, _ := biRandom(ctx, []objects.Value{&objects.Number{Val: 0}, &objects.Number{Val: 1}})

	assert.Equal(t, first.(*objects.Number).Val, second.(*objects.Number).Val)
}

func TestClearAndSystem_DefaultToNoOpHooks(t *testing.T) {
	ctx, _ := newTestContext("")
	_, err := biClear(ctx, nil)
	assert.NoError(t, err)
	_, err = biSystem(ctx, []objects.Value{&objects.String{Val: "echo hi"}})
	assert.NoError(t, err)
}

func TestContext_CloneGetsFreshRandButSharesOutput(t *testing.T) {
	ctx, _ := newTestContext("")
	clone := ctx.Clone()
	assert.Same(t, ctx.Out, clone.Out)
	assert.NotSame(t, ctx.Rand, clone.Rand)
}
