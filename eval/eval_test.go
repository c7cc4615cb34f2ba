/*
File    : eplusplus/eval/eval_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eplusplus-lang/eplusplus/lexer"
	"github.com/eplusplus-lang/eplusplus/nativefn"
	"github.com/eplusplus-lang/eplusplus/objects"
	"github.com/eplusplus-lang/eplusplus/parser"
)

// run lexes, parses, and evaluates src against a fresh Interpreter and
// global table, returning the final RTResult.
func run(t *testing.T, src string) *RTResult {
	t.Helper()
	tokens, err := lexer.NewLexer("<test>", src).MakeTokens()
	require.NoError(t, err)
	tree, err := parser.NewParser(tokens).Parse()
	require.NoError(t, err)
	ctx := nativefn.NewContext(&bytes.Buffer{}, strings.NewReader(""))
	ip := NewInterpreter(".", ctx)
	return ip.Visit(tree, ip.NewGlobalTable())
}

func TestScenario_S1_OperatorPrecedence(t *testing.T) {
	res := run(t, "VAR a = 2 + 3 * 4")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, "14", res.Value.Display())
}

func TestScenario_S2_StringRepetition(t *testing.T) {
	res := run(t, `"ab" * 3`)
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, "ababab", res.Value.Display())
}

func TestScenario_S3_ListIndexing(t *testing.T) {
	res := run(t, "VAR L = [1,2,3]\nL @ 0 + L @ 2")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, "4", res.Value.Display())
}

func TestScenario_S4_FunctionCall(t *testing.T) {
	res := run(t, "FUNC sq(x) -> x^2\nsq(5)")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, "25", res.Value.Display())
}

func TestScenario_S5_ForLoopCollectsValues(t *testing.T) {
	res := run(t, "FOR i = 0 TO 3 THEN i*i")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, "[0, 1, 4]", res.Value.Display())
}

func TestScenario_S6_IfElifElse(t *testing.T) {
	res := run(t, "IF 0 THEN 1 ELIF 0 THEN 2 ELSE 3")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, "3", res.Value.Display())
}

func TestScenario_S7_AppendMutatesInPlace(t *testing.T) {
	res := run(t, "VAR L=[1,2]\nAPPEND(L,3)\nL")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, "[1, 2, 3]", res.Value.Display())
}

func TestScenario_S8_DivisionByZeroIsRuntimeError(t *testing.T) {
	res := run(t, "1/0")
	require.Equal(t, SignalError, res.Signal)
	rtErr, ok := res.Err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, "Runtime Error", rtErr.ErrorName())
}

func TestVarAccess_UndefinedNameIsError(t *testing.T) {
	res := run(t, "unknown_name")
	require.Equal(t, SignalError, res.Signal)
	assert.Contains(t, res.Err.Error(), "is not defined")
}

func TestVarAssign_RebindsNameInSameScope(t *testing.T) {
	res := run(t, "VAR x = 1\nVAR x = x + 1\nx")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, "2", res.Value.Display())
}

func TestFuncDef_AlwaysEvaluatesToNullEvenWhenNamed(t *testing.T) {
	res := run(t, "FUNC f(x) -> x")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, objects.Null(), res.Value)
}

func TestFuncDef_AnonymousAssignedToVarBindsNullNotTheFunction(t *testing.T) {
	res := run(t, "VAR f = FUNC(x) -> x*x\nf")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, objects.Null(), res.Value)
}

func TestCall_WrongArgCountIsRuntimeError(t *testing.T) {
	res := run(t, "FUNC f(x) -> x\nf(1,2)")
	require.Equal(t, SignalError, res.Signal)
	assert.Contains(t, res.Err.Error(), "Incorrect number of arguments")
}

func TestCall_DynamicScopingSeesCallersLocals(t *testing.T) {
	res := run(t, "FUNC useY() -> y\nVAR y = 99\nuseY()")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, "99", res.Value.Display())
}

func TestWhile_BlockFormYieldsNull(t *testing.T) {
	res := run(t, "VAR i = 0\nWHILE i < 3 THEN\n  VAR i = i + 1\n}")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, objects.Null(), res.Value)
}

func TestBreakExitsLoopEarly(t *testing.T) {
	res := run(t, "FOR i = 0 TO 10 THEN IF i == 3 THEN BREAK")
	require.Equal(t, SignalValue, res.Signal)
	list, ok := res.Value.(*objects.List)
	require.True(t, ok)
	assert.Len(t, list.Elements, 3)
}

func TestReturn_OutsideFunctionPropagatesAsReturnSignal(t *testing.T) {
	res := run(t, "RETURN 5")
	assert.Equal(t, SignalReturn, res.Signal)
	assert.Equal(t, "5", res.Value.Display())
}

func TestBreakOutsideLoopInsideFunctionIsRuntimeError(t *testing.T) {
	res := run(t, "FUNC f()\n  BREAK\n}\nf()")
	require.Equal(t, SignalError, res.Signal)
	assert.Contains(t, res.Err.Error(), "'break' or 'continue'")
}

func TestIndexOutOfBoundsIsRuntimeError(t *testing.T) {
	res := run(t, "VAR L = [1]\nL @ 5")
	require.Equal(t, SignalError, res.Signal)
	assert.Contains(t, res.Err.Error(), "Index out of bounds in list")
}

func TestUnsupportedOperandTypesIsRuntimeError(t *testing.T) {
	res := run(t, `1 + "x"`)
	require.Equal(t, SignalError, res.Signal)
	assert.Contains(t, res.Err.Error(), "Unsupported operand types")
}

func TestUnaryNot(t *testing.T) {
	res := run(t, "NOT 0")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, "1", res.Value.Display())
}

func TestAndOrNoShortCircuit(t *testing.T) {
	res := run(t, "1 AND 0")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, "0", res.Value.Display())

	res = run(t, "0 OR 1")
	require.Equal(t, SignalValue, res.Signal)
	assert.Equal(t, "1", res.Value.Display())
}

func TestFormatError_RendersKindDetailsAndCaretUnderline(t *testing.T) {
	_, err := lexer.NewLexer("<test>", "VAR x = $").MakeTokens()
	require.Error(t, err)
	out := FormatError(err)
	assert.Contains(t, out, "File <test>, line 1")
	assert.Contains(t, out, "^")
}

func TestRTResult_RegisterPropagatesErrorState(t *testing.T) {
	parent := NewRTResult()
	child := NewRTResult().Failure(&RuntimeError{Msg: "boom"})
	parent.Register(child)
	assert.True(t, parent.ShouldReturn())
	assert.Equal(t, SignalError, parent.Signal)
}

func TestNewGlobalTable_InstallsConstantsAndBuiltins(t *testing.T) {
	ctx := nativefn.NewContext(&bytes.Buffer{}, strings.NewReader(""))
	ip := NewInterpreter(".", ctx)
	table := ip.NewGlobalTable()

	val, ok := table.Get("TRUE")
	require.True(t, ok)
	assert.Equal(t, "1", val.Display())

	val, ok = table.Get("PRINT")
	require.True(t, ok)
	assert.Equal(t, objects.NativeFunctionKind, val.Kind())
}
