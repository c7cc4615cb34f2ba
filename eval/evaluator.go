/*
File    : eplusplus/eval/evaluator.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package eval tree-walks the AST the parser produces, evaluating each
// node against a SymbolTable chain and producing an RTResult. Node
// dispatch is a single exhaustive type switch over the closed parser.Node
// set (SPEC_FULL.md §3: "visitor dispatch as exhaustive pattern matching
// rather than runtime casts"), not a double-dispatch Visitor.
package eval

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/eplusplus-lang/eplusplus/lexer"
	"github.com/eplusplus-lang/eplusplus/nativefn"
	"github.com/eplusplus-lang/eplusplus/objects"
	"github.com/eplusplus-lang/eplusplus/parser"
	"github.com/eplusplus-lang/eplusplus/scope"
)

// Interpreter is the tree-walker. FileDir is the directory relative
// paths in Import resolve against. Modules is the process-wide-for-this-
// run alias→SymbolTable registry, shared by every Interpreter spawned for
// a function call (dynamic scoping, SPEC_FULL.md §4.3) and rebuilt fresh
// per process.
type Interpreter struct {
	FileDir string
	Modules map[string]*scope.SymbolTable
	Ctx     *nativefn.Context
}

// NewInterpreter builds an Interpreter rooted at fileDir (used to resolve
// relative Import paths) using ctx for I/O, randomness, and the CLEAR/
// SYSTEM host hooks.
func NewInterpreter(fileDir string, ctx *nativefn.Context) *Interpreter {
	return &Interpreter{
		FileDir: fileDir,
		Modules: make(map[string]*scope.SymbolTable),
		Ctx:     ctx,
	}
}

// NewGlobalTable builds the root SymbolTable: the built-in constants
// (NULL, TRUE, FALSE, MATH_PI) and the native function registry bound
// against ip.Ctx, per SPEC_FULL.md's runtime value model.
func (ip *Interpreter) NewGlobalTable() *scope.SymbolTable {
	table := scope.New(nil)
	table.Set("NULL", &objects.Number{Val: 0})
	table.Set("TRUE", &objects.Number{Val: 1})
	table.Set("FALSE", &objects.Number{Val: 0})
	table.Set("MATH_PI", &objects.Number{Val: 3.14159265358979323846})
	for name, handle := range nativefn.Handles(ip.Ctx) {
		table.Set(name, handle)
	}
	return table
}

// Visit dispatches node to the matching visit method. The switch is
// exhaustive over parser.Node's closed variant set.
func (ip *Interpreter) Visit(node parser.Node, table *scope.SymbolTable) *RTResult {
	switch n := node.(type) {
	case *parser.StatementsNode:
		return ip.visitStatements(n, table)
	case *parser.NumberNode:
		return ip.visitNumber(n)
	case *parser.StringNode:
		return ip.visitString(n)
	case *parser.ListNode:
		return ip.visitList(n, table)
	case *parser.VarAccessNode:
		return ip.visitVarAccess(n, table)
	case *parser.VarAssignNode:
		return ip.visitVarAssign(n, table)
	case *parser.BinOpNode:
		return ip.visitBinOp(n, table)
	case *parser.UnaryOpNode:
		return ip.visitUnaryOp(n, table)
	case *parser.IfNode:
		return ip.visitIf(n, table)
	case *parser.ForNode:
		return ip.visitFor(n, table)
	case *parser.WhileNode:
		return ip.visitWhile(n, table)
	case *parser.FuncDefNode:
		return ip.visitFuncDef(n, table)
	case *parser.CallNode:
		return ip.visitCall(n, table)
	case *parser.ReturnNode:
		return ip.visitReturn(n, table)
	case *parser.ContinueNode:
		return NewRTResult().SuccessContinue()
	case *parser.BreakNode:
		return NewRTResult().SuccessBreak()
	case *parser.ImportNode:
		return ip.visitImport(n, table)
	default:
		return NewRTResult().Failure(&RuntimeError{
			Msg:   fmt.Sprintf("no visit method defined for %T", node),
			Start: node.PosStart(),
			End:   node.PosEnd(),
		})
	}
}

func (ip *Interpreter) visitStatements(n *parser.StatementsNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()
	value := objects.Null()
	for _, stmt := range n.Statements {
		stmtRes := ip.Visit(stmt, table)
		res.Register(stmtRes)
		if res.ShouldReturn() {
			return res
		}
		value = stmtRes.Value
	}
	return res.Success(value)
}

func (ip *Interpreter) visitNumber(n *parser.NumberNode) *RTResult {
	return NewRTResult().Success(&objects.Number{Val: n.Tok.NumValue})
}

func (ip *Interpreter) visitString(n *parser.StringNode) *RTResult {
	return NewRTResult().Success(&objects.String{Val: n.Tok.StrValue})
}

func (ip *Interpreter) visitList(n *parser.ListNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()
	elements := make([]objects.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		elRes := ip.Visit(el, table)
		res.Register(elRes)
		if res.ShouldReturn() {
			return res
		}
		elements = append(elements, elRes.Value)
	}
	return res.Success(&objects.List{Elements: elements})
}

func (ip *Interpreter) visitVarAccess(n *parser.VarAccessNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()
	lookupTable := table
	if n.Alias != "" {
		mod, ok := ip.Modules[n.Alias]
		if !ok {
			return res.Failure(&RuntimeError{
				Msg:   fmt.Sprintf("Module '%s' not found", n.Alias),
				Start: n.PosStart(), End: n.PosEnd(),
			})
		}
		lookupTable = mod
	}
	val, ok := lookupTable.Get(n.Name)
	if !ok {
		return res.Failure(&RuntimeError{
			Msg:   fmt.Sprintf("'%s' is not defined", n.Name),
			Start: n.PosStart(), End: n.PosEnd(),
		})
	}
	return res.Success(val)
}

func (ip *Interpreter) visitVarAssign(n *parser.VarAssignNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()
	valRes := ip.Visit(n.Value, table)
	val := res.Register(valRes)
	if res.ShouldReturn() {
		return res
	}
	table.Set(n.Name, val)
	return res.Success(val)
}

func (ip *Interpreter) visitUnaryOp(n *parser.UnaryOpNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()
	operandRes := ip.Visit(n.Node, table)
	operand := res.Register(operandRes)
	if res.ShouldReturn() {
		return res
	}
	num, ok := operand.(*objects.Number)
	if !ok {
		return res.Failure(&RuntimeError{
			Msg:   "Unsupported operand type for unary operation",
			Start: n.PosStart(), End: n.PosEnd(),
		})
	}
	switch {
	case n.OpTok.Type == lexer.MINUS:
		return res.Success(&objects.Number{Val: -num.Val})
	case n.OpTok.Type == lexer.PLUS:
		return res.Success(&objects.Number{Val: num.Val})
	case n.OpTok.Matches(lexer.KEYWORD, "NOT"):
		if num.Val == 0 {
			return res.Success(&objects.Number{Val: 1})
		}
		return res.Success(&objects.Number{Val: 0})
	}
	return res.Failure(&RuntimeError{
		Msg:   "Unsupported unary operator",
		Start: n.PosStart(), End: n.PosEnd(),
	})
}

func (ip *Interpreter) visitBinOp(n *parser.BinOpNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()
	leftRes := ip.Visit(n.Left, table)
	left := res.Register(leftRes)
	if res.ShouldReturn() {
		return res
	}
	rightRes := ip.Visit(n.Right, table)
	right := res.Register(rightRes)
	if res.ShouldReturn() {
		return res
	}

	unsupported := func() *RTResult {
		return res.Failure(&RuntimeError{
			Msg:   "Unsupported operand types for binary operation",
			Start: n.PosStart(), End: n.PosEnd(),
		})
	}
	boolNum := func(b bool) objects.Value {
		if b {
			return &objects.Number{Val: 1}
		}
		return &objects.Number{Val: 0}
	}

	leftNum, leftIsNum := left.(*objects.Number)
	rightNum, rightIsNum := right.(*objects.Number)
	leftStr, leftIsStr := left.(*objects.String)
	rightStr, rightIsStr := right.(*objects.String)
	leftList, leftIsList := left.(*objects.List)
	rightList, rightIsList := right.(*objects.List)

	switch n.OpTok.Type {
	case lexer.PLUS:
		switch {
		case leftIsNum && rightIsNum:
			return res.Success(&objects.Number{Val: leftNum.Val + rightNum.Val})
		case leftIsStr && rightIsStr:
			return res.Success(&objects.String{Val: leftStr.Val + rightStr.Val})
		case leftIsList:
			elements := append(append([]objects.Value{}, leftList.Elements...), right)
			return res.Success(&objects.List{Elements: elements})
		}
		return unsupported()

	case lexer.MINUS:
		if leftIsNum && rightIsNum {
			return res.Success(&objects.Number{Val: leftNum.Val - rightNum.Val})
		}
		return unsupported()

	case lexer.MUL:
		switch {
		case leftIsNum && rightIsNum:
			return res.Success(&objects.Number{Val: leftNum.Val * rightNum.Val})
		case leftIsStr && rightIsNum:
			return res.Success(&objects.String{Val: strings.Repeat(leftStr.Val, repeatCount(rightNum.Val))})
		case leftIsNum && rightIsStr:
			return res.Success(&objects.String{Val: strings.Repeat(rightStr.Val, repeatCount(leftNum.Val))})
		case leftIsList && rightIsList:
			elements := append(append([]objects.Value{}, leftList.Elements...), rightList.Elements...)
			return res.Success(&objects.List{Elements: elements})
		}
		return unsupported()

	case lexer.DIV:
		if leftIsNum && rightIsNum {
			if rightNum.Val == 0 {
				return res.Failure(&RuntimeError{Msg: "Division by zero", Start: n.PosStart(), End: n.PosEnd()})
			}
			return res.Success(&objects.Number{Val: leftNum.Val / rightNum.Val})
		}
		return unsupported()

	case lexer.POW:
		if leftIsNum && rightIsNum {
			return res.Success(&objects.Number{Val: math.Pow(leftNum.Val, rightNum.Val)})
		}
		return unsupported()

	case lexer.AT:
		if leftIsList && rightIsNum {
			idx := int(rightNum.Val)
			if idx < 0 || idx >= len(leftList.Elements) {
				return res.Failure(&RuntimeError{Msg: "Index out of bounds in list", Start: n.PosStart(), End: n.PosEnd()})
			}
			return res.Success(leftList.Elements[idx])
		}
		return unsupported()

	case lexer.EQEQ:
		if leftIsNum && rightIsNum {
			return res.Success(boolNum(leftNum.Val == rightNum.Val))
		}
		return unsupported()

	case lexer.NEQ:
		if leftIsNum && rightIsNum {
			return res.Success(boolNum(leftNum.Val != rightNum.Val))
		}
		return unsupported()

	case lexer.LT:
		if leftIsNum && rightIsNum {
			return res.Success(boolNum(leftNum.Val < rightNum.Val))
		}
		return unsupported()

	case lexer.GT:
		if leftIsNum && rightIsNum {
			return res.Success(boolNum(leftNum.Val > rightNum.Val))
		}
		return unsupported()

	case lexer.LTEQ:
		if leftIsNum && rightIsNum {
			return res.Success(boolNum(leftNum.Val <= rightNum.Val))
		}
		return unsupported()

	case lexer.GTEQ:
		if leftIsNum && rightIsNum {
			return res.Success(boolNum(leftNum.Val >= rightNum.Val))
		}
		return unsupported()

	case lexer.KEYWORD:
		switch n.OpTok.StrValue {
		case "AND":
			if leftIsNum && rightIsNum {
				return res.Success(boolNum(leftNum.Val != 0 && rightNum.Val != 0))
			}
		case "OR":
			if leftIsNum && rightIsNum {
				return res.Success(boolNum(leftNum.Val != 0 || rightNum.Val != 0))
			}
		}
		return unsupported()
	}
	return unsupported()
}

// repeatCount truncates a string-repeat factor to a non-negative int:
// negative factors produce the empty string, per the string*number rule.
func repeatCount(n float64) int {
	i := int(n)
	if i < 0 {
		return 0
	}
	return i
}

func (ip *Interpreter) visitIf(n *parser.IfNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()
	for _, c := range n.Cases {
		condRes := ip.Visit(c.Condition, table)
		cond := res.Register(condRes)
		if res.ShouldReturn() {
			return res
		}
		if cond.Truthy() {
			bodyRes := ip.Visit(c.Body, table)
			bodyVal := res.Register(bodyRes)
			if res.ShouldReturn() {
				return res
			}
			if c.BodyReturnsNull {
				return res.Success(objects.Null())
			}
			return res.Success(bodyVal)
		}
	}
	if n.ElseBody != nil {
		elseRes := ip.Visit(n.ElseBody, table)
		elseVal := res.Register(elseRes)
		if res.ShouldReturn() {
			return res
		}
		if n.ElseNull {
			return res.Success(objects.Null())
		}
		return res.Success(elseVal)
	}
	return res.Success(objects.Null())
}

func (ip *Interpreter) visitFor(n *parser.ForNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()

	startRes := ip.Visit(n.StartValue, table)
	startVal := res.Register(startRes)
	if res.ShouldReturn() {
		return res
	}
	start, ok := startVal.(*objects.Number)
	if !ok {
		return res.Failure(&RuntimeError{Msg: "FOR start value must be a number", Start: n.PosStart(), End: n.PosEnd()})
	}

	endRes := ip.Visit(n.EndValue, table)
	endVal := res.Register(endRes)
	if res.ShouldReturn() {
		return res
	}
	end, ok := endVal.(*objects.Number)
	if !ok {
		return res.Failure(&RuntimeError{Msg: "FOR end value must be a number", Start: n.PosStart(), End: n.PosEnd()})
	}

	step := 1.0
	if n.StepValue != nil {
		stepRes := ip.Visit(n.StepValue, table)
		stepVal := res.Register(stepRes)
		if res.ShouldReturn() {
			return res
		}
		stepNum, ok := stepVal.(*objects.Number)
		if !ok {
			return res.Failure(&RuntimeError{Msg: "FOR step value must be a number", Start: n.PosStart(), End: n.PosEnd()})
		}
		step = stepNum.Val
	}

	elements := make([]objects.Value, 0)
	i := start.Val
	cond := func() bool {
		if step >= 0 {
			return i < end.Val
		}
		return i > end.Val
	}
	for cond() {
		table.Set(n.VarName, &objects.Number{Val: i})
		i += step

		bodyRes := ip.Visit(n.Body, table)
		bodyVal := bodyRes.Value
		if bodyRes.Signal == SignalContinue {
			continue
		}
		if bodyRes.Signal == SignalBreak {
			break
		}
		res.Register(bodyRes)
		if res.ShouldReturn() {
			return res
		}
		elements = append(elements, bodyVal)
	}

	if n.BodyReturnsNull {
		return res.Success(objects.Null())
	}
	return res.Success(&objects.List{Elements: elements})
}

func (ip *Interpreter) visitWhile(n *parser.WhileNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()
	elements := make([]objects.Value, 0)
	for {
		condRes := ip.Visit(n.Condition, table)
		cond := res.Register(condRes)
		if res.ShouldReturn() {
			return res
		}
		if !cond.Truthy() {
			break
		}

		bodyRes := ip.Visit(n.Body, table)
		bodyVal := bodyRes.Value
		if bodyRes.Signal == SignalContinue {
			continue
		}
		if bodyRes.Signal == SignalBreak {
			break
		}
		res.Register(bodyRes)
		if res.ShouldReturn() {
			return res
		}
		elements = append(elements, bodyVal)
	}

	if n.BodyReturnsNull {
		return res.Success(objects.Null())
	}
	return res.Success(&objects.List{Elements: elements})
}

// visitFuncDef constructs a UserFunctionHandle and, if named, binds it
// locally. The FuncDef expression itself always evaluates to null,
// whether or not it is named — the function becomes reachable only
// through that local binding, never through the expression's own value.
func (ip *Interpreter) visitFuncDef(n *parser.FuncDefNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()
	fn := &objects.UserFunctionHandle{
		Name:             n.Name,
		ParamNames:       append([]string{}, n.ParamNames...),
		Body:             n.Body,
		ShouldAutoReturn: n.ShouldAutoReturn,
	}
	if n.Name != "" {
		table.Set(n.Name, fn)
	}
	return res.Success(objects.Null())
}

func (ip *Interpreter) visitCall(n *parser.CallNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()
	calleeRes := ip.Visit(n.Callee, table)
	callee := res.Register(calleeRes)
	if res.ShouldReturn() {
		return res
	}

	args := make([]objects.Value, 0, len(n.Args))
	for _, a := range n.Args {
		argRes := ip.Visit(a, table)
		arg := res.Register(argRes)
		if res.ShouldReturn() {
			return res
		}
		args = append(args, arg)
	}

	switch fn := callee.(type) {
	case *objects.UserFunctionHandle:
		return ip.callUserFunction(fn, args, table, n)
	case *objects.NativeFunctionHandle:
		val, err := fn.Execute(args)
		if err != nil {
			return res.Failure(&RuntimeError{Msg: err.Error(), Start: n.PosStart(), End: n.PosEnd()})
		}
		return res.Success(val)
	default:
		return res.Failure(&RuntimeError{Msg: "value is not callable", Start: n.PosStart(), End: n.PosEnd()})
	}
}

// callUserFunction runs fn's body in a fresh child table parented to the
// CALLER's table, not to any table captured at definition time: E++
// resolves free variables dynamically, through whichever table chain is
// live at the moment of the call.
func (ip *Interpreter) callUserFunction(fn *objects.UserFunctionHandle, args []objects.Value, callerTable *scope.SymbolTable, n *parser.CallNode) *RTResult {
	res := NewRTResult()
	if len(args) != len(fn.ParamNames) {
		return res.Failure(&RuntimeError{
			Msg:   "Incorrect number of arguments",
			Start: n.PosStart(), End: n.PosEnd(),
		})
	}

	callTable := scope.New(callerTable)
	for i, name := range fn.ParamNames {
		callTable.Set(name, args[i])
	}

	callInterp := &Interpreter{FileDir: ip.FileDir, Modules: ip.Modules, Ctx: ip.Ctx}
	bodyRes := callInterp.Visit(fn.Body, callTable)

	switch bodyRes.Signal {
	case SignalError:
		res.Err = bodyRes.Err
		res.Signal = SignalError
		return res
	case SignalContinue, SignalBreak:
		return res.Failure(&RuntimeError{
			Msg:   "Cannot use 'break' or 'continue' outside of a loop",
			Start: n.PosStart(), End: n.PosEnd(),
		})
	case SignalReturn:
		return res.Success(bodyRes.Value)
	default:
		if fn.ShouldAutoReturn {
			return res.Success(bodyRes.Value)
		}
		return res.Success(objects.Null())
	}
}

func (ip *Interpreter) visitReturn(n *parser.ReturnNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()
	if n.Value == nil {
		return res.SuccessReturn(objects.Null())
	}
	valRes := ip.Visit(n.Value, table)
	val := res.Register(valRes)
	if res.ShouldReturn() {
		return res
	}
	return res.SuccessReturn(val)
}

// visitImport resolves path against the current file's directory, reads,
// lexes, and parses it, then interprets it into a fresh SymbolTable
// parented to the importer's table (so the module may reference globals).
// The module's Interpreter gets a cloned Context, but the builtins the
// module reaches through the importer's table stay bound to the
// importer's Context, so a RANDOMIZE inside the module reseeds the
// importer's random source. On success the module's table is registered
// under alias in the shared module map; Import always yields null.
func (ip *Interpreter) visitImport(n *parser.ImportNode, table *scope.SymbolTable) *RTResult {
	res := NewRTResult()

	path := n.Path
	if !filepath.IsAbs(path) {
		dir := ip.FileDir
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return res.Failure(&RuntimeError{
			Msg:   fmt.Sprintf("could not load module '%s': %v", n.Path, err),
			Start: n.PosStart(), End: n.PosEnd(),
		})
	}

	lx := lexer.NewLexer(path, string(src))
	tokens, lexErr := lx.MakeTokens()
	if lexErr != nil {
		return res.Failure(&RuntimeError{
			Msg:   FormatError(lexErr),
			Start: n.PosStart(), End: n.PosEnd(),
		})
	}
	ps := parser.NewParser(tokens)
	tree, parseErr := ps.Parse()
	if parseErr != nil {
		return res.Failure(&RuntimeError{
			Msg:   FormatError(parseErr),
			Start: n.PosStart(), End: n.PosEnd(),
		})
	}

	moduleTable := scope.New(table)
	moduleInterp := &Interpreter{
		FileDir: filepath.Dir(path),
		Modules: ip.Modules,
		Ctx:     ip.Ctx.Clone(),
	}
	runRes := moduleInterp.Visit(tree, moduleTable)
	if runRes.Signal == SignalError {
		return res.Failure(&RuntimeError{
			Msg:   fmt.Sprintf("error importing '%s': %s", n.Path, FormatError(runRes.Err)),
			Start: n.PosStart(), End: n.PosEnd(),
		})
	}

	ip.Modules[n.Alias] = moduleTable
	return res.Success(objects.Null())
}
