/*
File    : eplusplus/nativefn/builtins.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package nativefn

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/eplusplus-lang/eplusplus/objects"
)

// builtin pairs a name with its implementation, mirroring the teacher's
// []*Builtin{{Name, Callback}} registration table but closed over a
// *Context instead of a package-global writer.
type builtin struct {
	Name string
	Fn   func(ctx *Context, args []objects.Value) (objects.Value, error)
}

// registry is the fixed built-in set from SPEC_FULL.md §4.9, grounded on
// original_source/BuildInFunctions.cpp.
var registry = []*builtin{
	{"PRINT", biPrint},
	{"PRINTLN", biPrintln},
	{"LENGTH", biLength},
	{"INPUT_STR", biInputStr},
	{"INPUT_NUM", biInputNum},
	{"CLEAR", biClear},
	{"IS_NUM", biIsNum},
	{"IS_STR", biIsStr},
	{"IS_LIST", biIsList},
	{"IS_FUNC", biIsFunc},
	{"APPEND", biAppend},
	{"POP", biPop},
	{"EXTEND", biExtend},
	{"SYSTEM", biSystem},
	{"RANDOM", biRandom},
	{"RANDOMIZE", biRandomize},
}

// Handles binds the fixed builtin set to ctx, returning one
// NativeFunctionHandle per name ready to be installed in a root
// SymbolTable.
func Handles(ctx *Context) map[string]*objects.NativeFunctionHandle {
	out := make(map[string]*objects.NativeFunctionHandle, len(registry))
	for _, b := range registry {
		b := b
		out[b.Name] = &objects.NativeFunctionHandle{
			Name: b.Name,
			Execute: func(args []objects.Value) (objects.Value, error) {
				return b.Fn(ctx, args)
			},
		}
	}
	return out
}

func boolNum(b bool) objects.Value {
	if b {
		return &objects.Number{Val: 1}
	}
	return &objects.Number{Val: 0}
}

func biPrint(ctx *Context, args []objects.Value) (objects.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("PRINT expects 1 or more arguments, got 0")
	}
	fmt.Fprint(ctx.Out, joinDisplay(args))
	return objects.Null(), nil
}

func biPrintln(ctx *Context, args []objects.Value) (objects.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("PRINTLN expects 1 or more arguments, got 0")
	}
	fmt.Fprintln(ctx.Out, joinDisplay(args))
	return objects.Null(), nil
}

func joinDisplay(args []objects.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Display()
	}
	return strings.Join(parts, " ")
}

func biLength(_ *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("LENGTH expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *objects.String:
		return &objects.Number{Val: float64(len(v.Val))}, nil
	case *objects.List:
		return &objects.Number{Val: float64(len(v.Elements))}, nil
	default:
		return nil, fmt.Errorf("LENGTH expects a string or list argument")
	}
}

func biInputStr(ctx *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("INPUT_STR expects 0 arguments, got %d", len(args))
	}
	line, err := ctx.In.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return &objects.String{Val: strings.TrimRight(line, "\r\n")}, nil
}

func biInputNum(ctx *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("INPUT_NUM expects 0 arguments, got %d", len(args))
	}
	for {
		line, err := ctx.In.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if val, perr := strconv.ParseFloat(strings.TrimSpace(line), 64); perr == nil {
			return &objects.Number{Val: val}, nil
		}
		if err == io.EOF {
			return nil, fmt.Errorf("INPUT_NUM: unexpected end of input")
		}
		fmt.Fprintln(ctx.Out, "not a number, try again")
	}
}

func biClear(ctx *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("CLEAR expects 0 arguments, got %d", len(args))
	}
	if ctx.Clear == nil {
		return objects.Null(), nil
	}
	if err := ctx.Clear(); err != nil {
		return nil, err
	}
	return objects.Null(), nil
}

func biIsNum(_ *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("IS_NUM expects exactly 1 argument, got %d", len(args))
	}
	return boolNum(args[0].Kind() == objects.NumberKind), nil
}

func biIsStr(_ *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("IS_STR expects exactly 1 argument, got %d", len(args))
	}
	return boolNum(args[0].Kind() == objects.StringKind), nil
}

func biIsList(_ *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("IS_LIST expects exactly 1 argument, got %d", len(args))
	}
	return boolNum(args[0].Kind() == objects.ListKind), nil
}

func biIsFunc(_ *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("IS_FUNC expects exactly 1 argument, got %d", len(args))
	}
	k := args[0].Kind()
	return boolNum(k == objects.UserFunctionKind || k == objects.NativeFunctionKind), nil
}

func biAppend(_ *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("APPEND expects 2 arguments, got %d", len(args))
	}
	list, ok := args[0].(*objects.List)
	if !ok {
		return nil, fmt.Errorf("APPEND expects a list as its first argument")
	}
	list.Elements = append(list.Elements, args[1])
	return objects.Null(), nil
}

func biPop(_ *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, fmt.Errorf("POP expects 1 or 2 arguments, got %d", len(args))
	}
	list, ok := args[0].(*objects.List)
	if !ok {
		return nil, fmt.Errorf("POP expects a list as its first argument")
	}
	idx := len(list.Elements) - 1
	if len(args) == 2 {
		n, ok := args[1].(*objects.Number)
		if !ok {
			return nil, fmt.Errorf("POP expects a number index as its second argument")
		}
		idx = int(n.Val)
	}
	if idx < 0 || idx >= len(list.Elements) {
		return nil, fmt.Errorf("Index out of bounds in list")
	}
	val := list.Elements[idx]
	list.Elements = append(list.Elements[:idx], list.Elements[idx+1:]...)
	return val, nil
}

func biExtend(_ *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("EXTEND expects 2 arguments, got %d", len(args))
	}
	dst, ok := args[0].(*objects.List)
	if !ok {
		return nil, fmt.Errorf("EXTEND expects a list as its first argument")
	}
	src, ok := args[1].(*objects.List)
	if !ok {
		return nil, fmt.Errorf("EXTEND expects a list as its second argument")
	}
	dst.Elements = append(dst.Elements, src.Elements...)
	return objects.Null(), nil
}

func biSystem(ctx *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("SYSTEM expects 1 argument, got %d", len(args))
	}
	cmd, ok := args[0].(*objects.String)
	if !ok {
		return nil, fmt.Errorf("SYSTEM expects a string argument")
	}
	if ctx.Shell == nil {
		return objects.Null(), nil
	}
	if err := ctx.Shell(cmd.Val); err != nil {
		return nil, err
	}
	return objects.Null(), nil
}

func biRandom(ctx *Context, args []objects.Value) (objects.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("RANDOM expects 2 arguments, got %d", len(args))
	}
	lo, ok1 := args[0].(*objects.Number)
	hi, ok2 := args[1].(*objects.Number)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("RANDOM expects two number arguments")
	}
	return &objects.Number{Val: lo.Val + ctx.Rand.Float64()*(hi.Val-lo.Val)}, nil
}

func biRandomize(ctx *Context, args []objects.Value) (objects.Value, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("RANDOMIZE expects 0 or 1 arguments, got %d", len(args))
	}
	if len(args) == 1 {
		n, ok := args[0].(*objects.Number)
		if !ok {
			return nil, fmt.Errorf("RANDOMIZE expects a number seed")
		}
		ctx.Rand.Seed(int64(n.Val))
		return objects.Null(), nil
	}
	ctx.Rand.Seed(time.Now().UnixNano())
	return objects.Null(), nil
}
