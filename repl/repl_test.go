/*
File    : eplusplus/repl/repl_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eplusplus-lang/eplusplus/eval"
	"github.com/eplusplus-lang/eplusplus/nativefn"
)

func newSession(stdin string) (*eval.Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	ctx := nativefn.NewContext(&out, strings.NewReader(stdin))
	ip := eval.NewInterpreter(".", ctx)
	return ip, &out
}

func TestExecuteLine_PrintsExpressionValue(t *testing.T) {
	r := NewRepl("", "v", "a", "-", "MIT", "> ")
	ip, out := newSession("")
	table := ip.NewGlobalTable()
	r.executeLine(out, ip, table, "2 + 2")
	assert.Contains(t, out.String(), "4")
}

func TestExecuteLine_PersistsStateAcrossCalls(t *testing.T) {
	r := NewRepl("", "v", "a", "-", "MIT", "> ")
	ip, out := newSession("")
	table := ip.NewGlobalTable()
	r.executeLine(out, ip, table, "VAR x = 10")
	out.Reset()
	r.executeLine(out, ip, table, "x + 1")
	assert.Contains(t, out.String(), "11")
}

func TestExecuteLine_ReportsLexErrorAndContinues(t *testing.T) {
	r := NewRepl("", "v", "a", "-", "MIT", "> ")
	ip, out := newSession("")
	table := ip.NewGlobalTable()
	r.executeLine(out, ip, table, "VAR x = $")
	assert.Contains(t, out.String(), "Illegal Character")
}

func TestExecuteLine_ReportsRuntimeErrorAndContinues(t *testing.T) {
	r := NewRepl("", "v", "a", "-", "MIT", "> ")
	ip, out := newSession("")
	table := ip.NewGlobalTable()
	r.executeLine(out, ip, table, "1/0")
	assert.Contains(t, out.String(), "Runtime Error")
}

func TestPrintBannerInfo_WritesBannerAndUsageHints(t *testing.T) {
	r := NewRepl("BANNER", "v1.0.0", "me", "----", "MIT", "> ")
	var out bytes.Buffer
	r.PrintBannerInfo(&out)
	assert.Contains(t, out.String(), "BANNER")
	assert.Contains(t, out.String(), "v1.0.0")
	assert.Contains(t, out.String(), ".exit")
}
