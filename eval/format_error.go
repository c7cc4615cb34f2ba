/*
File    : eplusplus/eval/format_error.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"fmt"
	"strings"

	"github.com/eplusplus-lang/eplusplus/position"
)

// positioned is satisfied by every error kind this language produces:
// *lexer.IllegalCharError, *lexer.ExpectedCharError,
// *parser.InvalidSyntaxError, and *RuntimeError. It is declared here
// (structurally, not by name) so FormatError can print any of them
// without eval importing lexer or parser just for their error types.
type positioned interface {
	error
	ErrorName() string
	Details() string
	PosStart() position.Position
	PosEnd() position.Position
}

// FormatError renders err in the CLI/REPL diagnostic layout:
//
//	<Kind>: <details>
//	File <file>, line <n>
//
//	<source-line>
//	<carets>
//
// When err does not carry position information, its plain Error() string
// is returned unchanged.
func FormatError(err error) string {
	pe, ok := err.(positioned)
	if !ok {
		return err.Error()
	}
	start := pe.PosStart()
	end := pe.PosEnd()

	line := sourceLine(start)
	width := end.Column - start.Column
	if width < 1 {
		width = 1
	}
	indent := start.Column - 1
	if indent < 0 {
		indent = 0
	}
	carets := strings.Repeat(" ", indent) + strings.Repeat("^", width)

	return fmt.Sprintf("%s: %s\nFile %s, line %d\n\n%s\n%s",
		pe.ErrorName(), pe.Details(), start.FileName, start.Line, line, carets)
}

// sourceLine extracts the full text of the line p points into. An
// unterminated string can leave PosEnd on a different line than
// PosStart; per SPEC_FULL.md §9 only the failure token's own starting
// line is ever shown, never a multi-line span.
func sourceLine(p position.Position) string {
	lines := strings.Split(p.FileText, "\n")
	idx := p.Line - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	return lines[idx]
}
