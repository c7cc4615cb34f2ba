/*
File    : eplusplus/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package repl implements the Read-Eval-Print Loop for the E++ interpreter.
The REPL provides an interactive environment where users can enter E++
statements line by line and see each one's result immediately.

The REPL uses the readline library for enhanced line editing capabilities
and integrates with the lexer, parser, and eval packages to execute user
input against a SymbolTable that persists across the whole session.
*/
package repl

import (
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/eplusplus-lang/eplusplus/eval"
	"github.com/eplusplus-lang/eplusplus/lexer"
	"github.com/eplusplus-lang/eplusplus/nativefn"
	"github.com/eplusplus-lang/eplusplus/parser"
	"github.com/eplusplus-lang/eplusplus/scope"
)

// Color definitions for REPL output: blue for decoration, yellow for
// results, red for errors, green for the banner, cyan for informational
// text.
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is a Read-Eval-Print Loop session bound to one persistent
// Interpreter and SymbolTable: variables and function definitions made
// in one line remain visible to every later line.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl builds a Repl with the given startup banner and chrome.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner, version line, and usage hints.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type E++ statements and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit.")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the main read-eval-print loop against reader/writer. A
// single Interpreter and global SymbolTable are created once and reused
// across every line, giving the session persistent state.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		redColor.Fprintf(writer, "[READLINE ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	ctx := nativefn.NewContext(writer, reader)
	ctx.Clear = clearScreen
	ctx.Shell = runShellCommand
	ip := eval.NewInterpreter(".", ctx)
	table := ip.NewGlobalTable()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)

		r.executeLine(writer, ip, table, line)
	}
}

// executeLine lexes, parses, and evaluates one line of input against
// table, printing the resulting value or a formatted error. Unlike file
// execution, the REPL never exits on error — it prints the diagnostic
// and returns to the prompt.
func (r *Repl) executeLine(writer io.Writer, ip *eval.Interpreter, table *scope.SymbolTable, line string) {
	tokens, lexErr := lexer.NewLexer("<stdin>", line).MakeTokens()
	if lexErr != nil {
		redColor.Fprintf(writer, "%s\n", eval.FormatError(lexErr))
		return
	}

	tree, parseErr := parser.NewParser(tokens).Parse()
	if parseErr != nil {
		redColor.Fprintf(writer, "%s\n", eval.FormatError(parseErr))
		return
	}

	res := ip.Visit(tree, table)
	if res.Signal == eval.SignalError {
		redColor.Fprintf(writer, "%s\n", eval.FormatError(res.Err))
		return
	}
	if res.Value != nil {
		yellowColor.Fprintf(writer, "%s\n", res.Value.Display())
	}
}

// clearScreen is the REPL's CLEAR hook: it shells out to the platform's
// native clear command against the real terminal.
func clearScreen() error {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

// runShellCommand is the REPL's SYSTEM hook: it runs the given command
// through the platform's shell against the real terminal.
func runShellCommand(command string) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", command)
	} else {
		cmd = exec.Command("sh", "-c", command)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}
