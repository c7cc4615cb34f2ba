/*
File    : eplusplus/cmd/eplusplus/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Command eplusplus is the entry point for the E++ interpreter. It provides
two modes of operation:
 1. REPL mode (default, no file argument): an interactive Read-Eval-Print
    Loop.
 2. File mode (one file argument): execute an E++ source file once.

The interpreter uses a lexer-parser-evaluator pipeline to process E++
source.
*/
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eplusplus-lang/eplusplus/eval"
	"github.com/eplusplus-lang/eplusplus/lexer"
	"github.com/eplusplus-lang/eplusplus/nativefn"
	"github.com/eplusplus-lang/eplusplus/parser"
	"github.com/eplusplus-lang/eplusplus/repl"
)

// VERSION is the current interpreter version.
var VERSION = "v1.0.0"

// AUTHOR is the contact information shown in the REPL banner.
var AUTHOR = "akashmaji(@iisc.ac.in)"

// LICENSE is the software license shown in the REPL banner.
var LICENSE = "MIT"

// PROMPT is the REPL's command prompt.
var PROMPT = "E++ > "

// BANNER is the ASCII art logo shown when the REPL starts.
var BANNER = `
  ▄▄▄▄▄         ▄▄▄▄▄▄▄      ▄▄▄▄▄▄▄▄       ▄▄▄▄▄▄▄
 ██▀▀▀▀        ██▀▀▀▀▀██    ██▀▀▀▀▀▀██    ██▀▀▀▀▀▀
 ██▄▄▄▄   ▄▄   ██▄▄▄▄▄██ ▄▄ ██▄▄▄▄▄▄██ ▄▄ ██▄▄▄▄▄▄
 ██▀▀▀▀  ▀▀▀▀  ██▀▀▀▀▀▀  ▀▀ ██▀▀▀▀▀▀    ▀▀ ██▀▀▀▀▀▀
 ██▄▄▄▄▄        ██▄▄▄▄▄▄       ▀▀           ▀▀
   ▀▀▀▀▀          ▀▀▀▀▀▀
`

// LINE is a separator used for visual formatting in the REPL.
var LINE = "----------------------------------------------------------------"

var (
	redColor   = color.New(color.FgRed)
	greenColor = color.New(color.FgGreen)
)

var (
	showTokens bool
	showAST    bool
)

func main() {
	root := &cobra.Command{
		Use:   "eplusplus [file]",
		Short: "E++ — a small dynamically-typed scripting language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				startRepl()
				return nil
			}
			return runFile(args[0])
		},
	}
	root.Flags().BoolVar(&showTokens, "tokens", false, "print the token stream before executing")
	root.Flags().BoolVar(&showAST, "ast", false, "print the parsed AST before executing")
	root.Version = VERSION

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func startRepl() {
	repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT)
	repler.Start(os.Stdin, os.Stdout)
}

// runFile reads, lexes, parses, and evaluates path once, printing the
// value of the last top-level statement; the values of earlier
// statements are not printed. Imports resolve against the file's own
// directory. It exits with code 1 if the file cannot be opened.
func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file '%s': %v\n", path, err)
		os.Exit(1)
	}
	source := string(src)

	tokens, lexErr := lexer.NewLexer(path, source).MakeTokens()
	if lexErr != nil {
		fmt.Fprintln(os.Stderr, eval.FormatError(lexErr))
		os.Exit(1)
	}
	if showTokens {
		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
	}

	tree, parseErr := parser.NewParser(tokens).Parse()
	if parseErr != nil {
		fmt.Fprintln(os.Stderr, eval.FormatError(parseErr))
		os.Exit(1)
	}
	if showAST {
		pv := &PrintingVisitor{}
		pv.Visit(tree)
		fmt.Print(pv.String())
	}

	ctx := nativefn.NewContext(os.Stdout, os.Stdin)
	ctx.Clear = clearScreen
	ctx.Shell = runShellCommand

	ip := eval.NewInterpreter(filepath.Dir(path), ctx)
	table := ip.NewGlobalTable()

	res := ip.Visit(tree, table)
	if res.Signal == eval.SignalError {
		fmt.Fprintln(os.Stderr, eval.FormatError(res.Err))
		os.Exit(1)
	}
	if res.Value != nil {
		greenColor.Println(res.Value.Display())
	}
	return nil
}

// clearScreen is the CLI's CLEAR hook: it shells out to the platform's
// native clear command.
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

// runShellCommand is the CLI's SYSTEM hook: it runs the given command
// through the platform's shell.
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
