// Package repl implements mini's interactive Read-Eval-Print Loop, adapted
// from the teacher's repl.Repl: readline-backed line editing and history,
// colored result/error output, panic recovery per input line so one bad
// expression never kills the session.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/akashmaji946/mini/builtin"
	"github.com/akashmaji946/mini/config"
	"github.com/akashmaji946/mini/evaluator"
	"github.com/akashmaji946/mini/lexer"
	"github.com/akashmaji946/mini/object"
	"github.com/akashmaji946/mini/parser"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is a configured interactive session. Opts carries the banner,
// version/author/license strings, and prompt.
type Repl struct {
	Opts config.Options
}

// New creates a Repl configured by opts.
func New(opts config.Options) *Repl {
	return &Repl{Opts: opts}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Opts.Line)
	greenColor.Fprintf(w, "%s\n", r.Opts.Banner)
	blueColor.Fprintf(w, "%s\n", r.Opts.Line)
	yellowColor.Fprintln(w, "Version: "+r.Opts.Version+" | Author: "+r.Opts.Author+" | License: "+r.Opts.License)
	blueColor.Fprintf(w, "%s\n", r.Opts.Line)
	cyanColor.Fprintf(w, "%s\n", "Welcome to mini!")
	cyanColor.Fprintf(w, "%s\n", "Type an expression and press enter.")
	cyanColor.Fprintf(w, "%s\n", "Commands: :exit  :scope  :lastcomment")
	cyanColor.Fprintf(w, "%s\n", "Use up/down arrows to navigate command history.")
	blueColor.Fprintf(w, "%s\n", r.Opts.Line)
}

// Start runs the REPL loop against reader/writer until the user exits or
// EOF is reached. A single environment and lexer-level comment memory
// persist across the whole session so definitions and :lastcomment both
// survive between lines.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.printBanner(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt: r.Opts.Prompt,
		Stdin:  reader,
		Stdout: writer,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	env := object.NewEnvironment("<repl>", nil)
	builtin.NewDemoRegistry().Bind(env)
	var lastLexer *lexer.Lexer

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Goodbye!\n"))
			return
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ":exit" {
			writer.Write([]byte("Goodbye!\n"))
			return
		}
		if line == ":scope" {
			printScope(writer, env)
			continue
		}
		if line == ":lastcomment" {
			printLastComment(writer, lastLexer)
			continue
		}

		rl.SaveHistory(line)
		if lx := r.evalLine(writer, line, env); lx != nil && lx.PrevComment() != nil {
			lastLexer = lx
		}
	}
}

// evalLine parses and evaluates a single line with panic recovery, mirroring
// the teacher's executeWithRecovery but against this language's
// lexer/parser/evaluator. Returns the lexer used, so :lastcomment can
// inspect comments swallowed while scanning it.
func (r *Repl) evalLine(writer io.Writer, line string, env *object.Environment) *lexer.Lexer {
	lx := lexer.NewFromString(line)
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", rec)
		}
	}()

	p := parser.New(lx)
	prog, err := p.Parse()
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return lx
	}

	result, err := evaluator.EvalProgram(prog, env)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return lx
	}
	yellowColor.Fprintf(writer, "%s\n", result.String())
	return lx
}

func printScope(w io.Writer, env *object.Environment) {
	names := env.Names()
	fmt.Fprintf(w, "<environment %s> %d binding(s): %s\n", env.Label(), len(names), strings.Join(names, ", "))
}

func printLastComment(w io.Writer, lx *lexer.Lexer) {
	if lx == nil {
		cyanColor.Fprintln(w, "(no comment seen yet)")
		return
	}
	c := lx.PrevComment()
	if c == nil {
		cyanColor.Fprintln(w, "(no comment seen yet)")
		return
	}
	cyanColor.Fprintf(w, "%s\n", c.Literal)
}
