// Command mini is the CLI driver for the mini interpreter: file mode,
// interactive REPL mode, and a REPL-over-TCP server mode kept from the
// teacher's main.go (transport-agnostic; the REPL itself doesn't care
// whether its reader/writer is a terminal or a socket).
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/akashmaji946/mini/builtin"
	"github.com/akashmaji946/mini/config"
	"github.com/akashmaji946/mini/evaluator"
	"github.com/akashmaji946/mini/lexer"
	"github.com/akashmaji946/mini/object"
	"github.com/akashmaji946/mini/parser"
	"github.com/akashmaji946/mini/repl"
	"github.com/fatih/color"
)

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "server" {
		if len(os.Args) < 3 {
			redColor.Fprintln(os.Stderr, "[USAGE ERROR] server mode requires a port: mini server <port>")
			os.Exit(1)
		}
		runServer(os.Args[2])
		return
	}

	var (
		help    = flag.Bool("help", false, "show usage and exit")
		replF   = flag.Bool("repl", false, "start the interactive REPL")
		debug   = flag.Bool("debug", false, "enable debug tracing (also MINI_DEBUG=1)")
	)
	flag.BoolVar(help, "h", false, "shorthand for --help")
	flag.BoolVar(replF, "r", false, "shorthand for --repl")
	flag.BoolVar(debug, "d", false, "shorthand for --debug")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	opts := config.New(config.WithDebug(*debug || os.Getenv("MINI_DEBUG") == "1"))

	if *replF || flag.NArg() == 0 {
		repl.New(opts).Start(os.Stdin, os.Stdout)
		return
	}

	runFile(flag.Arg(0), opts)
}

func printHelp() {
	cyanColor.Println("mini - a small dynamically-typed expression language")
	cyanColor.Println()
	cyanColor.Println("USAGE:")
	fmt.Println("  mini [path]              evaluate a file")
	fmt.Println("  mini -r, --repl          start the interactive REPL")
	fmt.Println("  mini -d, --debug [path]  enable debug tracing")
	fmt.Println("  mini server <port>       start a REPL server over TCP")
	fmt.Println("  mini -h, --help          show this message")
}

func runFile(path string, opts config.Options) {
	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", path, err)
		os.Exit(1)
	}
	if err := run(string(src), opts, os.Stdout); err != nil {
		redColor.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run lexes, parses, and evaluates source against a fresh environment,
// printing debug trace lines to w when opts.Debug is set.
func run(src string, opts config.Options, w *os.File) error {
	lx := lexer.NewFromString(src)
	p := parser.New(lx)
	prog, err := p.Parse()
	if err != nil {
		return err
	}
	if opts.Debug {
		fmt.Fprintf(w, "[debug] parsed %d top-level expression(s)\n", len(prog.Expressions))
	}

	env := object.NewEnvironment("<root>", nil)
	builtin.NewDemoRegistry().Bind(env)

	result, err := evaluator.EvalProgram(prog, env)
	if err != nil {
		return err
	}
	if result.Kind != object.KindUnit {
		fmt.Fprintln(w, result.String())
	}
	return nil
}

func runServer(port string) {
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to listen on port %s: %v\n", port, err)
		os.Exit(1)
	}
	defer ln.Close()
	cyanColor.Printf("mini REPL server listening on :%s\n", port)

	opts := config.Default()
	for {
		conn, err := ln.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] accept failed: %v\n", err)
			continue
		}
		go func(c net.Conn) {
			defer c.Close()
			repl.New(opts).Start(c, c)
		}(conn)
	}
}
