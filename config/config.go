// Package config collects the small set of values that vary across the
// mini binary's run modes (REPL banner/prompt, debug tracing) into a single
// read-only record, threaded explicitly through constructors rather than
// held in package-level variables the way the teacher's main package does
// it (MODE, VERSION, PROMPT, BANNER as top-level vars in main/main.go).
package config

import "os"

// Options is passed by value; nothing in it is mutated after construction.
type Options struct {
	Debug   bool
	Prompt  string
	Banner  string
	Version string
	Author  string
	License string
	Line    string
}

const defaultBanner = `
   __  __    _   _    ___
  |  \/  |  | | | |  |_ _|  _ __     ___
  | |\/| |  | | | |   | |  | '_ \   / __|
  | |  | |  | |_| |   | |  | | | | | (__
  |_|  |_|   \___/   |___| |_| |_|  \___|
`

// Default returns the baseline configuration; MINI_DEBUG=1 turns debug
// tracing on without a flag.
func Default() Options {
	return Options{
		Debug:   os.Getenv("MINI_DEBUG") == "1",
		Prompt:  "mini >>> ",
		Banner:  defaultBanner,
		Version: "v0.1.0",
		Author:  "mini contributors",
		License: "MIT",
		Line:    "----------------------------------------------------------------",
	}
}

// Option mutates an Options record; used by cmd/mini to layer flags over
// the default.
type Option func(*Options)

// WithDebug overrides the debug flag.
func WithDebug(debug bool) Option {
	return func(o *Options) { o.Debug = debug }
}

// WithPrompt overrides the REPL prompt string.
func WithPrompt(prompt string) Option {
	return func(o *Options) { o.Prompt = prompt }
}

// New builds an Options record starting from Default and applying opts in
// order.
func New(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
