package script

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// fileOptions enables the dialect features scripts commonly need at top
// level.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Interpreter runs Starlark scripts with the literal module predeclared.
type Interpreter struct {
	out    io.Writer
	logger *slog.Logger
}

// New creates an interpreter whose print() writes to out. A nil logger
// discards log output.
func New(out io.Writer, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Interpreter{out: out, logger: logger}
}

func (in *Interpreter) thread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(in.out, msg)
		},
	}
}

// ExecFile runs a script and returns its global bindings. src may be nil,
// in which case filename is read; otherwise it is a string, []byte or
// io.Reader. Evaluation errors carry a Starlark backtrace.
func (in *Interpreter) ExecFile(filename string, src any) (starlark.StringDict, error) {
	thread := in.thread(filename)
	globals, err := starlark.ExecFileOptions(fileOptions, thread, filename, src, Predeclared())
	if err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok {
			in.logger.Debug("script failed", "file", filename, "backtrace", evalErr.Backtrace())
		}
		return nil, fmt.Errorf("exec %s: %w", filename, err)
	}
	in.logger.Debug("script finished", "file", filename, "globals", len(globals))
	return globals, nil
}

// REPL starts an interactive read-eval-print loop on the terminal.
// It returns when the input is exhausted.
func (in *Interpreter) REPL() {
	in.logger.Debug("starting repl")
	repl.REPLOptions(fileOptions, in.thread("repl"), Predeclared())
}
