// Package repl is an interactive shell over one symbol table.
// Declarations made by one line are visible to the next ones.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kr/pretty"
	"github.com/olekukonko/tablewriter"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/eba216/MathLang/compiler"
	"github.com/eba216/MathLang/compiler/executor"
	"github.com/eba216/MathLang/compiler/stdlib"
	"github.com/eba216/MathLang/compiler/symbols"
)

type (
	// LineReader returns one line per call. io.EOF ends the session.
	LineReader interface {
		ReadLine(prompt string) (string, error)
	}

	Session struct {
		tab *symbols.Table

		in  executor.Input
		out executor.Output

		// messages and errors
		w io.Writer

		Debug bool
	}
)

const Banner = "* Math Interactive Interpreter *"

var Commands = []string{"quit", "clear", "variables", "debug", "help"}

// New creates a session with standard constants declared.
// in and out serve `in` and `out` statements, w gets everything else.
func New(in executor.Input, out executor.Output, w io.Writer) *Session {
	return &Session{
		tab: stdlib.NewTable(),
		in:  in,
		out: out,
		w:   w,
	}
}

// Run reads and executes lines until quit command or end of input.
// Errors of a line are printed and the loop goes on.
func (s *Session) Run(ctx context.Context, r LineReader, prompt string) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "repl")
	defer tr.Finish("err", &err)

	fmt.Fprintf(s.w, "%s\n", Banner)

	for {
		line, err := r.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read line")
		}

		quit, err := s.Exec(ctx, line)
		if err != nil {
			fmt.Fprintf(s.w, "Error: %v\n", err)
			continue
		}

		if quit {
			return nil
		}
	}
}

// Exec runs one shell command or program line.
func (s *Session) Exec(ctx context.Context, line string) (quit bool, err error) {
	switch cmd := strings.TrimSpace(line); cmd {
	case "":
	case "quit", "exit":
		return true, nil
	case "clear":
		s.Clear()

		fmt.Fprintf(s.w, "Cleared variables.\n")
	case "variables":
		s.PrintVariables(s.w)
	case "debug":
		s.Debug = !s.Debug

		fmt.Fprintf(s.w, "Debug: %v\n", s.Debug)
	case "help":
		fmt.Fprintf(s.w, "Commands: %s. Anything else is a program.\n", strings.Join(Commands, ", "))
	default:
		return false, s.run(ctx, cmd)
	}

	return false, nil
}

func (s *Session) run(ctx context.Context, line string) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "repl_line", "line", line)
	defer tr.Finish("err", &err)

	prog, err := compiler.Load(ctx, s.tab, "", []byte(line))
	if err != nil {
		return err
	}

	if s.Debug {
		fmt.Fprintf(s.w, "Analyzed program: %# v\n", pretty.Formatter(prog))
	}

	return executor.New(s.tab, s.in, s.out).Execute(ctx, prog)
}

// Clear forgets all the variables and declares standard constants again.
func (s *Session) Clear() {
	s.tab = stdlib.NewTable()
}

// Names lists declared variables, used for completion.
func (s *Session) Names() []string {
	r := make([]string, 0, s.tab.Len())

	s.tab.Each(func(h symbols.Handle, name string, value float64) {
		r = append(r, name)
	})

	return r
}

func (s *Session) PrintVariables(w io.Writer) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Name", "Value"})
	t.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, e := range s.tab.Entries() {
		t.Append([]string{e.Name, executor.FormatValue(e.Value)})
	}

	t.Render()
}
