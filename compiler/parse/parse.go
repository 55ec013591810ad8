package parse

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/eba216/MathLang/compiler/ast"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

type (
	State struct {
		b    []byte
		name string

		Grammar Parser
	}

	Parser interface {
		Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error)
	}

	// SyntaxError reports text the grammar could not consume.
	SyntaxError struct {
		Name string
		Pos  int
		Line int
		Col  int
		Rest string

		Err error
	}

	TypeExpectedError struct {
		Want string
		Got  ast.Node
	}
)

func ParseFile(ctx context.Context, name string) (ast.Program, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return ast.Program{}, errors.Wrap(err, "read file")
	}

	s := New()
	s.AddFile(name, data)

	return s.Parse(ctx)
}

// Parse parses the whole text. Text the grammar can't consume
// is reported as SyntaxError.
func Parse(ctx context.Context, text []byte) (ast.Program, error) {
	s := New()
	s.AddFile("", text)

	return s.Parse(ctx)
}

// ParsePrefix parses as many statements as possible
// and returns them with the unconsumed rest of the text.
// It never fails: garbage is left in rest for the caller to reject.
func ParsePrefix(ctx context.Context, text []byte) (p ast.Program, rest []byte) {
	x, i, _ := Program{}.Parse(ctx, text, 0)

	return x.(ast.Program), text[i:]
}

func New() *State {
	return &State{
		Grammar: Program{},
	}
}

func (s *State) AddFile(name string, text []byte) {
	s.name = name
	s.b = text
}

func (s *State) Parse(ctx context.Context) (p ast.Program, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse", "name", s.name, "size", len(s.b))
	defer tr.Finish("err", &err)

	x, i, err := s.Grammar.Parse(ctx, s.b, 0)
	if err != nil {
		return ast.Program{}, errors.Wrap(err, "parse as grammar")
	}

	p, ok := x.(ast.Program)
	if !ok {
		return ast.Program{}, NewTypeExpectedError("program", x)
	}

	if tr.If("dump_ast") {
		for j, st := range p.Stmts {
			tr.Printw("statement", "i", j, "typ", tlog.NextAsType, st, "val", st)
		}
	}

	i = Blank.Skip(s.b, i)
	if i == len(s.b) {
		return p, nil
	}

	// rerun the failed statement to find out why it failed
	_, _, reason := Statement{}.Parse(ctx, s.b, i)

	line, col := s.Position(i)

	return p, SyntaxError{
		Name: s.name,
		Pos:  i,
		Line: line,
		Col:  col,
		Rest: string(bytes.TrimSpace(s.b[i:])),
		Err:  reason,
	}
}

// Position converts byte offset into 1-based line and column.
func (s *State) Position(pos int) (line, col int) {
	return Position(s.b, pos)
}

func Position(b []byte, pos int) (line, col int) {
	if pos > len(b) {
		pos = len(b)
	}

	line = 1 + bytes.Count(b[:pos], []byte{'\n'})
	col = pos - bytes.LastIndexByte(b[:pos], '\n')

	return line, col
}

func NewTypeExpectedError(want string, got ast.Node) TypeExpectedError {
	return TypeExpectedError{
		Want: want,
		Got:  got,
	}
}

func (e TypeExpectedError) Error() string {
	return fmt.Sprintf("%s expected, got %T", e.Want, e.Got)
}

func (e SyntaxError) Error() string {
	rest := e.Rest
	if len(rest) > 40 {
		rest = rest[:40] + "..."
	}

	pos := fmt.Sprintf("%d:%d", e.Line, e.Col)
	if e.Name != "" {
		pos = e.Name + ":" + pos
	}

	if e.Err == nil {
		return fmt.Sprintf("%s: unparsed input: `%s`", pos, rest)
	}

	return fmt.Sprintf("%s: unparsed input: `%s`: %v", pos, rest, e.Err)
}

func (e SyntaxError) Unwrap() error { return e.Err }
