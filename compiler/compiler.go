package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/eba216/MathLang/compiler/analyze"
	"github.com/eba216/MathLang/compiler/ast"
	"github.com/eba216/MathLang/compiler/back"
	"github.com/eba216/MathLang/compiler/executor"
	"github.com/eba216/MathLang/compiler/ir"
	"github.com/eba216/MathLang/compiler/parse"
	"github.com/eba216/MathLang/compiler/stdlib"
	"github.com/eba216/MathLang/compiler/symbols"
)

type (
	// SourceError locates a semantic error in the source text.
	SourceError struct {
		Name string
		Line int
		Col  int
		Err  error
	}
)

const SourceExt = ".math"

// Parse parses text named name. name is used in error messages only.
func Parse(ctx context.Context, name string, text []byte) (ast.Program, error) {
	s := parse.New()
	s.AddFile(name, text)

	return s.Parse(ctx)
}

// Load parses and analyzes text against tab.
// On analysis error tab keeps declarations made by the preceding statements.
func Load(ctx context.Context, tab *symbols.Table, name string, text []byte) (ir.Program, error) {
	p, err := Parse(ctx, name, text)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	return Analyze(ctx, tab, name, text, p)
}

// Analyze resolves p against tab. text is p's source, used to locate errors.
func Analyze(ctx context.Context, tab *symbols.Table, name string, text []byte, p ast.Program) (ir.Program, error) {
	prog, err := analyze.Analyze(ctx, tab, p)
	if err != nil {
		return nil, errors.Wrap(locate(name, text, err), "analyze")
	}

	return prog, nil
}

// Interpret runs text once on a fresh table with standard constants.
func Interpret(ctx context.Context, name string, text []byte, in executor.Input, out executor.Output) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "interpret", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	tab := stdlib.NewTable()

	prog, err := Load(ctx, tab, name, text)
	if err != nil {
		return err
	}

	return executor.New(tab, in, out).Execute(ctx, prog)
}

// Compile translates text into target source.
func Compile(ctx context.Context, name string, text []byte, target back.Target) (code []byte, err error) {
	tab := stdlib.NewTable()

	prog, err := Load(ctx, tab, name, text)
	if err != nil {
		return nil, err
	}

	code, err = back.New().Compile(ctx, target, nil, tab, prog)
	if err != nil {
		return nil, errors.Wrap(err, "codegen")
	}

	return code, nil
}

// CompileFile compiles file name and writes the result to out.
// Empty out means the source file name with the target extension.
func CompileFile(ctx context.Context, name, out string, target back.Target) (_ string, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return "", errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	code, err := Compile(ctx, name, text, target)
	if err != nil {
		return "", err
	}

	if out == "" {
		out = OutputName(name, target)
	}

	err = os.WriteFile(out, code, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "write file")
	}

	tlog.SpanFromContext(ctx).Printw("wrote file", "size", len(code), "name", out, "target", target)

	return out, nil
}

// OutputName replaces .math extension of name with the target one.
func OutputName(name string, target back.Target) string {
	ext := filepath.Ext(name)
	if ext == SourceExt {
		name = strings.TrimSuffix(name, ext)
	}

	return name + target.Ext()
}

func locate(name string, text []byte, err error) error {
	var dup analyze.DuplicateDeclarationError
	var und analyze.UndeclaredIdentifierError

	var pos int

	switch {
	case errors.As(err, &dup):
		pos, err = dup.Pos, dup
	case errors.As(err, &und):
		pos, err = und.Pos, und
	default:
		return err
	}

	line, col := parse.Position(text, pos)

	return SourceError{Name: name, Line: line, Col: col, Err: err}
}

func (e SourceError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%d:%d: %v", e.Line, e.Col, e.Err)
	}

	return fmt.Sprintf("%s:%d:%d: %v", e.Name, e.Line, e.Col, e.Err)
}

func (e SourceError) Unwrap() error { return e.Err }
