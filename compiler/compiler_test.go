package compiler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"

	"github.com/eba216/MathLang/compiler/analyze"
	"github.com/eba216/MathLang/compiler/back"
	"github.com/eba216/MathLang/compiler/executor"
	"github.com/eba216/MathLang/compiler/parse"
	"github.com/eba216/MathLang/compiler/stdlib"
)

func TestInterpret(t *testing.T) {
	var out bytes.Buffer

	src := `
var r
in r
var area = r ^ 2 * pi
out area
out area / 0
`

	in := executor.NewLineInput(strings.NewReader("2\n"), nil)

	err := Interpret(context.Background(), "circle.math", []byte(src), in, executor.NewTaggedWriter(&out))
	require.NoError(t, err)

	assert.Equal(t, "<output>: 12.566370614359172\n<output>: +Inf\n", out.String())
}

func TestInterpretErrors(t *testing.T) {
	ctx := context.Background()

	in := executor.NewLineInput(strings.NewReader(""), nil)
	out := executor.NewTaggedWriter(&bytes.Buffer{})

	err := Interpret(ctx, "a.math", []byte("var a\nout 1 +"), in, out)

	var serr parse.SyntaxError
	require.True(t, errors.As(err, &serr), "%v", err)
	assert.Equal(t, 2, serr.Line)

	err = Interpret(ctx, "b.math", []byte("var a\n  out b"), in, out)

	var loc SourceError
	require.True(t, errors.As(err, &loc), "%v", err)
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, 7, loc.Col)
	assert.Contains(t, err.Error(), "b.math:2:7: undeclared identifier: b")

	var und analyze.UndeclaredIdentifierError
	assert.True(t, errors.As(err, &und))

	err = Interpret(ctx, "", []byte("var a var a"), in, out)

	var dup analyze.DuplicateDeclarationError
	assert.True(t, errors.As(err, &dup), "%v", err)
	assert.Contains(t, err.Error(), "1:11: duplicate declaration: a")
}

func TestLoadKeepsTable(t *testing.T) {
	ctx := context.Background()
	tab := stdlib.NewTable()

	_, err := Load(ctx, tab, "", []byte("var a = 1"))
	require.NoError(t, err)

	prog, err := Load(ctx, tab, "", []byte("var b = a + 1 out b"))
	require.NoError(t, err)
	assert.Len(t, prog, 2)

	_, err = Load(ctx, tab, "", []byte("var a"))
	assert.Error(t, err)
}

func TestCompile(t *testing.T) {
	ctx := context.Background()

	code, err := Compile(ctx, "x.math", []byte("var x in x out x * 2"), back.Go)
	require.NoError(t, err)
	assert.Contains(t, string(code), "package main")
	assert.Contains(t, string(code), "x = input()")

	code, err = Compile(ctx, "x.math", []byte("var x in x out x * 2"), back.Rust)
	require.NoError(t, err)
	assert.Contains(t, string(code), "fn main()")

	_, err = Compile(ctx, "x.math", []byte("out y"), back.Go)
	assert.Error(t, err)
}

func TestCompileFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	src := filepath.Join(dir, "prog.math")
	require.NoError(t, os.WriteFile(src, []byte("out 2 + 3 * 4 ^ 2\n"), 0o644))

	name, err := CompileFile(ctx, src, "", back.Go)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "prog.go"), name)

	code, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(code), "output(2.0 + math.Pow(num(3.0) * 4.0, 2.0))")

	dst := filepath.Join(dir, "other.rs")

	name, err = CompileFile(ctx, src, dst, back.Rust)
	require.NoError(t, err)
	assert.Equal(t, dst, name)
	assert.FileExists(t, dst)

	_, err = CompileFile(ctx, filepath.Join(dir, "missing.math"), "", back.Go)
	assert.Error(t, err)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "a/b.go", OutputName("a/b.math", back.Go))
	assert.Equal(t, "b.rs", OutputName("b.math", back.Rust))
	assert.Equal(t, "b.txt.go", OutputName("b.txt", back.Go))
}
