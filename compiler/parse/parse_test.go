package parse

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eba216/MathLang/compiler/ast"
)

func TestParseStatements(t *testing.T) {
	ctx := context.Background()

	p, err := Parse(ctx, []byte(`
var x
var y = 1
in x
x = y + 2
out x * y
`))
	require.NoError(t, err)
	require.Len(t, p.Stmts, 5)

	assert.IsType(t, ast.Decl{}, p.Stmts[0])
	assert.IsType(t, ast.DeclInit{}, p.Stmts[1])
	assert.IsType(t, ast.Input{}, p.Stmts[2])
	assert.IsType(t, ast.Assign{}, p.Stmts[3])
	assert.IsType(t, ast.Output{}, p.Stmts[4])

	assert.Equal(t, "x", p.Stmts[0].(ast.Decl).Name.Name)
	assert.Equal(t, "y", p.Stmts[1].(ast.DeclInit).Name.Name)
	assert.Equal(t, "x", p.Stmts[3].(ast.Assign).Name.Name)
}

func TestParseValid(t *testing.T) {
	for _, src := range []string{
		"",
		"   \n\t",
		"# only comment",
		"var a var b = a in b out a + b",
		"out 1+2*3^4 mod 5-6/7",
		"out sin(1) + cos(2) * tan(3) - asin(0.5) + acos(0.5) + atan(1)",
		"out sinh(1) + cosh(1) + tanh(1) + asinh(1) + acosh(2) + atanh(0.5)",
		"out exp(1) + exp2(3) + ln(2) + log(100) + log10(10) + lg(8) + log2(4)",
		"out abs(-1) + ceil(1.2) + floor(1.8) + signum(-3) + sgn(2) + sqrt(9)",
		"out .5 + 5. + 1e3 + 2.5E-3 + 1e+2",
		"out ((1))",
		"out --1",
		"out - 1",
		"var Mixed = 1 out Mixed",
		"var modulo = 1 out modulo mod 2",
		"var input = 1 var output = 2 var variable = 3 out input + output + variable",
		"out 2\n# comment\nout 3 # trailing",
	} {
		_, rest := ParsePrefix(context.Background(), []byte(src))
		assert.Equal(t, len(rest), Blank.Skip(rest, 0), "src: %q, rest: %q", src, rest)

		_, err := Parse(context.Background(), []byte(src))
		assert.NoError(t, err, "src: %q", src)
	}
}

func TestParsePrecedence(t *testing.T) {
	p, err := Parse(context.Background(), []byte("out 2 + 3 * 4 ^ 2"))
	require.NoError(t, err)

	e := p.Stmts[0].(ast.Output).Value

	require.Len(t, e.Rest, 1)
	assert.Equal(t, ast.Add, e.Rest[0].Op)
	assert.Empty(t, e.First.Rest)
	assert.Equal(t, 2.0, e.First.First.(ast.Literal).Value)

	// multiplicative operators fold left: (3 * 4) ^ 2
	tm := e.Rest[0].Term
	require.Len(t, tm.Rest, 2)
	assert.Equal(t, ast.Mul, tm.Rest[0].Op)
	assert.Equal(t, ast.Pow, tm.Rest[1].Op)
	assert.Equal(t, 3.0, tm.First.(ast.Literal).Value)
}

func TestParseFactors(t *testing.T) {
	p, err := Parse(context.Background(), []byte("out log(x) out -y out (z) out 1e400"))
	require.NoError(t, err)
	require.Len(t, p.Stmts, 4)

	factor := func(i int) ast.Factor {
		return p.Stmts[i].(ast.Output).Value.First.First
	}

	c := factor(0).(ast.Call)
	assert.Equal(t, ast.Log10, c.Func)
	assert.Equal(t, "x", c.Arg.First.First.(ast.Ident).Name)

	n := factor(1).(ast.Neg)
	assert.Equal(t, "y", n.Factor.(ast.Ident).Name)

	par := factor(2).(ast.Paren)
	assert.Equal(t, "z", par.Expr.First.First.(ast.Ident).Name)

	assert.True(t, math.IsInf(factor(3).(ast.Literal).Value, 1))
}

func TestParsePositions(t *testing.T) {
	p, err := Parse(context.Background(), []byte("var x\n  out x"))
	require.NoError(t, err)

	o := p.Stmts[1].(ast.Output)
	assert.Equal(t, 8, o.Pos)
	assert.Equal(t, 13, o.End)

	id := o.Value.First.First.(ast.Ident)
	assert.Equal(t, 12, id.Pos)
	assert.Equal(t, 13, id.End)
}

func TestParseModBoundary(t *testing.T) {
	// `mod` must be a whole word: `5 modx` is not `5 mod x`
	p, rest := ParsePrefix(context.Background(), []byte("var x = 1 out 5 modx"))

	require.Len(t, p.Stmts, 2)
	assert.Empty(t, p.Stmts[1].(ast.Output).Value.Rest)
	assert.Equal(t, " modx", string(rest))

	_, err := Parse(context.Background(), []byte("var x = 1 out 5 modx"))
	assert.Error(t, err)

	p, err = Parse(context.Background(), []byte("var x = 1 out 5 mod x"))
	require.NoError(t, err)
	assert.Equal(t, ast.Mod, p.Stmts[1].(ast.Output).Value.Rest[0].Op)
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		Src  string
		Line int
		Col  int
		Rest string
	}{
		{Src: "out 1 +", Line: 1, Col: 1, Rest: "out 1 +"},
		{Src: "var x\nvar = 3", Line: 2, Col: 1, Rest: "var = 3"},
		{Src: "out 1\n  out (2", Line: 2, Col: 3, Rest: "out (2"},
		{Src: "var sin = 1", Line: 1, Col: 1, Rest: "var sin = 1"},
		{Src: "var mod", Line: 1, Col: 1, Rest: "var mod"},
		{Src: "out 1 ? 2", Line: 1, Col: 7, Rest: "? 2"},
		{Src: "x == 1", Line: 1, Col: 1, Rest: "x == 1"},
		{Src: "out foo(1)", Line: 1, Col: 8, Rest: "(1)"},
	} {
		s := New()
		s.AddFile("test.math", []byte(tc.Src))

		_, err := s.Parse(context.Background())

		var serr SyntaxError
		if !assert.ErrorAs(t, err, &serr, "src: %q", tc.Src) {
			continue
		}

		assert.Equal(t, tc.Line, serr.Line, "src: %q", tc.Src)
		assert.Equal(t, tc.Col, serr.Col, "src: %q", tc.Src)
		assert.Equal(t, tc.Rest, serr.Rest, "src: %q", tc.Src)
		assert.Contains(t, serr.Error(), "test.math:")
	}
}

func TestPosition(t *testing.T) {
	b := []byte("ab\ncd\n\nef")

	for _, tc := range []struct {
		Pos, Line, Col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{7, 4, 1},
		{100, 4, 3},
	} {
		line, col := Position(b, tc.Pos)
		assert.Equal(t, tc.Line, line, "pos %d", tc.Pos)
		assert.Equal(t, tc.Col, col, "pos %d", tc.Pos)
	}
}

func TestParseFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "f.math")
	require.NoError(t, os.WriteFile(name, []byte("var x = 1\nout x +\n"), 0o644))

	_, err := ParseFile(context.Background(), name)

	var serr SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, name, serr.Name)
	assert.Equal(t, 2, serr.Line)

	_, err = ParseFile(context.Background(), name+".missing")
	assert.Error(t, err)
}
