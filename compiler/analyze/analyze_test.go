package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"

	"github.com/eba216/MathLang/compiler/ast"
	"github.com/eba216/MathLang/compiler/ir"
	"github.com/eba216/MathLang/compiler/parse"
	"github.com/eba216/MathLang/compiler/stdlib"
	"github.com/eba216/MathLang/compiler/symbols"
)

func analyzeSource(t *testing.T, tab *symbols.Table, src string) (ir.Program, error) {
	t.Helper()

	ctx := context.Background()

	p, err := parse.Parse(ctx, []byte(src))
	require.NoError(t, err)

	return Analyze(ctx, tab, p)
}

func TestAnalyze(t *testing.T) {
	tab := symbols.New()

	prog, err := analyzeSource(t, tab, "var a var b = a + 1 in a b = sin(a) out -b mod 2")
	require.NoError(t, err)
	require.Len(t, prog, 5)

	a, err := tab.Find("a")
	require.NoError(t, err)

	b, err := tab.Find("b")
	require.NoError(t, err)

	assert.Equal(t, ir.Decl{Var: a}, prog[0])

	di := prog[1].(ir.DeclInit)
	assert.Equal(t, b, di.Var)
	assert.Equal(t, ir.Var(a), di.Value.First.First)
	assert.Equal(t, ir.Literal(1), di.Value.Rest[0].Term.First)

	assert.Equal(t, ir.Input{Var: a}, prog[2])

	as := prog[3].(ir.Assign)
	assert.Equal(t, b, as.Var)
	assert.Equal(t, ast.Sin, as.Value.First.First.(ir.Call).Func)

	out := prog[4].(ir.Output)
	assert.Equal(t, ir.Neg{Factor: ir.Var(b)}, out.Value.First.First)
	assert.Equal(t, ast.Mod, out.Value.Rest[0].Op)
}

func TestAnalyzeStdlib(t *testing.T) {
	tab := stdlib.NewTable()

	prog, err := analyzeSource(t, tab, "out pi * e")
	require.NoError(t, err)

	pi, _ := tab.Find("pi")
	e, _ := tab.Find("e")

	term := prog[0].(ir.Output).Value.First
	assert.Equal(t, ir.Var(pi), term.First)
	assert.Equal(t, ir.Var(e), term.Rest[0].Factor)
}

func TestAnalyzeErrors(t *testing.T) {
	for _, tc := range []struct {
		Src  string
		Name string
		Pos  int
		Dup  bool
	}{
		{Src: "var a var a", Name: "a", Pos: 10, Dup: true},
		{Src: "var pi = 3", Name: "pi", Pos: 4, Dup: true},
		{Src: "out x", Name: "x", Pos: 4},
		{Src: "x = 1", Name: "x", Pos: 0},
		{Src: "in x", Name: "x", Pos: 3},
		{Src: "var a = a", Name: "a", Pos: 8},
		{Src: "var a = (1 + sqrt(b))", Name: "b", Pos: 18},
	} {
		_, err := analyzeSource(t, stdlib.NewTable(), tc.Src)

		if tc.Dup {
			var e DuplicateDeclarationError
			if assert.True(t, errors.As(err, &e), "src %q: %v", tc.Src, err) {
				assert.Equal(t, tc.Name, e.Name)
				assert.Equal(t, tc.Pos, e.Pos)
			}

			continue
		}

		var e UndeclaredIdentifierError
		if assert.True(t, errors.As(err, &e), "src %q: %v", tc.Src, err) {
			assert.Equal(t, tc.Name, e.Name)
			assert.Equal(t, tc.Pos, e.Pos)
		}
	}
}

func TestAnalyzeKeepsEarlierDeclarations(t *testing.T) {
	tab := symbols.New()

	_, err := analyzeSource(t, tab, "var a var b out c var d")
	require.Error(t, err)

	_, err = tab.Find("a")
	assert.NoError(t, err)

	_, err = tab.Find("b")
	assert.NoError(t, err)

	_, err = tab.Find("d")
	assert.Error(t, err)

	// next line of the same session sees them
	_, err = analyzeSource(t, tab, "out a + b")
	assert.NoError(t, err)
}

func TestAnalyzeUnsupported(t *testing.T) {
	_, err := Analyze(context.Background(), symbols.New(), ast.Program{Stmts: []ast.Stmt{nil}})

	var e UnsupportedASTNodeError
	assert.True(t, errors.As(err, &e), "%v", err)
}
