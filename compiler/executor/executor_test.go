package executor

import (
	"bytes"
	"context"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"

	"github.com/eba216/MathLang/compiler/analyze"
	"github.com/eba216/MathLang/compiler/ast"
	"github.com/eba216/MathLang/compiler/ir"
	"github.com/eba216/MathLang/compiler/parse"
	"github.com/eba216/MathLang/compiler/stdlib"
)

func run(t *testing.T, src, input string) []float64 {
	t.Helper()

	ctx := context.Background()

	p, err := parse.Parse(ctx, []byte(src))
	require.NoError(t, err)

	tab := stdlib.NewTable()

	prog, err := analyze.Analyze(ctx, tab, p)
	require.NoError(t, err)

	var res []float64

	out := OutputFunc(func(v float64) error {
		res = append(res, v)
		return nil
	})

	err = New(tab, NewLineInput(strings.NewReader(input), nil), out).Execute(ctx, prog)
	require.NoError(t, err)

	return res
}

func TestExecute(t *testing.T) {
	for _, tc := range []struct {
		Src   string
		Input string
		Want  []float64
	}{
		{Src: "out 2 + 3 * 4 ^ 2", Want: []float64{146}},
		{Src: "out 2 ^ 3 ^ 2", Want: []float64{64}},
		{Src: "out 8 / 4 / 2 out 8 - 4 - 2", Want: []float64{1, 2}},
		{Src: "out 5.5 mod 2 out -5.5 mod 2 out 5.5 mod -2", Want: []float64{1.5, -1.5, 1.5}},
		{Src: "out 1 + 7 mod 4", Want: []float64{0}},
		{Src: "out 2 ^ -1 out 4 ^ 0.5", Want: []float64{0.5, 2}},
		{Src: "out sin(0) out cos(0) out sqrt(16) out abs(-3) out floor(-1.5) out ceil(1.2)", Want: []float64{0, 1, 4, 3, -2, 2}},
		{Src: "out lg(8) out exp(0)", Want: []float64{3, 1}},
		{Src: "out signum(-4) out sgn(3) out signum(0)", Want: []float64{-1, 1, 1}},
		{Src: "var a = 2 var b = a * 3 a = b - a out a out b", Want: []float64{4, 6}},
		{Src: "var x out x", Want: []float64{0}},
		{Src: "out pi", Want: []float64{math.Pi}},
		{Src: "var a var b in a in b out a * b", Input: "3\n  4.5 \n", Want: []float64{13.5}},
		{Src: "var a in a out a + 1", Input: "abc\n", Want: []float64{1}},
		{Src: "var a in a out a + 1", Input: "", Want: []float64{1}},
		{Src: "var a in a out a", Input: "7", Want: []float64{7}},
		{Src: "out -(1 + 2) out --3", Want: []float64{-3, 3}},
		{Src: "var a a = 2 out a mod 1.5 var b=4 out -b mod 1.5", Want: []float64{0.5, -1}},
		{Src: "var x = sin(0) out x", Want: []float64{0}},
		{Src: "var a = 5 out a / 0", Want: []float64{math.Inf(1)}},
	} {
		got := run(t, tc.Src, tc.Input)
		assert.Equal(t, tc.Want, got, "src: %q", tc.Src)
	}
}

func TestExecuteFuncs(t *testing.T) {
	got := run(t, "out log(1000) out ln(e) out exp2(10) out atan(1) * 4 out cosh(0) out log10(0.01)", "")
	want := []float64{3, 1, 1024, math.Pi, 1, -2}

	require.Len(t, got, len(want))

	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "value %d", i)
	}
}

func TestExecuteIEEE(t *testing.T) {
	got := run(t, "var a = 1 out a / 0 out -a / 0 out 0 / 0 out sqrt(-1) out ln(0) out asin(2) out 1e308 * 10", "")
	require.Len(t, got, 7)

	assert.True(t, math.IsInf(got[0], 1))
	assert.True(t, math.IsInf(got[1], -1))
	assert.True(t, math.IsNaN(got[2]))
	assert.True(t, math.IsNaN(got[3]))
	assert.True(t, math.IsInf(got[4], -1))
	assert.True(t, math.IsNaN(got[5]))
	assert.True(t, math.IsInf(got[6], 1))
}

func TestExecuteDeterministic(t *testing.T) {
	src := "var x = 0.1 var y = x * 3 + sin(x) ^ 2 out y out y mod 0.07 out tanh(y) / x"

	a := run(t, src, "")
	b := run(t, src, "")

	assert.Equal(t, a, b)
}

func TestTaggedWriter(t *testing.T) {
	var buf bytes.Buffer

	w := NewTaggedWriter(&buf)

	for _, v := range []float64{146, 0.1, -2.5, 1e21, math.Inf(1), math.NaN(), math.Copysign(0, -1)} {
		require.NoError(t, w.WriteValue(v))
	}

	assert.Equal(t, `<output>: 146
<output>: 0.1
<output>: -2.5
<output>: 1e+21
<output>: +Inf
<output>: NaN
<output>: -0
`, buf.String())
}

func TestLineInputPrompts(t *testing.T) {
	var prompts bytes.Buffer

	in := NewLineInput(strings.NewReader("1\n2\n"), &prompts)

	v, err := ReadValue(in)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = ReadValue(in)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	v, err = ReadValue(in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	assert.Equal(t, strings.Repeat(InputPrompt, 3), prompts.String())
}

func TestIOFailures(t *testing.T) {
	ctx := context.Background()
	tab := stdlib.NewTable()

	p, err := parse.Parse(ctx, []byte("var a in a out a"))
	require.NoError(t, err)

	prog, err := analyze.Analyze(ctx, tab, p)
	require.NoError(t, err)

	broken := errors.New("broken pipe")

	in := InputFunc(func(string) (string, error) { return "", broken })
	out := OutputFunc(func(float64) error { return nil })

	err = New(tab, in, out).Execute(ctx, prog)

	var iof IOFailure
	require.True(t, errors.As(err, &iof), "%v", err)
	assert.Equal(t, "input", iof.Op)
	assert.True(t, errors.Is(err, broken))

	in = InputFunc(func(string) (string, error) { return "", io.EOF })
	out = OutputFunc(func(float64) error { return broken })

	err = New(tab, in, out).Execute(ctx, prog)

	require.True(t, errors.As(err, &iof), "%v", err)
	assert.Equal(t, "output", iof.Op)
}

func TestApply(t *testing.T) {
	for f := ast.Sin; f <= ast.Sqrt; f++ {
		assert.NotPanics(t, func() { Apply(f, 0.5) }, "%v", f)
	}

	assert.True(t, math.IsNaN(Signum(math.NaN())))
	assert.Equal(t, -1.0, Signum(math.Copysign(0, -1)))
}

func TestEvaluate(t *testing.T) {
	tab := stdlib.NewTable()
	pi, _ := tab.Find("pi")

	e := New(tab, nil, nil)

	// pi * 2 - 1
	x := ir.Expr{
		First: ir.Term{First: ir.Var(pi), Rest: []ir.TermOp{{Op: ast.Mul, Factor: ir.Literal(2)}}},
		Rest:  []ir.ExprOp{{Op: ast.Sub, Term: ir.Term{First: ir.Literal(1)}}},
	}

	assert.Equal(t, math.Pi*2-1, e.Evaluate(x))
}
