package back

import (
	"context"
	"math"
	"strings"

	"github.com/nikandfor/hacked/hfmt"

	"github.com/eba216/MathLang/compiler/ast"
	"github.com/eba216/MathLang/compiler/ir"
)

type goGen struct {
	*unit
}

const goHeader = `// Code generated by mathlang. DO NOT EDIT.

package main

import (
	"bufio"
	"fmt"
%s	"os"
	"strconv"
	"strings"
)

var stdin = bufio.NewReader(os.Stdin)

func input() float64 {
	fmt.Fprint(os.Stderr, "<input>: ")

	line, _ := stdin.ReadString('\n')

	v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0
	}

	return v
}

func output(v float64) {
	fmt.Println("<output>: " + strconv.FormatFloat(v, 'g', -1, 64))
}

// num stops constant folding of its argument.
func num(v float64) float64 { return v }
`

const goSignum = `
func signum(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}

	return math.Copysign(1, x)
}
`

func compileGo(ctx context.Context, b []byte, u *unit) []byte {
	g := goGen{unit: u}

	pre := u.predeclared()

	usesMath := u.math || u.signum

	for _, h := range pre {
		usesMath = usesMath || strings.HasPrefix(goFloat(u.tab.Value(h)), "math.")
	}

	var imports string
	if usesMath {
		imports = "\t\"math\"\n"
	}

	b = hfmt.Appendf(b, goHeader, imports)

	if u.signum {
		b = append(b, goSignum...)
	}

	b = append(b, "\nfunc main() {\n"...)

	for _, h := range pre {
		b = hfmt.Appendf(b, "\t%s := %s\n", u.name(h), goFloat(u.tab.Value(h)))
		b = g.unused(b, h)
	}

	for _, s := range u.prog {
		b = g.stmt(b, s)
	}

	b = append(b, "}\n"...)

	return b
}

func (g goGen) stmt(b []byte, s ir.Stmt) []byte {
	switch s := s.(type) {
	case ir.Decl:
		b = hfmt.Appendf(b, "\tvar %s float64\n", g.name(s.Var))
		b = g.unused(b, s.Var)
	case ir.DeclInit:
		b = hfmt.Appendf(b, "\t%s := ", g.name(s.Var))
		b = g.expr(b, s.Value)
		b = append(b, '\n')
		b = g.unused(b, s.Var)
	case ir.Assign:
		b = hfmt.Appendf(b, "\t%s = ", g.name(s.Var))
		b = g.expr(b, s.Value)
		b = append(b, '\n')
	case ir.Input:
		b = hfmt.Appendf(b, "\t%s = input()\n", g.name(s.Var))
	case ir.Output:
		b = append(b, "\toutput("...)
		b = g.expr(b, s.Value)
		b = append(b, ")\n"...)
	default:
		panic(UnsupportedIRNodeError{T: s})
	}

	return b
}

// unused silences "declared and not used" for variables nobody reads.
func (g goGen) unused(b []byte, h ir.Handle) []byte {
	if g.read.IsSet(int(h)) {
		return b
	}

	return hfmt.Appendf(b, "\t_ = %s\n", g.name(h))
}

// Go evaluates constant expressions exactly at compile time
// and rejects constant division by zero.
// The first operand of a chain is wrapped into num() if both it and the next one are constants,
// so the whole chain is computed at run time with float64 semantics.

func (g goGen) expr(b []byte, x ir.Expr) []byte {
	b = append(b, strings.Repeat("math.Mod(", countAdd(x.Rest, ast.Mod))...)

	wrap := len(x.Rest) != 0 && x.Rest[0].Op != ast.Mod && termConst(x.First) && termConst(x.Rest[0].Term)

	b = g.termNum(b, x.First, wrap)

	for _, op := range x.Rest {
		switch op.Op {
		case ast.Add, ast.Sub:
			b = hfmt.Appendf(b, " %v ", op.Op)
			b = g.term(b, op.Term)
		case ast.Mod:
			b = append(b, ", "...)
			b = g.term(b, op.Term)
			b = append(b, ')')
		default:
			panic(op.Op)
		}
	}

	return b
}

func (g goGen) termNum(b []byte, x ir.Term, wrap bool) []byte {
	if !wrap {
		return g.term(b, x)
	}

	b = append(b, "num("...)
	b = g.term(b, x)
	b = append(b, ')')

	return b
}

func (g goGen) term(b []byte, x ir.Term) []byte {
	b = append(b, strings.Repeat("math.Pow(", countMul(x.Rest, ast.Pow))...)

	wrap := len(x.Rest) != 0 && x.Rest[0].Op != ast.Pow && factorConst(x.First) && factorConst(x.Rest[0].Factor)

	b = g.factorNum(b, x.First, wrap)

	for _, op := range x.Rest {
		switch op.Op {
		case ast.Mul:
			b = append(b, " * "...)
			b = g.factor(b, op.Factor)
		case ast.Div:
			b = append(b, " / "...)

			v, ok := factorValue(op.Factor)
			b = g.factorNum(b, op.Factor, ok && v == 0)
		case ast.Pow:
			b = append(b, ", "...)
			b = g.factor(b, op.Factor)
			b = append(b, ')')
		default:
			panic(op.Op)
		}
	}

	return b
}

func (g goGen) factorNum(b []byte, x ir.Factor, wrap bool) []byte {
	if !wrap {
		return g.factor(b, x)
	}

	b = append(b, "num("...)
	b = g.factor(b, x)
	b = append(b, ')')

	return b
}

func (g goGen) factor(b []byte, x ir.Factor) []byte {
	switch x := x.(type) {
	case ir.Literal:
		return append(b, goFloat(float64(x))...)
	case ir.Var:
		return append(b, g.name(ir.Handle(x))...)
	case ir.Paren:
		b = append(b, '(')
		b = g.expr(b, x.Expr)
		b = append(b, ')')
	case ir.Call:
		b = append(b, goFuncs[x.Func]...)
		b = append(b, '(')
		b = g.expr(b, x.Arg)
		b = append(b, ')')
	case ir.Neg:
		// constant negation loses the sign of zero
		b = append(b, "(-"...)
		b = g.factorNum(b, x.Factor, factorConst(x.Factor))
		b = append(b, ')')
	default:
		panic(UnsupportedIRNodeError{T: x})
	}

	return b
}

func goFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "math.Inf(1)"
	case math.IsInf(v, -1):
		return "math.Inf(-1)"
	case math.IsNaN(v):
		return "math.NaN()"
	case v == 0 && math.Signbit(v):
		return "math.Copysign(0, -1)"
	}

	return floatLit(v)
}

var goFuncs = [...]string{
	ast.Sin:    "math.Sin",
	ast.Cos:    "math.Cos",
	ast.Tan:    "math.Tan",
	ast.Asin:   "math.Asin",
	ast.Acos:   "math.Acos",
	ast.Atan:   "math.Atan",
	ast.Sinh:   "math.Sinh",
	ast.Cosh:   "math.Cosh",
	ast.Tanh:   "math.Tanh",
	ast.Asinh:  "math.Asinh",
	ast.Acosh:  "math.Acosh",
	ast.Atanh:  "math.Atanh",
	ast.Exp:    "math.Exp",
	ast.Exp2:   "math.Exp2",
	ast.Ln:     "math.Log",
	ast.Log10:  "math.Log10",
	ast.Log2:   "math.Log2",
	ast.Abs:    "math.Abs",
	ast.Ceil:   "math.Ceil",
	ast.Floor:  "math.Floor",
	ast.Signum: "signum",
	ast.Sqrt:   "math.Sqrt",
}

// factorConst reports whether Go would treat the rendered factor as a constant.
func factorConst(x ir.Factor) bool {
	_, ok := factorValue(x)
	return ok
}

func termConst(x ir.Term) bool {
	return len(x.Rest) == 0 && factorConst(x.First)
}

func factorValue(x ir.Factor) (float64, bool) {
	switch x := x.(type) {
	case ir.Literal:
		return float64(x), isFinite(float64(x))
	case ir.Paren:
		if len(x.Expr.Rest) != 0 || len(x.Expr.First.Rest) != 0 {
			return 0, false
		}

		return factorValue(x.Expr.First.First)
	default:
		return 0, false
	}
}

func countAdd(ops []ir.ExprOp, op ast.AddOp) (n int) {
	for _, x := range ops {
		if x.Op == op {
			n++
		}
	}

	return n
}

func countMul(ops []ir.TermOp, op ast.MulOp) (n int) {
	for _, x := range ops {
		if x.Op == op {
			n++
		}
	}

	return n
}
