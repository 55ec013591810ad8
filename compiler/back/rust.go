package back

import (
	"context"
	"math"
	"strings"

	"github.com/nikandfor/hacked/hfmt"

	"github.com/eba216/MathLang/compiler/ast"
	"github.com/eba216/MathLang/compiler/ir"
)

type rustGen struct {
	*unit
}

const rustHeader = `// Code generated by mathlang. DO NOT EDIT.

#![allow(unused_mut, unused_variables, unused_assignments, non_snake_case)]

use std::io::Write;

fn input() -> f64 {
    eprint!("<input>: ");
    let _ = std::io::stderr().flush();

    let mut line = String::new();
    if std::io::stdin().read_line(&mut line).is_err() {
        return 0.0;
    }

    line.trim().parse::<f64>().unwrap_or(0.0)
}

fn output(v: f64) {
    println!("<output>: {}", v);
}
`

func compileRust(ctx context.Context, b []byte, u *unit) []byte {
	g := rustGen{unit: u}

	b = append(b, rustHeader...)
	b = append(b, "\nfn main() {\n"...)

	for _, h := range u.predeclared() {
		b = hfmt.Appendf(b, "    let mut %s: f64 = %s;\n", u.name(h), rustFloat(u.tab.Value(h)))
	}

	for _, s := range u.prog {
		b = g.stmt(b, s)
	}

	b = append(b, "}\n"...)

	return b
}

func (g rustGen) stmt(b []byte, s ir.Stmt) []byte {
	switch s := s.(type) {
	case ir.Decl:
		b = hfmt.Appendf(b, "    let mut %s: f64 = 0.0;\n", g.name(s.Var))
	case ir.DeclInit:
		b = hfmt.Appendf(b, "    let mut %s: f64 = ", g.name(s.Var))
		b = g.expr(b, s.Value)
		b = append(b, ";\n"...)
	case ir.Assign:
		b = hfmt.Appendf(b, "    %s = ", g.name(s.Var))
		b = g.expr(b, s.Value)
		b = append(b, ";\n"...)
	case ir.Input:
		b = hfmt.Appendf(b, "    %s = input();\n", g.name(s.Var))
	case ir.Output:
		b = append(b, "    output("...)
		b = g.expr(b, s.Value)
		b = append(b, ");\n"...)
	default:
		panic(UnsupportedIRNodeError{T: s})
	}

	return b
}

// % binds as tight as * in Rust, so both of its operands are parenthesized.
func (g rustGen) expr(b []byte, x ir.Expr) []byte {
	b = append(b, strings.Repeat("(", countAdd(x.Rest, ast.Mod))...)
	b = g.term(b, x.First)

	for _, op := range x.Rest {
		switch op.Op {
		case ast.Add, ast.Sub:
			b = hfmt.Appendf(b, " %v ", op.Op)
			b = g.term(b, op.Term)
		case ast.Mod:
			b = append(b, ") % ("...)
			b = g.term(b, op.Term)
			b = append(b, ')')
		default:
			panic(op.Op)
		}
	}

	return b
}

func (g rustGen) term(b []byte, x ir.Term) []byte {
	b = append(b, strings.Repeat("(", countMul(x.Rest, ast.Pow))...)
	b = g.factor(b, x.First)

	for _, op := range x.Rest {
		switch op.Op {
		case ast.Mul:
			b = append(b, " * "...)
			b = g.factor(b, op.Factor)
		case ast.Div:
			b = append(b, " / "...)
			b = g.factor(b, op.Factor)
		case ast.Pow:
			b = append(b, ").powf("...)
			b = g.factor(b, op.Factor)
			b = append(b, ')')
		default:
			panic(op.Op)
		}
	}

	return b
}

func (g rustGen) factor(b []byte, x ir.Factor) []byte {
	switch x := x.(type) {
	case ir.Literal:
		return append(b, rustFloat(float64(x))...)
	case ir.Var:
		return append(b, g.name(ir.Handle(x))...)
	case ir.Paren:
		b = append(b, '(')
		b = g.expr(b, x.Expr)
		b = append(b, ')')
	case ir.Call:
		b = append(b, '(')
		b = g.expr(b, x.Arg)
		b = hfmt.Appendf(b, ").%s()", rustFuncs[x.Func])
	case ir.Neg:
		b = append(b, "(-"...)
		b = g.factor(b, x.Factor)
		b = append(b, ')')
	default:
		panic(UnsupportedIRNodeError{T: x})
	}

	return b
}

func rustFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "f64::INFINITY"
	case math.IsInf(v, -1):
		return "f64::NEG_INFINITY"
	case math.IsNaN(v):
		return "f64::NAN"
	}

	s := floatLit(v)
	s = strings.Replace(s, "e+", "e", 1)

	if v < 0 || math.Signbit(v) {
		return "(" + s + "f64)"
	}

	return s + "f64"
}

var rustFuncs = [...]string{
	ast.Sin:    "sin",
	ast.Cos:    "cos",
	ast.Tan:    "tan",
	ast.Asin:   "asin",
	ast.Acos:   "acos",
	ast.Atan:   "atan",
	ast.Sinh:   "sinh",
	ast.Cosh:   "cosh",
	ast.Tanh:   "tanh",
	ast.Asinh:  "asinh",
	ast.Acosh:  "acosh",
	ast.Atanh:  "atanh",
	ast.Exp:    "exp",
	ast.Exp2:   "exp2",
	ast.Ln:     "ln",
	ast.Log10:  "log10",
	ast.Log2:   "log2",
	ast.Abs:    "abs",
	ast.Ceil:   "ceil",
	ast.Floor:  "floor",
	ast.Signum: "signum",
	ast.Sqrt:   "sqrt",
}
