package executor

import (
	"context"
	"fmt"
	"math"

	"github.com/eba216/MathLang/compiler/ast"
	"github.com/eba216/MathLang/compiler/ir"
	"github.com/eba216/MathLang/compiler/symbols"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

type (
	Executor struct {
		tab *symbols.Table

		in  Input
		out Output
	}

	UnsupportedIRNodeError struct{ T any }
)

func New(tab *symbols.Table, in Input, out Output) *Executor {
	return &Executor{
		tab: tab,
		in:  in,
		out: out,
	}
}

// Execute runs statements in order.
// Arithmetic never fails: division by zero and domain errors produce Inf and NaN.
// Only input and output collaborators can make it stop.
func (e *Executor) Execute(ctx context.Context, p ir.Program) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "execute", "stmts", len(p))
	defer tr.Finish("err", &err)

	for i, s := range p {
		err = e.execStmt(ctx, s)
		if err != nil {
			return errors.Wrap(err, "statement %d", i)
		}
	}

	return nil
}

func (e *Executor) execStmt(ctx context.Context, s ir.Stmt) error {
	switch s := s.(type) {
	case ir.Decl:
	case ir.DeclInit:
		e.tab.SetValue(s.Var, e.Evaluate(s.Value))
	case ir.Assign:
		e.tab.SetValue(s.Var, e.Evaluate(s.Value))
	case ir.Input:
		v, err := ReadValue(e.in)
		if err != nil {
			return errors.Wrap(err, "input %v", e.tab.Name(s.Var))
		}

		e.tab.SetValue(s.Var, v)
	case ir.Output:
		v := e.Evaluate(s.Value)

		tlog.SpanFromContext(ctx).V("eval").Printw("output", "value", v)

		err := e.out.WriteValue(v)
		if err != nil {
			return IOFailure{Op: "output", Err: err}
		}
	default:
		return UnsupportedIRNodeError{T: s}
	}

	return nil
}

// Evaluate computes x against the current table values.
func (e *Executor) Evaluate(x ir.Expr) float64 {
	r := e.evalTerm(x.First)

	for _, op := range x.Rest {
		v := e.evalTerm(op.Term)

		switch op.Op {
		case ast.Add:
			r += v
		case ast.Sub:
			r -= v
		case ast.Mod:
			r = math.Mod(r, v)
		default:
			panic(op.Op)
		}
	}

	return r
}

func (e *Executor) evalTerm(x ir.Term) float64 {
	r := e.evalFactor(x.First)

	for _, op := range x.Rest {
		v := e.evalFactor(op.Factor)

		switch op.Op {
		case ast.Mul:
			r *= v
		case ast.Div:
			r /= v
		case ast.Pow:
			r = math.Pow(r, v)
		default:
			panic(op.Op)
		}
	}

	return r
}

func (e *Executor) evalFactor(x ir.Factor) float64 {
	switch x := x.(type) {
	case ir.Literal:
		return float64(x)
	case ir.Var:
		return e.tab.Value(ir.Handle(x))
	case ir.Paren:
		return e.Evaluate(x.Expr)
	case ir.Call:
		return Apply(x.Func, e.Evaluate(x.Arg))
	case ir.Neg:
		return -e.evalFactor(x.Factor)
	default:
		panic(UnsupportedIRNodeError{T: x})
	}
}

// Apply computes elementary function f at x.
func Apply(f ast.Func, x float64) float64 {
	switch f {
	case ast.Sin:
		return math.Sin(x)
	case ast.Cos:
		return math.Cos(x)
	case ast.Tan:
		return math.Tan(x)
	case ast.Asin:
		return math.Asin(x)
	case ast.Acos:
		return math.Acos(x)
	case ast.Atan:
		return math.Atan(x)
	case ast.Sinh:
		return math.Sinh(x)
	case ast.Cosh:
		return math.Cosh(x)
	case ast.Tanh:
		return math.Tanh(x)
	case ast.Asinh:
		return math.Asinh(x)
	case ast.Acosh:
		return math.Acosh(x)
	case ast.Atanh:
		return math.Atanh(x)
	case ast.Exp:
		return math.Exp(x)
	case ast.Exp2:
		return math.Exp2(x)
	case ast.Ln:
		return math.Log(x)
	case ast.Log10:
		return math.Log10(x)
	case ast.Log2:
		return math.Log2(x)
	case ast.Abs:
		return math.Abs(x)
	case ast.Ceil:
		return math.Ceil(x)
	case ast.Floor:
		return math.Floor(x)
	case ast.Signum:
		return Signum(x)
	case ast.Sqrt:
		return math.Sqrt(x)
	}

	panic(f)
}

// Signum is 1 for positive numbers and +0, -1 for negative ones and -0, NaN for NaN.
func Signum(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}

	return math.Copysign(1, x)
}

func (e UnsupportedIRNodeError) Error() string {
	return fmt.Sprintf("unsupported ir node: %T", e.T)
}
