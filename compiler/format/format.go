// Package format prints parse trees back as canonical source text.
package format

import (
	"context"
	"math"
	"strconv"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/eba216/MathLang/compiler/ast"
)

// Format appends x to b. x is ast.Program, a statement or an expression.
// Program statements are printed one per line.
func Format(ctx context.Context, b []byte, x any) ([]byte, error) {
	return format(ctx, b, x, 0)
}

func format(ctx context.Context, b []byte, x any, d int) (_ []byte, err error) {
	switch x := x.(type) {
	case ast.Program:
		return formatProgram(ctx, b, x, d)
	case ast.Stmt:
		return formatStmt(ctx, b, x, d)
	case ast.Expr:
		return formatExpr(ctx, b, x)
	case ast.Factor:
		return formatFactor(ctx, b, x)
	default:
		return nil, errors.New("unsupported type: %T", x)
	}
}

func formatProgram(ctx context.Context, b []byte, x ast.Program, d int) (_ []byte, err error) {
	for i, s := range x.Stmts {
		b, err = formatStmt(ctx, b, s, d)
		if err != nil {
			return nil, errors.Wrap(err, "statement %d", i)
		}

		b = append(b, '\n')
	}

	return b, nil
}

func formatStmt(ctx context.Context, b []byte, x ast.Stmt, d int) (_ []byte, err error) {
	switch s := x.(type) {
	case ast.Decl:
		b = app(b, d, "var %s", s.Name.Name)
	case ast.DeclInit:
		b = app(b, d, "var %s = ", s.Name.Name)

		b, err = formatExpr(ctx, b, s.Value)
		if err != nil {
			return nil, errors.Wrap(err, "value")
		}
	case ast.Assign:
		b = app(b, d, "%s = ", s.Name.Name)

		b, err = formatExpr(ctx, b, s.Value)
		if err != nil {
			return nil, errors.Wrap(err, "value")
		}
	case ast.Input:
		b = app(b, d, "in %s", s.Name.Name)
	case ast.Output:
		b = app(b, d, "out ")

		b, err = formatExpr(ctx, b, s.Value)
		if err != nil {
			return nil, errors.Wrap(err, "value")
		}
	default:
		return nil, errors.New("unsupported stmt: %T", s)
	}

	return b, nil
}

func formatExpr(ctx context.Context, b []byte, x ast.Expr) (_ []byte, err error) {
	b, err = formatTerm(ctx, b, x.First)
	if err != nil {
		return nil, err
	}

	for _, op := range x.Rest {
		b = hfmt.Appendf(b, " %v ", op.Op)

		b, err = formatTerm(ctx, b, op.Term)
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

func formatTerm(ctx context.Context, b []byte, x ast.Term) (_ []byte, err error) {
	b, err = formatFactor(ctx, b, x.First)
	if err != nil {
		return nil, err
	}

	for _, op := range x.Rest {
		b = hfmt.Appendf(b, " %v ", op.Op)

		b, err = formatFactor(ctx, b, op.Factor)
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

func formatFactor(ctx context.Context, b []byte, x ast.Factor) (_ []byte, err error) {
	switch x := x.(type) {
	case ast.Literal:
		b = appendNumber(b, x.Value)
	case ast.Ident:
		b = append(b, x.Name...)
	case ast.Paren:
		b = append(b, '(')

		b, err = formatExpr(ctx, b, x.Expr)
		if err != nil {
			return nil, err
		}

		b = append(b, ')')
	case ast.Call:
		b = hfmt.Appendf(b, "%v(", x.Func)

		b, err = formatExpr(ctx, b, x.Arg)
		if err != nil {
			return nil, errors.Wrap(err, "%v", x.Func)
		}

		b = append(b, ')')
	case ast.Neg:
		b = append(b, '-')

		b, err = formatFactor(ctx, b, x.Factor)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unsupported factor: %T", x)
	}

	return b, nil
}

// appendNumber prints v so that it parses back to the same value.
// Literals are never negative, but overflowed ones are infinite.
func appendNumber(b []byte, v float64) []byte {
	if math.IsInf(v, 1) {
		return append(b, "1e999"...)
	}

	return strconv.AppendFloat(b, v, 'g', -1, 64)
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
