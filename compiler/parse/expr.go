package parse

import (
	"context"

	"github.com/eba216/MathLang/compiler/ast"
	"tlog.app/go/errors"
)

type (
	Expr struct{}

	Term struct{}

	Factor struct{}

	Call struct{}

	Paren struct{}

	Neg struct{}
)

func (p Expr) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := LeftToRight{
		Op:  sp(AddOper{}),
		Arg: sp(Term{}),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	switch y := x.(type) {
	case ast.Expr:
		return y, i, nil
	case ast.Term:
		return ast.Expr{Base: y.Base, First: y}, i, nil
	}

	return nil, i, NewTypeExpectedError("expression", x)
}

func (p Term) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := LeftToRight{
		Op:  sp(MulOper{}),
		Arg: sp(Factor{}),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	switch y := x.(type) {
	case ast.Term:
		return y, i, nil
	case ast.Factor:
		return ast.Term{Base: y.Span(), First: y}, i, nil
	}

	return nil, i, NewTypeExpectedError("term", x)
}

// Parse tries function calls before identifiers
// so reserved names never end up as variables.
func (p Factor) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AnyOf{
		Call{},
		Ident{},
		Float{},
		Paren{},
		Neg{},
	}

	return r.Parse(ctx, b, st)
}

func (p Call) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		FuncName{},
		sp(Const("(")),
		sp(Expr{}),
		sp(Const(")")),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]ast.Node)

	return ast.Call{
		Base: ast.Base{Pos: st, End: i},
		Func: xt[0].(ast.Func),
		Arg:  xt[2].(ast.Expr),
	}, i, nil
}

func (p Paren) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Const("("),
		sp(Expr{}),
		sp(Const(")")),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]ast.Node)

	return ast.Paren{
		Base: ast.Base{Pos: st, End: i},
		Expr: xt[1].(ast.Expr),
	}, i, nil
}

func (p Neg) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Const("-"),
		sp(Factor{}),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]ast.Node)

	f, ok := xt[1].(ast.Factor)
	if !ok {
		return nil, st, errors.New("factor expected after unary minus")
	}

	return ast.Neg{
		Base:   ast.Base{Pos: st, End: i},
		Factor: f,
	}, i, nil
}
