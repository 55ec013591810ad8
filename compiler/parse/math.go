package parse

import (
	"context"

	"github.com/eba216/MathLang/compiler/ast"
	"tlog.app/go/errors"
)

type (
	LeftToRight struct {
		Op  Parser
		Arg Parser
	}

	BinOper interface {
		BinOp(l, r ast.Node) (ast.Node, error)
	}

	// AddOper parses + - mod.
	AddOper struct {
		Op ast.AddOp
	}

	// MulOper parses * / ^.
	MulOper struct {
		Op ast.MulOp
	}
)

func (p LeftToRight) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	x, i, err = p.Arg.Parse(ctx, b, st)
	if err != nil {
		return nil, i, errors.Wrap(err, "first arg")
	}

	for i < len(b) {
		var op ast.Node
		opst := i
		op, i, err = p.Op.Parse(ctx, b, i)
		if i == opst {
			err = nil
			break
		}
		if err != nil {
			return nil, i, errors.Wrap(err, "op")
		}

		c, ok := op.(BinOper)
		if !ok {
			return nil, i, errors.New("BinOper expected, got %T", op)
		}

		var r ast.Node
		r, i, err = p.Arg.Parse(ctx, b, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "arg after %v", op)
		}

		x, err = c.BinOp(x, r)
		if err != nil {
			return nil, i, errors.Wrap(err, "%T", c)
		}
	}

	return
}

func (p AddOper) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	if st < len(b) {
		switch b[st] {
		case '+':
			return AddOper{Op: ast.Add}, st + 1, nil
		case '-':
			return AddOper{Op: ast.Sub}, st + 1, nil
		}
	}

	_, i, err = Keyword("mod").Parse(ctx, b, st)
	if err != nil {
		return nil, st, errors.New("+, - or mod expected")
	}

	return AddOper{Op: ast.Mod}, i, nil
}

func (p AddOper) BinOp(l, r ast.Node) (ast.Node, error) {
	rt, ok := r.(ast.Term)
	if !ok {
		return nil, NewTypeExpectedError("term", r)
	}

	var e ast.Expr

	switch l := l.(type) {
	case ast.Expr:
		e = l
	case ast.Term:
		e = ast.Expr{Base: l.Base, First: l}
	default:
		return nil, NewTypeExpectedError("term", l)
	}

	e.Rest = append(e.Rest, ast.ExprOp{Op: p.Op, Term: rt})
	e.End = rt.End

	return e, nil
}

func (p AddOper) String() string { return p.Op.String() }

func (p MulOper) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	if st < len(b) {
		switch b[st] {
		case '*':
			return MulOper{Op: ast.Mul}, st + 1, nil
		case '/':
			return MulOper{Op: ast.Div}, st + 1, nil
		case '^':
			return MulOper{Op: ast.Pow}, st + 1, nil
		}
	}

	return nil, st, errors.New("*, / or ^ expected")
}

func (p MulOper) BinOp(l, r ast.Node) (ast.Node, error) {
	rf, ok := r.(ast.Factor)
	if !ok {
		return nil, NewTypeExpectedError("factor", r)
	}

	var t ast.Term

	switch l := l.(type) {
	case ast.Term:
		t = l
	case ast.Factor:
		t = ast.Term{Base: l.Span(), First: l}
	default:
		return nil, NewTypeExpectedError("factor", l)
	}

	t.Rest = append(t.Rest, ast.TermOp{Op: p.Op, Factor: rf})
	t.End = rf.Span().End

	return t, nil
}

func (p MulOper) String() string { return p.Op.String() }
