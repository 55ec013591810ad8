package parse

import (
	"context"

	"github.com/eba216/MathLang/compiler/ast"
	"tlog.app/go/errors"
)

type (
	Program struct{}

	// Statement tries alternatives longest first:
	// `var x = 1` must not be taken for `var x` followed by garbage.
	Statement struct{}

	DeclInit struct{}

	Decl struct{}

	Input struct{}

	Output struct{}

	Assign struct{}
)

// Parse never fails. It stops before the first statement it can't parse.
func (p Program) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	res := ast.Program{
		Base: ast.Base{Pos: st},
	}

	i = st

	for {
		j := Blank.Skip(b, i)
		if j == len(b) {
			i = j
			break
		}

		var s ast.Node
		s, j, err = Statement{}.Parse(ctx, b, j)
		if err != nil {
			break
		}

		res.Stmts = append(res.Stmts, s.(ast.Stmt))
		i = j
	}

	res.End = i

	return res, i, nil
}

func (p Statement) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AnyOf{
		DeclInit{},
		Decl{},
		Input{},
		Output{},
		Assign{},
	}

	return r.Parse(ctx, b, st)
}

func (p DeclInit) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Keyword("var"),
		sp(Ident{}),
		sp(Const("=")),
		sp(Expr{}),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]ast.Node)

	return ast.DeclInit{
		Base:  ast.Base{Pos: st, End: i},
		Name:  xt[1].(ast.Ident),
		Value: xt[3].(ast.Expr),
	}, i, nil
}

func (p Decl) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Keyword("var"),
		sp(Ident{}),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]ast.Node)

	return ast.Decl{
		Base: ast.Base{Pos: st, End: i},
		Name: xt[1].(ast.Ident),
	}, i, nil
}

func (p Input) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Keyword("in"),
		sp(Ident{}),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]ast.Node)

	return ast.Input{
		Base: ast.Base{Pos: st, End: i},
		Name: xt[1].(ast.Ident),
	}, i, nil
}

func (p Output) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Keyword("out"),
		sp(Expr{}),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]ast.Node)

	return ast.Output{
		Base:  ast.Base{Pos: st, End: i},
		Value: xt[1].(ast.Expr),
	}, i, nil
}

func (p Assign) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	r := AllOf{
		Ident{},
		sp(Const("=")),
		sp(Expr{}),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]ast.Node)

	id, ok := xt[0].(ast.Ident)
	if !ok {
		return nil, st, errors.New("identifier expected")
	}

	return ast.Assign{
		Base:  ast.Base{Pos: st, End: i},
		Name:  id,
		Value: xt[2].(ast.Expr),
	}, i, nil
}
