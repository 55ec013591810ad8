package analyze

import (
	"context"
	"fmt"
	"reflect"

	"github.com/eba216/MathLang/compiler/ast"
	"github.com/eba216/MathLang/compiler/ir"
	"github.com/eba216/MathLang/compiler/symbols"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

type (
	UnsupportedASTNodeError struct{ T ast.Node }

	DuplicateDeclarationError struct {
		Name string
		Pos  int
	}

	UndeclaredIdentifierError struct {
		Name string
		Pos  int
	}
)

// Analyze resolves names of p to handles of tab.
// Declarations are inserted into tab as they are met,
// so on error tab keeps the ones made by preceding statements.
func Analyze(ctx context.Context, tab *symbols.Table, p ast.Program) (res ir.Program, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "analyze", "stmts", len(p.Stmts), "vars", tab.Len())
	defer tr.Finish("err", &err)

	res = make(ir.Program, 0, len(p.Stmts))

	for i, s := range p.Stmts {
		y, err := analyzeStmt(ctx, tab, s)
		if err != nil {
			return nil, errors.Wrap(err, "statement %d", i)
		}

		res = append(res, y)
	}

	if tr.If("dump_ir") {
		for i, s := range res {
			tr.Printw("statement", "i", i, "typ", tlog.NextAsType, s, "val", s)
		}
	}

	return res, nil
}

func analyzeStmt(ctx context.Context, tab *symbols.Table, s ast.Stmt) (ir.Stmt, error) {
	switch s := s.(type) {
	case ast.Decl:
		h, err := declare(tab, s.Name)
		if err != nil {
			return nil, err
		}

		return ir.Decl{Var: h}, nil
	case ast.DeclInit:
		// initializer sees the table before the declaration: `var a = a` is an error
		v, err := analyzeExpr(tab, s.Value)
		if err != nil {
			return nil, errors.Wrap(err, "initializer of %v", s.Name.Name)
		}

		h, err := declare(tab, s.Name)
		if err != nil {
			return nil, err
		}

		return ir.DeclInit{Var: h, Value: v}, nil
	case ast.Assign:
		h, err := resolve(tab, s.Name)
		if err != nil {
			return nil, err
		}

		v, err := analyzeExpr(tab, s.Value)
		if err != nil {
			return nil, errors.Wrap(err, "value of %v", s.Name.Name)
		}

		return ir.Assign{Var: h, Value: v}, nil
	case ast.Input:
		h, err := resolve(tab, s.Name)
		if err != nil {
			return nil, err
		}

		return ir.Input{Var: h}, nil
	case ast.Output:
		v, err := analyzeExpr(tab, s.Value)
		if err != nil {
			return nil, errors.Wrap(err, "output")
		}

		return ir.Output{Value: v}, nil
	default:
		return nil, NewUnsupportedASTNode(s)
	}
}

func analyzeExpr(tab *symbols.Table, x ast.Expr) (y ir.Expr, err error) {
	y.First, err = analyzeTerm(tab, x.First)
	if err != nil {
		return y, err
	}

	if len(x.Rest) != 0 {
		y.Rest = make([]ir.ExprOp, len(x.Rest))
	}

	for i, op := range x.Rest {
		y.Rest[i].Op = op.Op

		y.Rest[i].Term, err = analyzeTerm(tab, op.Term)
		if err != nil {
			return y, err
		}
	}

	return y, nil
}

func analyzeTerm(tab *symbols.Table, x ast.Term) (y ir.Term, err error) {
	y.First, err = analyzeFactor(tab, x.First)
	if err != nil {
		return y, err
	}

	if len(x.Rest) != 0 {
		y.Rest = make([]ir.TermOp, len(x.Rest))
	}

	for i, op := range x.Rest {
		y.Rest[i].Op = op.Op

		y.Rest[i].Factor, err = analyzeFactor(tab, op.Factor)
		if err != nil {
			return y, err
		}
	}

	return y, nil
}

func analyzeFactor(tab *symbols.Table, x ast.Factor) (ir.Factor, error) {
	switch x := x.(type) {
	case ast.Literal:
		return ir.Literal(x.Value), nil
	case ast.Ident:
		h, err := resolve(tab, x)
		if err != nil {
			return nil, err
		}

		return ir.Var(h), nil
	case ast.Paren:
		e, err := analyzeExpr(tab, x.Expr)
		if err != nil {
			return nil, err
		}

		return ir.Paren{Expr: e}, nil
	case ast.Call:
		e, err := analyzeExpr(tab, x.Arg)
		if err != nil {
			return nil, errors.Wrap(err, "%v", x.Func)
		}

		return ir.Call{Func: x.Func, Arg: e}, nil
	case ast.Neg:
		f, err := analyzeFactor(tab, x.Factor)
		if err != nil {
			return nil, err
		}

		return ir.Neg{Factor: f}, nil
	default:
		return nil, NewUnsupportedASTNode(x)
	}
}

func declare(tab *symbols.Table, id ast.Ident) (ir.Handle, error) {
	h, err := tab.Insert(id.Name)
	if errors.Is(err, symbols.ErrDuplicate) {
		return h, DuplicateDeclarationError{Name: id.Name, Pos: id.Pos}
	}
	if err != nil {
		return h, errors.Wrap(err, "declare")
	}

	return h, nil
}

func resolve(tab *symbols.Table, id ast.Ident) (ir.Handle, error) {
	h, err := tab.Find(id.Name)
	if errors.Is(err, symbols.ErrNotFound) {
		return h, UndeclaredIdentifierError{Name: id.Name, Pos: id.Pos}
	}
	if err != nil {
		return h, errors.Wrap(err, "resolve")
	}

	return h, nil
}

func NewUnsupportedASTNode(x ast.Node) UnsupportedASTNodeError {
	return UnsupportedASTNodeError{
		T: x,
	}
}

func (e UnsupportedASTNodeError) Error() string {
	return fmt.Sprintf("unsupported node: %v", reflect.TypeOf(e.T))
}

func (e DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("duplicate declaration: %v", e.Name)
}

func (e UndeclaredIdentifierError) Error() string {
	return fmt.Sprintf("undeclared identifier: %v", e.Name)
}
