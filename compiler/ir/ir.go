package ir

import (
	"github.com/eba216/MathLang/compiler/ast"
	"github.com/eba216/MathLang/compiler/symbols"
)

// Analyzed tree. Same shape as ast but names are resolved to handles.
type (
	Handle = symbols.Handle

	Program []Stmt

	Stmt interface {
		stmt()
	}

	Factor interface {
		factor()
	}

	Decl struct {
		Var Handle
	}

	DeclInit struct {
		Var   Handle
		Value Expr
	}

	Assign struct {
		Var   Handle
		Value Expr
	}

	Input struct {
		Var Handle
	}

	Output struct {
		Value Expr
	}

	Expr struct {
		First Term
		Rest  []ExprOp
	}

	ExprOp struct {
		Op   ast.AddOp
		Term Term
	}

	Term struct {
		First Factor
		Rest  []TermOp
	}

	TermOp struct {
		Op     ast.MulOp
		Factor Factor
	}

	Literal float64

	Var Handle

	Paren struct {
		Expr Expr
	}

	Call struct {
		Func ast.Func
		Arg  Expr
	}

	Neg struct {
		Factor Factor
	}
)

func (Decl) stmt()     {}
func (DeclInit) stmt() {}
func (Assign) stmt()   {}
func (Input) stmt()    {}
func (Output) stmt()   {}

func (Literal) factor() {}
func (Var) factor()     {}
func (Paren) factor()   {}
func (Call) factor()    {}
func (Neg) factor()     {}
