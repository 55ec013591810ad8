package back

import (
	"context"
	"fmt"

	"github.com/eba216/MathLang/compiler/ast"
	"github.com/eba216/MathLang/compiler/ir"
	"github.com/eba216/MathLang/compiler/set"
	"github.com/eba216/MathLang/compiler/symbols"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

type (
	Target string

	Compiler struct{}

	UnsupportedTargetError struct {
		Target string
	}

	// unit is what one Compile call knows about the program.
	unit struct {
		tab  *symbols.Table
		prog ir.Program

		names []string // by handle

		declared set.Bitmap // by the program itself
		used     set.Bitmap // read or written
		read     set.Bitmap

		signum bool
		math   bool
	}
)

const (
	Go   Target = "go"
	Rust Target = "rust"
)

var Targets = []Target{Go, Rust}

func New() *Compiler { return &Compiler{} }

func ParseTarget(s string) (Target, error) {
	for _, t := range Targets {
		if string(t) == s {
			return t, nil
		}
	}

	switch s {
	case "", "golang":
		return Go, nil
	case "rs":
		return Rust, nil
	}

	return "", UnsupportedTargetError{Target: s}
}

// Ext is the file extension of generated sources.
func (t Target) Ext() string {
	switch t {
	case Go:
		return ".go"
	case Rust:
		return ".rs"
	default:
		return ".txt"
	}
}

// Compile appends complete target source of prog to b.
// tab must be the table prog was analyzed against.
func (c *Compiler) Compile(ctx context.Context, t Target, b []byte, tab *symbols.Table, prog ir.Program) (_ []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "codegen", "target", t, "stmts", len(prog))
	defer tr.Finish("err", &err)

	var reserved map[string]struct{}

	switch t {
	case Go:
		reserved = goReserved
	case Rust:
		reserved = rustReserved
	default:
		return b, UnsupportedTargetError{Target: string(t)}
	}

	u, err := newUnit(tab, prog, reserved)
	if err != nil {
		return b, errors.Wrap(err, "collect")
	}

	tr.V("codegen").Printw("unit", "vars", len(u.names), "declared", u.declared, "read", u.read)

	st := len(b)

	switch t {
	case Go:
		b = compileGo(ctx, b, u)
	case Rust:
		b = compileRust(ctx, b, u)
	}

	if tr.If("dump_code") {
		tr.Printw("generated code", "code", b[st:])
	}

	return b, nil
}

func newUnit(tab *symbols.Table, prog ir.Program, reserved map[string]struct{}) (*unit, error) {
	u := &unit{
		tab:   tab,
		prog:  prog,
		names: mangle(tab, reserved),
	}

	for i, s := range prog {
		err := u.collectStmt(s)
		if err != nil {
			return nil, errors.Wrap(err, "statement %d", i)
		}
	}

	return u, nil
}

func (u *unit) collectStmt(s ir.Stmt) (err error) {
	switch s := s.(type) {
	case ir.Decl:
		err = u.write(s.Var)
		u.declared.Set(int(s.Var))
	case ir.DeclInit:
		err = u.collectExpr(s.Value)
		if err == nil {
			err = u.write(s.Var)
		}

		u.declared.Set(int(s.Var))
	case ir.Assign:
		err = u.collectExpr(s.Value)
		if err == nil {
			err = u.write(s.Var)
		}
	case ir.Input:
		err = u.write(s.Var)
	case ir.Output:
		err = u.collectExpr(s.Value)
	default:
		return UnsupportedIRNodeError{T: s}
	}

	return err
}

func (u *unit) collectExpr(x ir.Expr) error {
	err := u.collectTerm(x.First)
	if err != nil {
		return err
	}

	for _, op := range x.Rest {
		if op.Op == ast.Mod {
			u.math = true
		}

		err = u.collectTerm(op.Term)
		if err != nil {
			return err
		}
	}

	return nil
}

func (u *unit) collectTerm(x ir.Term) error {
	err := u.collectFactor(x.First)
	if err != nil {
		return err
	}

	for _, op := range x.Rest {
		if op.Op == ast.Pow {
			u.math = true
		}

		err = u.collectFactor(op.Factor)
		if err != nil {
			return err
		}
	}

	return nil
}

func (u *unit) collectFactor(x ir.Factor) error {
	switch x := x.(type) {
	case ir.Literal:
		if !isFinite(float64(x)) {
			u.math = true
		}
	case ir.Var:
		err := u.check(ir.Handle(x))
		if err != nil {
			return err
		}

		u.used.Set(int(x))
		u.read.Set(int(x))
	case ir.Paren:
		return u.collectExpr(x.Expr)
	case ir.Call:
		if x.Func == ast.Signum {
			u.signum = true
		} else {
			u.math = true
		}

		return u.collectExpr(x.Arg)
	case ir.Neg:
		return u.collectFactor(x.Factor)
	default:
		return UnsupportedIRNodeError{T: x}
	}

	return nil
}

func (u *unit) write(h ir.Handle) error {
	err := u.check(h)
	if err != nil {
		return err
	}

	u.used.Set(int(h))

	return nil
}

func (u *unit) check(h ir.Handle) error {
	if h < 0 || int(h) >= len(u.names) {
		return errors.New("handle %d is out of table of %d", h, len(u.names))
	}

	return nil
}

// predeclared are handles used by the program but declared before it,
// such as standard constants or variables of earlier REPL lines.
func (u *unit) predeclared() (r []ir.Handle) {
	pre := u.used.Copy()
	pre.AndNot(u.declared)

	pre.Range(func(i int) bool {
		r = append(r, ir.Handle(i))

		return true
	})

	return r
}

func (u *unit) name(h ir.Handle) string {
	return u.names[h]
}

type UnsupportedIRNodeError struct{ T any }

func (e UnsupportedIRNodeError) Error() string {
	return fmt.Sprintf("unsupported ir node: %T", e.T)
}

func (e UnsupportedTargetError) Error() string {
	return fmt.Sprintf("unsupported target: %q", e.Target)
}
