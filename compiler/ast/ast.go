package ast

type (
	Node interface{}

	Base struct {
		Pos int
		End int
	}

	Program struct {
		Base `tlog:",embed"`

		Stmts []Stmt
	}

	Stmt interface {
		Span() Base
		stmt()
	}

	Factor interface {
		Span() Base
		factor()
	}

	// Decl is `var name`.
	Decl struct {
		Base `tlog:",embed"`

		Name Ident
	}

	// DeclInit is `var name = expr`.
	DeclInit struct {
		Base `tlog:",embed"`

		Name  Ident
		Value Expr
	}

	Assign struct {
		Base `tlog:",embed"`

		Name  Ident
		Value Expr
	}

	Input struct {
		Base `tlog:",embed"`

		Name Ident
	}

	Output struct {
		Base `tlog:",embed"`

		Value Expr
	}

	Expr struct {
		Base `tlog:",embed"`

		First Term
		Rest  []ExprOp
	}

	ExprOp struct {
		Op   AddOp
		Term Term
	}

	Term struct {
		Base `tlog:",embed"`

		First Factor
		Rest  []TermOp
	}

	TermOp struct {
		Op     MulOp
		Factor Factor
	}

	Ident struct {
		Base `tlog:",embed"`

		Name string
	}

	Literal struct {
		Base `tlog:",embed"`

		Value float64
	}

	Paren struct {
		Base `tlog:",embed"`

		Expr Expr
	}

	Call struct {
		Base `tlog:",embed"`

		Func Func
		Arg  Expr
	}

	Neg struct {
		Base `tlog:",embed"`

		Factor Factor
	}
)

func (b Base) Span() Base { return b }

func (Decl) stmt()     {}
func (DeclInit) stmt() {}
func (Assign) stmt()   {}
func (Input) stmt()    {}
func (Output) stmt()   {}

func (Ident) factor()   {}
func (Literal) factor() {}
func (Paren) factor()   {}
func (Call) factor()    {}
func (Neg) factor()     {}
