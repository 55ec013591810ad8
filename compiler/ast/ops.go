package ast

import "sort"

type (
	AddOp int
	MulOp int
	Func  int
)

const (
	Add AddOp = iota
	Sub
	Mod
)

const (
	Mul MulOp = iota
	Div
	Pow
)

const (
	Sin Func = iota
	Cos
	Tan
	Asin
	Acos
	Atan
	Sinh
	Cosh
	Tanh
	Asinh
	Acosh
	Atanh
	Exp
	Exp2
	Ln
	Log10
	Log2
	Abs
	Ceil
	Floor
	Signum
	Sqrt

	numFuncs
)

var funcNames = [numFuncs]string{
	Sin:    "sin",
	Cos:    "cos",
	Tan:    "tan",
	Asin:   "asin",
	Acos:   "acos",
	Atan:   "atan",
	Sinh:   "sinh",
	Cosh:   "cosh",
	Tanh:   "tanh",
	Asinh:  "asinh",
	Acosh:  "acosh",
	Atanh:  "atanh",
	Exp:    "exp",
	Exp2:   "exp2",
	Ln:     "ln",
	Log10:  "log10",
	Log2:   "log2",
	Abs:    "abs",
	Ceil:   "ceil",
	Floor:  "floor",
	Signum: "signum",
	Sqrt:   "sqrt",
}

// Short spellings accepted by the parser in addition to the canonical names.
var funcAliases = map[string]Func{
	"log": Log10,
	"lg":  Log2,
	"sgn": Signum,
}

// Keywords can't be used as identifiers.
var Keywords = []string{"var", "in", "out", "mod"}

func LookupFunc(name string) (Func, bool) {
	for f, n := range funcNames {
		if n == name {
			return Func(f), true
		}
	}

	f, ok := funcAliases[name]

	return f, ok
}

// Funcs returns canonical function names and aliases, sorted.
func Funcs() []string {
	l := make([]string, 0, len(funcNames)+len(funcAliases))
	l = append(l, funcNames[:]...)

	for n := range funcAliases {
		l = append(l, n)
	}

	sort.Strings(l)

	return l
}

func IsReserved(name string) bool {
	for _, k := range Keywords {
		if k == name {
			return true
		}
	}

	_, ok := LookupFunc(name)

	return ok
}

func (f Func) String() string {
	if f < 0 || f >= numFuncs {
		return "Func(?)"
	}

	return funcNames[f]
}

func (op AddOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mod:
		return "mod"
	}

	return "AddOp(?)"
}

func (op MulOp) String() string {
	switch op {
	case Mul:
		return "*"
	case Div:
		return "/"
	case Pow:
		return "^"
	}

	return "MulOp(?)"
}
