package parse

import (
	"bytes"
	"context"

	"github.com/eba216/MathLang/compiler/ast"
	"tlog.app/go/errors"
)

type (
	Const []byte

	// Keyword is a Const which must not be followed by a letter.
	Keyword []byte

	// Ident is a non-reserved word of ascii letters.
	Ident struct{}

	// FuncName is a reserved function name like sin or log10.
	FuncName struct{}

	ReservedWordError struct {
		Word string
	}
)

func (p Const) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	if bytes.HasPrefix(b[st:], p) {
		return Const(b[st : st+len(p)]), st + len(p), nil
	}

	return nil, st, errors.New("%q expected", []byte(p))
}

func (p Keyword) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	i = st + len(p)

	if !bytes.HasPrefix(b[st:], p) || i < len(b) && isLetter(b[i]) {
		return nil, st, errors.New("%q expected", []byte(p))
	}

	return Keyword(b[st:i]), i, nil
}

func (p Ident) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	i = st

	for i < len(b) && isLetter(b[i]) {
		i++
	}

	if i == st {
		return nil, st, errors.New("identifier expected")
	}

	name := string(b[st:i])

	if ast.IsReserved(name) {
		return nil, st, ReservedWordError{Word: name}
	}

	return ast.Ident{
		Base: ast.Base{Pos: st, End: i},
		Name: name,
	}, i, nil
}

func (p FuncName) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	i = st

	for i < len(b) && isLetter(b[i]) {
		i++
	}

	if i == st {
		return nil, st, errors.New("function name expected")
	}

	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}

	f, ok := ast.LookupFunc(string(b[st:i]))
	if !ok {
		return nil, st, errors.New("unknown function: %s", b[st:i])
	}

	return f, i, nil
}

func (e ReservedWordError) Error() string {
	return "reserved word used as identifier: " + e.Word
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
