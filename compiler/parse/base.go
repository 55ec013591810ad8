package parse

import (
	"context"
	"fmt"
	"strings"

	"github.com/eba216/MathLang/compiler/ast"
	"tlog.app/go/errors"
)

type (
	AllOf []Parser

	AnyOf []Parser
)

func (p AllOf) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	i = st

	res := make([]ast.Node, len(p))

	for j, r := range p {
		x, i, err = r.Parse(ctx, b, i)
		if err != nil {
			return nil, i, err
		}

		res[j] = x
	}

	return res, i, nil
}

// AnyOf is an ordered choice. The first alternative to succeed wins.
// If all of them fail, the error of the first one that consumed any input is reported.
func (p AnyOf) Parse(ctx context.Context, b []byte, st int) (_ ast.Node, i int, err error) {
	for _, r := range p {
		x, j, e := r.Parse(ctx, b, st)
		if e == nil {
			return x, j, nil
		}
		if j == st {
			continue
		}
		if err == nil {
			i = j
			err = errors.Wrap(e, "%v", name(r))
		}
	}

	if err != nil {
		return
	}

	return nil, st, errors.New("expected %v", joinHuman(p...))
}

func name(p Parser) string {
	switch p := p.(type) {
	case Spacer:
		return name(p.Of)
	case Const:
		return fmt.Sprintf("%q", []byte(p))
	case Keyword:
		return fmt.Sprintf("%q", []byte(p))
	}

	n := fmt.Sprintf("%T", p)

	return strings.TrimPrefix(n, "parse.")
}

func joinHuman(l ...Parser) string {
	switch len(l) {
	case 0:
		return "<none>"
	case 1:
		return name(l[0])
	}

	var b strings.Builder

	for i, r := range l {
		if i+1 == len(l) {
			b.WriteString(" or ")
		} else if i != 0 {
			b.WriteString(", ")
		}

		b.WriteString(name(r))
	}

	return b.String()
}
