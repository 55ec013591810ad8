package parse

import (
	"context"
	"strconv"

	"github.com/eba216/MathLang/compiler/ast"
	"tlog.app/go/errors"
)

type (
	Float struct{}
)

// Parse reads a decimal float: 12, 1.5, .5, 3., 1e10, 2.5E-3.
// Sign is not a part of the literal.
func (p Float) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	i = digits(b, st)
	n := i - st

	if i < len(b) && b[i] == '.' {
		j := digits(b, i+1)
		n += j - (i + 1)
		i = j
	}

	if n == 0 {
		return nil, st, errors.New("number expected")
	}

	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		j := i + 1

		if j < len(b) && (b[j] == '+' || b[j] == '-') {
			j++
		}

		if k := digits(b, j); k != j {
			i = k
		}
	}

	v, err := strconv.ParseFloat(string(b[st:i]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, st, errors.Wrap(err, "parse float")
	}

	return ast.Literal{
		Base:  ast.Base{Pos: st, End: i},
		Value: v,
	}, i, nil
}

func digits(b []byte, i int) int {
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}

	return i
}
