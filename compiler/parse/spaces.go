package parse

import (
	"context"

	"github.com/eba216/MathLang/compiler/ast"
)

type (
	Skipper interface {
		Skip(b []byte, st int) int
	}

	Spaces uint64

	// Blanks skips spaces, line breaks and # comments.
	Blanks struct{}

	Spacer struct {
		Spaces Skipper
		Of     Parser
	}
)

var (
	SpaceAll = NewSpaces(' ', '\t', '\r', '\n')

	Blank = Blanks{}
)

func NewSpaces(skip ...byte) (ss Spaces) {
	for _, q := range skip {
		if q >= 64 {
			panic("too high char code")
		}

		ss |= 1 << q
	}

	return
}

func (s Spaces) Skip(b []byte, st int) (i int) {
	i = st

	for i < len(b) && b[i] < 64 && s&(1<<b[i]) != 0 {
		i++
	}

	return
}

func (Blanks) Skip(b []byte, st int) (i int) {
	i = SpaceAll.Skip(b, st)

	for i < len(b) && b[i] == '#' {
		for i < len(b) && b[i] != '\n' {
			i++
		}

		i = SpaceAll.Skip(b, i)
	}

	return i
}

func Spaced(p Parser, ss Skipper) Spacer {
	return Spacer{
		Spaces: ss,
		Of:     p,
	}
}

// sp skips blanks before p.
func sp(p Parser) Spacer {
	return Spaced(p, Blank)
}

func (p Spacer) Parse(ctx context.Context, b []byte, st int) (x ast.Node, i int, err error) {
	vst := p.Spaces.Skip(b, st)

	x, i, err = p.Of.Parse(ctx, b, vst)
	if err != nil && i == vst {
		i = st
	}

	return
}
