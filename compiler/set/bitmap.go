package set

import (
	"math/bits"

	"tlog.app/go/tlog/tlwire"
)

type (
	// Bitmap is a set of small non-negative ints.
	// Zero value is an empty set ready to use.
	Bitmap struct {
		w []uint64
	}
)

func (s *Bitmap) Set(i int) {
	w, bit := i/64, uint(i%64)

	for w >= len(s.w) {
		s.w = append(s.w, 0)
	}

	s.w[w] |= 1 << bit
}

func (s *Bitmap) IsSet(i int) bool {
	if s == nil || i < 0 || i/64 >= len(s.w) {
		return false
	}

	return s.w[i/64]&(1<<uint(i%64)) != 0
}

// AndNot removes members of x from s.
func (s *Bitmap) AndNot(x Bitmap) {
	for i := range s.w {
		if i == len(x.w) {
			break
		}

		s.w[i] &^= x.w[i]
	}
}

func (s *Bitmap) Copy() Bitmap {
	return Bitmap{w: append([]uint64(nil), s.w...)}
}

// Range calls f for each member in increasing order until f returns false.
func (s *Bitmap) Range(f func(i int) bool) {
	for w, x := range s.w {
		for x != 0 {
			bit := bits.TrailingZeros64(x)
			x &^= 1 << bit

			if !f(w*64 + bit) {
				return
			}
		}
	}
}

func (s Bitmap) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	if s.w == nil {
		return e.AppendNil(b)
	}

	b = e.AppendTag(b, tlwire.Array, -1)

	s.Range(func(i int) bool {
		b = e.AppendInt(b, i)

		return true
	})

	return e.AppendBreak(b)
}
