package back

import (
	"math"
	"strconv"
	"strings"

	"github.com/eba216/MathLang/compiler/symbols"
)

var goReserved = words(
	// keywords
	"break case chan const continue default defer else fallthrough for func go goto if import",
	"interface map package range return select struct switch type var",
	// predeclared
	"any bool byte comparable complex64 complex128 error float32 float64 int int8 int16 int32 int64",
	"rune string uint uint8 uint16 uint32 uint64 uintptr true false iota nil",
	"append cap clear close complex copy delete imag len make max min new panic print println real recover",
	// generated program
	"main bufio fmt math os strconv strings stdin input output num signum",
)

var rustReserved = words(
	"as break const continue crate else enum extern false fn for if impl in let loop match mod move mut",
	"pub ref return self Self static struct super trait true type unsafe use where while",
	"async await dyn abstract become box do final macro override priv typeof unsized virtual yield try union",
	"main std f64 input output",
)

func words(lines ...string) map[string]struct{} {
	m := make(map[string]struct{})

	for _, l := range lines {
		for _, w := range strings.Fields(l) {
			m[w] = struct{}{}
		}
	}

	return m
}

// mangle assigns each handle of tab a unique identifier which is not reserved.
// Source names consist of letters only, so appending '_' can't hit another source name.
func mangle(tab *symbols.Table, reserved map[string]struct{}) []string {
	names := make([]string, tab.Len())
	taken := make(map[string]struct{}, tab.Len())

	for h := range names {
		n := tab.Name(symbols.Handle(h))
		if n == "" {
			n = "v" + strconv.Itoa(h)
		}

		for {
			_, res := reserved[n]
			_, dup := taken[n]

			if !res && !dup {
				break
			}

			n += "_"
		}

		taken[n] = struct{}{}
		names[h] = n
	}

	return names
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// floatLit formats finite v as a float literal with a fraction or an exponent.
func floatLit(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)

	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}
