// Package stdlib registers predefined constants into a fresh symbol table.
package stdlib

import (
	"math"

	"github.com/eba216/MathLang/compiler/symbols"
	"tlog.app/go/errors"
)

type Constant struct {
	Name  string
	Value float64
}

var Constants = []Constant{
	{Name: "pi", Value: math.Pi},
	{Name: "e", Value: math.E},
}

// Init declares Constants in tab.
// It fails if any of them is already declared.
func Init(tab *symbols.Table) error {
	for _, c := range Constants {
		h, err := tab.Insert(c.Name)
		if err != nil {
			return errors.Wrap(err, "constant %v", c.Name)
		}

		tab.SetValue(h, c.Value)
	}

	return nil
}

// NewTable returns a table with Constants already declared.
func NewTable() *symbols.Table {
	tab := symbols.New()

	if err := Init(tab); err != nil {
		panic(err)
	}

	return tab
}
