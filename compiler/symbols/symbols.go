// Package symbols maps variable names to stable handles and stores their values.
//
// Table is an arena: a Handle is an index into it,
// valid for the table's lifetime and never reused.
// It's owned by one session and not safe for concurrent use.
package symbols

import (
	"tlog.app/go/errors"
)

type (
	Handle int

	Table struct {
		names  []string
		values []float64

		byName map[string]Handle
	}

	Entry struct {
		Handle Handle
		Name   string
		Value  float64
	}
)

var (
	ErrDuplicate = errors.New("duplicate name")
	ErrNotFound  = errors.New("name not found")
)

func New() *Table {
	return &Table{
		byName: make(map[string]Handle),
	}
}

// Insert allocates a new handle with value 0.
func (t *Table) Insert(name string) (Handle, error) {
	if _, ok := t.byName[name]; ok {
		return -1, errors.Wrap(ErrDuplicate, "%v", name)
	}

	h := Handle(len(t.names))

	t.names = append(t.names, name)
	t.values = append(t.values, 0)
	t.byName[name] = h

	return h, nil
}

func (t *Table) Find(name string) (Handle, error) {
	h, ok := t.byName[name]
	if !ok {
		return -1, errors.Wrap(ErrNotFound, "%v", name)
	}

	return h, nil
}

func (t *Table) Name(h Handle) string { return t.names[h] }

func (t *Table) Value(h Handle) float64 { return t.values[h] }

func (t *Table) SetValue(h Handle, v float64) { t.values[h] = v }

func (t *Table) Len() int { return len(t.names) }

// Each calls f for every entry in insertion order.
func (t *Table) Each(f func(h Handle, name string, value float64)) {
	for i, name := range t.names {
		f(Handle(i), name, t.values[i])
	}
}

// Entries returns a snapshot of the table in insertion order.
func (t *Table) Entries() []Entry {
	res := make([]Entry, len(t.names))

	t.Each(func(h Handle, name string, value float64) {
		res[h] = Entry{Handle: h, Name: name, Value: value}
	})

	return res
}
