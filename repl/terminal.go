package repl

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"tlog.app/go/errors"

	"github.com/eba216/MathLang/compiler/ast"
)

// Terminal is a LineReader with line editing, history and completion.
type Terminal struct {
	l *liner.State

	history string
	words   func() []string
}

// NewTerminal takes over the terminal until Close.
// History is loaded from and saved to the history file if it's not empty.
// words returns extra completion candidates, it may be nil.
func NewTerminal(history string, words func() []string) *Terminal {
	t := &Terminal{
		l:       liner.NewLiner(),
		history: history,
		words:   words,
	}

	t.l.SetCtrlCAborts(true)
	t.l.SetWordCompleter(t.complete)

	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = t.l.ReadHistory(f)
			_ = f.Close()
		}
	}

	return t
}

// ReadLine reads a line. Ctrl-C and Ctrl-D are reported as io.EOF.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	line, err := t.l.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		t.l.AppendHistory(line)
	}

	return line, nil
}

func (t *Terminal) Close() (err error) {
	if t.history != "" {
		f, ferr := os.Create(t.history)
		if ferr == nil {
			_, err = t.l.WriteHistory(f)
			_ = f.Close()
		} else {
			err = ferr
		}
	}

	if cerr := t.l.Close(); err == nil {
		err = cerr
	}

	return err
}

func (t *Terminal) complete(line string, pos int) (head string, c []string, tail string) {
	head, tail = line[:pos], line[pos:]

	st := len(head)
	for st > 0 && isWordByte(head[st-1]) {
		st--
	}

	prefix := head[st:]
	head = head[:st]

	var words []string
	if t.words != nil {
		words = t.words()
	}

	return head, Complete(prefix, words), tail
}

// Complete returns sorted keywords, function names, commands and extra words starting with prefix.
func Complete(prefix string, extra []string) (r []string) {
	if prefix == "" {
		return nil
	}

	seen := map[string]struct{}{}

	add := func(l []string) {
		for _, w := range l {
			if _, ok := seen[w]; ok || !strings.HasPrefix(w, prefix) {
				continue
			}

			seen[w] = struct{}{}
			r = append(r, w)
		}
	}

	add(ast.Keywords)
	add(ast.Funcs())
	add(Commands)
	add(extra)

	sort.Strings(r)

	return r
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
