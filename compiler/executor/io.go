package executor

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tlog.app/go/errors"
)

type (
	// Input supplies one line of text per `in` statement.
	Input interface {
		ReadLine(prompt string) (string, error)
	}

	// Output receives one value per `out` statement.
	Output interface {
		WriteValue(v float64) error
	}

	InputFunc  func(prompt string) (string, error)
	OutputFunc func(v float64) error

	LineInput struct {
		r       *bufio.Reader
		prompts io.Writer
	}

	TaggedWriter struct {
		w   io.Writer
		Tag string
	}

	IOFailure struct {
		Op  string
		Err error
	}
)

const (
	InputPrompt = "<input>: "
	OutputTag   = "<output>: "
)

// NewLineInput reads lines from r. Prompts are written to prompts if it's not nil.
func NewLineInput(r io.Reader, prompts io.Writer) *LineInput {
	return &LineInput{
		r:       bufio.NewReader(r),
		prompts: prompts,
	}
}

func (in *LineInput) ReadLine(prompt string) (string, error) {
	if in.prompts != nil {
		_, _ = io.WriteString(in.prompts, prompt)
	}

	line, err := in.r.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}

	return line, err
}

func NewTaggedWriter(w io.Writer) *TaggedWriter {
	return &TaggedWriter{
		w:   w,
		Tag: OutputTag,
	}
}

func (w *TaggedWriter) WriteValue(v float64) error {
	_, err := fmt.Fprintf(w.w, "%s%s\n", w.Tag, FormatValue(v))
	return err
}

func (f InputFunc) ReadLine(prompt string) (string, error) { return f(prompt) }

func (f OutputFunc) WriteValue(v float64) error { return f(v) }

// ReadValue reads a line and parses it as a number.
// Unparsable or missing input is 0.
func ReadValue(in Input) (float64, error) {
	line, err := in.ReadLine(InputPrompt)
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, IOFailure{Op: "input", Err: err}
	}

	return ParseValue(line), nil
}

func ParseValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}

	return v
}

// FormatValue is the shortest decimal representation which parses back to v.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (e IOFailure) Error() string {
	return fmt.Sprintf("%v: %v", e.Op, e.Err)
}

func (e IOFailure) Unwrap() error { return e.Err }
