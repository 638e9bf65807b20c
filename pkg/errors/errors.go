package errors

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"

	"classtab/pkg/source"
)

// Error is the interface implemented by all errors reported by the class compiler.
type Error interface {
	error
	Pos() Position
	Kind() string // "Compile" or "Internal"
	// Message returns the error message without position info.
	Message() string
	Unwrap() error
}

// --- Concrete Error Types ---

// CompileError is a user-facing error in the compiled program. It aborts the
// compilation of the enclosing unit.
type CompileError struct {
	Position
	Msg   string
	Cause error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("Compile Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *CompileError) Pos() Position   { return e.Position }
func (e *CompileError) Kind() string    { return "Compile" }
func (e *CompileError) Message() string { return e.Msg }
func (e *CompileError) Unwrap() error   { return e.Cause }
func (e *CompileError) CausedBy(cause error) *CompileError {
	e.Cause = cause
	return e
}

// InternalError marks a broken compiler invariant (an AST shape the compiler
// must never see). It is raised with panic and is never recovered by the
// compiler itself.
type InternalError struct {
	Position
	Msg string
}

func (e *InternalError) Error() string {
	if !e.IsValid() {
		return fmt.Sprintf("Internal Error: %s", e.Msg)
	}
	return fmt.Sprintf("Internal Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *InternalError) Pos() Position   { return e.Position }
func (e *InternalError) Kind() string    { return "Internal" }
func (e *InternalError) Message() string { return e.Msg }
func (e *InternalError) Unwrap() error   { return nil }

// Unreachable panics with an InternalError.
func Unreachable(pos Position, format string, args ...any) {
	panic(&InternalError{Position: pos, Msg: fmt.Sprintf(format, args...)})
}

// --- Error Reporting ---

// DisplayErrors writes errors in a user-friendly format: the location, the
// message, the offending source line and a caret under the reported column.
func DisplayErrors(w io.Writer, src *source.SourceFile, errs []Error) {
	for _, err := range errs {
		pos := err.Pos()
		file := src
		if pos.Source != nil {
			file = pos.Source
		}

		var line string
		ok := false
		if file != nil {
			line, ok = file.Line(pos.Line)
		}
		if !ok {
			fmt.Fprintf(w, "%s Error: %s\n", err.Kind(), err.Message())
			continue
		}

		if file.IsFile() {
			fmt.Fprintf(w, "%s:%d:%d: %s Error: %s\n", file.DisplayPath(), pos.Line, pos.Column, err.Kind(), err.Message())
		} else {
			fmt.Fprintf(w, "%s Error at %d:%d: %s\n", err.Kind(), pos.Line, pos.Column, err.Message())
		}
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(line, "\t "))
		fmt.Fprintf(w, "  %s^\n", caretPadding(line, pos.Column))
		fmt.Fprintln(w)
	}
}

// caretPadding returns the whitespace that moves a caret under the given
// 1-based rune column. Tabs are kept so terminals align them the same way
// as the source line; East Asian wide runes take two cells.
func caretPadding(line string, column int) string {
	var b strings.Builder
	i := 1
	for _, r := range line {
		if i >= column {
			break
		}
		switch {
		case r == '\t':
			b.WriteByte('\t')
		case isWide(r):
			b.WriteString("  ")
		default:
			b.WriteByte(' ')
		}
		i++
	}
	return b.String()
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}
