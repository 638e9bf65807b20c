package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"classtab/pkg/source"
)

func TestDisplayErrorsFromFile(t *testing.T) {
	src := source.FromFile("shapes/circle.ets", "@Sendable\nclass Circle {\n\tradius = 1;\n}\n")
	err := &CompileError{
		Position: Position{Line: 3, Column: 2},
		Msg:      "sendable fields must have an explicit type annotation",
	}

	var buf bytes.Buffer
	DisplayErrors(&buf, src, []Error{err})
	want := "shapes/circle.ets:3:2: Compile Error: sendable fields must have an explicit type annotation\n" +
		"  \tradius = 1;\n" +
		"  \t^\n\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestDisplayErrorsEval(t *testing.T) {
	src := source.NewEvalSource("class A extends I {}")
	err := &CompileError{Position: Position{Line: 1, Column: 17}, Msg: "bad heritage"}

	var buf bytes.Buffer
	DisplayErrors(&buf, src, []Error{err})
	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "Compile Error at 1:17: bad heritage" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[2] != "  "+strings.Repeat(" ", 16)+"^" {
		t.Errorf("caret misplaced: %q", lines[2])
	}
}

func TestDisplayErrorsWithoutLine(t *testing.T) {
	var buf bytes.Buffer
	DisplayErrors(&buf, nil, []Error{&InternalError{Msg: "lost"}})
	if got := buf.String(); got != "Internal Error: lost\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestDisplayErrorsPrefersPositionSource(t *testing.T) {
	other := source.FromFile("other.ets", "class B {}")
	err := &CompileError{Position: Position{Line: 1, Column: 7, Source: other}, Msg: "m"}
	var buf bytes.Buffer
	DisplayErrors(&buf, source.NewEvalSource(""), []Error{err})
	if !strings.HasPrefix(buf.String(), "other.ets:1:7:") {
		t.Errorf("expected the error's own source, got %q", buf.String())
	}
}

func TestCaretPaddingWideRunes(t *testing.T) {
	// Each CJK rune takes two cells.
	if got := caretPadding("名前 = 1", 4); got != "     " {
		t.Errorf("expected 5 cells of padding, got %q", got)
	}
	if got := caretPadding("\tx", 2); got != "\t" {
		t.Errorf("expected tab padding, got %q", got)
	}
}

func TestCompileErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := (&CompileError{Position: Position{Line: 2, Column: 4}, Msg: "outer"}).CausedBy(cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
	if err.Error() != "Compile Error at 2:4: outer" {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
	if err.Kind() != "Compile" {
		t.Errorf("unexpected kind %q", err.Kind())
	}
}

func TestUnreachablePanics(t *testing.T) {
	defer func() {
		r := recover()
		ie, ok := r.(*InternalError)
		if !ok {
			t.Fatalf("expected *InternalError, got %T", r)
		}
		if ie.Error() != "Internal Error at 5:1: unexpected getter" {
			t.Errorf("unexpected message %q", ie.Error())
		}
	}()
	Unreachable(Position{Line: 5, Column: 1}, "unexpected %s", "getter")
}
