package compiler

import (
	"fmt"
	"testing"

	"classtab/pkg/ast"
	"classtab/pkg/errors"
	"classtab/pkg/literals"
	"classtab/pkg/vm"
)

// AST builders. Tests construct trees directly; the parser is not part of
// this module.

func tok(line, col int) ast.Token {
	return ast.Token{Line: line, Column: col}
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Token: ast.Token{Literal: name, Line: 1, Column: 1}, Value: name}
}

func str(s string) *ast.StringLiteral {
	return &ast.StringLiteral{Token: ast.Token{Literal: s, Line: 1, Column: 1}, Value: s}
}

func num(f float64) *ast.NumberLiteral {
	return &ast.NumberLiteral{Token: ast.Token{Line: 1, Column: 1}, Value: f}
}

func params(n int) []*ast.Parameter {
	ps := make([]*ast.Parameter, n)
	for i := range ps {
		ps[i] = &ast.Parameter{Name: ident(fmt.Sprintf("p%d", i))}
	}
	return ps
}

func fn(internal string, paramCount int) *ast.FunctionLiteral {
	return &ast.FunctionLiteral{
		InternalName: internal,
		Parameters:   params(paramCount),
		Body:         &ast.BlockStatement{},
	}
}

// method builds a public method of class cls named name; the internal name
// is "#~cls>#name".
func method(cls, name string, paramCount int) *ast.MethodDefinition {
	return &ast.MethodDefinition{
		Token: tok(1, 1),
		Key:   ident(name),
		Value: fn("#~"+cls+">#"+name, paramCount),
		Kind:  ast.MethodNormal,
	}
}

func getter(cls, name string) *ast.MethodDefinition {
	m := method(cls, name, 0)
	m.Kind = ast.MethodGet
	m.Value.InternalName = "#~" + cls + ">#get_" + name
	return m
}

func setter(cls, name string) *ast.MethodDefinition {
	m := method(cls, name, 1)
	m.Kind = ast.MethodSet
	m.Value.InternalName = "#~" + cls + ">#set_" + name
	return m
}

func static(m *ast.MethodDefinition) *ast.MethodDefinition {
	m.Static = true
	return m
}

func private(m *ast.MethodDefinition) *ast.MethodDefinition {
	name := m.Key.(*ast.Identifier).Value
	m.Key = &ast.PrivateIdentifier{Token: m.Token, Value: name}
	return m
}

func computed(m *ast.MethodDefinition, key ast.Expression) *ast.MethodDefinition {
	m.Key = key
	m.Computed = true
	return m
}

func field(name string, annotation ast.Expression) *ast.PropertyDefinition {
	return &ast.PropertyDefinition{
		Token:          tok(1, 1),
		Key:            ident(name),
		TypeAnnotation: annotation,
	}
}

func privateField(name string, annotation ast.Expression) *ast.PropertyDefinition {
	f := field(name, annotation)
	f.Key = &ast.PrivateIdentifier{Token: f.Token, Value: name}
	return f
}

func keyword(k ast.TypeKeyword) *ast.KeywordType {
	return &ast.KeywordType{Keyword: k}
}

func union(types ...ast.Expression) *ast.UnionTypeExpression {
	return &ast.UnionTypeExpression{Types: types}
}

func typeRef(name string) *ast.TypeReference {
	return &ast.TypeReference{Name: ident(name)}
}

func class(name string, members ...ast.ClassMember) *ast.ClassDeclaration {
	c := &ast.ClassDeclaration{Token: tok(1, 1), Members: members}
	if name != "" {
		c.Name = ident(name)
	}
	return c
}

func sendable(c *ast.ClassDeclaration) *ast.ClassDeclaration {
	c.Sendable = true
	return c
}

// functionOf returns the backing function of a method member, nil for
// anything else.
func functionOf(m ast.ClassMember) *ast.FunctionLiteral {
	if md, ok := m.(*ast.MethodDefinition); ok {
		return md.Value
	}
	return nil
}

func program(stmts ...ast.Statement) *ast.Program {
	return &ast.Program{Statements: stmts}
}

// Bytecode helpers.

// makeInstructions flattens opcodes and operands into the expected byte
// stream. Registers and bytes take one byte, uint16 operands two.
func makeInstructions(ops ...interface{}) []byte {
	var instructions []byte
	for _, op := range ops {
		switch v := op.(type) {
		case vm.OpCode:
			instructions = append(instructions, byte(v))
		case Register:
			instructions = append(instructions, byte(v))
		case byte:
			instructions = append(instructions, v)
		case int:
			if v < 0 || v > 255 {
				panic(fmt.Sprintf("Integer operand %d out of byte range", v))
			}
			instructions = append(instructions, byte(v))
		case uint16:
			instructions = append(instructions, byte(v>>8), byte(v&0xff))
		default:
			panic(fmt.Sprintf("Unsupported operand type %T in makeInstructions", op))
		}
	}
	return instructions
}

// opcodes decodes the opcode sequence of a chunk.
func opcodes(t *testing.T, chunk *vm.Chunk) []vm.OpCode {
	t.Helper()
	var ops []vm.OpCode
	for offset := 0; offset < len(chunk.Code); {
		op := vm.OpCode(chunk.Code[offset])
		size := vm.InstructionSize(op)
		if size == 0 {
			t.Fatalf("unknown opcode %d at offset %d", op, offset)
		}
		ops = append(ops, op)
		offset += size
	}
	return ops
}

func compileOK(t *testing.T, prog *ast.Program) *Output {
	t.Helper()
	out, errs := NewCompiler(nil, nil).Compile(prog)
	if len(errs) > 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}
	return out
}

func expectCode(t *testing.T, chunk *vm.Chunk, want []byte) {
	t.Helper()
	if string(chunk.Code) != string(want) {
		t.Errorf("bytecode mismatch\n got: %v\nwant: %v\n%s", chunk.Code, want, chunk.DisassembleChunk("got"))
	}
}

func expectConstants(t *testing.T, chunk *vm.Chunk, want ...string) {
	t.Helper()
	if len(chunk.Constants) != len(want) {
		t.Fatalf("expected %d constants, got %d: %v", len(want), len(chunk.Constants), chunk.Constants)
	}
	for i, w := range want {
		if got := chunk.Constants[i].ToString(); got != w {
			t.Errorf("constant %d: expected %q, got %q", i, w, got)
		}
	}
}

func expectLiterals(t *testing.T, buf *literals.Buffer, want ...literals.Literal) {
	t.Helper()
	if buf.Len() != len(want) {
		t.Fatalf("expected %d literals, got %d:\n%s", len(want), buf.Len(), buf)
	}
	for i, w := range want {
		if got := buf.At(i); got != w {
			t.Errorf("literal %d: expected %s, got %s", i, w, got)
		}
	}
}

func expectInternalError(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected an internal error panic")
		}
		if _, ok := r.(*errors.InternalError); !ok {
			t.Fatalf("expected *errors.InternalError, got %T: %v", r, r)
		}
	}()
	fn()
}
