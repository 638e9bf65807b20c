package vm

import (
	"strings"
	"testing"
)

func TestChunkWrite(t *testing.T) {
	c := NewChunk()
	c.WriteOpCode(OpLoadConst, 3)
	c.WriteRawByte(1)
	c.WriteUint16(0x0102)

	want := []byte{byte(OpLoadConst), 1, 0x01, 0x02}
	if string(c.Code) != string(want) {
		t.Fatalf("Code = %v, want %v", c.Code, want)
	}
	if len(c.Lines) != len(c.Code) {
		t.Fatalf("Lines has %d entries for %d code bytes", len(c.Lines), len(c.Code))
	}
	for i := range c.Code {
		if c.GetLine(i) != 3 {
			t.Errorf("GetLine(%d) = %d, want 3", i, c.GetLine(i))
		}
	}
	if c.GetLine(99) != 0 {
		t.Errorf("GetLine out of range should be 0")
	}
}

func TestAddConstantDeduplicates(t *testing.T) {
	c := NewChunk()
	a := c.AddConstant(String("prototype"))
	b := c.AddConstant(Number(2))
	again := c.AddConstant(String("prototype"))
	if a != again {
		t.Errorf("expected shared index, got %d and %d", a, again)
	}
	if a == b {
		t.Errorf("distinct constants share index %d", a)
	}
	if len(c.Constants) != 2 {
		t.Errorf("len(Constants) = %d, want 2", len(c.Constants))
	}
}

func TestInstructionSize(t *testing.T) {
	tests := []struct {
		op   OpCode
		want int
	}{
		{OpLoadUndefined, 2},
		{OpMove, 3},
		{OpLoadConst, 4},
		{OpStoreLexical, 5},
		{OpDefineClass, 8},
		{OpCreatePrivateProperty, 5},
		{OpDefineGetterSetter, 5},
		{OpCode(200), 0},
	}
	for _, tt := range tests {
		if got := InstructionSize(tt.op); got != tt.want {
			t.Errorf("InstructionSize(%s) = %d, want %d", tt.op, got, tt.want)
		}
	}
}

func TestDisassembleChunk(t *testing.T) {
	c := NewChunk()
	ctor := c.AddConstant(String("#~A=A"))
	proto := c.AddConstant(String("prototype"))

	c.WriteOpCode(OpLoadHole, 1)
	c.WriteRawByte(0)
	c.WriteOpCode(OpDefineClass, 1)
	c.WriteRawByte(1)
	c.WriteUint16(ctor)
	c.WriteUint16(4)
	c.WriteRawByte(2)
	c.WriteRawByte(0)
	c.WriteOpCode(OpGetProp, 2)
	c.WriteRawByte(2)
	c.WriteRawByte(1)
	c.WriteUint16(proto)
	c.WriteOpCode(OpStoreLexical, 2)
	c.WriteRawByte(0)
	c.WriteUint16(3)
	c.WriteRawByte(2)

	out := c.DisassembleChunk("class A")
	expected := []string{
		"== class A ==",
		"0000      OpLoadHole       R0",
		"0002      OpDefineClass    R1, 0 ('#~A=A'), Lit 4, 2, R0",
		"0010      OpGetProp        R2, R1, 1 ('prototype')",
		"0015      OpStoreLexical   0, 3, R2",
	}
	for _, line := range expected {
		if !strings.Contains(out, line) {
			t.Errorf("disassembly missing %q\n%s", line, out)
		}
	}
}

func TestDisassembleTruncated(t *testing.T) {
	c := NewChunk()
	c.WriteOpCode(OpMove, 1)
	c.WriteRawByte(0)

	out := c.DisassembleChunk("bad")
	if !strings.Contains(out, "OpMove (missing operands)") {
		t.Errorf("expected truncated instruction notice, got:\n%s", out)
	}
	if OpCode(250).String() != "UnknownOpcode(250)" {
		t.Errorf("unexpected name for unknown opcode: %s", OpCode(250))
	}
}
