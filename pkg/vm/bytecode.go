package vm

import (
	"fmt"
	"strings"
)

// OpCode defines the type for bytecode instructions.
type OpCode uint8

// Register machine opcodes emitted by the class compiler.
const (
	// Format: OpCode <DestReg> <Operand1> <Operand2> ...
	// 16-bit operands are big endian.

	OpLoadConst     OpCode = 0 // Rx ConstIdx(16): Rx = Constants[ConstIdx]
	OpLoadUndefined OpCode = 1 // Rx: Rx = undefined
	OpLoadHole      OpCode = 2 // Rx: Rx = hole (no superclass sentinel)
	OpMove          OpCode = 3 // Rx Ry: Rx = Ry
	OpGetGlobal     OpCode = 4 // Rx NameIdx(16): Rx = global[Constants[NameIdx]]
	OpSetGlobal     OpCode = 5 // NameIdx(16) Ry: global[Constants[NameIdx]] = Ry
	OpLoadLexical   OpCode = 6 // Rx Depth Slot(16): Rx = env(Depth)[Slot]
	OpStoreLexical  OpCode = 7 // Depth Slot(16) Ry: env(Depth)[Slot] = Ry
	OpGetProp       OpCode = 8 // Rx ObjReg NameIdx(16): Rx = ObjReg[Constants[NameIdx]]
	OpToPropertyKey OpCode = 9 // Rx Ry: Rx = ToPropertyKey(Ry)

	// Closures and classes
	OpDefineFunc            OpCode = 10 // Rx NameIdx(16) ParamCount: Rx = closure over function Constants[NameIdx]
	OpDefineClass           OpCode = 11 // Rx CtorIdx(16) LiteralIdx(16) ParamCount ParentReg: Rx = class from member table
	OpDefineSendableClass   OpCode = 12 // Rx CtorIdx(16) LiteralIdx(16) ParamCount ParentReg: sendable variant of OpDefineClass
	OpCreatePrivateProperty OpCode = 13 // Count(16) LiteralIdx(16): install private table, Count instance methods
	OpStoreOwnByName        OpCode = 14 // ObjReg NameIdx(16) ValReg: define own data property
	OpStoreOwnByValue       OpCode = 15 // ObjReg KeyReg ValReg: define own data property under a computed key
	OpDefineGetterSetter    OpCode = 16 // ObjReg KeyReg GetterReg SetterReg: define accessor pair (undefined halves are left alone)
	OpCallThis              OpCode = 17 // Rx FuncReg ThisReg ArgCount: Rx = FuncReg.call(ThisReg, ...)
	OpReturn                OpCode = 18 // Rx: return Rx

	// Lexical environments
	OpNewLexEnv OpCode = 19 // SlotCount(16): push a fresh environment
	OpPopLexEnv OpCode = 20 // No operands: pop the innermost environment
)

var opNames = [...]string{
	OpLoadConst:             "OpLoadConst",
	OpLoadUndefined:         "OpLoadUndefined",
	OpLoadHole:              "OpLoadHole",
	OpMove:                  "OpMove",
	OpGetGlobal:             "OpGetGlobal",
	OpSetGlobal:             "OpSetGlobal",
	OpLoadLexical:           "OpLoadLexical",
	OpStoreLexical:          "OpStoreLexical",
	OpGetProp:               "OpGetProp",
	OpToPropertyKey:         "OpToPropertyKey",
	OpDefineFunc:            "OpDefineFunc",
	OpDefineClass:           "OpDefineClass",
	OpDefineSendableClass:   "OpDefineSendableClass",
	OpCreatePrivateProperty: "OpCreatePrivateProperty",
	OpStoreOwnByName:        "OpStoreOwnByName",
	OpStoreOwnByValue:       "OpStoreOwnByValue",
	OpDefineGetterSetter:    "OpDefineGetterSetter",
	OpCallThis:              "OpCallThis",
	OpReturn:                "OpReturn",
	OpNewLexEnv:             "OpNewLexEnv",
	OpPopLexEnv:             "OpPopLexEnv",
}

// String returns a human-readable name for the OpCode.
func (op OpCode) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return fmt.Sprintf("UnknownOpcode(%d)", op)
}

// operand describes how one operand byte run is encoded and rendered.
type operand uint8

const (
	opReg    operand = iota // 1 byte, register
	opByte                  // 1 byte, immediate
	opConst                 // 2 bytes, constant pool index
	opU16                   // 2 bytes, immediate
	opLiteral               // 2 bytes, literal buffer index
)

func (o operand) size() int {
	switch o {
	case opConst, opU16, opLiteral:
		return 2
	}
	return 1
}

// operandLayouts gives the operand encoding of every opcode.
var operandLayouts = map[OpCode][]operand{
	OpLoadConst:             {opReg, opConst},
	OpLoadUndefined:         {opReg},
	OpLoadHole:              {opReg},
	OpMove:                  {opReg, opReg},
	OpGetGlobal:             {opReg, opConst},
	OpSetGlobal:             {opConst, opReg},
	OpLoadLexical:           {opReg, opByte, opU16},
	OpStoreLexical:          {opByte, opU16, opReg},
	OpGetProp:               {opReg, opReg, opConst},
	OpToPropertyKey:         {opReg, opReg},
	OpDefineFunc:            {opReg, opConst, opByte},
	OpDefineClass:           {opReg, opConst, opLiteral, opByte, opReg},
	OpDefineSendableClass:   {opReg, opConst, opLiteral, opByte, opReg},
	OpCreatePrivateProperty: {opU16, opLiteral},
	OpStoreOwnByName:        {opReg, opConst, opReg},
	OpStoreOwnByValue:       {opReg, opReg, opReg},
	OpDefineGetterSetter:    {opReg, opReg, opReg, opReg},
	OpCallThis:              {opReg, opReg, opReg, opByte},
	OpReturn:                {opReg},
	OpNewLexEnv:             {opU16},
	OpPopLexEnv:             {},
}

// InstructionSize returns the encoded length of op including the opcode
// byte, or 0 for an unknown opcode.
func InstructionSize(op OpCode) int {
	layout, ok := operandLayouts[op]
	if !ok {
		return 0
	}
	n := 1
	for _, o := range layout {
		n += o.size()
	}
	return n
}

// Chunk represents a sequence of bytecode instructions and associated data.
type Chunk struct {
	Code      []byte  // The bytecode instructions (OpCodes and operands)
	Constants []Value // Constant pool
	Lines     []int   // Line number of each byte; operand bytes repeat their opcode's line
	MaxRegs   int     // Register high-water mark of the code that wrote this chunk
}

// NewChunk creates a new, empty Chunk.
func NewChunk() *Chunk {
	return &Chunk{
		Code:      make([]byte, 0),
		Constants: make([]Value, 0),
		Lines:     make([]int, 0),
	}
}

// GetLine returns the source line of the byte at offset, or 0 when offset
// is out of range.
func (c *Chunk) GetLine(offset int) int {
	if offset < 0 || offset >= len(c.Lines) {
		return 0
	}
	return c.Lines[offset]
}

// WriteOpCode adds an opcode to the chunk.
func (c *Chunk) WriteOpCode(op OpCode, line int) {
	c.Code = append(c.Code, byte(op))
	c.Lines = append(c.Lines, line)
}

// WriteRawByte adds a raw operand byte. It carries the line of the preceding
// opcode.
func (c *Chunk) WriteRawByte(b byte) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, c.lastLine())
}

// WriteUint16 adds a 16-bit operand, big endian.
func (c *Chunk) WriteUint16(val uint16) {
	c.WriteRawByte(byte(val >> 8))
	c.WriteRawByte(byte(val & 0xff))
}

func (c *Chunk) lastLine() int {
	if len(c.Lines) == 0 {
		return 0
	}
	return c.Lines[len(c.Lines)-1]
}

// AddConstant adds a value to the constant pool and returns its index.
// Equal values share one entry.
func (c *Chunk) AddConstant(v Value) uint16 {
	for i, existing := range c.Constants {
		if existing.Is(v) {
			return uint16(i)
		}
	}

	c.Constants = append(c.Constants, v)
	idx := len(c.Constants) - 1
	if idx > 65535 {
		panic("Too many constants in one chunk.")
	}
	return uint16(idx)
}

// --- Disassembly ---

// DisassembleChunk returns a human-readable string representation of the chunk.
func (c *Chunk) DisassembleChunk(name string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("== %s ==\n", name))
	offset := 0
	for offset < len(c.Code) {
		offset = c.disassembleInstruction(&builder, offset)
	}
	return builder.String()
}

// disassembleInstruction appends a single instruction to the builder and
// returns the offset of the next one.
func (c *Chunk) disassembleInstruction(builder *strings.Builder, offset int) int {
	builder.WriteString(fmt.Sprintf("%04d      ", offset))

	instruction := OpCode(c.Code[offset])
	layout, ok := operandLayouts[instruction]
	if !ok {
		builder.WriteString(fmt.Sprintf("Unknown opcode %d\n", instruction))
		return offset + 1
	}

	size := InstructionSize(instruction)
	if offset+size > len(c.Code) {
		builder.WriteString(fmt.Sprintf("%s (missing operands)\n", instruction))
		return len(c.Code)
	}

	parts := make([]string, 0, len(layout))
	pos := offset + 1
	for _, o := range layout {
		parts = append(parts, c.formatOperand(o, pos))
		pos += o.size()
	}
	if len(parts) == 0 {
		builder.WriteString(fmt.Sprintf("%s\n", instruction))
		return pos
	}
	builder.WriteString(fmt.Sprintf("%-16s %s\n", instruction, strings.Join(parts, ", ")))
	return pos
}

func (c *Chunk) formatOperand(o operand, pos int) string {
	switch o {
	case opReg:
		return fmt.Sprintf("R%d", c.Code[pos])
	case opByte:
		return fmt.Sprintf("%d", c.Code[pos])
	case opU16:
		return fmt.Sprintf("%d", c.readUint16(pos))
	case opLiteral:
		return fmt.Sprintf("Lit %d", c.readUint16(pos))
	case opConst:
		idx := c.readUint16(pos)
		if int(idx) >= len(c.Constants) {
			return fmt.Sprintf("%d (invalid constant index)", idx)
		}
		return fmt.Sprintf("%d ('%s')", idx, c.Constants[idx].ToString())
	}
	return "?"
}

func (c *Chunk) readUint16(pos int) uint16 {
	return uint16(c.Code[pos])<<8 | uint16(c.Code[pos+1])
}
