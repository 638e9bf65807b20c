package compiler

import (
	"classtab/pkg/vm"
)

// --- Bytecode Emission Helpers ---

func (c *Compiler) emitOpCode(op vm.OpCode, line int) {
	c.chunk.WriteOpCode(op, line)
}

func (c *Compiler) emitByte(b byte) {
	c.chunk.WriteRawByte(b)
}

func (c *Compiler) emitUint16(val uint16) {
	c.chunk.WriteUint16(val)
}

// nameConstant interns a property or function name in the constant pool.
func (c *Compiler) nameConstant(name string) uint16 {
	return c.chunk.AddConstant(vm.String(name))
}

func (c *Compiler) emitLoadConstant(dest Register, constIdx uint16, line int) {
	c.emitOpCode(vm.OpLoadConst, line)
	c.emitByte(byte(dest))
	c.emitUint16(constIdx)
}

func (c *Compiler) emitLoadUndefined(dest Register, line int) {
	c.emitOpCode(vm.OpLoadUndefined, line)
	c.emitByte(byte(dest))
}

func (c *Compiler) emitLoadHole(dest Register, line int) {
	c.emitOpCode(vm.OpLoadHole, line)
	c.emitByte(byte(dest))
}

func (c *Compiler) emitMove(dest, src Register, line int) {
	c.emitOpCode(vm.OpMove, line)
	c.emitByte(byte(dest))
	c.emitByte(byte(src))
}

func (c *Compiler) emitGetGlobal(dest Register, name string, line int) {
	c.emitOpCode(vm.OpGetGlobal, line)
	c.emitByte(byte(dest))
	c.emitUint16(c.nameConstant(name))
}

func (c *Compiler) emitSetGlobal(name string, src Register, line int) {
	c.emitOpCode(vm.OpSetGlobal, line)
	c.emitUint16(c.nameConstant(name))
	c.emitByte(byte(src))
}

func (c *Compiler) emitLoadLexical(dest Register, depth, slot int, line int) {
	c.emitOpCode(vm.OpLoadLexical, line)
	c.emitByte(byte(dest))
	c.emitByte(byte(depth))
	c.emitUint16(uint16(slot))
}

func (c *Compiler) emitStoreLexical(depth, slot int, src Register, line int) {
	c.emitOpCode(vm.OpStoreLexical, line)
	c.emitByte(byte(depth))
	c.emitUint16(uint16(slot))
	c.emitByte(byte(src))
}

func (c *Compiler) emitGetProp(dest, obj Register, name string, line int) {
	c.emitOpCode(vm.OpGetProp, line)
	c.emitByte(byte(dest))
	c.emitByte(byte(obj))
	c.emitUint16(c.nameConstant(name))
}

func (c *Compiler) emitToPropertyKey(dest, src Register, line int) {
	c.emitOpCode(vm.OpToPropertyKey, line)
	c.emitByte(byte(dest))
	c.emitByte(byte(src))
}

func (c *Compiler) emitDefineFunc(dest Register, internalName string, paramCount int, line int) {
	c.emitOpCode(vm.OpDefineFunc, line)
	c.emitByte(byte(dest))
	c.emitUint16(c.nameConstant(internalName))
	c.emitByte(byte(paramCount))
}

// emitDefineClass emits OpDefineClass, or OpDefineSendableClass when sendable.
func (c *Compiler) emitDefineClass(dest Register, ctorName string, literalIdx int, paramCount int, parent Register, sendable bool, line int) {
	op := vm.OpDefineClass
	if sendable {
		op = vm.OpDefineSendableClass
	}
	c.emitOpCode(op, line)
	c.emitByte(byte(dest))
	c.emitUint16(c.nameConstant(ctorName))
	c.emitUint16(uint16(literalIdx))
	c.emitByte(byte(paramCount))
	c.emitByte(byte(parent))
}

func (c *Compiler) emitCreatePrivateProperty(instanceMethods int, literalIdx int, line int) {
	c.emitOpCode(vm.OpCreatePrivateProperty, line)
	c.emitUint16(uint16(instanceMethods))
	c.emitUint16(uint16(literalIdx))
}

func (c *Compiler) emitStoreOwnByName(obj Register, name string, val Register, line int) {
	c.emitOpCode(vm.OpStoreOwnByName, line)
	c.emitByte(byte(obj))
	c.emitUint16(c.nameConstant(name))
	c.emitByte(byte(val))
}

func (c *Compiler) emitStoreOwnByValue(obj, key, val Register, line int) {
	c.emitOpCode(vm.OpStoreOwnByValue, line)
	c.emitByte(byte(obj))
	c.emitByte(byte(key))
	c.emitByte(byte(val))
}

func (c *Compiler) emitDefineGetterSetter(obj, key, getter, setter Register, line int) {
	c.emitOpCode(vm.OpDefineGetterSetter, line)
	c.emitByte(byte(obj))
	c.emitByte(byte(key))
	c.emitByte(byte(getter))
	c.emitByte(byte(setter))
}

func (c *Compiler) emitCallThis(dest, fn, this Register, argCount int, line int) {
	c.emitOpCode(vm.OpCallThis, line)
	c.emitByte(byte(dest))
	c.emitByte(byte(fn))
	c.emitByte(byte(this))
	c.emitByte(byte(argCount))
}

func (c *Compiler) emitNewLexEnv(slots int, line int) {
	c.emitOpCode(vm.OpNewLexEnv, line)
	c.emitUint16(uint16(slots))
}

func (c *Compiler) emitPopLexEnv(line int) {
	c.emitOpCode(vm.OpPopLexEnv, line)
}
