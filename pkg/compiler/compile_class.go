package compiler

import (
	"fmt"

	"classtab/pkg/ast"
	"classtab/pkg/errors"
	"classtab/pkg/literals"
	"classtab/pkg/scope"
)

// classContext is the code generation state of one class definition.
type classContext struct {
	class *ast.ClassDeclaration
	env   *ClassEnvironment
	line  int

	parentReg Register
	classReg  Register
	protoReg  Register // BadRegister until first needed

	// keyRegs holds the evaluated keys of computed public methods by
	// member index.
	keyRegs map[int]Register
	pushed  int // lexical environments entered
	regs    []Register
}

func (c *Compiler) newClassContext(env *ClassEnvironment) *classContext {
	return &classContext{
		class:     env.Class,
		env:       env,
		line:      env.Class.Token.Line,
		parentReg: BadRegister,
		classReg:  BadRegister,
		protoReg:  BadRegister,
		keyRegs:   make(map[int]Register),
	}
}

func (c *Compiler) allocFor(ctx *classContext) Register {
	reg := c.regAlloc.Alloc()
	ctx.regs = append(ctx.regs, reg)
	return reg
}

func (c *Compiler) releaseContext(ctx *classContext) {
	for i := len(ctx.regs) - 1; i >= 0; i-- {
		c.regAlloc.Free(ctx.regs[i])
	}
	ctx.regs = nil
}

// CompileClass emits the definition of class and leaves the class value in
// dest. Ambient classes emit nothing and return BadRegister.
func (c *Compiler) CompileClass(class *ast.ClassDeclaration, dest Register) (Register, errors.Error) {
	if class.Declare {
		log.Debugf("class %s is ambient, nothing to emit", className(class))
		return BadRegister, nil
	}
	env, ok := c.envs[class]
	if !ok {
		errors.Unreachable(positionOf(class), "class %s was not analyzed", className(class))
	}
	c.propertyCounts[class] = EstimatePropertyCount(class)

	ctx := c.newClassContext(env)
	defer c.releaseContext(ctx)
	if class.Sendable {
		return c.compileSendableClass(ctx, dest)
	}
	return c.compileRegularClass(ctx, dest)
}

func (c *Compiler) compileRegularClass(ctx *classContext, dest Register) (Register, errors.Error) {
	class, env := ctx.class, ctx.env
	cs := env.Scope

	// 1. heritage
	if err := c.compileHeritage(ctx); err != nil {
		return BadRegister, err
	}

	// 2. computed keys
	c.enterClassEnvironments(ctx)
	if env.HasComputedKey {
		if err := c.compileComputedKeys(ctx); err != nil {
			return BadRegister, err
		}
	}

	// 3. public table and class definition
	table, compiled := BuildPublicTable(class, "")
	tableIdx := c.literals.Add(table)
	ctx.classReg = c.allocFor(ctx)
	c.emitDefineClass(ctx.classReg, constructorInternalName(class), tableIdx, constructorParamCount(class),
		ctx.parentReg, false, ctx.line)

	// 4. own name
	if err := c.bindClassName(ctx); err != nil {
		return BadRegister, err
	}

	// 5. static brand
	if slot, ok := cs.StaticBrandSlot(); ok {
		c.emitStoreLexical(0, slot, ctx.classReg, ctx.line)
	}

	// 6. members the table did not cover
	c.installRemaining(ctx, compiled)

	// 7. private members
	if env.HasPrivateElement {
		private := c.literals.Add(BuildPrivateTable(class))
		c.emitCreatePrivateProperty(env.PrivateInstanceMethodCount, private, ctx.line)
	}

	// 8-9. result and static initialization
	c.finishClass(ctx, dest)
	c.leaveClassEnvironments(ctx)
	return dest, nil
}

// compileHeritage evaluates the superclass expression in the scope
// enclosing the class, or loads the hole sentinel.
func (c *Compiler) compileHeritage(ctx *classContext) errors.Error {
	ctx.parentReg = c.allocFor(ctx)
	if ctx.class.SuperClass == nil {
		c.emitLoadHole(ctx.parentReg, ctx.line)
		return nil
	}
	_, err := c.compileExpression(ctx.class.SuperClass, ctx.parentReg, ctx.env.Scope.Outer)
	return err
}

// enterClassEnvironments creates the class lexical environment and the
// private brand environment when the class scope has slots in them.
func (c *Compiler) enterClassEnvironments(ctx *classContext) {
	cs := ctx.env.Scope
	if cs.HasEnvironment() {
		c.emitNewLexEnv(cs.SlotCount(), ctx.line)
		ctx.pushed++
	}
	if cs.HasPrivateEnvironment() && cs.PrivateEnvironment().HasEnvironment() {
		c.emitNewLexEnv(cs.PrivateEnvironment().SlotCount(), ctx.line)
		ctx.pushed++
	}
}

func (c *Compiler) leaveClassEnvironments(ctx *classContext) {
	for ; ctx.pushed > 0; ctx.pushed-- {
		c.emitPopLexEnv(ctx.line)
	}
}

// compileComputedKeys evaluates every computed key once, in source order.
// Field keys are cached in their reserved class slot; method keys stay in
// registers for the fallback installer.
func (c *Compiler) compileComputedKeys(ctx *classContext) errors.Error {
	cs := ctx.env.Scope
	from := cs.Innermost()
	for i, m := range ctx.class.Members {
		switch member := m.(type) {
		case *ast.PropertyDefinition:
			if !member.NeedsKeyCompile() {
				continue
			}
			slot, ok := cs.SlotOf(member.Key)
			if !ok {
				// Skipped by the environment pass.
				continue
			}
			line := member.Token.Line
			tmp := c.regAlloc.Alloc()
			if _, err := c.compileExpression(member.Key, tmp, from); err != nil {
				c.regAlloc.Free(tmp)
				return err
			}
			c.emitToPropertyKey(tmp, tmp, line)
			c.emitStoreLexical(cs.ClassEnvDepth(), slot, tmp, line)
			c.regAlloc.Free(tmp)

		case *ast.MethodDefinition:
			info := classifyMember(m)
			if !info.Computed || info.Private || !installable(info) {
				continue
			}
			reg := c.allocFor(ctx)
			if _, err := c.compileExpression(member.Key, reg, from); err != nil {
				return err
			}
			c.emitToPropertyKey(reg, reg, member.Token.Line)
			ctx.keyRegs[i] = reg
		}
	}
	return nil
}

// bindClassName stores the class value under its own name.
func (c *Compiler) bindClassName(ctx *classContext) errors.Error {
	class := ctx.class
	if class.IsAnonymous() {
		return nil
	}
	name := class.Name.Value
	line := class.Name.Token.Line
	binding, depth, found := ctx.env.Scope.Innermost().Resolve(name)
	if !found {
		c.emitSetGlobal(name, ctx.classReg, line)
		return nil
	}
	switch binding.Kind {
	case scope.Local:
		c.emitMove(Register(binding.Register), ctx.classReg, line)
	case scope.Lexical:
		c.emitStoreLexical(depth, binding.Slot, ctx.classReg, line)
	case scope.Global, scope.ModuleVar:
		c.emitSetGlobal(name, ctx.classReg, line)
	default:
		return NewCompileError(class.Name, fmt.Sprintf("class name '%s' conflicts with %s '%s'", name, binding.Kind, name))
	}
	return nil
}

// finishClass reloads the class value into dest and runs the static
// initializer with the class as receiver.
func (c *Compiler) finishClass(ctx *classContext, dest Register) {
	c.emitMove(dest, ctx.classReg, ctx.line)
	if !ctx.env.NeedsStaticInitializer {
		return
	}
	initializer := ctx.env.StaticInitializer
	fnReg := c.regAlloc.Alloc()
	c.emitDefineFunc(fnReg, initializer.InternalName, initializer.FormalParamCount(), ctx.line)
	c.emitCallThis(dest, fnReg, ctx.classReg, 0, ctx.line)
	c.emitMove(dest, ctx.classReg, ctx.line)
	c.regAlloc.Free(fnReg)
}

// prototype returns the register holding the class prototype, loading it
// on first use.
func (c *Compiler) prototype(ctx *classContext, line int) Register {
	if ctx.protoReg == BadRegister {
		ctx.protoReg = c.allocFor(ctx)
		c.emitGetProp(ctx.protoReg, ctx.classReg, "prototype", line)
	}
	return ctx.protoReg
}

// tableName names a buffer of the pool for references from other buffers.
// Without a settings file the record is named after the source file.
func (c *Compiler) tableName(idx int) string {
	record := c.opts.Compiler.RecordName
	if c.opts.Path == "" && c.source != nil && c.source.IsFile() {
		record = c.source.RecordName()
	}
	return literals.Name(record, idx)
}
