package compiler

import (
	"classtab/pkg/ast"
	"classtab/pkg/errors"
)

// installable reports whether the fallback installer emits code for a
// public method member.
func installable(info memberInfo) bool {
	return !info.Abstract && !(info.Overload && info.Optional)
}

// installRemaining defines every method and accessor the public table does
// not cover, in declaration order, then installs the instance initializer
// when the class needs one.
func (c *Compiler) installRemaining(ctx *classContext, compiled CompiledSet) {
	for i, m := range ctx.class.Members {
		if compiled.Has(i) {
			continue
		}
		method, ok := m.(*ast.MethodDefinition)
		if !ok || method.Value == nil {
			continue
		}
		info := classifyMember(m)
		if info.Private || !installable(info) {
			continue
		}
		c.installMember(ctx, i, method, info)
	}

	if ctx.env.NeedsInstanceInitializer {
		c.installInstanceInitializer(ctx)
	}
}

func (c *Compiler) installMember(ctx *classContext, idx int, method *ast.MethodDefinition, info memberInfo) {
	line := method.Token.Line
	target := ctx.classReg
	if !info.Static {
		target = c.prototype(ctx, line)
	}

	fn := method.Value
	fnReg := c.regAlloc.Alloc()
	defer c.regAlloc.Free(fnReg)
	c.emitDefineFunc(fnReg, fn.InternalName, fn.FormalParamCount(), line)

	keyReg, computed := ctx.keyRegs[idx]
	var name string
	if !computed {
		var ok bool
		name, ok = propertyName(method.Key, false)
		if !ok {
			errors.Unreachable(positionOf(method), "member key %s was not evaluated", method.Key)
		}
	}

	switch info.Kind {
	case KindMethod:
		if computed {
			c.emitStoreOwnByValue(target, keyReg, fnReg, line)
		} else {
			c.emitStoreOwnByName(target, name, fnReg, line)
		}

	case KindGetter, KindSetter:
		undef := c.regAlloc.Alloc()
		defer c.regAlloc.Free(undef)
		c.emitLoadUndefined(undef, line)
		if !computed {
			keyReg = c.regAlloc.Alloc()
			defer c.regAlloc.Free(keyReg)
			c.emitLoadConstant(keyReg, c.nameConstant(name), line)
		}
		getter, setter := fnReg, undef
		if info.Kind == KindSetter {
			getter, setter = undef, fnReg
		}
		c.emitDefineGetterSetter(target, keyReg, getter, setter, line)

	default:
		errors.Unreachable(positionOf(method), "cannot install %s", info.Kind)
	}
}

// installInstanceInitializer defines the function running the instance
// field initializers and caches it in its reserved class slot.
func (c *Compiler) installInstanceInitializer(ctx *classContext) {
	cs := ctx.env.Scope
	initializer := ctx.env.InstanceInitializer
	slot, ok := cs.SlotOf(initializer)
	if !ok {
		errors.Unreachable(positionOf(ctx.class), "no slot reserved for the instance initializer of %s", className(ctx.class))
	}
	c.prototype(ctx, ctx.line)

	fnReg := c.regAlloc.Alloc()
	c.emitDefineFunc(fnReg, initializer.InternalName, initializer.FormalParamCount(), ctx.line)
	c.emitStoreLexical(cs.ClassEnvDepth(), slot, fnReg, ctx.line)
	c.regAlloc.Free(fnReg)
}
