package compiler

import (
	"classtab/pkg/ast"
	"classtab/pkg/errors"
)

// compileSendableClass defines a sendable class entirely from its member
// table. The table of a sendable class covers every public member, so no
// member is installed one by one and no private table is emitted.
func (c *Compiler) compileSendableClass(ctx *classContext, dest Register) (Register, errors.Error) {
	class, env := ctx.class, ctx.env

	for _, m := range class.Members {
		if method, ok := m.(*ast.MethodDefinition); ok && method.Computed && !method.IsPrivate() {
			return BadRegister, NewCompileError(method, "sendable class methods must have static names")
		}
	}

	fieldTypes, err := BuildFieldTypeTable(class, env.Scope.Innermost())
	if err != nil {
		return BadRegister, err
	}

	if err := c.compileHeritage(ctx); err != nil {
		return BadRegister, err
	}
	c.enterClassEnvironments(ctx)

	fieldTypeIdx := c.literals.Add(fieldTypes)
	table, compiled := BuildPublicTable(class, c.tableName(fieldTypeIdx))
	tableIdx := c.literals.Add(table)
	log.Debugf("sendable class %s: %d members in table", className(class), len(compiled))

	ctx.classReg = c.allocFor(ctx)
	c.emitDefineClass(ctx.classReg, constructorInternalName(class), tableIdx, constructorParamCount(class),
		ctx.parentReg, true, ctx.line)

	if err := c.bindClassName(ctx); err != nil {
		return BadRegister, err
	}
	if env.NeedsInstanceInitializer {
		c.installInstanceInitializer(ctx)
	}

	c.finishClass(ctx, dest)
	c.leaveClassEnvironments(ctx)
	return dest, nil
}
