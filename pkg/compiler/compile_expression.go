package compiler

import (
	"fmt"

	"classtab/pkg/ast"
	"classtab/pkg/errors"
	"classtab/pkg/scope"
	"classtab/pkg/vm"
)

// compileExpression evaluates the expressions that may appear in a class
// heritage clause or a computed key into dest. Names resolve starting at
// from.
func (c *Compiler) compileExpression(expr ast.Expression, dest Register, from *scope.Scope) (Register, errors.Error) {
	line := expr.GetToken().Line
	switch node := expr.(type) {
	case *ast.Identifier:
		return dest, c.compileIdentifier(node, dest, from)

	case *ast.StringLiteral:
		c.emitLoadConstant(dest, c.chunk.AddConstant(vm.String(node.Value)), line)
		return dest, nil

	case *ast.NumberLiteral:
		c.emitLoadConstant(dest, c.chunk.AddConstant(vm.Number(node.Value)), line)
		return dest, nil

	case *ast.TemplateLiteral:
		text := ""
		for _, part := range node.Parts {
			s, ok := part.(*ast.StringLiteral)
			if !ok {
				return BadRegister, NewCompileError(part, "template substitutions are not supported in class keys")
			}
			text += s.Value
		}
		c.emitLoadConstant(dest, c.chunk.AddConstant(vm.String(text)), line)
		return dest, nil

	case *ast.MemberExpression:
		prop, ok := node.Property.(*ast.Identifier)
		if !ok {
			return BadRegister, NewCompileError(node, fmt.Sprintf("unsupported property access %s", node))
		}
		objReg := c.regAlloc.Alloc()
		defer c.regAlloc.Free(objReg)
		if _, err := c.compileExpression(node.Object, objReg, from); err != nil {
			return BadRegister, err
		}
		c.emitGetProp(dest, objReg, prop.Value, line)
		return dest, nil

	case *ast.ClassExpression:
		return c.CompileClass(node.Class, dest)
	}
	return BadRegister, NewCompileError(expr, fmt.Sprintf("unsupported expression %T in class definition", expr))
}

func (c *Compiler) compileIdentifier(node *ast.Identifier, dest Register, from *scope.Scope) errors.Error {
	line := node.Token.Line
	binding, depth, found := from.Resolve(node.Value)
	if !found {
		c.emitGetGlobal(dest, node.Value, line)
		return nil
	}
	if binding.IsTypeOnly() {
		return NewCompileError(node, fmt.Sprintf("'%s' only refers to a type, but is being used as a value here.", node.Value))
	}
	switch binding.Kind {
	case scope.Local:
		if Register(binding.Register) != dest {
			c.emitMove(dest, Register(binding.Register), line)
		}
	case scope.Lexical:
		c.emitLoadLexical(dest, depth, binding.Slot, line)
	default:
		c.emitGetGlobal(dest, node.Value, line)
	}
	return nil
}
