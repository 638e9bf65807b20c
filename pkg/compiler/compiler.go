package compiler

import (
	"github.com/tliron/commonlog"

	"classtab/pkg/ast"
	"classtab/pkg/config"
	"classtab/pkg/errors"
	"classtab/pkg/literals"
	"classtab/pkg/scope"
	"classtab/pkg/source"
	"classtab/pkg/vm"
)

var log = commonlog.GetLogger("classtab.compiler")

// Output is everything a compilation unit produces.
type Output struct {
	Chunk    *vm.Chunk
	Literals *literals.Pool
	// PropertyCounts holds the instance shape hint of every compiled class.
	PropertyCounts map[*ast.ClassDeclaration]uint32
}

// Compiler transforms the classes of one compilation unit into bytecode and
// member tables. A Compiler is used for a single unit.
type Compiler struct {
	opts     *config.Options
	source   *source.SourceFile
	chunk    *vm.Chunk
	literals *literals.Pool
	regAlloc *RegisterAllocator
	module   *scope.Scope
	envs     Environments

	propertyCounts map[*ast.ClassDeclaration]uint32
}

// NewCompiler creates a compiler for src. A nil opts uses config.Default.
func NewCompiler(opts *config.Options, src *source.SourceFile) *Compiler {
	if opts == nil {
		opts = config.Default()
	}
	return &Compiler{
		opts:           opts,
		source:         src,
		chunk:          vm.NewChunk(),
		literals:       literals.NewPool(),
		regAlloc:       NewRegisterAllocator(),
		module:         scope.NewScope(),
		propertyCounts: make(map[*ast.ClassDeclaration]uint32),
	}
}

// Compile declares the module bindings of program, analyzes every class,
// then emits code for the class statements in order. The first compile
// error aborts the unit and no output is returned.
func (c *Compiler) Compile(program *ast.Program) (*Output, []errors.Error) {
	c.declareModuleBindings(program)
	c.envs = BuildEnvironments(program, c.module, c.opts.Compiler.UseDefineSemantics)
	log.Debugf("compiling %d statements, %d classes", len(program.Statements), len(c.envs))

	for _, stmt := range program.Statements {
		if err := c.compileStatement(stmt); err != nil {
			return nil, []errors.Error{c.withSource(err)}
		}
		if n := c.regAlloc.InUse(); n != 0 {
			errors.Unreachable(positionOf(stmt), "%d registers still allocated after statement", n)
		}
	}

	c.chunk.MaxRegs = c.regAlloc.MaxRegs()
	return &Output{
		Chunk:          c.chunk,
		Literals:       c.literals,
		PropertyCounts: c.propertyCounts,
	}, nil
}

// declareModuleBindings binds every top-level name so that class code and
// field type annotations resolve them.
func (c *Compiler) declareModuleBindings(program *ast.Program) {
	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.ImportDeclaration:
			if s.Default != nil {
				c.module.Define(&scope.Binding{Name: s.Default.Value, Kind: scope.Import, Decl: s})
			}
			if s.Namespace != nil {
				c.module.Define(&scope.Binding{Name: s.Namespace.Value, Kind: scope.NamespaceImport, Decl: s})
			}
			for _, spec := range s.Specifiers {
				local := spec.Local
				if local == nil {
					local = spec.Imported
				}
				c.module.Define(&scope.Binding{Name: local.Value, Kind: scope.Import, Decl: s})
			}
		case *ast.VariableStatement:
			c.module.Define(&scope.Binding{Name: s.Name.Value, Kind: scope.ModuleVar, Decl: s})
		case *ast.EnumDeclaration:
			c.module.Define(&scope.Binding{Name: s.Name.Value, Kind: scope.Declaration, Decl: s})
		case *ast.InterfaceDeclaration:
			c.module.Define(&scope.Binding{Name: s.Name.Value, Kind: scope.Declaration, Decl: s})
		case *ast.TypeAliasStatement:
			c.module.Define(&scope.Binding{Name: s.Name.Value, Kind: scope.Declaration, Decl: s})
		case *ast.ClassDeclaration:
			if s.Name != nil {
				c.module.DefineGlobal(s.Name.Value, s)
			}
		}
	}
}

func (c *Compiler) compileStatement(stmt ast.Statement) errors.Error {
	switch s := stmt.(type) {
	case *ast.ClassDeclaration:
		reg := c.regAlloc.Alloc()
		defer c.regAlloc.Free(reg)
		_, err := c.CompileClass(s, reg)
		return err

	case *ast.VariableStatement:
		if _, ok := s.Value.(*ast.ClassExpression); !ok {
			break
		}
		reg := c.regAlloc.Alloc()
		defer c.regAlloc.Free(reg)
		if _, err := c.compileExpression(s.Value, reg, c.module); err != nil {
			return err
		}
		c.emitSetGlobal(s.Name.Value, reg, s.Token.Line)
		return nil

	case *ast.ExpressionStatement:
		if _, ok := s.Expression.(*ast.ClassExpression); !ok {
			break
		}
		reg := c.regAlloc.Alloc()
		defer c.regAlloc.Free(reg)
		_, err := c.compileExpression(s.Expression, reg, c.module)
		return err
	}
	log.Debugf("skipping %T at line %d", stmt, stmt.GetToken().Line)
	return nil
}

// withSource attaches the unit's source file to the error position.
func (c *Compiler) withSource(err errors.Error) errors.Error {
	if ce, ok := err.(*errors.CompileError); ok && ce.Source == nil {
		ce.Source = c.source
	}
	return err
}

// NewCompileError creates a compile error positioned at node.
func NewCompileError(node ast.Node, msg string) *errors.CompileError {
	return &errors.CompileError{Position: positionOf(node), Msg: msg}
}
