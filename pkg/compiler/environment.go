package compiler

import (
	"classtab/pkg/ast"
	"classtab/pkg/scope"
)

// ClassEnvironment holds the facts about a class the code generator needs
// before emitting anything. It is computed once per class and not modified
// afterwards.
type ClassEnvironment struct {
	Class *ast.ClassDeclaration
	Scope *scope.ClassScope

	NeedsStaticInitializer   bool
	NeedsInstanceInitializer bool
	HasComputedKey           bool
	HasPrivateElement        bool

	PrivateInstanceMethodCount int
	PrivateStaticMethodCount   int
	PrivateFieldCount          int
	PrivateMembers             []ast.ClassMember

	// Initializer functions, attached by the parser or synthesized when a
	// class needs one and has none.
	StaticInitializer   *ast.FunctionLiteral
	InstanceInitializer *ast.FunctionLiteral

	// IsExpression is set for classes in expression position; their own
	// name is bound inside the class scope.
	IsExpression bool
}

// Environments maps each class of a unit to its environment.
type Environments map[*ast.ClassDeclaration]*ClassEnvironment

// AnalyzeClass scans the members of class once and records which
// initializers it needs, which keys must be evaluated at definition time
// and which private names it declares. Private members are registered with
// cs, and lexical slots are reserved in cs for computed field keys and the
// instance initializer.
func AnalyzeClass(class *ast.ClassDeclaration, cs *scope.ClassScope, useDefineSemantics bool) *ClassEnvironment {
	env := &ClassEnvironment{Class: class, Scope: cs}
	cs.DefineTypeParameters(class.TypeParameters)

	for _, m := range class.Members {
		info := classifyMember(m)
		switch info.Kind {
		case KindMethod, KindGetter, KindSetter:
			if info.Private {
				env.PrivateMembers = append(env.PrivateMembers, m)
				if info.Static {
					env.PrivateStaticMethodCount++
				} else {
					env.PrivateInstanceMethodCount++
				}
			} else if info.Computed {
				env.HasComputedKey = true
			}
		case KindStaticBlock:
			env.NeedsStaticInitializer = true
		case KindField:
			if info.Private && !info.Static && !useDefineSemantics {
				continue
			}
			if info.Static {
				env.NeedsStaticInitializer = true
			} else {
				env.NeedsInstanceInitializer = true
			}
			field := m.(*ast.PropertyDefinition)
			if info.NeedsKeyCompile {
				env.HasComputedKey = true
				cs.ReserveSlot(field.Key)
			}
			if info.Private {
				env.PrivateFieldCount++
				env.PrivateMembers = append(env.PrivateMembers, m)
			}
		}
	}

	if len(env.PrivateMembers) > 0 {
		env.HasPrivateElement = true
		cs.RegisterPrivateMembers(env.PrivateMembers, env.PrivateFieldCount,
			env.PrivateInstanceMethodCount, env.PrivateStaticMethodCount)
	}
	if env.PrivateInstanceMethodCount > 0 {
		env.NeedsInstanceInitializer = true
	}

	if env.NeedsStaticInitializer {
		env.StaticInitializer = class.StaticInitializer
		if env.StaticInitializer == nil {
			env.StaticInitializer = synthesizeInitializer(class, "static_initializer")
		}
	}
	if env.NeedsInstanceInitializer {
		env.InstanceInitializer = class.InstanceInitializer
		if env.InstanceInitializer == nil {
			env.InstanceInitializer = synthesizeInitializer(class, "instance_initializer")
		}
		cs.ReserveSlot(env.InstanceInitializer)
	}
	return env
}

// BuildEnvironments analyzes every class of program, in source order,
// creating its class scope under module. Classes nested in the heritage
// clause of another class live in that class's enclosing scope; classes
// nested in computed keys live in the class scope.
func BuildEnvironments(program *ast.Program, module *scope.Scope, useDefineSemantics bool) Environments {
	envs := make(Environments)
	walkClasses(program, module, func(class *ast.ClassDeclaration, isExpression bool, outer *scope.Scope) *scope.Scope {
		cs := scope.NewClassScope(outer, class)
		if isExpression && class.Name != nil {
			cs.DefineLexical(class.Name.Value, class.Name)
		}
		env := AnalyzeClass(class, cs, useDefineSemantics)
		env.IsExpression = isExpression
		envs[class] = env
		if slot, ok := cs.InstanceBrandSlot(); ok {
			log.Debugf("class %s: instance brand in slot %d", className(class), slot)
		}
		for _, pn := range cs.PrivateNames() {
			log.Debugf("class %s: private %s #%s in brand slot %d", className(class), pn.Kind, pn.Name, pn.Slot)
		}
		return cs.Innermost()
	})
	return envs
}

// constructorInternalName returns the internal name of the class
// constructor, deriving one when the parser attached no constructor.
func constructorInternalName(class *ast.ClassDeclaration) string {
	if class.Constructor != nil && class.Constructor.Value != nil && class.Constructor.Value.InternalName != "" {
		return class.Constructor.Value.InternalName
	}
	name := "@anonymous"
	if class.Name != nil {
		name = class.Name.Value
	}
	return "#~" + name + "=#" + name
}

func constructorParamCount(class *ast.ClassDeclaration) int {
	if class.Constructor == nil || class.Constructor.Value == nil {
		return 0
	}
	return class.Constructor.Value.FormalParamCount()
}

func synthesizeInitializer(class *ast.ClassDeclaration, suffix string) *ast.FunctionLiteral {
	return &ast.FunctionLiteral{
		Token:        class.Token,
		InternalName: constructorInternalName(class) + "~" + suffix,
		Body:         &ast.BlockStatement{Token: class.Token},
	}
}

// classVisitor is called for each class with the scope it is nested in and
// returns the scope its member keys are evaluated in.
type classVisitor func(class *ast.ClassDeclaration, isExpression bool, outer *scope.Scope) *scope.Scope

// walkClasses visits every class declaration and class expression of
// program that the compiler emits code for, outer classes first.
func walkClasses(program *ast.Program, module *scope.Scope, fn classVisitor) {
	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.ClassDeclaration:
			walkClass(s, false, module, fn)
		case *ast.VariableStatement:
			walkExpression(s.Value, module, fn)
		case *ast.ExpressionStatement:
			walkExpression(s.Expression, module, fn)
		}
	}
}

func walkClass(class *ast.ClassDeclaration, isExpression bool, outer *scope.Scope, fn classVisitor) {
	inner := fn(class, isExpression, outer)
	walkExpression(class.SuperClass, outer, fn)
	for _, m := range class.Members {
		switch member := m.(type) {
		case *ast.MethodDefinition:
			if member.Computed {
				walkExpression(member.Key, inner, fn)
			}
		case *ast.PropertyDefinition:
			if member.NeedsKeyCompile() {
				walkExpression(member.Key, inner, fn)
			}
		}
	}
}

func walkExpression(expr ast.Expression, outer *scope.Scope, fn classVisitor) {
	switch e := expr.(type) {
	case *ast.ClassExpression:
		walkClass(e.Class, true, outer, fn)
	case *ast.MemberExpression:
		walkExpression(e.Object, outer, fn)
	}
}
