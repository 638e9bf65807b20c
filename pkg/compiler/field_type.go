package compiler

import (
	"fmt"
	"strings"

	"classtab/pkg/ast"
	"classtab/pkg/errors"
	"classtab/pkg/literals"
	"classtab/pkg/scope"
)

// FieldType is the bitmask describing which runtime representations a
// sendable class field may hold.
type FieldType uint32

const (
	FieldNumber    FieldType = 1 << iota // 1
	FieldString                          // 2
	FieldBoolean                         // 4
	FieldTypeRef                         // 8
	FieldBigInt                          // 16
	FieldGeneric                         // 32
	FieldNull                            // 64
	FieldUndefined                       // 128
)

var fieldTypeNames = []struct {
	bit  FieldType
	name string
}{
	{FieldNumber, "number"},
	{FieldString, "string"},
	{FieldBoolean, "boolean"},
	{FieldTypeRef, "typeref"},
	{FieldBigInt, "bigint"},
	{FieldGeneric, "generic"},
	{FieldNull, "null"},
	{FieldUndefined, "undefined"},
}

func (ft FieldType) String() string {
	if ft == 0 {
		return "none"
	}
	var parts []string
	for _, n := range fieldTypeNames {
		if ft&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Resolver answers identifier lookups for type references.
// *scope.Scope and *scope.ClassScope implement it.
type Resolver interface {
	Resolve(name string) (*scope.Binding, int, bool)
}

const missingFieldTypeMsg = "sendable fields must have an explicit type annotation"

// ClassifyField computes the type bitmask of a sendable class field. Names
// in the annotation resolve through resolver, which for class members is
// the class scope holding the class's own type parameters.
func ClassifyField(resolver Resolver, field *ast.PropertyDefinition) (FieldType, errors.Error) {
	if field.TypeAnnotation == nil {
		return 0, &errors.CompileError{Position: positionOf(field), Msg: missingFieldTypeMsg}
	}
	return classifyType(resolver, field.TypeAnnotation), nil
}

func classifyType(resolver Resolver, t ast.Expression) FieldType {
	switch node := t.(type) {
	case *ast.UnionTypeExpression:
		var bits FieldType
		for _, constituent := range node.Types {
			bits |= classifyType(resolver, constituent)
		}
		return bits
	case *ast.KeywordType:
		return classifyKeyword(node.Keyword)
	case *ast.TypeReference:
		ident, ok := node.Name.(*ast.Identifier)
		if !ok {
			return FieldGeneric
		}
		return classifyReference(resolver, ident.Value)
	case *ast.Identifier:
		return classifyReference(resolver, node.Value)
	}
	return FieldGeneric
}

func classifyKeyword(k ast.TypeKeyword) FieldType {
	switch k {
	case ast.NumberKeyword:
		return FieldNumber
	case ast.StringKeyword:
		return FieldString
	case ast.BooleanKeyword:
		return FieldBoolean
	case ast.BigIntKeyword:
		return FieldBigInt
	case ast.NullKeyword:
		return FieldNull
	case ast.UndefinedKeyword:
		return FieldUndefined
	}
	return FieldGeneric
}

// classifyReference resolves a simple type name: imports and generics are
// opaque, enums may hold strings or numbers, anything else is a reference
// to another declared type.
func classifyReference(resolver Resolver, name string) FieldType {
	binding, _, found := resolver.Resolve(name)
	if !found {
		return FieldTypeRef
	}
	switch binding.Kind {
	case scope.Import, scope.TypeParameter, scope.ModuleVar:
		return FieldGeneric
	case scope.Declaration:
		if _, isEnum := binding.Decl.(*ast.EnumDeclaration); isEnum {
			return FieldString | FieldNumber
		}
	}
	return FieldTypeRef
}

// BuildFieldTypeTable lists (name, bitmask) for every public field of a
// sendable class, instance fields first, followed by the instance field
// count.
func BuildFieldTypeTable(class *ast.ClassDeclaration, resolver Resolver) (*literals.Buffer, errors.Error) {
	instance := literals.NewBuffer()
	static := literals.NewBuffer()
	var instanceFields uint32

	for _, m := range class.Members {
		field, ok := m.(*ast.PropertyDefinition)
		if !ok {
			continue
		}
		bits, err := ClassifyField(resolver, field)
		if err != nil {
			return nil, err
		}
		if field.IsPrivate() {
			continue
		}
		name, ok := propertyName(field.Key, field.Computed)
		if !ok {
			return nil, &errors.CompileError{
				Position: positionOf(field),
				Msg:      fmt.Sprintf("sendable field key %s must be a static name", field.Key),
			}
		}
		buf := instance
		if field.Static {
			buf = static
		} else {
			instanceFields++
		}
		buf.Add(literals.String(name))
		buf.Add(literals.Integer(uint32(bits)))
	}

	instance.Append(static)
	instance.Add(literals.Integer(instanceFields))
	return instance, nil
}
