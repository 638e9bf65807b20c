package compiler

import (
	"classtab/pkg/ast"
	"classtab/pkg/errors"
	"classtab/pkg/vm"
)

// MemberKind is the closed set of class element kinds.
type MemberKind int

const (
	KindMethod MemberKind = iota
	KindGetter
	KindSetter
	KindField
	KindStaticBlock
)

func (k MemberKind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindGetter:
		return "getter"
	case KindSetter:
		return "setter"
	case KindField:
		return "field"
	case KindStaticBlock:
		return "static block"
	}
	return "<unknown member kind>"
}

// memberInfo is what the table builder and the fallback installer need to
// know about one class element.
type memberInfo struct {
	Kind     MemberKind
	Private  bool
	Static   bool
	Abstract bool
	Overload bool // declaration-only method signature
	Optional bool
	Computed bool
	// NeedsKeyCompile marks a computed field key evaluated once at class
	// definition time and cached in a lexical slot.
	NeedsKeyCompile bool
}

// IsAccessor reports whether the member is a getter or a setter.
func (mi memberInfo) IsAccessor() bool {
	return mi.Kind == KindGetter || mi.Kind == KindSetter
}

func classifyMember(m ast.ClassMember) memberInfo {
	switch member := m.(type) {
	case *ast.MethodDefinition:
		info := memberInfo{
			Private:  member.IsPrivate(),
			Static:   member.Static,
			Abstract: member.Abstract,
			Overload: member.IsOverload(),
			Optional: member.Optional,
			Computed: member.Computed,
		}
		switch member.Kind {
		case ast.MethodNormal:
			info.Kind = KindMethod
		case ast.MethodGet:
			info.Kind = KindGetter
		case ast.MethodSet:
			info.Kind = KindSetter
		default:
			errors.Unreachable(positionOf(member), "unexpected %s in class member list", member.Kind)
		}
		return info
	case *ast.PropertyDefinition:
		return memberInfo{
			Kind:            KindField,
			Private:         member.IsPrivate(),
			Static:          member.Static,
			Abstract:        member.Abstract,
			Optional:        member.Optional,
			Computed:        member.Computed,
			NeedsKeyCompile: member.NeedsKeyCompile(),
		}
	case *ast.StaticBlock:
		return memberInfo{Kind: KindStaticBlock, Static: true}
	}
	errors.Unreachable(positionOf(m), "unexpected class member %T", m)
	return memberInfo{}
}

// propertyName returns the static property name of a member key: the
// identifier name, the string literal text, or the canonical text of a
// number literal. A computed identifier is a variable reference and has no
// static name.
func propertyName(key ast.Expression, computed bool) (string, bool) {
	switch k := key.(type) {
	case *ast.Identifier:
		if computed {
			return "", false
		}
		return k.Value, true
	case *ast.StringLiteral:
		return k.Value, true
	case *ast.NumberLiteral:
		return vm.NumberToString(k.Value), true
	}
	return "", false
}

// positionOf converts a node's start token into an error position.
func positionOf(node ast.Node) errors.Position {
	if node == nil {
		return errors.Position{}
	}
	token := node.GetToken()
	return errors.Position{
		Line:     token.Line,
		Column:   token.Column,
		StartPos: token.StartPos,
		EndPos:   token.EndPos,
	}
}
