package ast

import (
	"bytes"
	"strings"
)

// ClassMember is one element of a class body. It is a closed set:
// *MethodDefinition, *PropertyDefinition and *StaticBlock.
type ClassMember interface {
	Node
	classMember()
	IsStatic() bool
}

// MethodKind distinguishes plain methods from accessors.
type MethodKind int

const (
	MethodNormal MethodKind = iota
	MethodGet
	MethodSet
	MethodConstructor
)

func (k MethodKind) String() string {
	switch k {
	case MethodNormal:
		return "method"
	case MethodGet:
		return "get"
	case MethodSet:
		return "set"
	case MethodConstructor:
		return "constructor"
	}
	return "<unknown method kind>"
}

// MethodDefinition represents a method, getter or setter in a class body.
type MethodDefinition struct {
	Token    Token
	Key      Expression // *Identifier, *StringLiteral, *NumberLiteral, *PrivateIdentifier, or any expression when Computed
	Value    *FunctionLiteral
	Kind     MethodKind
	Static   bool
	Computed bool
	Abstract bool
	Optional bool // `m?()`, only meaningful for overload signatures
}

func (md *MethodDefinition) classMember()         {}
func (md *MethodDefinition) TokenLiteral() string { return md.Token.Literal }
func (md *MethodDefinition) GetToken() Token      { return md.Token }
func (md *MethodDefinition) IsStatic() bool       { return md.Static }

// IsPrivate reports whether the key is a #private name.
func (md *MethodDefinition) IsPrivate() bool {
	_, ok := md.Key.(*PrivateIdentifier)
	return ok
}

// IsAccessor reports whether the member is a getter or a setter.
func (md *MethodDefinition) IsAccessor() bool {
	return md.Kind == MethodGet || md.Kind == MethodSet
}

// IsOverload reports whether the backing function is a declaration-only
// overload signature.
func (md *MethodDefinition) IsOverload() bool {
	return md.Value != nil && md.Value.IsOverload
}

func (md *MethodDefinition) String() string {
	var out bytes.Buffer
	if md.Abstract {
		out.WriteString("abstract ")
	}
	if md.Static {
		out.WriteString("static ")
	}
	switch md.Kind {
	case MethodGet:
		out.WriteString("get ")
	case MethodSet:
		out.WriteString("set ")
	}
	out.WriteString(keyString(md.Key, md.Computed))
	if md.Optional {
		out.WriteString("?")
	}
	if md.Value != nil {
		params := make([]string, 0, len(md.Value.Parameters))
		for _, p := range md.Value.Parameters {
			params = append(params, p.String())
		}
		out.WriteString("(" + strings.Join(params, ", ") + ")")
		if md.Value.Body != nil {
			out.WriteString(" " + md.Value.Body.String())
		} else {
			out.WriteString(";")
		}
	}
	return out.String()
}

// PropertyDefinition represents a class field.
type PropertyDefinition struct {
	Token          Token
	Key            Expression
	Value          Expression // initializer, may be nil
	TypeAnnotation Expression // may be nil
	Static         bool
	Computed       bool
	Optional       bool
	Declare        bool
	Readonly       bool
	Abstract       bool
}

func (pd *PropertyDefinition) classMember()         {}
func (pd *PropertyDefinition) TokenLiteral() string { return pd.Token.Literal }
func (pd *PropertyDefinition) GetToken() Token      { return pd.Token }
func (pd *PropertyDefinition) IsStatic() bool       { return pd.Static }

// IsPrivate reports whether the key is a #private name.
func (pd *PropertyDefinition) IsPrivate() bool {
	_, ok := pd.Key.(*PrivateIdentifier)
	return ok
}

// NeedsKeyCompile reports whether the field's computed key has to be
// evaluated once at class definition time and cached. Literal keys written
// in brackets (`["a"]`, `[1]`) are known statically and need no evaluation.
func (pd *PropertyDefinition) NeedsKeyCompile() bool {
	if !pd.Computed {
		return false
	}
	switch pd.Key.(type) {
	case *StringLiteral, *NumberLiteral:
		return false
	}
	return true
}

func (pd *PropertyDefinition) String() string {
	var out bytes.Buffer
	if pd.Declare {
		out.WriteString("declare ")
	}
	if pd.Static {
		out.WriteString("static ")
	}
	if pd.Readonly {
		out.WriteString("readonly ")
	}
	out.WriteString(keyString(pd.Key, pd.Computed))
	if pd.Optional {
		out.WriteString("?")
	}
	if pd.TypeAnnotation != nil {
		out.WriteString(": " + pd.TypeAnnotation.String())
	}
	if pd.Value != nil {
		out.WriteString(" = " + pd.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// StaticBlock represents `static { ... }`.
type StaticBlock struct {
	Token Token
	Body  *BlockStatement
}

func (sb *StaticBlock) classMember()         {}
func (sb *StaticBlock) TokenLiteral() string { return sb.Token.Literal }
func (sb *StaticBlock) GetToken() Token      { return sb.Token }
func (sb *StaticBlock) IsStatic() bool       { return true }
func (sb *StaticBlock) String() string       { return "static " + sb.Body.String() }

// ClassDeclaration represents a class. The constructor is kept apart from
// the ordered member list. StaticInitializer and InstanceInitializer are the
// functions the parser synthesized to run static blocks/static field
// initializers and instance field initializers respectively.
type ClassDeclaration struct {
	Token               Token       // The 'class' token
	Name                *Identifier // nil for anonymous classes
	TypeParameters      []*TypeParameter
	SuperClass          Expression
	Constructor         *MethodDefinition
	Members             []ClassMember
	StaticInitializer   *FunctionLiteral
	InstanceInitializer *FunctionLiteral
	// EtsImplements lists interfaces implemented across the static/dynamic
	// language boundary.
	EtsImplements []string

	Declare       bool
	Abstract      bool
	Sendable      bool
	ExportDefault bool
}

func (cd *ClassDeclaration) statementNode()       {}
func (cd *ClassDeclaration) TokenLiteral() string { return cd.Token.Literal }
func (cd *ClassDeclaration) GetToken() Token      { return cd.Token }

// IsAnonymous reports whether the class has no own name binding.
func (cd *ClassDeclaration) IsAnonymous() bool { return cd.Name == nil }

func (cd *ClassDeclaration) String() string {
	var out bytes.Buffer
	if cd.ExportDefault {
		out.WriteString("export default ")
	}
	if cd.Declare {
		out.WriteString("declare ")
	}
	if cd.Abstract {
		out.WriteString("abstract ")
	}
	out.WriteString("class")
	if cd.Name != nil {
		out.WriteString(" " + cd.Name.String())
	}
	if len(cd.TypeParameters) > 0 {
		params := make([]string, 0, len(cd.TypeParameters))
		for _, tp := range cd.TypeParameters {
			params = append(params, tp.String())
		}
		out.WriteString("<" + strings.Join(params, ", ") + ">")
	}
	if cd.SuperClass != nil {
		out.WriteString(" extends " + cd.SuperClass.String())
	}
	out.WriteString(" {")
	if cd.Sendable {
		out.WriteString(" \"use sendable\";")
	}
	if cd.Constructor != nil && cd.Constructor.Value != nil {
		out.WriteString(" constructor")
		out.WriteString(strings.TrimPrefix(cd.Constructor.Value.String(), "function"))
	}
	for _, m := range cd.Members {
		out.WriteString(" ")
		out.WriteString(m.String())
	}
	out.WriteString(" }")
	return out.String()
}

func keyString(key Expression, computed bool) string {
	if key == nil {
		return "<nil>"
	}
	if computed {
		return "[" + key.String() + "]"
	}
	return key.String()
}
