package ast

import (
	"strings"
)

// --- Type annotation nodes ---

// TypeKeyword identifies a built-in keyword type.
type TypeKeyword int

const (
	NumberKeyword TypeKeyword = iota
	StringKeyword
	BooleanKeyword
	BigIntKeyword
	NullKeyword
	UndefinedKeyword
	AnyKeyword
	UnknownKeyword
	VoidKeyword
	NeverKeyword
	ObjectKeyword
	SymbolKeyword
)

var typeKeywordNames = [...]string{
	NumberKeyword:    "number",
	StringKeyword:    "string",
	BooleanKeyword:   "boolean",
	BigIntKeyword:    "bigint",
	NullKeyword:      "null",
	UndefinedKeyword: "undefined",
	AnyKeyword:       "any",
	UnknownKeyword:   "unknown",
	VoidKeyword:      "void",
	NeverKeyword:     "never",
	ObjectKeyword:    "object",
	SymbolKeyword:    "symbol",
}

func (k TypeKeyword) String() string {
	if int(k) < len(typeKeywordNames) {
		return typeKeywordNames[k]
	}
	return "<unknown keyword>"
}

// KeywordType represents a keyword type annotation such as `number`.
type KeywordType struct {
	Token   Token
	Keyword TypeKeyword
}

func (kt *KeywordType) expressionNode()      {}
func (kt *KeywordType) TokenLiteral() string { return kt.Token.Literal }
func (kt *KeywordType) GetToken() Token      { return kt.Token }
func (kt *KeywordType) String() string       { return kt.Keyword.String() }

// UnionTypeExpression represents a union type (e.g., string | number | null).
type UnionTypeExpression struct {
	Token Token // The first '|' token
	Types []Expression
}

func (ute *UnionTypeExpression) expressionNode()      {}
func (ute *UnionTypeExpression) TokenLiteral() string { return ute.Token.Literal }
func (ute *UnionTypeExpression) GetToken() Token      { return ute.Token }
func (ute *UnionTypeExpression) String() string {
	parts := make([]string, 0, len(ute.Types))
	for _, t := range ute.Types {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " | ")
}

// QualifiedName represents a dotted type name such as `ns.Shape`.
type QualifiedName struct {
	Token Token
	Left  Expression // *Identifier or *QualifiedName
	Right *Identifier
}

func (qn *QualifiedName) expressionNode()      {}
func (qn *QualifiedName) TokenLiteral() string { return qn.Token.Literal }
func (qn *QualifiedName) GetToken() Token      { return qn.Token }
func (qn *QualifiedName) String() string       { return qn.Left.String() + "." + qn.Right.String() }

// TypeReference represents a named type with optional type arguments, e.g.
// `Point` or `Map<string, V>`.
type TypeReference struct {
	Token         Token
	Name          Expression // *Identifier or *QualifiedName
	TypeArguments []Expression
}

func (tr *TypeReference) expressionNode()      {}
func (tr *TypeReference) TokenLiteral() string { return tr.Token.Literal }
func (tr *TypeReference) GetToken() Token      { return tr.Token }
func (tr *TypeReference) String() string {
	if len(tr.TypeArguments) == 0 {
		return tr.Name.String()
	}
	args := make([]string, 0, len(tr.TypeArguments))
	for _, a := range tr.TypeArguments {
		args = append(args, a.String())
	}
	return tr.Name.String() + "<" + strings.Join(args, ", ") + ">"
}

// ArrayTypeExpression represents an array type syntax (e.g., number[]).
type ArrayTypeExpression struct {
	Token       Token // The '[' token
	ElementType Expression
}

func (ate *ArrayTypeExpression) expressionNode()      {}
func (ate *ArrayTypeExpression) TokenLiteral() string { return ate.Token.Literal }
func (ate *ArrayTypeExpression) GetToken() Token      { return ate.Token }
func (ate *ArrayTypeExpression) String() string       { return ate.ElementType.String() + "[]" }

// LiteralTypeExpression represents a literal used as a type (e.g., "on").
type LiteralTypeExpression struct {
	Token   Token
	Literal Expression
}

func (lte *LiteralTypeExpression) expressionNode()      {}
func (lte *LiteralTypeExpression) TokenLiteral() string { return lte.Token.Literal }
func (lte *LiteralTypeExpression) GetToken() Token      { return lte.Token }
func (lte *LiteralTypeExpression) String() string       { return lte.Literal.String() }

// TypeParameter is one entry of a `<T extends C>` list.
type TypeParameter struct {
	Token      Token
	Name       *Identifier
	Constraint Expression
}

func (tp *TypeParameter) TokenLiteral() string { return tp.Token.Literal }
func (tp *TypeParameter) GetToken() Token      { return tp.Token }
func (tp *TypeParameter) String() string {
	if tp.Constraint != nil {
		return tp.Name.String() + " extends " + tp.Constraint.String()
	}
	return tp.Name.String()
}
