package ast

import (
	"bytes"
	"strings"
)

// Token is the lexical token a node starts at.
type Token struct {
	Literal  string // The actual text of the token (lexeme)
	Line     int    // 1-based line number where the token starts
	Column   int    // 1-based column number (rune index) where the token starts
	StartPos int    // 0-based byte offset where the token starts
	EndPos   int    // 0-based byte offset after the token ends
}

// --- Interfaces ---

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string // Returns the literal value of the token associated with the node
	String() string       // Returns a string representation of the node (for debugging)
	GetToken() Token      // Returns the token the node starts at
}

// Statement represents a statement node in the AST.
type Statement interface {
	Node
	statementNode()
}

// Expression represents an expression node in the AST. Type annotations are
// expressions too.
type Expression interface {
	Node
	expressionNode()
}

// --- Program Node ---

// Program is the root node of a compilation unit.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return Token{}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// --- Statement Nodes ---

// VariableStatement represents a `let`, `const` or `var` declaration of a
// single binding.
// <Kind> <Name> : <TypeAnnotation> = <Value>;
type VariableStatement struct {
	Token          Token  // The 'let', 'const' or 'var' token
	Kind           string // "let", "const" or "var"
	Name           *Identifier
	TypeAnnotation Expression
	Value          Expression
}

func (vs *VariableStatement) statementNode()       {}
func (vs *VariableStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *VariableStatement) GetToken() Token      { return vs.Token }
func (vs *VariableStatement) String() string {
	var out bytes.Buffer
	out.WriteString(vs.Kind + " ")
	out.WriteString(vs.Name.String())
	if vs.TypeAnnotation != nil {
		out.WriteString(": ")
		out.WriteString(vs.TypeAnnotation.String())
	}
	if vs.Value != nil {
		out.WriteString(" = ")
		out.WriteString(vs.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// ReturnStatement represents a `return` statement.
type ReturnStatement struct {
	Token       Token
	ReturnValue Expression
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) GetToken() Token      { return rs.Token }
func (rs *ReturnStatement) String() string {
	if rs.ReturnValue == nil {
		return "return;"
	}
	return "return " + rs.ReturnValue.String() + ";"
}

// ExpressionStatement represents a statement consisting of a single expression.
type ExpressionStatement struct {
	Token      Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) GetToken() Token      { return es.Token }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String() + ";"
	}
	return ";"
}

// BlockStatement represents a sequence of statements enclosed in braces.
type BlockStatement struct {
	Token      Token // The '{' token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) GetToken() Token      { return bs.Token }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for i, s := range bs.Statements {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(s.String())
	}
	out.WriteString(" }")
	return out.String()
}

// --- Declarations the type queries look at ---

// EnumMember is one `Name = Value` entry of an enum.
type EnumMember struct {
	Token Token
	Name  *Identifier
	Value Expression // nil for auto-numbered members
}

// EnumDeclaration represents `enum Name { ... }`.
type EnumDeclaration struct {
	Token   Token // The 'enum' token
	Name    *Identifier
	Members []*EnumMember
	Const   bool
}

func (ed *EnumDeclaration) statementNode()       {}
func (ed *EnumDeclaration) TokenLiteral() string { return ed.Token.Literal }
func (ed *EnumDeclaration) GetToken() Token      { return ed.Token }
func (ed *EnumDeclaration) String() string {
	var out bytes.Buffer
	if ed.Const {
		out.WriteString("const ")
	}
	out.WriteString("enum ")
	out.WriteString(ed.Name.String())
	out.WriteString(" { ")
	members := make([]string, 0, len(ed.Members))
	for _, m := range ed.Members {
		if m.Value != nil {
			members = append(members, m.Name.String()+" = "+m.Value.String())
		} else {
			members = append(members, m.Name.String())
		}
	}
	out.WriteString(strings.Join(members, ", "))
	out.WriteString(" }")
	return out.String()
}

// ImportSpecifier is `Imported as Local` inside an import clause.
type ImportSpecifier struct {
	Token    Token
	Imported *Identifier
	Local    *Identifier
}

// ImportDeclaration represents an `import ... from "source"` statement.
type ImportDeclaration struct {
	Token      Token // The 'import' token
	Default    *Identifier
	Namespace  *Identifier // import * as Namespace
	Specifiers []*ImportSpecifier
	Source     string
	TypeOnly   bool
}

func (id *ImportDeclaration) statementNode()       {}
func (id *ImportDeclaration) TokenLiteral() string { return id.Token.Literal }
func (id *ImportDeclaration) GetToken() Token      { return id.Token }
func (id *ImportDeclaration) String() string {
	var parts []string
	if id.Default != nil {
		parts = append(parts, id.Default.String())
	}
	if id.Namespace != nil {
		parts = append(parts, "* as "+id.Namespace.String())
	}
	if len(id.Specifiers) > 0 {
		specs := make([]string, 0, len(id.Specifiers))
		for _, s := range id.Specifiers {
			if s.Local != nil && s.Local.Value != s.Imported.Value {
				specs = append(specs, s.Imported.String()+" as "+s.Local.String())
			} else {
				specs = append(specs, s.Imported.String())
			}
		}
		parts = append(parts, "{ "+strings.Join(specs, ", ")+" }")
	}
	prefix := "import "
	if id.TypeOnly {
		prefix = "import type "
	}
	return prefix + strings.Join(parts, ", ") + " from \"" + id.Source + "\";"
}

// TypeAliasStatement represents a `type Name = Type;` declaration.
type TypeAliasStatement struct {
	Token Token // The 'type' token
	Name  *Identifier
	Type  Expression
}

func (tas *TypeAliasStatement) statementNode()       {}
func (tas *TypeAliasStatement) TokenLiteral() string { return tas.Token.Literal }
func (tas *TypeAliasStatement) GetToken() Token      { return tas.Token }
func (tas *TypeAliasStatement) String() string {
	return "type " + tas.Name.String() + " = " + tas.Type.String() + ";"
}

// InterfaceDeclaration represents `interface Name { ... }`. Only its name
// matters to the class compiler.
type InterfaceDeclaration struct {
	Token Token
	Name  *Identifier
}

func (d *InterfaceDeclaration) statementNode()       {}
func (d *InterfaceDeclaration) TokenLiteral() string { return d.Token.Literal }
func (d *InterfaceDeclaration) GetToken() Token      { return d.Token }
func (d *InterfaceDeclaration) String() string       { return "interface " + d.Name.String() + " {}" }
