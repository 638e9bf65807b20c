package ast

import (
	"bytes"
	"strconv"
	"strings"
)

// --- Expression Nodes ---

// Identifier represents an identifier in the source code.
type Identifier struct {
	Token Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) GetToken() Token      { return i.Token }
func (i *Identifier) String() string       { return i.Value }

// PrivateIdentifier represents a `#name` class element key. Value holds the
// name without the leading '#'.
type PrivateIdentifier struct {
	Token Token
	Value string
}

func (pi *PrivateIdentifier) expressionNode()      {}
func (pi *PrivateIdentifier) TokenLiteral() string { return pi.Token.Literal }
func (pi *PrivateIdentifier) GetToken() Token      { return pi.Token }
func (pi *PrivateIdentifier) String() string       { return "#" + pi.Value }

// NumberLiteral represents numeric literals (integers or floats).
type NumberLiteral struct {
	Token Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) GetToken() Token      { return n.Token }
func (n *NumberLiteral) String() string {
	if n.Token.Literal != "" {
		return n.Token.Literal
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// BigIntLiteral represents `123n`. Value holds the digits without the suffix.
type BigIntLiteral struct {
	Token Token
	Value string
}

func (b *BigIntLiteral) expressionNode()      {}
func (b *BigIntLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BigIntLiteral) GetToken() Token      { return b.Token }
func (b *BigIntLiteral) String() string       { return b.Value + "n" }

// StringLiteral represents string literals. Value holds the cooked text.
type StringLiteral struct {
	Token Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) GetToken() Token      { return s.Token }
func (s *StringLiteral) String() string       { return strconv.Quote(s.Value) }

// BooleanLiteral represents `true` or `false`.
type BooleanLiteral struct {
	Token Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) GetToken() Token      { return b.Token }
func (b *BooleanLiteral) String() string       { return strconv.FormatBool(b.Value) }

// TemplateLiteral represents template literals with interpolations.
// `hello ${name}` becomes Parts: [StringLiteral("hello "), Identifier(name)].
type TemplateLiteral struct {
	Token Token // The '`' token
	Parts []Expression
}

func (tl *TemplateLiteral) expressionNode()      {}
func (tl *TemplateLiteral) TokenLiteral() string { return tl.Token.Literal }
func (tl *TemplateLiteral) GetToken() Token      { return tl.Token }
func (tl *TemplateLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("`")
	for _, part := range tl.Parts {
		if s, ok := part.(*StringLiteral); ok {
			out.WriteString(s.Value)
			continue
		}
		out.WriteString("${")
		out.WriteString(part.String())
		out.WriteString("}")
	}
	out.WriteString("`")
	return out.String()
}

// ThisExpression represents the `this` keyword.
type ThisExpression struct {
	Token Token
}

func (te *ThisExpression) expressionNode()      {}
func (te *ThisExpression) TokenLiteral() string { return te.Token.Literal }
func (te *ThisExpression) GetToken() Token      { return te.Token }
func (te *ThisExpression) String() string       { return "this" }

// MemberExpression represents accessing a property (e.g., object.property).
type MemberExpression struct {
	Token    Token      // The '.' token
	Object   Expression // The expression on the left
	Property Expression // *Identifier or *PrivateIdentifier
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) GetToken() Token      { return me.Token }
func (me *MemberExpression) String() string {
	return me.Object.String() + "." + me.Property.String()
}

// IndexExpression represents `object[index]`.
type IndexExpression struct {
	Token Token // The '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) GetToken() Token      { return ie.Token }
func (ie *IndexExpression) String() string {
	return ie.Left.String() + "[" + ie.Index.String() + "]"
}

// InfixExpression represents a binary operation (e.g., a + b).
type InfixExpression struct {
	Token    Token // The operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) GetToken() Token      { return ie.Token }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// AssignmentExpression represents assignment (e.g., this.x = 5, a += 1).
type AssignmentExpression struct {
	Token    Token  // The assignment operator token
	Operator string // "=", "+=", ...
	Left     Expression
	Value    Expression
}

func (ae *AssignmentExpression) expressionNode()      {}
func (ae *AssignmentExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AssignmentExpression) GetToken() Token      { return ae.Token }
func (ae *AssignmentExpression) String() string {
	return ae.Left.String() + " " + ae.Operator + " " + ae.Value.String()
}

// CallExpression represents a call: Function(Arguments...).
type CallExpression struct {
	Token     Token // The '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) GetToken() Token      { return ce.Token }
func (ce *CallExpression) String() string {
	args := make([]string, 0, len(ce.Arguments))
	for _, a := range ce.Arguments {
		args = append(args, a.String())
	}
	return ce.Function.String() + "(" + strings.Join(args, ", ") + ")"
}

// Parameter represents a function parameter with an optional type annotation.
type Parameter struct {
	Token          Token
	Name           *Identifier
	TypeAnnotation Expression
	DefaultValue   Expression
	Optional       bool
	Rest           bool
}

func (p *Parameter) String() string {
	var out bytes.Buffer
	if p.Rest {
		out.WriteString("...")
	}
	out.WriteString(p.Name.String())
	if p.Optional {
		out.WriteString("?")
	}
	if p.TypeAnnotation != nil {
		out.WriteString(": ")
		out.WriteString(p.TypeAnnotation.String())
	}
	if p.DefaultValue != nil {
		out.WriteString(" = ")
		out.WriteString(p.DefaultValue.String())
	}
	return out.String()
}

// FunctionLiteral represents a function body the emitter compiles on its
// own. InternalName is the mangled name the binder assigned; it is what
// member tables and closures refer to.
type FunctionLiteral struct {
	Token                Token // The 'function' token or the method key token
	Name                 *Identifier
	InternalName         string
	Parameters           []*Parameter
	ReturnTypeAnnotation Expression
	Body                 *BlockStatement // nil for overload signatures
	IsOverload           bool            // declaration-only signature
}

func (fl *FunctionLiteral) expressionNode()      {}
func (fl *FunctionLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FunctionLiteral) GetToken() Token      { return fl.Token }
func (fl *FunctionLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("function")
	if fl.Name != nil {
		out.WriteString(" " + fl.Name.String())
	}
	params := make([]string, 0, len(fl.Parameters))
	for _, p := range fl.Parameters {
		params = append(params, p.String())
	}
	out.WriteString("(" + strings.Join(params, ", ") + ")")
	if fl.ReturnTypeAnnotation != nil {
		out.WriteString(": " + fl.ReturnTypeAnnotation.String())
	}
	if fl.Body != nil {
		out.WriteString(" " + fl.Body.String())
	} else {
		out.WriteString(";")
	}
	return out.String()
}

// FormalParamCount returns the length the runtime reports for the function:
// the number of parameters before the first rest or defaulted parameter.
func (fl *FunctionLiteral) FormalParamCount() int {
	n := 0
	for _, p := range fl.Parameters {
		if p.Rest || p.DefaultValue != nil {
			break
		}
		n++
	}
	return n
}

// ClassExpression wraps a class used in expression position.
type ClassExpression struct {
	Class *ClassDeclaration
}

func (ce *ClassExpression) expressionNode()      {}
func (ce *ClassExpression) TokenLiteral() string { return ce.Class.TokenLiteral() }
func (ce *ClassExpression) GetToken() Token      { return ce.Class.GetToken() }
func (ce *ClassExpression) String() string       { return ce.Class.String() }
