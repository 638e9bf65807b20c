package compiler

import (
	"strings"
	"testing"

	"classtab/pkg/ast"
	"classtab/pkg/errors"
	"classtab/pkg/literals"
	"classtab/pkg/scope"
)

// typeScope declares the module bindings the field type tests resolve
// against.
func typeScope() *scope.Scope {
	s := scope.NewScope()
	s.Define(&scope.Binding{Name: "Color", Kind: scope.Declaration, Decl: &ast.EnumDeclaration{Name: ident("Color")}})
	s.Define(&scope.Binding{Name: "Shape", Kind: scope.Declaration, Decl: &ast.InterfaceDeclaration{Name: ident("Shape")}})
	s.Define(&scope.Binding{Name: "Remote", Kind: scope.Import})
	s.Define(&scope.Binding{Name: "ns", Kind: scope.NamespaceImport})
	s.Define(&scope.Binding{Name: "config", Kind: scope.ModuleVar})
	s.DefineGlobal("Point", nil)
	return s
}

func TestClassifyField(t *testing.T) {
	cls := class("Box")
	cls.TypeParameters = []*ast.TypeParameter{{Name: ident("T")}}
	cs := scope.NewClassScope(typeScope(), cls)
	AnalyzeClass(cls, cs, true)
	resolver := cs.Innermost()

	tests := []struct {
		name       string
		annotation ast.Expression
		want       FieldType
	}{
		{"number", keyword(ast.NumberKeyword), FieldNumber},
		{"string", keyword(ast.StringKeyword), FieldString},
		{"boolean", keyword(ast.BooleanKeyword), FieldBoolean},
		{"bigint", keyword(ast.BigIntKeyword), FieldBigInt},
		{"null", keyword(ast.NullKeyword), FieldNull},
		{"undefined", keyword(ast.UndefinedKeyword), FieldUndefined},
		{"any", keyword(ast.AnyKeyword), FieldGeneric},
		{"object", keyword(ast.ObjectKeyword), FieldGeneric},
		{"number or null", union(keyword(ast.NumberKeyword), keyword(ast.NullKeyword)), FieldNumber | FieldNull},
		{"enum", typeRef("Color"), FieldString | FieldNumber},
		{"enum or undefined", union(typeRef("Color"), keyword(ast.UndefinedKeyword)), FieldString | FieldNumber | FieldUndefined},
		{"import", typeRef("Remote"), FieldGeneric},
		{"type parameter", typeRef("T"), FieldGeneric},
		{"module variable", typeRef("config"), FieldGeneric},
		{"interface", typeRef("Shape"), FieldTypeRef},
		{"class", typeRef("Point"), FieldTypeRef},
		{"unresolved", typeRef("Elsewhere"), FieldTypeRef},
		{"bare identifier", ident("Color"), FieldString | FieldNumber},
		{"namespace import member", &ast.TypeReference{Name: &ast.QualifiedName{Left: ident("ns"), Right: ident("Thing")}}, FieldGeneric},
		{"namespace import", typeRef("ns"), FieldTypeRef},
		{"array", &ast.ArrayTypeExpression{ElementType: keyword(ast.NumberKeyword)}, FieldGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyField(resolver, field("f", tt.annotation))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClassifyFieldMissingAnnotation(t *testing.T) {
	f := field("count", nil)
	f.Token = tok(7, 3)
	_, err := ClassifyField(typeScope(), f)
	if err == nil {
		t.Fatal("expected an error")
	}
	ce, ok := err.(*errors.CompileError)
	if !ok {
		t.Fatalf("expected *errors.CompileError, got %T", err)
	}
	if ce.Line != 7 || ce.Column != 3 {
		t.Errorf("expected position 7:3, got %d:%d", ce.Line, ce.Column)
	}
	if !strings.Contains(ce.Error(), "explicit type annotation") {
		t.Errorf("unexpected message: %s", ce.Error())
	}
}

func TestBuildFieldTypeTable(t *testing.T) {
	counter := field("counter", keyword(ast.NumberKeyword))
	counter.Static = true
	quoted := field("quoted", keyword(ast.StringKeyword))
	quoted.Key = str("display name")
	quoted.Computed = true

	cls := sendable(class("S",
		counter,
		field("a", union(keyword(ast.NumberKeyword), keyword(ast.NullKeyword))),
		privateField("secret", keyword(ast.StringKeyword)),
		method("S", "m", 0),
		field("shape", typeRef("Shape")),
		quoted,
	))
	table, err := BuildFieldTypeTable(cls, typeScope())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectLiterals(t, table,
		literals.String("a"), literals.Integer(uint32(FieldNumber|FieldNull)),
		literals.String("shape"), literals.Integer(uint32(FieldTypeRef)),
		literals.String("display name"), literals.Integer(uint32(FieldString)),
		literals.String("counter"), literals.Integer(uint32(FieldNumber)),
		literals.Integer(3),
	)
}

func TestClassTypeParameterShadowsModuleName(t *testing.T) {
	// class Holder<Color> { value: Color }
	cls := sendable(class("Holder", field("value", typeRef("Color"))))
	cls.TypeParameters = []*ast.TypeParameter{{Name: ident("Color")}}
	cs := scope.NewClassScope(typeScope(), cls)
	AnalyzeClass(cls, cs, true)

	table, err := BuildFieldTypeTable(cls, cs.Innermost())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectLiterals(t, table,
		literals.String("value"), literals.Integer(uint32(FieldGeneric)),
		literals.Integer(1),
	)

	if got, _ := ClassifyField(typeScope(), field("value", typeRef("Color"))); got != FieldString|FieldNumber {
		t.Errorf("outside the class Color is the enum, got %s", got)
	}
}

func TestBuildFieldTypeTableChecksPrivateFields(t *testing.T) {
	cls := sendable(class("S", privateField("secret", nil)))
	if _, err := BuildFieldTypeTable(cls, typeScope()); err == nil {
		t.Fatal("expected private fields to need an annotation too")
	}
}

func TestBuildFieldTypeTableComputedKey(t *testing.T) {
	f := field("k", keyword(ast.NumberKeyword))
	f.Computed = true
	_, err := BuildFieldTypeTable(sendable(class("S", f)), typeScope())
	if err == nil || !strings.Contains(err.Message(), "static name") {
		t.Fatalf("expected a static name error, got %v", err)
	}
}

func TestFieldTypeString(t *testing.T) {
	tests := []struct {
		ft   FieldType
		want string
	}{
		{0, "none"},
		{FieldNumber, "number"},
		{FieldNumber | FieldNull, "number|null"},
		{FieldString | FieldNumber, "number|string"},
		{FieldGeneric | FieldUndefined, "generic|undefined"},
	}
	for _, tt := range tests {
		if got := tt.ft.String(); got != tt.want {
			t.Errorf("FieldType(%d).String() = %q, want %q", uint32(tt.ft), got, tt.want)
		}
	}
}
