package compiler

import (
	"testing"

	"classtab/pkg/ast"
	"classtab/pkg/scope"
)

func analyze(cls *ast.ClassDeclaration, useDefine bool) *ClassEnvironment {
	return AnalyzeClass(cls, scope.NewClassScope(scope.NewScope(), cls), useDefine)
}

func TestAnalyzeClassPrivateFieldDefineSemantics(t *testing.T) {
	build := func() *ast.ClassDeclaration {
		return class("A", privateField("x", keyword(ast.NumberKeyword)))
	}

	legacy := analyze(build(), false)
	if legacy.NeedsInstanceInitializer || legacy.HasPrivateElement || legacy.PrivateFieldCount != 0 {
		t.Errorf("private instance field should be skipped without define semantics: %+v", legacy)
	}

	define := analyze(build(), true)
	if !define.NeedsInstanceInitializer || !define.HasPrivateElement || define.PrivateFieldCount != 1 {
		t.Errorf("private instance field should be analyzed with define semantics: %+v", define)
	}
	if len(define.PrivateMembers) != 1 {
		t.Errorf("expected 1 private member, got %d", len(define.PrivateMembers))
	}
}

func TestAnalyzeClassStaticPrivateFieldAlwaysAnalyzed(t *testing.T) {
	f := privateField("count", nil)
	f.Static = true
	env := analyze(class("A", f), false)
	if !env.NeedsStaticInitializer || env.PrivateFieldCount != 1 || !env.HasPrivateElement {
		t.Errorf("unexpected facts: %+v", env)
	}
	if env.StaticInitializer == nil || env.StaticInitializer.InternalName != "#~A=#A~static_initializer" {
		t.Errorf("expected a synthesized static initializer, got %+v", env.StaticInitializer)
	}
}

func TestAnalyzeClassPrivateMethodsForceInstanceInitializer(t *testing.T) {
	cls := class("A", private(method("A", "run", 0)), static(private(method("A", "make", 0))))
	cs := scope.NewClassScope(scope.NewScope(), cls)
	env := AnalyzeClass(cls, cs, true)

	if env.PrivateInstanceMethodCount != 1 || env.PrivateStaticMethodCount != 1 {
		t.Errorf("expected 1 instance and 1 static private method, got %d and %d",
			env.PrivateInstanceMethodCount, env.PrivateStaticMethodCount)
	}
	if !env.NeedsInstanceInitializer {
		t.Fatal("private instance methods should force an instance initializer")
	}
	if env.NeedsStaticInitializer {
		t.Error("static private methods alone need no static initializer")
	}
	slot, ok := cs.SlotOf(env.InstanceInitializer)
	if !ok || slot != 0 {
		t.Errorf("expected the instance initializer in class slot 0, got %d (reserved=%t)", slot, ok)
	}
	if s, ok := cs.StaticBrandSlot(); !ok || s != 0 {
		t.Errorf("expected static brand slot 0, got %d", s)
	}
	if s, ok := cs.InstanceBrandSlot(); !ok || s != 1 {
		t.Errorf("expected instance brand slot 1, got %d", s)
	}
}

func TestAnalyzeClassComputedKeys(t *testing.T) {
	dynamic := field("k", nil)
	dynamic.Computed = true
	literal := field("lit", nil)
	literal.Key = str("lit")
	literal.Computed = true
	cls := class("A", literal, dynamic, computed(method("A", "m", 0), ident("sym")))
	cs := scope.NewClassScope(scope.NewScope(), cls)
	env := AnalyzeClass(cls, cs, true)

	if !env.HasComputedKey {
		t.Fatal("expected HasComputedKey")
	}
	if _, ok := cs.SlotOf(literal.Key); ok {
		t.Error("literal computed keys need no slot")
	}
	if slot, ok := cs.SlotOf(dynamic.Key); !ok || slot != 0 {
		t.Errorf("expected the dynamic key in slot 0, got %d (reserved=%t)", slot, ok)
	}
	if slot, ok := cs.SlotOf(env.InstanceInitializer); !ok || slot != 1 {
		t.Errorf("expected the instance initializer in slot 1, got %d (reserved=%t)", slot, ok)
	}
	if cs.SlotCount() != 2 {
		t.Errorf("expected 2 class slots, got %d", cs.SlotCount())
	}
}

func TestAnalyzeClassComputedPrivateMethodIgnored(t *testing.T) {
	m := private(method("A", "m", 0))
	m.Computed = true
	env := analyze(class("A", m), true)
	if env.HasComputedKey {
		t.Error("private methods never set HasComputedKey")
	}
}

func TestAnalyzeClassStaticBlock(t *testing.T) {
	cls := class("", &ast.StaticBlock{Body: &ast.BlockStatement{}})
	env := analyze(cls, true)
	if !env.NeedsStaticInitializer || env.NeedsInstanceInitializer {
		t.Errorf("unexpected facts: %+v", env)
	}
	if got := env.StaticInitializer.InternalName; got != "#~@anonymous=#@anonymous~static_initializer" {
		t.Errorf("unexpected initializer name %q", got)
	}
}

func TestAnalyzeClassKeepsParserInitializers(t *testing.T) {
	cls := class("A", field("x", nil))
	cls.InstanceInitializer = fn("#~A>#instance_init", 0)
	env := analyze(cls, true)
	if env.InstanceInitializer != cls.InstanceInitializer {
		t.Error("expected the parser's instance initializer")
	}
}

func TestConstructorInternalName(t *testing.T) {
	cls := withConstructor(class("Shape"))
	cls.Constructor.Value.InternalName = "#~Shape=#Shape^2"
	if got := constructorInternalName(cls); got != "#~Shape=#Shape^2" {
		t.Errorf("expected the parser's name, got %q", got)
	}
	cls.Constructor.Value.Parameters = params(2)
	if got := constructorParamCount(cls); got != 2 {
		t.Errorf("expected 2 constructor parameters, got %d", got)
	}
	if got := constructorInternalName(class("Plain")); got != "#~Plain=#Plain" {
		t.Errorf("unexpected default name %q", got)
	}
}

func TestBuildEnvironmentsNestedScopes(t *testing.T) {
	inner := class("Inner")
	outer := class("Outer",
		private(method("Outer", "p", 0)),
		computed(method("Outer", "m", 0), &ast.MemberExpression{
			Object:   &ast.ClassExpression{Class: inner},
			Property: ident("key"),
		}),
	)
	heritage := class("Base")
	outer.SuperClass = &ast.ClassExpression{Class: heritage}

	module := scope.NewScope()
	envs := BuildEnvironments(program(outer), module, true)
	if len(envs) != 3 {
		t.Fatalf("expected 3 analyzed classes, got %d", len(envs))
	}

	outerEnv := envs[outer]
	if outerEnv.IsExpression {
		t.Error("Outer is a declaration")
	}
	if got := envs[heritage].Scope.Outer; got != module {
		t.Error("heritage classes live in the enclosing scope")
	}
	if got := envs[inner].Scope.Outer; got != outerEnv.Scope.Innermost() {
		t.Error("computed key classes live in the innermost class scope")
	}

	innerEnv := envs[inner]
	if !innerEnv.IsExpression {
		t.Error("Inner is an expression")
	}
	b, ok := innerEnv.Scope.Lookup("Inner")
	if !ok || b.Kind != scope.Lexical {
		t.Fatalf("expected Inner bound lexically in its class scope, got %+v", b)
	}
}

func TestAnalyzeClassBindsTypeParameters(t *testing.T) {
	cls := class("Box")
	cls.TypeParameters = []*ast.TypeParameter{{Name: ident("T")}, {Name: ident("U")}}
	env := analyze(cls, true)

	for _, name := range []string{"T", "U"} {
		b, ok := env.Scope.Lookup(name)
		if !ok {
			t.Fatalf("type parameter %s not bound", name)
		}
		if b.Kind != scope.TypeParameter || !b.IsTypeOnly() {
			t.Errorf("%s bound as %s", name, b.Kind)
		}
	}
	if env.Scope.HasEnvironment() {
		t.Errorf("type parameters must not reserve slots")
	}
}
