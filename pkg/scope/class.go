package scope

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"classtab/pkg/ast"
)

// PrivateKind tells what a #name refers to.
type PrivateKind int

const (
	PrivateField PrivateKind = iota
	PrivateMethod
	PrivateGetter
	PrivateSetter
	PrivateAccessor // getter and setter pair
)

func (k PrivateKind) String() string {
	switch k {
	case PrivateField:
		return "field"
	case PrivateMethod:
		return "method"
	case PrivateGetter:
		return "getter"
	case PrivateSetter:
		return "setter"
	case PrivateAccessor:
		return "accessor"
	}
	return fmt.Sprintf("PrivateKind(%d)", int(k))
}

// PrivateName is a #name declared in a class body together with the slot
// of the private brand environment that holds its key.
type PrivateName struct {
	Name   string
	Kind   PrivateKind
	Static bool
	Slot   int
}

// ClassScope is the scope of a class body. It owns the class lexical
// environment (computed keys, instance initializer, class-expression name)
// and, once private members are registered, a nested private brand
// environment.
type ClassScope struct {
	*Scope
	Class *ast.ClassDeclaration

	brand         *Scope
	privateNames  map[string]*PrivateName
	staticBrand   int
	instanceBrand int
}

// NewClassScope creates the scope of class, enclosed by outer.
func NewClassScope(outer *Scope, class *ast.ClassDeclaration) *ClassScope {
	return &ClassScope{
		Scope:         NewEnclosedScope(outer),
		Class:         class,
		privateNames:  make(map[string]*PrivateName),
		staticBrand:   -1,
		instanceBrand: -1,
	}
}

// RegisterPrivateMembers allocates the private brand environment of the
// class. Validation slots come first: the static one when staticMethods is
// positive, then the instance one when instanceMethods is positive. Every
// private name follows in declaration order; a getter and setter of the
// same name share a slot.
func (cs *ClassScope) RegisterPrivateMembers(members []ast.ClassMember, fieldCount, instanceMethods, staticMethods int) {
	if cs.brand != nil {
		panic(fmt.Sprintf("private members of class %s registered twice", cs.className()))
	}
	cs.brand = NewEnclosedScope(cs.Scope)
	if staticMethods > 0 {
		cs.staticBrand = cs.brand.allocSlot()
	}
	if instanceMethods > 0 {
		cs.instanceBrand = cs.brand.allocSlot()
	}

	fields := 0
	for _, m := range members {
		switch member := m.(type) {
		case *ast.PropertyDefinition:
			key, ok := member.Key.(*ast.PrivateIdentifier)
			if !ok {
				continue
			}
			fields++
			cs.addPrivateName(key.Value, PrivateField, member.Static)
		case *ast.MethodDefinition:
			key, ok := member.Key.(*ast.PrivateIdentifier)
			if !ok {
				continue
			}
			kind := PrivateMethod
			switch member.Kind {
			case ast.MethodGet:
				kind = PrivateGetter
			case ast.MethodSet:
				kind = PrivateSetter
			}
			cs.addPrivateName(key.Value, kind, member.Static)
		}
	}
	if fields != fieldCount {
		panic(fmt.Sprintf("class %s: %d private fields registered, %d counted", cs.className(), fields, fieldCount))
	}
}

// DefineTypeParameters binds the class's own generic parameters. They are
// type-only and never occupy a slot.
func (cs *ClassScope) DefineTypeParameters(params []*ast.TypeParameter) {
	for _, tp := range params {
		if tp.Name == nil {
			continue
		}
		cs.Define(&Binding{Name: tp.Name.Value, Kind: TypeParameter, Decl: tp})
	}
}

func (cs *ClassScope) addPrivateName(name string, kind PrivateKind, static bool) {
	if existing, ok := cs.privateNames[name]; ok {
		if (existing.Kind == PrivateGetter && kind == PrivateSetter) ||
			(existing.Kind == PrivateSetter && kind == PrivateGetter) {
			existing.Kind = PrivateAccessor
		}
		return
	}
	cs.privateNames[name] = &PrivateName{Name: name, Kind: kind, Static: static, Slot: cs.brand.allocSlot()}
}

func (cs *ClassScope) className() string {
	if cs.Class == nil || cs.Class.Name == nil {
		return "<anonymous>"
	}
	return cs.Class.Name.Value
}

// HasPrivateEnvironment reports whether private members were registered.
func (cs *ClassScope) HasPrivateEnvironment() bool { return cs.brand != nil }

// PrivateEnvironment returns the private brand environment, or nil.
func (cs *ClassScope) PrivateEnvironment() *Scope { return cs.brand }

// Innermost returns the scope class definition code runs in.
func (cs *ClassScope) Innermost() *Scope {
	if cs.brand != nil {
		return cs.brand
	}
	return cs.Scope
}

// ClassEnvDepth returns the depth of the class lexical environment as seen
// from Innermost.
func (cs *ClassScope) ClassEnvDepth() int {
	if cs.brand != nil && cs.brand.HasEnvironment() {
		return 1
	}
	return 0
}

// StaticBrandSlot returns the slot that validates static private method access.
func (cs *ClassScope) StaticBrandSlot() (int, bool) {
	return cs.staticBrand, cs.staticBrand >= 0
}

// InstanceBrandSlot returns the slot that validates instance private method access.
func (cs *ClassScope) InstanceBrandSlot() (int, bool) {
	return cs.instanceBrand, cs.instanceBrand >= 0
}

// PrivateNames returns every registered private name ordered by slot.
func (cs *ClassScope) PrivateNames() []*PrivateName {
	bySlot := make(map[int]*PrivateName, len(cs.privateNames))
	for _, pn := range cs.privateNames {
		bySlot[pn.Slot] = pn
	}
	slots := maps.Keys(bySlot)
	slices.Sort(slots)
	out := make([]*PrivateName, 0, len(slots))
	for _, slot := range slots {
		out = append(out, bySlot[slot])
	}
	return out
}
