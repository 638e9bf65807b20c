package scope

import (
	"fmt"

	"classtab/pkg/ast"
)

// Kind classifies what a name is bound to.
type Kind int

const (
	Local           Kind = iota // value lives in a register of the current frame
	Lexical                     // value lives in a slot of a lexical environment
	Global                      // value is a global property
	Import                      // named or default import from another module
	NamespaceImport             // import * as ns
	ModuleVar                   // top-level let/const/var of the module
	TypeParameter               // generic parameter, type-level only
	Declaration                 // enum, interface or type alias
)

var kindNames = [...]string{
	Local:           "local",
	Lexical:         "lexical",
	Global:          "global",
	Import:          "import",
	NamespaceImport: "namespace import",
	ModuleVar:       "module variable",
	TypeParameter:   "type parameter",
	Declaration:     "declaration",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Binding represents an entry in a scope.
type Binding struct {
	Name     string
	Kind     Kind
	Register uint8    // only for Local
	Slot     int      // only for Lexical
	Decl     ast.Node // declaring node, when known
}

// IsTypeOnly reports whether the binding has no runtime value.
func (b *Binding) IsTypeOnly() bool {
	switch b.Kind {
	case TypeParameter:
		return true
	case Declaration:
		_, isEnum := b.Decl.(*ast.EnumDeclaration)
		return !isEnum
	}
	return false
}

// Scope manages the bindings and the lexical environment slots of a single
// scope.
type Scope struct {
	Outer *Scope // enclosing scope, nil for the module scope

	store    map[string]*Binding
	slots    map[ast.Node]int
	nextSlot int
}

// NewScope creates a new, top-level (module) scope.
func NewScope() *Scope {
	return &Scope{
		store: make(map[string]*Binding),
		slots: make(map[ast.Node]int),
	}
}

// NewEnclosedScope creates a new scope enclosed by an outer scope.
func NewEnclosedScope(outer *Scope) *Scope {
	s := NewScope()
	s.Outer = outer
	return s
}

// Define adds a binding to this scope, replacing any previous binding of
// the same name in this scope.
func (s *Scope) Define(b *Binding) *Binding {
	s.store[b.Name] = b
	return b
}

// DefineLocal binds name to a register.
func (s *Scope) DefineLocal(name string, reg uint8, decl ast.Node) *Binding {
	return s.Define(&Binding{Name: name, Kind: Local, Register: reg, Decl: decl})
}

// DefineLexical binds name to a freshly reserved environment slot owned by decl.
func (s *Scope) DefineLexical(name string, decl ast.Node) *Binding {
	return s.Define(&Binding{Name: name, Kind: Lexical, Slot: s.ReserveSlot(decl), Decl: decl})
}

// DefineGlobal binds name to a global property.
func (s *Scope) DefineGlobal(name string, decl ast.Node) *Binding {
	return s.Define(&Binding{Name: name, Kind: Global, Decl: decl})
}

// Lookup returns the binding of name in this scope only.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	b, ok := s.store[name]
	return b, ok
}

// Resolve looks up name starting from this scope and walking outward. It
// returns the binding and the number of lexical environments crossed to
// reach the scope that defines it. Scopes without reserved slots create no
// environment at run time and do not count.
func (s *Scope) Resolve(name string) (*Binding, int, bool) {
	depth := 0
	for cur := s; cur != nil; cur = cur.Outer {
		if b, ok := cur.store[name]; ok {
			return b, depth, true
		}
		if cur.HasEnvironment() {
			depth++
		}
	}
	return nil, 0, false
}

// ReserveSlot reserves a lexical environment slot for node and returns its
// index. Reserving the same node twice returns the same slot.
func (s *Scope) ReserveSlot(node ast.Node) int {
	if slot, ok := s.slots[node]; ok {
		return slot
	}
	slot := s.allocSlot()
	s.slots[node] = slot
	return slot
}

func (s *Scope) allocSlot() int {
	slot := s.nextSlot
	s.nextSlot++
	return slot
}

// SlotOf returns the slot reserved for node.
func (s *Scope) SlotOf(node ast.Node) (int, bool) {
	slot, ok := s.slots[node]
	return slot, ok
}

// SlotCount returns the number of slots the scope's environment needs.
func (s *Scope) SlotCount() int { return s.nextSlot }

// HasEnvironment reports whether the scope materializes a lexical
// environment at run time.
func (s *Scope) HasEnvironment() bool { return s.nextSlot > 0 }
