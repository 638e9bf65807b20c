package compiler

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"classtab/pkg/ast"
	"classtab/pkg/errors"
	"classtab/pkg/literals"
)

// Public table groups are (name, tagged target, affiliate); private table
// groups drop the name slot.
const (
	publicGroupSize  = 3
	privateGroupSize = 2
)

// CompiledSet holds the indices of class members fully described by the
// public member table. Every other method or accessor goes through the
// fallback installer.
type CompiledSet map[int]struct{}

func (s CompiledSet) add(i int) { s[i] = struct{}{} }

// Has reports whether member i is encoded in the table.
func (s CompiledSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Indices returns the compiled member indices in ascending order.
func (s CompiledSet) Indices() []int {
	indices := maps.Keys(s)
	slices.Sort(indices)
	return indices
}

// tableSegment is one ownership half (instance or static) of a table under
// construction, with the name index used to merge groups.
type tableSegment struct {
	buf   *literals.Buffer
	names map[string]int
}

func newTableSegment() tableSegment {
	return tableSegment{buf: literals.NewBuffer(), names: make(map[string]int)}
}

// publicTableFold carries the state of the public table scan. Once halted
// is set no later member is considered.
type publicTableFold struct {
	class    *ast.ClassDeclaration
	instance tableSegment
	static   tableSegment
	groups   uint32 // newly inserted instance groups
	compiled CompiledSet
	halted   bool
}

// BuildPublicTable encodes the public methods and accessors of class into a
// member table. fieldTypeName names the field type buffer of a sendable
// class and is ignored otherwise. The returned set lists the members the
// table covers.
func BuildPublicTable(class *ast.ClassDeclaration, fieldTypeName string) (*literals.Buffer, CompiledSet) {
	fold := &publicTableFold{
		class:    class,
		instance: newTableSegment(),
		static:   newTableSegment(),
		compiled: make(CompiledSet),
	}
	for i, m := range class.Members {
		if fold.halted {
			break
		}
		fold.step(i, m)
	}

	table := fold.instance.buf
	table.Append(fold.static.buf)
	table.Add(literals.Integer(fold.groups))
	if class.Sendable {
		table.Add(literals.LiteralArray(fieldTypeName))
	}
	if len(class.EtsImplements) > 0 {
		table.Add(literals.EtsImplements(strings.Join(class.EtsImplements, ",")))
	}

	log.Debugf("public table for %s: %d instance groups, %d static groups, %d of %d members compiled, halted=%t",
		className(class), fold.groups, fold.static.buf.Len()/publicGroupSize, len(fold.compiled), len(class.Members), fold.halted)
	return table, fold.compiled
}

func (f *publicTableFold) step(i int, m ast.ClassMember) {
	method, ok := m.(*ast.MethodDefinition)
	if !ok || method.Value == nil {
		return
	}
	info := classifyMember(m)
	if info.Private {
		return
	}
	if info.Computed {
		f.halted = true
		return
	}
	if info.IsAccessor() && !f.class.Sendable {
		f.halted = true
		return
	}
	if info.Abstract || info.Overload {
		f.compiled.add(i)
		return
	}

	name, ok := propertyName(method.Key, false)
	if !ok {
		errors.Unreachable(positionOf(method), "method key %s has no static name", method.Key)
	}

	seg := &f.instance
	if info.Static {
		seg = &f.static
	}
	pos, exists := seg.names[name]
	if !exists || f.class.Sendable {
		pos = seg.buf.Add(literals.String(name))
		seg.buf.Add(literals.Null())
		seg.buf.Add(literals.Null())
		seg.names[name] = pos
		if !info.Static {
			f.groups++
		}
	}
	seg.buf.Set(pos+1, targetLiteral(info, method))
	seg.buf.Set(pos+2, literals.Affiliate(method.Value.FormalParamCount()))
	f.compiled.add(i)
}

// targetLiteral tags the internal function name with the member kind.
func targetLiteral(info memberInfo, method *ast.MethodDefinition) literals.Literal {
	target := method.Value.InternalName
	switch info.Kind {
	case KindMethod:
		return literals.Method(target)
	case KindGetter:
		return literals.Getter(target)
	case KindSetter:
		return literals.Setter(target)
	}
	errors.Unreachable(positionOf(method), "%s cannot be encoded in a member table", info.Kind)
	return literals.Literal{}
}

// BuildPrivateTable encodes every private method and accessor of class, one
// group per member without merging, overload signatures included. Static
// groups follow instance groups and the trailer counts the instance groups,
// which is the same tally AnalyzeClass hands to OpCreatePrivateProperty.
func BuildPrivateTable(class *ast.ClassDeclaration) *literals.Buffer {
	instance := literals.NewBuffer()
	static := literals.NewBuffer()
	var instanceEntries uint32

	for _, m := range class.Members {
		method, ok := m.(*ast.MethodDefinition)
		if !ok || method.Value == nil {
			continue
		}
		info := classifyMember(m)
		if !info.Private {
			continue
		}
		buf := instance
		if info.Static {
			buf = static
		} else {
			instanceEntries++
		}
		buf.Add(targetLiteral(info, method))
		buf.Add(literals.Affiliate(method.Value.FormalParamCount()))
	}

	log.Debugf("private table for %s: %d instance entries, %d static entries",
		className(class), instanceEntries, static.Len()/privateGroupSize)
	instance.Append(static)
	instance.Add(literals.Integer(instanceEntries))
	return instance
}

func className(class *ast.ClassDeclaration) string {
	if class.Name == nil {
		return "<anonymous>"
	}
	return class.Name.Value
}
