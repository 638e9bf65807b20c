package compiler

import (
	"classtab/pkg/ast"
)

// EstimatePropertyCount returns the number of own properties an instance of
// class is expected to carry. It only sizes the initial object layout, so
// over and under counting are both tolerated.
func EstimatePropertyCount(class *ast.ClassDeclaration) uint32 {
	seen := make(map[string]struct{})
	var count uint32

	countName := func(key ast.Expression, computed bool) {
		name, ok := propertyName(key, computed)
		if !ok {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		count++
	}

	for _, m := range class.Members {
		field, ok := m.(*ast.PropertyDefinition)
		if !ok || field.Static {
			continue
		}
		if field.IsPrivate() {
			count++
			continue
		}
		countName(field.Key, field.Computed)
	}

	if class.Constructor == nil || class.Constructor.Value == nil || class.Constructor.Value.Body == nil {
		return count
	}
	for _, stmt := range class.Constructor.Value.Body.Statements {
		es, ok := stmt.(*ast.ExpressionStatement)
		if !ok {
			continue
		}
		assign, ok := es.Expression.(*ast.AssignmentExpression)
		if !ok {
			continue
		}
		switch target := assign.Left.(type) {
		case *ast.MemberExpression:
			if _, onThis := target.Object.(*ast.ThisExpression); onThis {
				countName(target.Property, false)
			}
		case *ast.IndexExpression:
			if _, onThis := target.Left.(*ast.ThisExpression); onThis {
				countName(target.Index, true)
			}
		}
	}
	return count
}
