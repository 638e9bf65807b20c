package errors

import "classtab/pkg/source"

// Position represents a specific location in the source code.
// Line and Column are 1-based; StartPos and EndPos are 0-based byte offsets.
type Position struct {
	Line     int
	Column   int
	StartPos int
	EndPos   int                // exclusive
	Source   *source.SourceFile // may be nil for synthesized nodes
}

// IsValid reports whether the position points at a real source line.
func (p Position) IsValid() bool {
	return p.Line > 0
}
