package source

import (
	"path/filepath"
	"strings"
)

// SourceFile represents a compilation unit's source text and metadata.
type SourceFile struct {
	Name    string   // Display name (e.g., "shapes.ets", "<eval>")
	Path    string   // Full file path (empty for synthesized units)
	Content string   // The source code content
	lines   []string // Cached split lines (lazy initialization)
}

// NewSourceFile creates a new source file
func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{
		Name:    name,
		Path:    path,
		Content: content,
	}
}

// NewEvalSource creates a source file for text that does not come from disk
func NewEvalSource(content string) *SourceFile {
	return &SourceFile{
		Name:    "<eval>",
		Content: content,
	}
}

// FromFile creates a SourceFile from a file path and content
func FromFile(filePath, content string) *SourceFile {
	return NewSourceFile(filepath.Base(filePath), filePath, content)
}

// Lines returns the source split into lines (cached)
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	return sf.lines
}

// Line returns the 1-based line, or false when out of range.
func (sf *SourceFile) Line(n int) (string, bool) {
	lines := sf.Lines()
	if n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name)
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// RecordName derives the record name the literal pool uses to qualify buffer
// references: the display path without its extension, with separators
// normalized to '/'.
func (sf *SourceFile) RecordName() string {
	p := filepath.ToSlash(sf.DisplayPath())
	return strings.TrimSuffix(p, filepath.Ext(p))
}

// IsFile returns true if this represents an actual file (has a path)
func (sf *SourceFile) IsFile() bool {
	return sf.Path != ""
}
