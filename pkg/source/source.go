package source

import (
	"path/filepath"
	"strings"
)

// SourceFile represents a source file with its content and metadata
type SourceFile struct {
	Name    string   // Display name (e.g., "script.ts", "<stdin>", "<eval>")
	Path    string   // Full file path (empty for eval/stdin input)
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

// NewEvalSource creates a source file for eval input (the CLI's -e flag)
func NewEvalSource(content string) *SourceFile {
	return &SourceFile{
		Name:    "<eval>",
		Path:    "",
		Content: content,
	}
}

// NewStdinSource creates a source file for stdin input
func NewStdinSource(content string) *SourceFile {
	return &SourceFile{
		Name:    "<stdin>",
		Path:    "",
		Content: content,
	}
}

// FromFile creates a SourceFile from a file path and content
func FromFile(filePath, content string) *SourceFile {
	name := filepath.Base(filePath)
	return NewSourceFile(name, filePath, content)
}

// Lines returns the source split into lines (cached)
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	return sf.lines
}

// Line returns the 1-based line with the given number, or "" when out of range.
func (sf *SourceFile) Line(n int) string {
	lines := sf.Lines()
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name)
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// IsFile returns true if this represents an actual file (has a path)
func (sf *SourceFile) IsFile() bool {
	return sf.Path != ""
}

// Snippet returns the source text between two byte offsets, clamped to the
// content bounds. Used by diagnostics and the token dumper to echo raw spans.
func (sf *SourceFile) Snippet(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(sf.Content) {
		end = len(sf.Content)
	}
	if start >= end {
		return ""
	}
	return sf.Content[start:end]
}
