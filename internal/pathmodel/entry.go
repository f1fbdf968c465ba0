// Package pathmodel extracts directory-entry metadata, normalises paths, and
// substitutes <token> placeholders in command templates for both folders and
// files (design note "polymorphic entry" in SPEC_FULL.md §9).
package pathmodel

import (
	"path/filepath"
	"strings"
)

// Entry is the capability shared by FileProps and FolderProps: produce the
// token pairs a CommandRunner template may reference, and a main identifying
// path for logging.
type Entry interface {
	Tokens() map[string]string
	MainPath() string
}

// FileProps describes one regular file discovered by the scanner.
type FileProps struct {
	FullPath       string
	RelativePath   string
	FolderFullPath string
	Stem           string
	Extension      string // lower-case, without leading dot
	Name           string
	Size           int64
}

// NewFileProps derives a FileProps from a root and an absolute file path.
// Extension is lower-cased per spec §3; Stem is the filename without its
// final extension.
func NewFileProps(root, fullPath string, size int64) FileProps {
	rel, _ := filepath.Rel(root, fullPath)
	name := filepath.Base(fullPath)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	stem := name
	if ext != "" {
		stem = name[:len(name)-len(ext)-1]
	}
	return FileProps{
		FullPath:       fullPath,
		RelativePath:   rel,
		FolderFullPath: filepath.Dir(fullPath),
		Stem:           stem,
		Extension:      ext,
		Name:           name,
		Size:           size,
	}
}

// Tokens implements Entry for a file; <input-file-full-path>, <file-stem>,
// <file-path>, <folder-path>, <file-extension> are the recognised names
// (spec §9).
func (f FileProps) Tokens() map[string]string {
	return map[string]string{
		"<input-file-full-path>": f.FullPath,
		"<file-stem>":            f.Stem,
		"<file-path>":            f.FullPath,
		"<folder-path>":          f.FolderFullPath,
		"<file-extension>":       f.Extension,
	}
}

// MainPath implements Entry.
func (f FileProps) MainPath() string { return f.FullPath }

// FolderProps describes one directory discovered by the scanner.
type FolderProps struct {
	FullPath         string
	RelativePath     string
	Name             string
	ParentFullPath string
}

// NewFolderProps derives a FolderProps from a root and an absolute directory
// path. The scan root's ParentFullPath is set equal to FullPath, the
// sentinel that distinguishes the root (spec §3, §4.2).
func NewFolderProps(root, fullPath string) FolderProps {
	rel, _ := filepath.Rel(root, fullPath)
	parent := filepath.Dir(fullPath)
	if fullPath == root {
		parent = fullPath
	}
	return FolderProps{
		FullPath:       fullPath,
		RelativePath:   rel,
		Name:           filepath.Base(fullPath),
		ParentFullPath: parent,
	}
}

// IsRoot reports whether this folder is the scan root (spec §3).
func (f FolderProps) IsRoot() bool {
	return f.ParentFullPath == f.FullPath
}

// Tokens implements Entry for a folder; <input-folder-full-path> and
// <input-folder-path> are the recognised names (spec §9).
func (f FolderProps) Tokens() map[string]string {
	return map[string]string{
		"<input-folder-full-path>": f.FullPath,
		"<input-folder-path>":      f.RelativePath,
	}
}

// MainPath implements Entry.
func (f FolderProps) MainPath() string { return f.FullPath }

// ReplaceTokens substitutes every occurrence of every token the entry
// declares in template. A placeholder the entry does not declare (any other
// "<...>" run) is left intact (testable property 7).
func ReplaceTokens(template string, entry Entry) string {
	out := template
	for token, value := range entry.Tokens() {
		out = strings.ReplaceAll(out, token, value)
	}
	return out
}
