// File: pkg/combine/types.go
package combine

// Priority orders eligible files in the document. Marker files come first,
// in the declared order; everything else keeps traversal order.
type Priority int

const (
	PriorityReadme Priority = iota
	PriorityPackageManifest
	PriorityProjectManifest
	PriorityRegular
)

// IsMarker reports whether the priority belongs to a marker file.
func (p Priority) IsMarker() bool {
	return p < PriorityRegular
}

// TreeNode is a filesystem entry that survived ignore filtering.
type TreeNode struct {
	Path     string      // Slash-separated path relative to the root ("" for the root).
	Name     string      // Base name ("." for the root).
	IsDir    bool        // Whether the entry is (or resolves to) a directory.
	Included bool        // Matcher decision; excluded entries never make it into the tree.
	Children []*TreeNode // Sorted lexicographically by Name.
}

// EligibleFile is a file selected for the document. Content is not held here;
// it is read once by the Assembler and lives only in the resulting Section.
type EligibleFile struct {
	Path      string   // Slash-separated path relative to the root.
	AbsPath   string   // Absolute path used for reading.
	Extension string   // Lower-cased extension including the dot, may be empty.
	Priority  Priority // Marker rank or PriorityRegular.
}

// WalkResult is the output of a single traversal.
type WalkResult struct {
	Root        string         // Absolute root directory.
	Tree        *TreeNode      // Pruned tree rooted at Root.
	Files       []EligibleFile // Eligible files in depth-first lexicographic order.
	Diagnostics []Diagnostic   // Non-fatal problems met on the way.
}

// SectionKind identifies how a document section is rendered.
type SectionKind int

const (
	SectionTree SectionKind = iota
	SectionMarker
	SectionFile
	SectionSkipped
)

// Section is one block of the assembled document.
type Section struct {
	Kind SectionKind
	Path string // Relative file path; empty for the tree section.
	Body string
}
