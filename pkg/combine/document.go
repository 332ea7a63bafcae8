// File: pkg/combine/document.go
package combine

import (
	"io"
	"strings"
	"unicode/utf8"
)

const (
	treeTitle  = "Directory Structure"
	openFence  = "<content>"
	closeFence = "</content>"
)

// Document is the assembled output: the tree, marker files, then code files.
type Document struct {
	Sections    []Section
	Diagnostics []Diagnostic
}

// Render returns the section as it appears in the document.
func (s Section) Render() string {
	var b strings.Builder
	switch s.Kind {
	case SectionTree:
		b.WriteString("# " + treeTitle + "\n")
		b.WriteString(openFence + "\n")
		b.WriteString(s.Body)
		b.WriteString(closeFence + "\n")
	case SectionSkipped:
		b.WriteString("# " + s.Path + "\n")
		b.WriteString(s.Body + "\n")
	default:
		b.WriteString("# " + s.Path + "\n")
		b.WriteString(openFence + "\n")
		b.WriteString(s.Body)
		b.WriteString("\n" + closeFence + "\n")
	}
	return b.String()
}

// WriteTo writes every section separated by a blank line.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, section := range d.Sections {
		text := section.Render()
		if i > 0 {
			text = "\n" + text
		}
		n, err := io.WriteString(w, text)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String renders the whole document.
func (d *Document) String() string {
	var b strings.Builder
	_, _ = d.WriteTo(&b)
	return b.String()
}

// FileCount returns the number of file sections, skipped ones included.
func (d *Document) FileCount() int {
	n := 0
	for _, s := range d.Sections {
		if s.Kind != SectionTree {
			n++
		}
	}
	return n
}

// Characters returns the rendered length in runes.
func (d *Document) Characters() int {
	return utf8.RuneCountInString(d.String())
}

// Lookup returns the file section for path, if present.
func (d *Document) Lookup(path string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Kind != SectionTree && s.Path == path {
			return s, true
		}
	}
	return Section{}, false
}
