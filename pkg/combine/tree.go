// File: pkg/combine/tree.go
package combine

import (
	"strings"
)

// RenderTree renders node as an indented tree, directories suffixed with '/'.
func RenderTree(node *TreeNode) string {
	if node == nil {
		return ""
	}
	var treeBuilder strings.Builder
	treeBuilder.WriteString(node.Name)
	if node.IsDir {
		treeBuilder.WriteString("/")
	}
	treeBuilder.WriteString("\n")
	renderChildren(&treeBuilder, node.Children, "")
	return treeBuilder.String()
}

// renderChildren writes children with box-drawing connectors, recursing into directories.
func renderChildren(b *strings.Builder, children []*TreeNode, prefix string) {
	for i, child := range children {
		connector := "├── "
		extension := "│   "
		if i == len(children)-1 {
			connector = "└── "
			extension = "    "
		}

		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(child.Name)
		if child.IsDir {
			b.WriteString("/")
		}
		b.WriteString("\n")

		if child.IsDir {
			renderChildren(b, child.Children, prefix+extension)
		}
	}
}
