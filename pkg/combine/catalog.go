// File: pkg/combine/catalog.go
package combine

import (
	"path/filepath"
	"strings"
)

// SupportedExtensions is the allow-list of file extensions included in the document.
var SupportedExtensions = map[string]bool{
	// HTML/Web
	".html": true, ".htm": true,
	// JavaScript/TypeScript
	".js": true, ".jsx": true, ".mjs": true, ".cjs": true, ".ts": true, ".tsx": true,
	// Web frameworks
	".svelte": true, ".vue": true, ".prisma": true,
	// Stylesheets
	".css": true, ".scss": true, ".sass": true, ".less": true,
	// Python
	".py": true,
	// Data/config
	".json": true, ".yml": true, ".yaml": true, ".toml": true,
	// Java/Kotlin/Android
	".java": true, ".kt": true, ".xml": true, ".gradle": true,
	// C/C++/C#
	".c": true, ".cpp": true, ".cc": true, ".h": true, ".hpp": true, ".cs": true,
	// Other languages
	".php": true, ".rb": true, ".go": true, ".rs": true, ".dart": true,
	// Documentation
	".md": true, ".markdown": true, ".rst": true,
	// Database
	".sql": true, ".graphql": true, ".gql": true,
	// iOS/macOS
	".swift": true, ".m": true, ".storyboard": true, ".xib": true, ".pbxproj": true, ".plist": true,
}

// Marker is a well-known root-level file emitted ahead of everything else.
type Marker struct {
	Name     string
	Priority Priority
}

// Markers lists the marker files in emission order.
var Markers = []Marker{
	{Name: "README.md", Priority: PriorityReadme},
	{Name: "package.json", Priority: PriorityPackageManifest},
	{Name: "pyproject.toml", Priority: PriorityProjectManifest},
}

var markerByName = func() map[string]Priority {
	m := make(map[string]Priority, len(Markers))
	for _, marker := range Markers {
		m[marker.Name] = marker.Priority
	}
	return m
}()

// fileExtension returns the lower-cased extension of name.
func fileExtension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// classify decides whether a non-excluded file is eligible and with which priority.
// Marker names only count at the root; deeper copies are ordinary files.
func classify(name string, atRoot bool) (Priority, bool) {
	if atRoot {
		if p, ok := markerByName[name]; ok {
			return p, true
		}
	}
	if SupportedExtensions[fileExtension(name)] {
		return PriorityRegular, true
	}
	return PriorityRegular, false
}
