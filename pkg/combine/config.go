// File: pkg/combine/config.go
package combine

// DefaultOutputName is the document written into the root when no output is given.
const DefaultOutputName = ".llmpack_files.md"

// Options holds the configuration for one combine run.
type Options struct {
	Root     string   // Directory to walk; defaults to the working directory.
	Output   string   // Destination of the document; defaults to Root/DefaultOutputName.
	Prefix   string   // Optional text placed at the top of every file section.
	MaxLines int      // Files longer than this become placeholders; 0 disables.
	Workers  int      // Concurrent file reads; values below 1 mean sequential.
	Exclude  []string // Extra root-level ignore patterns, applied before rule files.
}

// Result summarizes a completed run.
type Result struct {
	Document    *Document
	OutputPath  string
	Files       int
	Characters  int
	Diagnostics []Diagnostic
}
