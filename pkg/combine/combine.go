package combine

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
)

// AssembleOptions controls how file sections are produced.
type AssembleOptions struct {
	Prefix   string // Text placed at the top of every file section.
	MaxLines int    // Files with more lines become placeholders; 0 disables the limit.
	Workers  int    // Concurrent reads; values below 1 mean sequential.
}

// Assembler turns a walk result into a Document.
type Assembler struct {
	opts   AssembleOptions
	logger *zap.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(opts AssembleOptions, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{opts: opts, logger: logger}
}

// Assemble emits the tree, then marker files in their fixed order, then the
// remaining files in traversal order. Files that cannot be read or look binary
// are skipped and recorded as diagnostics.
func (a *Assembler) Assemble(ctx context.Context, files []EligibleFile, tree *TreeNode) (*Document, error) {
	ordered := orderFiles(files)

	results, err := a.readFiles(ctx, ordered)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Sections: make([]Section, 0, len(ordered)+1),
	}
	doc.Sections = append(doc.Sections, Section{Kind: SectionTree, Body: RenderTree(tree)})

	for i, res := range results {
		if res.err != nil {
			a.logger.Warn("Skipping file", zap.String("file", ordered[i].Path), zap.Error(res.err))
			doc.Diagnostics = append(doc.Diagnostics, Diagnostic{Kind: DiagnosticRead, Path: ordered[i].Path, Err: res.err})
			continue
		}
		doc.Sections = append(doc.Sections, res.section)
	}

	a.logger.Debug("Assembled document",
		zap.Int("sections", len(doc.Sections)),
		zap.Int("skipped", len(doc.Diagnostics)))
	return doc, nil
}

// orderFiles moves marker files to the front by priority and keeps every
// other file where the walker put it.
func orderFiles(files []EligibleFile) []EligibleFile {
	ordered := make([]EligibleFile, len(files))
	copy(ordered, files)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})
	return ordered
}

// IsBinarySkip reports whether a diagnostic is a binary-content skip.
func IsBinarySkip(d Diagnostic) bool {
	return errors.Is(d.Err, ErrBinaryContent)
}
