package combine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, root string, opts AssembleOptions) *Document {
	t.Helper()
	res := walk(t, root)
	doc, err := NewAssembler(opts, nil).Assemble(context.Background(), res.Files, res.Tree)
	require.NoError(t, err)
	return doc
}

func sectionPaths(doc *Document) []string {
	var paths []string
	for _, s := range doc.Sections {
		if s.Kind != SectionTree {
			paths = append(paths, s.Path)
		}
	}
	return paths
}

func TestAssemble_MarkersFirstThenTraversalOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pyproject.toml": "[project]",
		"package.json":   "{}",
		"README.md":      "# hi",
		"b.py":           "b = 2",
		"a.py":           "a = 1",
		"lib/c.py":       "c = 3",
	})

	doc := assemble(t, root, AssembleOptions{})

	require.NotEmpty(t, doc.Sections)
	assert.Equal(t, SectionTree, doc.Sections[0].Kind)
	assert.Equal(t, []string{"README.md", "package.json", "pyproject.toml", "a.py", "b.py", "lib/c.py"}, sectionPaths(doc))

	readme, ok := doc.Lookup("README.md")
	require.True(t, ok)
	assert.Equal(t, SectionMarker, readme.Kind)
	code, ok := doc.Lookup("a.py")
	require.True(t, ok)
	assert.Equal(t, SectionFile, code.Kind)
}

func TestAssemble_ContentIsCopiedVerbatim(t *testing.T) {
	root := t.TempDir()
	content := "line one\n\tindented  \r\nünïcödé ✓\n\n"
	writeTree(t, root, map[string]string{"a.go": content})

	doc := assemble(t, root, AssembleOptions{})

	s, ok := doc.Lookup("a.go")
	require.True(t, ok)
	assert.Equal(t, content, s.Body)
	assert.Contains(t, doc.String(), "# a.go\n<content>\n"+content+"\n</content>\n")
}

func TestAssemble_DocumentLayout(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": "print(1)\n"})

	doc := assemble(t, root, AssembleOptions{})

	expected := "# Directory Structure\n<content>\n./\n└── a.py\n</content>\n" +
		"\n" +
		"# a.py\n<content>\nprint(1)\n\n</content>\n"
	assert.Equal(t, expected, doc.String())
	assert.Equal(t, 1, doc.FileCount())
	assert.Equal(t, len([]rune(expected)), doc.Characters())
}

func TestAssemble_PrefixIsPlacedInEveryFileSection(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.go": "package a", "b.go": "package b"})

	doc := assemble(t, root, AssembleOptions{Prefix: "Review this:"})

	for _, p := range []string{"a.go", "b.go"} {
		s, ok := doc.Lookup(p)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(s.Body, "Review this:\n\n"), p)
	}
	assert.False(t, strings.HasPrefix(doc.String(), "Review this:"), "the tree section has no prefix")
}

func TestAssemble_BinaryFilesAreSkipped(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"blob.json": "{\x00\x01}",
		"bad.go":    "package \xff\xfe",
		"ok.go":     "package ok",
	})

	doc := assemble(t, root, AssembleOptions{})

	assert.Equal(t, []string{"ok.go"}, sectionPaths(doc))
	require.Len(t, doc.Diagnostics, 2)
	for _, d := range doc.Diagnostics {
		assert.Equal(t, DiagnosticRead, d.Kind)
		assert.True(t, IsBinarySkip(d), d.String())
	}
}

func TestAssemble_UnreadableFileDoesNotAbortRun(t *testing.T) {
	root := t.TempDir()
	var files []EligibleFile
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("f%d.go", i)
		if i != 4 {
			writeTree(t, root, map[string]string{name: "package f"})
		}
		files = append(files, EligibleFile{
			Path:     name,
			AbsPath:  filepath.Join(root, name),
			Priority: PriorityRegular,
		})
	}

	doc, err := NewAssembler(AssembleOptions{Workers: 3}, nil).Assemble(context.Background(), files, &TreeNode{Name: ".", IsDir: true})
	require.NoError(t, err)

	assert.Equal(t, 9, doc.FileCount())
	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, "f4.go", doc.Diagnostics[0].Path)
	assert.False(t, IsBinarySkip(doc.Diagnostics[0]))
	var readErr *ReadError
	assert.ErrorAs(t, doc.Diagnostics[0].Err, &readErr)
}

func TestAssemble_LineLimitPlaceholder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"long.go":  "a\nb\nc\n",
		"short.go": "a\nb",
	})

	doc := assemble(t, root, AssembleOptions{MaxLines: 2})

	long, ok := doc.Lookup("long.go")
	require.True(t, ok)
	assert.Equal(t, SectionSkipped, long.Kind)
	assert.Equal(t, "<skipped - 3 lines (exceeds 2 line limit)>", long.Body)
	assert.Contains(t, doc.String(), "# long.go\n<skipped - 3 lines (exceeds 2 line limit)>\n")

	short, ok := doc.Lookup("short.go")
	require.True(t, ok)
	assert.Equal(t, SectionFile, short.Kind)
}

func TestAssemble_WorkerCountDoesNotChangeOutput(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{"README.md": "# r"}
	for i := 0; i < 25; i++ {
		files[fmt.Sprintf("pkg%d/file%02d.go", i%4, i)] = fmt.Sprintf("package p%d", i)
	}
	writeTree(t, root, files)

	sequential := assemble(t, root, AssembleOptions{Workers: 1}).String()
	parallel := assemble(t, root, AssembleOptions{Workers: 8}).String()

	assert.Equal(t, sequential, parallel)
}

func TestAssemble_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.go": "package a"})
	res := walk(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAssembler(AssembleOptions{}, nil).Assemble(ctx, res.Files, res.Tree)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOrderFiles_IsStable(t *testing.T) {
	in := []EligibleFile{
		{Path: "z.go", Priority: PriorityRegular},
		{Path: "pyproject.toml", Priority: PriorityProjectManifest},
		{Path: "a.go", Priority: PriorityRegular},
		{Path: "README.md", Priority: PriorityReadme},
	}

	out := orderFiles(in)

	assert.Equal(t, []string{"README.md", "pyproject.toml", "z.go", "a.go"}, filePaths(out))
	assert.Equal(t, "z.go", in[0].Path, "input is not reordered")
}
