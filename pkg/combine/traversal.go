// File: pkg/combine/traversal.go
package combine

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"llmpack/pkg/ignore"

	"go.uber.org/zap"
)

// Walker enumerates a project tree, applying ignore rules level by level.
type Walker struct {
	logger      *zap.Logger
	ignoreFiles []string
}

// NewWalker returns a Walker reading the standard rule files in each directory.
func NewWalker(logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		logger:      logger,
		ignoreFiles: ignore.FileNames,
	}
}

// walkState is owned by a single Walk call.
type walkState struct {
	root        string
	ancestors   map[string]bool // real paths of the directories currently being walked
	files       []EligibleFile
	diagnostics []Diagnostic
}

func (st *walkState) diagnose(kind DiagnosticKind, path string, err error) {
	st.diagnostics = append(st.diagnostics, Diagnostic{Kind: kind, Path: path, Err: err})
}

// Walk traverses root and returns the pruned tree and the eligible files in
// depth-first lexicographic order. Only an unusable root is fatal.
func (w *Walker) Walk(root string, rules ignore.RuleSet) (WalkResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return WalkResult{}, &FatalIOError{Op: "resolve root", Path: root, Err: err}
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return WalkResult{}, &FatalIOError{Op: "stat root", Path: absRoot, Err: err}
	}
	if !info.IsDir() {
		return WalkResult{}, &FatalIOError{Op: "stat root", Path: absRoot, Err: ErrRootNotDirectory}
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return WalkResult{}, &FatalIOError{Op: "resolve root", Path: absRoot, Err: err}
	}

	w.logger.Debug("Starting traversal", zap.String("root", absRoot), zap.Int("inheritedRules", rules.Len()))

	st := &walkState{
		root:      absRoot,
		ancestors: map[string]bool{realRoot: true},
	}
	tree := &TreeNode{Name: ".", IsDir: true, Included: true}
	w.walkDir(st, absRoot, "", 0, rules, tree)

	w.logger.Debug("Completed traversal",
		zap.Int("eligibleFiles", len(st.files)),
		zap.Int("diagnostics", len(st.diagnostics)))

	return WalkResult{
		Root:        absRoot,
		Tree:        tree,
		Files:       st.files,
		Diagnostics: st.diagnostics,
	}, nil
}

// walkDir fills node with the surviving children of dir and reports whether
// anything below dir survived.
func (w *Walker) walkDir(st *walkState, dir, rel string, depth int, inherited ignore.RuleSet, node *TreeNode) bool {
	rules := w.loadLocalRules(st, dir, rel, depth, inherited)

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.logger.Warn("Failed to read directory", zap.String("directory", dir), zap.Error(err))
		st.diagnose(DiagnosticTraversal, displayRel(rel), &TraversalError{Path: dir, Err: err})
		return false
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	survived := false
	for _, entry := range entries {
		name := entry.Name()
		childRel := joinRel(rel, name)
		childPath := filepath.Join(dir, name)

		isDir := entry.IsDir()
		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			target, err := os.Stat(childPath)
			if err != nil {
				w.logger.Debug("Skipping broken symlink", zap.String("path", childPath), zap.Error(err))
				st.diagnose(DiagnosticTraversal, childRel, &TraversalError{Path: childPath, Err: err})
				continue
			}
			isDir = target.IsDir()
			if !isDir && !target.Mode().IsRegular() {
				continue
			}
		} else if !isDir && !mode.IsRegular() {
			w.logger.Debug("Skipping special file", zap.String("path", childPath))
			continue
		}

		if excluded, rule := rules.MatchWithRule(childRel, isDir); excluded {
			w.logger.Debug("Path matches ignore rule",
				zap.String("path", childRel),
				zap.String("rule", rule.String()),
				zap.String("source", rule.Source))
			continue
		}

		if isDir {
			child := &TreeNode{Path: childRel, Name: name, IsDir: true, Included: true}
			realPath, ok := w.enter(st, childPath, childRel)
			if !ok {
				continue
			}
			kept := w.walkDir(st, childPath, childRel, depth+1, rules, child)
			delete(st.ancestors, realPath)
			if kept {
				node.Children = append(node.Children, child)
				survived = true
			}
			continue
		}

		node.Children = append(node.Children, &TreeNode{Path: childRel, Name: name, Included: true})
		survived = true

		if priority, ok := classify(name, depth == 0); ok {
			st.files = append(st.files, EligibleFile{
				Path:      childRel,
				AbsPath:   childPath,
				Extension: fileExtension(name),
				Priority:  priority,
			})
		}
	}
	return survived
}

// enter pushes the real path of dir onto the ancestor set. A directory that
// resolves to one of its own ancestors is a cycle and is refused; aliases of
// directories elsewhere in the tree are walked normally.
func (w *Walker) enter(st *walkState, dir, rel string) (string, bool) {
	realPath, err := filepath.EvalSymlinks(dir)
	if err != nil {
		st.diagnose(DiagnosticTraversal, rel, &TraversalError{Path: dir, Err: err})
		return "", false
	}
	if st.ancestors[realPath] {
		w.logger.Debug("Not following directory cycle", zap.String("path", dir), zap.String("realPath", realPath))
		st.diagnose(DiagnosticTraversal, rel, &TraversalError{Path: dir, Err: ErrSymlinkCycle})
		return "", false
	}
	st.ancestors[realPath] = true
	return realPath, true
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

func displayRel(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
