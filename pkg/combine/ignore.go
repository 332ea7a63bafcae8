// File: pkg/combine/ignore.go
package combine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"llmpack/pkg/ignore"

	"go.uber.org/zap"
)

// BaseRules builds the rule set every walk starts from: built-in defaults,
// then caller-supplied exclusions, then an anchored rule hiding the output
// document when it lives inside the root.
func BaseRules(absRoot, absOutput string, exclude []string) (ignore.RuleSet, error) {
	rules := ignore.NewRuleSet(ignore.DefaultRules()...)

	if len(exclude) > 0 {
		extra, err := ignore.CompileSource(exclude, "", 0, "exclude")
		if err != nil {
			return ignore.RuleSet{}, fmt.Errorf("invalid exclude pattern: %w", err)
		}
		rules = rules.With(extra...)
	}

	if absOutput != "" {
		rel, err := filepath.Rel(absRoot, absOutput)
		if err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			self, err := ignore.CompileSource([]string{"/" + ignore.Escape(filepath.ToSlash(rel))}, "", 0, "output")
			if err != nil {
				return ignore.RuleSet{}, fmt.Errorf("exclude output path: %w", err)
			}
			rules = rules.With(self...)
		}
	}
	return rules, nil
}

// loadLocalRules merges the rule files found in dir onto a copy of inherited.
// A rule file that fails to read or compile contributes nothing and is
// reported as a diagnostic; the inherited rules keep applying.
func (w *Walker) loadLocalRules(st *walkState, dir, rel string, depth int, inherited ignore.RuleSet) ignore.RuleSet {
	rules := inherited
	for _, name := range w.ignoreFiles {
		filePath := filepath.Join(dir, name)
		local, err := ignore.LoadFile(filePath, rel, depth, w.logger)
		if err != nil {
			kind := DiagnosticTraversal
			var perr *ignore.PatternError
			if errors.As(err, &perr) {
				kind = DiagnosticPattern
			}
			w.logger.Warn("Ignoring unusable rule file", zap.String("file", filePath), zap.Error(err))
			st.diagnose(kind, joinRel(rel, name), err)
			continue
		}
		if len(local) > 0 {
			rules = rules.With(local...)
		}
	}
	return rules
}
