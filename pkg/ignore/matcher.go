// File: pkg/ignore/matcher.go
package ignore

import (
	"path"
	"path/filepath"
	"strings"
)

// Match reports whether path is excluded by the rules at its own level, ignoring
// ancestors. The last matching rule wins; a negation re-includes the path.
// Callers that walk top-down and never enter excluded directories can use Match
// directly; everyone else should use IsExcluded.
func (rs RuleSet) Match(p string, isDir bool) bool {
	excluded, _ := rs.MatchWithRule(p, isDir)
	return excluded
}

// MatchWithRule is Match that also returns the deciding rule, or nil if none matched.
func (rs RuleSet) MatchWithRule(p string, isDir bool) (bool, *IgnoreRule) {
	p = normalizePath(p)
	if p == "" {
		return false, nil
	}

	excluded := false
	var matched *IgnoreRule
	for i := range rs.rules {
		rule := &rs.rules[i]
		rel, ok := relativeTo(rule.Base, p)
		if !ok {
			continue
		}
		if rule.matches(rel, isDir) {
			excluded = !rule.Negate
			matched = rule
		}
	}
	return excluded, matched
}

// IsExcluded reports whether path, relative to the walk root, is excluded.
// A path inside an excluded directory is always excluded: a negation cannot
// re-include a file once one of its parent directories is excluded.
func (rs RuleSet) IsExcluded(p string, isDir bool) bool {
	p = normalizePath(p)
	if p == "" {
		return false
	}
	segments := strings.Split(p, "/")
	for i := 1; i < len(segments); i++ {
		if rs.Match(strings.Join(segments[:i], "/"), true) {
			return true
		}
	}
	return rs.Match(p, isDir)
}

// relativeTo returns p relative to base. ok is false when p is not strictly inside base.
func relativeTo(base, p string) (string, bool) {
	if base == "" {
		return p, true
	}
	if strings.HasPrefix(p, base+"/") {
		return p[len(base)+1:], true
	}
	return "", false
}

// normalizePath converts OS separators to '/' and strips leading "./" and slashes.
func normalizePath(p string) string {
	p = filepath.ToSlash(p)
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	p = strings.Trim(p, "/")
	if p == "." {
		return ""
	}
	return p
}
