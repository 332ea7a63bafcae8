// File: pkg/ignore/ruleset.go
package ignore

// DefaultExcludedDirs are skipped in every project unless a later rule re-includes them.
var DefaultExcludedDirs = []string{
	".git",
	".venv",
	"Pods",
	"build",
	"dist",
	"node_modules",
}

// DefaultRules returns the built-in exclusions as directory-only rules.
func DefaultRules() []IgnoreRule {
	lines := make([]string, 0, len(DefaultExcludedDirs))
	for _, dir := range DefaultExcludedDirs {
		lines = append(lines, dir+"/")
	}
	return MustCompile(lines...)
}

// RuleSet is an ordered, immutable sequence of rules. Later rules take precedence.
type RuleSet struct {
	rules []IgnoreRule
}

// NewRuleSet builds a rule set from rules in evaluation order.
func NewRuleSet(rules ...IgnoreRule) RuleSet {
	return RuleSet{}.With(rules...)
}

// With returns a new RuleSet with rules appended. The receiver is left untouched,
// so sibling directories can each extend the same parent set independently.
func (rs RuleSet) With(rules ...IgnoreRule) RuleSet {
	if len(rules) == 0 {
		return rs
	}
	merged := make([]IgnoreRule, 0, len(rs.rules)+len(rules))
	merged = append(merged, rs.rules...)
	merged = append(merged, rules...)
	return RuleSet{rules: merged}
}

// Rules returns a copy of the rules in evaluation order.
func (rs RuleSet) Rules() []IgnoreRule {
	out := make([]IgnoreRule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of rules.
func (rs RuleSet) Len() int {
	return len(rs.rules)
}
