// File: pkg/ignore/rule.go
package ignore

import (
	"fmt"
	"regexp"
	"strings"
)

// IgnoreRule is a single compiled ignore pattern. Rules are immutable once compiled.
type IgnoreRule struct {
	Pattern  string // Normalized glob (no '!' prefix, no leading or trailing '/').
	Negate   bool   // Rule re-includes a previously excluded path.
	DirOnly  bool   // Rule only applies to directories (trailing '/').
	Anchored bool   // Rule is matched from its declaring directory only.
	Base     string // Declaring directory relative to the walk root ("" for the root).
	Depth    int    // Depth of the declaring directory (0 for the root).
	Source   string // Rule file the rule came from, or a synthetic origin.
	Line     int    // 1-based line number in Source.

	re *regexp.Regexp
}

// PatternError reports a rule line that cannot be compiled.
type PatternError struct {
	Source  string
	Line    int
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid ignore pattern %q at %s:%d: %v", e.Pattern, e.Source, e.Line, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Compile turns raw rule-file lines into rules declared in base at the given depth.
// A single malformed line rejects the whole file.
func Compile(lines []string, base string, depth int) ([]IgnoreRule, error) {
	return CompileSource(lines, base, depth, "")
}

// CompileSource is Compile with a source name recorded on each rule and on errors.
func CompileSource(lines []string, base string, depth int, source string) ([]IgnoreRule, error) {
	var rules []IgnoreRule
	for i, line := range lines {
		rule, ok, err := parsePatternLine(line)
		if err != nil {
			return nil, &PatternError{Source: source, Line: i + 1, Pattern: strings.TrimSpace(line), Err: err}
		}
		if !ok {
			continue
		}
		rule.Base = strings.Trim(base, "/")
		rule.Depth = depth
		rule.Source = source
		rule.Line = i + 1
		rules = append(rules, rule)
	}
	return rules, nil
}

// MustCompile is like Compile but panics on error. Intended for built-in rule lists.
func MustCompile(lines ...string) []IgnoreRule {
	rules, err := CompileSource(lines, "", 0, "builtin")
	if err != nil {
		panic(err)
	}
	return rules
}

// parsePatternLine processes a single line. ok is false for blank lines and comments.
func parsePatternLine(line string) (IgnoreRule, bool, error) {
	line = strings.TrimSuffix(line, "\r")
	line = strings.TrimLeft(line, " \t")
	line = trimTrailingSpace(line)

	if line == "" || strings.HasPrefix(line, "#") {
		return IgnoreRule{}, false, nil
	}

	var rule IgnoreRule
	switch {
	case strings.HasPrefix(line, "!"):
		rule.Negate = true
		line = line[1:]
	case strings.HasPrefix(line, `\!`), strings.HasPrefix(line, `\#`):
		line = line[1:]
	}

	if strings.HasSuffix(line, "/") && !strings.HasSuffix(line, `\/`) {
		rule.DirOnly = true
		line = strings.TrimRight(line, "/")
	}
	if strings.Contains(line, "/") {
		rule.Anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	if line == "" {
		return IgnoreRule{}, false, nil
	}

	body, err := globToRegex(line)
	if err != nil {
		return IgnoreRule{}, false, err
	}
	re, err := regexp.Compile(anchorPattern(body, rule.Anchored))
	if err != nil {
		return IgnoreRule{}, false, err
	}

	rule.Pattern = line
	rule.re = re
	return rule, true, nil
}

// trimTrailingSpace removes trailing blanks unless the last one is escaped.
func trimTrailingSpace(line string) string {
	for len(line) > 0 {
		last := line[len(line)-1]
		if last != ' ' && last != '\t' {
			break
		}
		if isEscaped(line, len(line)-1) {
			break
		}
		line = line[:len(line)-1]
	}
	return line
}

// isEscaped reports whether the byte at idx is preceded by an odd number of backslashes.
func isEscaped(s string, idx int) bool {
	n := 0
	for j := idx - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// matches reports whether rel (relative to the rule's base) matches the pattern.
func (r IgnoreRule) matches(rel string, isDir bool) bool {
	if r.DirOnly && !isDir {
		return false
	}
	return r.re.MatchString(rel)
}

// String returns the rule roughly as it was written.
func (r IgnoreRule) String() string {
	var b strings.Builder
	if r.Negate {
		b.WriteByte('!')
	}
	if r.Anchored && !strings.Contains(r.Pattern, "/") {
		b.WriteByte('/')
	}
	b.WriteString(r.Pattern)
	if r.DirOnly {
		b.WriteByte('/')
	}
	return b.String()
}
