// File: pkg/ignore/glob.go
package ignore

import (
	"errors"
	"regexp"
	"strings"
)

// ErrUnterminatedClass is returned for a '[' without a closing ']'.
var ErrUnterminatedClass = errors.New("unterminated character class")

const (
	anySegmentRun = `[^/]*`
	anySegmentOne = `[^/]`
	leadingDirs   = `(?:.*/)?`
)

// globToRegex converts a normalized glob into an unanchored regular expression body.
// '**' is only special as a whole path segment; anywhere else it behaves like '*'.
func globToRegex(pattern string) (string, error) {
	segments := strings.Split(pattern, "/")
	var b strings.Builder
	for i, seg := range segments {
		last := i == len(segments)-1
		if seg == "**" {
			if last {
				b.WriteString(`.*`)
			} else {
				b.WriteString(leadingDirs)
			}
			continue
		}
		part, err := segmentToRegex(seg)
		if err != nil {
			return "", err
		}
		b.WriteString(part)
		if !last {
			b.WriteByte('/')
		}
	}
	return b.String(), nil
}

// segmentToRegex converts a single path segment, which never contains '/'.
func segmentToRegex(seg string) (string, error) {
	rs := []rune(seg)
	var b strings.Builder
	for i := 0; i < len(rs); i++ {
		switch r := rs[i]; r {
		case '\\':
			if i+1 < len(rs) {
				i++
				b.WriteString(regexp.QuoteMeta(string(rs[i])))
			} else {
				b.WriteString(`\\`)
			}
		case '*':
			for i+1 < len(rs) && rs[i+1] == '*' {
				i++
			}
			b.WriteString(anySegmentRun)
		case '?':
			b.WriteString(anySegmentOne)
		case '[':
			class, next, err := parseClass(rs, i)
			if err != nil {
				return "", err
			}
			b.WriteString(class)
			i = next
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String(), nil
}

// parseClass parses the bracket expression starting at rs[start] == '['.
// It returns the regex class and the index of the closing ']'.
func parseClass(rs []rune, start int) (string, int, error) {
	i := start + 1
	negate := false
	if i < len(rs) && (rs[i] == '!' || rs[i] == '^') {
		negate = true
		i++
	}

	var members strings.Builder
	first := true
	for ; i < len(rs); i++ {
		r := rs[i]
		if r == ']' && !first {
			break
		}
		switch {
		case r == '[' && i+1 < len(rs) && rs[i+1] == ':':
			end := indexFrom(rs, i+2, ":]")
			if end < 0 {
				return "", 0, ErrUnterminatedClass
			}
			members.WriteString(string(rs[i : end+2]))
			i = end + 1
		case r == '\\' && i+1 < len(rs):
			i++
			members.WriteString(escapeClassRune(rs[i]))
		case r == '-' && !first && i+1 < len(rs) && rs[i+1] != ']':
			members.WriteByte('-')
		default:
			members.WriteString(escapeClassRune(r))
		}
		first = false
	}
	if i >= len(rs) {
		return "", 0, ErrUnterminatedClass
	}

	if negate {
		return "[^" + members.String() + "/]", i, nil
	}
	return "[" + members.String() + "]", i, nil
}

// escapeClassRune makes r literal inside a regex character class.
func escapeClassRune(r rune) string {
	if r < 128 && !isAlnum(r) {
		return `\` + string(r)
	}
	return string(r)
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// indexFrom returns the index of sub in rs at or after from, or -1.
func indexFrom(rs []rune, from int, sub string) int {
	if from > len(rs) {
		return -1
	}
	idx := strings.Index(string(rs[from:]), sub)
	if idx < 0 {
		return -1
	}
	return from + len([]rune(string(rs[from:])[:idx]))
}

// Escape quotes glob metacharacters in a literal path so it can be used as a rule.
func Escape(literal string) string {
	var b strings.Builder
	for i, r := range literal {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteByte('\\')
		case '!', '#':
			if i == 0 {
				b.WriteByte('\\')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// anchorPattern anchors the regex body to match the entire relative path.
func anchorPattern(body string, anchored bool) string {
	if anchored {
		return "^" + body + "$"
	}
	return "^" + leadingDirs + body + "$"
}
