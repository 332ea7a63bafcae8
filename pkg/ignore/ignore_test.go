package ignore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRules(t *testing.T, base string, depth int, lines ...string) []IgnoreRule {
	t.Helper()
	rules, err := Compile(lines, base, depth)
	require.NoError(t, err)
	return rules
}

func TestCompile_SkipsCommentsAndBlankLines(t *testing.T) {
	rules := mustRules(t, "", 0, "# comment", "", "   ", "\t", "*.log")
	require.Len(t, rules, 1)
	assert.Equal(t, "*.log", rules[0].Pattern)
	assert.Equal(t, 5, rules[0].Line)
}

func TestCompile_Flags(t *testing.T) {
	tests := []struct {
		line     string
		pattern  string
		negate   bool
		dirOnly  bool
		anchored bool
	}{
		{line: "*.log", pattern: "*.log"},
		{line: "!keep.log", pattern: "keep.log", negate: true},
		{line: "build/", pattern: "build", dirOnly: true},
		{line: "/secrets.txt", pattern: "secrets.txt", anchored: true},
		{line: "docs/*.md", pattern: "docs/*.md", anchored: true},
		{line: "!/out/", pattern: "out", negate: true, dirOnly: true, anchored: true},
		{line: `\#hash`, pattern: "#hash"},
		{line: `\!bang`, pattern: "!bang"},
		{line: "trailing.txt   ", pattern: "trailing.txt"},
		{line: "crlf.txt\r", pattern: "crlf.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			rules := mustRules(t, "", 0, tt.line)
			require.Len(t, rules, 1)
			r := rules[0]
			assert.Equal(t, tt.pattern, r.Pattern)
			assert.Equal(t, tt.negate, r.Negate, "negate")
			assert.Equal(t, tt.dirOnly, r.DirOnly, "dirOnly")
			assert.Equal(t, tt.anchored, r.Anchored, "anchored")
		})
	}
}

func TestCompile_RecordsBaseAndDepth(t *testing.T) {
	rules := mustRules(t, "src/pkg/", 2, "*.tmp")
	require.Len(t, rules, 1)
	assert.Equal(t, "src/pkg", rules[0].Base)
	assert.Equal(t, 2, rules[0].Depth)
}

func TestCompile_UnterminatedClassRejectsWholeFile(t *testing.T) {
	rules, err := CompileSource([]string{"*.log", "[abc", "*.tmp"}, "", 0, ".gitignore")
	require.Error(t, err)
	assert.Nil(t, rules)

	var perr *PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, ".gitignore", perr.Source)
	assert.Equal(t, "[abc", perr.Pattern)
	assert.ErrorIs(t, err, ErrUnterminatedClass)
}

func TestCompile_InvalidRangeIsPatternError(t *testing.T) {
	_, err := Compile([]string{"[z-a].txt"}, "", 0)
	var perr *PatternError
	require.True(t, errors.As(err, &perr))
}

func TestMatch_LastMatchingRuleWins(t *testing.T) {
	rs := NewRuleSet(mustRules(t, "", 0, "*.log", "!keep.log")...)

	assert.False(t, rs.IsExcluded("keep.log", false))
	assert.True(t, rs.IsExcluded("other.log", false))
	assert.True(t, rs.IsExcluded("nested/deep/other.log", false))
	assert.False(t, rs.IsExcluded("nested/keep.log", false))
	assert.False(t, rs.IsExcluded("main.go", false))

	rs = NewRuleSet(mustRules(t, "", 0, "!keep.log", "*.log")...)
	assert.True(t, rs.IsExcluded("keep.log", false), "a later rule overrides an earlier negation")
}

func TestMatch_DirectoryOnlyRuleNeverMatchesFiles(t *testing.T) {
	rs := NewRuleSet(mustRules(t, "", 0, "build/")...)

	assert.False(t, rs.IsExcluded("build", false))
	assert.True(t, rs.IsExcluded("build", true))
	assert.True(t, rs.IsExcluded("sub/build", true))
	assert.True(t, rs.IsExcluded("build/output.js", false), "contents of an excluded directory")
}

func TestMatch_Anchoring(t *testing.T) {
	anchored := NewRuleSet(mustRules(t, "", 0, "/secrets.txt")...)
	assert.True(t, anchored.IsExcluded("secrets.txt", false))
	assert.False(t, anchored.IsExcluded("sub/secrets.txt", false))

	floating := NewRuleSet(mustRules(t, "", 0, "secrets.txt")...)
	assert.True(t, floating.IsExcluded("secrets.txt", false))
	assert.True(t, floating.IsExcluded("sub/secrets.txt", false))

	middle := NewRuleSet(mustRules(t, "", 0, "src/*.go")...)
	assert.True(t, middle.IsExcluded("src/a.go", false))
	assert.False(t, middle.IsExcluded("src/x/a.go", false), "* does not cross /")
	assert.False(t, middle.IsExcluded("lib/src/a.go", false), "a slash in the middle anchors the rule")
}

func TestMatch_Globs(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		isDir    bool
		excluded bool
	}{
		{"double star prefix at root", "**/foo", "foo", false, true},
		{"double star prefix deep", "**/foo", "a/b/foo", false, true},
		{"double star middle zero dirs", "a/**/b", "a/b", false, true},
		{"double star middle many dirs", "a/**/b", "a/x/y/b", false, true},
		{"double star middle anchored", "a/**/b", "c/a/b", false, false},
		{"double star suffix", "logs/**", "logs/2024/app.txt", false, true},
		{"double star suffix not dir itself", "logs/**", "logs", true, false},
		{"lone double star", "**", "anything/at/all", false, true},
		{"question mark", "file?.txt", "file1.txt", false, true},
		{"question mark one char only", "file?.txt", "file10.txt", false, false},
		{"class", "[abc].go", "b.go", false, true},
		{"class miss", "[abc].go", "d.go", false, false},
		{"class range", "file[0-9].txt", "file7.txt", false, true},
		{"negated class", "[!a].go", "b.go", false, true},
		{"negated class miss", "[!a].go", "a.go", false, false},
		{"regex metachars are literal", "a+b(1).txt", "a+b(1).txt", false, true},
		{"dot is literal", "*.md", "readme_md", false, false},
		{"escaped star", `\*.txt`, "*.txt", false, true},
		{"escaped star literal only", `\*.txt`, "a.txt", false, false},
		{"escaped trailing space", `foo\ `, "foo ", false, true},
		{"hash escape", `\#notes`, "#notes", false, true},
		{"bang escape", `\!important`, "!important", false, true},
		{"posix class", "[[:digit:]]x", "7x", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := NewRuleSet(mustRules(t, "", 0, tt.pattern)...)
			assert.Equal(t, tt.excluded, rs.Match(tt.path, tt.isDir))
		})
	}
}

func TestMatch_NestedRulesApplyOnlyUnderTheirBase(t *testing.T) {
	rs := NewRuleSet(mustRules(t, "sub", 1, "/x.txt", "*.tmp")...)

	assert.True(t, rs.IsExcluded("sub/x.txt", false))
	assert.False(t, rs.IsExcluded("x.txt", false))
	assert.False(t, rs.IsExcluded("sub/y/x.txt", false), "anchored to sub/")
	assert.True(t, rs.IsExcluded("sub/y/z.tmp", false))
	assert.False(t, rs.IsExcluded("other/z.tmp", false))
	assert.False(t, rs.IsExcluded("subway/z.tmp", false), "base must be a whole segment")
}

func TestIsExcluded_NestedNegationReincludesFile(t *testing.T) {
	parent := NewRuleSet(mustRules(t, "", 0, "*.txt")...)
	child := parent.With(mustRules(t, "sub", 1, "!keep.txt")...)

	assert.False(t, child.IsExcluded("sub/keep.txt", false))
	assert.True(t, child.IsExcluded("sub/other.txt", false))
	assert.True(t, child.IsExcluded("keep.txt", false), "negation is scoped to sub/")
}

func TestIsExcluded_NegationCannotEscapeExcludedDirectory(t *testing.T) {
	// logs/ is excluded by the parent, so a negation declared inside logs/
	// (or anywhere else) cannot bring back a file underneath it.
	rs := NewRuleSet(mustRules(t, "", 0, "logs/")...).
		With(mustRules(t, "logs", 1, "!keep.txt")...)

	assert.True(t, rs.IsExcluded("logs/keep.txt", false))
	assert.False(t, rs.Match("logs/keep.txt", false), "the file's own level is re-included")

	// Excluding the contents instead of the directory leaves room for negation.
	contents := NewRuleSet(mustRules(t, "", 0, "logs/*", "!logs/keep.txt")...)
	assert.False(t, contents.IsExcluded("logs/keep.txt", false))
	assert.True(t, contents.IsExcluded("logs/other.txt", false))
}

func TestDefaultRules(t *testing.T) {
	rs := NewRuleSet(DefaultRules()...)

	for _, dir := range DefaultExcludedDirs {
		assert.True(t, rs.IsExcluded(dir, true), dir)
		assert.True(t, rs.IsExcluded("pkg/"+dir, true), dir)
		assert.False(t, rs.IsExcluded(dir, false), "built-ins are directory-only: %s", dir)
	}
	assert.True(t, rs.IsExcluded("node_modules/left-pad/index.js", false))

	override := rs.With(mustRules(t, "", 0, "!dist/")...)
	assert.False(t, override.IsExcluded("dist", true), "local rules override built-ins")
}

func TestRuleSet_WithDoesNotMutateParent(t *testing.T) {
	parent := NewRuleSet(mustRules(t, "", 0, "*.log")...)
	left := parent.With(mustRules(t, "left", 1, "*.txt")...)
	right := parent.With(mustRules(t, "right", 1, "!*.log")...)

	assert.Equal(t, 1, parent.Len())
	assert.Equal(t, 2, left.Len())
	assert.Equal(t, 2, right.Len())

	assert.True(t, left.IsExcluded("left/a.txt", false))
	assert.False(t, right.IsExcluded("right/a.txt", false))
	assert.True(t, left.IsExcluded("left/a.log", false))
	assert.False(t, right.IsExcluded("right/a.log", false))
	assert.False(t, parent.IsExcluded("left/a.txt", false))
}

func TestIsExcluded_Idempotent(t *testing.T) {
	rs := NewRuleSet(DefaultRules()...).With(mustRules(t, "", 0, "*.log", "!keep.log", "tmp/")...)
	paths := []string{"keep.log", "a.log", "tmp", "tmp/x", "src/main.go", "./a.log", "/a.log"}
	for _, p := range paths {
		first := rs.IsExcluded(p, false)
		second := rs.IsExcluded(p, false)
		assert.Equal(t, first, second, p)
	}
	assert.True(t, rs.IsExcluded("./a.log", false))
	assert.False(t, rs.IsExcluded("", true), "the root itself is never excluded")
}

func TestMatchWithRule_ReturnsDecidingRule(t *testing.T) {
	rs := NewRuleSet(mustRules(t, "", 0, "*.log", "!keep.log")...)

	excluded, rule := rs.MatchWithRule("keep.log", false)
	assert.False(t, excluded)
	require.NotNil(t, rule)
	assert.Equal(t, "!keep.log", rule.String())

	excluded, rule = rs.MatchWithRule("main.go", false)
	assert.False(t, excluded)
	assert.Nil(t, rule)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(path, []byte("# generated\n*.log\r\n\n!keep.log\n"), 0o644))

	rules, err := LoadFile(path, "pkg", 1, nil)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, path, rules[0].Source)
	assert.Equal(t, 2, rules[0].Line)
	assert.Equal(t, "pkg", rules[1].Base)

	missing, err := LoadFile(filepath.Join(dir, "nope"), "", 0, nil)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, os.WriteFile(path, []byte("ok\n[broken\n"), 0o644))
	_, err = LoadFile(path, "", 0, nil)
	var perr *PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, path, perr.Source)
}
