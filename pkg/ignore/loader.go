// File: pkg/ignore/loader.go
package ignore

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
)

// FileNames are the per-directory rule files, read in this order.
var FileNames = []string{".gitignore", ".llmpackignore"}

// LoadFile reads a rule file and compiles it as declared in base at depth.
// A missing file yields no rules and no error.
func LoadFile(filePath, base string, depth int, logger *zap.Logger) ([]IgnoreRule, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		logger.Debug("Failed to read ignore file", zap.String("filePath", filePath), zap.Error(err))
		return nil, err
	}

	lines := strings.Split(string(content), "\n")
	rules, err := CompileSource(lines, base, depth, filePath)
	if err != nil {
		return nil, err
	}

	logger.Debug("Compiled ignore file",
		zap.String("filePath", filePath),
		zap.String("base", base),
		zap.Int("lineCount", len(lines)),
		zap.Int("ruleCount", len(rules)))
	return rules, nil
}
