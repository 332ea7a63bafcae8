package combine

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// readSection reads one eligible file and turns it into a document section.
// Failures come back as *ReadError so the caller can record and move on.
func (a *Assembler) readSection(file EligibleFile) (Section, error) {
	a.logger.Debug("Reading file content", zap.String("filePath", file.AbsPath))

	fileBytes, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return Section{}, &ReadError{Path: file.Path, Err: err}
	}
	if IsBinary(fileBytes) {
		return Section{}, &ReadError{Path: file.Path, Err: ErrBinaryContent}
	}

	if a.opts.MaxLines > 0 {
		if lines := countLines(fileBytes); lines > a.opts.MaxLines {
			a.logger.Debug("File exceeds line limit",
				zap.String("filePath", file.Path),
				zap.Int("lines", lines),
				zap.Int("maxLines", a.opts.MaxLines))
			return Section{
				Kind: SectionSkipped,
				Path: file.Path,
				Body: fmt.Sprintf("<skipped - %d lines (exceeds %d line limit)>", lines, a.opts.MaxLines),
			}, nil
		}
	}

	kind := SectionFile
	if file.Priority.IsMarker() {
		kind = SectionMarker
	}

	body := string(fileBytes)
	if a.opts.Prefix != "" {
		body = a.opts.Prefix + "\n\n" + body
	}

	a.logger.Debug("Successfully read file content",
		zap.String("filePath", file.Path),
		zap.Int("contentSizeBytes", len(fileBytes)))

	return Section{Kind: kind, Path: file.Path, Body: body}, nil
}
