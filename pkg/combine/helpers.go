// File: pkg/combine/helpers.go
package combine

import (
	"bufio"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// WriteDocument writes doc to outputPath, replacing any previous file.
// Every failure here is fatal to the run.
func WriteDocument(outputPath string, doc *Document, logger *zap.Logger) error {
	logger.Debug("Writing document to output file", zap.String("outputFile", outputPath))

	if err := ensureDirectory(filepath.Dir(outputPath), logger); err != nil {
		return &FatalIOError{Op: "create output directory", Path: filepath.Dir(outputPath), Err: err}
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", outputPath), zap.Error(err))
		return &FatalIOError{Op: "create output", Path: outputPath, Err: err}
	}

	writer := bufio.NewWriter(outFile)
	if _, err := doc.WriteTo(writer); err != nil {
		_ = outFile.Close()
		return &FatalIOError{Op: "write output", Path: outputPath, Err: err}
	}
	if err := writer.Flush(); err != nil {
		_ = outFile.Close()
		return &FatalIOError{Op: "flush output", Path: outputPath, Err: err}
	}
	if err := outFile.Close(); err != nil {
		return &FatalIOError{Op: "close output", Path: outputPath, Err: err}
	}
	return nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
