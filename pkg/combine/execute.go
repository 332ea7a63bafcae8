// File: pkg/combine/execute.go
package combine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Build walks opts.Root and assembles the document in memory.
func Build(ctx context.Context, opts Options, logger *zap.Logger) (*Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	root, output, err := resolvePaths(opts)
	if err != nil {
		return nil, err
	}
	return build(ctx, opts, root, output, logger)
}

// build does the work of Build on already resolved paths.
func build(ctx context.Context, opts Options, root, output string, logger *zap.Logger) (*Document, error) {
	rules, err := BaseRules(root, output, opts.Exclude)
	if err != nil {
		return nil, err
	}

	walked, err := NewWalker(logger).Walk(root, rules)
	if err != nil {
		return nil, err
	}

	assembler := NewAssembler(AssembleOptions{
		Prefix:   opts.Prefix,
		MaxLines: opts.MaxLines,
		Workers:  opts.Workers,
	}, logger)
	doc, err := assembler.Assemble(ctx, walked.Files, walked.Tree)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble document: %w", err)
	}

	doc.Diagnostics = append(walked.Diagnostics, doc.Diagnostics...)
	return doc, nil
}

// Run builds the document and writes it to the output path.
func Run(ctx context.Context, opts Options, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	root, output, err := resolvePaths(opts)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("Starting combine process", zap.String("root", root), zap.String("output", output))

	doc, err := build(ctx, opts, root, output, logger)
	if err != nil {
		return Result{}, err
	}

	if err := WriteDocument(output, doc, logger); err != nil {
		return Result{}, err
	}

	result := Result{
		Document:    doc,
		OutputPath:  output,
		Files:       doc.FileCount(),
		Characters:  doc.Characters(),
		Diagnostics: doc.Diagnostics,
	}
	logger.Info("Successfully combined files",
		zap.String("outputFile", output),
		zap.Int("totalFiles", result.Files),
		zap.Int("diagnostics", len(result.Diagnostics)),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}

// resolvePaths returns the absolute root and output paths for opts.
func resolvePaths(opts Options) (string, string, error) {
	root := opts.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", &FatalIOError{Op: "get working directory", Path: ".", Err: err}
		}
		root = wd
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", "", &FatalIOError{Op: "resolve root", Path: root, Err: err}
	}

	output := opts.Output
	if output == "" {
		return absRoot, filepath.Join(absRoot, DefaultOutputName), nil
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return "", "", &FatalIOError{Op: "resolve output", Path: output, Err: err}
	}
	return absRoot, absOutput, nil
}
