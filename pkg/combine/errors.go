// File: pkg/combine/errors.go
package combine

import (
	"errors"
	"fmt"
)

var (
	// ErrRootNotDirectory is returned when the walk root is a file.
	ErrRootNotDirectory = errors.New("root is not a directory")
	// ErrBinaryContent marks a file skipped because it looks binary.
	ErrBinaryContent = errors.New("binary content")
	// ErrSymlinkCycle marks a directory symlink that resolves to one of its ancestors.
	ErrSymlinkCycle = errors.New("symlink points to one of its own ancestors")
)

// ReadError reports a single file that could not be read or decoded as text.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// TraversalError reports a directory (or link) that could not be listed or followed.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("traverse %s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }

// FatalIOError aborts a whole run: the root is unusable or the output cannot be written.
type FatalIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *FatalIOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FatalIOError) Unwrap() error { return e.Err }

// DiagnosticKind classifies a recovered error.
type DiagnosticKind string

const (
	DiagnosticPattern   DiagnosticKind = "pattern"
	DiagnosticRead      DiagnosticKind = "read"
	DiagnosticTraversal DiagnosticKind = "traversal"
)

// Diagnostic is a non-fatal problem recorded during a run.
type Diagnostic struct {
	Kind DiagnosticKind
	Path string
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %v", d.Kind, d.Path, d.Err)
}
