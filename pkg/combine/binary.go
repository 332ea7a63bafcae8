// File: pkg/combine/binary.go
package combine

import (
	"bytes"
	"unicode/utf8"
)

// sniffLength bounds the prefix scanned for NUL bytes.
const sniffLength = 8000

// IsBinary reports whether data looks like binary content: a NUL byte in the
// first sniffLength bytes, or anything that is not valid UTF-8.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false // Empty files are considered text
	}
	head := data
	if len(head) > sniffLength {
		head = head[:sniffLength]
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}
	return !utf8.Valid(data)
}

// countLines counts lines the way an editor would: a final line without a
// trailing newline still counts.
func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}
