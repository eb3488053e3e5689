// Package emitter writes rendered text to its output file.
package emitter

import (
	"fmt"
	"os"
	"path/filepath"
)

// IOError reports a directory or file write failure.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Emitter materializes generated files under caller-chosen directories.
type Emitter struct {
	// Extension is appended to the class name to form the file name,
	// including the leading dot (e.g. ".go", ".java").
	Extension string
}

// New creates an Emitter with the given source-file extension.
func New(extension string) *Emitter {
	return &Emitter{Extension: extension}
}

// Write creates outDir if needed and writes text to
// outDir/<className><Extension>. The file handle is closed on every exit
// path; a close failure after a clean write is still reported.
func (e *Emitter) Write(outDir, className, text string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", &IOError{Path: outDir, Err: err}
	}

	path := filepath.Join(outDir, className+e.Extension)
	f, err := os.Create(path)
	if err != nil {
		return "", &IOError{Path: path, Err: err}
	}

	_, werr := f.WriteString(text)
	if werr == nil {
		werr = f.Sync()
	}
	cerr := f.Close()

	if werr != nil {
		return "", &IOError{Path: path, Err: werr}
	}
	if cerr != nil {
		return "", &IOError{Path: path, Err: cerr}
	}
	return path, nil
}
