// Package reader extracts chapters from EPUB, PDF and ZIP-of-HTML files.
package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fryou12/chapters/internal/chapter"
)

// Appender receives chapters as an adapter decodes them.
type Appender interface {
	AddChapter(chapter.Chapter)
}

// Options tunes extraction. The zero value keeps raw resource text in
// source enumeration order.
type Options struct {
	StripMarkup   bool // reduce HTML/XHTML to plain text
	SpineOrder    bool // EPUB: follow the spine instead of the manifest
	SplitHeadings bool // PDF: one chapter per detected heading
}

// Format defines a file format adapter.
type Format interface {
	Name() string
	Extensions() []string
	Process(filename string, dst Appender, opts Options) error
}

var registry []Format

// Register adds a format adapter to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Lookup returns the registered format with the given name, case-insensitively.
func Lookup(name string) (Format, bool) {
	for _, f := range registry {
		if strings.EqualFold(f.Name(), name) {
			return f, true
		}
	}
	return nil, false
}

// ForFile returns the registered format handling filename's extension.
func ForFile(filename string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f, true
			}
		}
	}
	return nil, false
}

// ErrUnsupported is wrapped by Process for files no format claims.
var ErrUnsupported = errors.New("unsupported file type")

// Process runs the adapter matching filename's extension.
func Process(filename string, dst Appender, opts Options) error {
	f, ok := ForFile(filename)
	if !ok {
		return &ProcessingError{
			Format: "unknown",
			Path:   filename,
			Err:    fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(filename)),
		}
	}
	return f.Process(filename, dst, opts)
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}

// ProcessingError is the single failure kind an adapter reports. Whatever
// went wrong (missing file, malformed container, read error) is kept in Err.
type ProcessingError struct {
	Format string
	Path   string
	Err    error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("error processing %s: %v", e.Format, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

func failed(format, path string, err error) error {
	return &ProcessingError{Format: format, Path: path, Err: err}
}
