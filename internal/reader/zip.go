package reader

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/fryou12/chapters/internal/chapter"
)

// htmlSuffix selects archive entries. The match is case-sensitive.
const htmlSuffix = ".html"

// ZIPFormat implements Format for ZIP archives of HTML files.
type ZIPFormat struct{}

func init() {
	Register(&ZIPFormat{})
}

func (f *ZIPFormat) Name() string         { return "ZIP" }
func (f *ZIPFormat) Extensions() []string { return []string{".zip"} }
func (f *ZIPFormat) Process(filename string, dst Appender, opts Options) error {
	return ProcessZIP(filename, dst, opts)
}

// ProcessZIP appends one chapter per ".html" entry of the archive at
// filename, in archive order. The entry name is both title and source.
// Chapters appended before a failure are kept.
func ProcessZIP(filename string, dst Appender, opts Options) error {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return failed("ZIP", filename, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, htmlSuffix) {
			continue
		}
		data, err := readEntry(f)
		if err != nil {
			return failed("ZIP", filename, fmt.Errorf("failed to read %s: %w", f.Name, err))
		}
		text := markupText(data, "text/html", opts)
		dst.AddChapter(chapter.New(f.Name, f.Name, text))
	}
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
