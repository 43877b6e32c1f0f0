package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/taylorskalyo/goreader/epub"

	"github.com/fryou12/chapters/internal/chapter"
)

// EPUBFormat implements Format for EPUB files.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }
func (f *EPUBFormat) Process(filename string, dst Appender, opts Options) error {
	return ProcessEPUB(filename, dst, opts)
}

var errNoRootfile = errors.New("no rootfiles found in epub")

// contentTypes are the manifest media types treated as chapter resources.
var contentTypes = map[string]bool{
	"application/xhtml+xml": true,
	"text/html":             true,
}

// ProcessEPUB appends one chapter per content resource of the EPUB at
// filename. Resources are taken in manifest order unless opts.SpineOrder
// is set. Chapters appended before a failure are kept.
func ProcessEPUB(filename string, dst Appender, opts Options) error {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return failed("EPUB", filename, fmt.Errorf("failed to open epub: %w", err))
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return failed("EPUB", filename, errNoRootfile)
	}
	book := rc.Rootfiles[0]
	titles := buildTOCHrefMap(book)

	for _, item := range contentItems(book, opts.SpineOrder) {
		data, err := readItem(item)
		if err != nil {
			return failed("EPUB", filename, fmt.Errorf("failed to read %s: %w", item.HREF, err))
		}
		text := markupText(data, item.MediaType, opts)
		dst.AddChapter(chapter.New(lookupTitle(titles, item.HREF), item.HREF, text))
	}
	return nil
}

// contentItems lists the chapter resources of book.
func contentItems(book *epub.Rootfile, spine bool) []*epub.Item {
	var items []*epub.Item
	if spine {
		for _, ref := range book.Spine.Itemrefs {
			if ref.Item == nil {
				continue
			}
			items = append(items, ref.Item)
		}
		return items
	}
	for i := range book.Manifest.Items {
		item := &book.Manifest.Items[i]
		if contentTypes[item.MediaType] {
			items = append(items, item)
		}
	}
	return items
}

func readItem(item *epub.Item) ([]byte, error) {
	r, err := item.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
