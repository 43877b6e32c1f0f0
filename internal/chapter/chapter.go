// Package chapter holds extracted text chunks and the ordered collection that displays them.
package chapter

import (
	"fmt"
	"io"
)

const (
	// DefaultTitle is shown for a chapter without a title.
	DefaultTitle = "Chapter"
	// Placeholder is shown for a chapter without content.
	Placeholder = "Content not available"
	// SnippetLength is the number of characters of content shown per line.
	SnippetLength = 100
	// Separator sits between the title and the snippet.
	Separator = " : "
)

// Chapter is one extracted unit of text.
type Chapter struct {
	Title   string // optional
	Source  string // resource href, file path or archive entry name
	Content string
}

// New returns a chapter built from an adapter's decoded triple.
func New(title, source, content string) Chapter {
	return Chapter{Title: title, Source: source, Content: content}
}

// DisplayTitle returns the title, or DefaultTitle when it is empty.
func (c Chapter) DisplayTitle() string {
	if c.Title == "" {
		return DefaultTitle
	}
	return c.Title
}

// Body returns the content, or Placeholder when it is empty.
func (c Chapter) Body() string {
	if c.Content == "" {
		return Placeholder
	}
	return c.Content
}

// Snippet returns at most the first SnippetLength characters of Body.
func (c Chapter) Snippet() string {
	return truncate(c.Body(), SnippetLength)
}

// Line renders the chapter as a single display line.
func (c Chapter) Line() string {
	return c.DisplayTitle() + Separator + c.Snippet()
}

// truncate cuts s after n runes. Byte length is checked first so short
// ASCII strings are returned without conversion.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Aggregator is the ordered, append-only holder of chapters produced by
// one run. The zero value is ready to use.
type Aggregator struct {
	chapters []Chapter
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// AddChapter appends c. It never fails.
func (a *Aggregator) AddChapter(c Chapter) {
	a.chapters = append(a.chapters, c)
}

// Len returns the number of chapters held.
func (a *Aggregator) Len() int {
	return len(a.chapters)
}

// Chapters returns a copy of the collection in insertion order.
func (a *Aggregator) Chapters() []Chapter {
	out := make([]Chapter, len(a.chapters))
	copy(out, a.chapters)
	return out
}

// DisplayAll writes one line per chapter to w, in insertion order.
func (a *Aggregator) DisplayAll(w io.Writer) {
	for _, c := range a.chapters {
		fmt.Fprintln(w, c.Line())
	}
}
