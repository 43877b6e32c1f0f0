package reader

import (
	"encoding/xml"
	"errors"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

var errNoNCX = errors.New("no NCX file found in EPUB")

// NCX XML structures for parsing toc.ncx
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	Label    navLabel   `xml:"navLabel"`
	Content  navContent `xml:"content"`
	Children []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// lookupTitle returns the NCX title declared for href, or "" when the
// resource has none.
func lookupTitle(titles map[string]string, href string) string {
	if href == "" {
		return ""
	}
	if t, ok := titles[href]; ok {
		return t
	}
	return titles[path.Base(href)]
}

// buildTOCHrefMap parses the NCX and returns a map of href to title.
// A book without a readable NCX yields an empty map.
func buildTOCHrefMap(book *epub.Rootfile) map[string]string {
	result := make(map[string]string)

	ncxData, err := findAndReadNCX(book)
	if err != nil {
		return result
	}

	var toc ncx
	if err := xml.Unmarshal(ncxData, &toc); err != nil {
		return result
	}

	add := func(key, title string) {
		if _, exists := result[key]; !exists {
			result[key] = title
		}
	}

	var extract func(points []navPoint)
	extract = func(points []navPoint) {
		for _, np := range points {
			href := np.Content.Src
			title := strings.TrimSpace(np.Label.Text)

			add(href, title)
			if idx := strings.Index(href, "#"); idx != -1 {
				href = href[:idx]
				add(href, title)
			}
			add(path.Base(href), title)

			extract(np.Children)
		}
	}
	extract(toc.NavMap.NavPoints)

	return result
}

// findAndReadNCX reads the book's NCX through the already open container.
func findAndReadNCX(book *epub.Rootfile) ([]byte, error) {
	var fallback *epub.Item
	for i := range book.Manifest.Items {
		item := &book.Manifest.Items[i]
		if item.MediaType == "application/x-dtbncx+xml" {
			return readItem(item)
		}
		if fallback == nil && strings.HasSuffix(strings.ToLower(item.HREF), ".ncx") {
			fallback = item
		}
	}
	if fallback != nil {
		return readItem(fallback)
	}
	return nil, errNoNCX
}
