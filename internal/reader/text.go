package reader

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// decodeText converts markup bytes to a UTF-8 string. A BOM or a meta
// charset declaration selects the encoding; valid UTF-8 and ASCII pass
// through unchanged.
func decodeText(data []byte, contentType string) string {
	enc, name, _ := charset.DetermineEncoding(data, contentType)
	if name == "utf-8" || isASCII(data) {
		return string(data)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// skipElements are subtrees whose text is never shown to a reader.
var skipElements = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
}

// extractTextFromHTML reduces an HTML or XHTML document to its visible
// text with whitespace runs collapsed to single spaces.
func extractTextFromHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}

	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if out.Len() > 0 {
					out.WriteByte(' ')
				}
				out.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return collapseSpace(out.String())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// markupText decodes a markup resource and, when asked, strips its tags.
func markupText(data []byte, contentType string, opts Options) string {
	text := decodeText(data, contentType)
	if opts.StripMarkup {
		return extractTextFromHTML(text)
	}
	return text
}
