package reader

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/fryou12/chapters/internal/chapter"
)

// PDFTitle labels the single chapter produced from a whole PDF.
const PDFTitle = "PDF Content"

// PDFFormat implements Format for PDF files.
type PDFFormat struct{}

func init() {
	Register(&PDFFormat{})
}

func (f *PDFFormat) Name() string         { return "PDF" }
func (f *PDFFormat) Extensions() []string { return []string{".pdf"} }
func (f *PDFFormat) Process(filename string, dst Appender, opts Options) error {
	return ProcessPDF(filename, dst, opts)
}

// ProcessPDF appends the text of the PDF at filename as one chapter, or
// as one chapter per heading when opts.SplitHeadings is set and headings
// are found. Nothing is appended on failure.
func ProcessPDF(filename string, dst Appender, opts Options) error {
	f, r, err := pdfOpen(filename)
	if err != nil {
		return failed("PDF", filename, err)
	}
	defer f.Close()

	if opts.SplitHeadings {
		rows, err := pdfRows(r)
		if err != nil {
			return failed("PDF", filename, err)
		}
		if sections := splitHeadings(rows); len(sections) > 0 {
			for _, s := range sections {
				dst.AddChapter(chapter.New(s.title, filename, s.content))
			}
			return nil
		}
	}

	text, err := pdfPlainText(r)
	if err != nil {
		return failed("PDF", filename, err)
	}
	dst.AddChapter(chapter.New(PDFTitle, filename, text))
	return nil
}

func pdfOpen(path string) (*os.File, *pdf.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	r, err := pdfNewReader(f, fi.Size())
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return f, r, nil
}

// pdfNewReader turns a parser panic on a malformed file into an error.
func pdfNewReader(f io.ReaderAt, size int64) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	return pdf.NewReader(f, size)
}

func pdfPlainText(r *pdf.Reader) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	pr, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(pr)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// textRow is one visual line of a page with the largest font size on it.
type textRow struct {
	text     string
	fontSize float64
}

// pdfRows lays out every page's glyphs as rows, top to bottom. Glyphs
// sharing a baseline form one row, ordered left to right.
func pdfRows(r *pdf.Reader) (out []textRow, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		out = append(out, pageRows(p.Content().Text)...)
	}
	return out, nil
}

func pageRows(glyphs []pdf.Text) []textRow {
	type row struct {
		y      int64
		glyphs []pdf.Text
	}
	var rows []*row
	byY := make(map[int64]*row)
	for _, g := range glyphs {
		y := int64(g.Y)
		rw, ok := byY[y]
		if !ok {
			rw = &row{y: y}
			byY[y] = rw
			rows = append(rows, rw)
		}
		rw.glyphs = append(rw.glyphs, g)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	out := make([]textRow, 0, len(rows))
	for _, rw := range rows {
		sort.SliceStable(rw.glyphs, func(i, j int) bool { return rw.glyphs[i].X < rw.glyphs[j].X })
		var sb strings.Builder
		var size float64
		for _, g := range rw.glyphs {
			sb.WriteString(g.S)
			size = max(size, g.FontSize)
		}
		if line := strings.TrimSpace(sb.String()); line != "" {
			out = append(out, textRow{text: line, fontSize: size})
		}
	}
	return out
}

var headingPattern = regexp.MustCompile(`(?i)^(chapter|chapitre|part|section|titre)\s+\d+`)

// headingFontRatio is the share of the largest font size from which a row
// counts as a heading regardless of its wording.
const headingFontRatio = 0.9

type section struct {
	title   string
	content string
}

// splitHeadings groups rows under the headings that precede them. Rows
// before the first heading are dropped. Font size only marks headings
// when the document mixes sizes.
func splitHeadings(rows []textRow) []section {
	if len(rows) == 0 {
		return nil
	}
	maxSize, minSize := rows[0].fontSize, rows[0].fontSize
	for _, r := range rows[1:] {
		maxSize = max(maxSize, r.fontSize)
		minSize = min(minSize, r.fontSize)
	}
	threshold := maxSize * headingFontRatio
	bySize := maxSize > 0 && minSize < threshold

	var sections []section
	var title string
	var body []string
	inSection := false
	flush := func() {
		if inSection {
			sections = append(sections, section{title: title, content: collapseLines(body)})
		}
	}
	for _, r := range rows {
		if headingPattern.MatchString(r.text) || (bySize && r.fontSize >= threshold) {
			flush()
			title, body, inSection = r.text, nil, true
			continue
		}
		if inSection {
			body = append(body, r.text)
		}
	}
	flush()
	return sections
}

// collapseLines joins lines with newlines, collapsing blanks inside each.
func collapseLines(lines []string) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = collapseSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
