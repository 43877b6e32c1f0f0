//go:build !gui

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fryou12/chapters/internal/chapter"
	"github.com/fryou12/chapters/internal/reader"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AAFF"))

	snippetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD"))
)

// printChapters writes one styled line per chapter. Styling is dropped
// when w is not a terminal.
func printChapters(w io.Writer, chapters []chapter.Chapter) {
	r := lipgloss.NewRenderer(w)
	ts := titleStyle.Renderer(r)
	ss := snippetStyle.Renderer(r)
	for _, c := range chapters {
		fmt.Fprintln(w, ts.Render(c.DisplayTitle())+chapter.Separator+ss.Render(c.Snippet()))
	}
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

func main() {
	flags := registerFlags(flag.CommandLine)
	interactive := flag.Bool("i", false, "Browse extracted chapters interactively")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Chapters - extract text chapters from EPUB, PDF and ZIP files\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  chapters [options] [file...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nFormats: %s\n", strings.Join(reader.SupportedFormats(), ", "))
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  chapters book.epub               One line per EPUB resource\n")
		fmt.Fprintf(os.Stderr, "  chapters -text -spine book.epub  Plain text in reading order\n")
		fmt.Fprintf(os.Stderr, "  chapters -split-pdf report.pdf   One chapter per PDF heading\n")
		fmt.Fprintf(os.Stderr, "  chapters -i -c chapters.yaml     Browse the inputs of a config\n")
	}
	flag.Parse()

	if flags.showVersion {
		printVersion("chapters")
		os.Exit(0)
	}

	jobs, opts, err := plan(flags, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	agg := chapter.NewAggregator()
	// Failures are already logged; they never change the exit status.
	collect(jobs, opts, agg, errorLog())

	if *interactive {
		p := tea.NewProgram(newBrowser(agg.Chapters()), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if isTerminal(os.Stdout) {
		printChapters(os.Stdout, agg.Chapters())
		return
	}
	agg.DisplayAll(os.Stdout)
}
