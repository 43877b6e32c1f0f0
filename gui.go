//go:build gui

package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/fryou12/chapters/internal/chapter"
)

func newViewer(w fyne.Window, chapters []chapter.Chapter) fyne.CanvasObject {
	if len(chapters) == 0 {
		return container.NewCenter(widget.NewLabel("No chapters extracted."))
	}

	source := widget.NewLabel("")
	body := widget.NewLabel("")
	body.Wrapping = fyne.TextWrapWord

	show := func(id int) {
		c := chapters[id]
		w.SetTitle(fmt.Sprintf("%s - Chapters", c.DisplayTitle()))
		source.SetText(c.Source)
		body.SetText(c.Body())
	}

	list := widget.NewList(
		func() int { return len(chapters) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(chapters[id].DisplayTitle())
		},
	)
	list.OnSelected = func(id widget.ListItemID) { show(id) }

	pane := container.NewBorder(source, nil, nil, nil, container.NewVScroll(body))
	split := container.NewHSplit(list, pane)
	split.Offset = 0.3

	list.Select(0)
	return split
}

func main() {
	flags := registerFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Chapters GUI - browse text chapters of EPUB, PDF and ZIP files\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  chapters-gui [options] [file...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flags.showVersion {
		printVersion("chapters-gui")
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

	a := app.New()
	w := a.NewWindow("Chapters")
	w.SetContent(newViewer(w, agg.Chapters()))
	w.Resize(fyne.NewSize(960, 640))
	w.ShowAndRun()
}
